package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/conduitlabs/conduit/internal/conduit/domain"
	"github.com/conduitlabs/conduit/internal/conduit/mailer"
	"github.com/conduitlabs/conduit/internal/conduit/store"
	"github.com/conduitlabs/conduit/pkg/cryptox"
	"github.com/google/uuid"
)

// ErrInvalidCredentials reports a failed login. Unknown email and wrong
// password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("service: invalid credentials")

const (
	confirmationCodeDigits = 8
	confirmationCodeTTL    = 7 * 24 * time.Hour
)

// UserService covers registration, login, email confirmation, and account
// updates.
type UserService struct {
	Store  store.Store
	Mailer mailer.Mailer
	Logger *slog.Logger

	// SkipEmailVerification creates users as ACTIVE without mailing a
	// confirmation code. Dev and test environments only.
	SkipEmailVerification bool
}

// Register creates a user and, unless verification is skipped, mails a
// single-use numeric confirmation code valid for seven days.
func (s *UserService) Register(ctx context.Context, email, username, password string) (domain.User, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	status := domain.UserStatusPending
	if s.SkipEmailVerification {
		status = domain.UserStatusActive
	}

	user, err := s.Store.Users().CreateUser(ctx, email, username, hash, status)
	if err != nil {
		return domain.User{}, err
	}

	if !s.SkipEmailVerification {
		if err := s.sendConfirmationCode(ctx, user); err != nil {
			return domain.User{}, err
		}
	}

	return user, nil
}

func (s *UserService) sendConfirmationCode(ctx context.Context, user domain.User) error {
	code, err := cryptox.GenerateNumericCode(confirmationCodeDigits)
	if err != nil {
		return fmt.Errorf("generate confirmation code: %w", err)
	}

	err = s.Store.ConfirmationTokens().CreateConfirmationToken(ctx, domain.ConfirmationToken{
		Token:     code,
		Purpose:   domain.TokenPurposeEmailConfirmation,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(confirmationCodeTTL),
	})
	if err != nil {
		return fmt.Errorf("store confirmation code: %w", err)
	}

	msg, err := mailer.RenderConfirmation(user.Email, user.Username, code, "7 days")
	if err != nil {
		return err
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		return err
	}

	s.Logger.Info("confirmation code issued", "user_id", user.ID)
	return nil
}

// Login verifies an email/password pair.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// ConfirmEmail redeems a confirmation code and activates the account.
// Returns store.ErrNotFound for unknown, expired, or reused codes.
func (s *UserService) ConfirmEmail(ctx context.Context, code string) (domain.User, error) {
	userID, err := s.Store.ConfirmationTokens().RedeemConfirmationToken(ctx, code, domain.TokenPurposeEmailConfirmation)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.Store.Users().ActivateUser(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	s.Logger.Info("email confirmed", "user_id", user.ID)
	return user, nil
}

// CurrentUser loads the account behind a session token.
func (s *UserService) CurrentUser(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}

// UpdateUserParams is a partial account update. A nil field is left
// untouched; an Image pointing at "" clears the image.
type UpdateUserParams struct {
	Email    *string
	Username *string
	Password *string
	Bio      *string
	Image    *string
}

// UpdateUser applies a partial update, hashing the password when one is
// provided.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, params UpdateUserParams) (domain.User, error) {
	patch := domain.UserPatch{
		Email:    params.Email,
		Username: params.Username,
		Bio:      params.Bio,
		Image:    params.Image,
	}

	if params.Password != nil {
		hash, err := cryptox.HashPassword(*params.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	return s.Store.Users().UpdateUser(ctx, id, patch)
}
