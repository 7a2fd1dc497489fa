package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus tracks whether a user has confirmed their email address.
type UserStatus string

const (
	UserStatusPending UserStatus = "EMAIL_CONFIRMATION_PENDING"
	UserStatusActive  UserStatus = "ACTIVE"
)

// User is an account holder. Email and username are unique
// case-insensitively.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	Bio          string
	Image        string
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch describes a partial user update. Nil fields are left
// untouched. An Image pointing at an empty string clears the image.
type UserPatch struct {
	Email        *string
	Username     *string
	PasswordHash *string
	Bio          *string
	Image        *string
}

// Profile is the public view of a user, as seen by a viewer. Following is
// always false when a user views themself.
type Profile struct {
	Username  string
	Bio       string
	Image     string
	Following bool
}
