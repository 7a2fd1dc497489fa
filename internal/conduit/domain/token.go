package domain

import (
	"time"

	"github.com/google/uuid"
)

// TokenPurpose scopes a confirmation token to the flow it was issued for.
type TokenPurpose string

const TokenPurposeEmailConfirmation TokenPurpose = "EMAIL_CONFIRMATION"

// ConfirmationToken is a single-use out-of-band code, e.g. the numeric OTP
// mailed on registration. Redemption deletes the row.
type ConfirmationToken struct {
	Token     string
	Purpose   TokenPurpose
	UserID    uuid.UUID
	ExpiresAt time.Time
}
