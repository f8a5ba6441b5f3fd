package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated application user.
// PasswordHash and the reset-token fields never leave the service layer.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Location     string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Password-reset state: SHA-256 hash of the single-use token and its
	// expiry. Both are nil when no reset is in flight.
	ResetTokenHash      *string
	ResetTokenExpiresAt *time.Time
}

// HasActiveResetToken reports whether a reset token exists and has not
// expired relative to now.
func (u *User) HasActiveResetToken(now time.Time) bool {
	return u.ResetTokenHash != nil &&
		u.ResetTokenExpiresAt != nil &&
		u.ResetTokenExpiresAt.After(now)
}

// UserRef is the denormalized participant view embedded in exchange listings:
// just enough identity to render a counterparty.
type UserRef struct {
	ID       uuid.UUID
	Username string
	Email    string
}
