package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
)

// ForgotPassword starts a password reset: a random single-use token is
// generated, its SHA-256 hash stored with an expiry, and the raw token
// returned to the caller. Requesting again overwrites the previous token.
func (s *Service) ForgotPassword(ctx context.Context, input ForgotPasswordInput) (string, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := input.Validate(); err != nil {
		return "", err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return "", fmt.Errorf("auth.ForgotPassword get user: %w", err)
	}

	raw, hash, err := s.jwt.GenerateResetToken()
	if err != nil {
		return "", fmt.Errorf("auth.ForgotPassword generate token: %w", err)
	}

	expiresAt := time.Now().Add(s.cfg.ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, hash, expiresAt); err != nil {
		return "", fmt.Errorf("auth.ForgotPassword store token: %w", err)
	}

	s.log.InfoContext(ctx, "password reset requested", "user_id", user.ID)

	return raw, nil
}

// VerifyResetToken reports whether a raw reset token is valid and unexpired.
// Returns ErrNotFound for unknown, expired, or already-used tokens.
func (s *Service) VerifyResetToken(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return domain.NewValidationError("token", "required")
	}

	if _, err := s.users.GetByResetToken(ctx, s.jwt.HashToken(rawToken)); err != nil {
		return fmt.Errorf("auth.VerifyResetToken: %w", err)
	}
	return nil
}

// ResetPassword sets a new password for the user identified by the reset
// token. The token is single-use: the stored hash and expiry are cleared
// together with the password update.
func (s *Service) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	user, err := s.users.GetByResetToken(ctx, s.jwt.HashToken(input.Token))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("auth.ResetPassword: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("auth.ResetPassword get user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.PasswordHashCost)
	if err != nil {
		return fmt.Errorf("auth.ResetPassword hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("auth.ResetPassword update password: %w", err)
	}

	s.log.InfoContext(ctx, "password reset completed", "user_id", user.ID)

	return nil
}

// CheckEmail reports whether an account with the given email exists.
func (s *Service) CheckEmail(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if errs := validateEmail(email); len(errs) > 0 {
		return false, &domain.ValidationError{Errors: errs}
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("auth.CheckEmail: %w", err)
	}
	return exists, nil
}
