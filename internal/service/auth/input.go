package auth

import (
	"net/mail"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 128
	maxUsernameLen = 50
	maxEmailLen    = 254
	maxLocationLen = 100
)

// RegisterInput holds parameters for the register operation.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Location string
}

// Validate validates the register input.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	if i.Username == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	} else if len(i.Username) > maxUsernameLen {
		errs = append(errs, domain.FieldError{Field: "username", Message: "too long"})
	}

	errs = append(errs, validateEmail(i.Email)...)
	errs = append(errs, validatePassword(i.Password)...)

	if len(i.Location) > maxLocationLen {
		errs = append(errs, domain.FieldError{Field: "location", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginInput holds parameters for the login operation.
type LoginInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ForgotPasswordInput holds parameters for the forgot-password operation.
type ForgotPasswordInput struct {
	Email string
}

// Validate validates the forgot-password input.
func (i ForgotPasswordInput) Validate() error {
	if errs := validateEmail(i.Email); len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ResetPasswordInput holds parameters for the reset-password operation.
type ResetPasswordInput struct {
	Token    string
	Password string
}

// Validate validates the reset-password input.
func (i ResetPasswordInput) Validate() error {
	var errs []domain.FieldError

	if i.Token == "" {
		errs = append(errs, domain.FieldError{Field: "token", Message: "required"})
	}
	errs = append(errs, validatePassword(i.Password)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateEmail(email string) []domain.FieldError {
	if email == "" {
		return []domain.FieldError{{Field: "email", Message: "required"}}
	}
	if len(email) > maxEmailLen {
		return []domain.FieldError{{Field: "email", Message: "too long"}}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return []domain.FieldError{{Field: "email", Message: "invalid format"}}
	}
	return nil
}

func validatePassword(password string) []domain.FieldError {
	if password == "" {
		return []domain.FieldError{{Field: "password", Message: "required"}}
	}
	if len(password) < minPasswordLen {
		return []domain.FieldError{{Field: "password", Message: "must be at least 8 characters"}}
	}
	if len(password) > maxPasswordLen {
		return []domain.FieldError{{Field: "password", Message: "too long"}}
	}
	return nil
}
