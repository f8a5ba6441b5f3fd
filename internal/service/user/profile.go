package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
	"github.com/heartmarshall/bookswap-backend/pkg/ctxutil"
)

const (
	maxUsernameLen = 50
	maxLocationLen = 100
)

// GetProfile returns the caller's own profile.
func (s *Service) GetProfile(ctx context.Context) (*domain.User, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	u, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("user.GetProfile: %w", err)
	}
	return u, nil
}

// UpdateProfileInput holds the partial profile update. nil = unchanged.
type UpdateProfileInput struct {
	Username *string
	Location *string
}

// Validate validates the update-profile input.
func (i UpdateProfileInput) Validate() error {
	var errs []domain.FieldError

	if i.Username != nil {
		if strings.TrimSpace(*i.Username) == "" {
			errs = append(errs, domain.FieldError{Field: "username", Message: "must not be empty"})
		} else if len(*i.Username) > maxUsernameLen {
			errs = append(errs, domain.FieldError{Field: "username", Message: "too long"})
		}
	}
	if i.Location != nil && len(*i.Location) > maxLocationLen {
		errs = append(errs, domain.FieldError{Field: "location", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateProfile applies a partial update to the caller's profile. Username
// uniqueness is enforced by the database and surfaces as ErrAlreadyExists.
func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.Username != nil {
		trimmed := strings.TrimSpace(*input.Username)
		input.Username = &trimmed
	}

	u, err := s.users.UpdateProfile(ctx, callerID, input.Username, input.Location)
	if err != nil {
		return nil, fmt.Errorf("user.UpdateProfile: %w", err)
	}

	s.log.InfoContext(ctx, "profile updated", "user_id", callerID)

	return u, nil
}
