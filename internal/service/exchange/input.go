package exchange

import (
	"strings"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
)

const (
	maxDurationDays      = 365
	maxMeetupLocationLen = 200
	maxNotesLen          = 1000
	maxMessageContentLen = 2000
)

// CreateRequestInput holds the terms a requester proposes for a book.
type CreateRequestInput struct {
	DeliveryMethod string
	DurationDays   int
	Location       *string
	Notes          *string
}

// Validate validates the create-request input.
func (i CreateRequestInput) Validate() error {
	var errs []domain.FieldError

	if !domain.DeliveryMethod(i.DeliveryMethod).IsValid() {
		errs = append(errs, domain.FieldError{Field: "deliveryMethod", Message: "must be meetup or shipping"})
	}
	if i.DurationDays < 1 {
		errs = append(errs, domain.FieldError{Field: "duration", Message: "must be at least 1 day"})
	} else if i.DurationDays > maxDurationDays {
		errs = append(errs, domain.FieldError{Field: "duration", Message: "too long"})
	}
	if i.Location != nil && len(*i.Location) > maxMeetupLocationLen {
		errs = append(errs, domain.FieldError{Field: "location", Message: "too long"})
	}
	if i.Notes != nil && len(*i.Notes) > maxNotesLen {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i CreateRequestInput) terms() domain.ExchangeTerms {
	return domain.ExchangeTerms{
		DeliveryMethod: domain.DeliveryMethod(i.DeliveryMethod),
		DurationDays:   i.DurationDays,
		Location:       i.Location,
		Notes:          i.Notes,
	}
}

// UpdateStatusInput holds the requested status transition.
type UpdateStatusInput struct {
	Status string
}

// Validate validates the update-status input. pending is the initial state
// only; no transition may target it.
func (i UpdateStatusInput) Validate() error {
	status := domain.ExchangeStatus(i.Status)
	if !status.IsValid() || status == domain.ExchangeStatusPending {
		return domain.NewValidationError("status", "must be accepted, rejected, completed or cancelled")
	}
	return nil
}

// PostMessageInput holds a message to append to an exchange thread.
type PostMessageInput struct {
	Content string
}

// Validate validates the post-message input.
func (i PostMessageInput) Validate() error {
	if strings.TrimSpace(i.Content) == "" {
		return domain.NewValidationError("content", "required")
	}
	if len(i.Content) > maxMessageContentLen {
		return domain.NewValidationError("content", "too long")
	}
	return nil
}
