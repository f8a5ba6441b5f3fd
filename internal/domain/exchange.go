package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExchangeTerms are the conditions the requester proposes: how the book
// changes hands and for how many days.
type ExchangeTerms struct {
	DeliveryMethod DeliveryMethod
	DurationDays   int
	Location       *string
	Notes          *string
}

// Exchange is a negotiation between a requester and a book owner over one
// book. Owner and requester are always distinct users. Exchanges are never
// deleted; terminal states are retained as history.
type Exchange struct {
	ID          uuid.UUID
	BookID      uuid.UUID
	OwnerID     uuid.UUID
	RequestedBy uuid.UUID
	Status      ExchangeStatus
	Terms       ExchangeTerms

	// StartDate and EndDate are set only on acceptance:
	// EndDate = StartDate + Terms.DurationDays days.
	StartDate *time.Time
	EndDate   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsParticipant reports whether userID is one of the two parties.
func (e *Exchange) IsParticipant(userID uuid.UUID) bool {
	return userID == e.OwnerID || userID == e.RequestedBy
}

// Counterparty returns the other participant relative to userID.
// Callers must check IsParticipant first.
func (e *Exchange) Counterparty(userID uuid.UUID) uuid.UUID {
	if userID == e.OwnerID {
		return e.RequestedBy
	}
	return e.OwnerID
}

// Message is one entry in an exchange's append-only thread. Position is
// server-assigned and insertion-order authoritative.
type Message struct {
	ID         uuid.UUID
	ExchangeID uuid.UUID
	SenderID   uuid.UUID
	Content    string
	Position   int
	CreatedAt  time.Time
}

// ExchangeDetails is the denormalized participant view: the exchange with
// its book, both parties resolved, and the full message thread.
type ExchangeDetails struct {
	Exchange
	Book      Book
	Owner     UserRef
	Requester UserRef
	Messages  []Message
}
