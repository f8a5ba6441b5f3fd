package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an append-only entry on a user's notification feed.
// Delivery is best-effort; nothing in the system depends on one existing.
type Notification struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Type       NotificationType
	Message    string
	ExchangeID *uuid.UUID
	CreatedAt  time.Time
}
