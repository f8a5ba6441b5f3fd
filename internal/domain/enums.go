package domain

// ExchangeStatus represents the lifecycle state of an exchange.
type ExchangeStatus string

const (
	ExchangeStatusPending   ExchangeStatus = "pending"
	ExchangeStatusAccepted  ExchangeStatus = "accepted"
	ExchangeStatusRejected  ExchangeStatus = "rejected"
	ExchangeStatusCompleted ExchangeStatus = "completed"
	ExchangeStatusCancelled ExchangeStatus = "cancelled"
)

func (s ExchangeStatus) String() string { return string(s) }

func (s ExchangeStatus) IsValid() bool {
	switch s {
	case ExchangeStatusPending, ExchangeStatusAccepted, ExchangeStatusRejected,
		ExchangeStatusCompleted, ExchangeStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s.
// accepted still allows completed/cancelled; everything except pending and
// accepted is a dead end.
func (s ExchangeStatus) IsTerminal() bool {
	switch s {
	case ExchangeStatusRejected, ExchangeStatusCompleted, ExchangeStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo is the closed transition relation of the exchange state
// machine. Authorization (who may perform the transition) is enforced by the
// exchange service, not here.
func (s ExchangeStatus) CanTransitionTo(next ExchangeStatus) bool {
	switch s {
	case ExchangeStatusPending:
		return next == ExchangeStatusAccepted ||
			next == ExchangeStatusRejected ||
			next == ExchangeStatusCancelled
	case ExchangeStatusAccepted:
		return next == ExchangeStatusCompleted ||
			next == ExchangeStatusCancelled
	}
	return false
}

// DeliveryMethod represents how the two parties hand the book over.
type DeliveryMethod string

const (
	DeliveryMethodMeetup   DeliveryMethod = "meetup"
	DeliveryMethodShipping DeliveryMethod = "shipping"
)

func (m DeliveryMethod) String() string { return string(m) }

func (m DeliveryMethod) IsValid() bool {
	switch m {
	case DeliveryMethodMeetup, DeliveryMethodShipping:
		return true
	}
	return false
}

// NotificationType identifies the event a notification describes.
type NotificationType string

const (
	NotificationNewRequest        NotificationType = "new_exchange_request"
	NotificationExchangeAccepted  NotificationType = "exchange_accepted"
	NotificationExchangeRejected  NotificationType = "exchange_rejected"
	NotificationExchangeCompleted NotificationType = "exchange_completed"
	NotificationExchangeCancelled NotificationType = "exchange_cancelled"
)

func (t NotificationType) String() string { return string(t) }

// NotificationTypeForStatus maps a freshly applied exchange status to the
// notification type sent to the counterparty.
func NotificationTypeForStatus(s ExchangeStatus) NotificationType {
	return NotificationType("exchange_" + s.String())
}

// AvailabilityFilter is the tri-state availability selector used by catalog
// search: all books, only available, or only unavailable.
type AvailabilityFilter string

const (
	AvailabilityAll         AvailabilityFilter = "all"
	AvailabilityAvailable   AvailabilityFilter = "available"
	AvailabilityUnavailable AvailabilityFilter = "unavailable"
)

func (f AvailabilityFilter) IsValid() bool {
	switch f {
	case AvailabilityAll, AvailabilityAvailable, AvailabilityUnavailable:
		return true
	}
	return false
}
