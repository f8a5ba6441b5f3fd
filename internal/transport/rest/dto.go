package rest

import (
	"time"

	"github.com/heartmarshall/bookswap-backend/internal/domain"
)

// Wire DTOs. Field names follow the original API's camelCase shape so
// existing clients keep working.

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Location:  u.Location,
		CreatedAt: u.CreatedAt,
	}
}

type userRefResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toUserRefResponse(u domain.UserRef) userRefResponse {
	return userRefResponse{ID: u.ID.String(), Username: u.Username, Email: u.Email}
}

type bookResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	Condition     string    `json:"condition"`
	Location      string    `json:"location,omitempty"`
	Description   string    `json:"description,omitempty"`
	IsAvailable   bool      `json:"isAvailable"`
	Owner         string    `json:"owner"`
	OwnerUsername string    `json:"ownerUsername,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:            b.ID.String(),
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		Condition:     b.Condition,
		Location:      b.Location,
		Description:   b.Description,
		IsAvailable:   b.IsAvailable,
		Owner:         b.OwnerID.String(),
		OwnerUsername: b.OwnerUsername,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toBookResponses(books []domain.Book) []bookResponse {
	out := make([]bookResponse, len(books))
	for i := range books {
		out[i] = toBookResponse(&books[i])
	}
	return out
}

type bookPageResponse struct {
	Books      []bookResponse `json:"books"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	TotalBooks int            `json:"totalBooks"`
}

type termsResponse struct {
	DeliveryMethod string  `json:"deliveryMethod"`
	Duration       int     `json:"duration"`
	Location       *string `json:"location,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Position  int       `json:"position"`
	Timestamp time.Time `json:"timestamp"`
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:        m.ID.String(),
		Sender:    m.SenderID.String(),
		Content:   m.Content,
		Position:  m.Position,
		Timestamp: m.CreatedAt,
	}
}

func toMessageResponses(msgs []domain.Message) []messageResponse {
	out := make([]messageResponse, len(msgs))
	for i := range msgs {
		out[i] = toMessageResponse(&msgs[i])
	}
	return out
}

type exchangeResponse struct {
	ID          string        `json:"id"`
	Book        string        `json:"book"`
	Owner       string        `json:"owner"`
	RequestedBy string        `json:"requestedBy"`
	Status      string        `json:"status"`
	Terms       termsResponse `json:"terms"`
	StartDate   *time.Time    `json:"startDate,omitempty"`
	EndDate     *time.Time    `json:"endDate,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func toExchangeResponse(e *domain.Exchange) exchangeResponse {
	return exchangeResponse{
		ID:          e.ID.String(),
		Book:        e.BookID.String(),
		Owner:       e.OwnerID.String(),
		RequestedBy: e.RequestedBy.String(),
		Status:      e.Status.String(),
		Terms: termsResponse{
			DeliveryMethod: e.Terms.DeliveryMethod.String(),
			Duration:       e.Terms.DurationDays,
			Location:       e.Terms.Location,
			Notes:          e.Terms.Notes,
		},
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// exchangeDetailsResponse is the participant view with the book and both
// parties resolved.
type exchangeDetailsResponse struct {
	ID          string            `json:"id"`
	Book        bookResponse      `json:"book"`
	Owner       userRefResponse   `json:"owner"`
	RequestedBy userRefResponse   `json:"requestedBy"`
	Status      string            `json:"status"`
	Terms       termsResponse     `json:"terms"`
	Messages    []messageResponse `json:"messages"`
	StartDate   *time.Time        `json:"startDate,omitempty"`
	EndDate     *time.Time        `json:"endDate,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func toExchangeDetailsResponse(d *domain.ExchangeDetails) exchangeDetailsResponse {
	return exchangeDetailsResponse{
		ID:          d.ID.String(),
		Book:        toBookResponse(&d.Book),
		Owner:       toUserRefResponse(d.Owner),
		RequestedBy: toUserRefResponse(d.Requester),
		Status:      d.Status.String(),
		Terms: termsResponse{
			DeliveryMethod: d.Terms.DeliveryMethod.String(),
			Duration:       d.Terms.DurationDays,
			Location:       d.Terms.Location,
			Notes:          d.Terms.Notes,
		},
		Messages:  toMessageResponses(d.Messages),
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toExchangeDetailsResponses(details []domain.ExchangeDetails) []exchangeDetailsResponse {
	out := make([]exchangeDetailsResponse, len(details))
	for i := range details {
		out[i] = toExchangeDetailsResponse(&details[i])
	}
	return out
}

type notificationResponse struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	ExchangeID *string   `json:"exchangeId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toNotificationResponses(feed []domain.Notification) []notificationResponse {
	out := make([]notificationResponse, len(feed))
	for i, n := range feed {
		out[i] = notificationResponse{
			ID:        n.ID.String(),
			Type:      n.Type.String(),
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
		}
		if n.ExchangeID != nil {
			id := n.ExchangeID.String()
			out[i].ExchangeID = &id
		}
	}
	return out
}

type genreCountResponse struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

func toGenreCountResponses(counts []domain.GenreCount) []genreCountResponse {
	out := make([]genreCountResponse, len(counts))
	for i, c := range counts {
		out[i] = genreCountResponse{Genre: c.Genre, Count: c.Count}
	}
	return out
}
