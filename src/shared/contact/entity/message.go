package contactentity

import (
	"context"
	"time"
)

type Status string

const (
	ReceivedStatus    Status = "received"
	ForwardedStatus   Status = "forwarded"
	UndeliveredStatus Status = "undelivered"
)

// SiteInbox receives messages that aren't about a specific listing
const SiteInbox = "site"

type Message struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	ListingID string    `json:"listingId,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Body      string    `json:"message"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Store interface {
	GetMessage(ctx context.Context, messageID string) (Message, error)
	// GetMessagesForRecipient returns the inbox newest first
	GetMessagesForRecipient(ctx context.Context, recipient string) ([]Message, error)
	CreateMessage(ctx context.Context, message Message) error
	// TransitionStatus only moves a message that is currently in the from status
	TransitionStatus(ctx context.Context, messageID string, from Status, to Status) error
	DeleteMessagesForRecipient(ctx context.Context, recipient string) error
}
