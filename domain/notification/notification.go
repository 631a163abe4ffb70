package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain/user"
)

type Kind string

const (
	KindNewBid           Kind = "NEW_BID"
	KindBidConfirmed     Kind = "BID_CONFIRMED"
	KindOutbid           Kind = "OUTBID"
	KindAuctionEnded     Kind = "AUCTION_ENDED"
	KindAuctionWon       Kind = "AUCTION_WON"
	KindAuctionStarted   Kind = "AUCTION_STARTED"
	KindAuctionCancelled Kind = "AUCTION_CANCELLED"
	KindPaymentReceived  Kind = "PAYMENT_RECEIVED"
	// KindAuctionStatus is a snapshot sent to a session right after it subscribes
	KindAuctionStatus Kind = "AUCTION_STATUS"
)

// Payload carries the details a client needs to render an event
type Payload struct {
	Title    string           `json:"title,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Status   string           `json:"status,omitempty"`
	WinnerId *user.UserID     `json:"winnerId,omitempty"`
	Watchers int              `json:"watchers,omitempty"`
}

// Event is produced by the auction and bid engines and only consumed by the Notifier
type Event struct {
	Id        string      `json:"id"`
	AuctionId string      `json:"auctionId"`
	BidId     string      `json:"bidId,omitempty"`
	ActorId   user.UserID `json:"actorId,omitempty"`
	Kind      Kind        `json:"kind"`
	Payload   Payload     `json:"payload"`
	CreatedAt time.Time   `json:"createdAt"`
}

func amountOf(p Payload) string {
	if p.Amount == nil {
		return ""
	}
	return p.Amount.StringFixed(2)
}

// Message is the human readable text stored in the inbox
func (e *Event) Message() string {
	switch e.Kind {
	case KindNewBid:
		return fmt.Sprintf("New bid placed on %q: $%s", e.Payload.Title, amountOf(e.Payload))
	case KindBidConfirmed:
		return fmt.Sprintf("Your bid of $%s on %q has been placed successfully!", amountOf(e.Payload), e.Payload.Title)
	case KindOutbid:
		return fmt.Sprintf("You have been outbid on %q! New highest bid: $%s", e.Payload.Title, amountOf(e.Payload))
	case KindAuctionWon:
		return fmt.Sprintf("Congratulations! You won %q for $%s", e.Payload.Title, amountOf(e.Payload))
	case KindAuctionEnded:
		if e.Payload.WinnerId != nil {
			return fmt.Sprintf("Auction %q has ended with a winning bid of $%s", e.Payload.Title, amountOf(e.Payload))
		}
		return fmt.Sprintf("Auction %q has ended with no bids", e.Payload.Title)
	case KindAuctionStarted:
		return fmt.Sprintf("Auction %q is now open for bidding", e.Payload.Title)
	case KindAuctionCancelled:
		return fmt.Sprintf("Auction %q has been cancelled", e.Payload.Title)
	case KindPaymentReceived:
		return fmt.Sprintf("Payment of $%s received for %q", amountOf(e.Payload), e.Payload.Title)
	case KindAuctionStatus:
		return fmt.Sprintf("Auction %q is %s", e.Payload.Title, e.Payload.Status)
	}
	return string(e.Kind)
}

// Notifier dispatches events without ever failing the caller
type Notifier interface {
	// Broadcast delivers evt to every watcher of the auction
	Broadcast(c ctx.Ctx, auctionId string, evt *Event)
	// NotifyUser stores evt in the user's inbox and pushes it to live sessions
	NotifyUser(c ctx.Ctx, userId user.UserID, evt *Event)
}

// Notification is an inbox entry of one user
type Notification struct {
	Id          string      `json:"id" bson:"_id"`
	RecipientId user.UserID `json:"recipientId" bson:"recipientId"`
	AuctionId   string      `json:"auctionId" bson:"auctionId"`
	EventId     string      `json:"eventId" bson:"eventId"`
	Kind        Kind        `json:"kind" bson:"kind"`
	Message     string      `json:"message" bson:"message"`
	Read        bool        `json:"read" bson:"read"`
	CreatedAt   time.Time   `json:"createdAt" bson:"createdAt"`
}

type FindAllOptions struct {
	UnreadOnly bool
	Offset     *int32
	Limit      *int32
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithUnreadOnly(unreadOnly bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.UnreadOnly = unreadOnly
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type InboxRepo interface {
	Insert(c ctx.Ctx, n *Notification) error
	FindAll(c ctx.Ctx, recipientId user.UserID, opts ...FindAllOptionsFunc) ([]*Notification, error)
	CountUnread(c ctx.Ctx, recipientId user.UserID) (int, error)
	// MarkRead returns domain.ErrNotFound if the notification is not the recipient's
	MarkRead(c ctx.Ctx, recipientId user.UserID, id string) error
	MarkAllRead(c ctx.Ctx, recipientId user.UserID) (int, error)
}

type InboxUseCase interface {
	FindAll(c ctx.Ctx, recipientId user.UserID, opts ...FindAllOptionsFunc) ([]*Notification, error)
	CountUnread(c ctx.Ctx, recipientId user.UserID) (int, error)
	MarkRead(c ctx.Ctx, recipientId user.UserID, id string) error
	MarkAllRead(c ctx.Ctx, recipientId user.UserID) (int, error)
}

// NewEvent stamps a new event of kind about an auction
func NewEvent(kind Kind, auctionId string, at time.Time) *Event {
	return &Event{
		Id:        uuid.NewString(),
		AuctionId: auctionId,
		Kind:      kind,
		CreatedAt: at,
	}
}
