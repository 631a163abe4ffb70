package notification

import (
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain/user"
)

// Subscriber is a live session able to receive events
type Subscriber interface {
	Id() string
	UserId() user.UserID
	// Send must not block. It returns false when the event was dropped.
	Send(evt *Event) bool
}

// Registry tracks which live sessions watch which auctions
type Registry interface {
	// Connect makes s reachable by SendToUser
	Connect(s Subscriber)
	// Add connects s and subscribes it to the auction
	Add(auctionId string, s Subscriber)
	Remove(auctionId, subscriberId string)
	// RemoveAll disconnects the subscriber from everything
	RemoveAll(subscriberId string)
	Broadcast(auctionId string, evt *Event) int
	SendToUser(userId user.UserID, evt *Event) int
	Count(auctionId string) int
	Close()
}

// Envelope addresses an event to either an auction or a user
type Envelope struct {
	AuctionId string      `json:"auctionId,omitempty"`
	UserId    user.UserID `json:"userId,omitempty"`
	Event     *Event      `json:"event"`
}

// Relay carries envelopes to every API replica so each one can deliver to
// its own local sessions
type Relay interface {
	Publish(c ctx.Ctx, env *Envelope) error
	// Subscribe blocks, calling handle for every received envelope until c is done
	Subscribe(c ctx.Ctx, handle func(*Envelope)) error
}

// Archive keeps a durable copy of every broadcast event
type Archive interface {
	Append(c ctx.Ctx, evt *Event) error
}
