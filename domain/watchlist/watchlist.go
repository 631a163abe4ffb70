package watchlist

import (
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/user"
)

// Entry is a saved auction. A user watches an auction at most once.
type Entry struct {
	Id        string      `json:"id" bson:"_id"`
	UserId    user.UserID `json:"userId" bson:"userId"`
	AuctionId string      `json:"auctionId" bson:"auctionId"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
}

type UseCase interface {
	// Add is idempotent, watching twice returns the first entry
	Add(c ctx.Ctx, userId user.UserID, auctionId string) (*Entry, error)
	Remove(c ctx.Ctx, userId user.UserID, auctionId string) error
	IsWatched(c ctx.Ctx, userId user.UserID, auctionId string) (bool, error)
	// List returns the watched auctions, newest entry first. Deleted auctions are skipped.
	List(c ctx.Ctx, userId user.UserID, offset, limit int32) ([]*auction.Auction, error)
}

type Repo interface {
	// Insert fails with domain.ErrConflict when the pair already exists
	Insert(c ctx.Ctx, e *Entry) error
	Get(c ctx.Ctx, userId user.UserID, auctionId string) (*Entry, error)
	Remove(c ctx.Ctx, userId user.UserID, auctionId string) error
	FindByUser(c ctx.Ctx, userId user.UserID, offset, limit int) ([]*Entry, error)
}
