package bid

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain/user"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusOutbid    Status = "OUTBID"
	StatusWinning   Status = "WINNING"
	StatusCancelled Status = "CANCELLED"
)

// Bid is an offer on an auction. Amount and AuctionId never change after insert.
type Bid struct {
	Id        string          `json:"id" bson:"_id"`
	AuctionId string          `json:"auctionId" bson:"auctionId"`
	BidderId  user.UserID     `json:"bidderId" bson:"bidderId"`
	Amount    decimal.Decimal `json:"amount" bson:"amount"`
	Timestamp time.Time       `json:"timestamp" bson:"timestamp"`
	Status    Status          `json:"status" bson:"status"`
	Notes     string          `json:"notes,omitempty" bson:"notes,omitempty"`
}

// PricePoint is one step of an auction's price history
type PricePoint struct {
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

// Placement is the outcome of a successful bid
type Placement struct {
	Bid *Bid `json:"bid"`
	// PreviousLeader is the bid that was WINNING right before this one, if any
	PreviousLeader *Bid `json:"-"`
	Demoted        int  `json:"-"`
}

type PlaceParams struct {
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes" validate:"max=256"`
}

type UseCase interface {
	PlaceBid(c ctx.Ctx, auctionId string, bidderId user.UserID, amount decimal.Decimal, notes string) (*Bid, error)
	CancelBid(c ctx.Ctx, bidId string, actor user.UserID) (*Bid, error)
	Get(c ctx.Ctx, bidId string) (*Bid, error)
	FindByAuction(c ctx.Ctx, auctionId string, opts ...FindAllOptionsFunc) ([]*Bid, error)
	FindByBidder(c ctx.Ctx, bidderId user.UserID, opts ...FindAllOptionsFunc) ([]*Bid, error)
	Highest(c ctx.Ctx, auctionId string) (*Bid, error)
	PriceTrend(c ctx.Ctx, auctionId string) ([]PricePoint, error)
}

type Repo interface {
	Get(c ctx.Ctx, id string) (*Bid, error)
	Insert(c ctx.Ctx, b *Bid) error
	UpdateStatus(c ctx.Ctx, id string, status Status) error
	FindByAuction(c ctx.Ctx, auctionId string, opts ...FindAllOptionsFunc) ([]*Bid, error)
	FindByBidder(c ctx.Ctx, bidderId user.UserID, opts ...FindAllOptionsFunc) ([]*Bid, error)
	// Highest returns the highest WINNING or ACTIVE bid, domain.ErrNotFound if none
	Highest(c ctx.Ctx, auctionId string) (*Bid, error)
	// DemoteBelow marks every ACTIVE or WINNING bid of the auction with an
	// amount strictly below amount as OUTBID, skipping exceptId
	DemoteBelow(c ctx.Ctx, auctionId string, amount decimal.Decimal, exceptId string) (int, error)
}
