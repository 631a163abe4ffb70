package auction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain/payment"
	"github.com/x-xyz/goauction/domain/user"
)

// Auction is a listed item and its bidding state
type Auction struct {
	Id              string           `json:"id" bson:"_id"`
	Title           string           `json:"title" bson:"title"`
	Description     string           `json:"description" bson:"description"`
	Category        string           `json:"category" bson:"category"`
	ImageUrls       []string         `json:"imageUrls" bson:"imageUrls"`
	StartingPrice   decimal.Decimal  `json:"startingPrice" bson:"startingPrice"`
	ReservePrice    *decimal.Decimal `json:"reservePrice,omitempty" bson:"reservePrice,omitempty"`
	StartDate       time.Time        `json:"startDate" bson:"startDate"`
	EndDate         time.Time        `json:"endDate" bson:"endDate"`
	SellerId        user.UserID      `json:"sellerId" bson:"sellerId"`
	CurrentPrice    decimal.Decimal  `json:"currentPrice" bson:"currentPrice"`
	HighestBidderId *user.UserID     `json:"highestBidderId,omitempty" bson:"highestBidderId,omitempty"`
	HighestBidId    string           `json:"highestBidId,omitempty" bson:"highestBidId,omitempty"`
	Status          Status           `json:"status" bson:"status"`
	TotalBids       int              `json:"totalBids" bson:"totalBids"`
	Paid            bool             `json:"paid" bson:"paid"`
	Version         int64            `json:"version" bson:"version"`
	CreatedAt       time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// IsActive reports whether bids are accepted at now
func (a *Auction) IsActive(now time.Time) bool {
	return a.Status == StatusActive && !now.Before(a.StartDate) && now.Before(a.EndDate)
}

// HasEnded reports whether the bidding window is over, whatever the status
func (a *Auction) HasEnded(now time.Time) bool {
	return !now.Before(a.EndDate) || a.Status == StatusEnded
}

func (a *Auction) HasBids() bool {
	return a.TotalBids > 0
}

// IsSeller reports whether id listed this auction
func (a *Auction) IsSeller(id user.UserID) bool {
	return a.SellerId == id
}

// IsHighestBidder reports whether id currently leads the auction
func (a *Auction) IsHighestBidder(id user.UserID) bool {
	return a.HighestBidderId != nil && *a.HighestBidderId == id
}

// ReserveMet is true when no reserve is set or the current price reaches it
func (a *Auction) ReserveMet() bool {
	return a.ReservePrice == nil || a.CurrentPrice.GreaterThanOrEqual(*a.ReservePrice)
}

// Clone returns a deep copy so callers can mutate without touching shared state
func (a *Auction) Clone() *Auction {
	cp := *a
	if a.ImageUrls != nil {
		cp.ImageUrls = append([]string(nil), a.ImageUrls...)
	}
	if a.ReservePrice != nil {
		r := *a.ReservePrice
		cp.ReservePrice = &r
	}
	if a.HighestBidderId != nil {
		h := *a.HighestBidderId
		cp.HighestBidderId = &h
	}
	return &cp
}

// CreateParams describes a new listing
type CreateParams struct {
	Title         string           `json:"title" validate:"max=200"`
	Description   string           `json:"description" validate:"max=2000"`
	Category      string           `json:"category" validate:"max=50"`
	ImageUrls     []string         `json:"imageUrls" validate:"max=10,dive,max=2048"`
	StartingPrice decimal.Decimal  `json:"startingPrice" validate:"dscale=2"`
	ReservePrice  *decimal.Decimal `json:"reservePrice" validate:"omitempty,dpositive,dscale=2"`
	StartDate     time.Time        `json:"startDate"`
	EndDate       time.Time        `json:"endDate"`
	SellerId      user.UserID      `json:"-"`
}

// Patch holds the fields a seller may change. Nil fields are left untouched.
type Patch struct {
	Title         *string          `json:"title" validate:"omitempty,max=200"`
	Description   *string          `json:"description" validate:"omitempty,max=2000"`
	Category      *string          `json:"category" validate:"omitempty,max=50"`
	ImageUrls     *[]string        `json:"imageUrls" validate:"omitempty,max=10,dive,max=2048"`
	StartingPrice *decimal.Decimal `json:"startingPrice" validate:"omitempty,dscale=2"`
	ReservePrice  *decimal.Decimal `json:"reservePrice" validate:"omitempty,dpositive,dscale=2"`
	StartDate     *time.Time       `json:"startDate"`
	EndDate       *time.Time       `json:"endDate"`
}

func (p *Patch) IsEmpty() bool {
	return p == nil || (p.Title == nil && p.Description == nil && p.Category == nil && p.ImageUrls == nil &&
		p.StartingPrice == nil && p.ReservePrice == nil && p.StartDate == nil && p.EndDate == nil)
}

// MergeInto copies every non-nil field onto a. A new starting price also
// resets the current price, which is only legal while there are no bids.
func (p *Patch) MergeInto(a *Auction) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.ImageUrls != nil {
		a.ImageUrls = append([]string(nil), (*p.ImageUrls)...)
	}
	if p.StartingPrice != nil {
		a.StartingPrice = *p.StartingPrice
		a.CurrentPrice = *p.StartingPrice
	}
	if p.ReservePrice != nil {
		r := *p.ReservePrice
		a.ReservePrice = &r
	}
	if p.StartDate != nil {
		a.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		a.EndDate = *p.EndDate
	}
}

type UseCase interface {
	Create(c ctx.Ctx, params *CreateParams) (*Auction, error)
	Get(c ctx.Ctx, id string) (*Auction, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Auction, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)

	Start(c ctx.Ctx, id string) (*Auction, error)
	End(c ctx.Ctx, id string) (*Auction, error)
	Cancel(c ctx.Ctx, id string) (*Auction, error)
	Update(c ctx.Ctx, id string, patch *Patch) (*Auction, error)
	Delete(c ctx.Ctx, id string) error
	// MarkPaid settles an ended auction for its winner and records the payment
	MarkPaid(c ctx.Ctx, id string, payer user.UserID, params *payment.PayParams) (*payment.Payment, error)
	Payment(c ctx.Ctx, id string) (*payment.Payment, error)
	SellerStats(c ctx.Ctx, sellerId user.UserID) (*SellerStats, error)

	// FindDueToStart and FindExpiredActive feed the scheduler sweeps
	FindDueToStart(c ctx.Ctx, limit int) ([]*Auction, error)
	FindExpiredActive(c ctx.Ctx, limit int) ([]*Auction, error)
}

type Repo interface {
	Get(c ctx.Ctx, id string) (*Auction, error)
	Insert(c ctx.Ctx, a *Auction) error
	// Save replaces the stored auction only if its version is still expectVersion,
	// otherwise it fails with domain.ErrConflict
	Save(c ctx.Ctx, a *Auction, expectVersion int64) error
	Remove(c ctx.Ctx, id string) error
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Auction, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	FindExpiredActive(c ctx.Ctx, now time.Time, limit int) ([]*Auction, error)
	FindDueToStart(c ctx.Ctx, now time.Time, limit int) ([]*Auction, error)
}

// Locker serializes every state change of one auction
type Locker interface {
	Lock(c ctx.Ctx, auctionId string) (func(), error)
}
