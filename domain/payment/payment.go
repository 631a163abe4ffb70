package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain/user"
)

type Method string

const (
	MethodCard   Method = "CARD"
	MethodPaypal Method = "PAYPAL"
)

func (m Method) IsValid() bool {
	return m == MethodCard || m == MethodPaypal
}

type Status string

const (
	StatusSuccess Status = "SUCCESS"
)

// Payment settles an ended auction. There is at most one per auction.
type Payment struct {
	Id            string          `json:"id" bson:"_id"`
	AuctionId     string          `json:"auctionId" bson:"auctionId"`
	PayerId       user.UserID     `json:"payerId" bson:"payerId"`
	SellerId      user.UserID     `json:"sellerId" bson:"sellerId"`
	Amount        decimal.Decimal `json:"amount" bson:"amount"`
	Method        Method          `json:"method" bson:"method"`
	TransactionId string          `json:"transactionId" bson:"transactionId"`
	Status        Status          `json:"status" bson:"status"`
	CreatedAt     time.Time       `json:"createdAt" bson:"createdAt"`
}

// PayParams is what the winner submits. OrderId is the PayPal order and is
// required for MethodPaypal.
type PayParams struct {
	Method  Method `json:"method"`
	OrderId string `json:"orderId" validate:"max=128"`
}

type Repo interface {
	// Insert fails with domain.ErrConflict when the auction already has a payment
	Insert(c ctx.Ctx, p *Payment) error
	FindByAuction(c ctx.Ctx, auctionId string) (*Payment, error)
	FindBySeller(c ctx.Ctx, sellerId user.UserID) ([]*Payment, error)
}
