package usecase

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/bid"
	"github.com/x-xyz/goauction/domain/notification"
	"github.com/x-xyz/goauction/domain/user"
)

var (
	met     metrics.Service
	metOnce sync.Once
)

const maxNotes = 256

// DefaultMinIncrement is the smallest raise over the current price
var DefaultMinIncrement = decimal.NewFromInt(1)

type BidUseCaseCfg struct {
	Repo         bid.Repo
	AuctionRepo  auction.Repo
	Locker       auction.Locker
	Transactor   domain.Transactor
	Notifier     notification.Notifier
	Clock        domain.Clock
	MinIncrement decimal.Decimal
}

type impl struct {
	repo         bid.Repo
	auctionRepo  auction.Repo
	locker       auction.Locker
	tx           domain.Transactor
	notifier     notification.Notifier
	clock        domain.Clock
	minIncrement decimal.Decimal
}

func New(cfg *BidUseCaseCfg) bid.UseCase {
	metOnce.Do(func() {
		met = metrics.New("bid")
	})
	clock := cfg.Clock
	if clock == nil {
		clock = domain.SystemClock()
	}
	minIncrement := cfg.MinIncrement
	if !minIncrement.IsPositive() {
		minIncrement = DefaultMinIncrement
	}
	return &impl{
		repo:         cfg.Repo,
		auctionRepo:  cfg.AuctionRepo,
		locker:       cfg.Locker,
		tx:           cfg.Transactor,
		notifier:     cfg.Notifier,
		clock:        clock,
		minIncrement: minIncrement,
	}
}

// kindOf names the rejection reason for metrics
func kindOf(err error) string {
	for _, k := range []struct {
		err  error
		name string
	}{
		{domain.ErrAuctionClosed, "closed"},
		{domain.ErrInvalidBid, "invalid"},
		{domain.ErrValidation, "validation"},
		{domain.ErrNotFound, "not_found"},
		{domain.ErrConflict, "conflict"},
		{domain.ErrStorage, "storage"},
	} {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "unknown"
}

// checkBid applies the bidding rules in order, the first failure wins
func (im *impl) checkBid(a *auction.Auction, bidderId user.UserID, amount decimal.Decimal) error {
	now := im.clock.Now()
	switch {
	case !a.IsActive(now):
		return domain.NewAuctionClosedError("auction is not active")
	case a.IsSeller(bidderId):
		return domain.NewInvalidBidError("seller cannot bid on own auction")
	case !amount.GreaterThan(a.CurrentPrice):
		return domain.NewInvalidBidError("bid must exceed current price")
	case amount.LessThan(a.CurrentPrice.Add(im.minIncrement)):
		return domain.NewInvalidBidError("bid below minimum increment")
	case a.HasEnded(now):
		return domain.NewAuctionClosedError("auction has ended")
	}
	return nil
}

func (im *impl) PlaceBid(c ctx.Ctx, auctionId string, bidderId user.UserID, amount decimal.Decimal, notes string) (*bid.Bid, error) {
	defer met.BumpTime("place.time").End()
	c = ctx.WithLogFields(c, log.Fields{"auctionId": auctionId, "bidderId": bidderId})

	switch {
	case bidderId.IsZero():
		return nil, domain.NewValidationError("bidderId", "required")
	case len(notes) > maxNotes:
		return nil, domain.NewValidationError("notes", "too long")
	}

	placement, a, err := im.place(c, auctionId, bidderId, amount, notes)
	if err != nil {
		met.BumpSum("rejected", 1, "kind", kindOf(err))
		return nil, err
	}
	met.BumpSum("placed", 1)

	im.notifyPlaced(c, a, placement)
	return placement.Bid, nil
}

// place runs every check and write under the auction lock. Notifications
// are left to the caller so they go out after the lock is released.
func (im *impl) place(c ctx.Ctx, auctionId string, bidderId user.UserID, amount decimal.Decimal, notes string) (*bid.Placement, *auction.Auction, error) {
	unlock, err := im.locker.Lock(c, auctionId)
	if err != nil {
		return nil, nil, err
	}
	defer unlock()

	a, err := im.auctionRepo.Get(c, auctionId)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, domain.NewNotFoundError("auction " + auctionId + " not found")
	} else if err != nil {
		c.WithField("err", err).Error("auctionRepo.Get failed")
		return nil, nil, err
	}

	if err := im.checkBid(a, bidderId, amount); err != nil {
		return nil, nil, err
	}

	// captured before the save overwrites it
	prevLeaderId := a.HighestBidId

	b := &bid.Bid{
		Id:        uuid.NewString(),
		AuctionId: auctionId,
		BidderId:  bidderId,
		Amount:    amount,
		Timestamp: im.clock.Now(),
		Status:    bid.StatusWinning,
		Notes:     notes,
	}

	next := a.Clone()
	next.CurrentPrice = amount
	next.HighestBidderId = &bidderId
	next.HighestBidId = b.Id
	next.TotalBids++
	next.Version = a.Version + 1
	next.UpdatedAt = b.Timestamp

	placement := &bid.Placement{Bid: b}
	err = im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.repo.Insert(c, b); err != nil {
			c.WithField("err", err).Error("repo.Insert failed")
			return err
		}
		if err := im.auctionRepo.Save(c, next, a.Version); err != nil {
			c.WithField("err", err).Error("auctionRepo.Save failed")
			return err
		}
		n, err := im.repo.DemoteBelow(c, auctionId, amount, b.Id)
		if err != nil {
			c.WithField("err", err).Error("repo.DemoteBelow failed")
			return err
		}
		placement.Demoted = n
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrStorage) || errors.Is(err, domain.ErrConflict) {
			return nil, nil, err
		}
		return nil, nil, domain.NewStorageError(err)
	}

	if prevLeaderId != "" {
		if prev, err := im.repo.Get(c, prevLeaderId); err != nil {
			c.WithFields(log.Fields{"err": err, "bidId": prevLeaderId}).Warn("repo.Get previous leader failed")
		} else {
			placement.PreviousLeader = prev
		}
	}
	return placement, next, nil
}

func (im *impl) bidEvent(kind notification.Kind, a *auction.Auction, b *bid.Bid) *notification.Event {
	evt := notification.NewEvent(kind, a.Id, b.Timestamp)
	amount := b.Amount
	evt.BidId = b.Id
	evt.ActorId = b.BidderId
	evt.Payload = notification.Payload{
		Title:  a.Title,
		Amount: &amount,
		Status: string(a.Status),
	}
	return evt
}

func (im *impl) notifyPlaced(c ctx.Ctx, a *auction.Auction, p *bid.Placement) {
	im.notifier.Broadcast(c, a.Id, im.bidEvent(notification.KindNewBid, a, p.Bid))
	im.notifier.NotifyUser(c, p.Bid.BidderId, im.bidEvent(notification.KindBidConfirmed, a, p.Bid))

	if prev := p.PreviousLeader; prev != nil && prev.BidderId != p.Bid.BidderId {
		im.notifier.NotifyUser(c, prev.BidderId, im.bidEvent(notification.KindOutbid, a, p.Bid))
	}
}

func (im *impl) CancelBid(c ctx.Ctx, bidId string, actor user.UserID) (*bid.Bid, error) {
	b, err := im.Get(c, bidId)
	if err != nil {
		return nil, err
	}

	// bid statuses of an auction only move under its lock
	unlock, err := im.locker.Lock(c, b.AuctionId)
	if err != nil {
		return nil, err
	}
	defer unlock()

	b, err = im.Get(c, bidId)
	if err != nil {
		return nil, err
	}

	switch {
	case b.BidderId != actor:
		return nil, domain.NewForbiddenError("only the bidder can cancel a bid")
	case b.Status == bid.StatusWinning:
		return nil, domain.NewInvalidStateError("cannot cancel winning bid")
	case b.Status == bid.StatusCancelled:
		return nil, domain.NewInvalidStateError("bid already cancelled")
	}

	if err := im.repo.UpdateStatus(c, bidId, bid.StatusCancelled); err != nil {
		c.WithFields(log.Fields{"err": err, "bidId": bidId}).Error("repo.UpdateStatus failed")
		return nil, err
	}
	b.Status = bid.StatusCancelled
	met.BumpSum("cancelled", 1)
	return b, nil
}

func (im *impl) Get(c ctx.Ctx, bidId string) (*bid.Bid, error) {
	b, err := im.repo.Get(c, bidId)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewNotFoundError("bid " + bidId + " not found")
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "bidId": bidId}).Error("repo.Get failed")
		return nil, err
	}
	return b, nil
}

func (im *impl) FindByAuction(c ctx.Ctx, auctionId string, opts ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	res, err := im.repo.FindByAuction(c, auctionId, opts...)
	if err != nil && !errors.Is(err, domain.ErrValidation) {
		c.WithFields(log.Fields{"err": err, "auctionId": auctionId}).Error("repo.FindByAuction failed")
	}
	return res, err
}

func (im *impl) FindByBidder(c ctx.Ctx, bidderId user.UserID, opts ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	res, err := im.repo.FindByBidder(c, bidderId, opts...)
	if err != nil && !errors.Is(err, domain.ErrValidation) {
		c.WithFields(log.Fields{"err": err, "bidderId": bidderId}).Error("repo.FindByBidder failed")
	}
	return res, err
}

func (im *impl) Highest(c ctx.Ctx, auctionId string) (*bid.Bid, error) {
	b, err := im.repo.Highest(c, auctionId)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewNotFoundError("no bids on auction " + auctionId)
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "auctionId": auctionId}).Error("repo.Highest failed")
		return nil, err
	}
	return b, nil
}

// PriceTrend lists the amounts of the non cancelled bids in the order they were placed
func (im *impl) PriceTrend(c ctx.Ctx, auctionId string) ([]bid.PricePoint, error) {
	bids, err := im.repo.FindByAuction(c, auctionId,
		bid.WithStatuses(bid.StatusActive, bid.StatusWinning, bid.StatusOutbid),
		bid.WithOrder(bid.OrderTimeAsc),
	)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "auctionId": auctionId}).Error("repo.FindByAuction failed")
		return nil, err
	}

	res := make([]bid.PricePoint, 0, len(bids))
	for _, b := range bids {
		res = append(res, bid.PricePoint{Amount: b.Amount, Timestamp: b.Timestamp})
	}
	return res, nil
}
