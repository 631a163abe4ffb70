package usecase

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	bv "github.com/x-xyz/goauction/base/validator"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/notification"
	"github.com/x-xyz/goauction/domain/payment"
	"github.com/x-xyz/goauction/domain/user"
)

var (
	met     metrics.Service
	metOnce sync.Once
)

type AuctionUseCaseCfg struct {
	Repo        auction.Repo
	PaymentRepo payment.Repo
	Locker      auction.Locker
	Notifier    notification.Notifier
	UserLookup  user.Lookup
	Validator   *validator.Validate
	Clock       domain.Clock
}

type impl struct {
	repo       auction.Repo
	payments   payment.Repo
	locker     auction.Locker
	notifier   notification.Notifier
	userLookup user.Lookup
	validate   *validator.Validate
	clock      domain.Clock
}

func New(cfg *AuctionUseCaseCfg) auction.UseCase {
	metOnce.Do(func() {
		met = metrics.New("auction")
	})
	clock := cfg.Clock
	if clock == nil {
		clock = domain.SystemClock()
	}
	return &impl{
		repo:       cfg.Repo,
		payments:   cfg.PaymentRepo,
		locker:     cfg.Locker,
		notifier:   cfg.Notifier,
		userLookup: cfg.UserLookup,
		validate:   cfg.Validator,
		clock:      clock,
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validationErrorOf(err error) error {
	if field, tag, ok := bv.FirstFailure(err); ok {
		return domain.NewValidationError(field, "failed on "+tag)
	}
	return domain.NewValidationError("", err.Error())
}

func (im *impl) Create(c ctx.Ctx, params *auction.CreateParams) (*auction.Auction, error) {
	switch {
	case isBlank(params.Title):
		return nil, domain.NewValidationError("title", "must not be blank")
	case isBlank(params.Description):
		return nil, domain.NewValidationError("description", "must not be blank")
	case !params.StartingPrice.IsPositive():
		return nil, domain.NewValidationError("startingPrice", "must be greater than 0")
	case params.StartDate.IsZero() || params.EndDate.IsZero():
		return nil, domain.NewValidationError("startDate", "start and end date are required")
	case !params.StartDate.Before(params.EndDate):
		return nil, domain.NewValidationError("endDate", "must be after start date")
	case params.SellerId.IsZero():
		return nil, domain.NewValidationError("sellerId", "required")
	}
	if im.validate != nil {
		if err := im.validate.Struct(params); err != nil {
			return nil, validationErrorOf(err)
		}
	}

	if _, err := im.userLookup.ById(c, params.SellerId); errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewValidationError("sellerId", "unknown seller")
	} else if err != nil {
		c.WithField("err", err).Error("userLookup.ById failed")
		return nil, err
	}

	now := im.clock.Now()
	a := &auction.Auction{
		Id:            uuid.NewString(),
		Title:         strings.TrimSpace(params.Title),
		Description:   params.Description,
		Category:      params.Category,
		ImageUrls:     params.ImageUrls,
		StartingPrice: params.StartingPrice,
		ReservePrice:  params.ReservePrice,
		StartDate:     params.StartDate.UTC(),
		EndDate:       params.EndDate.UTC(),
		SellerId:      params.SellerId,
		CurrentPrice:  params.StartingPrice,
		Status:        auction.StatusDraft,
		TotalBids:     0,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if a.ImageUrls == nil {
		a.ImageUrls = []string{}
	}

	if err := im.repo.Insert(c, a); err != nil {
		c.WithField("err", err).Error("repo.Insert failed")
		return nil, err
	}
	met.BumpSum("created", 1)
	return a, nil
}

func (im *impl) Get(c ctx.Ctx, id string) (*auction.Auction, error) {
	a, err := im.repo.Get(c, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewNotFoundError("auction " + id + " not found")
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "auctionId": id}).Error("repo.Get failed")
		return nil, err
	}
	return a, nil
}

func (im *impl) FindAll(c ctx.Ctx, opts ...auction.FindAllOptionsFunc) ([]*auction.Auction, error) {
	res, err := im.repo.FindAll(c, opts...)
	if err != nil && !errors.Is(err, domain.ErrValidation) {
		c.WithField("err", err).Error("repo.FindAll failed")
	}
	return res, err
}

func (im *impl) Count(c ctx.Ctx, opts ...auction.FindAllOptionsFunc) (int, error) {
	n, err := im.repo.Count(c, opts...)
	if err != nil && !errors.Is(err, domain.ErrValidation) {
		c.WithField("err", err).Error("repo.Count failed")
	}
	return n, err
}

// mutate runs fn on a copy of the auction under its lock and saves the copy
// if the stored version did not move. fn returns false to skip saving.
func (im *impl) mutate(c ctx.Ctx, id string, fn func(a *auction.Auction, now time.Time) (bool, error)) (prev, next *auction.Auction, err error) {
	c = ctx.WithLogFields(c, log.Fields{"auctionId": id})

	unlock, err := im.locker.Lock(c, id)
	if err != nil {
		return nil, nil, err
	}
	defer unlock()

	prev, err = im.Get(c, id)
	if err != nil {
		return nil, nil, err
	}

	now := im.clock.Now()
	next = prev.Clone()
	save, err := fn(next, now)
	if err != nil {
		return nil, nil, err
	}
	if !save {
		return prev, next, nil
	}

	next.Version = prev.Version + 1
	next.UpdatedAt = now
	if err := im.repo.Save(c, next, prev.Version); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			met.BumpSum("save.conflict", 1)
			c.WithField("err", err).Warn("auction changed concurrently")
		} else {
			c.WithField("err", err).Error("repo.Save failed")
		}
		return nil, nil, err
	}
	return prev, next, nil
}

func (im *impl) transit(c ctx.Ctx, id string, t auction.Transition) (*auction.Auction, error) {
	_, next, err := im.mutate(c, id, func(a *auction.Auction, now time.Time) (bool, error) {
		to, err := a.Status.Apply(t)
		if err != nil {
			return false, err
		}
		a.Status = to
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	met.BumpSum("transition", 1, "to", string(next.Status))
	return next, nil
}

func (im *impl) event(kind notification.Kind, a *auction.Auction) *notification.Event {
	evt := notification.NewEvent(kind, a.Id, im.clock.Now())
	amount := a.CurrentPrice
	evt.Payload = notification.Payload{
		Title:  a.Title,
		Amount: &amount,
		Status: string(a.Status),
	}
	return evt
}

func (im *impl) Start(c ctx.Ctx, id string) (*auction.Auction, error) {
	a, err := im.transit(c, id, auction.TransitionStart)
	if err != nil {
		return nil, err
	}

	im.notifier.Broadcast(c, a.Id, im.event(notification.KindAuctionStarted, a))
	return a, nil
}

// End is the only path setting an auction ENDED
func (im *impl) End(c ctx.Ctx, id string) (*auction.Auction, error) {
	a, err := im.transit(c, id, auction.TransitionEnd)
	if err != nil {
		return nil, err
	}

	ended := im.event(notification.KindAuctionEnded, a)
	if a.HighestBidderId != nil {
		winner := *a.HighestBidderId
		ended.Payload.WinnerId = &winner
		ended.BidId = a.HighestBidId

		won := im.event(notification.KindAuctionWon, a)
		won.BidId = a.HighestBidId
		won.Payload.WinnerId = &winner
		im.notifier.NotifyUser(c, winner, won)
	} else {
		// no winner, no price to report
		ended.Payload.Amount = nil
	}

	im.notifier.NotifyUser(c, a.SellerId, ended)
	im.notifier.Broadcast(c, a.Id, ended)
	return a, nil
}

func (im *impl) Cancel(c ctx.Ctx, id string) (*auction.Auction, error) {
	a, err := im.transit(c, id, auction.TransitionCancel)
	if err != nil {
		return nil, err
	}

	im.notifier.Broadcast(c, a.Id, im.event(notification.KindAuctionCancelled, a))
	return a, nil
}

func (im *impl) validatePatch(patch *auction.Patch, now time.Time) error {
	switch {
	case patch.IsEmpty():
		return domain.NewValidationError("patch", "nothing to update")
	case patch.Title != nil && isBlank(*patch.Title):
		return domain.NewValidationError("title", "must not be blank")
	case patch.Description != nil && isBlank(*patch.Description):
		return domain.NewValidationError("description", "must not be blank")
	case patch.StartingPrice != nil && !patch.StartingPrice.IsPositive():
		return domain.NewValidationError("startingPrice", "must be greater than 0")
	case patch.EndDate != nil && !patch.EndDate.After(now):
		return domain.NewValidationError("endDate", "must be in the future")
	}
	if im.validate != nil {
		if err := im.validate.Struct(patch); err != nil {
			return validationErrorOf(err)
		}
	}
	return nil
}

func (im *impl) Update(c ctx.Ctx, id string, patch *auction.Patch) (*auction.Auction, error) {
	_, next, err := im.mutate(c, id, func(a *auction.Auction, now time.Time) (bool, error) {
		if a.Status.IsTerminal() {
			return false, domain.NewInvalidStateError("cannot modify auction in status " + string(a.Status))
		}
		if a.HasBids() {
			return false, domain.NewInvalidStateError("cannot modify auction with existing bids")
		}
		if err := im.validatePatch(patch, now); err != nil {
			return false, err
		}

		patch.MergeInto(a)
		if !a.StartDate.Before(a.EndDate) {
			return false, domain.NewValidationError("endDate", "must be after start date")
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

func (im *impl) Delete(c ctx.Ctx, id string) error {
	c = ctx.WithLogFields(c, log.Fields{"auctionId": id})

	unlock, err := im.locker.Lock(c, id)
	if err != nil {
		return err
	}
	defer unlock()

	a, err := im.Get(c, id)
	if err != nil {
		return err
	}
	if a.Status != auction.StatusDraft {
		return domain.NewInvalidStateError("cannot delete auction in status " + string(a.Status))
	}

	if err := im.repo.Remove(c, id); err != nil {
		c.WithField("err", err).Error("repo.Remove failed")
		return err
	}
	met.BumpSum("deleted", 1)
	return nil
}

func (im *impl) validatePay(params *payment.PayParams) error {
	switch {
	case !params.Method.IsValid():
		return domain.NewValidationError("method", "unsupported payment method")
	case params.Method == payment.MethodPaypal && isBlank(params.OrderId):
		return domain.NewValidationError("orderId", "required for PAYPAL")
	}
	if im.validate != nil {
		if err := im.validate.Struct(params); err != nil {
			return validationErrorOf(err)
		}
	}
	return nil
}

func transactionIdOf(params *payment.PayParams) string {
	if params.Method == payment.MethodPaypal {
		return strings.TrimSpace(params.OrderId)
	}
	return "TXN-" + strings.ToUpper(uuid.NewString()[:8])
}

// recordPayment stores the payment of a. A payment left behind by an attempt
// whose auction save failed is reused.
func (im *impl) recordPayment(c ctx.Ctx, a *auction.Auction, payer user.UserID, params *payment.PayParams, now time.Time) (*payment.Payment, error) {
	p := &payment.Payment{
		Id:            uuid.NewString(),
		AuctionId:     a.Id,
		PayerId:       payer,
		SellerId:      a.SellerId,
		Amount:        a.CurrentPrice,
		Method:        params.Method,
		TransactionId: transactionIdOf(params),
		Status:        payment.StatusSuccess,
		CreatedAt:     now,
	}
	err := im.payments.Insert(c, p)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		c.WithField("err", err).Error("payments.Insert failed")
		return nil, err
	}

	prev, err := im.payments.FindByAuction(c, a.Id)
	if err != nil {
		c.WithField("err", err).Error("payments.FindByAuction failed")
		return nil, err
	}
	met.BumpSum("payment.reused", 1)
	return prev, nil
}

func (im *impl) MarkPaid(c ctx.Ctx, id string, payer user.UserID, params *payment.PayParams) (*payment.Payment, error) {
	pay := payment.PayParams{}
	if params != nil {
		pay = *params
	}
	if pay.Method == "" {
		pay.Method = payment.MethodCard
	}
	params = &pay
	if err := im.validatePay(params); err != nil {
		return nil, err
	}

	var paid *payment.Payment
	_, next, err := im.mutate(c, id, func(a *auction.Auction, now time.Time) (bool, error) {
		switch {
		case a.Status != auction.StatusEnded:
			return false, domain.NewInvalidStateError("cannot pay auction in status " + string(a.Status))
		case !a.IsHighestBidder(payer):
			return false, domain.NewForbiddenError("only the winning bidder can pay")
		case a.Paid:
			return false, domain.NewInvalidStateError("auction already paid")
		}
		p, err := im.recordPayment(c, a, payer, params, now)
		if err != nil {
			return false, err
		}
		paid = p
		a.Paid = true
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	evt := im.event(notification.KindPaymentReceived, next)
	evt.ActorId = payer
	evt.BidId = next.HighestBidId
	im.notifier.NotifyUser(c, next.SellerId, evt)
	met.BumpSum("paid", 1, "method", string(paid.Method))
	return paid, nil
}

func (im *impl) Payment(c ctx.Ctx, id string) (*payment.Payment, error) {
	p, err := im.payments.FindByAuction(c, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewNotFoundError("auction " + id + " is not paid")
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "auctionId": id}).Error("payments.FindByAuction failed")
		return nil, err
	}
	return p, nil
}

func (im *impl) SellerStats(c ctx.Ctx, sellerId user.UserID) (*auction.SellerStats, error) {
	c = ctx.WithLogFields(c, log.Fields{"sellerId": sellerId})

	auctions, err := im.repo.FindAll(c, auction.WithSeller(sellerId))
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	payments, err := im.payments.FindBySeller(c, sellerId)
	if err != nil {
		c.WithField("err", err).Error("payments.FindBySeller failed")
		return nil, err
	}
	return auction.NewSellerStats(auctions, payments), nil
}

func (im *impl) FindDueToStart(c ctx.Ctx, limit int) ([]*auction.Auction, error) {
	res, err := im.repo.FindDueToStart(c, im.clock.Now(), limit)
	if err != nil {
		c.WithField("err", err).Error("repo.FindDueToStart failed")
		return nil, xerrors.Errorf("find due auctions: %w", err)
	}
	return res, nil
}

func (im *impl) FindExpiredActive(c ctx.Ctx, limit int) ([]*auction.Auction, error) {
	res, err := im.repo.FindExpiredActive(c, im.clock.Now(), limit)
	if err != nil {
		c.WithField("err", err).Error("repo.FindExpiredActive failed")
		return nil, xerrors.Errorf("find expired auctions: %w", err)
	}
	return res, nil
}
