package usecase

import (
	"errors"

	"github.com/google/uuid"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/user"
	"github.com/x-xyz/goauction/domain/watchlist"
)

const maxPage = 100

type WatchlistUseCaseCfg struct {
	Repo        watchlist.Repo
	AuctionRepo auction.Repo
	Clock       domain.Clock
}

type impl struct {
	repo        watchlist.Repo
	auctionRepo auction.Repo
	clock       domain.Clock
}

func New(cfg *WatchlistUseCaseCfg) watchlist.UseCase {
	clock := cfg.Clock
	if clock == nil {
		clock = domain.SystemClock()
	}
	return &impl{
		repo:        cfg.Repo,
		auctionRepo: cfg.AuctionRepo,
		clock:       clock,
	}
}

func (im *impl) Add(c ctx.Ctx, userId user.UserID, auctionId string) (*watchlist.Entry, error) {
	c = ctx.WithLogFields(c, log.Fields{"userId": userId, "auctionId": auctionId})

	if e, err := im.repo.Get(c, userId, auctionId); err == nil {
		return e, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		c.WithField("err", err).Error("repo.Get failed")
		return nil, err
	}

	if _, err := im.auctionRepo.Get(c, auctionId); errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewValidationError("auctionId", "unknown auction")
	} else if err != nil {
		c.WithField("err", err).Error("auctionRepo.Get failed")
		return nil, err
	}

	e := &watchlist.Entry{
		Id:        uuid.NewString(),
		UserId:    userId,
		AuctionId: auctionId,
		CreatedAt: im.clock.Now(),
	}
	if err := im.repo.Insert(c, e); errors.Is(err, domain.ErrConflict) {
		// lost a race with a concurrent add of the same pair
		return im.repo.Get(c, userId, auctionId)
	} else if err != nil {
		c.WithField("err", err).Error("repo.Insert failed")
		return nil, err
	}
	return e, nil
}

func (im *impl) Remove(c ctx.Ctx, userId user.UserID, auctionId string) error {
	if err := im.repo.Remove(c, userId, auctionId); err != nil && !errors.Is(err, domain.ErrNotFound) {
		c.WithFields(log.Fields{"err": err, "auctionId": auctionId}).Error("repo.Remove failed")
		return err
	}
	return nil
}

func (im *impl) IsWatched(c ctx.Ctx, userId user.UserID, auctionId string) (bool, error) {
	if _, err := im.repo.Get(c, userId, auctionId); errors.Is(err, domain.ErrNotFound) {
		return false, nil
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "auctionId": auctionId}).Error("repo.Get failed")
		return false, err
	}
	return true, nil
}

func (im *impl) List(c ctx.Ctx, userId user.UserID, offset, limit int32) ([]*auction.Auction, error) {
	if offset < 0 || limit < 0 {
		return nil, domain.NewValidationError("pagination", "offset and limit must not be negative")
	}
	if limit == 0 || limit > maxPage {
		limit = maxPage
	}

	entries, err := im.repo.FindByUser(c, userId, int(offset), int(limit))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "userId": userId}).Error("repo.FindByUser failed")
		return nil, err
	}

	res := make([]*auction.Auction, 0, len(entries))
	for _, e := range entries {
		a, err := im.auctionRepo.Get(c, e.AuctionId)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		} else if err != nil {
			c.WithFields(log.Fields{"err": err, "auctionId": e.AuctionId}).Error("auctionRepo.Get failed")
			return nil, err
		}
		res = append(res, a)
	}
	return res, nil
}
