package locker

import (
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/keylock"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/keys"
)

type localImpl struct {
	locks *keylock.KeyLock
}

// NewLocal serializes auctions inside one process
func NewLocal() auction.Locker {
	return &localImpl{locks: keylock.New()}
}

func (im *localImpl) Lock(c ctx.Ctx, auctionId string) (func(), error) {
	defer met.BumpTime("lock.time", "driver", "local").End()

	unlock, err := im.locks.Lock(c, keys.AuctionLock(auctionId))
	if err != nil {
		met.BumpSum("lock.err", 1, "driver", "local")
		c.WithField("err", err).WithField("auctionId", auctionId).Warn("acquire auction lock failed")
		return nil, xerrors.Errorf("auction %s busy: %w", auctionId, domain.ErrConflict)
	}
	return unlock, nil
}
