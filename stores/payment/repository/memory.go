package repository

import (
	"sort"
	"sync"

	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/payment"
	"github.com/x-xyz/goauction/domain/user"
)

type memoryImpl struct {
	mu        sync.RWMutex
	byAuction map[string]payment.Payment
}

// NewMemory keeps payments in process, for tests and single node demos
func NewMemory() payment.Repo {
	return &memoryImpl{byAuction: make(map[string]payment.Payment)}
}

func (im *memoryImpl) Insert(c ctx.Ctx, p *payment.Payment) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	if _, ok := im.byAuction[p.AuctionId]; ok {
		return xerrors.Errorf("payment of %s: %w", p.AuctionId, domain.ErrConflict)
	}
	im.byAuction[p.AuctionId] = *p
	return nil
}

func (im *memoryImpl) FindByAuction(c ctx.Ctx, auctionId string) (*payment.Payment, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	p, ok := im.byAuction[auctionId]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (im *memoryImpl) FindBySeller(c ctx.Ctx, sellerId user.UserID) ([]*payment.Payment, error) {
	im.mu.RLock()
	res := []*payment.Payment{}
	for _, p := range im.byAuction {
		if p.SellerId == sellerId {
			cp := p
			res = append(res, &cp)
		}
	}
	im.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.Before(res[j].CreatedAt)
		}
		return res[i].Id < res[j].Id
	})
	return res, nil
}
