package repository

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/bid"
	"github.com/x-xyz/goauction/domain/user"
	"github.com/x-xyz/goauction/service/memtx"
)

type memoryImpl struct {
	mu   sync.RWMutex
	bids map[string]*bid.Bid
}

// NewMemory keeps bids in process, joining memtx transactions
func NewMemory() bid.Repo {
	return &memoryImpl{bids: make(map[string]*bid.Bid)}
}

func clone(b *bid.Bid) *bid.Bid {
	cp := *b
	return &cp
}

func (im *memoryImpl) Get(c ctx.Ctx, id string) (*bid.Bid, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	b, ok := im.bids[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(b), nil
}

func (im *memoryImpl) Insert(c ctx.Ctx, b *bid.Bid) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	if _, ok := im.bids[b.Id]; ok {
		return xerrors.Errorf("bid %s: %w", b.Id, domain.ErrConflict)
	}
	im.bids[b.Id] = clone(b)
	memtx.OnRollback(c, func() {
		im.mu.Lock()
		defer im.mu.Unlock()
		delete(im.bids, b.Id)
	})
	return nil
}

// setStatusLocked registers the undo of a status change
func (im *memoryImpl) setStatusLocked(c ctx.Ctx, b *bid.Bid, status bid.Status) {
	prev := b.Status
	b.Status = status
	memtx.OnRollback(c, func() {
		im.mu.Lock()
		defer im.mu.Unlock()
		b.Status = prev
	})
}

func (im *memoryImpl) UpdateStatus(c ctx.Ctx, id string, status bid.Status) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	b, ok := im.bids[id]
	if !ok {
		return domain.ErrNotFound
	}
	im.setStatusLocked(c, b, status)
	return nil
}

func hasStatus(b *bid.Bid, statuses []bid.Status) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

func less(order bid.Order) func(x, y *bid.Bid) bool {
	return func(x, y *bid.Bid) bool {
		switch order {
		case bid.OrderAmountDesc:
			if r := x.Amount.Cmp(y.Amount); r != 0 {
				return r > 0
			}
			if !x.Timestamp.Equal(y.Timestamp) {
				return x.Timestamp.Before(y.Timestamp)
			}
		case bid.OrderTimeAsc:
			if !x.Timestamp.Equal(y.Timestamp) {
				return x.Timestamp.Before(y.Timestamp)
			}
		default:
			if !x.Timestamp.Equal(y.Timestamp) {
				return x.Timestamp.After(y.Timestamp)
			}
		}
		return x.Id < y.Id
	}
}

func (im *memoryImpl) find(match func(*bid.Bid) bool, optFns []bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	opts, err := bid.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	im.mu.RLock()
	res := []*bid.Bid{}
	for _, b := range im.bids {
		if match(b) && hasStatus(b, opts.Statuses) {
			res = append(res, clone(b))
		}
	}
	im.mu.RUnlock()

	lt := less(opts.Order)
	sort.Slice(res, func(i, j int) bool { return lt(res[i], res[j]) })

	offset, limit := pageOf(opts)
	if offset >= len(res) {
		return []*bid.Bid{}, nil
	}
	res = res[offset:]
	if limit > 0 && limit < len(res) {
		res = res[:limit]
	}
	return res, nil
}

func (im *memoryImpl) FindByAuction(c ctx.Ctx, auctionId string, opts ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	return im.find(func(b *bid.Bid) bool { return b.AuctionId == auctionId }, opts)
}

func (im *memoryImpl) FindByBidder(c ctx.Ctx, bidderId user.UserID, opts ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	return im.find(func(b *bid.Bid) bool { return b.BidderId == bidderId }, opts)
}

func (im *memoryImpl) Highest(c ctx.Ctx, auctionId string) (*bid.Bid, error) {
	res, err := im.FindByAuction(c, auctionId,
		bid.WithStatuses(liveStatuses...),
		bid.WithOrder(bid.OrderAmountDesc),
		bid.WithPagination(0, 1),
	)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, domain.ErrNotFound
	}
	return res[0], nil
}

func (im *memoryImpl) DemoteBelow(c ctx.Ctx, auctionId string, amount decimal.Decimal, exceptId string) (int, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	n := 0
	for _, b := range im.bids {
		if b.AuctionId != auctionId || b.Id == exceptId || !hasStatus(b, liveStatuses) || !b.Amount.LessThan(amount) {
			continue
		}
		im.setStatusLocked(c, b, bid.StatusOutbid)
		n++
	}
	return n, nil
}
