package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/service/memtx"
)

type memoryImpl struct {
	mu       sync.RWMutex
	auctions map[string]*auction.Auction
}

// NewMemory keeps auctions in process. Writes inside a memtx transaction
// are undone when the transaction fails.
func NewMemory() auction.Repo {
	return &memoryImpl{auctions: make(map[string]*auction.Auction)}
}

func (im *memoryImpl) Get(c ctx.Ctx, id string) (*auction.Auction, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	a, ok := im.auctions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a.Clone(), nil
}

func (im *memoryImpl) Insert(c ctx.Ctx, a *auction.Auction) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	if _, ok := im.auctions[a.Id]; ok {
		return xerrors.Errorf("auction %s: %w", a.Id, domain.ErrConflict)
	}
	im.auctions[a.Id] = a.Clone()
	memtx.OnRollback(c, func() {
		im.mu.Lock()
		defer im.mu.Unlock()
		delete(im.auctions, a.Id)
	})
	return nil
}

func (im *memoryImpl) Save(c ctx.Ctx, a *auction.Auction, expectVersion int64) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	prev, ok := im.auctions[a.Id]
	if !ok {
		return domain.ErrNotFound
	}
	if prev.Version != expectVersion {
		return xerrors.Errorf("auction %s version %d: %w", a.Id, expectVersion, domain.ErrConflict)
	}
	im.auctions[a.Id] = a.Clone()
	memtx.OnRollback(c, func() {
		im.mu.Lock()
		defer im.mu.Unlock()
		im.auctions[prev.Id] = prev
	})
	return nil
}

func (im *memoryImpl) Remove(c ctx.Ctx, id string) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	prev, ok := im.auctions[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(im.auctions, id)
	memtx.OnRollback(c, func() {
		im.mu.Lock()
		defer im.mu.Unlock()
		im.auctions[id] = prev
	})
	return nil
}

func match(a *auction.Auction, opts auction.FindAllOptions) bool {
	switch {
	case opts.Status != nil && a.Status != *opts.Status:
		return false
	case opts.SellerId != nil && a.SellerId != *opts.SellerId:
		return false
	case opts.Category != nil && a.Category != *opts.Category:
		return false
	case opts.MinPrice != nil && a.CurrentPrice.LessThan(*opts.MinPrice):
		return false
	case opts.MaxPrice != nil && a.CurrentPrice.GreaterThan(*opts.MaxPrice):
		return false
	case opts.StartBefore != nil && a.StartDate.After(*opts.StartBefore):
		return false
	case opts.EndBefore != nil && a.EndDate.After(*opts.EndBefore):
		return false
	}
	return true
}

// less orders by a mongo style sort key, ties broken by id
func less(key string) func(x, y *auction.Auction) bool {
	desc := strings.HasPrefix(key, "-")
	field := strings.TrimPrefix(key, "-")
	cmp := func(x, y *auction.Auction) int {
		switch field {
		case "endDate":
			return x.EndDate.Compare(y.EndDate)
		case "startDate":
			return x.StartDate.Compare(y.StartDate)
		case "createdAt":
			return x.CreatedAt.Compare(y.CreatedAt)
		case "currentPrice":
			return x.CurrentPrice.Cmp(y.CurrentPrice)
		case "totalBids":
			return x.TotalBids - y.TotalBids
		}
		return 0
	}
	return func(x, y *auction.Auction) bool {
		r := cmp(x, y)
		if desc {
			r = -r
		}
		if r == 0 {
			return x.Id < y.Id
		}
		return r < 0
	}
}

func (im *memoryImpl) selectLocked(opts auction.FindAllOptions, sortKey string) []*auction.Auction {
	res := []*auction.Auction{}
	for _, a := range im.auctions {
		if match(a, opts) {
			res = append(res, a.Clone())
		}
	}
	lt := less(sortKey)
	sort.Slice(res, func(i, j int) bool { return lt(res[i], res[j]) })
	return res
}

func paginate(res []*auction.Auction, offset, limit int) []*auction.Auction {
	if offset >= len(res) {
		return []*auction.Auction{}
	}
	res = res[offset:]
	if limit > 0 && limit < len(res) {
		res = res[:limit]
	}
	return res
}

func (im *memoryImpl) FindAll(c ctx.Ctx, optFns ...auction.FindAllOptionsFunc) ([]*auction.Auction, error) {
	opts, err := auction.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}
	offset, limit, sortKey := pageOf(opts)

	im.mu.RLock()
	defer im.mu.RUnlock()
	return paginate(im.selectLocked(opts, sortKey), offset, limit), nil
}

func (im *memoryImpl) Count(c ctx.Ctx, optFns ...auction.FindAllOptionsFunc) (int, error) {
	opts, err := auction.GetFindAllOptions(optFns...)
	if err != nil {
		return 0, err
	}

	im.mu.RLock()
	defer im.mu.RUnlock()
	n := 0
	for _, a := range im.auctions {
		if match(a, opts) {
			n++
		}
	}
	return n, nil
}

func (im *memoryImpl) FindExpiredActive(c ctx.Ctx, now time.Time, limit int) ([]*auction.Auction, error) {
	status := auction.StatusActive
	im.mu.RLock()
	defer im.mu.RUnlock()
	return paginate(im.selectLocked(auction.FindAllOptions{Status: &status, EndBefore: &now}, "endDate"), 0, limit), nil
}

func (im *memoryImpl) FindDueToStart(c ctx.Ctx, now time.Time, limit int) ([]*auction.Auction, error) {
	status := auction.StatusDraft
	im.mu.RLock()
	defer im.mu.RUnlock()

	res := []*auction.Auction{}
	for _, a := range im.selectLocked(auction.FindAllOptions{Status: &status, StartBefore: &now}, "startDate") {
		if a.EndDate.After(now) {
			res = append(res, a)
		}
	}
	return paginate(res, 0, limit), nil
}
