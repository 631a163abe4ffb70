package repository

import (
	"sort"
	"sync"

	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/user"
	"github.com/x-xyz/goauction/domain/watchlist"
)

type key struct {
	userId    user.UserID
	auctionId string
}

type memoryImpl struct {
	mu      sync.RWMutex
	entries map[key]watchlist.Entry
}

// NewMemory keeps watchlists in process, for tests and single node demos
func NewMemory() watchlist.Repo {
	return &memoryImpl{entries: make(map[key]watchlist.Entry)}
}

func (im *memoryImpl) Insert(c ctx.Ctx, e *watchlist.Entry) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	k := key{e.UserId, e.AuctionId}
	if _, ok := im.entries[k]; ok {
		return xerrors.Errorf("watch %s by %s: %w", e.AuctionId, e.UserId, domain.ErrConflict)
	}
	im.entries[k] = *e
	return nil
}

func (im *memoryImpl) Get(c ctx.Ctx, userId user.UserID, auctionId string) (*watchlist.Entry, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	e, ok := im.entries[key{userId, auctionId}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (im *memoryImpl) Remove(c ctx.Ctx, userId user.UserID, auctionId string) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	k := key{userId, auctionId}
	if _, ok := im.entries[k]; !ok {
		return domain.ErrNotFound
	}
	delete(im.entries, k)
	return nil
}

func (im *memoryImpl) FindByUser(c ctx.Ctx, userId user.UserID, offset, limit int) ([]*watchlist.Entry, error) {
	im.mu.RLock()
	res := []*watchlist.Entry{}
	for k, e := range im.entries {
		if k.userId == userId {
			cp := e
			res = append(res, &cp)
		}
	}
	im.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].Id < res[j].Id
	})

	if offset >= len(res) {
		return []*watchlist.Entry{}, nil
	}
	res = res[offset:]
	if limit > 0 && limit < len(res) {
		res = res[:limit]
	}
	return res, nil
}
