package repository

import (
	"sync"

	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/user"
)

type memoryImpl struct {
	mu    sync.RWMutex
	users map[user.UserID]user.User
	names map[string]user.UserID
}

// NewMemory keeps users in process, for tests and single node demos
func NewMemory() user.Repo {
	return &memoryImpl{
		users: make(map[user.UserID]user.User),
		names: make(map[string]user.UserID),
	}
}

func (im *memoryImpl) Get(c ctx.Ctx, id user.UserID) (*user.User, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	u, ok := im.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (im *memoryImpl) FindByUsername(c ctx.Ctx, username string) (*user.User, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	id, ok := im.names[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := im.users[id]
	return &u, nil
}

func (im *memoryImpl) Insert(c ctx.Ctx, u *user.User) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	if _, ok := im.users[u.Id]; ok {
		return xerrors.Errorf("user %s: %w", u.Id, domain.ErrConflict)
	}
	if _, ok := im.names[u.Username]; ok {
		return xerrors.Errorf("user %s: %w", u.Username, domain.ErrConflict)
	}
	im.users[u.Id] = *u
	im.names[u.Username] = u.Id
	return nil
}
