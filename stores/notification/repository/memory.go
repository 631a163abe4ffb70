package repository

import (
	"sort"
	"sync"

	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/notification"
	"github.com/x-xyz/goauction/domain/user"
)

type memoryImpl struct {
	mu    sync.RWMutex
	items map[string]*notification.Notification
}

func NewMemory() notification.InboxRepo {
	return &memoryImpl{items: make(map[string]*notification.Notification)}
}

func (im *memoryImpl) Insert(c ctx.Ctx, n *notification.Notification) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	if _, ok := im.items[n.Id]; ok {
		return xerrors.Errorf("notification %s: %w", n.Id, domain.ErrConflict)
	}
	cp := *n
	im.items[n.Id] = &cp
	return nil
}

func (im *memoryImpl) FindAll(c ctx.Ctx, recipientId user.UserID, optFns ...notification.FindAllOptionsFunc) ([]*notification.Notification, error) {
	opts, err := notification.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	im.mu.RLock()
	res := []*notification.Notification{}
	for _, n := range im.items {
		if n.RecipientId != recipientId || (opts.UnreadOnly && n.Read) {
			continue
		}
		cp := *n
		res = append(res, &cp)
	}
	im.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].Id < res[j].Id
	})

	if opts.Offset != nil {
		if int(*opts.Offset) >= len(res) {
			return []*notification.Notification{}, nil
		}
		res = res[*opts.Offset:]
	}
	if opts.Limit != nil && *opts.Limit > 0 && int(*opts.Limit) < len(res) {
		res = res[:*opts.Limit]
	}
	return res, nil
}

func (im *memoryImpl) CountUnread(c ctx.Ctx, recipientId user.UserID) (int, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	cnt := 0
	for _, n := range im.items {
		if n.RecipientId == recipientId && !n.Read {
			cnt++
		}
	}
	return cnt, nil
}

func (im *memoryImpl) MarkRead(c ctx.Ctx, recipientId user.UserID, id string) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	n, ok := im.items[id]
	if !ok || n.RecipientId != recipientId {
		return domain.ErrNotFound
	}
	n.Read = true
	return nil
}

func (im *memoryImpl) MarkAllRead(c ctx.Ctx, recipientId user.UserID) (int, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	cnt := 0
	for _, n := range im.items {
		if n.RecipientId == recipientId && !n.Read {
			n.Read = true
			cnt++
		}
	}
	return cnt, nil
}
