// Package memtx gives the memory repositories all-or-nothing writes.
// Every write made inside RunWithTransaction records how to undo itself,
// and the journal is replayed backwards when fn fails.
package memtx

import (
	"context"
	"sync"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
)

type journalKey struct{}

type journal struct {
	mu    sync.Mutex
	undos []func()
}

func (j *journal) add(undo func()) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.undos = append(j.undos, undo)
}

func (j *journal) rollback() {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i := len(j.undos) - 1; i >= 0; i-- {
		j.undos[i]()
	}
	j.undos = nil
}

type impl struct{}

// New creates a transactor for the memory repositories
func New() domain.Transactor {
	return &impl{}
}

func (im *impl) RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error {
	// nested calls join the outer transaction
	if _, ok := c.Value(journalKey{}).(*journal); ok {
		return fn(c)
	}

	j := &journal{}
	txCtx := ctx.Ctx{
		Context: context.WithValue(c.Context, journalKey{}, j),
		Logger:  c.Logger,
	}

	if err := fn(txCtx); err != nil {
		j.rollback()
		c.WithField("err", err).Warn("memory transaction rolled back")
		return err
	}
	return nil
}

// OnRollback registers undo on the transaction of c. Outside a transaction
// the write is final and undo is discarded.
func OnRollback(c ctx.Ctx, undo func()) {
	if c.Context == nil {
		return
	}
	if j, ok := c.Value(journalKey{}).(*journal); ok {
		j.add(undo)
	}
}
