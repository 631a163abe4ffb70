package domain

import "github.com/x-xyz/goauction/base/ctx"

// Transactor runs fn atomically: either every write made through the ctx
// passed to fn is kept, or none is. A Transactor that cannot guarantee that
// returns ErrNoTransaction without calling fn.
type Transactor interface {
	RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error
}
