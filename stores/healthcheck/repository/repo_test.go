package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/goauction/base/ctx"
)

type pingerFunc func(c ctx.Ctx) error

func (f pingerFunc) Ping(c ctx.Ctx) error { return f(c) }

func TestPingHasDeadline(t *testing.T) {
	req := require.New(t)
	r := New("mongo", pingerFunc(func(c ctx.Ctx) error {
		deadline, ok := c.Deadline()
		req.True(ok)
		req.WithinDuration(time.Now().Add(pingTimeout), deadline, time.Second)
		return nil
	}))
	req.Equal("mongo", r.Name())
	req.NoError(r.Ping(ctx.Background()))
}

func TestPingError(t *testing.T) {
	down := errors.New("down")
	r := New("redis", pingerFunc(func(ctx.Ctx) error { return down }))
	require.ErrorIs(t, r.Ping(ctx.Background()), down)
}
