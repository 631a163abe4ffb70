package compound

import (
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/service/cache/provider"
)

type impl struct {
	layers  []provider.Provider
	fillTTL time.Duration
}

// Option configures the compound provider
type Option func(*impl)

// WithFillTTL caps the ttl used when a front layer is refilled from a later one
func WithFillTTL(ttl time.Duration) Option {
	return func(im *impl) {
		im.fillTTL = ttl
	}
}

// NewCompound chains layers from the fastest to the most shared one.
// Get returns on the first hit and refills the layers in front of it.
func NewCompound(layers []provider.Provider, opts ...Option) provider.Provider {
	im := &impl{layers: layers}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	var (
		val    []byte
		ttl    time.Duration
		err    error
		hitIdx = -1
	)

	for idx, lyr := range im.layers {
		val, ttl, err = lyr.Get(c, key)
		if err == provider.ErrNotFound {
			continue
		} else if err != nil {
			return nil, 0, err
		}
		hitIdx = idx
		break
	}

	if hitIdx == -1 {
		return nil, 0, provider.ErrNotFound
	}

	fill := ttl
	if im.fillTTL > 0 && (fill <= 0 || fill > im.fillTTL) {
		fill = im.fillTTL
	}
	for idx := 0; idx < hitIdx; idx++ {
		if err := im.layers[idx].Set(c, key, val, fill); err != nil {
			// a failed refill still serves the hit
			c.WithFields(log.Fields{"err": err, "key": key, "layer": idx}).Warn("refill cache layer failed")
		}
	}

	return val, ttl, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	for _, lyr := range im.layers {
		if err := lyr.Set(c, key, value, ttl); err != nil {
			return err
		}
	}
	return nil
}

// Del walks the layers backwards so a concurrent Get cannot refill a front
// layer from a stale later one
func (im *impl) Del(c ctx.Ctx, key string) error {
	for idx := len(im.layers) - 1; idx >= 0; idx-- {
		if err := im.layers[idx].Del(c, key); err != nil {
			return err
		}
	}
	return nil
}
