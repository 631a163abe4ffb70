package primitive

import (
	"time"

	"github.com/coocood/freecache"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/service/cache/provider"
)

// minTTL keeps sub-second ttl from becoming a never expiring entry in freecache
const minTTL = time.Second

type impl struct {
	name  string
	cache *freecache.Cache
}

// NewPrimitive creates an in process cache of size MB
func NewPrimitive(name string, size int) provider.Provider {
	return &impl{name, freecache.NewCache(size * 1024 * 1024)}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, exp, err := im.cache.GetWithExpiration([]byte(key))
	if err == freecache.ErrNotFound {
		return nil, 0, provider.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "cache": im.name}).Error("cache.Get failed")
		return nil, 0, err
	}

	if exp == 0 {
		return val, 0, nil
	}
	return val, remaining(time.Unix(int64(exp), 0)), nil
}

// remaining rounds up to freecache's whole seconds. A live entry never
// reports 0, which means no expiry.
func remaining(expireAt time.Time) time.Duration {
	d := time.Until(expireAt)
	if d <= 0 {
		return time.Nanosecond
	}
	if rem := d % time.Second; rem != 0 {
		d += time.Second - rem
	}
	return d
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if ttl > 0 && ttl < minTTL {
		ttl = minTTL
	}
	if err := im.cache.Set([]byte(key), value, int(ttl.Seconds())); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "cache": im.name}).Error("cache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	im.cache.Del([]byte(key))
	return nil
}
