package locker

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/backoff"
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/keys"
	"github.com/x-xyz/goauction/service/redis"
)

const (
	defaultTTL      = 10 * time.Second
	defaultAttempts = 50
	retryStart      = 20 * time.Millisecond
	retryLimit      = 200 * time.Millisecond
)

var (
	met     metrics.Service
	metOnce sync.Once

	// releaseScript deletes the lock only when it is still held by token
	releaseScript = redis.NewScript("lockRelease", 1, `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)
)

func init() {
	metOnce.Do(func() {
		met = metrics.New("locker")
	})
}

type redisImpl struct {
	redis    redis.Service
	ttl      time.Duration
	attempts int
}

// Option configures the redis locker
type Option func(*redisImpl)

// WithTTL is the lease of a lock. Saves are still guarded by the auction
// version once a lease runs out.
func WithTTL(ttl time.Duration) Option {
	return func(im *redisImpl) {
		if ttl > 0 {
			im.ttl = ttl
		}
	}
}

// WithAttempts limits how many times acquisition is tried
func WithAttempts(n int) Option {
	return func(im *redisImpl) {
		if n > 0 {
			im.attempts = n
		}
	}
}

// NewRedis serializes auctions across every replica sharing the redis
func NewRedis(r redis.Service, opts ...Option) auction.Locker {
	im := &redisImpl{
		redis:    r,
		ttl:      defaultTTL,
		attempts: defaultAttempts,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

func (im *redisImpl) Lock(c ctx.Ctx, auctionId string) (func(), error) {
	defer met.BumpTime("lock.time", "driver", "redis").End()

	var (
		key   = keys.AuctionLock(auctionId)
		token = uuid.NewString()
		b     = backoff.NewLinear(retryStart, retryLimit)
	)

	err := b.Retry(c, im.attempts, func() (bool, error) {
		return im.redis.SetNX(c, key, []byte(token), im.ttl)
	})
	if err == backoff.ErrGiveUp {
		met.BumpSum("lock.busy", 1, "driver", "redis")
		c.WithFields(log.Fields{"auctionId": auctionId, "attempts": im.attempts}).Warn("auction lock busy")
		return nil, xerrors.Errorf("auction %s busy: %w", auctionId, domain.ErrConflict)
	} else if err != nil {
		met.BumpSum("lock.err", 1, "driver", "redis")
		c.WithFields(log.Fields{"err": err, "auctionId": auctionId}).Error("acquire auction lock failed")
		if c.Err() != nil {
			return nil, xerrors.Errorf("auction %s busy: %w", auctionId, domain.ErrConflict)
		}
		return nil, domain.NewStorageError(err)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			im.release(ctx.Detach(c), key, token)
		})
	}, nil
}

func (im *redisImpl) release(c ctx.Ctx, key, token string) {
	res, err := im.redis.ScriptDo(c, releaseScript, key, token)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("release auction lock failed")
		return
	}
	if n, ok := res.(int64); ok && n == 0 {
		met.BumpSum("lock.expired", 1, "driver", "redis")
		c.WithField("key", key).Warn("auction lock lease expired before release")
	}
}
