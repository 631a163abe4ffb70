package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain/keys"
)

// Forever is the expire value of keys without ttl
const Forever = time.Duration(-1)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis: key not found")
	// ErrNoTTL is returned by TTL when the key has no expire
	ErrNoTTL = errors.New("redis: key has no ttl")
	// ErrExpireNotExistOrTimeout is returned by Expire when the key does not exist
	ErrExpireNotExistOrTimeout = errors.New("redis: key not exist or timeout could not be set")
	// ErrNoPool is returned when no pool is configured
	ErrNoPool = errors.New("redis: no pool")
)

// Service wraps the redis commands used by the application
type Service interface {
	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error
	// SetNX reports whether the key was set
	SetNX(c ctx.Ctx, key string, val []byte, expire time.Duration) (bool, error)
	Del(c ctx.Ctx, keys ...string) (int, error)
	Exists(c ctx.Ctx, key string) (bool, error)
	// TTL returns the remaining seconds of key
	TTL(c ctx.Ctx, key string) (int, error)
	Expire(c ctx.Ctx, key string, ttl time.Duration) error

	ScriptDo(c ctx.Ctx, hdl *ScriptHdl, keysAndArgs ...interface{}) (interface{}, error)

	// Publish returns the number of subscribers that received msg
	Publish(c ctx.Ctx, channel string, msg []byte) (int, error)
	// PSubscribe blocks delivering messages of channels matching patterns until c is done
	PSubscribe(c ctx.Ctx, handle func(channel string, msg []byte), patterns ...string) error

	Ping(c ctx.Ctx) error
	Name() string
}

// ScriptHdl is a lua script loaded lazily by EVALSHA
type ScriptHdl struct {
	name     string
	keyCount int
	script   *redis.Script
}

// NewScript creates a script whose first keyCount arguments are keys
func NewScript(name string, keyCount int, src string) *ScriptHdl {
	return &ScriptHdl{
		name:     name,
		keyCount: keyCount,
		script:   redis.NewScript(keyCount, src),
	}
}

// Do runs the script on conn. A nil reply is reported as ErrNotFound.
func (h *ScriptHdl) Do(conn redis.Conn, keysAndArgs ...interface{}) (interface{}, error) {
	reply, err := h.script.Do(conn, keysAndArgs...)
	if err == redis.ErrNil || (err == nil && reply == nil) {
		return nil, ErrNotFound
	}
	return reply, err
}

func (h *ScriptHdl) prefix(keysAndArgs ...interface{}) string {
	if h.keyCount == 0 || len(keysAndArgs) == 0 {
		return h.name
	}
	if k, ok := keysAndArgs[0].(string); ok {
		return keys.GetPrefix(k)
	}
	return h.name
}
