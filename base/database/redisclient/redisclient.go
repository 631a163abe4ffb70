package redisclient

import (
	"context"
	"runtime"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/goauction/base/backoff"
	"github.com/x-xyz/goauction/base/log"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1500 * time.Millisecond
	writeTimeout = 1500 * time.Millisecond

	defaultMaxIdle   = 64
	defaultMaxActive = 256
	dialAttempts     = 4
)

// RedisParam is the optional param for redis connection
type RedisParam struct {
	PoolMultiplier float64
	// Retry dials up to dialAttempts times. Disabled in unit tests.
	Retry bool
}

// MustConnectRedis connects to one redis uri
// NOTE This function panics if the connection fails.
func MustConnectRedis(uri, password string, param ...RedisParam) *redis.Pool {
	p, err := ConnectRedis(uri, password, param...)
	if err != nil {
		log.Log().WithFields(log.Fields{"redisURI": uri, "err": err}).Panic("fail to dial Redis")
	}
	return p
}

// ConnectRedis connects to one redis uri and verifies the connection with a PING
func ConnectRedis(uri, password string, param ...RedisParam) (*redis.Pool, error) {
	maxIdle := defaultMaxIdle
	maxActive := defaultMaxActive
	retry := false
	if len(param) > 0 {
		if param[0].PoolMultiplier > 0 {
			cpu := float64(runtime.NumCPU())
			// allowing 25% idle connection
			maxIdle = int(cpu*param[0].PoolMultiplier/4) + 1
			maxActive = int(cpu*param[0].PoolMultiplier) + 1
		}
		retry = param[0].Retry
	}

	p := NewPool(uri, password, maxIdle, maxActive)

	attempts := 1
	if retry {
		attempts = dialAttempts
	}

	// k8s pods occasionally fail the first dial on startup
	var pingErr error
	b := backoff.NewExponential(time.Second, 8*time.Second)
	err := b.Retry(context.Background(), attempts, func() (bool, error) {
		c := p.Get()
		defer c.Close()
		if _, err := c.Do("PING"); err != nil {
			log.Log().WithFields(log.Fields{
				"redisURI": uri,
				"err":      err,
				"attempt":  b.Count(),
			}).Error("fail to ping Redis")
			pingErr = err
			return false, nil
		}
		return true, nil
	})
	if err == backoff.ErrGiveUp && pingErr != nil {
		err = pingErr
	}
	if err != nil {
		log.Log().WithFields(log.Fields{
			"redisURI": uri,
			"err":      err,
		}).Error("fail to dial Redis")
		p.Close()
		return nil, err
	}

	log.Log().WithField("redisURI", uri).Info("redis connected")

	return p, nil
}

// NewPool builds a lazily dialing pool, no connection is made until first use
func NewPool(uri, password string, maxIdle, maxActive int) *redis.Pool {
	opts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialWriteTimeout(writeTimeout),
	}
	if password != "" {
		opts = append(opts, redis.DialPassword(password))
	}
	return &redis.Pool{
		MaxIdle:     maxIdle,
		MaxActive:   maxActive,
		Wait:        true,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", uri, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			// No need to test if it's been recycled less than 1 sec.
			if time.Since(t) < time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}
