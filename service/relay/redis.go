package relay

import (
	"encoding/json"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain/keys"
	"github.com/x-xyz/goauction/domain/notification"
	"github.com/x-xyz/goauction/service/redis"
)

type redisImpl struct {
	redis redis.Service
}

// NewRedis relays envelopes through redis pub/sub
func NewRedis(r redis.Service) notification.Relay {
	return &redisImpl{redis: r}
}

func channelOf(env *notification.Envelope) string {
	if !env.UserId.IsZero() {
		return keys.UserChannel(env.UserId.String())
	}
	return keys.AuctionChannel(env.AuctionId)
}

func (im *redisImpl) Publish(c ctx.Ctx, env *notification.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return err
	}

	if _, err := im.redis.Publish(c, channelOf(env), data); err != nil {
		c.WithField("err", err).Error("redis.Publish failed")
		return err
	}
	return nil
}

func (im *redisImpl) Subscribe(c ctx.Ctx, handle func(*notification.Envelope)) error {
	return im.redis.PSubscribe(c, func(channel string, msg []byte) {
		env := &notification.Envelope{}
		if err := json.Unmarshal(msg, env); err != nil {
			c.WithFields(log.Fields{"err": err, "channel": channel}).Warn("malformed envelope dropped")
			return
		}
		if env.Event == nil {
			c.WithField("channel", channel).Warn("envelope without event dropped")
			return
		}
		handle(env)
	}, keys.RedisKey(keys.PfxAuctionEvents, "*"), keys.RedisKey(keys.PfxUserEvents, "*"))
}
