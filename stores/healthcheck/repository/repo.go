package repository

import (
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	hcdomain "github.com/x-xyz/goauction/domain/healthcheck"
)

const pingTimeout = 2 * time.Second

// Pinger is a backing store able to report reachability,
// such as query.Mongo or redis.Service
type Pinger interface {
	Ping(c ctx.Ctx) error
}

type impl struct {
	name   string
	pinger Pinger
}

// New creates a HealthCheckRepo probing pinger under name
func New(name string, pinger Pinger) hcdomain.HealthCheckRepo {
	return &impl{
		name:   name,
		pinger: pinger,
	}
}

func (im *impl) Name() string {
	return im.name
}

func (im *impl) Ping(c ctx.Ctx) error {
	tctx, cancel := ctx.WithTimeout(c, pingTimeout)
	defer cancel()
	if err := im.pinger.Ping(tctx); err != nil {
		c.WithFields(log.Fields{"err": err, "store": im.name}).Error("ping failed")
		return err
	}
	return nil
}
