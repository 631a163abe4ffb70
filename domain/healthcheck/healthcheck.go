package healthcheck

import (
	"github.com/x-xyz/goauction/base/ctx"
)

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(c ctx.Ctx) error
}

// HealthCheckRepo pings one backing store
type HealthCheckRepo interface {
	Ping(c ctx.Ctx) error
	Name() string
}
