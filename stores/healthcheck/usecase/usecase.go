package usecase

import (
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	hcdomain "github.com/x-xyz/goauction/domain/healthcheck"
)

type impl struct {
	repos []hcdomain.HealthCheckRepo
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(repos ...hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repos: repos,
	}
}

func (im *impl) Check(c ctx.Ctx) error {
	for _, r := range im.repos {
		if err := r.Ping(c); err != nil {
			return xerrors.Errorf("%s unreachable: %w", r.Name(), err)
		}
	}
	return nil
}
