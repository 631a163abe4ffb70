package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain/healthcheck/mocks"
)

func TestCheck(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	mongo := &mocks.HealthCheckRepo{}
	mongo.On("Ping", mock.Anything).Return(nil)
	redis := &mocks.HealthCheckRepo{}
	redis.On("Ping", mock.Anything).Return(nil)

	req.NoError(New(mongo, redis).Check(c))
	req.NoError(New().Check(c))
}

func TestCheckReportsStore(t *testing.T) {
	req := require.New(t)
	down := errors.New("connection refused")

	mongo := &mocks.HealthCheckRepo{}
	mongo.On("Ping", mock.Anything).Return(nil)
	redis := &mocks.HealthCheckRepo{}
	redis.On("Ping", mock.Anything).Return(down)
	redis.On("Name").Return("redis")

	err := New(mongo, redis).Check(ctx.Background())
	req.ErrorIs(err, down)
	req.Contains(err.Error(), "redis unreachable")
}
