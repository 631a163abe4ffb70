package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/validator"
	"github.com/x-xyz/goauction/domain"
	mDomain "github.com/x-xyz/goauction/domain/mocks"
	"github.com/x-xyz/goauction/domain/user"
	mUser "github.com/x-xyz/goauction/domain/user/mocks"
	"github.com/x-xyz/goauction/service/cache"
	"github.com/x-xyz/goauction/service/cache/provider/primitive"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	repo  *mUser.Repo
	auth  *mDomain.AuthUsecase
	clock *domain.FakeClock
	im    user.UseCase
}

func (ts *testsuite) SetupTest() {
	ts.repo = &mUser.Repo{}
	ts.auth = &mDomain.AuthUsecase{}
	ts.clock = domain.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ts.im = New(&UserUseCaseCfg{
		Repo:      ts.repo,
		Auth:      ts.auth,
		Validator: validator.New(),
		Clock:     ts.clock,
	})
}

func (ts *testsuite) TearDownTest() {
	ts.repo.AssertExpectations(ts.T())
	ts.auth.AssertExpectations(ts.T())
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestRegister() {
	ts.repo.On("FindByUsername", mockCtx, "alice").Return(nil, domain.ErrNotFound).Once()
	ts.repo.On("Insert", mockCtx, mock.AnythingOfType("*user.User")).Return(nil).Once()
	ts.auth.On("SignToken", mockCtx, mock.AnythingOfType("user.UserID")).Return("token", nil).Once()

	res, err := ts.im.Register(mockCtx, &user.RegisterParams{Username: "alice", DisplayName: "Alice"})
	ts.Require().NoError(err)
	ts.Equal("token", res.Token)
	ts.Equal("alice", res.User.Username)
	ts.False(res.User.Id.IsZero())
	ts.Equal(ts.clock.Now(), res.User.CreatedAt)
}

func (ts *testsuite) TestRegisterInvalid() {
	_, err := ts.im.Register(mockCtx, &user.RegisterParams{Username: "a"})
	ts.True(errors.Is(err, domain.ErrValidation))
	ts.Equal("username", domain.FieldOf(err))
}

func (ts *testsuite) TestRegisterTaken() {
	ts.repo.On("FindByUsername", mockCtx, "alice").Return(&user.User{Id: "u1"}, nil).Once()
	_, err := ts.im.Register(mockCtx, &user.RegisterParams{Username: "alice"})
	ts.True(errors.Is(err, domain.ErrConflict))
}

func (ts *testsuite) TestGet() {
	ts.repo.On("Get", mockCtx, user.UserID("u1")).Return(&user.User{Id: "u1"}, nil).Once()
	u, err := ts.im.Get(mockCtx, "u1")
	ts.NoError(err)
	ts.Equal(user.UserID("u1"), u.Id)

	_, err = ts.im.Get(mockCtx, "")
	ts.True(errors.Is(err, domain.ErrValidation))
}

type lookupSuite struct {
	suite.Suite
	repo *mUser.Repo
	im   user.Lookup
}

func TestLookup(t *testing.T) {
	suite.Run(t, new(lookupSuite))
}

func (ts *lookupSuite) SetupTest() {
	ts.repo = &mUser.Repo{}
	ts.im = NewLookup(ts.repo, cache.New(cache.ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "userRef",
		Cache: primitive.NewPrimitive("user", 1),
	}))
}

func (ts *lookupSuite) TestCached() {
	ts.repo.On("Get", mockCtx, user.UserID("u1")).Return(&user.User{Id: "u1", Username: "alice"}, nil).Once()

	for i := 0; i < 3; i++ {
		ref, err := ts.im.ById(mockCtx, "u1")
		ts.Require().NoError(err)
		ts.Equal(user.UserRef{Id: "u1", DisplayName: "alice"}, *ref)
	}
	ts.repo.AssertExpectations(ts.T())
}

func (ts *lookupSuite) TestUnknownNotCached() {
	ts.repo.On("Get", mockCtx, user.UserID("nobody")).Return(nil, domain.ErrNotFound).Twice()

	_, err := ts.im.ById(mockCtx, "nobody")
	ts.True(errors.Is(err, domain.ErrNotFound))
	_, err = ts.im.ById(mockCtx, "nobody")
	ts.True(errors.Is(err, domain.ErrNotFound))
	ts.repo.AssertExpectations(ts.T())
}
