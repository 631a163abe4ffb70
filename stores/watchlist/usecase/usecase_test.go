package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/user"
	"github.com/x-xyz/goauction/domain/watchlist"
	mWatchlist "github.com/x-xyz/goauction/domain/watchlist/mocks"
	auctionRepository "github.com/x-xyz/goauction/stores/auction/repository"
	"github.com/x-xyz/goauction/stores/watchlist/repository"
)

var (
	mockCtx = ctx.Background()
	user1   = user.UserID("u1")
)

type testsuite struct {
	suite.Suite
	auctions auction.Repo
	clock    *domain.FakeClock
	im       watchlist.UseCase
}

func (ts *testsuite) SetupTest() {
	ts.auctions = auctionRepository.NewMemory()
	ts.clock = domain.NewFakeClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	ts.im = New(&WatchlistUseCaseCfg{
		Repo:        repository.NewMemory(),
		AuctionRepo: ts.auctions,
		Clock:       ts.clock,
	})
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) listed(ids ...string) {
	for _, id := range ids {
		ts.Require().NoError(ts.auctions.Insert(mockCtx, &auction.Auction{
			Id:       id,
			Title:    "item " + id,
			SellerId: "S1",
			Status:   auction.StatusActive,
			Version:  1,
		}))
	}
}

func (ts *testsuite) TestAddIsIdempotent() {
	ts.listed("a1")
	first, err := ts.im.Add(mockCtx, "u1", "a1")
	ts.Require().NoError(err)

	ts.clock.Advance(time.Minute)
	again, err := ts.im.Add(mockCtx, "u1", "a1")
	ts.Require().NoError(err)
	ts.Equal(first.Id, again.Id)
	ts.Equal(first.CreatedAt, again.CreatedAt)

	watched, err := ts.im.IsWatched(mockCtx, "u1", "a1")
	ts.NoError(err)
	ts.True(watched)
	watched, err = ts.im.IsWatched(mockCtx, "u2", "a1")
	ts.NoError(err)
	ts.False(watched)
}

func (ts *testsuite) TestAddUnknownAuction() {
	_, err := ts.im.Add(mockCtx, "u1", "missing")
	ts.True(errors.Is(err, domain.ErrValidation))

	watched, err := ts.im.IsWatched(mockCtx, "u1", "missing")
	ts.NoError(err)
	ts.False(watched)
}

func (ts *testsuite) TestRemove() {
	ts.listed("a1")
	_, err := ts.im.Add(mockCtx, "u1", "a1")
	ts.Require().NoError(err)

	ts.NoError(ts.im.Remove(mockCtx, "u1", "a1"))
	ts.NoError(ts.im.Remove(mockCtx, "u1", "a1"))

	watched, err := ts.im.IsWatched(mockCtx, "u1", "a1")
	ts.NoError(err)
	ts.False(watched)
}

func (ts *testsuite) TestListSkipsDeletedAuctions() {
	ts.listed("a1", "a2", "a3")
	for _, id := range []string{"a1", "a2", "a3"} {
		_, err := ts.im.Add(mockCtx, "u1", id)
		ts.Require().NoError(err)
		ts.clock.Advance(time.Minute)
	}
	ts.Require().NoError(ts.auctions.Remove(mockCtx, "a2"))

	res, err := ts.im.List(mockCtx, "u1", 0, 0)
	ts.Require().NoError(err)
	ts.Require().Len(res, 2)
	ts.Equal("a3", res[0].Id)
	ts.Equal("a1", res[1].Id)

	res, err = ts.im.List(mockCtx, "u2", 0, 10)
	ts.NoError(err)
	ts.Len(res, 0)

	_, err = ts.im.List(mockCtx, "u1", -1, 10)
	ts.True(errors.Is(err, domain.ErrValidation))
}

func (ts *testsuite) TestAddRace() {
	ts.listed("a1")
	repo := &mWatchlist.Repo{}
	im := New(&WatchlistUseCaseCfg{Repo: repo, AuctionRepo: ts.auctions, Clock: ts.clock})
	winner := &watchlist.Entry{Id: "w0", UserId: "u1", AuctionId: "a1"}

	repo.On("Get", mock.Anything, user1, "a1").Return(nil, domain.ErrNotFound).Once()
	repo.On("Insert", mock.Anything, mock.Anything).Return(domain.ErrConflict).Once()
	repo.On("Get", mock.Anything, user1, "a1").Return(winner, nil).Once()

	res, err := im.Add(mockCtx, user1, "a1")
	ts.Require().NoError(err)
	ts.Equal("w0", res.Id)
	repo.AssertExpectations(ts.T())
}

func (ts *testsuite) TestStorageFailure() {
	repo := &mWatchlist.Repo{}
	im := New(&WatchlistUseCaseCfg{Repo: repo, AuctionRepo: ts.auctions, Clock: ts.clock})
	boom := domain.NewStorageError(errors.New("boom"))

	repo.On("Get", mock.Anything, user1, "a1").Return(nil, boom).Twice()
	repo.On("Remove", mock.Anything, user1, "a1").Return(boom).Once()

	_, err := im.Add(mockCtx, user1, "a1")
	ts.True(errors.Is(err, domain.ErrStorage))
	_, err = im.IsWatched(mockCtx, user1, "a1")
	ts.True(errors.Is(err, domain.ErrStorage))
	ts.True(errors.Is(im.Remove(mockCtx, user1, "a1"), domain.ErrStorage))
	repo.AssertExpectations(ts.T())
}
