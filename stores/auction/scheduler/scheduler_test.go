package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	mAuction "github.com/x-xyz/goauction/domain/auction/mocks"
)

var mockCtx = ctx.Background()

type testsuite struct {
	suite.Suite
	uc *mAuction.UseCase
	s  *Scheduler
}

func (ts *testsuite) SetupTest() {
	ts.uc = &mAuction.UseCase{}
	ts.s = New(&SchedulerCfg{
		Interval:       10 * time.Millisecond,
		AuctionUseCase: ts.uc,
		BatchSize:      50,
	})
}

func (ts *testsuite) TearDownTest() {
	ts.uc.AssertExpectations(ts.T())
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestRunOnce() {
	ts.uc.On("FindDueToStart", mockCtx, 50).Return([]*auction.Auction{{Id: "d1"}, {Id: "d2"}}, nil).Once()
	ts.uc.On("Start", mockCtx, "d1").Return(&auction.Auction{Id: "d1"}, nil).Once()
	ts.uc.On("Start", mockCtx, "d2").Return(nil, domain.NewInvalidStateError("cannot start auction in status CANCELLED")).Once()

	ts.uc.On("FindExpiredActive", mockCtx, 50).Return([]*auction.Auction{{Id: "e1"}, {Id: "e2"}, {Id: "e3"}}, nil).Once()
	ts.uc.On("End", mockCtx, "e1").Return(nil, domain.NewStorageError(domain.ErrConflict)).Once()
	ts.uc.On("End", mockCtx, "e2").Return(&auction.Auction{Id: "e2"}, nil).Once()
	ts.uc.On("End", mockCtx, "e3").Return(&auction.Auction{Id: "e3"}, nil).Once()

	report := ts.s.RunOnce(mockCtx)
	ts.Equal(Report{Started: 1, Ended: 2, Skipped: 1, Failed: 1}, report)
}

func (ts *testsuite) TestFindFailureDoesNotStopCloseSweep() {
	ts.uc.On("FindDueToStart", mockCtx, 50).Return(nil, domain.NewStorageError(domain.ErrNotFound)).Once()
	ts.uc.On("FindExpiredActive", mockCtx, 50).Return([]*auction.Auction{{Id: "e1"}}, nil).Once()
	ts.uc.On("End", mockCtx, "e1").Return(&auction.Auction{Id: "e1"}, nil).Once()

	report := ts.s.RunOnce(mockCtx)
	ts.Equal(Report{Ended: 1, Failed: 1}, report)
}

func (ts *testsuite) TestStartAndStop() {
	ticked := make(chan struct{}, 1)
	ts.uc.On("FindDueToStart", mock.Anything, 50).Return(nil, nil).Run(func(mock.Arguments) {
		select {
		case ticked <- struct{}{}:
		default:
		}
	})
	ts.uc.On("FindExpiredActive", mock.Anything, 50).Return(nil, nil)

	c, cancel := ctx.WithCancel(mockCtx)
	ts.s.Start(c)

	select {
	case <-ticked:
	case <-time.After(time.Second):
		ts.Fail("scheduler never ticked")
	}
	cancel()

	done := make(chan struct{})
	go func() {
		ts.s.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		ts.Fail("scheduler did not stop")
	}
}

func (ts *testsuite) TestPanicRecovered() {
	var calls int32
	ts.uc.On("FindDueToStart", mock.Anything, 50).Return(nil, nil).Run(func(mock.Arguments) {
		if atomic.AddInt32(&calls, 1) == 1 {
			panic("boom")
		}
	})
	ts.uc.On("FindExpiredActive", mock.Anything, 50).Return(nil, nil).Maybe()

	c, cancel := ctx.WithCancel(mockCtx)
	defer cancel()
	ts.s.Start(c)

	ts.Eventually(func() bool { return atomic.LoadInt32(&calls) >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	ts.s.Wait()
}
