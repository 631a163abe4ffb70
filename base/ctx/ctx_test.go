package ctx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/log"
)

type testsuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestWithValue() {
	bg := Background()
	ctx := WithValue(bg, "auctionId", "a1")
	ts.Equal("a1", ctx.Value("auctionId"))
}

func (ts *testsuite) TestWithValues() {
	bg := Background()
	ctx := WithValues(bg, map[string]interface{}{
		"auctionId": "a1",
		"bidderId":  "u1",
	})
	ts.Equal("a1", ctx.Value("auctionId"))
	ts.Equal("u1", ctx.Value("bidderId"))
}

func (ts *testsuite) TestWithLogFields() {
	bg := Background()
	ctx := WithLogFields(bg, log.Fields{"auctionId": "a1"})
	ts.Nil(ctx.Value("auctionId"))
}

func (ts *testsuite) TestDetach() {
	bg := Background()
	parent, cancel := WithCancel(bg)
	detached := Detach(parent)
	cancel()

	ts.Error(parent.Err())
	ts.NoError(detached.Err())
}

func (ts *testsuite) TestWithCancel() {
	bg := Background()
	ctx, cancel := WithCancel(bg)
	defer cancel()
	after100Ms := func(ctx context.Context) bool {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(100 * time.Millisecond):
			return true
		}
	}
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	ts.Equal(false, after100Ms(ctx))
}

func (ts *testsuite) TestTimeout() {
	bg := Background()
	ctx, cancel := WithTimeout(bg, 10*time.Millisecond)
	defer cancel()
	<-ctx.Done()
	ts.Equal(context.DeadlineExceeded, ctx.Err())
}
