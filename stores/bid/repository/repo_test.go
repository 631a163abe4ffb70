package repository

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/database/mongoclient"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/bid"
	"github.com/x-xyz/goauction/domain/user"
	"github.com/x-xyz/goauction/service/memtx"
	"github.com/x-xyz/goauction/service/query"
)

var (
	mockCtx = ctx.Background()
	t0      = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
)

type repoSuite struct {
	suite.Suite
	newRepo func() bid.Repo
	im      bid.Repo
}

func (ts *repoSuite) SetupTest() {
	ts.im = ts.newRepo()
}

func TestMemory(t *testing.T) {
	suite.Run(t, &repoSuite{newRepo: NewMemory})
}

func TestMongo(t *testing.T) {
	if os.Getenv("MONGO_URI") == "" {
		t.Skip("MONGO_URI not set")
	}
	client := mongoclient.MustConnectMongoClient(mongoclient.Config{
		URI:     os.Getenv("MONGO_URI"),
		DBName:  "goauction_test",
		SetSafe: true,
	})
	defer client.Disconnect(mockCtx)

	q := query.New(client, query.WithTransaction(false))
	suite.Run(t, &repoSuite{newRepo: func() bid.Repo {
		if err := client.Database("goauction_test").Collection(string(domain.TableBids)).Drop(mockCtx); err != nil {
			t.Fatal(err)
		}
		if err := EnsureIndexes(mockCtx, q); err != nil {
			t.Fatal(err)
		}
		return New(q)
	}})
}

func newBid(id, auctionId string, bidder user.UserID, amount string, at time.Duration, status bid.Status) *bid.Bid {
	return &bid.Bid{
		Id:        id,
		AuctionId: auctionId,
		BidderId:  bidder,
		Amount:    decimal.RequireFromString(amount),
		Timestamp: t0.Add(at),
		Status:    status,
	}
}

func (ts *repoSuite) seed(bs ...*bid.Bid) {
	for _, b := range bs {
		ts.Require().NoError(ts.im.Insert(mockCtx, b))
	}
}

func ids(bs []*bid.Bid) []string {
	res := []string{}
	for _, b := range bs {
		res = append(res, b.Id)
	}
	return res
}

func (ts *repoSuite) TestInsertGet() {
	b := newBid("b1", "a1", "u1", "12.34", 0, bid.StatusWinning)
	ts.seed(b)

	got, err := ts.im.Get(mockCtx, "b1")
	ts.Require().NoError(err)
	ts.True(b.Amount.Equal(got.Amount))
	ts.Equal(bid.StatusWinning, got.Status)

	_, err = ts.im.Get(mockCtx, "nope")
	ts.True(errors.Is(err, domain.ErrNotFound))
	ts.True(errors.Is(ts.im.Insert(mockCtx, b), domain.ErrConflict))
}

func (ts *repoSuite) TestUpdateStatus() {
	ts.seed(newBid("b1", "a1", "u1", "10", 0, bid.StatusOutbid))
	ts.NoError(ts.im.UpdateStatus(mockCtx, "b1", bid.StatusCancelled))
	got, err := ts.im.Get(mockCtx, "b1")
	ts.NoError(err)
	ts.Equal(bid.StatusCancelled, got.Status)

	ts.True(errors.Is(ts.im.UpdateStatus(mockCtx, "nope", bid.StatusCancelled), domain.ErrNotFound))
}

func (ts *repoSuite) TestFind() {
	ts.seed(
		newBid("b1", "a1", "u1", "10", 0, bid.StatusOutbid),
		newBid("b2", "a1", "u2", "20", time.Minute, bid.StatusOutbid),
		newBid("b3", "a1", "u1", "30", 2*time.Minute, bid.StatusWinning),
		newBid("b4", "a2", "u1", "99", 3*time.Minute, bid.StatusWinning),
	)

	res, err := ts.im.FindByAuction(mockCtx, "a1")
	ts.NoError(err)
	ts.Equal([]string{"b3", "b2", "b1"}, ids(res))

	res, err = ts.im.FindByAuction(mockCtx, "a1", bid.WithOrder(bid.OrderAmountDesc), bid.WithPagination(0, 2))
	ts.NoError(err)
	ts.Equal([]string{"b3", "b2"}, ids(res))

	res, err = ts.im.FindByAuction(mockCtx, "a1", bid.WithOrder(bid.OrderTimeAsc))
	ts.NoError(err)
	ts.Equal([]string{"b1", "b2", "b3"}, ids(res))

	res, err = ts.im.FindByBidder(mockCtx, "u1", bid.WithStatuses(bid.StatusWinning))
	ts.NoError(err)
	ts.Equal([]string{"b4", "b3"}, ids(res))

	_, err = ts.im.FindByAuction(mockCtx, "a1", bid.WithOrder("bogus"))
	ts.True(errors.Is(err, domain.ErrValidation))
}

func (ts *repoSuite) TestHighest() {
	_, err := ts.im.Highest(mockCtx, "a1")
	ts.True(errors.Is(err, domain.ErrNotFound))

	ts.seed(
		newBid("b1", "a1", "u1", "10", 0, bid.StatusOutbid),
		newBid("b2", "a1", "u2", "50", time.Minute, bid.StatusCancelled),
		newBid("b3", "a1", "u1", "30", 2*time.Minute, bid.StatusWinning),
	)
	got, err := ts.im.Highest(mockCtx, "a1")
	ts.Require().NoError(err)
	ts.Equal("b3", got.Id)
}

func (ts *repoSuite) TestDemoteBelow() {
	ts.seed(
		newBid("b1", "a1", "u1", "10", 0, bid.StatusActive),
		newBid("b2", "a1", "u2", "20", time.Minute, bid.StatusWinning),
		newBid("b3", "a1", "u3", "30", 2*time.Minute, bid.StatusWinning),
		newBid("b4", "a1", "u4", "5", 3*time.Minute, bid.StatusCancelled),
		newBid("b5", "a2", "u1", "1", 4*time.Minute, bid.StatusWinning),
	)

	n, err := ts.im.DemoteBelow(mockCtx, "a1", decimal.RequireFromString("30"), "b3")
	ts.NoError(err)
	ts.Equal(2, n)

	res, err := ts.im.FindByAuction(mockCtx, "a1", bid.WithStatuses(bid.StatusOutbid), bid.WithOrder(bid.OrderTimeAsc))
	ts.NoError(err)
	ts.Equal([]string{"b1", "b2"}, ids(res))

	for id, exp := range map[string]bid.Status{"b3": bid.StatusWinning, "b4": bid.StatusCancelled, "b5": bid.StatusWinning} {
		got, err := ts.im.Get(mockCtx, id)
		ts.NoError(err)
		ts.Equal(exp, got.Status, id)
	}
}

func TestMemoryRollback(t *testing.T) {
	im := NewMemory()
	tx := memtx.New()
	errBoom := errors.New("boom")

	if err := im.Insert(mockCtx, newBid("b1", "a1", "u1", "10", 0, bid.StatusWinning)); err != nil {
		t.Fatal(err)
	}
	err := tx.RunWithTransaction(mockCtx, func(c ctx.Ctx) error {
		if err := im.Insert(c, newBid("b2", "a1", "u2", "20", time.Minute, bid.StatusWinning)); err != nil {
			return err
		}
		if _, err := im.DemoteBelow(c, "a1", decimal.RequireFromString("20"), "b2"); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("unexpected err %v", err)
	}
	if _, err := im.Get(mockCtx, "b2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("insert not rolled back: %v", err)
	}
	if got, _ := im.Get(mockCtx, "b1"); got.Status != bid.StatusWinning {
		t.Fatalf("demotion not rolled back: %s", got.Status)
	}
}
