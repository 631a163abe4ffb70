package repository

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/database/mongoclient"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/notification"
	"github.com/x-xyz/goauction/domain/user"
	"github.com/x-xyz/goauction/service/query"
)

var (
	mockCtx = ctx.Background()
	t0      = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
)

type repoSuite struct {
	suite.Suite
	newRepo func() notification.InboxRepo
	im      notification.InboxRepo
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
	suite.Run(t, &repoSuite{newRepo: func() notification.InboxRepo {
		if err := client.Database("goauction_test").Collection(string(domain.TableNotifications)).Drop(mockCtx); err != nil {
			t.Fatal(err)
		}
		if err := EnsureIndexes(mockCtx, q, 24*time.Hour); err != nil {
			t.Fatal(err)
		}
		return New(q)
	}})
}

func (ts *repoSuite) seed(recipient user.UserID, n int) {
	for i := 0; i < n; i++ {
		ts.Require().NoError(ts.im.Insert(mockCtx, &notification.Notification{
			Id:          fmt.Sprintf("%s-%d", recipient, i),
			RecipientId: recipient,
			AuctionId:   "a1",
			Kind:        notification.KindOutbid,
			Message:     "outbid",
			CreatedAt:   t0.Add(time.Duration(i) * time.Minute),
		}))
	}
}

func (ts *repoSuite) TestFindAll() {
	ts.seed("u1", 3)
	ts.seed("u2", 1)

	res, err := ts.im.FindAll(mockCtx, "u1")
	ts.NoError(err)
	ts.Require().Len(res, 3)
	ts.Equal("u1-2", res[0].Id)

	res, err = ts.im.FindAll(mockCtx, "u1", notification.WithPagination(1, 1))
	ts.NoError(err)
	ts.Require().Len(res, 1)
	ts.Equal("u1-1", res[0].Id)
}

func (ts *repoSuite) TestReadState() {
	ts.seed("u1", 3)

	n, err := ts.im.CountUnread(mockCtx, "u1")
	ts.NoError(err)
	ts.Equal(3, n)

	ts.NoError(ts.im.MarkRead(mockCtx, "u1", "u1-0"))
	ts.True(errors.Is(ts.im.MarkRead(mockCtx, "u2", "u1-1"), domain.ErrNotFound))

	unread, err := ts.im.FindAll(mockCtx, "u1", notification.WithUnreadOnly(true))
	ts.NoError(err)
	ts.Len(unread, 2)

	marked, err := ts.im.MarkAllRead(mockCtx, "u1")
	ts.NoError(err)
	ts.Equal(2, marked)

	n, err = ts.im.CountUnread(mockCtx, "u1")
	ts.NoError(err)
	ts.Equal(0, n)
}
