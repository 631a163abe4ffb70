package query

import (
	"errors"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/database/mongoclient"
	"github.com/x-xyz/goauction/domain"
)

var (
	mockCTX = ctx.Background()
)

const (
	mockTable = domain.Table("query_test")
	dbName    = "goauction_test"
)

type dummy struct {
	Id      string          `bson:"_id"`
	Name    string          `bson:"name"`
	Amount  decimal.Decimal `bson:"amount"`
	Version int64           `bson:"version"`
}

type querySuite struct {
	suite.Suite
	im *impl
}

func (q *querySuite) SetupSuite() {
	client := mongoclient.MustConnectMongoClient(mongoclient.Config{
		URI:     os.Getenv("MONGO_URI"),
		DBName:  dbName,
		SetSafe: true,
	})
	q.im = New(client, WithTransaction(os.Getenv("MONGO_TRANSACTION") != "false")).(*impl)
}

func (q *querySuite) TearDownSuite() {
	q.NoError(q.im.client.Disconnect(mockCTX))
}

func (q *querySuite) SetupTest() {
	q.im.checkIndex = false
	q.Require().NoError(q.im.collection(mockTable).Drop(mockCTX))
}

func (q *querySuite) seed(docs ...dummy) {
	for _, d := range docs {
		q.Require().NoError(q.im.Insert(mockCTX, mockTable, d))
	}
}

func (q *querySuite) TestInsertAndFindOne() {
	in := dummy{Id: "a", Name: "lamp", Amount: decimal.RequireFromString("105.25"), Version: 1}
	q.seed(in)

	out := dummy{}
	q.Require().NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"_id": "a"}, &out))
	q.Equal(in.Name, out.Name)
	q.True(in.Amount.Equal(out.Amount))

	q.Equal(ErrDuplicateKey, q.im.Insert(mockCTX, mockTable, in))
	q.Equal(ErrNotFound, q.im.FindOne(mockCTX, mockTable, bson.M{"_id": "b"}, &out))
}

func (q *querySuite) TestDecimalComparison() {
	q.seed(
		dummy{Id: "a", Amount: decimal.RequireFromString("99.99")},
		dummy{Id: "b", Amount: decimal.RequireFromString("100")},
		dummy{Id: "c", Amount: decimal.RequireFromString("100.01")},
	)
	n, err := q.im.Count(mockCTX, mockTable, bson.M{"amount": bson.M{"$lt": decimal.NewFromInt(100)}})
	q.NoError(err)
	q.Equal(1, n)

	var res []dummy
	q.NoError(q.im.Search(mockCTX, mockTable, 0, 10, "-amount", bson.M{}, &res))
	q.Require().Len(res, 3)
	q.Equal("c", res[0].Id)
	q.Equal("a", res[2].Id)
}

func (q *querySuite) TestSearchNSorts() {
	q.seed(
		dummy{Id: "a", Name: "x", Version: 2},
		dummy{Id: "b", Name: "x", Version: 1},
		dummy{Id: "c", Name: "y", Version: 1},
	)
	var res []dummy
	q.NoError(q.im.SearchNSorts(mockCTX, mockTable, 1, 2, []string{"version", "-name"}, bson.M{}, &res))
	q.Require().Len(res, 2)
	q.Equal("b", res[0].Id)
	q.Equal("a", res[1].Id)
}

func (q *querySuite) TestReplaceConditional() {
	q.seed(dummy{Id: "a", Name: "old", Version: 1})

	err := q.im.Replace(mockCTX, mockTable, bson.M{"_id": "a", "version": 1}, dummy{Id: "a", Name: "new", Version: 2})
	q.NoError(err)

	err = q.im.Replace(mockCTX, mockTable, bson.M{"_id": "a", "version": 1}, dummy{Id: "a", Name: "stale", Version: 2})
	q.Equal(ErrNotFound, err)

	out := dummy{}
	q.NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"_id": "a"}, &out))
	q.Equal("new", out.Name)
}

func (q *querySuite) TestPatchAndUpdateMany() {
	q.seed(
		dummy{Id: "a", Name: "x"},
		dummy{Id: "b", Name: "x"},
		dummy{Id: "c", Name: "y"},
	)
	q.NoError(q.im.Patch(mockCTX, mockTable, bson.M{"_id": "c"}, bson.M{"name": "z"}))
	q.Equal(ErrNotFound, q.im.Patch(mockCTX, mockTable, bson.M{"_id": "d"}, bson.M{"name": "z"}))

	n, err := q.im.UpdateMany(mockCTX, mockTable, bson.M{"name": "x"}, bson.M{"name": "w"})
	q.NoError(err)
	q.Equal(int64(2), n)

	cnt, err := q.im.Count(mockCTX, mockTable, bson.M{"name": "w"})
	q.NoError(err)
	q.Equal(2, cnt)
}

func (q *querySuite) TestRemove() {
	q.seed(dummy{Id: "a"})
	q.NoError(q.im.Remove(mockCTX, mockTable, bson.M{"_id": "a"}))
	q.Equal(ErrNotFound, q.im.Remove(mockCTX, mockTable, bson.M{"_id": "a"}))
}

func (q *querySuite) TestEnsureIndexesAndCheckIndex() {
	q.seed(dummy{Id: "a", Name: "x"})
	unique := true
	q.NoError(q.im.EnsureIndexes(mockCTX, mockTable, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: &options.IndexOptions{Unique: &unique}},
	}))
	q.Equal(ErrDuplicateKey, q.im.Insert(mockCTX, mockTable, dummy{Id: "b", Name: "x"}))

	q.im.checkIndex = true
	var res []dummy
	q.NoError(q.im.Search(mockCTX, mockTable, 0, 5, "", bson.M{"name": "x"}, &res))
	q.Equal(ErrCollScan, q.im.Search(mockCTX, mockTable, 0, 5, "", bson.M{"version": 0}, &res))
}

func (q *querySuite) TestRunWithTransaction() {
	if !q.im.transaction {
		q.T().Skip("transactions disabled")
	}
	errAbort := errors.New("abort")
	err := q.im.RunWithTransaction(mockCTX, func(c ctx.Ctx) error {
		q.Require().NoError(q.im.Insert(c, mockTable, dummy{Id: "a"}))
		// nested calls join the outer transaction
		q.Require().NoError(q.im.RunWithTransaction(c, func(c ctx.Ctx) error {
			return q.im.Insert(c, mockTable, dummy{Id: "b"})
		}))
		return errAbort
	})
	q.Equal(errAbort, err)

	n, err := q.im.Count(mockCTX, mockTable, bson.M{})
	q.NoError(err)
	q.Equal(0, n)

	q.NoError(q.im.RunWithTransaction(mockCTX, func(c ctx.Ctx) error {
		return q.im.Insert(c, mockTable, dummy{Id: "a"})
	}))
	n, err = q.im.Count(mockCTX, mockTable, bson.M{})
	q.NoError(err)
	q.Equal(1, n)
}

func TestQuerySuite(t *testing.T) {
	if os.Getenv("MONGO_URI") == "" {
		t.Skip("MONGO_URI not set")
	}
	suite.Run(t, new(querySuite))
}

func TestRunWithTransactionUnavailable(t *testing.T) {
	for name, opts := range map[string][]Option{
		"checkIndex":   {WithCheckIndex(true)},
		"disabled":     {WithTransaction(false)},
		"checkIndexTx": {WithCheckIndex(true), WithTransaction(true)},
	} {
		t.Run(name, func(t *testing.T) {
			im := New(nil, opts...)
			called := false
			err := im.RunWithTransaction(mockCTX, func(c ctx.Ctx) error {
				called = true
				return nil
			})
			if !errors.Is(err, domain.ErrNoTransaction) {
				t.Fatalf("unexpected err %v", err)
			}
			if called {
				t.Fatal("run must not be called without a transaction")
			}
		})
	}
}
