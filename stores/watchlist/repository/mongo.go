package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/user"
	"github.com/x-xyz/goauction/domain/watchlist"
	"github.com/x-xyz/goauction/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) watchlist.Repo {
	return &impl{q}
}

func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.EnsureIndexes(c, domain.TableWatchlist, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "auctionId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("userId_auctionId_unique"),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("userId_createdAt"),
		},
	})
}

func (im *impl) Insert(c ctx.Ctx, e *watchlist.Entry) error {
	if err := im.q.Insert(c, domain.TableWatchlist, e); err == query.ErrDuplicateKey {
		return xerrors.Errorf("watch %s by %s: %w", e.AuctionId, e.UserId, domain.ErrConflict)
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return domain.NewStorageError(xerrors.Errorf("insert watch: %w", err))
	}
	return nil
}

func (im *impl) Get(c ctx.Ctx, userId user.UserID, auctionId string) (*watchlist.Entry, error) {
	res := &watchlist.Entry{}
	if err := im.q.FindOne(c, domain.TableWatchlist, bson.M{"userId": userId, "auctionId": auctionId}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, domain.NewStorageError(xerrors.Errorf("get watch: %w", err))
	}
	return res, nil
}

func (im *impl) Remove(c ctx.Ctx, userId user.UserID, auctionId string) error {
	if err := im.q.Remove(c, domain.TableWatchlist, bson.M{"userId": userId, "auctionId": auctionId}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.Remove failed")
		return domain.NewStorageError(xerrors.Errorf("remove watch: %w", err))
	}
	return nil
}

func (im *impl) FindByUser(c ctx.Ctx, userId user.UserID, offset, limit int) ([]*watchlist.Entry, error) {
	res := []*watchlist.Entry{}
	if err := im.q.SearchNSorts(c, domain.TableWatchlist, offset, limit, []string{"-createdAt", "_id"}, bson.M{"userId": userId}, &res); err != nil {
		c.WithField("err", err).Error("q.SearchNSorts failed")
		return nil, domain.NewStorageError(xerrors.Errorf("find watches of %s: %w", userId, err))
	}
	return res, nil
}
