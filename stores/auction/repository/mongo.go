package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) auction.Repo {
	return &impl{q}
}

// EnsureIndexes creates the indexes used by listing and the scheduler sweeps
func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.EnsureIndexes(c, domain.TableAuctions, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "endDate", Value: 1}},
			Options: options.Index().SetName("status_endDate"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "startDate", Value: 1}},
			Options: options.Index().SetName("status_startDate"),
		},
		{
			Keys:    bson.D{{Key: "sellerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("sellerId_createdAt"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("category_status"),
		},
	})
}

func (im *impl) Get(c ctx.Ctx, id string) (*auction.Auction, error) {
	res := &auction.Auction{}
	if err := im.q.FindOne(c, domain.TableAuctions, bson.M{"_id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, domain.NewStorageError(xerrors.Errorf("get auction %s: %w", id, err))
	}
	return res, nil
}

func (im *impl) Insert(c ctx.Ctx, a *auction.Auction) error {
	if err := im.q.Insert(c, domain.TableAuctions, a); err == query.ErrDuplicateKey {
		return xerrors.Errorf("auction %s: %w", a.Id, domain.ErrConflict)
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return domain.NewStorageError(xerrors.Errorf("insert auction: %w", err))
	}
	return nil
}

func (im *impl) Save(c ctx.Ctx, a *auction.Auction, expectVersion int64) error {
	err := im.q.Replace(c, domain.TableAuctions, bson.M{"_id": a.Id, "version": expectVersion}, a)
	if err == nil {
		return nil
	} else if err != query.ErrNotFound {
		c.WithField("err", err).Error("q.Replace failed")
		return domain.NewStorageError(xerrors.Errorf("save auction %s: %w", a.Id, err))
	}

	// tell a missing auction from a concurrent save
	if n, err := im.q.Count(c, domain.TableAuctions, bson.M{"_id": a.Id}); err != nil {
		c.WithField("err", err).Error("q.Count failed")
		return domain.NewStorageError(xerrors.Errorf("save auction %s: %w", a.Id, err))
	} else if n == 0 {
		return domain.ErrNotFound
	}
	return xerrors.Errorf("auction %s version %d: %w", a.Id, expectVersion, domain.ErrConflict)
}

func (im *impl) Remove(c ctx.Ctx, id string) error {
	if err := im.q.Remove(c, domain.TableAuctions, bson.M{"_id": id}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.Remove failed")
		return domain.NewStorageError(xerrors.Errorf("remove auction %s: %w", id, err))
	}
	return nil
}

func (im *impl) FindAll(c ctx.Ctx, optFns ...auction.FindAllOptionsFunc) ([]*auction.Auction, error) {
	opts, err := auction.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	offset, limit, sort := pageOf(opts)
	res := []*auction.Auction{}
	if err := im.q.Search(c, domain.TableAuctions, offset, limit, sort, toSelector(opts), &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, domain.NewStorageError(xerrors.Errorf("find auctions: %w", err))
	}
	return res, nil
}

func (im *impl) Count(c ctx.Ctx, optFns ...auction.FindAllOptionsFunc) (int, error) {
	opts, err := auction.GetFindAllOptions(optFns...)
	if err != nil {
		return 0, err
	}

	n, err := im.q.Count(c, domain.TableAuctions, toSelector(opts))
	if err != nil {
		c.WithField("err", err).Error("q.Count failed")
		return 0, domain.NewStorageError(xerrors.Errorf("count auctions: %w", err))
	}
	return n, nil
}

func (im *impl) FindExpiredActive(c ctx.Ctx, now time.Time, limit int) ([]*auction.Auction, error) {
	qry := bson.M{
		"status":  auction.StatusActive,
		"endDate": bson.M{"$lte": now},
	}
	res := []*auction.Auction{}
	if err := im.q.Search(c, domain.TableAuctions, 0, limit, "endDate", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, domain.NewStorageError(xerrors.Errorf("find expired auctions: %w", err))
	}
	return res, nil
}

func (im *impl) FindDueToStart(c ctx.Ctx, now time.Time, limit int) ([]*auction.Auction, error) {
	qry := bson.M{
		"status":    auction.StatusDraft,
		"startDate": bson.M{"$lte": now},
		"endDate":   bson.M{"$gt": now},
	}
	res := []*auction.Auction{}
	if err := im.q.Search(c, domain.TableAuctions, 0, limit, "startDate", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, domain.NewStorageError(xerrors.Errorf("find due auctions: %w", err))
	}
	return res, nil
}
