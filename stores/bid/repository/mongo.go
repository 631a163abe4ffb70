package repository

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/bid"
	"github.com/x-xyz/goauction/domain/user"
	"github.com/x-xyz/goauction/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) bid.Repo {
	return &impl{q}
}

func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.EnsureIndexes(c, domain.TableBids, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "auctionId", Value: 1}, {Key: "amount", Value: -1}},
			Options: options.Index().SetName("auctionId_amount"),
		},
		{
			Keys:    bson.D{{Key: "auctionId", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("auctionId_timestamp"),
		},
		{
			Keys:    bson.D{{Key: "bidderId", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("bidderId_timestamp"),
		},
	})
}

func (im *impl) Get(c ctx.Ctx, id string) (*bid.Bid, error) {
	res := &bid.Bid{}
	if err := im.q.FindOne(c, domain.TableBids, bson.M{"_id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, domain.NewStorageError(xerrors.Errorf("get bid %s: %w", id, err))
	}
	return res, nil
}

func (im *impl) Insert(c ctx.Ctx, b *bid.Bid) error {
	if err := im.q.Insert(c, domain.TableBids, b); err == query.ErrDuplicateKey {
		return xerrors.Errorf("bid %s: %w", b.Id, domain.ErrConflict)
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return domain.NewStorageError(xerrors.Errorf("insert bid: %w", err))
	}
	return nil
}

func (im *impl) UpdateStatus(c ctx.Ctx, id string, status bid.Status) error {
	if err := im.q.Patch(c, domain.TableBids, bson.M{"_id": id}, bson.M{"status": status}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.Patch failed")
		return domain.NewStorageError(xerrors.Errorf("update bid %s: %w", id, err))
	}
	return nil
}

func (im *impl) find(c ctx.Ctx, qry bson.M, optFns []bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	opts, err := bid.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	offset, limit := pageOf(opts)
	res := []*bid.Bid{}
	if err := im.q.SearchNSorts(c, domain.TableBids, offset, limit, sortsOf(opts.Order), toSelector(opts, qry), &res); err != nil {
		c.WithField("err", err).Error("q.SearchNSorts failed")
		return nil, domain.NewStorageError(xerrors.Errorf("find bids: %w", err))
	}
	return res, nil
}

func (im *impl) FindByAuction(c ctx.Ctx, auctionId string, opts ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	return im.find(c, bson.M{"auctionId": auctionId}, opts)
}

func (im *impl) FindByBidder(c ctx.Ctx, bidderId user.UserID, opts ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	return im.find(c, bson.M{"bidderId": bidderId}, opts)
}

func (im *impl) Highest(c ctx.Ctx, auctionId string) (*bid.Bid, error) {
	res, err := im.FindByAuction(c, auctionId,
		bid.WithStatuses(liveStatuses...),
		bid.WithOrder(bid.OrderAmountDesc),
		bid.WithPagination(0, 1),
	)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, domain.ErrNotFound
	}
	return res[0], nil
}

func (im *impl) DemoteBelow(c ctx.Ctx, auctionId string, amount decimal.Decimal, exceptId string) (int, error) {
	selector := bson.M{
		"auctionId": auctionId,
		"_id":       bson.M{"$ne": exceptId},
		"status":    bson.M{"$in": liveStatuses},
		"amount":    bson.M{"$lt": amount},
	}
	n, err := im.q.UpdateMany(c, domain.TableBids, selector, bson.M{"status": bid.StatusOutbid})
	if err != nil {
		c.WithField("err", err).Error("q.UpdateMany failed")
		return 0, domain.NewStorageError(xerrors.Errorf("demote bids of %s: %w", auctionId, err))
	}
	return int(n), nil
}
