package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/payment"
	"github.com/x-xyz/goauction/domain/user"
	"github.com/x-xyz/goauction/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) payment.Repo {
	return &impl{q}
}

// EnsureIndexes makes auctionId unique so an auction is paid at most once
func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.EnsureIndexes(c, domain.TablePayments, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "auctionId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("auctionId_unique"),
		},
		{
			Keys:    bson.D{{Key: "sellerId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("sellerId_createdAt"),
		},
	})
}

func (im *impl) Insert(c ctx.Ctx, p *payment.Payment) error {
	if err := im.q.Insert(c, domain.TablePayments, p); err == query.ErrDuplicateKey {
		return xerrors.Errorf("payment of %s: %w", p.AuctionId, domain.ErrConflict)
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return domain.NewStorageError(xerrors.Errorf("insert payment: %w", err))
	}
	return nil
}

func (im *impl) FindByAuction(c ctx.Ctx, auctionId string) (*payment.Payment, error) {
	res := &payment.Payment{}
	if err := im.q.FindOne(c, domain.TablePayments, bson.M{"auctionId": auctionId}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, domain.NewStorageError(xerrors.Errorf("find payment of %s: %w", auctionId, err))
	}
	return res, nil
}

func (im *impl) FindBySeller(c ctx.Ctx, sellerId user.UserID) ([]*payment.Payment, error) {
	res := []*payment.Payment{}
	if err := im.q.Search(c, domain.TablePayments, 0, 0, "createdAt", bson.M{"sellerId": sellerId}, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, domain.NewStorageError(xerrors.Errorf("find payments of %s: %w", sellerId, err))
	}
	return res, nil
}
