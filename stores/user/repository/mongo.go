package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/user"
	"github.com/x-xyz/goauction/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) user.Repo {
	return &impl{q}
}

// EnsureIndexes creates the unique username index
func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.EnsureIndexes(c, domain.TableUsers, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_unique"),
		},
	})
}

func (im *impl) findOne(c ctx.Ctx, qry bson.M) (*user.User, error) {
	res := &user.User{}
	if err := im.q.FindOne(c, domain.TableUsers, qry, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, domain.NewStorageError(xerrors.Errorf("find user: %w", err))
	}
	return res, nil
}

func (im *impl) Get(c ctx.Ctx, id user.UserID) (*user.User, error) {
	return im.findOne(c, bson.M{"_id": id})
}

func (im *impl) FindByUsername(c ctx.Ctx, username string) (*user.User, error) {
	return im.findOne(c, bson.M{"username": username})
}

func (im *impl) Insert(c ctx.Ctx, u *user.User) error {
	if err := im.q.Insert(c, domain.TableUsers, u); err == query.ErrDuplicateKey {
		return xerrors.Errorf("user %s: %w", u.Username, domain.ErrConflict)
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return domain.NewStorageError(xerrors.Errorf("insert user: %w", err))
	}
	return nil
}
