package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/notification"
	"github.com/x-xyz/goauction/domain/user"
	"github.com/x-xyz/goauction/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) notification.InboxRepo {
	return &impl{q}
}

// EnsureIndexes creates the inbox indexes. A positive ttl lets mongo expire
// old notifications.
func EnsureIndexes(c ctx.Ctx, q query.Mongo, ttl time.Duration) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "recipientId", Value: 1}, {Key: "read", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("recipientId_read_createdAt"),
		},
	}
	if ttl > 0 {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("createdAt_ttl").SetExpireAfterSeconds(int32(ttl.Seconds())),
		})
	}
	return q.EnsureIndexes(c, domain.TableNotifications, models)
}

func (im *impl) Insert(c ctx.Ctx, n *notification.Notification) error {
	if err := im.q.Insert(c, domain.TableNotifications, n); err == query.ErrDuplicateKey {
		return xerrors.Errorf("notification %s: %w", n.Id, domain.ErrConflict)
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return domain.NewStorageError(xerrors.Errorf("insert notification: %w", err))
	}
	return nil
}

func (im *impl) FindAll(c ctx.Ctx, recipientId user.UserID, optFns ...notification.FindAllOptionsFunc) ([]*notification.Notification, error) {
	opts, err := notification.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	qry := bson.M{"recipientId": recipientId}
	if opts.UnreadOnly {
		qry["read"] = false
	}
	offset, limit := 0, 0
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	res := []*notification.Notification{}
	if err := im.q.Search(c, domain.TableNotifications, offset, limit, "-createdAt", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, domain.NewStorageError(xerrors.Errorf("find notifications: %w", err))
	}
	return res, nil
}

func (im *impl) CountUnread(c ctx.Ctx, recipientId user.UserID) (int, error) {
	n, err := im.q.Count(c, domain.TableNotifications, bson.M{"recipientId": recipientId, "read": false})
	if err != nil {
		c.WithField("err", err).Error("q.Count failed")
		return 0, domain.NewStorageError(xerrors.Errorf("count notifications: %w", err))
	}
	return n, nil
}

func (im *impl) MarkRead(c ctx.Ctx, recipientId user.UserID, id string) error {
	err := im.q.Patch(c, domain.TableNotifications, bson.M{"_id": id, "recipientId": recipientId}, bson.M{"read": true})
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.Patch failed")
		return domain.NewStorageError(xerrors.Errorf("mark notification %s: %w", id, err))
	}
	return nil
}

func (im *impl) MarkAllRead(c ctx.Ctx, recipientId user.UserID) (int, error) {
	n, err := im.q.UpdateMany(c, domain.TableNotifications, bson.M{"recipientId": recipientId, "read": false}, bson.M{"read": true})
	if err != nil {
		c.WithField("err", err).Error("q.UpdateMany failed")
		return 0, domain.NewStorageError(xerrors.Errorf("mark notifications: %w", err))
	}
	return int(n), nil
}
