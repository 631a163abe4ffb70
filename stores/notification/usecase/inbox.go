package usecase

import (
	"errors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/notification"
	"github.com/x-xyz/goauction/domain/user"
)

const maxInboxPage = 100

type InboxUseCaseCfg struct {
	Repo notification.InboxRepo
}

type inboxImpl struct {
	repo notification.InboxRepo
}

func NewInbox(cfg *InboxUseCaseCfg) notification.InboxUseCase {
	return &inboxImpl{repo: cfg.Repo}
}

func (im *inboxImpl) FindAll(c ctx.Ctx, recipientId user.UserID, opts ...notification.FindAllOptionsFunc) ([]*notification.Notification, error) {
	if recipientId.IsZero() {
		return nil, domain.NewValidationError("recipientId", "recipientId is required")
	}
	o, err := notification.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	if o.Limit != nil && *o.Limit > maxInboxPage {
		opts = append(opts, notification.WithPagination(ptrOr(o.Offset), maxInboxPage))
	}

	res, err := im.repo.FindAll(c, recipientId, opts...)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "recipientId": recipientId}).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *inboxImpl) CountUnread(c ctx.Ctx, recipientId user.UserID) (int, error) {
	return im.repo.CountUnread(c, recipientId)
}

func (im *inboxImpl) MarkRead(c ctx.Ctx, recipientId user.UserID, id string) error {
	if err := im.repo.MarkRead(c, recipientId, id); errors.Is(err, domain.ErrNotFound) {
		return domain.NewNotFoundError("notification not found")
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("repo.MarkRead failed")
		return err
	}
	return nil
}

func (im *inboxImpl) MarkAllRead(c ctx.Ctx, recipientId user.UserID) (int, error) {
	return im.repo.MarkAllRead(c, recipientId)
}

func ptrOr(v *int32) int32 {
	if v == nil {
		return 0
	}
	return *v
}
