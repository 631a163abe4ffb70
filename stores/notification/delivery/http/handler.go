package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/notification"
	authMiddleware "github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
)

const defaultLimit = 20

type handler struct {
	inbox notification.InboxUseCase
}

func New(e *echo.Echo, inbox notification.InboxUseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{inbox}

	g := e.Group("/notifications", authMiddleware.Auth())

	g.GET("", h.getAll)

	g.GET("/unread-count", h.countUnread)

	g.POST("/read", h.markAllRead)

	g.POST("/:id/read", h.markRead)
}

type listParams struct {
	Unread bool  `query:"unread"`
	Offset int32 `query:"offset"`
	Limit  int32 `query:"limit"`
}

func (h *handler) getAll(c echo.Context) error {
	ctx := delivery.Ctx(c)

	p := &listParams{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidJsonFormat)
	}
	if p.Limit == 0 {
		p.Limit = defaultLimit
	}

	res, err := h.inbox.FindAll(ctx, authMiddleware.UserId(c), notification.WithUnreadOnly(p.Unread), notification.WithPagination(p.Offset, p.Limit))
	if err != nil {
		ctx.WithField("err", err).Error("inbox.FindAll failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

type countResult struct {
	Unread int `json:"unread"`
}

func (h *handler) countUnread(c echo.Context) error {
	ctx := delivery.Ctx(c)

	n, err := h.inbox.CountUnread(ctx, authMiddleware.UserId(c))
	if err != nil {
		ctx.WithField("err", err).Error("inbox.CountUnread failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, countResult{Unread: n})
}

func (h *handler) markRead(c echo.Context) error {
	ctx := delivery.Ctx(c)

	if err := h.inbox.MarkRead(ctx, authMiddleware.UserId(c), c.Param("id")); err != nil {
		ctx.WithField("err", err).Warn("inbox.MarkRead failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type markAllResult struct {
	Updated int `json:"updated"`
}

func (h *handler) markAllRead(c echo.Context) error {
	ctx := delivery.Ctx(c)

	n, err := h.inbox.MarkAllRead(ctx, authMiddleware.UserId(c))
	if err != nil {
		ctx.WithField("err", err).Error("inbox.MarkAllRead failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, markAllResult{Updated: n})
}
