package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/watchlist"
	authMiddleware "github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
)

type handler struct {
	watchlist watchlist.UseCase
}

func New(e *echo.Echo, watchlist watchlist.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{watchlist}

	g := e.Group("/watchlist", authMiddleware.Auth())

	g.GET("", h.getAll)

	g.GET("/:auctionId", h.check)

	g.POST("/:auctionId", h.add)

	g.DELETE("/:auctionId", h.remove)
}

type listParams struct {
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

	res, err := h.watchlist.List(ctx, authMiddleware.UserId(c), p.Offset, p.Limit)
	if err != nil {
		ctx.WithField("err", err).Error("watchlist.List failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

type checkResult struct {
	Watched bool `json:"watched"`
}

func (h *handler) check(c echo.Context) error {
	ctx := delivery.Ctx(c)

	ok, err := h.watchlist.IsWatched(ctx, authMiddleware.UserId(c), c.Param("auctionId"))
	if err != nil {
		ctx.WithField("err", err).Error("watchlist.IsWatched failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, checkResult{Watched: ok})
}

func (h *handler) add(c echo.Context) error {
	ctx := delivery.Ctx(c)

	res, err := h.watchlist.Add(ctx, authMiddleware.UserId(c), c.Param("auctionId"))
	if err != nil {
		ctx.WithField("err", err).Warn("watchlist.Add failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) remove(c echo.Context) error {
	ctx := delivery.Ctx(c)

	if err := h.watchlist.Remove(ctx, authMiddleware.UserId(c), c.Param("auctionId")); err != nil {
		ctx.WithField("err", err).Error("watchlist.Remove failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return c.NoContent(http.StatusNoContent)
}
