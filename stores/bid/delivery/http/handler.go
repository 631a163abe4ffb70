package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/bid"
	"github.com/x-xyz/goauction/domain/user"
	authMiddleware "github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
)

const defaultLimit = 50

type handler struct {
	bid bid.UseCase
}

func New(e *echo.Echo, bid bid.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{bid}

	ga := e.Group("/auctions/:id/bids")

	ga.POST("", h.place, authMiddleware.Auth())

	ga.GET("", h.getByAuction)

	ga.GET("/highest", h.getHighest)

	ga.GET("/trend", h.getTrend)

	gb := e.Group("/bids/:id")

	gb.GET("", h.get)

	gb.POST("/cancel", h.cancel, authMiddleware.Auth())

	e.GET("/bidders/:id/bids", h.getByBidder)
}

type listParams struct {
	Order  *string `query:"order"`
	Status *string `query:"status"`
	Offset int32   `query:"offset"`
	Limit  int32   `query:"limit"`
}

func (p *listParams) options() []bid.FindAllOptionsFunc {
	limit := p.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	opts := []bid.FindAllOptionsFunc{bid.WithPagination(p.Offset, limit)}
	if p.Order != nil {
		opts = append(opts, bid.WithOrder(bid.Order(*p.Order)))
	}
	if p.Status != nil {
		opts = append(opts, bid.WithStatuses(bid.Status(*p.Status)))
	}
	return opts
}

func (h *handler) place(c echo.Context) error {
	ctx := delivery.Ctx(c)

	p := &bid.PlaceParams{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidJsonFormat)
	}

	res, err := h.bid.PlaceBid(ctx, c.Param("id"), authMiddleware.UserId(c), p.Amount, p.Notes)
	if err != nil {
		ctx.WithField("err", err).Warn("bid.PlaceBid failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) getByAuction(c echo.Context) error {
	ctx := delivery.Ctx(c)

	p := &listParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.bid.FindByAuction(ctx, c.Param("id"), p.options()...)
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getByBidder(c echo.Context) error {
	ctx := delivery.Ctx(c)

	p := &listParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.bid.FindByBidder(ctx, user.UserID(c.Param("id")), p.options()...)
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getHighest(c echo.Context) error {
	ctx := delivery.Ctx(c)

	res, err := h.bid.Highest(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getTrend(c echo.Context) error {
	ctx := delivery.Ctx(c)

	res, err := h.bid.PriceTrend(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) get(c echo.Context) error {
	ctx := delivery.Ctx(c)

	res, err := h.bid.Get(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) cancel(c echo.Context) error {
	ctx := delivery.Ctx(c)

	res, err := h.bid.CancelBid(ctx, c.Param("id"), authMiddleware.UserId(c))
	if err != nil {
		ctx.WithField("err", err).Warn("bid.CancelBid failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
