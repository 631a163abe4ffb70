package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/payment"
	"github.com/x-xyz/goauction/domain/user"
	authMiddleware "github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
)

const defaultLimit = 20

type handler struct {
	auction auction.UseCase
}

func New(e *echo.Echo, auction auction.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{auction}

	gs := e.Group("/auctions")

	gs.GET("", h.getAll)

	gs.POST("", h.create, authMiddleware.Auth())

	g := e.Group("/auctions/:id")

	g.GET("", h.get)

	g.PATCH("", h.update, authMiddleware.Auth())

	g.DELETE("", h.delete, authMiddleware.Auth())

	g.POST("/start", h.start, authMiddleware.Auth())

	g.POST("/end", h.end, authMiddleware.Auth())

	g.POST("/cancel", h.cancel, authMiddleware.Auth())

	g.POST("/pay", h.pay, authMiddleware.Auth())

	g.GET("/payment", h.getPayment, authMiddleware.Auth())

	e.GET("/sellers/me/stats", h.sellerStats, authMiddleware.Auth())
}

type searchParams struct {
	Status   *string `query:"status"`
	SellerId *string `query:"sellerId"`
	Category *string `query:"category"`
	MinPrice *string `query:"minPrice"`
	MaxPrice *string `query:"maxPrice"`
	Sort     *string `query:"sort"`
	Offset   int32   `query:"offset"`
	Limit    int32   `query:"limit"`
}

type searchResult struct {
	Items []*auction.Auction `json:"items"`
	Count int                `json:"count"`
}

func parsePrice(field string, s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, domain.NewValidationError(field, "not a number")
	}
	return &d, nil
}

func (h *handler) getAll(c echo.Context) error {
	ctx := delivery.Ctx(c)

	p := &searchParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []auction.FindAllOptionsFunc{}
	if p.Status != nil {
		opts = append(opts, auction.WithStatus(auction.Status(*p.Status)))
	}
	if p.SellerId != nil {
		opts = append(opts, auction.WithSeller(user.UserID(*p.SellerId)))
	}
	if p.Category != nil {
		opts = append(opts, auction.WithCategory(*p.Category))
	}
	if p.MinPrice != nil || p.MaxPrice != nil {
		min, err := parsePrice("minPrice", p.MinPrice)
		if err != nil {
			return delivery.MakeJsonResp(c, 0, err)
		}
		max, err := parsePrice("maxPrice", p.MaxPrice)
		if err != nil {
			return delivery.MakeJsonResp(c, 0, err)
		}
		opts = append(opts, auction.WithPriceRange(min, max))
	}

	count, err := h.auction.Count(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}

	sort := auction.SortNewest
	if p.Sort != nil {
		sort = *p.Sort
	}
	limit := p.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	opts = append(opts, auction.WithSort(sort), auction.WithPagination(p.Offset, limit))

	res, err := h.auction.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, searchResult{Items: res, Count: count})
}

func (h *handler) create(c echo.Context) error {
	ctx := delivery.Ctx(c)

	p := &auction.CreateParams{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidJsonFormat)
	}
	p.SellerId = authMiddleware.UserId(c)

	res, err := h.auction.Create(ctx, p)
	if err != nil {
		ctx.WithField("err", err).Warn("auction.Create failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) get(c echo.Context) error {
	ctx := delivery.Ctx(c)

	res, err := h.auction.Get(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// sellerOnly rejects callers that did not list the auction
func (h *handler) sellerOnly(ctx ctx.Ctx, c echo.Context) error {
	a, err := h.auction.Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	if !a.IsSeller(authMiddleware.UserId(c)) {
		return domain.NewForbiddenError("only the seller can manage this auction")
	}
	return nil
}

func (h *handler) update(c echo.Context) error {
	ctx := delivery.Ctx(c)

	patch := &auction.Patch{}
	if err := c.Bind(patch); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidJsonFormat)
	}
	if err := h.sellerOnly(ctx, c); err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}

	res, err := h.auction.Update(ctx, c.Param("id"), patch)
	if err != nil {
		ctx.WithField("err", err).Warn("auction.Update failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) delete(c echo.Context) error {
	ctx := delivery.Ctx(c)

	if err := h.sellerOnly(ctx, c); err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	if err := h.auction.Delete(ctx, c.Param("id")); err != nil {
		ctx.WithField("err", err).Warn("auction.Delete failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type transitionFunc func(c ctx.Ctx, id string) (*auction.Auction, error)

func (h *handler) transit(c echo.Context, name string, fn transitionFunc) error {
	ctx := delivery.Ctx(c)

	if err := h.sellerOnly(ctx, c); err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	res, err := fn(ctx, c.Param("id"))
	if err != nil {
		ctx.WithField("err", err).Warn("auction." + name + " failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) start(c echo.Context) error {
	return h.transit(c, "Start", h.auction.Start)
}

func (h *handler) end(c echo.Context) error {
	return h.transit(c, "End", h.auction.End)
}

func (h *handler) cancel(c echo.Context) error {
	return h.transit(c, "Cancel", h.auction.Cancel)
}

func (h *handler) pay(c echo.Context) error {
	ctx := delivery.Ctx(c)

	params := &payment.PayParams{}
	if err := c.Bind(params); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidJsonFormat)
	}

	res, err := h.auction.MarkPaid(ctx, c.Param("id"), authMiddleware.UserId(c), params)
	if err != nil {
		ctx.WithField("err", err).Warn("auction.MarkPaid failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getPayment is visible to the seller and the payer only
func (h *handler) getPayment(c echo.Context) error {
	ctx := delivery.Ctx(c)

	res, err := h.auction.Payment(ctx, c.Param("id"))
	if err != nil {
		ctx.WithField("err", err).Warn("auction.Payment failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	if caller := authMiddleware.UserId(c); caller != res.SellerId && caller != res.PayerId {
		return delivery.MakeJsonResp(c, 0, domain.NewForbiddenError("not a party of this payment"))
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) sellerStats(c echo.Context) error {
	ctx := delivery.Ctx(c)

	res, err := h.auction.SellerStats(ctx, authMiddleware.UserId(c))
	if err != nil {
		ctx.WithField("err", err).Error("auction.SellerStats failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
