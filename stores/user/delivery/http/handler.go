package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/user"
	authMiddleware "github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
)

type handler struct {
	user user.UseCase
}

func New(e *echo.Echo, user user.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{user}

	g := e.Group("/users")
	g.POST("", h.register)
	g.GET("/me", h.me, authMiddleware.Auth())
	g.GET("/:id", h.get)
}

func (h *handler) register(c echo.Context) error {
	ctx := delivery.Ctx(c)

	p := &user.RegisterParams{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidJsonFormat)
	}

	res, err := h.user.Register(ctx, p)
	if err != nil {
		ctx.WithField("err", err).Warn("user.Register failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) get(c echo.Context) error {
	ctx := delivery.Ctx(c)

	res, err := h.user.Get(ctx, user.UserID(c.Param("id")))
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res.ToRef())
}

func (h *handler) me(c echo.Context) error {
	ctx := delivery.Ctx(c)

	res, err := h.user.Get(ctx, authMiddleware.UserId(c))
	if err != nil {
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
