package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/file"
	authMiddleware "github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
)

type handler struct {
	file file.Usecase
}

func New(e *echo.Echo, file file.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{file}

	g := e.Group("/files")

	g.POST("/images", h.uploadImage, authMiddleware.Auth())
}

type uploadImageParams struct {
	Image string `json:"image"`
}

type uploadImageResult struct {
	Url string `json:"url"`
}

func (h *handler) uploadImage(c echo.Context) error {
	ctx := delivery.Ctx(c)

	p := &uploadImageParams{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidJsonFormat)
	}

	url, err := h.file.UploadImage(ctx, authMiddleware.UserId(c), p.Image)
	if err != nil {
		ctx.WithField("err", err).Warn("file.UploadImage failed")
		return delivery.MakeJsonResp(c, 0, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, uploadImageResult{Url: url})
}
