package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
	Field  string             `json:"field,omitempty"`
}

var errStatus = []struct {
	kind   error
	status int
}{
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrInvalidBid, http.StatusBadRequest},
	{domain.ErrAuctionClosed, http.StatusBadRequest},
	{domain.ErrInvalidJsonFormat, http.StatusBadRequest},
	{domain.ErrInvalidState, http.StatusConflict},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrStorage, http.StatusInternalServerError},
}

// StatusOf maps a domain error to its http status, 500 for unknown errors
func StatusOf(err error) int {
	for _, e := range errStatus {
		if errors.Is(err, e.kind) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// MakeJsonResp writes the {data,status} envelope. Passing an error as data
// picks the status from the error kind and hides internal error details.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			msg = http.StatusText(status)
		}
		return c.JSON(status, JsonResponse{Data: msg, Status: JsonResponseStatusFail, Field: domain.FieldOf(err)})
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{Data: data, Status: JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{Data: data, Status: JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}

// Ctx returns the request scoped ctx set by the AddContext middleware
func Ctx(c echo.Context) ctx.Ctx {
	if v, ok := c.Get("ctx").(ctx.Ctx); ok {
		return v
	}
	return ctx.Background()
}
