package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
)

func TestAddContextAndCORS(t *testing.T) {
	req := require.New(t)
	m := InitMiddleware("https://a.example", "https://b.example")

	e := echo.New()
	e.Use(m.CORS, m.AddContext(), m.ResponseLogger())

	var got ctx.Ctx
	e.GET("/ping", func(c echo.Context) error {
		got = delivery.Ctx(c)
		return c.NoContent(http.StatusNoContent)
	})

	r := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.Header.Set(echo.HeaderXRequestID, "req-1")
	r.Header.Set(echo.HeaderOrigin, "https://b.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, r)

	req.Equal(http.StatusNoContent, rec.Code)
	req.Equal("https://b.example", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	req.Equal("req-1", got.Value("requestID"))

	r = httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.Header.Set(echo.HeaderOrigin, "https://evil.example")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, r)
	req.Empty(rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestCORSDefaultsToAny(t *testing.T) {
	e := echo.New()
	e.Use(InitMiddleware().CORS)
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
