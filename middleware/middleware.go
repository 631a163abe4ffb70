package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
)

// GoMiddleware represent the data-struct for middleware
type GoMiddleware struct {
	// nil allows any origin
	allowOrigins map[string]struct{}
}

// InitMiddleware initialize the middleware. Empty allowOrigins allows any origin.
func InitMiddleware(allowOrigins ...string) *GoMiddleware {
	m := &GoMiddleware{}
	for _, o := range allowOrigins {
		if o == "*" {
			return &GoMiddleware{}
		}
		if m.allowOrigins == nil {
			m.allowOrigins = make(map[string]struct{})
		}
		m.allowOrigins[strings.TrimSuffix(o, "/")] = struct{}{}
	}
	return m
}

// CORS will handle the CORS middleware
func (m *GoMiddleware) CORS(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		if m.allowOrigins == nil {
			h.Set(echo.HeaderAccessControlAllowOrigin, "*")
		} else if origin := c.Request().Header.Get(echo.HeaderOrigin); origin != "" {
			h.Add(echo.HeaderVary, echo.HeaderOrigin)
			if _, ok := m.allowOrigins[origin]; ok {
				h.Set(echo.HeaderAccessControlAllowOrigin, origin)
			}
		}
		h.Set(echo.HeaderAccessControlAllowHeaders, "Authorization,Content-Type")
		return next(c)
	}
}

// AddContexte adds custome context into echo
func (m *GoMiddleware) AddContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			reqId := c.Response().Header().Get(echo.HeaderXRequestID)
			if reqId == "" {
				reqId = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			cont := ctx.WithValue(ctx.Background(), "requestID", reqId)
			c.Set("ctx", cont)
			return next(c)
		}
	}
}

// ResponseLogger logs response for every request
func (m *GoMiddleware) ResponseLogger() echo.MiddlewareFunc {
	met := metrics.New("http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer met.BumpTime("request.time", "method", c.Request().Method, "path", c.Path()).End()

			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			fields := log.Fields{
				"ms":             time.Since(start).Seconds() * 1000,
				"httpStatus":     c.Response().Status,
				"host":           req.Host,
				"remoteIP":       c.RealIP(),
				"uri":            c.Request().URL.Path,
				"httpMethod":     c.Request().Method,
				"size":           res.Size,
				"userAgent":      req.UserAgent(),
				"acceptEncoding": c.Request().Header.Get("Accept-Encoding"),
				"referer":        c.Request().Header.Get("Referer"),
			}

			if res.Status >= 400 {
				fields["nextErr"] = err
			}

			delivery.Ctx(c).WithFields(fields).Info("response")
			return nil
		}
	}
}
