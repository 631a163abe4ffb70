package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/user"
)

// CtxUserId is the echo context key holding the caller user.UserID
const CtxUserId = "userId"

type AuthMiddleware struct {
	auth domain.AuthUsecase
}

func New(auth domain.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: m.validateAuthToken,
		ErrorHandler: func(err error, c echo.Context) error {
			return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrUnauthorized)
		},
	})
}

func (m *AuthMiddleware) OptionalAuth() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Skipper: func(c echo.Context) bool {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			return len(auth) == 0
		},
		Validator: m.validateAuthToken,
		ErrorHandler: func(err error, c echo.Context) error {
			return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrUnauthorized)
		},
	})
}

// QueryAuth reads the token from the `token` query param, for clients that
// cannot set headers such as browser websockets
func (m *AuthMiddleware) QueryAuth() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup: "query:token",
		Skipper: func(c echo.Context) bool {
			return c.QueryParam("token") == ""
		},
		Validator: m.validateAuthToken,
	})
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	cont := delivery.Ctx(c)
	if id, err := m.auth.ParseToken(cont, key); err != nil {
		cont.WithField("err", err).Warn("auth.ParseToken failed")
		return false, err
	} else {
		c.Set(CtxUserId, id)
		c.Set("ctx", ctx.WithLogFields(cont, log.Fields{"userId": id}))
		return true, nil
	}
}

// UserId returns the authenticated caller, zero when anonymous
func UserId(c echo.Context) user.UserID {
	if id, ok := c.Get(CtxUserId).(user.UserID); ok {
		return id
	}
	return ""
}
