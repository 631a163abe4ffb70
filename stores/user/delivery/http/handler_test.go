package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/user"
	mUser "github.com/x-xyz/goauction/domain/user/mocks"
	authMiddleware "github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
	authUsecase "github.com/x-xyz/goauction/stores/auth/usecase"
)

type testsuite struct {
	suite.Suite
	e    *echo.Echo
	uc   *mUser.UseCase
	auth domain.AuthUsecase
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) SetupTest() {
	ts.e = echo.New()
	ts.uc = &mUser.UseCase{}
	ts.auth = authUsecase.New("secret", time.Hour, nil)
	New(ts.e, ts.uc, authMiddleware.New(ts.auth))
}

func (ts *testsuite) TearDownTest() {
	ts.uc.AssertExpectations(ts.T())
}

func (ts *testsuite) do(req *http.Request) (*httptest.ResponseRecorder, delivery.JsonResponse) {
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	resp := delivery.JsonResponse{}
	ts.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func (ts *testsuite) TestRegister() {
	ts.uc.On("Register", mock.Anything, &user.RegisterParams{Username: "alice"}).
		Return(&user.Registered{User: &user.User{Id: "u1", Username: "alice"}, Token: "tkn"}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"username":"alice"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec, resp := ts.do(req)
	ts.Equal(http.StatusCreated, rec.Code)
	ts.Equal(delivery.JsonResponseStatusSuccess, resp.Status)
}

func (ts *testsuite) TestGetNotFound() {
	ts.uc.On("Get", mock.Anything, user.UserID("nobody")).Return(nil, domain.ErrNotFound).Once()

	rec, resp := ts.do(httptest.NewRequest(http.MethodGet, "/users/nobody", nil))
	ts.Equal(http.StatusNotFound, rec.Code)
	ts.Equal(delivery.JsonResponseStatusFail, resp.Status)
}

func (ts *testsuite) TestMeRequiresToken() {
	rec, _ := ts.do(httptest.NewRequest(http.MethodGet, "/users/me", nil))
	ts.Equal(http.StatusUnauthorized, rec.Code)

	tkn, err := ts.auth.SignToken(delivery.Ctx(ts.e.NewContext(nil, nil)), "u1")
	ts.Require().NoError(err)
	ts.uc.On("Get", mock.Anything, user.UserID("u1")).Return(&user.User{Id: "u1"}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tkn)
	rec, resp := ts.do(req)
	ts.Equal(http.StatusOK, rec.Code)
	ts.Equal(delivery.JsonResponseStatusSuccess, resp.Status)
}
