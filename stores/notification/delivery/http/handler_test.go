package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/notification"
	mNotification "github.com/x-xyz/goauction/domain/notification/mocks"
	"github.com/x-xyz/goauction/domain/user"
	authMiddleware "github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
	authUsecase "github.com/x-xyz/goauction/stores/auth/usecase"
)

type testsuite struct {
	suite.Suite
	e    *echo.Echo
	uc   *mNotification.InboxUseCase
	auth domain.AuthUsecase
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) SetupTest() {
	ts.e = echo.New()
	ts.uc = &mNotification.InboxUseCase{}
	ts.auth = authUsecase.New("secret", time.Hour, nil)
	New(ts.e, ts.uc, authMiddleware.New(ts.auth))
}

func (ts *testsuite) TearDownTest() {
	ts.uc.AssertExpectations(ts.T())
}

func (ts *testsuite) do(req *http.Request, as user.UserID) (*httptest.ResponseRecorder, delivery.JsonResponse) {
	if as != "" {
		tkn, err := ts.auth.SignToken(delivery.Ctx(ts.e.NewContext(nil, nil)), as)
		ts.Require().NoError(err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tkn)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	resp := delivery.JsonResponse{}
	if rec.Body.Len() > 0 {
		ts.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func (ts *testsuite) TestGetAll() {
	ts.uc.On("FindAll", mock.Anything, user.UserID("B1"), mock.Anything, mock.Anything).
		Return([]*notification.Notification{{Id: "n1", RecipientId: "B1"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/notifications?unread=true&limit=5", nil)
	rec, resp := ts.do(req, "B1")
	ts.Equal(http.StatusOK, rec.Code)
	ts.Equal(delivery.JsonResponseStatusSuccess, resp.Status)
}

func (ts *testsuite) TestRequiresToken() {
	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	rec, _ := ts.do(req, "")
	ts.Equal(http.StatusUnauthorized, rec.Code)
}

func (ts *testsuite) TestCountUnread() {
	ts.uc.On("CountUnread", mock.Anything, user.UserID("B1")).Return(3, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/notifications/unread-count", nil)
	rec, resp := ts.do(req, "B1")
	ts.Equal(http.StatusOK, rec.Code)
	ts.Equal(map[string]interface{}{"unread": float64(3)}, resp.Data)
}

func (ts *testsuite) TestMarkRead() {
	ts.uc.On("MarkRead", mock.Anything, user.UserID("B1"), "n1").Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/notifications/n1/read", nil)
	rec, _ := ts.do(req, "B1")
	ts.Equal(http.StatusNoContent, rec.Code)
}

func (ts *testsuite) TestMarkReadNotFound() {
	ts.uc.On("MarkRead", mock.Anything, user.UserID("B1"), "n9").Return(domain.NewNotFoundError("notification not found")).Once()

	req := httptest.NewRequest(http.MethodPost, "/notifications/n9/read", nil)
	rec, _ := ts.do(req, "B1")
	ts.Equal(http.StatusNotFound, rec.Code)
}

func (ts *testsuite) TestMarkAllRead() {
	ts.uc.On("MarkAllRead", mock.Anything, user.UserID("B1")).Return(2, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/notifications/read", nil)
	rec, resp := ts.do(req, "B1")
	ts.Equal(http.StatusOK, rec.Code)
	ts.Equal(map[string]interface{}{"updated": float64(2)}, resp.Data)
}
