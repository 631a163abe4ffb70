package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/bid"
	mBid "github.com/x-xyz/goauction/domain/bid/mocks"
	"github.com/x-xyz/goauction/domain/user"
	authMiddleware "github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
	authUsecase "github.com/x-xyz/goauction/stores/auth/usecase"
)

type testsuite struct {
	suite.Suite
	e    *echo.Echo
	uc   *mBid.UseCase
	auth domain.AuthUsecase
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) SetupTest() {
	ts.e = echo.New()
	ts.uc = &mBid.UseCase{}
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
	ts.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func (ts *testsuite) TestPlace() {
	ts.uc.On("PlaceBid", mock.Anything, "a1", user.UserID("B1"), mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString("105.5"))
	}), "hi").Return(&bid.Bid{Id: "b1", Status: bid.StatusWinning}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/auctions/a1/bids", strings.NewReader(`{"amount":"105.50","notes":"hi"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec, resp := ts.do(req, "B1")
	ts.Equal(http.StatusCreated, rec.Code)
	ts.Equal(delivery.JsonResponseStatusSuccess, resp.Status)
}

func (ts *testsuite) TestPlaceRejected() {
	ts.uc.On("PlaceBid", mock.Anything, "a1", user.UserID("B1"), mock.Anything, "").
		Return(nil, domain.NewInvalidBidError("bid must exceed current price")).Once()

	req := httptest.NewRequest(http.MethodPost, "/auctions/a1/bids", strings.NewReader(`{"amount":"1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec, resp := ts.do(req, "B1")
	ts.Equal(http.StatusBadRequest, rec.Code)
	ts.Contains(resp.Data, "bid must exceed current price")
}

func (ts *testsuite) TestPlaceRequiresToken() {
	req := httptest.NewRequest(http.MethodPost, "/auctions/a1/bids", strings.NewReader(`{"amount":"1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec, _ := ts.do(req, "")
	ts.Equal(http.StatusUnauthorized, rec.Code)
}

func (ts *testsuite) TestList() {
	ts.uc.On("FindByAuction", mock.Anything, "a1", mock.Anything, mock.Anything).Return([]*bid.Bid{{Id: "b1"}}, nil).Once()
	rec, _ := ts.do(httptest.NewRequest(http.MethodGet, "/auctions/a1/bids?order=amount", nil), "")
	ts.Equal(http.StatusOK, rec.Code)

	ts.uc.On("FindByBidder", mock.Anything, user.UserID("B1"), mock.Anything).Return([]*bid.Bid{}, nil).Once()
	rec, _ = ts.do(httptest.NewRequest(http.MethodGet, "/bidders/B1/bids", nil), "")
	ts.Equal(http.StatusOK, rec.Code)
}

func (ts *testsuite) TestHighestNone() {
	ts.uc.On("Highest", mock.Anything, "a1").Return(nil, domain.NewNotFoundError("no bids on auction a1")).Once()
	rec, _ := ts.do(httptest.NewRequest(http.MethodGet, "/auctions/a1/bids/highest", nil), "")
	ts.Equal(http.StatusNotFound, rec.Code)
}

func (ts *testsuite) TestCancelWinning() {
	ts.uc.On("CancelBid", mock.Anything, "b1", user.UserID("B1")).
		Return(nil, domain.NewInvalidStateError("cannot cancel winning bid")).Once()
	rec, _ := ts.do(httptest.NewRequest(http.MethodPost, "/bids/b1/cancel", nil), "B1")
	ts.Equal(http.StatusConflict, rec.Code)
}
