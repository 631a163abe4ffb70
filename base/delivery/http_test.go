package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/domain"
)

type HttpTestSuite struct {
	suite.Suite
	e *echo.Echo
}

func (s *HttpTestSuite) SetupTest() {
	s.e = echo.New()
}

func (s *HttpTestSuite) do(status int, data interface{}) (*httptest.ResponseRecorder, JsonResponse) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	s.Require().NoError(MakeJsonResp(c, status, data))
	var resp JsonResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func (s *HttpTestSuite) TestErrorMapping() {
	tests := []struct {
		desc      string
		err       error
		expStatus int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"validation", domain.NewValidationError("title", "must not be blank"), http.StatusBadRequest},
		{"invalid bid", domain.NewInvalidBidError("bid must exceed current price"), http.StatusBadRequest},
		{"closed", domain.NewAuctionClosedError("auction is not active"), http.StatusBadRequest},
		{"invalid state", xerrors.Errorf("end: %w", domain.NewInvalidStateError("cannot end")), http.StatusConflict},
		{"forbidden", domain.NewForbiddenError("not the seller"), http.StatusForbidden},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"storage", domain.NewStorageError(errors.New("boom")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, t := range tests {
		rec, resp := s.do(http.StatusOK, t.err)
		s.Equal(t.expStatus, rec.Code, t.desc)
		s.Equal(JsonResponseStatusFail, resp.Status, t.desc)
	}
}

func (s *HttpTestSuite) TestHidesInternalErrors() {
	_, resp := s.do(http.StatusOK, domain.NewStorageError(errors.New("mongo down")))
	s.Equal(http.StatusText(http.StatusInternalServerError), resp.Data)

	_, resp = s.do(http.StatusOK, domain.NewValidationError("endDate", "must be in the future"))
	s.Equal("endDate", resp.Field)
}

func (s *HttpTestSuite) TestSuccess() {
	rec, resp := s.do(http.StatusCreated, map[string]string{"id": "a1"})
	s.Equal(http.StatusCreated, rec.Code)
	s.Equal(JsonResponseStatusSuccess, resp.Status)
}

func TestHttpTestSuite(t *testing.T) {
	suite.Run(t, new(HttpTestSuite))
}
