package auction

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ptr"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/user"
)

type AuctionTestSuite struct {
	suite.Suite
	start time.Time
	end   time.Time
}

func (s *AuctionTestSuite) SetupTest() {
	s.start = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.end = s.start.Add(24 * time.Hour)
}

func (s *AuctionTestSuite) newAuction(status Status) *Auction {
	return &Auction{
		Id:            "a1",
		Status:        status,
		StartDate:     s.start,
		EndDate:       s.end,
		StartingPrice: decimal.NewFromInt(100),
		CurrentPrice:  decimal.NewFromInt(100),
		SellerId:      "S1",
	}
}

func (s *AuctionTestSuite) TestIsActive() {
	tests := []struct {
		desc   string
		status Status
		now    time.Time
		exp    bool
	}{
		{"before start", StatusActive, s.start.Add(-time.Second), false},
		{"at start", StatusActive, s.start, true},
		{"in window", StatusActive, s.start.Add(time.Hour), true},
		{"at end", StatusActive, s.end, false},
		{"draft in window", StatusDraft, s.start.Add(time.Hour), false},
		{"ended in window", StatusEnded, s.start.Add(time.Hour), false},
	}
	for _, t := range tests {
		s.Equal(t.exp, s.newAuction(t.status).IsActive(t.now), t.desc)
	}
}

func (s *AuctionTestSuite) TestHasEnded() {
	s.False(s.newAuction(StatusActive).HasEnded(s.start))
	s.True(s.newAuction(StatusActive).HasEnded(s.end))
	s.True(s.newAuction(StatusEnded).HasEnded(s.start))
	s.False(s.newAuction(StatusCancelled).HasEnded(s.start))
}

func (s *AuctionTestSuite) TestBidderPredicates() {
	a := s.newAuction(StatusActive)
	s.True(a.IsSeller("S1"))
	s.False(a.IsHighestBidder("B1"))
	s.True(a.ReserveMet())

	bidder := user.UserID("B1")
	a.HighestBidderId = &bidder
	a.ReservePrice = ptr.Decimal(decimal.NewFromInt(150))
	s.True(a.IsHighestBidder("B1"))
	s.False(a.ReserveMet())
	a.CurrentPrice = decimal.NewFromInt(150)
	s.True(a.ReserveMet())
}

func (s *AuctionTestSuite) TestClone() {
	a := s.newAuction(StatusActive)
	a.ImageUrls = []string{"x"}
	cp := a.Clone()
	cp.ImageUrls[0] = "y"
	cp.Title = "changed"
	s.Equal("x", a.ImageUrls[0])
	s.Equal("", a.Title)
}

func (s *AuctionTestSuite) TestPatchMerge() {
	a := s.newAuction(StatusDraft)
	a.Title = "old"
	newEnd := s.end.Add(time.Hour)
	p := &Patch{
		Title:         ptr.String("new"),
		StartingPrice: ptr.Decimal(decimal.NewFromInt(120)),
		EndDate:       &newEnd,
	}
	s.False(p.IsEmpty())
	p.MergeInto(a)
	s.Equal("new", a.Title)
	s.True(decimal.NewFromInt(120).Equal(a.CurrentPrice))
	s.Equal(newEnd, a.EndDate)
	s.Equal(s.start, a.StartDate)
	s.True((&Patch{}).IsEmpty())
}

func (s *AuctionTestSuite) TestOptions() {
	min := decimal.NewFromInt(10)
	max := decimal.NewFromInt(5)
	_, err := GetFindAllOptions(WithPriceRange(&min, &max))
	s.True(errors.Is(err, domain.ErrValidation))

	_, err = GetFindAllOptions(WithSort("title"))
	s.True(errors.Is(err, domain.ErrValidation))

	_, err = GetFindAllOptions(WithStatus("PAUSED"))
	s.True(errors.Is(err, domain.ErrValidation))

	opts, err := GetFindAllOptions(WithStatus(StatusActive), WithSort(SortEndingSoon), WithPagination(0, 10))
	s.NoError(err)
	s.Equal(StatusActive, *opts.Status)
	s.Equal(int32(10), *opts.Limit)
}

func TestAuctionTestSuite(t *testing.T) {
	suite.Run(t, new(AuctionTestSuite))
}
