package auction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/user"
)

const (
	SortEndingSoon = "endDate"
	SortNewest     = "-createdAt"
	SortPriceAsc   = "currentPrice"
	SortPriceDesc  = "-currentPrice"
	SortMostBids   = "-totalBids"
)

var sorts = map[string]bool{
	SortEndingSoon: true,
	SortNewest:     true,
	SortPriceAsc:   true,
	SortPriceDesc:  true,
	SortMostBids:   true,
}

type FindAllOptions struct {
	Status      *Status
	SellerId    *user.UserID
	Category    *string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	StartBefore *time.Time
	EndBefore   *time.Time
	Sort        *string
	Offset      *int32
	Limit       *int32
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithStatus(status Status) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		if !status.IsValid() {
			return domain.NewValidationError("status", "unknown status")
		}
		options.Status = &status
		return nil
	}
}

func WithSeller(sellerId user.UserID) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SellerId = &sellerId
		return nil
	}
}

func WithCategory(category string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Category = &category
		return nil
	}
}

// WithPriceRange filters on current price, either bound may be nil
func WithPriceRange(min, max *decimal.Decimal) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		if min != nil && max != nil && min.GreaterThan(*max) {
			return domain.NewValidationError("price", "min price above max price")
		}
		options.MinPrice = min
		options.MaxPrice = max
		return nil
	}
}

// WithStartBefore selects auctions with startDate <= t
func WithStartBefore(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.StartBefore = &t
		return nil
	}
}

// WithEndBefore selects auctions with endDate <= t
func WithEndBefore(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.EndBefore = &t
		return nil
	}
}

func WithSort(sort string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		if !sorts[sort] {
			return domain.NewValidationError("sort", "unsupported sort")
		}
		options.Sort = &sort
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		if offset < 0 || limit < 0 {
			return domain.NewValidationError("pagination", "offset and limit must not be negative")
		}
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}
