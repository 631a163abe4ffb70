package bid

import "github.com/x-xyz/goauction/domain"

type Order string

const (
	OrderAmountDesc Order = "amount"
	OrderTimeDesc   Order = "time"
	OrderTimeAsc    Order = "timeAsc"
)

type FindAllOptions struct {
	Statuses []Status
	Order    Order
	Offset   *int32
	Limit    *int32
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{Order: OrderTimeDesc}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithStatuses(statuses ...Status) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Statuses = statuses
		return nil
	}
}

func WithOrder(order Order) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		switch order {
		case OrderAmountDesc, OrderTimeDesc, OrderTimeAsc:
			options.Order = order
			return nil
		}
		return domain.NewValidationError("order", "unsupported order")
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
