package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/goauction/domain/bid"
)

// live bids are the ones that can still lead an auction
var liveStatuses = []bid.Status{bid.StatusActive, bid.StatusWinning}

func toSelector(opts bid.FindAllOptions, qry bson.M) bson.M {
	if len(opts.Statuses) > 0 {
		qry["status"] = bson.M{"$in": opts.Statuses}
	}
	return qry
}

func sortsOf(order bid.Order) []string {
	switch order {
	case bid.OrderAmountDesc:
		return []string{"-amount", "timestamp"}
	case bid.OrderTimeAsc:
		return []string{"timestamp"}
	}
	return []string{"-timestamp"}
}

func pageOf(opts bid.FindAllOptions) (offset, limit int) {
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}
	return
}
