package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/goauction/domain/auction"
)

const defaultSort = auction.SortNewest

func toSelector(opts auction.FindAllOptions) bson.M {
	qry := bson.M{}
	if opts.Status != nil {
		qry["status"] = *opts.Status
	}
	if opts.SellerId != nil {
		qry["sellerId"] = *opts.SellerId
	}
	if opts.Category != nil {
		qry["category"] = *opts.Category
	}

	price := bson.M{}
	if opts.MinPrice != nil {
		price["$gte"] = *opts.MinPrice
	}
	if opts.MaxPrice != nil {
		price["$lte"] = *opts.MaxPrice
	}
	if len(price) > 0 {
		qry["currentPrice"] = price
	}

	if opts.StartBefore != nil {
		qry["startDate"] = bson.M{"$lte": *opts.StartBefore}
	}
	if opts.EndBefore != nil {
		qry["endDate"] = bson.M{"$lte": *opts.EndBefore}
	}
	return qry
}

func pageOf(opts auction.FindAllOptions) (offset, limit int, sort string) {
	sort = defaultSort
	if opts.Sort != nil {
		sort = *opts.Sort
	}
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}
	return
}
