package auction

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/goauction/domain/payment"
)

const salesDayLayout = "2006-01-02"

// SalesDay sums the payments received on one UTC day
type SalesDay struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// SellerStats summarizes a seller's listings and revenue
type SellerStats struct {
	TotalAuctions     int             `json:"totalAuctions"`
	ActiveListings    int             `json:"activeListings"`
	EndedAuctions     int             `json:"endedAuctions"`
	SoldItems         int             `json:"soldItems"`
	TotalEarnings     decimal.Decimal `json:"totalEarnings"`
	SuccessRate       float64         `json:"successRate"`
	TotalBidsReceived int             `json:"totalBidsReceived"`
	Categories        map[string]int  `json:"categoryDistribution"`
	SalesHistory      []SalesDay      `json:"salesHistory"`
}

// NewSellerStats folds the seller's auctions and the payments received for
// them. SuccessRate is the percentage of ended auctions that were paid.
func NewSellerStats(auctions []*Auction, payments []*payment.Payment) *SellerStats {
	res := &SellerStats{
		TotalAuctions: len(auctions),
		TotalEarnings: decimal.Zero,
		Categories:    map[string]int{},
		SalesHistory:  []SalesDay{},
	}

	for _, a := range auctions {
		switch a.Status {
		case StatusActive:
			res.ActiveListings++
		case StatusEnded:
			res.EndedAuctions++
		}
		res.TotalBidsReceived += a.TotalBids
		if a.Category != "" {
			res.Categories[a.Category]++
		}
	}

	days := map[string]*SalesDay{}
	for _, p := range payments {
		res.SoldItems++
		res.TotalEarnings = res.TotalEarnings.Add(p.Amount)

		date := p.CreatedAt.UTC().Format(salesDayLayout)
		d, ok := days[date]
		if !ok {
			d = &SalesDay{Date: date, Amount: decimal.Zero}
			days[date] = d
		}
		d.Amount = d.Amount.Add(p.Amount)
		d.Count++
	}
	for _, d := range days {
		res.SalesHistory = append(res.SalesHistory, *d)
	}
	sort.Slice(res.SalesHistory, func(i, j int) bool {
		return res.SalesHistory[i].Date < res.SalesHistory[j].Date
	})

	if res.EndedAuctions > 0 {
		rate := decimal.NewFromInt(int64(res.SoldItems)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(res.EndedAuctions))).
			Round(2)
		res.SuccessRate = rate.InexactFloat64()
	}
	return res
}
