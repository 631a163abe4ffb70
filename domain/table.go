package domain

// Table is a mongo collection name
type Table string

const (
	TableAuctions      = Table("auctions")
	TableBids          = Table("bids")
	TableUsers         = Table("users")
	TableNotifications = Table("notifications")
	TableWatchlist     = Table("watchlist")
	TablePayments      = Table("payments")
)
