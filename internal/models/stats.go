package models

// StockStats holds the aggregate counters derived from the item collection.
// It is recomputed wholesale from the current items on every mutation and is
// never patched incrementally, so it cannot drift from the item list.
type StockStats struct {
	Total        int            `json:"total"`
	LowStock     int            `json:"low_stock"`      // 0 < stock_quantity <= min_stock_level
	OutOfStock   int            `json:"out_of_stock"`   // stock_quantity == 0
	ExpiringSoon int            `json:"expiring_soon"`  // expiry date within the next 5 days, today included
	Categories   map[string]int `json:"categories"`
}
