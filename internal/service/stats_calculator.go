package service

import (
	"strings"
	"time"

	"github.com/pantryscan/inventory-service/internal/models"
)

// expiringSoonWindowDays is the width of the expiring-soon warning window:
// the next five calendar days counting today itself. With today = 2024-06-01
// an expiry of 2024-06-05 is expiring soon and 2024-06-06 is not.
const expiringSoonWindowDays = 5

// CalculateStats folds the item collection into its aggregate counters. It is
// a pure function of (items, now): no I/O, no hidden state, and "now" is read
// exactly once per invocation by the caller. Items whose expiry date is
// strictly before today are expired, not expiring, and are never counted.
func CalculateStats(items []models.InventoryItem, now time.Time) models.StockStats {
	stats := models.StockStats{
		Total:      len(items),
		Categories: make(map[string]int),
	}

	year, month, day := now.UTC().Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	windowEnd := today.AddDate(0, 0, expiringSoonWindowDays)

	for _, item := range items {
		// Low stock and out of stock are disjoint: out of stock requires
		// zero quantity, low stock requires a positive one.
		if item.StockQuantity == 0 {
			stats.OutOfStock++
		} else if item.StockQuantity <= item.MinStockLevel {
			stats.LowStock++
		}

		if item.ExpiryDate != "" {
			expiry, err := time.Parse(models.ExpiryDateLayout, item.ExpiryDate)
			if err == nil && !expiry.Before(today) && expiry.Before(windowEnd) {
				stats.ExpiringSoon++
			}
		}

		for _, category := range strings.Split(item.Categories, ",") {
			category = strings.TrimSpace(category)
			if category != "" {
				stats.Categories[category]++
			}
		}
	}

	return stats
}
