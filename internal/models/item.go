package models

import (
	"time"
)

// ExpiryDateLayout is the calendar-date format used for item expiry dates.
// Expiry dates carry no time-of-day component.
const ExpiryDateLayout = "2006-01-02"

// InventoryItem is a tracked pantry product: a denormalized snapshot of the
// product metadata taken when the item was added, plus the user-maintained
// stock state.
type InventoryItem struct {
	ID            string    `json:"id"`
	Barcode       string    `json:"barcode"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	ImageURL      string    `json:"image_url"`
	Quantity      string    `json:"quantity"`   // package size descriptor, e.g. "500 g"
	Categories    string    `json:"categories"` // comma-separated free text
	StockQuantity int       `json:"stock_quantity"`
	MinStockLevel int       `json:"min_stock_level"`
	ExpiryDate    string    `json:"expiry_date,omitempty"` // YYYY-MM-DD, empty means does not expire / unknown
	Location      string    `json:"location,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	DateAdded     time.Time `json:"date_added"`
	LastUpdated   time.Time `json:"last_updated"`
}

// ItemUpdate describes a partial edit of an inventory item. Nil fields are
// left untouched; set fields overwrite the item's current value.
type ItemUpdate struct {
	Name          *string `json:"name,omitempty"`
	Brand         *string `json:"brand,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
	Quantity      *string `json:"quantity,omitempty"`
	Categories    *string `json:"categories,omitempty"`
	StockQuantity *int    `json:"stock_quantity,omitempty"`
	MinStockLevel *int    `json:"min_stock_level,omitempty"`
	ExpiryDate    *string `json:"expiry_date,omitempty"`
	Location      *string `json:"location,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// Apply overwrites the item's fields with the update's set fields. Stock
// quantity and minimum stock level are clamped at zero.
func (u *ItemUpdate) Apply(item *InventoryItem) {
	if u.Name != nil {
		item.Name = *u.Name
	}
	if u.Brand != nil {
		item.Brand = *u.Brand
	}
	if u.ImageURL != nil {
		item.ImageURL = *u.ImageURL
	}
	if u.Quantity != nil {
		item.Quantity = *u.Quantity
	}
	if u.Categories != nil {
		item.Categories = *u.Categories
	}
	if u.StockQuantity != nil {
		item.StockQuantity = *u.StockQuantity
		if item.StockQuantity < 0 {
			item.StockQuantity = 0
		}
	}
	if u.MinStockLevel != nil {
		item.MinStockLevel = *u.MinStockLevel
		if item.MinStockLevel < 0 {
			item.MinStockLevel = 0
		}
	}
	if u.ExpiryDate != nil {
		item.ExpiryDate = *u.ExpiryDate
	}
	if u.Location != nil {
		item.Location = *u.Location
	}
	if u.Notes != nil {
		item.Notes = *u.Notes
	}
}
