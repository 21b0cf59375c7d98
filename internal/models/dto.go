package models

// AddItemRequest is the request body for adding an item to the inventory.
// The server generates the item ID and timestamps.
type AddItemRequest struct {
	Barcode       string `json:"barcode" validate:"required,numeric,min=8,max=14"`
	Name          string `json:"name" validate:"required,max=200"`
	Brand         string `json:"brand" validate:"omitempty,max=200"`
	ImageURL      string `json:"image_url" validate:"omitempty,url"`
	Quantity      string `json:"quantity" validate:"omitempty,max=100"`
	Categories    string `json:"categories" validate:"omitempty,max=500"`
	StockQuantity int    `json:"stock_quantity" validate:"min=0"`
	MinStockLevel int    `json:"min_stock_level" validate:"min=0"`
	ExpiryDate    string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	Location      string `json:"location" validate:"omitempty,max=200"`
	Notes         string `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateItemRequest is the request body for partially editing an item.
// Absent fields are left untouched.
type UpdateItemRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Brand         *string `json:"brand,omitempty" validate:"omitempty,max=200"`
	ImageURL      *string `json:"image_url,omitempty" validate:"omitempty,url"`
	Quantity      *string `json:"quantity,omitempty" validate:"omitempty,max=100"`
	Categories    *string `json:"categories,omitempty" validate:"omitempty,max=500"`
	StockQuantity *int    `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	MinStockLevel *int    `json:"min_stock_level,omitempty" validate:"omitempty,min=0"`
	ExpiryDate    *string `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Location      *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// Update converts the request into an ItemUpdate for the store.
func (r *UpdateItemRequest) Update() ItemUpdate {
	return ItemUpdate{
		Name:          r.Name,
		Brand:         r.Brand,
		ImageURL:      r.ImageURL,
		Quantity:      r.Quantity,
		Categories:    r.Categories,
		StockQuantity: r.StockQuantity,
		MinStockLevel: r.MinStockLevel,
		ExpiryDate:    r.ExpiryDate,
		Location:      r.Location,
		Notes:         r.Notes,
	}
}

// QuantityChangeRequest is the request body for a delta stock adjustment.
// The resulting quantity is clamped at zero.
type QuantityChangeRequest struct {
	Change int `json:"change" validate:"required"`
}

// ScanRequest is the request body for a manual barcode entry.
type ScanRequest struct {
	Barcode string `json:"barcode" validate:"required"`
}

// ScanResponse reports the result of resolving a scanned barcode against the
// product database and the tracked inventory.
type ScanResponse struct {
	Barcode        string         `json:"barcode"`
	Product        *Product       `json:"product,omitempty"`
	Item           *InventoryItem `json:"item,omitempty"`
	AlreadyTracked bool           `json:"already_tracked"`
}

// SearchResponse wraps a product text-search result.
type SearchResponse struct {
	Products []Product `json:"products"`
}

// ErrorResponse is the uniform error body for API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
