package models

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	// ErrInvalidBarcode indicates that a barcode is not 8-14 digits
	ErrInvalidBarcode = errors.New("invalid barcode")

	// ErrInvalidExpiryDate indicates that an expiry date is not a YYYY-MM-DD calendar date
	ErrInvalidExpiryDate = errors.New("invalid expiry date")

	// ErrInvalidItem indicates that an inventory item violates a structural invariant
	ErrInvalidItem = errors.New("invalid inventory item")
)

// barcodeRegex matches EAN-8 through EAN-14 style numeric codes
var barcodeRegex = regexp.MustCompile(`^[0-9]{8,14}$`)

// ValidateBarcode checks that a scanned or manually entered code is 8-14 digits.
func ValidateBarcode(code string) error {
	if code == "" {
		return fmt.Errorf("%w: barcode cannot be empty", ErrInvalidBarcode)
	}
	if !barcodeRegex.MatchString(code) {
		return fmt.Errorf("%w: barcode must be 8-14 digits", ErrInvalidBarcode)
	}
	return nil
}

// ValidateExpiryDate checks that a non-empty expiry date is a YYYY-MM-DD
// calendar date. Empty is valid and means "does not expire / unknown".
func ValidateExpiryDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(ExpiryDateLayout, date); err != nil {
		return fmt.Errorf("%w: expiry date must be formatted as %s", ErrInvalidExpiryDate, ExpiryDateLayout)
	}
	return nil
}

// ValidateItem checks the structural invariants every persisted item must
// satisfy: a non-empty ID, a valid barcode, and non-negative stock counters.
func ValidateItem(item *InventoryItem) error {
	if item.ID == "" {
		return fmt.Errorf("%w: item ID cannot be empty", ErrInvalidItem)
	}
	if err := ValidateBarcode(item.Barcode); err != nil {
		return err
	}
	if item.StockQuantity < 0 {
		return fmt.Errorf("%w: stock quantity cannot be negative", ErrInvalidItem)
	}
	if item.MinStockLevel < 0 {
		return fmt.Errorf("%w: minimum stock level cannot be negative", ErrInvalidItem)
	}
	if err := ValidateExpiryDate(item.ExpiryDate); err != nil {
		return err
	}
	return nil
}
