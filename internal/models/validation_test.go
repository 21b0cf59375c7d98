package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBarcode(t *testing.T) {
	tests := []struct {
		name    string
		barcode string
		valid   bool
	}{
		{"EAN-8", "40084127", true},
		{"UPC-A", "036000291452", true},
		{"EAN-13", "4008400401621", true},
		{"GTIN-14", "00012345600012", true},
		{"empty", "", false},
		{"too short", "1234567", false},
		{"too long", "123456789012345", false},
		{"letters", "40084A27", false},
		{"whitespace", "40084127 ", false},
		{"negative sign", "-40084127", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBarcode(tt.barcode)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidBarcode)
			}
		})
	}
}

func TestValidateExpiryDate(t *testing.T) {
	t.Run("empty means no expiry", func(t *testing.T) {
		assert.NoError(t, ValidateExpiryDate(""))
	})

	t.Run("calendar date", func(t *testing.T) {
		assert.NoError(t, ValidateExpiryDate("2024-06-01"))
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		for _, date := range []string{"01-06-2024", "2024/06/01", "2024-6-1", "June 1, 2024", "soon"} {
			assert.ErrorIs(t, ValidateExpiryDate(date), ErrInvalidExpiryDate, date)
		}
	})

	t.Run("rejects impossible dates", func(t *testing.T) {
		assert.ErrorIs(t, ValidateExpiryDate("2024-02-30"), ErrInvalidExpiryDate)
	})
}

func TestValidateItem(t *testing.T) {
	valid := func() InventoryItem {
		return InventoryItem{
			ID:            "a",
			Barcode:       "40084127",
			Name:          "Oat Milk",
			StockQuantity: 2,
			MinStockLevel: 1,
			ExpiryDate:    "2024-06-05",
		}
	}

	t.Run("accepts a well-formed item", func(t *testing.T) {
		item := valid()
		assert.NoError(t, ValidateItem(&item))
	})

	t.Run("rejects empty ID", func(t *testing.T) {
		item := valid()
		item.ID = ""
		assert.ErrorIs(t, ValidateItem(&item), ErrInvalidItem)
	})

	t.Run("rejects malformed barcode", func(t *testing.T) {
		item := valid()
		item.Barcode = "abc"
		assert.ErrorIs(t, ValidateItem(&item), ErrInvalidBarcode)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		item := valid()
		item.StockQuantity = -1
		assert.ErrorIs(t, ValidateItem(&item), ErrInvalidItem)
	})

	t.Run("rejects negative minimum stock level", func(t *testing.T) {
		item := valid()
		item.MinStockLevel = -1
		assert.ErrorIs(t, ValidateItem(&item), ErrInvalidItem)
	})

	t.Run("rejects malformed expiry date", func(t *testing.T) {
		item := valid()
		item.ExpiryDate = "tomorrow"
		assert.ErrorIs(t, ValidateItem(&item), ErrInvalidExpiryDate)
	})
}

func TestItemUpdateApply(t *testing.T) {
	base := func() InventoryItem {
		return InventoryItem{
			ID:            "a",
			Barcode:       "40084127",
			Name:          "Oat Milk",
			Brand:         "Oatly",
			StockQuantity: 3,
			MinStockLevel: 1,
			Location:      "Pantry",
		}
	}

	t.Run("only set fields change", func(t *testing.T) {
		item := base()
		name := "Oat Drink"
		stock := 5
		update := ItemUpdate{Name: &name, StockQuantity: &stock}

		update.Apply(&item)

		assert.Equal(t, "Oat Drink", item.Name)
		assert.Equal(t, 5, item.StockQuantity)
		assert.Equal(t, "Oatly", item.Brand)
		assert.Equal(t, "Pantry", item.Location)
		assert.Equal(t, 1, item.MinStockLevel)
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		item := base()
		update := ItemUpdate{}
		update.Apply(&item)
		assert.Equal(t, base(), item)
	})

	t.Run("negative counters clamp to zero", func(t *testing.T) {
		item := base()
		stock := -4
		minLevel := -2
		update := ItemUpdate{StockQuantity: &stock, MinStockLevel: &minLevel}
		update.Apply(&item)

		assert.Equal(t, 0, item.StockQuantity)
		assert.Equal(t, 0, item.MinStockLevel)
	})

	t.Run("expiry date can be cleared", func(t *testing.T) {
		item := base()
		item.ExpiryDate = "2024-06-05"
		empty := ""
		update := ItemUpdate{ExpiryDate: &empty}
		update.Apply(&item)

		require.Empty(t, item.ExpiryDate)
	})
}
