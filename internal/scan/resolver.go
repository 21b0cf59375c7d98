package scan

import (
	"context"
	"io"
	"log/slog"

	"github.com/pantryscan/inventory-service/internal/models"
)

// ProductLookup resolves a barcode against the external product database.
type ProductLookup interface {
	FetchByBarcode(ctx context.Context, barcode string) (*models.Product, error)
}

// InventoryIndex answers whether a barcode is already tracked.
type InventoryIndex interface {
	GetItemByBarcode(barcode string) (models.InventoryItem, bool)
}

// Result is the outcome of resolving one scanned barcode: the product
// metadata (absent when the database has no record) and the tracked item the
// barcode already maps to, if any.
type Result struct {
	Barcode        string
	Product        *models.Product
	Item           *models.InventoryItem
	AlreadyTracked bool
}

// Resolver connects the scanning flow to the product database and the stored
// inventory. Barcode lookup against the inventory is the consistency point
// between the two: the same code a scan produced must find the same item the
// store holds.
type Resolver struct {
	products  ProductLookup
	inventory InventoryIndex
	logger    *slog.Logger
}

// NewResolver creates a scan resolver
func NewResolver(products ProductLookup, inventory InventoryIndex, logger *slog.Logger) *Resolver {
	return &Resolver{
		products:  products,
		inventory: inventory,
		logger:    logger,
	}
}

// Resolve validates a decoded barcode and resolves it against the product
// database and the inventory. Lookup failures propagate to the caller; they
// never affect inventory state.
func (r *Resolver) Resolve(ctx context.Context, barcode string) (Result, error) {
	if err := models.ValidateBarcode(barcode); err != nil {
		return Result{}, err
	}

	result := Result{Barcode: barcode}

	product, err := r.products.FetchByBarcode(ctx, barcode)
	if err != nil {
		return Result{}, err
	}
	result.Product = product

	if item, found := r.inventory.GetItemByBarcode(barcode); found {
		result.Item = &item
		result.AlreadyTracked = true
	}

	return result, nil
}

// Run consumes the source until it is exhausted or the context is done,
// resolving each decoded barcode and handing the result to emit. Scan and
// lookup failures are logged and skipped; the sequence keeps going.
func (r *Resolver) Run(ctx context.Context, source Source, emit func(Result)) error {
	for {
		barcode, err := source.Next(ctx)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.logger.Warn("Scan source error, continuing", "error", err)
			continue
		}

		result, err := r.Resolve(ctx, barcode)
		if err != nil {
			r.logger.Warn("Failed to resolve scanned barcode", "barcode", barcode, "error", err)
			continue
		}

		emit(result)
	}
}
