package handlers

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/pantryscan/inventory-service/internal/models"
	"github.com/pantryscan/inventory-service/internal/scan"
	"github.com/pantryscan/inventory-service/internal/service"
)

// ProductAPI is the product database surface the handlers consume.
type ProductAPI interface {
	FetchByBarcode(ctx context.Context, barcode string) (*models.Product, error)
	SearchByText(ctx context.Context, query string) ([]models.Product, error)
}

// PantryHandler handles pantry inventory HTTP requests
type PantryHandler struct {
	store     *service.InventoryStore
	products  ProductAPI
	resolver  *scan.Resolver
	logger    *slog.Logger
	validator *validator.Validate
}

// NewPantryHandler creates a new pantry handler
func NewPantryHandler(
	store *service.InventoryStore,
	products ProductAPI,
	resolver *scan.Resolver,
	logger *slog.Logger,
) *PantryHandler {
	return &PantryHandler{
		store:     store,
		products:  products,
		resolver:  resolver,
		logger:    logger,
		validator: validator.New(),
	}
}
