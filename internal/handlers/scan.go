package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/pantryscan/inventory-service/internal/models"
)

// Scan handles POST /scan: a manual barcode entry resolved against the
// product database and checked against the tracked inventory.
func (h *PantryHandler) Scan(c *gin.Context) {
	var req models.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Request body must be valid JSON",
		})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_failed",
			Message: "barcode is required",
		})
		return
	}

	result, err := h.resolver.Resolve(c.Request.Context(), req.Barcode)
	if err != nil {
		if errors.Is(err, models.ErrInvalidBarcode) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid_barcode",
				Message: err.Error(),
			})
			return
		}

		h.logger.Error("Failed to resolve scanned barcode", "barcode", req.Barcode, "error", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "lookup_failed",
			Message: "Could not reach the product database",
		})
		return
	}

	c.JSON(http.StatusOK, models.ScanResponse{
		Barcode:        result.Barcode,
		Product:        result.Product,
		Item:           result.Item,
		AlreadyTracked: result.AlreadyTracked,
	})
}
