package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantryscan/inventory-service/internal/models"
)

// GetProduct handles GET /products/:barcode
func (h *PantryHandler) GetProduct(c *gin.Context) {
	barcode := c.Param("barcode")

	if err := models.ValidateBarcode(barcode); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_barcode",
			Message: err.Error(),
		})
		return
	}

	product, err := h.products.FetchByBarcode(c.Request.Context(), barcode)
	if err != nil {
		h.logger.Error("Product lookup failed", "barcode", barcode, "error", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "lookup_failed",
			Message: "Could not reach the product database",
		})
		return
	}

	if product == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "product_not_found",
			Message: "The product database has no record for that barcode",
		})
		return
	}

	c.JSON(http.StatusOK, product)
}

// SearchProducts handles GET /products/search
func (h *PantryHandler) SearchProducts(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "missing_query",
			Message: "query parameter is required",
		})
		return
	}

	products, err := h.products.SearchByText(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("Product search failed", "query", query, "error", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "search_failed",
			Message: "Could not reach the product database",
		})
		return
	}

	c.JSON(http.StatusOK, models.SearchResponse{Products: products})
}
