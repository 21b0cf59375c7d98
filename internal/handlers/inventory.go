package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pantryscan/inventory-service/internal/models"
)

// GetInventory handles GET /inventory
func (h *PantryHandler) GetInventory(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot())
}

// AddItem handles POST /inventory/items
func (h *PantryHandler) AddItem(c *gin.Context) {
	var req models.AddItemRequest
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
			Message: err.Error(),
		})
		return
	}

	item := models.InventoryItem{
		ID:            uuid.New().String(),
		Barcode:       req.Barcode,
		Name:          req.Name,
		Brand:         req.Brand,
		ImageURL:      req.ImageURL,
		Quantity:      req.Quantity,
		Categories:    req.Categories,
		StockQuantity: req.StockQuantity,
		MinStockLevel: req.MinStockLevel,
		ExpiryDate:    req.ExpiryDate,
		Location:      req.Location,
		Notes:         req.Notes,
	}

	if err := h.store.AddItem(c.Request.Context(), item); err != nil {
		h.logger.Error("Failed to add inventory item", "barcode", req.Barcode, "error", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "add_failed",
			Message: err.Error(),
		})
		return
	}

	h.logger.Info("Inventory item added", "id", item.ID, "barcode", item.Barcode, "name", item.Name)

	// Respond with the stored item so the caller sees the stamped timestamps.
	for _, stored := range h.store.Snapshot().Items {
		if stored.ID == item.ID {
			c.JSON(http.StatusCreated, stored)
			return
		}
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem handles PATCH /inventory/items/:id
func (h *PantryHandler) UpdateItem(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateItemRequest
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
			Message: err.Error(),
		})
		return
	}

	if !h.store.UpdateItem(c.Request.Context(), id, req.Update()) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "item_not_found",
			Message: "No inventory item with that ID",
		})
		return
	}

	h.logger.Info("Inventory item updated", "id", id)
	c.JSON(http.StatusOK, h.store.Snapshot())
}

// RemoveItem handles DELETE /inventory/items/:id
func (h *PantryHandler) RemoveItem(c *gin.Context) {
	id := c.Param("id")

	if !h.store.RemoveItem(c.Request.Context(), id) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "item_not_found",
			Message: "No inventory item with that ID",
		})
		return
	}

	h.logger.Info("Inventory item removed", "id", id)
	c.JSON(http.StatusOK, h.store.Snapshot())
}

// UpdateQuantity handles POST /inventory/items/:id/quantity
func (h *PantryHandler) UpdateQuantity(c *gin.Context) {
	id := c.Param("id")

	var req models.QuantityChangeRequest
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
			Message: "change must be a non-zero integer",
		})
		return
	}

	if !h.store.UpdateQuantity(c.Request.Context(), id, req.Change) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "item_not_found",
			Message: "No inventory item with that ID",
		})
		return
	}

	h.logger.Info("Stock quantity adjusted", "id", id, "change", req.Change)
	c.JSON(http.StatusOK, h.store.Snapshot())
}

// GetItemByBarcode handles GET /inventory/items/barcode/:barcode
func (h *PantryHandler) GetItemByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")

	if err := models.ValidateBarcode(barcode); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_barcode",
			Message: err.Error(),
		})
		return
	}

	item, found := h.store.GetItemByBarcode(barcode)
	if !found {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "item_not_found",
			Message: "No inventory item with that barcode",
		})
		return
	}

	c.JSON(http.StatusOK, item)
}

// RecalculateStats handles POST /inventory/stats/recalculate
func (h *PantryHandler) RecalculateStats(c *gin.Context) {
	stats := h.store.CalculateStats()
	c.JSON(http.StatusOK, stats)
}
