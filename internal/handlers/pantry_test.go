package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryscan/inventory-service/internal/models"
	"github.com/pantryscan/inventory-service/internal/scan"
	"github.com/pantryscan/inventory-service/internal/service"
	"github.com/pantryscan/inventory-service/internal/storage"
	"github.com/pantryscan/inventory-service/pkg/clock"
)

var handlerTestNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

// fakeProductAPI serves canned products and can be forced to fail.
type fakeProductAPI struct {
	products map[string]*models.Product
	results  []models.Product
	err      error
}

func (f *fakeProductAPI) FetchByBarcode(_ context.Context, barcode string) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products[barcode], nil
}

func (f *fakeProductAPI) SearchByText(_ context.Context, _ string) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type testEnv struct {
	router   *gin.Engine
	internal *gin.Engine
	store    *service.InventoryStore
	products *fakeProductAPI
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.Default()
	store := service.NewInventoryStore(storage.NewMemoryKV(), clock.Fixed(handlerTestNow), logger, nil, "inventory")
	store.LoadFromStorage(context.Background())

	products := &fakeProductAPI{products: map[string]*models.Product{}}
	resolver := scan.NewResolver(products, store, logger)

	publicRouter := gin.New()
	internalRouter := gin.New()
	SetupRoutes(publicRouter, internalRouter, &RouterConfig{
		Store:    store,
		Products: products,
		Resolver: resolver,
		Logger:   logger,
	})

	return &testEnv{
		router:   publicRouter,
		internal: internalRouter,
		store:    store,
		products: products,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, req)
	return recorder
}

func (e *testEnv) addItem(t *testing.T, barcode, name string) models.InventoryItem {
	t.Helper()

	recorder := e.do(t, http.MethodPost, "/api/pantry/inventory/items", models.AddItemRequest{
		Barcode:       barcode,
		Name:          name,
		StockQuantity: 3,
		MinStockLevel: 1,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var item models.InventoryItem
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &item))
	return item
}

func TestGetInventory(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("empty inventory", func(t *testing.T) {
		recorder := env.do(t, http.MethodGet, "/api/pantry/inventory", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var snapshot service.Snapshot
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &snapshot))
		assert.Empty(t, snapshot.Items)
		assert.Equal(t, 0, snapshot.Stats.Total)
		assert.Nil(t, snapshot.LastError)
	})

	t.Run("reflects added items", func(t *testing.T) {
		env.addItem(t, "40084127", "Oat Milk")

		recorder := env.do(t, http.MethodGet, "/api/pantry/inventory", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var snapshot service.Snapshot
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &snapshot))
		require.Len(t, snapshot.Items, 1)
		assert.Equal(t, 1, snapshot.Stats.Total)
	})
}

func TestAddItem(t *testing.T) {
	t.Run("creates item with generated ID and timestamps", func(t *testing.T) {
		env := setupTestEnv(t)

		item := env.addItem(t, "40084127", "Oat Milk")

		assert.NotEmpty(t, item.ID)
		assert.Equal(t, "40084127", item.Barcode)
		assert.Equal(t, "Oat Milk", item.Name)
		assert.Equal(t, handlerTestNow, item.DateAdded)
		assert.Equal(t, handlerTestNow, item.LastUpdated)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		env := setupTestEnv(t)

		req := httptest.NewRequest(http.MethodPost, "/api/pantry/inventory/items", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "invalid_request", resp.Error)
	})

	t.Run("rejects invalid barcode", func(t *testing.T) {
		env := setupTestEnv(t)

		recorder := env.do(t, http.MethodPost, "/api/pantry/inventory/items", models.AddItemRequest{
			Barcode: "abc",
			Name:    "Oat Milk",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "validation_failed", resp.Error)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		env := setupTestEnv(t)

		recorder := env.do(t, http.MethodPost, "/api/pantry/inventory/items", models.AddItemRequest{
			Barcode: "40084127",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("rejects malformed expiry date", func(t *testing.T) {
		env := setupTestEnv(t)

		recorder := env.do(t, http.MethodPost, "/api/pantry/inventory/items", models.AddItemRequest{
			Barcode:    "40084127",
			Name:       "Oat Milk",
			ExpiryDate: "June 2024",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestUpdateItem(t *testing.T) {
	t.Run("applies a partial edit", func(t *testing.T) {
		env := setupTestEnv(t)
		item := env.addItem(t, "40084127", "Oat Milk")

		location := "Fridge"
		recorder := env.do(t, http.MethodPatch, "/api/pantry/inventory/items/"+item.ID, models.UpdateItemRequest{
			Location: &location,
		})
		require.Equal(t, http.StatusOK, recorder.Code)

		var snapshot service.Snapshot
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &snapshot))
		require.Len(t, snapshot.Items, 1)
		assert.Equal(t, "Fridge", snapshot.Items[0].Location)
		assert.Equal(t, "Oat Milk", snapshot.Items[0].Name)
	})

	t.Run("unknown ID yields 404", func(t *testing.T) {
		env := setupTestEnv(t)

		name := "Anything"
		recorder := env.do(t, http.MethodPatch, "/api/pantry/inventory/items/missing", models.UpdateItemRequest{
			Name: &name,
		})

		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "item_not_found", resp.Error)
	})
}

func TestRemoveItem(t *testing.T) {
	env := setupTestEnv(t)
	item := env.addItem(t, "40084127", "Oat Milk")

	recorder := env.do(t, http.MethodDelete, "/api/pantry/inventory/items/"+item.ID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var snapshot service.Snapshot
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &snapshot))
	assert.Empty(t, snapshot.Items)

	recorder = env.do(t, http.MethodDelete, "/api/pantry/inventory/items/"+item.ID, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("applies a delta", func(t *testing.T) {
		env := setupTestEnv(t)
		item := env.addItem(t, "40084127", "Oat Milk")

		recorder := env.do(t, http.MethodPost,
			fmt.Sprintf("/api/pantry/inventory/items/%s/quantity", item.ID),
			models.QuantityChangeRequest{Change: 2})
		require.Equal(t, http.StatusOK, recorder.Code)

		var snapshot service.Snapshot
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &snapshot))
		assert.Equal(t, 5, snapshot.Items[0].StockQuantity)
	})

	t.Run("clamps at zero", func(t *testing.T) {
		env := setupTestEnv(t)
		item := env.addItem(t, "40084127", "Oat Milk")

		recorder := env.do(t, http.MethodPost,
			fmt.Sprintf("/api/pantry/inventory/items/%s/quantity", item.ID),
			models.QuantityChangeRequest{Change: -100})
		require.Equal(t, http.StatusOK, recorder.Code)

		var snapshot service.Snapshot
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &snapshot))
		assert.Equal(t, 0, snapshot.Items[0].StockQuantity)
		assert.Equal(t, 1, snapshot.Stats.OutOfStock)
	})

	t.Run("unknown ID yields 404", func(t *testing.T) {
		env := setupTestEnv(t)

		recorder := env.do(t, http.MethodPost, "/api/pantry/inventory/items/missing/quantity",
			models.QuantityChangeRequest{Change: 1})
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestGetItemByBarcode(t *testing.T) {
	t.Run("finds the tracked item", func(t *testing.T) {
		env := setupTestEnv(t)
		item := env.addItem(t, "40084127", "Oat Milk")

		recorder := env.do(t, http.MethodGet, "/api/pantry/inventory/items/barcode/40084127", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var found models.InventoryItem
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &found))
		assert.Equal(t, item.ID, found.ID)
	})

	t.Run("invalid barcode yields 400", func(t *testing.T) {
		env := setupTestEnv(t)

		recorder := env.do(t, http.MethodGet, "/api/pantry/inventory/items/barcode/abc", nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("untracked barcode yields 404", func(t *testing.T) {
		env := setupTestEnv(t)

		recorder := env.do(t, http.MethodGet, "/api/pantry/inventory/items/barcode/99999999", nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestRecalculateStats(t *testing.T) {
	env := setupTestEnv(t)
	env.addItem(t, "40084127", "Oat Milk")
	env.addItem(t, "40084128", "Rye Bread")

	recorder := env.do(t, http.MethodPost, "/api/pantry/inventory/stats/recalculate", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var stats models.StockStats
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Total)
}
