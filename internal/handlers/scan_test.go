package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryscan/inventory-service/internal/models"
)

func TestScan(t *testing.T) {
	t.Run("known product not yet tracked", func(t *testing.T) {
		env := setupTestEnv(t)
		env.products.products["40084127"] = &models.Product{
			Code: "40084127",
			Name: "Oat Milk",
		}

		recorder := env.do(t, http.MethodPost, "/api/pantry/scan", models.ScanRequest{Barcode: "40084127"})
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp models.ScanResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "40084127", resp.Barcode)
		require.NotNil(t, resp.Product)
		assert.Equal(t, "Oat Milk", resp.Product.Name)
		assert.False(t, resp.AlreadyTracked)
		assert.Nil(t, resp.Item)
	})

	t.Run("already tracked barcode returns the stored item", func(t *testing.T) {
		env := setupTestEnv(t)
		item := env.addItem(t, "40084127", "Oat Milk")

		recorder := env.do(t, http.MethodPost, "/api/pantry/scan", models.ScanRequest{Barcode: "40084127"})
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp models.ScanResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.AlreadyTracked)
		require.NotNil(t, resp.Item)
		assert.Equal(t, item.ID, resp.Item.ID)
	})

	t.Run("unknown barcode still resolves", func(t *testing.T) {
		// Absent from both the product database and the inventory: the scan
		// succeeds with nothing attached, the client decides what to do next.
		env := setupTestEnv(t)

		recorder := env.do(t, http.MethodPost, "/api/pantry/scan", models.ScanRequest{Barcode: "99999999"})
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp models.ScanResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Nil(t, resp.Product)
		assert.Nil(t, resp.Item)
		assert.False(t, resp.AlreadyTracked)
	})

	t.Run("malformed barcode yields 400", func(t *testing.T) {
		env := setupTestEnv(t)

		recorder := env.do(t, http.MethodPost, "/api/pantry/scan", models.ScanRequest{Barcode: "abc"})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "invalid_barcode", resp.Error)
	})

	t.Run("missing barcode yields 400", func(t *testing.T) {
		env := setupTestEnv(t)

		recorder := env.do(t, http.MethodPost, "/api/pantry/scan", models.ScanRequest{})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "validation_failed", resp.Error)
	})

	t.Run("malformed JSON yields 400", func(t *testing.T) {
		env := setupTestEnv(t)

		req := httptest.NewRequest(http.MethodPost, "/api/pantry/scan", bytes.NewReader([]byte("{")))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		env.router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("lookup failure yields 502", func(t *testing.T) {
		env := setupTestEnv(t)
		env.products.err = errors.New("upstream down")

		recorder := env.do(t, http.MethodPost, "/api/pantry/scan", models.ScanRequest{Barcode: "40084127"})
		assert.Equal(t, http.StatusBadGateway, recorder.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "lookup_failed", resp.Error)
	})
}
