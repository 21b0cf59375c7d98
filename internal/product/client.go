package product

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/pantryscan/inventory-service/internal/models"
	"github.com/pantryscan/inventory-service/pkg/metrics"
)

const searchPageSize = 24

// LookupError wraps a network or decode failure from the product database.
// An unknown barcode is not a lookup error; it is reported as an absent
// product.
type LookupError struct {
	Operation string
	Err       error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("product lookup failed during %s: %v", e.Operation, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// IsLookupError reports whether err is a LookupError.
func IsLookupError(err error) bool {
	var lookupErr *LookupError
	return errors.As(err, &lookupErr)
}

// Client queries the Open Food Facts v2 API for product metadata.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a product database client
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, metricsCollector *metrics.Metrics) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    metricsCollector,
	}
}

// offProduct mirrors the upstream product payload
type offProduct struct {
	ID              string                 `json:"_id"`
	Code            string                 `json:"code"`
	ProductName     string                 `json:"product_name"`
	Brands          string                 `json:"brands"`
	ImageURL        string                 `json:"image_url"`
	Quantity        string                 `json:"quantity"`
	Categories      string                 `json:"categories"`
	Nutriments      map[string]interface{} `json:"nutriments"`
	NutrientLevels  map[string]string      `json:"nutrient_levels"`
	IngredientsText string                 `json:"ingredients_text"`
	Ingredients     []offIngredient        `json:"ingredients"`
	Allergens       string                 `json:"allergens"`
	Labels          string                 `json:"labels"`
	Stores          string                 `json:"stores"`
}

type offIngredient struct {
	ID      string  `json:"id"`
	Text    string  `json:"text"`
	Percent float64 `json:"percent"`
}

type productResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

type searchResponse struct {
	Products []offProduct `json:"products"`
}

// FetchByBarcode resolves a barcode to a product. It returns (nil, nil) when
// the upstream database has no record for the code, and a LookupError on
// network or decode failure.
func (c *Client) FetchByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	endpoint := fmt.Sprintf("%s/product/%s", c.baseURL, url.PathEscape(barcode))

	var response productResponse
	if err := c.getJSON(ctx, "fetch_by_barcode", endpoint, &response); err != nil {
		return nil, err
	}

	if response.Status != 1 {
		c.logger.Debug("Product not found in upstream database", "barcode", barcode)
		return nil, nil
	}

	product := mapProduct(response.Product, barcode)
	return &product, nil
}

// SearchByText searches the product database by free text. Brand-scoped
// search runs first; when it yields nothing the general free-text search is
// tried. An empty slice (not an error) means neither strategy matched.
func (c *Client) SearchByText(ctx context.Context, query string) ([]models.Product, error) {
	params := url.Values{}
	params.Set("brands_tags", strings.ToLower(query))
	params.Set("page_size", fmt.Sprintf("%d", searchPageSize))
	params.Set("json", "true")

	var response searchResponse
	if err := c.getJSON(ctx, "search_by_text", c.baseURL+"/search?"+params.Encode(), &response); err != nil {
		return nil, err
	}

	if len(response.Products) == 0 {
		params = url.Values{}
		params.Set("search_terms", query)
		params.Set("page_size", fmt.Sprintf("%d", searchPageSize))
		params.Set("json", "true")

		response = searchResponse{}
		if err := c.getJSON(ctx, "search_by_text", c.baseURL+"/search?"+params.Encode(), &response); err != nil {
			return nil, err
		}
	}

	products := make([]models.Product, 0, len(response.Products))
	for _, p := range response.Products {
		products = append(products, mapProduct(p, p.Code))
	}

	return products, nil
}

func (c *Client) getJSON(ctx context.Context, operation, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.countLookup(operation, "error")
		return &LookupError{Operation: operation, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.countLookup(operation, "error")
		return &LookupError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.countLookup(operation, "error")
		return &LookupError{Operation: operation, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.countLookup(operation, "error")
		return &LookupError{Operation: operation, Err: errors.Wrap(err, "failed to decode response")}
	}

	c.countLookup(operation, "success")
	return nil
}

func (c *Client) countLookup(operation, status string) {
	if c.metrics != nil {
		c.metrics.ProductLookupsTotal.WithLabelValues(operation, status).Inc()
	}
}

// mapProduct copies the upstream payload into the domain model, applying the
// same fallbacks for missing names and identifiers as the rest of the flow
// expects.
func mapProduct(p offProduct, barcode string) models.Product {
	product := models.Product{
		ID:              p.ID,
		Code:            p.Code,
		Name:            p.ProductName,
		Brand:           p.Brands,
		ImageURL:        p.ImageURL,
		Quantity:        p.Quantity,
		Categories:      p.Categories,
		Nutriments:      p.Nutriments,
		NutrientLevels:  p.NutrientLevels,
		IngredientsText: p.IngredientsText,
		Allergens:       p.Allergens,
		Labels:          p.Labels,
		Stores:          p.Stores,
	}

	if product.ID == "" {
		product.ID = barcode
	}
	if product.Code == "" {
		product.Code = barcode
	}
	if product.Name == "" {
		product.Name = "Unknown Product"
	}
	if product.Brand == "" {
		product.Brand = "Unknown Brand"
	}

	for _, ingredient := range p.Ingredients {
		product.Ingredients = append(product.Ingredients, models.Ingredient{
			ID:      ingredient.ID,
			Text:    ingredient.Text,
			Percent: ingredient.Percent,
		})
	}

	return product
}
