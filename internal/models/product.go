package models

// Product is a product record resolved from the external product database.
// It is transient: only the fields copied onto an InventoryItem survive past
// the add-to-inventory flow.
type Product struct {
	ID              string                 `json:"id"`
	Code            string                 `json:"code"`
	Name            string                 `json:"name"`
	Brand           string                 `json:"brand"`
	ImageURL        string                 `json:"image_url"`
	Quantity        string                 `json:"quantity"`
	Categories      string                 `json:"categories"`
	Nutriments      map[string]interface{} `json:"nutriments,omitempty"`
	NutrientLevels  map[string]string      `json:"nutrient_levels,omitempty"`
	IngredientsText string                 `json:"ingredients_text,omitempty"`
	Ingredients     []Ingredient           `json:"ingredients,omitempty"`
	Allergens       string                 `json:"allergens,omitempty"`
	Labels          string                 `json:"labels,omitempty"`
	Stores          string                 `json:"stores,omitempty"`
}

// Ingredient is a single entry of a product's ingredient list.
type Ingredient struct {
	ID      string  `json:"id"`
	Text    string  `json:"text"`
	Percent float64 `json:"percent,omitempty"`
}
