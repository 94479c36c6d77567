package remote

// Product is a remote catalog product, optionally carrying variants.
type Product struct {
	ID           int64         `json:"id"`
	SKU          string        `json:"sku"`
	Name         string        `json:"name"`
	Enabled      bool          `json:"enabled"`
	Unlimited    bool          `json:"unlimited"`
	Quantity     float64       `json:"quantity"`
	ImageURL     string        `json:"imageUrl"`
	Combinations []Combination `json:"combinations"`
}

// Combination is a product variant (e.g. size/color) with its own SKU
// and quantity.
type Combination struct {
	ID        int64         `json:"id"`
	SKU       string        `json:"sku"`
	Quantity  float64       `json:"quantity"`
	Unlimited bool          `json:"unlimited"`
	Options   []OptionValue `json:"options"`
}

// OptionValue is one name:value descriptor on a variant.
type OptionValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductPage is one page of the catalog listing.
type ProductPage struct {
	Total  int       `json:"total"`
	Count  int       `json:"count"`
	Offset int       `json:"offset"`
	Items  []Product `json:"items"`
}

// quantityBody is the quantity read shape shared by product and variant
// endpoints.
type quantityBody struct {
	Quantity  float64 `json:"quantity"`
	Unlimited bool    `json:"unlimited"`
}

// adjustmentBody is the relative inventory adjustment payload.
type adjustmentBody struct {
	QuantityDelta float64 `json:"quantityDelta"`
}
