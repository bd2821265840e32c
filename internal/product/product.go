package product

// Offer types recognised by the pricing engine.
const (
	OfferFlat       = "flat"
	OfferPercentage = "percentage"
	OfferBundled    = "bundled"
)

// Offer is the discount descriptor attached to a product. Which field is
// meaningful depends on Type: flat carries FlatDiscount, percentage carries
// PercentageDiscount, bundled carries a reference to another product and
// leaves the price untouched.
type Offer struct {
	Type               string  `json:"type"`
	FlatDiscount       float64 `json:"flatDiscount,omitempty"`
	PercentageDiscount float64 `json:"percentageDiscount,omitempty"`
	BundledProductID   *int    `json:"bundledProduct,omitempty"`
}

// Product represents a catalog entry and maps to the `products` table.
// OfferedPrice is derived from Price and Offer and the two are always written
// together. InCart is true while an order references this product.
type Product struct {
	ID           int      `json:"productId"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	ImageURL     string   `json:"imageUrl"`
	Description  string   `json:"description"`
	InCart       bool     `json:"inCart"`
	OfferedPrice *float64 `json:"offeredPrice,omitempty"`
	Offer        *Offer   `json:"offer,omitempty"`
}

// Update carries the fields of a partial product update; nil fields keep
// their stored value.
type Update struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	Description *string  `json:"description"`
	InCart      *bool    `json:"inCart"`
}
