package order

// Order represents a purchase of exactly one product. OfferedPrice is the
// discounted unit price snapshotted when the order was created and is not
// recomputed when the product's price changes later; TotalPrice tracks
// quantity × OfferedPrice across quantity updates.
type Order struct {
	ID            int     `json:"orderId"`
	ProductID     int     `json:"productId"`
	Quantity      int     `json:"quantity"`
	OriginalPrice float64 `json:"originalPrice"`
	OfferedPrice  float64 `json:"offeredPrice"`
	TotalPrice    float64 `json:"totalPrice"`
}

// BundledView is the one-level expansion of an offer's bundled product
// reference for display.
type BundledView struct {
	ID       int     `json:"productId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
}

// OfferView mirrors the stored offer descriptor with the bundled reference
// expanded into the product it points at.
type OfferView struct {
	Type               string       `json:"type"`
	FlatDiscount       float64      `json:"flatDiscount,omitempty"`
	PercentageDiscount float64      `json:"percentageDiscount,omitempty"`
	BundledProduct     *BundledView `json:"bundledProduct,omitempty"`
}

// ProductView is the slice of product fields shown alongside an order.
type ProductView struct {
	ID           int        `json:"productId"`
	Name         string     `json:"name"`
	Price        float64    `json:"price"`
	ImageURL     string     `json:"imageUrl"`
	OfferedPrice *float64   `json:"offeredPrice,omitempty"`
	Offer        *OfferView `json:"offer,omitempty"`
}

// View is an order expanded with its product for the order listing. Product
// is nil when the referenced product no longer exists.
type View struct {
	Order
	Product *ProductView `json:"product,omitempty"`
}

// Totals holds the raw aggregate sums across all orders before rounding.
// TotalUnits counts units (the sum of quantities), not order records.
type Totals struct {
	TotalAmount   float64
	TotalUnits    int
	OriginalPrice float64
}

// Summary is the order listing payload with aggregate totals, all rounded to
// two decimal places.
type Summary struct {
	Orders               []View  `json:"orders"`
	TotalOfferedPrice    float64 `json:"totalOfferedPrice"`
	TotalOrders          float64 `json:"totalOrders"`
	TotalOriginalPrice   float64 `json:"totalOriginalPrice"`
	TotalDiscountedPrice float64 `json:"totalDiscountedPrice"`
}
