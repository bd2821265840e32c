package product

// ComputeOfferedPrice returns the unit price after applying the offer to the
// base price. A nil offer, a bundled offer, or an unrecognised offer type
// leaves the base price unchanged.
//
// Discounts are not clamped: a flat or percentage discount larger than the
// base price drives the result negative. That matches the system as built;
// whether such offers should be rejected at input time is an open question
// for the product owner.
func ComputeOfferedPrice(basePrice float64, offer *Offer) float64 {
	if offer == nil {
		return basePrice
	}

	switch offer.Type {
	case OfferFlat:
		return basePrice - offer.FlatDiscount
	case OfferPercentage:
		return basePrice - (offer.PercentageDiscount/100)*basePrice
	case OfferBundled:
		// a bundled offer pairs this product with another one; the price
		// itself is not adjusted
		return basePrice
	default:
		return basePrice
	}
}
