package product

import "testing"

func TestComputeOfferedPrice(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	cases := []struct {
		name  string
		price float64
		offer *Offer
		want  float64
	}{
		{"no offer", 100, nil, 100},
		{"flat", 100, &Offer{Type: OfferFlat, FlatDiscount: 20}, 80},
		{"flat larger than price is not clamped", 100, &Offer{Type: OfferFlat, FlatDiscount: 150}, -50},
		{"percentage", 200, &Offer{Type: OfferPercentage, PercentageDiscount: 25}, 150},
		{"percentage of 100", 80, &Offer{Type: OfferPercentage, PercentageDiscount: 100}, 0},
		{"bundled keeps base price", 100, &Offer{Type: OfferBundled, BundledProductID: intPtr(2)}, 100},
		{"unknown type keeps base price", 100, &Offer{Type: "bogo", FlatDiscount: 20}, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeOfferedPrice(tc.price, tc.offer)
			if got != tc.want {
				t.Fatalf("ComputeOfferedPrice(%v, %+v) = %v, want %v", tc.price, tc.offer, got, tc.want)
			}
		})
	}
}
