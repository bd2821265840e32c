package order

import (
	"errors"

	"github.com/shopspring/decimal"

	"offer-shop-backend/internal/product"
)

// ErrNoOrders reports an empty order list. The listing endpoint surfaces it
// as 404 rather than returning an empty payload.
var ErrNoOrders = errors.New("no orders found")

// ProductService is the part of the product service the order workflow needs.
type ProductService interface {
	GetByID(id int) (product.Product, error)
}

// Service provides the order workflow on top of the repository.
type Service struct {
	repo     Repository
	products ProductService
}

func NewService(repo Repository, products ProductService) *Service {
	return &Service{repo: repo, products: products}
}

// Create places an order for the given product. Snapshotting the discounted
// price and flipping the product's cart flag happen atomically in the
// repository.
func (s *Service) Create(productID int) (Order, error) {
	return s.repo.CreateForProduct(productID)
}

// UpdateQuantity adds delta to the order's quantity and recomputes its
// prices. The total uses the unit offered price snapshotted at creation; the
// original price is recomputed from the product's current base price, so it
// drifts if the price changed since the order was placed. Both rules are
// as built and pending product-owner confirmation.
func (s *Service) UpdateQuantity(orderID, delta int) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}

	p, err := s.products.GetByID(ord.ProductID)
	if err != nil {
		return Order{}, ErrProductNotFound
	}

	quantity := ord.Quantity + delta
	totalPrice := float64(quantity) * ord.OfferedPrice
	originalPrice := float64(quantity) * p.Price

	return s.repo.UpdateQuantity(orderID, quantity, totalPrice, originalPrice)
}

// Delete removes the order referencing the product and clears the product's
// cart flag, atomically.
func (s *Service) Delete(productID int) error {
	return s.repo.DeleteByProductID(productID)
}

// ListWithSummary returns all orders expanded with their products plus
// aggregate totals. Zero orders is an error, not an empty summary.
func (s *Service) ListWithSummary() (Summary, error) {
	views, err := s.repo.ListViews()
	if err != nil {
		return Summary{}, err
	}
	if len(views) == 0 {
		return Summary{}, ErrNoOrders
	}

	totals, err := s.repo.Totals()
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Orders:            views,
		TotalOfferedPrice: round2(totals.TotalAmount),
		// integer-valued, but the rounding is kept for parity with the
		// other totals
		TotalOrders:          round2(float64(totals.TotalUnits)),
		TotalOriginalPrice:   round2(totals.OriginalPrice),
		TotalDiscountedPrice: round2(totals.OriginalPrice - totals.TotalAmount),
	}, nil
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
