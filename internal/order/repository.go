package order

import (
	"errors"
	"sync"

	"offer-shop-backend/internal/product"
)

var (
	ErrNotFound        = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
)

// Repository defines persistence operations for orders. CreateForProduct and
// DeleteByProductID pair the order write with the product's in_cart flag
// update atomically.
type Repository interface {
	// CreateForProduct loads the product, snapshots its offered price and
	// inserts a quantity-1 order while setting the product's cart flag.
	// Returns ErrProductNotFound when the product does not exist.
	CreateForProduct(productID int) (Order, error)
	GetByID(id int) (Order, error)
	// UpdateQuantity persists recomputed quantity and prices; the caller
	// does the arithmetic. Returns ErrNotFound if the order disappeared.
	UpdateQuantity(id int, quantity int, totalPrice, originalPrice float64) (Order, error)
	// DeleteByProductID removes the order referencing the product and
	// clears the product's cart flag. Returns ErrNotFound when no order
	// references the product.
	DeleteByProductID(productID int) error
	// ListViews returns all orders expanded with their products, including
	// one level of bundled-product expansion inside the offer.
	ListViews() ([]View, error)
	Totals() (Totals, error)
}

// InMemoryRepository keeps orders in a slice on top of an in-memory product
// repository. Used by service and handler tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products *product.InMemoryRepository
	storage  []Order
	nextID   int
}

func NewInMemoryRepository(products *product.InMemoryRepository) *InMemoryRepository {
	return &InMemoryRepository{products: products, nextID: 1}
}

func (r *InMemoryRepository) CreateForProduct(productID int) (Order, error) {
	p, err := r.products.GetByID(productID)
	if err != nil {
		return Order{}, ErrProductNotFound
	}

	offeredPrice := product.ComputeOfferedPrice(p.Price, p.Offer)

	r.mu.Lock()
	ord := Order{
		ID:            r.nextID,
		ProductID:     productID,
		Quantity:      1,
		OriginalPrice: p.Price,
		OfferedPrice:  offeredPrice,
		TotalPrice:    offeredPrice,
	}
	r.nextID++
	r.storage = append(r.storage, ord)
	r.mu.Unlock()

	if err := r.products.SetInCart(productID, true); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ord := range r.storage {
		if ord.ID == id {
			return ord, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) UpdateQuantity(id int, quantity int, totalPrice, originalPrice float64) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].Quantity = quantity
			r.storage[i].TotalPrice = totalPrice
			r.storage[i].OriginalPrice = originalPrice
			return r.storage[i], nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) DeleteByProductID(productID int) error {
	r.mu.Lock()
	deleted := false
	for i := range r.storage {
		if r.storage[i].ProductID == productID {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			deleted = true
			break
		}
	}
	r.mu.Unlock()

	if !deleted {
		return ErrNotFound
	}
	_ = r.products.SetInCart(productID, false)
	return nil
}

func (r *InMemoryRepository) ListViews() ([]View, error) {
	r.mu.RLock()
	orders := make([]Order, len(r.storage))
	copy(orders, r.storage)
	r.mu.RUnlock()

	views := make([]View, 0, len(orders))
	for _, ord := range orders {
		v := View{Order: ord}
		if p, err := r.products.GetByID(ord.ProductID); err == nil {
			pv := ProductView{
				ID:           p.ID,
				Name:         p.Name,
				Price:        p.Price,
				ImageURL:     p.ImageURL,
				OfferedPrice: p.OfferedPrice,
			}
			if p.Offer != nil {
				ov := OfferView{
					Type:               p.Offer.Type,
					FlatDiscount:       p.Offer.FlatDiscount,
					PercentageDiscount: p.Offer.PercentageDiscount,
				}
				if p.Offer.BundledProductID != nil {
					if b, err := r.products.GetByID(*p.Offer.BundledProductID); err == nil {
						ov.BundledProduct = &BundledView{
							ID:       b.ID,
							Name:     b.Name,
							Price:    b.Price,
							ImageURL: b.ImageURL,
						}
					}
				}
				pv.Offer = &ov
			}
			v.Product = &pv
		}
		views = append(views, v)
	}
	return views, nil
}

func (r *InMemoryRepository) Totals() (Totals, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var t Totals
	for _, ord := range r.storage {
		t.TotalAmount += ord.TotalPrice
		t.TotalUnits += ord.Quantity
		t.OriginalPrice += ord.OriginalPrice
	}
	return t, nil
}
