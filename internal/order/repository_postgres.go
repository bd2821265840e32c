package order

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"

	"offer-shop-backend/internal/product"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getOrderByIDQuery = `
		SELECT order_id, product_id, quantity, original_price, offered_price, total_price
		FROM orders
		WHERE order_id = $1
	`
	insertOrderQuery = `
		INSERT INTO orders (product_id, quantity, original_price, offered_price, total_price)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING order_id
	`
	updateOrderQuantityQuery = `
		UPDATE orders
		SET quantity = $1,
			total_price = $2,
			original_price = $3
		WHERE order_id = $4
	`
	listOrderViewsQuery = `
		SELECT o.order_id, o.product_id, o.quantity, o.original_price, o.offered_price, o.total_price,
		       p.name, p.price, p.image_url, p.offered_price, p.offer
		FROM orders o
		LEFT JOIN products p ON p.product_id = o.product_id
		ORDER BY o.order_id
	`
	bundledProductsQuery = `
		SELECT product_id, name, price, image_url
		FROM products
		WHERE product_id = ANY($1::int[])
	`
	orderTotalsQuery = `
		SELECT COALESCE(SUM(total_price), 0), COALESCE(SUM(quantity), 0), COALESCE(SUM(original_price), 0)
		FROM orders
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateForProduct inserts the order and marks the product as in a cart in
// one transaction; either both writes commit or neither does.
func (r *PostgresRepository) CreateForProduct(productID int) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var (
		price    float64
		offerRaw []byte
	)
	err = tx.QueryRow(`SELECT price, offer FROM products WHERE product_id = $1`, productID).Scan(&price, &offerRaw)
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrProductNotFound
		}
		return Order{}, err
	}

	var offer *product.Offer
	if len(offerRaw) > 0 {
		offer = new(product.Offer)
		if err := json.Unmarshal(offerRaw, offer); err != nil {
			return Order{}, err
		}
	}
	offeredPrice := product.ComputeOfferedPrice(price, offer)

	ord := Order{
		ProductID:     productID,
		Quantity:      1,
		OriginalPrice: price,
		OfferedPrice:  offeredPrice,
		TotalPrice:    offeredPrice,
	}
	err = tx.QueryRow(insertOrderQuery,
		ord.ProductID, ord.Quantity, ord.OriginalPrice, ord.OfferedPrice, ord.TotalPrice,
	).Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}

	if _, err := tx.Exec(`UPDATE products SET in_cart = TRUE WHERE product_id = $1`, productID); err != nil {
		return Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	var ord Order
	err := r.db.QueryRow(getOrderByIDQuery, id).Scan(
		&ord.ID, &ord.ProductID, &ord.Quantity, &ord.OriginalPrice, &ord.OfferedPrice, &ord.TotalPrice,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) UpdateQuantity(id int, quantity int, totalPrice, originalPrice float64) (Order, error) {
	result, err := r.db.Exec(updateOrderQuantityQuery, quantity, totalPrice, originalPrice, id)
	if err != nil {
		return Order{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Order{}, err
	}
	if affected == 0 {
		return Order{}, ErrNotFound
	}
	return r.GetByID(id)
}

// DeleteByProductID removes the order referencing the product and clears the
// product's cart flag in one transaction.
func (r *PostgresRepository) DeleteByProductID(productID int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.Exec(`DELETE FROM orders WHERE product_id = $1`, productID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(`UPDATE products SET in_cart = FALSE WHERE product_id = $1`, productID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) ListViews() ([]View, error) {
	rows, err := r.db.Query(listOrderViewsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]View, 0)
	bundledIDs := make([]int, 0)
	for rows.Next() {
		var (
			v            View
			name         sql.NullString
			price        sql.NullFloat64
			imageURL     sql.NullString
			offeredPrice sql.NullFloat64
			offerRaw     []byte
		)
		if err := rows.Scan(
			&v.ID, &v.ProductID, &v.Quantity, &v.OriginalPrice, &v.OfferedPrice, &v.TotalPrice,
			&name, &price, &imageURL, &offeredPrice, &offerRaw,
		); err != nil {
			return nil, err
		}

		if name.Valid {
			pv := ProductView{
				ID:       v.ProductID,
				Name:     name.String,
				Price:    price.Float64,
				ImageURL: imageURL.String,
			}
			if offeredPrice.Valid {
				pv.OfferedPrice = &offeredPrice.Float64
			}
			if len(offerRaw) > 0 {
				var offer product.Offer
				if err := json.Unmarshal(offerRaw, &offer); err != nil {
					return nil, err
				}
				pv.Offer = &OfferView{
					Type:               offer.Type,
					FlatDiscount:       offer.FlatDiscount,
					PercentageDiscount: offer.PercentageDiscount,
				}
				if offer.BundledProductID != nil {
					bundledIDs = append(bundledIDs, *offer.BundledProductID)
					// stash the id; resolved against the batch lookup below
					pv.Offer.BundledProduct = &BundledView{ID: *offer.BundledProductID}
				}
			}
			v.Product = &pv
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(bundledIDs) > 0 {
		bundled, err := r.listBundled(bundledIDs)
		if err != nil {
			return nil, err
		}
		for i := range views {
			p := views[i].Product
			if p == nil || p.Offer == nil || p.Offer.BundledProduct == nil {
				continue
			}
			if b, ok := bundled[p.Offer.BundledProduct.ID]; ok {
				p.Offer.BundledProduct = &b
			} else {
				p.Offer.BundledProduct = nil
			}
		}
	}

	return views, nil
}

func (r *PostgresRepository) listBundled(ids []int) (map[int]BundledView, error) {
	rows, err := r.db.Query(bundledProductsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]BundledView, len(ids))
	for rows.Next() {
		var b BundledView
		if err := rows.Scan(&b.ID, &b.Name, &b.Price, &b.ImageURL); err != nil {
			return nil, err
		}
		out[b.ID] = b
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Totals() (Totals, error) {
	var t Totals
	err := r.db.QueryRow(orderTotalsQuery).Scan(&t.TotalAmount, &t.TotalUnits, &t.OriginalPrice)
	if err != nil {
		return Totals{}, err
	}
	return t, nil
}
