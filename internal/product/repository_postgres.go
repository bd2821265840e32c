package product

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listProductsQuery = `
		SELECT product_id, name, price, image_url, description, in_cart, offered_price, offer
		FROM products
		ORDER BY product_id
	`
	getProductByIDQuery = `
		SELECT product_id, name, price, image_url, description, in_cart, offered_price, offer
		FROM products
		WHERE product_id = $1
	`
	insertProductQuery = `
		INSERT INTO products (name, price, image_url, description)
		VALUES ($1,$2,$3,$4)
		RETURNING product_id
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			price = $2,
			image_url = $3,
			description = $4,
			in_cart = $5
		WHERE product_id = $6
	`
	setOfferQuery = `
		UPDATE products
		SET offer = $1,
			offered_price = $2
		WHERE product_id = $3
	`
	deleteProductQuery = `DELETE FROM products WHERE product_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []Product {
	rows, err := r.db.Query(listProductsQuery)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(getProductByIDQuery, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	var id int
	err := r.db.QueryRow(
		insertProductQuery,
		p.Name,
		p.Price,
		p.ImageURL,
		p.Description,
	).Scan(&id)
	if err != nil {
		return Product{}, err
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	result, err := r.db.Exec(
		updateProductQuery,
		p.Name,
		p.Price,
		p.ImageURL,
		p.Description,
		p.InCart,
		id,
	)
	if err != nil {
		return Product{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Product{}, err
	}
	if affected == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) SetOffer(id int, offer *Offer, offeredPrice float64) (Product, error) {
	offerJSON, err := json.Marshal(offer)
	if err != nil {
		return Product{}, err
	}

	result, err := r.db.Exec(setOfferQuery, offerJSON, offeredPrice, id)
	if err != nil {
		return Product{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Product{}, err
	}
	if affected == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteProductQuery, id)
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
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var offeredPrice sql.NullFloat64
	var offerJSON []byte

	if err := scanner.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.ImageURL,
		&p.Description,
		&p.InCart,
		&offeredPrice,
		&offerJSON,
	); err != nil {
		return Product{}, err
	}

	if offeredPrice.Valid {
		p.OfferedPrice = &offeredPrice.Float64
	}
	if len(offerJSON) > 0 {
		offer := new(Offer)
		if err := json.Unmarshal(offerJSON, offer); err != nil {
			return Product{}, err
		}
		p.Offer = offer
	}

	return p, nil
}
