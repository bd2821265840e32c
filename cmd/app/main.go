package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"offer-shop-backend/internal/config"
	"offer-shop-backend/internal/order"
	"offer-shop-backend/internal/product"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	mustEnsureSchema(db)

	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(productService)
	productHandler.RegisterRoutes(app)

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, productService)
	orderHandler := order.NewHandler(orderService)
	orderHandler.RegisterRoutes(app)

	app.Listen(cfg.Addr)
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}

func requestLogger(c *fiber.Ctx) error {
	id := uuid.NewString()
	c.Set("X-Request-Id", id)

	start := time.Now()
	err := c.Next()
	fmt.Printf("[%s] %s %s took %v\n", id, c.Method(), c.OriginalURL(), time.Since(start))
	return err
}

func mustOpenDB(url string) *sql.DB {
	if url == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func mustEnsureSchema(db *sql.DB) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS products (
		product_id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC NOT NULL,
		image_url TEXT NOT NULL,
		description TEXT NOT NULL,
		in_cart BOOLEAN NOT NULL DEFAULT FALSE,
		offered_price NUMERIC,
		offer JSONB
	)`); err != nil {
		panic(err)
	}

	// no uniqueness constraint on product_id here: the one-order-per-product
	// rule is a workflow contract, and enforcing it in the schema would
	// change behavior under concurrent creates
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS orders (
		order_id SERIAL PRIMARY KEY,
		product_id INT NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		original_price NUMERIC NOT NULL,
		offered_price NUMERIC NOT NULL,
		total_price NUMERIC NOT NULL
	)`); err != nil {
		panic(err)
	}
}
