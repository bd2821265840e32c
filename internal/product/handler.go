package product

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/products", h.getProducts)
	api.Post("/products", h.createProduct)
	api.Put("/products/:productId", h.updateProduct)
	api.Delete("/products/:productId", h.deleteProduct)
	api.Put("/products/:productId/offer", h.applyOffer)
}

// getProducts lists the catalog, optionally filtered to a single product via
// the productId query parameter. An empty result is reported as 404 rather
// than an empty list.
func (h *Handler) getProducts(c *fiber.Ctx) error {
	if q := c.Query("productId"); q != "" {
		id, err := strconv.Atoi(q)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		}
		p, err := h.service.GetByID(id)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		}
		return c.JSON([]Product{p})
	}

	products := h.service.List()
	if len(products) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}
	return c.JSON(products)
}

type createProductRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Description string  `json:"description"`
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	payload := new(createProductRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.Name == "" || payload.Price <= 0 || payload.ImageURL == "" || payload.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Please provide all details"})
	}

	created, err := h.service.Create(Product{
		Name:        payload.Name,
		Price:       payload.Price,
		ImageURL:    payload.ImageURL,
		Description: payload.Description,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid productId"})
	}

	upd := new(Update)
	if err := c.BodyParser(upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(id, *upd)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid productId"})
	}

	if err := h.service.Delete(id); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *Handler) applyOffer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid productId"})
	}

	offer := new(Offer)
	if err := c.BodyParser(offer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.ApplyOffer(id, *offer)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}
