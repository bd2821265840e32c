package order

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
	app.Post("/orders", h.createOrder)
	app.Get("/orders", h.getOrders)
	app.Put("/orders/:orderId/updatequantity", h.updateQuantity)
	app.Delete("/orders/delete", h.deleteOrder)
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	q := c.Query("productId")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid productId"})
	}
	productID, err := strconv.Atoi(q)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid productId"})
	}

	created, err := h.service.Create(productID)
	if err != nil {
		switch err {
		case ErrProductNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create order"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	summary, err := h.service.ListWithSummary()
	if err != nil {
		switch err {
		case ErrNoOrders:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "No orders found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch orders"})
		}
	}
	return c.JSON(summary)
}

type updateQuantityRequest struct {
	// delta added to the current quantity, not an absolute replacement
	Quantity *int `json:"quantity"`
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("orderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid orderId"})
	}

	payload := new(updateQuantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid quantity value"})
	}
	if payload.Quantity == nil || *payload.Quantity == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid quantity value"})
	}

	updated, err := h.service.UpdateQuantity(orderID, *payload.Quantity)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
		case ErrProductNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update order quantity"})
		}
	}
	return c.JSON(updated)
}

func (h *Handler) deleteOrder(c *fiber.Ctx) error {
	q := c.Query("productId")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Provide productId"})
	}
	productID, err := strconv.Atoi(q)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Provide productId"})
	}

	if err := h.service.Delete(productID); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete order"})
		}
	}
	return c.JSON(fiber.Map{"message": "Order successfully deleted"})
}
