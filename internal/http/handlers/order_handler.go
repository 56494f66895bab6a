package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopstack/internal/log"
	"shopstack/internal/services"
	"shopstack/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
}

type placeOrderRequest struct {
	AddressID         string `json:"addressId"`
	PgName            string `json:"pgName"`
	PgPaymentID       string `json:"pgPaymentId"`
	PgStatus          string `json:"pgStatus"`
	PgResponseMessage string `json:"pgResponseMessage"`
}

// Place handles POST /api/order/users/payments/:paymentMethod.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	paymentMethod, ok := validate.Name(c.Params("paymentMethod"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payment method")
	}

	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	addressID, ok := validate.ID(req.AddressID)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid addressId")
	}

	view, err := h.Order.PlaceOrder(callerEmail(c), addressID, paymentMethod,
		req.PgName, req.PgPaymentID, req.PgStatus, req.PgResponseMessage)
	if err != nil {
		return err
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": view.OrderID,
		"total":    view.TotalAmount,
		"items":    len(view.OrderItems),
	})
	return c.Status(fiber.StatusCreated).JSON(view)
}

// Get returns one of the caller's orders.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	orderID, ok := validate.ID(c.Params("orderId"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid orderId")
	}
	view, err := h.Order.GetOrder(callerEmail(c), orderID)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// History lists the caller's orders, newest first.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	views, err := h.Order.OrderHistory(callerEmail(c))
	if err != nil {
		return err
	}
	return c.JSON(views)
}
