package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopstack/internal/log"
	"shopstack/internal/services"
	"shopstack/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

// Add handles POST /api/carts/products/:productId/quantity/:qty.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Params("productId"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid productId")
	}
	qty, ok := validate.Qty(c.Params("qty"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "quantity must be between 1 and 50")
	}

	view, err := h.Cart.AddProductToCart(callerEmail(c), productID, qty)
	if err != nil {
		return err
	}
	applog.Audit(c, "cart.add", map[string]any{"product_id": productID, "qty": qty})
	return c.Status(fiber.StatusCreated).JSON(view)
}

// List is the administrative listing of every cart.
func (h *CartHandler) List(c *fiber.Ctx) error {
	views, err := h.Cart.FindAllCarts()
	if err != nil {
		return err
	}
	return c.JSON(views)
}

// Own returns the caller's cart.
func (h *CartHandler) Own(c *fiber.Ctx) error {
	view, err := h.Cart.GetUserCart(callerEmail(c))
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// UpdateQuantity handles PUT /api/carts/products/:productId/quantity/:operation
// where operation "delete" decrements by one and anything else increments.
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Params("productId"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid productId")
	}
	delta := 1
	if c.Params("operation") == "delete" {
		delta = -1
	}

	view, err := h.Cart.UpdateProductQuantityInCart(callerEmail(c), productID, delta)
	if err != nil {
		return err
	}
	applog.Audit(c, "cart.update_qty", map[string]any{"product_id": productID, "delta": delta})
	return c.JSON(view)
}

// Remove handles DELETE /api/carts/:cartId/product/:productId.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	cartID, ok := validate.ID(c.Params("cartId"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid cartId")
	}
	productID, ok := validate.ID(c.Params("productId"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid productId")
	}

	msg, err := h.Cart.DeleteProductFromCart(cartID, productID)
	if err != nil {
		return err
	}
	applog.Audit(c, "cart.remove", map[string]any{"cart_id": cartID, "product_id": productID})
	return c.JSON(fiber.Map{"message": msg})
}
