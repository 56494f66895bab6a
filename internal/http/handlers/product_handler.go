package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "shopstack/internal/log"
	"shopstack/internal/services"
	"shopstack/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	page, err := h.Catalog.GetAllProducts(pageRequest(c, "name"))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	categoryID, ok := validate.ID(c.Params("categoryId"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid categoryId")
	}
	page, err := h.Catalog.SearchByCategory(categoryID, pageRequest(c, "name"))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *ProductHandler) Search(c *fiber.Ctx) error {
	keyword := strings.TrimSpace(c.Params("keyword"))
	if keyword == "" || len(keyword) > 100 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid keyword")
	}
	page, err := h.Catalog.SearchByKeyword(keyword, pageRequest(c, "name"))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func parseProduct(c *fiber.Ctx) (services.ProductInput, error) {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return in, fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	name, ok := validate.Name(in.ProductName)
	if !ok {
		return in, fiber.NewError(fiber.StatusBadRequest, "invalid productName")
	}
	in.ProductName = name
	if in.Quantity < 0 {
		return in, fiber.NewError(fiber.StatusBadRequest, "quantity cannot be negative")
	}
	if in.Price < 0 {
		return in, fiber.NewError(fiber.StatusBadRequest, "price cannot be negative")
	}
	if in.Discount < 0 || in.Discount > 100 {
		return in, fiber.NewError(fiber.StatusBadRequest, "discount must be between 0 and 100")
	}
	return in, nil
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	categoryID, ok := validate.ID(c.Params("categoryId"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid categoryId")
	}
	in, err := parseProduct(c)
	if err != nil {
		return err
	}

	view, err := h.Catalog.AddProduct(categoryID, in)
	if err != nil {
		return err
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": view.ProductID, "category_id": categoryID})
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Params("productId"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid productId")
	}
	in, err := parseProduct(c)
	if err != nil {
		return err
	}

	view, err := h.Catalog.UpdateProduct(productID, in)
	if err != nil {
		return err
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": productID})
	return c.JSON(view)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Params("productId"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid productId")
	}
	view, err := h.Catalog.DeleteProduct(productID)
	if err != nil {
		return err
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": productID})
	return c.JSON(view)
}
