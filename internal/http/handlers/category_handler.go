package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopstack/internal/log"
	"shopstack/internal/services"
	"shopstack/internal/validate"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

func pageRequest(c *fiber.Ctx, defaultSort string) services.PageRequest {
	page, size := validate.Page(c.Query("pageNumber"), c.Query("pageSize"))
	return services.PageRequest{
		PageNumber: page,
		PageSize:   size,
		SortBy:     c.Query("sortBy", defaultSort),
		SortOrder:  validate.SortOrder(c.Query("sortOrder")),
	}
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	page, err := h.Catalog.GetAllCategories(pageRequest(c, "name"))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

type categoryRequest struct {
	CategoryName string `json:"categoryName"`
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	name, ok := validate.Name(req.CategoryName)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid categoryName")
	}

	view, err := h.Catalog.CreateCategory(name)
	if err != nil {
		return err
	}
	applog.Audit(c, "category.create", map[string]any{"category_id": view.CategoryID})
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("categoryId"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid categoryId")
	}
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	name, ok := validate.Name(req.CategoryName)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid categoryName")
	}

	view, err := h.Catalog.UpdateCategory(id, name)
	if err != nil {
		return err
	}
	applog.Audit(c, "category.update", map[string]any{"category_id": id})
	return c.JSON(view)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("categoryId"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid categoryId")
	}
	view, err := h.Catalog.DeleteCategory(id)
	if err != nil {
		return err
	}
	applog.Audit(c, "category.delete", map[string]any{"category_id": id})
	return c.JSON(view)
}
