package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopstack/internal/log"
	"shopstack/internal/services"
	"shopstack/internal/validate"
)

type AddressHandler struct {
	Addresses *services.AddressService
}

// parseAddress rejects invalid payloads before any engine logic runs: every
// field non-blank with minimum length 5.
func parseAddress(c *fiber.Ctx) (services.AddressInput, error) {
	var in services.AddressInput
	if err := c.BodyParser(&in); err != nil {
		return in, fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	fields := map[string]*string{
		"street":       &in.Street,
		"buildingName": &in.BuildingName,
		"city":         &in.City,
		"state":        &in.State,
		"country":      &in.Country,
		"pincode":      &in.Pincode,
	}
	for name, v := range fields {
		cleaned, ok := validate.AddressField(*v)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": name})
			return in, fiber.NewError(fiber.StatusBadRequest, name+" must be at least 5 characters")
		}
		*v = cleaned
	}
	return in, nil
}

func (h *AddressHandler) Create(c *fiber.Ctx) error {
	in, err := parseAddress(c)
	if err != nil {
		return err
	}
	view, err := h.Addresses.CreateAddress(callerEmail(c), in)
	if err != nil {
		return err
	}
	applog.Audit(c, "address.create", map[string]any{"address_id": view.AddressID})
	return c.Status(fiber.StatusCreated).JSON(view)
}

// List is the administrative listing of every address.
func (h *AddressHandler) List(c *fiber.Ctx) error {
	views, err := h.Addresses.GetAddresses()
	if err != nil {
		return err
	}
	return c.JSON(views)
}

func (h *AddressHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("addressId"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid addressId")
	}
	view, err := h.Addresses.GetAddressByID(id)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// ListOwn returns the caller's address book.
func (h *AddressHandler) ListOwn(c *fiber.Ctx) error {
	views, err := h.Addresses.GetUserAddresses(callerEmail(c))
	if err != nil {
		return err
	}
	return c.JSON(views)
}

func (h *AddressHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("addressId"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid addressId")
	}
	in, err := parseAddress(c)
	if err != nil {
		return err
	}
	view, err := h.Addresses.UpdateAddress(id, in)
	if err != nil {
		return err
	}
	applog.Audit(c, "address.update", map[string]any{"address_id": id})
	return c.JSON(view)
}

func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("addressId"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid addressId")
	}
	msg, err := h.Addresses.DeleteAddress(id)
	if err != nil {
		return err
	}
	applog.Audit(c, "address.delete", map[string]any{"address_id": id})
	return c.JSON(fiber.Map{"message": msg})
}
