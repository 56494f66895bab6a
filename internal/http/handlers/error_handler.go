package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopstack/internal/apperr"
	applog "shopstack/internal/log"
)

// ErrorHandler maps engine errors onto status codes: missing entities are
// 404, violated business rules are 400, fiber errors keep their code and
// anything else is a 500 with a generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var nf *apperr.NotFoundError
	if errors.As(err, &nf) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": nf.Error()})
	}
	var be *apperr.BusinessError
	if errors.As(err, &be) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": be.Error()})
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong. Please try again."})
}
