package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "shopstack/internal/log"
	"shopstack/internal/services"
	"shopstack/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type signUpRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req signUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}

	email, ok := validate.Email(req.Email)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return fiber.NewError(fiber.StatusBadRequest, "invalid email")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid name")
	}
	if !validate.Password(req.Password) {
		return fiber.NewError(fiber.StatusBadRequest,
			"password must be 8-64 characters with upper, lower, digit and symbol")
	}

	user, err := h.Auth.SignUp(email, name, req.Password)
	if err != nil {
		return err
	}
	applog.Audit(c, "auth.signup", map[string]any{"email": user.Email})
	return c.Status(fiber.StatusCreated).JSON(user)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req signInRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}

	token, user, err := h.Auth.SignIn(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			applog.Security(c, "auth.signin.fail", map[string]any{"email": req.Email})
			return fiber.NewError(fiber.StatusUnauthorized, services.ErrBadCreds.Error())
		}
		return err
	}
	applog.Audit(c, "auth.signin", map[string]any{"email": user.Email})
	return c.JSON(fiber.Map{"token": token, "user": user})
}
