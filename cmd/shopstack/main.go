package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"shopstack/internal/config"
	"shopstack/internal/http/handlers"
	applog "shopstack/internal/log"
	"shopstack/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN, cfg.SeedDemo)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.limit.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	// ---------- Routes ----------
	deps := handlers.NewDeps(db, cfg)
	user := handlers.RequireUser(deps.Auth)
	admin := handlers.RequireAdmin(deps.Auth)

	api := app.Group("/api")

	// Auth (sign-in throttled separately from the global limiter)
	api.Post("/auth/signup", deps.AuthHandler.SignUp)
	api.Post("/auth/signin", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.signin.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), deps.AuthHandler.SignIn)

	// Catalog
	api.Get("/public/categories", deps.CategoryHandler.List)
	api.Post("/public/categories", admin, deps.CategoryHandler.Create)
	api.Put("/public/categories/:categoryId", admin, deps.CategoryHandler.Update)
	api.Delete("/admin/categories/:categoryId", admin, deps.CategoryHandler.Delete)

	api.Get("/public/products", deps.ProductHandler.List)
	api.Get("/public/categories/:categoryId/products", deps.ProductHandler.ListByCategory)
	api.Get("/public/products/keyword/:keyword", deps.ProductHandler.Search)
	api.Post("/admin/categories/:categoryId/product", admin, deps.ProductHandler.Create)
	api.Put("/admin/products/:productId", admin, deps.ProductHandler.Update)
	api.Delete("/admin/products/:productId", admin, deps.ProductHandler.Delete)

	// Carts
	api.Post("/carts/products/:productId/quantity/:qty", user, deps.CartHandler.Add)
	api.Get("/carts", admin, deps.CartHandler.List)
	api.Get("/carts/users/cart", user, deps.CartHandler.Own)
	api.Put("/carts/products/:productId/quantity/:operation", user, deps.CartHandler.UpdateQuantity)
	api.Delete("/carts/:cartId/product/:productId", user, deps.CartHandler.Remove)

	// Orders
	api.Post("/order/users/payments/:paymentMethod", user, deps.OrderHandler.Place)
	api.Get("/order/users/:orderId", user, deps.OrderHandler.Get)
	api.Get("/order/users", user, deps.OrderHandler.History)

	// Addresses
	api.Post("/addresses", user, deps.AddressHandler.Create)
	api.Get("/addresses", admin, deps.AddressHandler.List)
	api.Get("/addresses/:addressId", user, deps.AddressHandler.Get)
	api.Get("/users/addresses", user, deps.AddressHandler.ListOwn)
	api.Put("/addresses/:addressId", user, deps.AddressHandler.Update)
	api.Delete("/addresses/:addressId", user, deps.AddressHandler.Delete)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
