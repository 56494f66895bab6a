package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"shopstack/internal/config"
	"shopstack/internal/http/handlers"
	"shopstack/internal/repos"
)

// Minimal app exercising both guards over stub routes.
func newGuardApp(t *testing.T) (*fiber.App, *handlers.Deps) {
	t.Helper()
	db, err := repos.OpenDB(":memory:", true)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	deps := handlers.NewDeps(db, cfg)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Get("/user-only", handlers.RequireUser(deps.Auth),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	app.Get("/admin-only", handlers.RequireAdmin(deps.Auth),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	return app, deps
}

func get(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode
}

func TestGuards(t *testing.T) {
	app, deps := newGuardApp(t)

	if code := get(t, app, "/user-only", ""); code != http.StatusUnauthorized {
		t.Fatalf("anonymous: want 401, got %d", code)
	}
	if code := get(t, app, "/user-only", "garbage"); code != http.StatusUnauthorized {
		t.Fatalf("bad token: want 401, got %d", code)
	}

	userTok, err := deps.Auth.IssueToken("demo@shopstack.test", "USER")
	if err != nil {
		t.Fatal(err)
	}
	if code := get(t, app, "/user-only", userTok); code != http.StatusOK {
		t.Fatalf("user token: want 200, got %d", code)
	}
	if code := get(t, app, "/admin-only", userTok); code != http.StatusForbidden {
		t.Fatalf("user on admin route: want 403, got %d", code)
	}

	adminTok, err := deps.Auth.IssueToken("admin@shopstack.test", "ADMIN")
	if err != nil {
		t.Fatal(err)
	}
	if code := get(t, app, "/admin-only", adminTok); code != http.StatusOK {
		t.Fatalf("admin token: want 200, got %d", code)
	}
}
