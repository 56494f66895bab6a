package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"shopstack/internal/apperr"
	"shopstack/internal/http/handlers"
)

func TestErrorHandlerMapping(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperr.NotFound("Product", "productId", "p-1")
	})
	app.Get("/rule", func(c *fiber.Ctx) error {
		return apperr.Business("Product Widget already exists in the cart")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("sqlite: database is locked")
	})

	cases := []struct {
		path     string
		wantCode int
		wantMsg  string
	}{
		{"/missing", http.StatusNotFound, "Product not found with productId: p-1"},
		{"/rule", http.StatusBadRequest, "Product Widget already exists in the cart"},
		{"/boom", http.StatusInternalServerError, "Something went wrong"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != tc.wantCode {
			t.Fatalf("%s: want %d, got %d", tc.path, tc.wantCode, resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("%s: non-JSON body %q", tc.path, body)
		}
		if !strings.Contains(payload.Error, tc.wantMsg) {
			t.Fatalf("%s: want message containing %q, got %q", tc.path, tc.wantMsg, payload.Error)
		}
	}

	// Internal detail must never leak.
	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(body), "sqlite") {
		t.Fatalf("internal error leaked: %q", body)
	}
}
