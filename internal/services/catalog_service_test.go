package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"

	"shopstack/internal/apperr"
	"shopstack/internal/repos"
	"shopstack/internal/services"
)

func newCatalogSvc(db *sqlx.DB) (*services.CatalogService, *services.CartService) {
	cartRepo := repos.NewCartRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartSvc := services.NewCartService(db, cartRepo, prodRepo)
	catalogSvc := services.NewCatalogService(db, repos.NewCategoryRepo(db), prodRepo, cartRepo, cartSvc)
	return catalogSvc, cartSvc
}

func defaultPage() services.PageRequest {
	return services.PageRequest{PageNumber: 0, PageSize: 10, SortBy: "name", SortOrder: "asc"}
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	db := memdb(t)
	svc, _ := newCatalogSvc(db)

	if _, err := svc.CreateCategory("Toys"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateCategory("toys"); !apperr.IsBusiness(err) {
		t.Fatal("want business error for case-insensitive duplicate")
	}
}

func TestAddProduct_ComputesSpecialPrice(t *testing.T) {
	db := memdb(t)
	svc, _ := newCatalogSvc(db)

	pv, err := svc.AddProduct("books", services.ProductInput{
		ProductName: "Go in Practice",
		Description: "Second-hand copy",
		Quantity:    7,
		Price:       40.00,
		Discount:    25,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(pv.SpecialPrice, 30.00) {
		t.Fatalf("want special price 30.00, got %v", pv.SpecialPrice)
	}
	if pv.Image != "default.png" {
		t.Fatalf("want default image, got %q", pv.Image)
	}
}

func TestAddProduct_DuplicateInCategory(t *testing.T) {
	db := memdb(t)
	svc, _ := newCatalogSvc(db)

	_, err := svc.AddProduct("books", services.ProductInput{ProductName: "Paperback", Price: 1})
	if !apperr.IsBusiness(err) {
		t.Fatalf("want business error, got %v", err)
	}
}

func TestGetAllProducts_Paging(t *testing.T) {
	db := memdb(t)
	svc, _ := newCatalogSvc(db)

	pr := defaultPage()
	pr.PageSize = 1
	page, err := svc.GetAllProducts(pr)
	if err != nil {
		t.Fatal(err)
	}
	if page.TotalElements != 2 || page.TotalPages != 2 || page.LastPage {
		t.Fatalf("bad envelope: %+v", page)
	}
	if len(page.Content) != 1 {
		t.Fatalf("want 1 product on page, got %d", len(page.Content))
	}

	pr.PageNumber = 1
	page, err = svc.GetAllProducts(pr)
	if err != nil {
		t.Fatal(err)
	}
	if !page.LastPage || len(page.Content) != 1 {
		t.Fatalf("bad last page: %+v", page)
	}
}

func TestSearchByKeyword_NoMatches(t *testing.T) {
	db := memdb(t)
	svc, _ := newCatalogSvc(db)

	_, err := svc.SearchByKeyword("zzz", defaultPage())
	if !apperr.IsBusiness(err) {
		t.Fatalf("want business error, got %v", err)
	}
}

func TestSearchByCategory(t *testing.T) {
	db := memdb(t)
	svc, _ := newCatalogSvc(db)

	page, err := svc.SearchByCategory("books", defaultPage())
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Content) != 1 || page.Content[0].ProductID != "book" {
		t.Fatalf("bad page: %+v", page)
	}

	if _, err := svc.SearchByCategory("missing", defaultPage()); !apperr.IsNotFound(err) {
		t.Fatalf("want not-found error, got %v", err)
	}
}

// A price edit must reprice existing cart lines and fix their cart totals in
// the same transaction.
func TestUpdateProduct_RepricesCarts(t *testing.T) {
	db := memdb(t)
	svc, cartSvc := newCatalogSvc(db)

	cv, err := cartSvc.AddProductToCart("buyer@example.com", "book", 2) // 2 x 5.00
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(cv.TotalPrice, 10.00) {
		t.Fatalf("want 10.00, got %v", cv.TotalPrice)
	}

	_, err = svc.UpdateProduct("book", services.ProductInput{
		ProductName: "Paperback",
		Description: "A novel",
		Quantity:    3,
		Price:       8.00,
		Discount:    0,
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := cartSvc.GetUserCart("buyer@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got.TotalPrice, 16.00) {
		t.Fatalf("want repriced total 16.00, got %v", got.TotalPrice)
	}
	cartTotalMatchesLines(t, db, got.CartID)
}

// Deleting a product removes its line from every cart and reduces the totals
// before the catalog row goes away.
func TestDeleteProduct_CascadesIntoCarts(t *testing.T) {
	db := memdb(t)
	svc, cartSvc := newCatalogSvc(db)

	if _, err := cartSvc.AddProductToCart("buyer@example.com", "kbd", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := cartSvc.AddProductToCart("buyer@example.com", "book", 2); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.DeleteProduct("book"); err != nil {
		t.Fatal(err)
	}

	got, err := cartSvc.GetUserCart("buyer@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Products) != 1 || got.Products[0].ProductID != "kbd" {
		t.Fatalf("want only kbd left: %+v", got)
	}
	if !almostEqual(got.TotalPrice, 90.00) {
		t.Fatalf("want 90.00 after cascade, got %v", got.TotalPrice)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products WHERE id = 'book'`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatal("product row should be gone")
	}
}

func TestDeleteCategory(t *testing.T) {
	db := memdb(t)
	svc, _ := newCatalogSvc(db)

	cat, err := svc.CreateCategory("Garden")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.DeleteCategory(cat.CategoryID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.DeleteCategory(cat.CategoryID); !apperr.IsNotFound(err) {
		t.Fatalf("want not-found error, got %v", err)
	}
}
