package services_test

import (
	"math"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"shopstack/internal/apperr"
	"shopstack/internal/repos"
	"shopstack/internal/services"
)

// memdb bootstraps an in-memory database against the production schema and
// seeds a small catalog: a discounted keyboard and a full-price paperback.
func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if err := repos.EnsureSchema(db); err != nil {
		t.Fatal(err)
	}
	seed := `
	INSERT INTO categories(id,name) VALUES ('electronics','Electronics'),('books','Books');
	INSERT INTO products(id,category_id,name,description,quantity,price,discount,special_price) VALUES
	  ('kbd','electronics','Mechanical Keyboard','Tenkeyless',5,100.00,10,90.00),
	  ('book','books','Paperback','A novel',3,5.00,0,5.00);
	INSERT INTO addresses(id,street,building_name,city,state,country,pincode,email) VALUES
	  ('addr-1','42 Elm Street','Maple House','Springfield','Illinois','United States','62704','buyer@example.com');
	`
	if _, err := db.Exec(seed); err != nil {
		t.Fatal(err)
	}
	return db
}

func newCartSvc(db *sqlx.DB) *services.CartService {
	return services.NewCartService(db, repos.NewCartRepo(db), repos.NewProductRepo(db))
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// cartTotalMatchesLines asserts the denormalized total equals the sum of
// price x quantity over the stored line items.
func cartTotalMatchesLines(t *testing.T, db *sqlx.DB, cartID string) {
	t.Helper()
	var total float64
	if err := db.Get(&total, `SELECT total_price FROM carts WHERE id = ?`, cartID); err != nil {
		t.Fatal(err)
	}
	var sum float64
	if err := db.Get(&sum,
		`SELECT COALESCE(SUM(product_price * quantity), 0) FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		t.Fatal(err)
	}
	if !almostEqual(total, sum) {
		t.Fatalf("cart total %v != line sum %v", total, sum)
	}
}

func TestAddProductToCart(t *testing.T) {
	db := memdb(t)
	svc := newCartSvc(db)

	cv, err := svc.AddProductToCart("buyer@example.com", "kbd", 2)
	if err != nil {
		t.Fatal(err)
	}
	// Snapshot at the special price: 2 x 90.00
	if !almostEqual(cv.TotalPrice, 180.00) {
		t.Fatalf("want total 180.00, got %v", cv.TotalPrice)
	}
	if len(cv.Products) != 1 || cv.Products[0].ProductID != "kbd" || cv.Products[0].Quantity != 2 {
		t.Fatalf("bad cart view: %+v", cv)
	}
	cartTotalMatchesLines(t, db, cv.CartID)

	// Catalog stock is untouched until an order is placed.
	var stock int
	if err := db.Get(&stock, `SELECT quantity FROM products WHERE id = 'kbd'`); err != nil {
		t.Fatal(err)
	}
	if stock != 5 {
		t.Fatalf("want stock 5, got %d", stock)
	}
}

func TestAddProductToCart_DuplicateRejected(t *testing.T) {
	db := memdb(t)
	svc := newCartSvc(db)

	if _, err := svc.AddProductToCart("buyer@example.com", "kbd", 1); err != nil {
		t.Fatal(err)
	}
	_, err := svc.AddProductToCart("buyer@example.com", "kbd", 1)
	if !apperr.IsBusiness(err) {
		t.Fatalf("want business error on duplicate add, got %v", err)
	}

	// The failed add must not change the cart.
	cv, err := svc.GetUserCart("buyer@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Products) != 1 || cv.Products[0].Quantity != 1 {
		t.Fatalf("cart changed by rejected add: %+v", cv)
	}
	cartTotalMatchesLines(t, db, cv.CartID)
}

func TestAddProductToCart_InsufficientStock(t *testing.T) {
	db := memdb(t)
	svc := newCartSvc(db)

	_, err := svc.AddProductToCart("buyer@example.com", "book", 4) // only 3 in stock
	if !apperr.IsBusiness(err) {
		t.Fatalf("want business error, got %v", err)
	}
}

func TestAddProductToCart_UnknownProduct(t *testing.T) {
	db := memdb(t)
	svc := newCartSvc(db)

	_, err := svc.AddProductToCart("buyer@example.com", "nope", 1)
	if !apperr.IsNotFound(err) {
		t.Fatalf("want not-found error, got %v", err)
	}
}

func TestUpdateProductQuantityInCart(t *testing.T) {
	db := memdb(t)
	svc := newCartSvc(db)

	if _, err := svc.AddProductToCart("buyer@example.com", "book", 1); err != nil {
		t.Fatal(err)
	}

	cv, err := svc.UpdateProductQuantityInCart("buyer@example.com", "book", +1)
	if err != nil {
		t.Fatal(err)
	}
	if cv.Products[0].Quantity != 2 || !almostEqual(cv.TotalPrice, 10.00) {
		t.Fatalf("after +1: %+v", cv)
	}
	cartTotalMatchesLines(t, db, cv.CartID)

	// Down to one, then to zero: the line disappears.
	if _, err := svc.UpdateProductQuantityInCart("buyer@example.com", "book", -1); err != nil {
		t.Fatal(err)
	}
	cv, err = svc.UpdateProductQuantityInCart("buyer@example.com", "book", -1)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Products) != 0 || !almostEqual(cv.TotalPrice, 0) {
		t.Fatalf("line should be removed at zero: %+v", cv)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM cart_items WHERE cart_id = ?`, cv.CartID); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("want 0 cart_items rows, got %d", n)
	}
}

func TestUpdateProductQuantityInCart_NegativeRejected(t *testing.T) {
	db := memdb(t)
	svc := newCartSvc(db)

	if _, err := svc.AddProductToCart("buyer@example.com", "book", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateProductQuantityInCart("buyer@example.com", "book", -1); err != nil {
		t.Fatal(err)
	}
	// Line is gone; decrementing a missing line is a business error, not a
	// negative quantity.
	_, err := svc.UpdateProductQuantityInCart("buyer@example.com", "book", -1)
	if !apperr.IsBusiness(err) {
		t.Fatalf("want business error, got %v", err)
	}
}

func TestUpdateProductQuantityInCart_MissingItem(t *testing.T) {
	db := memdb(t)
	svc := newCartSvc(db)

	// Caller has a cart but never added the keyboard.
	if _, err := svc.AddProductToCart("buyer@example.com", "book", 1); err != nil {
		t.Fatal(err)
	}
	_, err := svc.UpdateProductQuantityInCart("buyer@example.com", "kbd", +1)
	if !apperr.IsBusiness(err) {
		t.Fatalf("want business error, got %v", err)
	}
}

func TestDeleteProductFromCart(t *testing.T) {
	db := memdb(t)
	svc := newCartSvc(db)

	cv, err := svc.AddProductToCart("buyer@example.com", "kbd", 2)
	if err != nil {
		t.Fatal(err)
	}
	msg, err := svc.DeleteProductFromCart(cv.CartID, "kbd")
	if err != nil {
		t.Fatal(err)
	}
	if msg == "" {
		t.Fatal("want removal message")
	}

	got, err := svc.GetUserCart("buyer@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Products) != 0 || !almostEqual(got.TotalPrice, 0) {
		t.Fatalf("cart should be empty: %+v", got)
	}
}

func TestUpdateProductInCarts(t *testing.T) {
	db := memdb(t)
	svc := newCartSvc(db)

	cv, err := svc.AddProductToCart("buyer@example.com", "book", 3) // 3 x 5.00
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`UPDATE products SET special_price = 4.00 WHERE id = 'book'`); err != nil {
		t.Fatal(err)
	}

	if err := svc.UpdateProductInCarts(cv.CartID, "book"); err != nil {
		t.Fatal(err)
	}
	got, err := svc.GetCart("buyer@example.com", cv.CartID)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got.TotalPrice, 12.00) {
		t.Fatalf("want repriced total 12.00, got %v", got.TotalPrice)
	}
	cartTotalMatchesLines(t, db, cv.CartID)

	// Foreign caller cannot read the cart by id.
	if _, err := svc.GetCart("other@example.com", cv.CartID); !apperr.IsNotFound(err) {
		t.Fatalf("want not-found for foreign caller, got %v", err)
	}
}

func TestGetUserCart_NoCart(t *testing.T) {
	db := memdb(t)
	svc := newCartSvc(db)

	_, err := svc.GetUserCart("stranger@example.com")
	if !apperr.IsNotFound(err) {
		t.Fatalf("want not-found error, got %v", err)
	}
}

func TestFindAllCarts_Empty(t *testing.T) {
	db := memdb(t)
	svc := newCartSvc(db)

	_, err := svc.FindAllCarts()
	if !apperr.IsBusiness(err) {
		t.Fatalf("want business error when no carts exist, got %v", err)
	}
}
