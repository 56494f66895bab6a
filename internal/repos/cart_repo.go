package repos

import (
	"shopstack/internal/domain"

	"github.com/jmoiron/sqlx"
)

// CartRepo methods take sqlx.Ext so cart mutations and the order placement
// flow can thread a single transaction through every statement.
type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

const cartCols = `id, email, total_price, COALESCE(updated_at,'') AS updated_at`

// ByEmail resolves the user's single cart; sql.ErrNoRows when none exists.
func (r *CartRepo) ByEmail(q sqlx.Ext, email string) (domain.Cart, error) {
	var c domain.Cart
	err := sqlx.Get(q, &c, `SELECT `+cartCols+` FROM carts WHERE LOWER(email) = LOWER(?) LIMIT 1`, email)
	return c, err
}

func (r *CartRepo) ByID(q sqlx.Ext, id string) (domain.Cart, error) {
	var c domain.Cart
	err := sqlx.Get(q, &c, `SELECT `+cartCols+` FROM carts WHERE id = ?`, id)
	return c, err
}

func (r *CartRepo) ByEmailAndID(q sqlx.Ext, email, id string) (domain.Cart, error) {
	var c domain.Cart
	err := sqlx.Get(q, &c, `SELECT `+cartCols+` FROM carts WHERE LOWER(email) = LOWER(?) AND id = ?`, email, id)
	return c, err
}

func (r *CartRepo) All() ([]domain.Cart, error) {
	out := []domain.Cart{}
	err := r.db.Select(&out, `SELECT `+cartCols+` FROM carts ORDER BY updated_at DESC`)
	return out, err
}

func (r *CartRepo) Insert(q sqlx.Ext, c domain.Cart) error {
	_, err := q.Exec(`INSERT INTO carts(id,email,total_price,updated_at) VALUES(?,?,?,CURRENT_TIMESTAMP)`,
		c.ID, c.Email, c.TotalPrice)
	return err
}

// AddToTotal applies a signed delta to the denormalized cart total.
func (r *CartRepo) AddToTotal(q sqlx.Ext, cartID string, delta float64) error {
	_, err := q.Exec(`UPDATE carts SET total_price = total_price + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		delta, cartID)
	return err
}

func (r *CartRepo) Item(q sqlx.Ext, cartID, productID string) (domain.CartItem, error) {
	var it domain.CartItem
	err := sqlx.Get(q, &it, `
	  SELECT id, cart_id, product_id, quantity, product_price, discount
	  FROM cart_items WHERE cart_id = ? AND product_id = ?
	`, cartID, productID)
	return it, err
}

func (r *CartRepo) Items(q sqlx.Ext, cartID string) ([]domain.CartItem, error) {
	out := []domain.CartItem{}
	err := sqlx.Select(q, &out, `
	  SELECT id, cart_id, product_id, quantity, product_price, discount
	  FROM cart_items WHERE cart_id = ? ORDER BY created_at
	`, cartID)
	return out, err
}

// CartLine is a cart item joined with its product, shaped for cart views:
// product fields with the line quantity overlaid.
type CartLine struct {
	ProductID    string  `db:"product_id"`
	Name         string  `db:"name"`
	Description  string  `db:"description"`
	Image        string  `db:"image"`
	Quantity     int     `db:"quantity"` // line quantity, not stock
	Price        float64 `db:"price"`
	Discount     float64 `db:"discount"`
	SpecialPrice float64 `db:"special_price"`
}

func (r *CartRepo) Lines(q sqlx.Ext, cartID string) ([]CartLine, error) {
	out := []CartLine{}
	err := sqlx.Select(q, &out, `
	  SELECT ci.product_id, p.name, COALESCE(p.description,'') AS description, p.image,
	         ci.quantity, p.price, p.discount, p.special_price
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY ci.created_at
	`, cartID)
	return out, err
}

func (r *CartRepo) InsertItem(q sqlx.Ext, it domain.CartItem) error {
	_, err := q.Exec(`
	  INSERT INTO cart_items(id, cart_id, product_id, quantity, product_price, discount, created_at)
	  VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, it.ID, it.CartID, it.ProductID, it.Quantity, it.ProductPrice, it.Discount)
	return err
}

func (r *CartRepo) UpdateItem(q sqlx.Ext, it domain.CartItem) error {
	_, err := q.Exec(`
	  UPDATE cart_items
	  SET quantity = ?, product_price = ?, discount = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, it.Quantity, it.ProductPrice, it.Discount, it.ID)
	return err
}

func (r *CartRepo) DeleteItem(q sqlx.Ext, cartID, productID string) error {
	_, err := q.Exec(`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID)
	return err
}

// CartIDsWithProduct lists every cart holding the product, for the
// catalog-driven re-price and removal passes.
func (r *CartRepo) CartIDsWithProduct(q sqlx.Ext, productID string) ([]string, error) {
	out := []string{}
	err := sqlx.Select(q, &out, `SELECT cart_id FROM cart_items WHERE product_id = ?`, productID)
	return out, err
}
