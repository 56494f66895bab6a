package repos

import (
	"shopstack/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Insert(q sqlx.Ext, o domain.Order) error {
	_, err := q.Exec(`
	  INSERT INTO orders(id, email, address_id, order_date, total_amount, status)
	  VALUES(?,?,?,?,?,?)
	`, o.ID, o.Email, o.AddressID, o.OrderDate, o.TotalAmount, o.Status)
	return err
}

func (r *OrderRepo) InsertItem(q sqlx.Ext, it domain.OrderItem) error {
	_, err := q.Exec(`
	  INSERT INTO order_items(id, order_id, product_id, quantity, discount, ordered_product_price)
	  VALUES(?,?,?,?,?,?)
	`, it.ID, it.OrderID, it.ProductID, it.Quantity, it.Discount, it.OrderedProductPrice)
	return err
}

func (r *OrderRepo) InsertPayment(q sqlx.Ext, p domain.Payment) error {
	_, err := q.Exec(`
	  INSERT INTO payments(id, order_id, payment_method, pg_name, pg_payment_id, pg_status, pg_response_message)
	  VALUES(?,?,?,?,?,?,?)
	`, p.ID, p.OrderID, p.PaymentMethod, p.PgName, p.PgPaymentID, p.PgStatus, p.PgResponseMessage)
	return err
}

func (r *OrderRepo) ByID(q sqlx.Ext, id string) (domain.Order, error) {
	var o domain.Order
	err := sqlx.Get(q, &o, `
	  SELECT id, email, address_id, order_date, total_amount, status FROM orders WHERE id = ?
	`, id)
	return o, err
}

func (r *OrderRepo) Items(q sqlx.Ext, orderID string) ([]domain.OrderItem, error) {
	out := []domain.OrderItem{}
	err := sqlx.Select(q, &out, `
	  SELECT id, order_id, product_id, quantity, discount, ordered_product_price
	  FROM order_items WHERE order_id = ?
	`, orderID)
	return out, err
}

func (r *OrderRepo) Payment(q sqlx.Ext, orderID string) (domain.Payment, error) {
	var p domain.Payment
	err := sqlx.Get(q, &p, `
	  SELECT id, order_id, payment_method, COALESCE(pg_name,'') AS pg_name,
	         COALESCE(pg_payment_id,'') AS pg_payment_id, COALESCE(pg_status,'') AS pg_status,
	         COALESCE(pg_response_message,'') AS pg_response_message
	  FROM payments WHERE order_id = ?
	`, orderID)
	return p, err
}

// ListByEmail returns a user's order history, newest first.
func (r *OrderRepo) ListByEmail(email string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
	  SELECT id, email, address_id, order_date, total_amount, status
	  FROM orders
	  WHERE LOWER(email) = LOWER(?)
	  ORDER BY datetime(created_at) DESC
	`, email)
	return out, err
}
