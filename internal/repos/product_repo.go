package repos

import (
	"fmt"

	"shopstack/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

var productSortCols = map[string]string{
	"name":      "name",
	"price":     "price",
	"quantity":  "quantity",
	"createdAt": "created_at",
}

func ProductSortCol(sortBy string) string {
	if col, ok := productSortCols[sortBy]; ok {
		return col
	}
	return "name"
}

const productCols = `
  id, category_id, name, description, image, quantity, price, discount,
  special_price, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Get(q sqlx.Ext, id string) (domain.Product, error) {
	var p domain.Product
	err := sqlx.Get(q, &p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) ListPaged(col, dir string, limit, offset int) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT`+productCols+`
	  FROM products
	  ORDER BY `+col+` `+dir+`
	  LIMIT ? OFFSET ?
	`, limit, offset)
	return out, err
}

func (r *ProductRepo) Count() (int64, error) {
	var n int64
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}

func (r *ProductRepo) ListByCategoryPaged(catID, col, dir string, limit, offset int) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT`+productCols+`
	  FROM products
	  WHERE category_id = ?
	  ORDER BY `+col+` `+dir+`
	  LIMIT ? OFFSET ?
	`, catID, limit, offset)
	return out, err
}

func (r *ProductRepo) CountByCategory(catID string) (int64, error) {
	var n int64
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE category_id = ?`, catID)
	return n, err
}

func (r *ProductRepo) SearchByName(keyword, col, dir string, limit, offset int) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT`+productCols+`
	  FROM products
	  WHERE LOWER(name) LIKE LOWER(?)
	  ORDER BY `+col+` `+dir+`
	  LIMIT ? OFFSET ?
	`, "%"+keyword+"%", limit, offset)
	return out, err
}

func (r *ProductRepo) CountByName(keyword string) (int64, error) {
	var n int64
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE LOWER(name) LIKE LOWER(?)`, "%"+keyword+"%")
	return n, err
}

// NameExistsInCategory backs the duplicate-product check on create.
func (r *ProductRepo) NameExistsInCategory(catID, name string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM products
	  WHERE category_id = ? AND LOWER(name) = LOWER(?)
	`, catID, name)
	return n > 0, err
}

func (r *ProductRepo) Insert(q sqlx.Ext, p domain.Product) error {
	_, err := q.Exec(`
	  INSERT INTO products(id, category_id, name, description, image, quantity, price, discount, special_price)
	  VALUES(?,?,?,?,?,?,?,?,?)
	`, p.ID, p.CategoryID, p.Name, p.Description, p.Image, p.Quantity, p.Price, p.Discount, p.SpecialPrice)
	return err
}

func (r *ProductRepo) Update(q sqlx.Ext, p domain.Product) error {
	_, err := q.Exec(`
	  UPDATE products
	  SET name = ?, description = ?, quantity = ?, price = ?, discount = ?,
	      special_price = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, p.Name, p.Description, p.Quantity, p.Price, p.Discount, p.SpecialPrice, p.ID)
	return err
}

func (r *ProductRepo) Delete(q sqlx.Ext, id string) error {
	_, err := q.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

// DecrementStock subtracts "by" units only if enough stock exists, so
// concurrent orders can never drive quantity negative.
func (r *ProductRepo) DecrementStock(q sqlx.Ext, id string, by int) error {
	res, err := q.Exec(`
	  UPDATE products
	  SET quantity = quantity - ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND quantity >= ?
	`, by, id, by)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("insufficient stock for product %s", id)
	}
	return nil
}
