package repos

import (
	"shopstack/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// categorySortCols whitelists ORDER BY targets for paged listings.
var categorySortCols = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
}

func CategorySortCol(sortBy string) string {
	if col, ok := categorySortCols[sortBy]; ok {
		return col
	}
	return "name"
}

func (r *CategoryRepo) ListPaged(col, dir string, limit, offset int) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `
	  SELECT id, name, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories
	  ORDER BY `+col+` `+dir+`
	  LIMIT ? OFFSET ?
	`, limit, offset)
	return out, err
}

func (r *CategoryRepo) Count() (int64, error) {
	var n int64
	err := r.db.Get(&n, `SELECT COUNT(*) FROM categories`)
	return n, err
}

func (r *CategoryRepo) ByID(q sqlx.Ext, id string) (domain.Category, error) {
	var c domain.Category
	err := sqlx.Get(q, &c, `
	  SELECT id, name, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories WHERE id = ?
	`, id)
	return c, err
}

// ByName resolves a category case-insensitively; sql.ErrNoRows when absent.
func (r *CategoryRepo) ByName(name string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT id, name, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories WHERE LOWER(name) = LOWER(?)
	`, name)
	return c, err
}

func (r *CategoryRepo) Insert(c domain.Category) error {
	_, err := r.db.Exec(`INSERT INTO categories(id,name) VALUES(?,?)`, c.ID, c.Name)
	return err
}

func (r *CategoryRepo) UpdateName(id, name string) error {
	_, err := r.db.Exec(`UPDATE categories SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, name, id)
	return err
}

func (r *CategoryRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}
