package repos

import (
	"shopstack/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AddressRepo struct{ db *sqlx.DB }

func NewAddressRepo(db *sqlx.DB) *AddressRepo { return &AddressRepo{db: db} }

const addressCols = `id, street, building_name, city, state, country, pincode, email`

func (r *AddressRepo) ByID(q sqlx.Ext, id string) (domain.Address, error) {
	var a domain.Address
	err := sqlx.Get(q, &a, `SELECT `+addressCols+` FROM addresses WHERE id = ?`, id)
	return a, err
}

func (r *AddressRepo) All() ([]domain.Address, error) {
	out := []domain.Address{}
	err := r.db.Select(&out, `SELECT `+addressCols+` FROM addresses ORDER BY created_at`)
	return out, err
}

// ByEmail lists the owning user's address collection.
func (r *AddressRepo) ByEmail(q sqlx.Ext, email string) ([]domain.Address, error) {
	out := []domain.Address{}
	err := sqlx.Select(q, &out, `
	  SELECT `+addressCols+` FROM addresses WHERE LOWER(email) = LOWER(?) ORDER BY created_at
	`, email)
	return out, err
}

func (r *AddressRepo) Insert(q sqlx.Ext, a domain.Address) error {
	_, err := q.Exec(`
	  INSERT INTO addresses(id, street, building_name, city, state, country, pincode, email)
	  VALUES(?,?,?,?,?,?,?,?)
	`, a.ID, a.Street, a.BuildingName, a.City, a.State, a.Country, a.Pincode, a.Email)
	return err
}

func (r *AddressRepo) Update(q sqlx.Ext, a domain.Address) error {
	_, err := q.Exec(`
	  UPDATE addresses
	  SET street = ?, building_name = ?, city = ?, state = ?, country = ?, pincode = ?
	  WHERE id = ?
	`, a.Street, a.BuildingName, a.City, a.State, a.Country, a.Pincode, a.ID)
	return err
}

func (r *AddressRepo) Delete(q sqlx.Ext, id string) error {
	_, err := q.Exec(`DELETE FROM addresses WHERE id = ?`, id)
	return err
}
