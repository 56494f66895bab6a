package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"shopstack/internal/apperr"
	"shopstack/internal/domain"
	"shopstack/internal/repos"
)

// AddressService is the per-user address book.
type AddressService struct {
	DB    *sqlx.DB
	Addrs *repos.AddressRepo
}

func NewAddressService(db *sqlx.DB, addrs *repos.AddressRepo) *AddressService {
	return &AddressService{DB: db, Addrs: addrs}
}

// AddressInput carries the validated address fields.
type AddressInput struct {
	Street       string `json:"street"`
	BuildingName string `json:"buildingName"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	Pincode      string `json:"pincode"`
}

// CreateAddress rejects a new address when ANY single field matches one of
// the user's existing addresses (OR across fields, not full-record
// equality). Deliberately loose and preserved as observed behavior; pending
// product-owner confirmation.
func (s *AddressService) CreateAddress(email string, in AddressInput) (AddressView, error) {
	tx, err := s.DB.Beginx()
	if err != nil {
		return AddressView{}, err
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := s.Addrs.ByEmail(tx, email)
	if err != nil {
		return AddressView{}, err
	}
	for _, a := range existing {
		if a.Pincode == in.Pincode || a.Street == in.Street || a.City == in.City ||
			a.State == in.State || a.Country == in.Country || a.BuildingName == in.BuildingName {
			return AddressView{}, apperr.Business("Address already exists")
		}
	}

	addr := domain.Address{
		ID:           uuid.NewString(),
		Street:       in.Street,
		BuildingName: in.BuildingName,
		City:         in.City,
		State:        in.State,
		Country:      in.Country,
		Pincode:      in.Pincode,
		Email:        email,
	}
	if err := s.Addrs.Insert(tx, addr); err != nil {
		return AddressView{}, err
	}
	return addressView(addr), tx.Commit()
}

func (s *AddressService) GetAddresses() ([]AddressView, error) {
	addrs, err := s.Addrs.All()
	if err != nil {
		return nil, err
	}
	views := make([]AddressView, 0, len(addrs))
	for _, a := range addrs {
		views = append(views, addressView(a))
	}
	return views, nil
}

func (s *AddressService) GetAddressByID(id string) (AddressView, error) {
	a, err := s.Addrs.ByID(s.DB, id)
	if errors.Is(err, sql.ErrNoRows) {
		return AddressView{}, apperr.NotFound("Address", "addressId", id)
	}
	if err != nil {
		return AddressView{}, err
	}
	return addressView(a), nil
}

func (s *AddressService) GetUserAddresses(email string) ([]AddressView, error) {
	addrs, err := s.Addrs.ByEmail(s.DB, email)
	if err != nil {
		return nil, err
	}
	views := make([]AddressView, 0, len(addrs))
	for _, a := range addrs {
		views = append(views, addressView(a))
	}
	return views, nil
}

// UpdateAddress replaces all fields; ownership stays with the same user, so
// re-syncing the owner's collection is the row update itself.
func (s *AddressService) UpdateAddress(id string, in AddressInput) (AddressView, error) {
	tx, err := s.DB.Beginx()
	if err != nil {
		return AddressView{}, err
	}
	defer func() { _ = tx.Rollback() }()

	a, err := s.Addrs.ByID(tx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return AddressView{}, apperr.NotFound("Address", "addressId", id)
	}
	if err != nil {
		return AddressView{}, err
	}

	a.Street = in.Street
	a.BuildingName = in.BuildingName
	a.City = in.City
	a.State = in.State
	a.Country = in.Country
	a.Pincode = in.Pincode
	if err := s.Addrs.Update(tx, a); err != nil {
		return AddressView{}, err
	}
	return addressView(a), tx.Commit()
}

// DeleteAddress removes the address from the owning user's collection and
// deletes the row in the same transaction.
func (s *AddressService) DeleteAddress(id string) (string, error) {
	tx, err := s.DB.Beginx()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	a, err := s.Addrs.ByID(tx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.NotFound("Address", "addressId", id)
	}
	if err != nil {
		return "", err
	}
	if err := s.Addrs.Delete(tx, a.ID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Address with addressId %s deleted successfully", id), tx.Commit()
}
