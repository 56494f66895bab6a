package services_test

import (
	"testing"

	"shopstack/internal/apperr"
	"shopstack/internal/repos"
	"shopstack/internal/services"
)

func sampleAddress() services.AddressInput {
	return services.AddressInput{
		Street:       "11 Baker Street",
		BuildingName: "Sherlock Court",
		City:         "London City",
		State:        "Greater London",
		Country:      "United Kingdom",
		Pincode:      "NW1 6XE",
	}
}

func TestCreateAddress(t *testing.T) {
	db := memdb(t)
	svc := services.NewAddressService(db, repos.NewAddressRepo(db))

	av, err := svc.CreateAddress("alice@example.com", sampleAddress())
	if err != nil {
		t.Fatal(err)
	}
	if av.AddressID == "" || av.City != "London City" {
		t.Fatalf("bad view: %+v", av)
	}

	own, err := svc.GetUserAddresses("alice@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(own) != 1 {
		t.Fatalf("want 1 address, got %d", len(own))
	}
}

// Any single matching field marks the address as a duplicate for that user.
func TestCreateAddress_DuplicateByPincodeOnly(t *testing.T) {
	db := memdb(t)
	svc := services.NewAddressService(db, repos.NewAddressRepo(db))

	if _, err := svc.CreateAddress("alice@example.com", sampleAddress()); err != nil {
		t.Fatal(err)
	}

	second := services.AddressInput{
		Street:       "99 Oxford Road",
		BuildingName: "Watson House",
		City:         "Manchester",
		State:        "Greater Manchester",
		Country:      "England UK",
		Pincode:      "NW1 6XE", // same pincode, everything else differs
	}
	if _, err := svc.CreateAddress("alice@example.com", second); !apperr.IsBusiness(err) {
		t.Fatalf("want business error, got %v", err)
	}

	// A different user may reuse the same fields freely.
	if _, err := svc.CreateAddress("bob@example.com", sampleAddress()); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateAddress(t *testing.T) {
	db := memdb(t)
	svc := services.NewAddressService(db, repos.NewAddressRepo(db))

	av, err := svc.CreateAddress("alice@example.com", sampleAddress())
	if err != nil {
		t.Fatal(err)
	}

	in := sampleAddress()
	in.City = "Birmingham"
	got, err := svc.UpdateAddress(av.AddressID, in)
	if err != nil {
		t.Fatal(err)
	}
	if got.City != "Birmingham" || got.AddressID != av.AddressID {
		t.Fatalf("bad view: %+v", got)
	}

	if _, err := svc.UpdateAddress("missing", in); !apperr.IsNotFound(err) {
		t.Fatalf("want not-found error, got %v", err)
	}
}

func TestDeleteAddress(t *testing.T) {
	db := memdb(t)
	svc := services.NewAddressService(db, repos.NewAddressRepo(db))

	av, err := svc.CreateAddress("alice@example.com", sampleAddress())
	if err != nil {
		t.Fatal(err)
	}
	msg, err := svc.DeleteAddress(av.AddressID)
	if err != nil {
		t.Fatal(err)
	}
	if msg == "" {
		t.Fatal("want deletion message")
	}
	if _, err := svc.GetAddressByID(av.AddressID); !apperr.IsNotFound(err) {
		t.Fatalf("want not-found after delete, got %v", err)
	}
}
