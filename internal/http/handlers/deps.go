package handlers

import (
	"shopstack/internal/config"
	"shopstack/internal/repos"
	"shopstack/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth            *services.AuthService
	AuthHandler     *AuthHandler
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	CartHandler     *CartHandler
	OrderHandler    *OrderHandler
	AddressHandler  *AddressHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	userRepo := repos.NewUserRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	addrRepo := repos.NewAddressRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	cartSvc := services.NewCartService(db, cartRepo, prodRepo)
	catalogSvc := services.NewCatalogService(db, catRepo, prodRepo, cartRepo, cartSvc)
	addressSvc := services.NewAddressService(db, addrRepo)
	orderSvc := services.NewOrderService(db, cartRepo, prodRepo, addrRepo, orderRepo, cartSvc)

	return &Deps{
		Auth:            authSvc,
		AuthHandler:     &AuthHandler{Auth: authSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		OrderHandler:    &OrderHandler{Order: orderSvc},
		AddressHandler:  &AddressHandler{Addresses: addressSvc},
	}
}
