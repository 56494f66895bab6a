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

// CartService owns the cart and cart-item aggregates. Every mutation runs in
// one transaction so the denormalized cart total is never observed out of
// sync with the line items.
type CartService struct {
	DB    *sqlx.DB
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(db *sqlx.DB, carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{DB: db, Carts: carts, Prods: prods}
}

// ensureCart resolves the caller's cart by email, lazily creating it.
func (s *CartService) ensureCart(q sqlx.Ext, email string) (domain.Cart, error) {
	cart, err := s.Carts.ByEmail(q, email)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, err
	}
	cart = domain.Cart{ID: uuid.NewString(), Email: email}
	if err := s.Carts.Insert(q, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (s *CartService) AddProductToCart(email, productID string, qty int) (CartView, error) {
	tx, err := s.DB.Beginx()
	if err != nil {
		return CartView{}, err
	}
	defer func() { _ = tx.Rollback() }()

	cart, err := s.ensureCart(tx, email)
	if err != nil {
		return CartView{}, err
	}

	p, err := s.Prods.Get(tx, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return CartView{}, apperr.NotFound("Product", "productId", productID)
	}
	if err != nil {
		return CartView{}, err
	}

	if _, err := s.Carts.Item(tx, cart.ID, productID); err == nil {
		return CartView{}, apperr.Business("Product %s already exists in the cart", p.Name)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return CartView{}, err
	}

	if p.Quantity < qty {
		return CartView{}, apperr.Business(
			"Please make an order of %s less than or equal to the quantity %d", p.Name, p.Quantity)
	}

	item := domain.CartItem{
		ID:           uuid.NewString(),
		CartID:       cart.ID,
		ProductID:    productID,
		Quantity:     qty,
		ProductPrice: p.SpecialPrice,
		Discount:     p.Discount,
	}
	if err := s.Carts.InsertItem(tx, item); err != nil {
		return CartView{}, err
	}
	if err := s.Carts.AddToTotal(tx, cart.ID, p.SpecialPrice*float64(qty)); err != nil {
		return CartView{}, err
	}

	view, err := s.cartView(tx, cart.ID)
	if err != nil {
		return CartView{}, err
	}
	return view, tx.Commit()
}

// UpdateProductQuantityInCart adjusts the caller's own cart line by delta.
// The stored unit price moves to the product's current special price and the
// total is adjusted by delta x new price only; the pre-existing quantity is
// not prorated at its old price. Preserved behavior.
func (s *CartService) UpdateProductQuantityInCart(email, productID string, delta int) (CartView, error) {
	tx, err := s.DB.Beginx()
	if err != nil {
		return CartView{}, err
	}
	defer func() { _ = tx.Rollback() }()

	cart, err := s.Carts.ByEmail(tx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return CartView{}, apperr.NotFound("Cart", "email", email)
	}
	if err != nil {
		return CartView{}, err
	}

	p, err := s.Prods.Get(tx, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return CartView{}, apperr.NotFound("Product", "productId", productID)
	}
	if err != nil {
		return CartView{}, err
	}
	if p.Quantity == 0 {
		return CartView{}, apperr.Business("%s is not available", p.Name)
	}
	if delta > p.Quantity {
		return CartView{}, apperr.Business(
			"Please make an order of %s less than or equal to the quantity %d", p.Name, p.Quantity)
	}

	item, err := s.Carts.Item(tx, cart.ID, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return CartView{}, apperr.Business("Product %s does not exist in the cart", p.Name)
	}
	if err != nil {
		return CartView{}, err
	}

	newQty := item.Quantity + delta
	if newQty < 0 {
		return CartView{}, apperr.Business("The resulting quantity cannot be negative")
	}

	if newQty == 0 {
		if err := s.removeItem(tx, cart.ID, item); err != nil {
			return CartView{}, err
		}
	} else {
		item.Quantity = newQty
		item.ProductPrice = p.SpecialPrice
		item.Discount = p.Discount
		if err := s.Carts.UpdateItem(tx, item); err != nil {
			return CartView{}, err
		}
		if err := s.Carts.AddToTotal(tx, cart.ID, p.SpecialPrice*float64(delta)); err != nil {
			return CartView{}, err
		}
	}

	view, err := s.cartView(tx, cart.ID)
	if err != nil {
		return CartView{}, err
	}
	return view, tx.Commit()
}

// removeItem deletes a line and reverses its contribution to the cart total.
// Shared by quantity-to-zero, explicit removal, product deletion and order
// placement; callers supply the transaction.
func (s *CartService) removeItem(q sqlx.Ext, cartID string, it domain.CartItem) error {
	if err := s.Carts.AddToTotal(q, cartID, -(it.ProductPrice * float64(it.Quantity))); err != nil {
		return err
	}
	return s.Carts.DeleteItem(q, cartID, it.ProductID)
}

func (s *CartService) DeleteProductFromCart(cartID, productID string) (string, error) {
	tx, err := s.DB.Beginx()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := s.Carts.ByID(tx, cartID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperr.NotFound("Cart", "cartId", cartID)
		}
		return "", err
	}

	item, err := s.Carts.Item(tx, cartID, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.Business("Product %s does not exist in the cart", productID)
	}
	if err != nil {
		return "", err
	}

	name := productID
	if p, err := s.Prods.Get(tx, productID); err == nil {
		name = p.Name
	}

	if err := s.removeItem(tx, cartID, item); err != nil {
		return "", err
	}
	return fmt.Sprintf("Product %s has been removed from the cart", name), tx.Commit()
}

// repriceItem moves one cart line to the product's current special price and
// fixes the cart total by the difference. Quantity is unchanged.
func (s *CartService) repriceItem(q sqlx.Ext, cartID, productID string) error {
	p, err := s.Prods.Get(q, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("Product", "productId", productID)
	}
	if err != nil {
		return err
	}

	item, err := s.Carts.Item(q, cartID, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Business("Product %s is not available in the cart", p.Name)
	}
	if err != nil {
		return err
	}

	delta := (p.SpecialPrice - item.ProductPrice) * float64(item.Quantity)
	item.ProductPrice = p.SpecialPrice
	if err := s.Carts.UpdateItem(q, item); err != nil {
		return err
	}
	return s.Carts.AddToTotal(q, cartID, delta)
}

// UpdateProductInCarts re-prices an existing line item in one cart to the
// product's current special price, after an admin price edit.
func (s *CartService) UpdateProductInCarts(cartID, productID string) error {
	tx, err := s.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := s.Carts.ByID(tx, cartID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("Cart", "cartId", cartID)
		}
		return err
	}
	if err := s.repriceItem(tx, cartID, productID); err != nil {
		return err
	}
	return tx.Commit()
}

// FindAllCarts is the administrative listing of every cart.
func (s *CartService) FindAllCarts() ([]CartView, error) {
	carts, err := s.Carts.All()
	if err != nil {
		return nil, err
	}
	if len(carts) == 0 {
		return nil, apperr.Business("No carts exist")
	}
	views := make([]CartView, 0, len(carts))
	for _, c := range carts {
		v, err := s.cartView(s.DB, c.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *CartService) GetCart(email, cartID string) (CartView, error) {
	cart, err := s.Carts.ByEmailAndID(s.DB, email, cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return CartView{}, apperr.NotFound("Cart", "email", email)
	}
	if err != nil {
		return CartView{}, err
	}
	return s.cartView(s.DB, cart.ID)
}

// GetUserCart resolves the caller's own cart by email.
func (s *CartService) GetUserCart(email string) (CartView, error) {
	cart, err := s.Carts.ByEmail(s.DB, email)
	if errors.Is(err, sql.ErrNoRows) {
		return CartView{}, apperr.NotFound("Cart", "email", email)
	}
	if err != nil {
		return CartView{}, err
	}
	return s.cartView(s.DB, cart.ID)
}

// cartView re-reads the cart so the total reflects mutations made earlier in
// the same transaction.
func (s *CartService) cartView(q sqlx.Ext, cartID string) (CartView, error) {
	cart, err := s.Carts.ByID(q, cartID)
	if err != nil {
		return CartView{}, err
	}
	lines, err := s.Carts.Lines(q, cartID)
	if err != nil {
		return CartView{}, err
	}
	products := make([]ProductView, 0, len(lines))
	for _, l := range lines {
		products = append(products, lineView(l))
	}
	return CartView{CartID: cart.ID, TotalPrice: cart.TotalPrice, Products: products}, nil
}
