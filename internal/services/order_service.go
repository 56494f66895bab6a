package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"shopstack/internal/apperr"
	"shopstack/internal/domain"
	"shopstack/internal/repos"
)

// OrderStatusPlaced is the fixed initial status of a freshly placed order.
const OrderStatusPlaced = "Payment Accepted"

// OrderService converts a user's cart into an immutable order aggregate.
type OrderService struct {
	DB     *sqlx.DB
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Addrs  *repos.AddressRepo
	Orders *repos.OrderRepo
	Cart   *CartService
}

func NewOrderService(db *sqlx.DB, carts *repos.CartRepo, prods *repos.ProductRepo,
	addrs *repos.AddressRepo, orders *repos.OrderRepo, cart *CartService) *OrderService {
	return &OrderService{DB: db, Carts: carts, Prods: prods, Addrs: addrs, Orders: orders, Cart: cart}
}

// PlaceOrder runs the whole placement in one transaction: order, payment and
// order items are created together or not at all, and each stock decrement
// plus its cart-line removal commits with them.
func (s *OrderService) PlaceOrder(email, addressID, paymentMethod, pgName, pgPaymentID, pgStatus, pgMessage string) (OrderView, error) {
	tx, err := s.DB.Beginx()
	if err != nil {
		return OrderView{}, err
	}
	defer func() { _ = tx.Rollback() }()

	cart, err := s.Carts.ByEmail(tx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderView{}, apperr.NotFound("Cart", "email", email)
	}
	if err != nil {
		return OrderView{}, err
	}

	addr, err := s.Addrs.ByID(tx, addressID)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderView{}, apperr.NotFound("Address", "addressId", addressID)
	}
	if err != nil {
		return OrderView{}, err
	}

	order := domain.Order{
		ID:          uuid.NewString(),
		Email:       email,
		AddressID:   addr.ID,
		OrderDate:   time.Now().Format("2006-01-02"),
		TotalAmount: cart.TotalPrice,
		Status:      OrderStatusPlaced,
	}
	if err := s.Orders.Insert(tx, order); err != nil {
		return OrderView{}, err
	}

	payment := domain.Payment{
		ID:                uuid.NewString(),
		OrderID:           order.ID,
		PaymentMethod:     paymentMethod,
		PgName:            pgName,
		PgPaymentID:       pgPaymentID,
		PgStatus:          pgStatus,
		PgResponseMessage: pgMessage,
	}
	if err := s.Orders.InsertPayment(tx, payment); err != nil {
		return OrderView{}, err
	}

	items, err := s.Carts.Items(tx, cart.ID)
	if err != nil {
		return OrderView{}, err
	}
	if len(items) == 0 {
		// The rollback discards the order and payment rows written above.
		return OrderView{}, apperr.Business("No item found in the cart")
	}

	itemViews := make([]OrderItemView, 0, len(items))
	for _, it := range items {
		p, err := s.Prods.Get(tx, it.ProductID)
		if err != nil {
			return OrderView{}, err
		}

		oi := domain.OrderItem{
			ID:                  uuid.NewString(),
			OrderID:             order.ID,
			ProductID:           it.ProductID,
			Quantity:            it.Quantity,
			Discount:            it.Discount,
			OrderedProductPrice: it.ProductPrice,
		}
		if err := s.Orders.InsertItem(tx, oi); err != nil {
			return OrderView{}, err
		}

		if err := s.Prods.DecrementStock(tx, it.ProductID, it.Quantity); err != nil {
			return OrderView{}, apperr.Business(
				"Insufficient stock for %s: only %d available", p.Name, p.Quantity)
		}
		if err := s.Cart.removeItem(tx, cart.ID, it); err != nil {
			return OrderView{}, err
		}

		pv := productView(p)
		pv.Quantity = p.Quantity - it.Quantity
		itemViews = append(itemViews, OrderItemView{
			OrderItemID:         oi.ID,
			Product:             pv,
			Quantity:            oi.Quantity,
			Discount:            oi.Discount,
			OrderedProductPrice: oi.OrderedProductPrice,
		})
	}

	if err := tx.Commit(); err != nil {
		return OrderView{}, err
	}

	return OrderView{
		OrderID:     order.ID,
		Email:       order.Email,
		OrderItems:  itemViews,
		OrderDate:   order.OrderDate,
		Payment:     paymentView(payment),
		TotalAmount: order.TotalAmount,
		OrderStatus: order.Status,
		AddressID:   addr.ID,
	}, nil
}

// GetOrder returns one of the caller's orders.
func (s *OrderService) GetOrder(email, orderID string) (OrderView, error) {
	order, err := s.Orders.ByID(s.DB, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderView{}, apperr.NotFound("Order", "orderId", orderID)
	}
	if err != nil {
		return OrderView{}, err
	}
	// Orders are scoped to their owner; a foreign id behaves like a miss.
	if order.Email != email {
		return OrderView{}, apperr.NotFound("Order", "orderId", orderID)
	}
	return s.orderView(order)
}

// OrderHistory lists the caller's orders, newest first.
func (s *OrderService) OrderHistory(email string) ([]OrderView, error) {
	orders, err := s.Orders.ListByEmail(email)
	if err != nil {
		return nil, err
	}
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		v, err := s.orderView(o)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *OrderService) orderView(order domain.Order) (OrderView, error) {
	items, err := s.Orders.Items(s.DB, order.ID)
	if err != nil {
		return OrderView{}, err
	}
	payment, err := s.Orders.Payment(s.DB, order.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return OrderView{}, err
	}

	itemViews := make([]OrderItemView, 0, len(items))
	for _, it := range items {
		var pv ProductView
		if p, err := s.Prods.Get(s.DB, it.ProductID); err == nil {
			pv = productView(p)
			pv.Quantity = it.Quantity
		} else {
			pv = ProductView{ProductID: it.ProductID, Quantity: it.Quantity}
		}
		itemViews = append(itemViews, OrderItemView{
			OrderItemID:         it.ID,
			Product:             pv,
			Quantity:            it.Quantity,
			Discount:            it.Discount,
			OrderedProductPrice: it.OrderedProductPrice,
		})
	}

	return OrderView{
		OrderID:     order.ID,
		Email:       order.Email,
		OrderItems:  itemViews,
		OrderDate:   order.OrderDate,
		Payment:     paymentView(payment),
		TotalAmount: order.TotalAmount,
		OrderStatus: order.Status,
		AddressID:   order.AddressID,
	}, nil
}
