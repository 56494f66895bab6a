// View types are the response payloads. Conversion from domain records is
// hand-written per entity rather than reflective mapping, so a renamed field
// is a compile error instead of a silently dropped one.
package services

import (
	"shopstack/internal/domain"
	"shopstack/internal/repos"
)

type ProductView struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	Image        string  `json:"image"`
	Description  string  `json:"description"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Discount     float64 `json:"discount"`
	SpecialPrice float64 `json:"specialPrice"`
}

func productView(p domain.Product) ProductView {
	return ProductView{
		ProductID:    p.ID,
		ProductName:  p.Name,
		Image:        p.Image,
		Description:  p.Description,
		Quantity:     p.Quantity,
		Price:        p.Price,
		Discount:     p.Discount,
		SpecialPrice: p.SpecialPrice,
	}
}

// lineView shapes a cart line as a product summary with the line quantity
// overlaid where stock would otherwise be.
func lineView(l repos.CartLine) ProductView {
	return ProductView{
		ProductID:    l.ProductID,
		ProductName:  l.Name,
		Image:        l.Image,
		Description:  l.Description,
		Quantity:     l.Quantity,
		Price:        l.Price,
		Discount:     l.Discount,
		SpecialPrice: l.SpecialPrice,
	}
}

type CartView struct {
	CartID     string        `json:"cartId"`
	TotalPrice float64       `json:"totalPrice"`
	Products   []ProductView `json:"products"`
}

type CategoryView struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

func categoryView(c domain.Category) CategoryView {
	return CategoryView{CategoryID: c.ID, CategoryName: c.Name}
}

type AddressView struct {
	AddressID    string `json:"addressId"`
	Street       string `json:"street"`
	BuildingName string `json:"buildingName"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	Pincode      string `json:"pincode"`
}

func addressView(a domain.Address) AddressView {
	return AddressView{
		AddressID:    a.ID,
		Street:       a.Street,
		BuildingName: a.BuildingName,
		City:         a.City,
		State:        a.State,
		Country:      a.Country,
		Pincode:      a.Pincode,
	}
}

type PaymentView struct {
	PaymentID         string `json:"paymentId"`
	PaymentMethod     string `json:"paymentMethod"`
	PgName            string `json:"pgName"`
	PgPaymentID       string `json:"pgPaymentId"`
	PgStatus          string `json:"pgStatus"`
	PgResponseMessage string `json:"pgResponseMessage"`
}

func paymentView(p domain.Payment) PaymentView {
	return PaymentView{
		PaymentID:         p.ID,
		PaymentMethod:     p.PaymentMethod,
		PgName:            p.PgName,
		PgPaymentID:       p.PgPaymentID,
		PgStatus:          p.PgStatus,
		PgResponseMessage: p.PgResponseMessage,
	}
}

type OrderItemView struct {
	OrderItemID         string      `json:"orderItemId"`
	Product             ProductView `json:"product"`
	Quantity            int         `json:"quantity"`
	Discount            float64     `json:"discount"`
	OrderedProductPrice float64     `json:"orderedProductPrice"`
}

type OrderView struct {
	OrderID     string          `json:"orderId"`
	Email       string          `json:"email"`
	OrderItems  []OrderItemView `json:"orderItems"`
	OrderDate   string          `json:"orderDate"`
	Payment     PaymentView     `json:"payment"`
	TotalAmount float64         `json:"totalAmount"`
	OrderStatus string          `json:"orderStatus"`
	AddressID   string          `json:"addressId"`
}

type UserView struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

func userView(u domain.User) UserView {
	return UserView{UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// Paged response envelope shared by catalog listings.
type CategoryPage struct {
	Content       []CategoryView `json:"content"`
	PageNumber    int            `json:"pageNumber"`
	PageSize      int            `json:"pageSize"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	LastPage      bool           `json:"lastPage"`
}

type ProductPage struct {
	Content       []ProductView `json:"content"`
	PageNumber    int           `json:"pageNumber"`
	PageSize      int           `json:"pageSize"`
	TotalElements int64         `json:"totalElements"`
	TotalPages    int           `json:"totalPages"`
	LastPage      bool          `json:"lastPage"`
}

func totalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
