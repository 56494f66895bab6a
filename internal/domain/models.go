package domain

type Category struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

type Product struct {
	ID           string  `db:"id"`
	CategoryID   string  `db:"category_id"`
	Name         string  `db:"name"`
	Description  string  `db:"description"`
	Image        string  `db:"image"`
	Quantity     int     `db:"quantity"` // on-hand stock
	Price        float64 `db:"price"`
	Discount     float64 `db:"discount"` // percent
	SpecialPrice float64 `db:"special_price"`
	CreatedAt    string  `db:"created_at"`
	UpdatedAt    string  `db:"updated_at"`
}

// Cart is one per user, resolved by email. TotalPrice is denormalized and
// maintained incrementally on every mutation.
type Cart struct {
	ID         string  `db:"id"`
	Email      string  `db:"email"`
	TotalPrice float64 `db:"total_price"`
	UpdatedAt  string  `db:"updated_at"`
}

// CartItem snapshots the product's special price and discount at add time;
// it is not live-linked to later catalog price changes.
type CartItem struct {
	ID           string  `db:"id"`
	CartID       string  `db:"cart_id"`
	ProductID    string  `db:"product_id"`
	Quantity     int     `db:"quantity"`
	ProductPrice float64 `db:"product_price"`
	Discount     float64 `db:"discount"`
}

type Address struct {
	ID           string `db:"id"`
	Street       string `db:"street"`
	BuildingName string `db:"building_name"`
	City         string `db:"city"`
	State        string `db:"state"`
	Country      string `db:"country"`
	Pincode      string `db:"pincode"`
	Email        string `db:"email"` // owning user
}

type Order struct {
	ID          string  `db:"id"`
	Email       string  `db:"email"`
	AddressID   string  `db:"address_id"`
	OrderDate   string  `db:"order_date"`
	TotalAmount float64 `db:"total_amount"`
	Status      string  `db:"status"`
}

type OrderItem struct {
	ID                  string  `db:"id"`
	OrderID             string  `db:"order_id"`
	ProductID           string  `db:"product_id"`
	Quantity            int     `db:"quantity"`
	Discount            float64 `db:"discount"`
	OrderedProductPrice float64 `db:"ordered_product_price"`
}

type Payment struct {
	ID                string `db:"id"`
	OrderID           string `db:"order_id"`
	PaymentMethod     string `db:"payment_method"`
	PgName            string `db:"pg_name"`
	PgPaymentID       string `db:"pg_payment_id"`
	PgStatus          string `db:"pg_status"`
	PgResponseMessage string `db:"pg_response_message"`
}
