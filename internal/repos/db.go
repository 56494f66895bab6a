package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string, seedDemo bool) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	if seedDemo {
		if err := seedCatalog(db); err != nil {
			return nil, err
		}
		if err := seedUsers(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// EnsureSchema creates all tables. Exported so tests can bootstrap a
// :memory: database against the exact production schema.
func EnsureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  description TEXT,
  image TEXT NOT NULL DEFAULT 'default.png',
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  price NUMERIC NOT NULL CHECK (price >= 0),
  discount NUMERIC NOT NULL DEFAULT 0 CHECK (discount >= 0 AND discount <= 100),
  special_price NUMERIC NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name ON products(LOWER(name));

-- One cart per user is enforced by lookup-by-email in the cart engine,
-- deliberately not by a UNIQUE constraint.
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  total_price NUMERIC NOT NULL DEFAULT 0,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_carts_email ON carts(LOWER(email));

CREATE TABLE IF NOT EXISTS cart_items(
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  product_price NUMERIC NOT NULL,
  discount NUMERIC NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT,
  UNIQUE (cart_id, product_id)
);
CREATE INDEX IF NOT EXISTS idx_cart_items_product ON cart_items(product_id);

CREATE TABLE IF NOT EXISTS addresses(
  id TEXT PRIMARY KEY,
  street TEXT NOT NULL,
  building_name TEXT NOT NULL,
  city TEXT NOT NULL,
  state TEXT NOT NULL,
  country TEXT NOT NULL,
  pincode TEXT NOT NULL,
  email TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_addresses_email ON addresses(LOWER(email));

CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  address_id TEXT NOT NULL REFERENCES addresses(id),
  order_date TEXT NOT NULL,
  total_amount NUMERIC NOT NULL,
  status TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(LOWER(email));

CREATE TABLE IF NOT EXISTS order_items(
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  quantity INTEGER NOT NULL,
  discount NUMERIC NOT NULL DEFAULT 0,
  ordered_product_price NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);

CREATE TABLE IF NOT EXISTS payments(
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL UNIQUE REFERENCES orders(id) ON DELETE CASCADE,
  payment_method TEXT NOT NULL,
  pg_name TEXT,
  pg_payment_id TEXT,
  pg_status TEXT,
  pg_response_message TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

// seedCatalog inserts demo categories and products if the catalog is empty.
func seedCatalog(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO categories(id,name) VALUES
	  ('electronics','Electronics'),
	  ('books','Books'),
	  ('apparel','Apparel')`)

	tx.MustExec(`INSERT INTO products(id,category_id,name,description,quantity,price,discount,special_price) VALUES
	  ('prod-keyboard','electronics','Mechanical Keyboard','Tenkeyless, brown switches',25,89.99,10,80.991),
	  ('prod-headset','electronics','Wireless Headset','Closed-back, 30h battery',12,129.00,0,129.00),
	  ('prod-gopher','books','The Go Programming Language','Donovan & Kernighan',40,39.95,5,37.9525),
	  ('prod-hoodie','apparel','Logo Hoodie','Heavyweight cotton blend',60,54.50,20,43.60)`)

	return tx.Commit()
}

// seedUsers ensures one USER and one ADMIN exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-demo", "demo@shopstack.test", "Demo", "USER", "Passw0rd!"),
		mk("u-admin", "admin@shopstack.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
