package entity

// MenuItem is a catalog row. Price is kept in paise internally and only
// converted to rupees at the API boundary.
type MenuItem struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	PriceInPaise int    `json:"price_in_paise"`
	Category     string `json:"category"`
	Stock        int    `json:"stock"`
	IsAvailable  bool   `json:"is_available"`
}

type CartLine struct {
	ID  int `json:"id"`
	Qty int `json:"qty"`
}

type CheckoutRequest struct {
	Cart        []CartLine `json:"cart"`
	PaymentMode string     `json:"paymentMode"`
}

type Order struct {
	ID           int         `json:"id"`
	OrderUUID    string      `json:"order_uuid"`
	TotalInPaise int         `json:"total_in_paise"`
	PaymentMode  string      `json:"payment_mode"`
	Status       string      `json:"status"` // "PENDING" or "COMPLETED"
	Items        []OrderItem `json:"items"`
}

type OrderItem struct {
	ID                 int    `json:"id"`
	OrderID            int    `json:"order_id"`
	MenuItemID         int    `json:"menu_item_id"`
	ItemName           string `json:"item_name"`
	Quantity           int    `json:"quantity"`
	PriceAtSaleInPaise int    `json:"price_at_sale_in_paise"`
}

/*
MySQL tables

CREATE TABLE menu_items (
	id INT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	price_in_paise INT NOT NULL CHECK (price_in_paise >= 0),
	category VARCHAR(100),
	stock INT NOT NULL DEFAULT 50 CHECK (stock >= 0),
	is_available TINYINT(1) NOT NULL DEFAULT 1
);

CREATE TABLE orders (
	id INT AUTO_INCREMENT PRIMARY KEY,
	order_uuid VARCHAR(36) UNIQUE,
	total_amount_in_paise INT NOT NULL,
	payment_mode VARCHAR(50) NOT NULL,
	order_status VARCHAR(20) NOT NULL DEFAULT 'COMPLETED',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE order_items (
	id INT AUTO_INCREMENT PRIMARY KEY,
	order_id INT NOT NULL REFERENCES orders(id),
	menu_item_id INT NOT NULL REFERENCES menu_items(id),
	item_name VARCHAR(255) NOT NULL,
	quantity INT NOT NULL,
	price_at_sale_in_paise INT NOT NULL
);
*/
