package migrations

import (
	"database/sql"
	"time"
)

func execWithRetry(db *sql.DB, query string, retries int) error {
	_, err := db.Exec(query)
	if err != nil {
		for i := 0; i < retries; i++ {
			time.Sleep(1 * time.Second)
			_, err = db.Exec(query)
			if err == nil {
				break
			}
		}
	}
	return err
}

// AutoMigratePOS creates the menu, order and order item tables if they do
// not exist.
func AutoMigratePOS(retries int, db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
			id INT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price_in_paise INT NOT NULL,
			category VARCHAR(100),
			stock INT NOT NULL DEFAULT 50,
			is_available TINYINT(1) NOT NULL DEFAULT 1,
			CHECK (price_in_paise >= 0),
			CHECK (stock >= 0)
		);`,
		`CREATE TABLE IF NOT EXISTS orders (
			id INT AUTO_INCREMENT PRIMARY KEY,
			order_uuid VARCHAR(36) UNIQUE,
			total_amount_in_paise INT NOT NULL,
			payment_mode VARCHAR(50) NOT NULL,
			order_status VARCHAR(20) NOT NULL DEFAULT 'COMPLETED',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id INT AUTO_INCREMENT PRIMARY KEY,
			order_id INT NOT NULL,
			menu_item_id INT NOT NULL,
			item_name VARCHAR(255) NOT NULL,
			quantity INT NOT NULL,
			price_at_sale_in_paise INT NOT NULL,
			FOREIGN KEY (order_id) REFERENCES orders(id),
			FOREIGN KEY (menu_item_id) REFERENCES menu_items(id)
		);`,
	}
	for _, q := range queries {
		if err := execWithRetry(db, q, retries); err != nil {
			return err
		}
	}
	return nil
}

// AutoMigrateCanteen creates the dish and daily record tables if they do
// not exist.
func AutoMigrateCanteen(retries int, db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS dishes (
			dish_id INT AUTO_INCREMENT PRIMARY KEY,
			dish_name VARCHAR(255) NOT NULL,
			price_per_unit DOUBLE NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS daily_records (
			record_id INT AUTO_INCREMENT PRIMARY KEY,
			date VARCHAR(20) NOT NULL,
			dish_id INT,
			quantity_prepared DOUBLE,
			quantity_consumed DOUBLE,
			special_event VARCHAR(255),
			FOREIGN KEY (dish_id) REFERENCES dishes(dish_id)
		);`,
	}
	for _, q := range queries {
		if err := execWithRetry(db, q, retries); err != nil {
			return err
		}
	}
	return nil
}

// AutoMigrateBusiness creates the transaction and expense tables if they
// do not exist.
func AutoMigrateBusiness(retries int, db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id INT AUTO_INCREMENT PRIMARY KEY,
			date VARCHAR(20) NOT NULL,
			item VARCHAR(255) NOT NULL,
			category VARCHAR(100),
			price DOUBLE NOT NULL,
			cost DOUBLE NOT NULL,
			customer VARCHAR(255)
		);`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id INT AUTO_INCREMENT PRIMARY KEY,
			date VARCHAR(20) NOT NULL,
			expense DOUBLE NOT NULL
		);`,
	}
	for _, q := range queries {
		if err := execWithRetry(db, q, retries); err != nil {
			return err
		}
	}
	return nil
}

// AutoMigrateSurplus creates the threshold config and surplus listing
// tables if they do not exist.
func AutoMigrateSurplus(retries int, db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS threshold_configs (
			id INT AUTO_INCREMENT PRIMARY KEY,
			item_name VARCHAR(255) NOT NULL UNIQUE,
			warn_limit DOUBLE NOT NULL,
			auto_notify TINYINT(1) NOT NULL DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS surplus_listings (
			id INT AUTO_INCREMENT PRIMARY KEY,
			item_name VARCHAR(255) NOT NULL,
			qty_kg DOUBLE NOT NULL,
			lat DOUBLE,
			lng DOUBLE,
			is_urgent TINYINT(1) NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'AVAILABLE',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
	}
	for _, q := range queries {
		if err := execWithRetry(db, q, retries); err != nil {
			return err
		}
	}
	return nil
}
