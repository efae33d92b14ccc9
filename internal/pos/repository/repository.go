package repository

import (
	"context"
	"database/sql"
	"errors"

	"foodiq/internal/pos/entity"
)

type POSRepository struct {
	db *sql.DB
}

func NewPOSRepository(db *sql.DB) *POSRepository {
	return &POSRepository{db}
}

// GetMenu returns every available menu item.
func (r *POSRepository) GetMenu(ctx context.Context) ([]entity.MenuItem, error) {
	query := `SELECT id, name, price_in_paise, category, stock FROM menu_items WHERE is_available = 1`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.MenuItem
	for rows.Next() {
		item := entity.MenuItem{IsAvailable: true}
		var category sql.NullString
		err := rows.Scan(&item.ID, &item.Name, &item.PriceInPaise, &category, &item.Stock)
		if err != nil {
			return nil, err
		}
		item.Category = category.String
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Checkout runs the whole sale as one transaction: create a PENDING order
// header, then per cart line lock the menu row, check stock, deduct it and
// snapshot the line, then finalize the order as COMPLETED. Any failure
// rolls back every write, including stock already deducted for earlier
// lines in the same cart.
func (r *POSRepository) Checkout(ctx context.Context, orderUUID string, cart []entity.CartLine, paymentMode string) (*entity.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	// No-op once committed.
	defer tx.Rollback()

	// Order header first, PENDING until the total is known.
	orderQuery := `INSERT INTO orders (order_uuid, total_amount_in_paise, payment_mode, order_status) VALUES (?, 0, ?, 'PENDING')`
	res, err := tx.ExecContext(ctx, orderQuery, orderUUID, paymentMode)
	if err != nil {
		return nil, err
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		ID:          int(orderID),
		OrderUUID:   orderUUID,
		PaymentMode: paymentMode,
		Status:      "PENDING",
	}

	totalPaise := 0
	for _, line := range cart {
		if line.Qty <= 0 {
			continue
		}

		// FOR UPDATE holds the row until commit so no concurrent
		// checkout can interleave between the stock check and the
		// deduction.
		var name string
		var pricePaise, stock int
		itemQuery := `SELECT name, price_in_paise, stock FROM menu_items WHERE id = ? FOR UPDATE`
		err := tx.QueryRowContext(ctx, itemQuery, line.ID).Scan(&name, &pricePaise, &stock)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, &entity.InvalidItemError{ItemID: line.ID}
			}
			return nil, err
		}

		if stock < line.Qty {
			return nil, &entity.InsufficientStockError{ItemName: name, Available: stock}
		}

		_, err = tx.ExecContext(ctx, `UPDATE menu_items SET stock = stock - ? WHERE id = ?`, line.Qty, line.ID)
		if err != nil {
			return nil, err
		}

		totalPaise += pricePaise * line.Qty

		itemInsert := `INSERT INTO order_items (order_id, menu_item_id, item_name, quantity, price_at_sale_in_paise) VALUES (?, ?, ?, ?, ?)`
		_, err = tx.ExecContext(ctx, itemInsert, orderID, line.ID, name, line.Qty, pricePaise)
		if err != nil {
			return nil, err
		}

		order.Items = append(order.Items, entity.OrderItem{
			OrderID:            int(orderID),
			MenuItemID:         line.ID,
			ItemName:           name,
			Quantity:           line.Qty,
			PriceAtSaleInPaise: pricePaise,
		})
	}

	finalize := `UPDATE orders SET total_amount_in_paise = ?, order_status = 'COMPLETED' WHERE id = ?`
	_, err = tx.ExecContext(ctx, finalize, totalPaise, orderID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	order.TotalInPaise = totalPaise
	order.Status = "COMPLETED"
	return order, nil
}

// GetOrderByID returns an order with its line items.
func (r *POSRepository) GetOrderByID(ctx context.Context, id int) (*entity.Order, error) {
	order := &entity.Order{}
	orderQuery := `SELECT id, order_uuid, total_amount_in_paise, payment_mode, order_status FROM orders WHERE id = ?`
	err := r.db.QueryRowContext(ctx, orderQuery, id).Scan(&order.ID, &order.OrderUUID, &order.TotalInPaise, &order.PaymentMode, &order.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrOrderNotFound
		}
		return nil, err
	}

	itemsQuery := `SELECT id, order_id, menu_item_id, item_name, quantity, price_at_sale_in_paise FROM order_items WHERE order_id = ?`
	rows, err := r.db.QueryContext(ctx, itemsQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item := entity.OrderItem{}
		err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.ItemName, &item.Quantity, &item.PriceAtSaleInPaise)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return order, nil
}
