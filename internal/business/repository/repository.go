package repository

import (
	"context"
	"database/sql"
	"strings"

	"foodiq/internal/business/entity"
	"foodiq/internal/stats"
)

type BusinessRepository struct {
	db *sql.DB
}

func NewBusinessRepository(db *sql.DB) *BusinessRepository {
	return &BusinessRepository{db}
}

// LoadTransactions reads every sale row, tolerating NULLs: missing
// category becomes "Uncategorized", missing customer "Anonymous",
// missing numbers zero. Rows with unparsable dates are dropped.
func (r *BusinessRepository) LoadTransactions(ctx context.Context) ([]entity.Transaction, error) {
	query := `SELECT date, item, category, price, cost, customer FROM transactions ORDER BY date ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []entity.Transaction
	for rows.Next() {
		var rawDate, item, category, customer sql.NullString
		var price, cost sql.NullFloat64
		if err := rows.Scan(&rawDate, &item, &category, &price, &cost, &customer); err != nil {
			return nil, err
		}

		date, ok := stats.ParseDate(rawDate.String)
		if !ok {
			continue
		}

		t := entity.Transaction{
			Date:     date,
			Item:     strings.TrimSpace(item.String),
			Category: strings.TrimSpace(category.String),
			Price:    price.Float64,
			Cost:     cost.Float64,
			Customer: strings.TrimSpace(customer.String),
		}
		if t.Category == "" {
			t.Category = "Uncategorized"
		}
		if t.Customer == "" {
			t.Customer = "Anonymous"
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

// InsertTransaction records one sale row.
func (r *BusinessRepository) InsertTransaction(ctx context.Context, t *entity.Transaction) error {
	query := `INSERT INTO transactions (date, item, category, price, cost, customer) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, t.Date.Format("2006-01-02"), t.Item, t.Category, t.Price, t.Cost, t.Customer)
	return err
}

// LoadExpenses reads every expense row; rows with unparsable dates are
// dropped.
func (r *BusinessRepository) LoadExpenses(ctx context.Context) ([]entity.Expense, error) {
	query := `SELECT date, expense FROM expenses ORDER BY date ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []entity.Expense
	for rows.Next() {
		var rawDate sql.NullString
		var amount sql.NullFloat64
		if err := rows.Scan(&rawDate, &amount); err != nil {
			return nil, err
		}

		date, ok := stats.ParseDate(rawDate.String)
		if !ok {
			continue
		}
		expenses = append(expenses, entity.Expense{Date: date, Amount: amount.Float64})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return expenses, nil
}
