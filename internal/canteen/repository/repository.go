package repository

import (
	"context"
	"database/sql"

	"foodiq/internal/stats"
)

type RecordRepository struct {
	db *sql.DB
}

func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db}
}

// LoadRawRecords reads every daily record joined to its dish name. Field
// values are passed through as text; parsing and coercion happen in the
// stats package.
func (r *RecordRepository) LoadRawRecords(ctx context.Context) ([]stats.RawRecord, error) {
	query := `
		SELECT dr.date, d.dish_name, dr.quantity_prepared, dr.quantity_consumed
		FROM daily_records dr
		JOIN dishes d ON dr.dish_id = d.dish_id
		ORDER BY dr.date ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var raws []stats.RawRecord
	for rows.Next() {
		var date, dish, prepared, consumed sql.NullString
		if err := rows.Scan(&date, &dish, &prepared, &consumed); err != nil {
			return nil, err
		}
		raws = append(raws, stats.RawRecord{
			Date:     date.String,
			Category: dish.String,
			Prepared: prepared.String,
			Consumed: consumed.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return raws, nil
}
