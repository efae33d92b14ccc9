package repository

import (
	"context"
	"database/sql"
	"errors"

	"foodiq/internal/surplus/entity"
)

type SurplusRepository struct {
	db *sql.DB
}

func NewSurplusRepository(db *sql.DB) *SurplusRepository {
	return &SurplusRepository{db}
}

// GetThresholdConfig returns the threshold rule for an item, or nil when
// no rule is configured.
func (r *SurplusRepository) GetThresholdConfig(ctx context.Context, itemName string) (*entity.ThresholdConfig, error) {
	config := &entity.ThresholdConfig{}
	query := `SELECT item_name, warn_limit, auto_notify FROM threshold_configs WHERE item_name = ?`
	err := r.db.QueryRowContext(ctx, query, itemName).Scan(&config.ItemName, &config.WarnLimit, &config.AutoNotify)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return config, nil
}

// CreateListing inserts a listing and returns it with its generated id.
func (r *SurplusRepository) CreateListing(ctx context.Context, listing *entity.Listing) (*entity.Listing, error) {
	query := `INSERT INTO surplus_listings (item_name, qty_kg, lat, lng, is_urgent, status) VALUES (?, ?, ?, ?, ?, 'AVAILABLE')`
	res, err := r.db.ExecContext(ctx, query, listing.ItemName, listing.QtyKg, listing.Lat, listing.Lng, listing.IsUrgent)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	listing.ID = int(id)
	listing.Status = "AVAILABLE"
	return listing, nil
}

// GetAvailableListings returns listings that have not been claimed,
// newest first.
func (r *SurplusRepository) GetAvailableListings(ctx context.Context) ([]entity.Listing, error) {
	query := `SELECT id, item_name, qty_kg, lat, lng, is_urgent, status, created_at FROM surplus_listings WHERE status = 'AVAILABLE' ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []entity.Listing
	for rows.Next() {
		listing := entity.Listing{}
		err := rows.Scan(&listing.ID, &listing.ItemName, &listing.QtyKg, &listing.Lat, &listing.Lng, &listing.IsUrgent, &listing.Status, &listing.CreatedAt)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return listings, nil
}

// ClaimListing flips a listing from AVAILABLE to CLAIMED. The
// conditional update makes double claims lose.
func (r *SurplusRepository) ClaimListing(ctx context.Context, id int) error {
	query := `UPDATE surplus_listings SET status = 'CLAIMED' WHERE id = ? AND status = 'AVAILABLE'`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either the id does not exist or someone claimed it first.
		var status string
		err := r.db.QueryRowContext(ctx, `SELECT status FROM surplus_listings WHERE id = ?`, id).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ErrListingNotFound
		}
		if err != nil {
			return err
		}
		return entity.ErrAlreadyClaimed
	}

	return nil
}
