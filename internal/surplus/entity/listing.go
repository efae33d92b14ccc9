package entity

import (
	"errors"
	"time"
)

var (
	ErrInvalidListing  = errors.New("item name and a positive quantity are required")
	ErrAlreadyClaimed  = errors.New("listing already claimed")
	ErrListingNotFound = errors.New("listing not found")
)

// Listing is a surplus food offer. Status is "AVAILABLE" until an NGO
// claims it.
type Listing struct {
	ID        int       `json:"id"`
	ItemName  string    `json:"item_name"`
	QtyKg     float64   `json:"qty_kg"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	IsUrgent  bool      `json:"is_urgent"`
	Status    string    `json:"status"` // "AVAILABLE" or "CLAIMED"
	CreatedAt time.Time `json:"created_at"`
}

// ThresholdConfig decides when a listing counts as urgent: at or above
// WarnLimit with AutoNotify on.
type ThresholdConfig struct {
	ItemName   string  `json:"item_name"`
	WarnLimit  float64 `json:"warn_limit"`
	AutoNotify bool    `json:"auto_notify"`
}
