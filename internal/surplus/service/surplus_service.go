package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"foodiq/internal/surplus/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// SurplusRepository is the storage surface the service needs.
type SurplusRepository interface {
	GetThresholdConfig(ctx context.Context, itemName string) (*entity.ThresholdConfig, error)
	CreateListing(ctx context.Context, listing *entity.Listing) (*entity.Listing, error)
	GetAvailableListings(ctx context.Context) ([]entity.Listing, error)
	ClaimListing(ctx context.Context, id int) error
}

// SurplusService matches surplus food listings to NGOs.
type SurplusService struct {
	repo        SurplusRepository
	kafkaWriter *kafka.Writer
}

func NewSurplusService(repo SurplusRepository, kafkaWriter *kafka.Writer) *SurplusService {
	return &SurplusService{repo: repo, kafkaWriter: kafkaWriter}
}

// CreateListing stores a new listing. If the item's threshold rule says
// the quantity is at or above the warn limit and auto-notify is on, the
// listing is flagged urgent and an event is published.
func (s *SurplusService) CreateListing(ctx context.Context, listing *entity.Listing) (*entity.Listing, error) {
	listing.ItemName = strings.TrimSpace(listing.ItemName)
	if listing.ItemName == "" || listing.QtyKg <= 0 {
		return nil, entity.ErrInvalidListing
	}

	config, err := s.repo.GetThresholdConfig(ctx, listing.ItemName)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting threshold config for %s", listing.ItemName)
		return nil, err
	}

	if config != nil && config.AutoNotify && listing.QtyKg >= config.WarnLimit {
		listing.IsUrgent = true
	}

	created, err := s.repo.CreateListing(ctx, listing)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating listing")
		return nil, err
	}

	if created.IsUrgent {
		// The listing is already stored; a publish failure is logged,
		// not surfaced.
		if err := s.publishListingEvent(ctx, created); err != nil {
			logger.Error().Err(err).Msgf("Error publishing event for listing %d", created.ID)
		}
	}

	return created, nil
}

// AvailableListings returns unclaimed listings, newest first.
func (s *SurplusService) AvailableListings(ctx context.Context) ([]entity.Listing, error) {
	listings, err := s.repo.GetAvailableListings(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting listings")
		return nil, err
	}
	return listings, nil
}

// ClaimListing marks a listing as claimed by an NGO.
func (s *SurplusService) ClaimListing(ctx context.Context, id int) error {
	return s.repo.ClaimListing(ctx, id)
}

func (s *SurplusService) publishListingEvent(ctx context.Context, listing *entity.Listing) error {
	if s.kafkaWriter == nil {
		return nil
	}

	listingJSON, err := json.Marshal(listing)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("surplus-urgent-%d", listing.ID)),
		Value: listingJSON,
	}

	return s.kafkaWriter.WriteMessages(ctx, msg)
}
