package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"foodiq/internal/pos/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const menuCacheKey = "menu:available"

// POSRepository is the storage surface the service needs.
type POSRepository interface {
	GetMenu(ctx context.Context) ([]entity.MenuItem, error)
	Checkout(ctx context.Context, orderUUID string, cart []entity.CartLine, paymentMode string) (*entity.Order, error)
	GetOrderByID(ctx context.Context, id int) (*entity.Order, error)
}

// POSService is a service that provides menu and checkout operations
type POSService struct {
	repo        POSRepository
	kafkaWriter *kafka.Writer
	rdb         *redis.Client
}

// NewPOSService creates a new instance of POSService
func NewPOSService(repo POSRepository, kafkaWriter *kafka.Writer, rdb *redis.Client) *POSService {
	return &POSService{
		repo:        repo,
		kafkaWriter: kafkaWriter,
		rdb:         rdb,
	}
}

// GetMenu returns the available menu, read through the Redis cache.
func (s *POSService) GetMenu(ctx context.Context) ([]entity.MenuItem, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, menuCacheKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msg("Error getting menu from cache")
		}
		if cached != "" {
			var items []entity.MenuItem
			if err := json.Unmarshal([]byte(cached), &items); err != nil {
				logger.Error().Err(err).Msg("Error unmarshalling cached menu")
			} else {
				return items, nil
			}
		}
	}

	items, err := s.repo.GetMenu(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting menu")
		return nil, err
	}

	if s.rdb != nil {
		data, err := json.Marshal(items)
		if err == nil {
			if err := s.rdb.Set(ctx, menuCacheKey, data, 30*time.Second).Err(); err != nil {
				logger.Error().Err(err).Msg("Error setting menu in cache")
			}
		}
	}

	return items, nil
}

// Checkout runs an atomic sale. The empty-cart check happens before any
// transaction opens; item and stock failures abort the whole transaction
// with nothing written.
func (s *POSService) Checkout(ctx context.Context, req *entity.CheckoutRequest, idempotentKey string) (*entity.Order, error) {
	if len(req.Cart) == 0 {
		return nil, entity.ErrEmptyCart
	}

	if req.PaymentMode == "" {
		req.PaymentMode = "Cash"
	}

	if idempotentKey != "" {
		ok, err := s.validateIdempotentKey(ctx, idempotentKey)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, entity.ErrDuplicateCheckout
		}
	}

	order, err := s.repo.Checkout(ctx, uuid.NewString(), req.Cart, req.PaymentMode)
	if err != nil {
		logger.Error().Err(err).Msg("Transaction failed")
		return nil, err
	}

	logger.Info().Msgf("Order #%d processed. Total: %.2f", order.ID, float64(order.TotalInPaise)/100)

	// The sale is already committed; a publish failure is logged, not
	// surfaced.
	if err := s.publishOrderEvent(ctx, order); err != nil {
		logger.Error().Err(err).Msgf("Error publishing event for order %d", order.ID)
	}

	return order, nil
}

// GetOrder returns a past order with its line items.
func (s *POSService) GetOrder(ctx context.Context, id int) (*entity.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		if !errors.Is(err, entity.ErrOrderNotFound) {
			logger.Error().Err(err).Msgf("Error getting order by ID %d", id)
		}
		return nil, err
	}
	return order, nil
}

func (s *POSService) publishOrderEvent(ctx context.Context, order *entity.Order) error {
	if s.kafkaWriter == nil {
		return nil
	}

	orderJSON, err := json.Marshal(order)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-completed-%d", order.ID)),
		Value: orderJSON,
	}

	return s.kafkaWriter.WriteMessages(ctx, msg)
}

func (s *POSService) validateIdempotentKey(ctx context.Context, key string) (bool, error) {
	if s.rdb == nil {
		return true, nil
	}

	// If the key already exists another checkout with the same key went
	// through; reject this one.
	redisKey := fmt.Sprintf("idempotent-key:%s", key)
	val, err := s.rdb.Get(ctx, redisKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}

	if val != "" {
		return false, nil
	}

	err = s.rdb.Set(ctx, redisKey, "exists", 24*time.Hour).Err()
	if err != nil {
		return false, err
	}

	return true, nil
}
