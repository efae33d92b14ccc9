package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"foodiq/internal/business/entity"
	posentity "foodiq/internal/pos/entity"
)

// TransactionWriter records sale rows produced from order events.
type TransactionWriter interface {
	InsertTransaction(ctx context.Context, t *entity.Transaction) error
}

type Consumer struct {
	reader *kafka.Reader
	repo   TransactionWriter
}

func NewConsumer(reader *kafka.Reader, repo TransactionWriter) *Consumer {
	return &Consumer{reader: reader, repo: repo}
}

// Start listens for completed orders and records each order line as a
// transaction row so the dashboard picks up POS sales.
func (c *Consumer) Start() {
	for {
		ctx := context.Background()
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			log.Error().Msgf("Error reading message: %v", err)
			continue
		}

		c.processMessage(ctx, msg)
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) {
	var order posentity.Order
	if err := json.Unmarshal(msg.Value, &order); err != nil {
		log.Error().Msgf("Error unmarshalling message: %v", err)
		return
	}

	if order.Status != "COMPLETED" {
		return
	}

	for _, item := range order.Items {
		t := &entity.Transaction{
			Date:     time.Now(),
			Item:     item.ItemName,
			Category: "Food",
			Price:    float64(item.PriceAtSaleInPaise*item.Quantity) / 100.0,
			Customer: "Anonymous",
		}
		if err := c.repo.InsertTransaction(ctx, t); err != nil {
			log.Error().Msgf("Error recording transaction for order %d: %v", order.ID, err)
		}
	}
}
