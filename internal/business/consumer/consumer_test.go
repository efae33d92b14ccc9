package consumer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodiq/internal/business/entity"
	posentity "foodiq/internal/pos/entity"
)

type captureWriter struct {
	rows []entity.Transaction
}

func (w *captureWriter) InsertTransaction(ctx context.Context, t *entity.Transaction) error {
	w.rows = append(w.rows, *t)
	return nil
}

func TestProcessMessageRecordsOrderLines(t *testing.T) {
	order := posentity.Order{
		ID:     7,
		Status: "COMPLETED",
		Items: []posentity.OrderItem{
			{ItemName: "Rice", Quantity: 2, PriceAtSaleInPaise: 1000},
			{ItemName: "Dal", Quantity: 1, PriceAtSaleInPaise: 500},
		},
	}
	data, err := json.Marshal(order)
	require.NoError(t, err)

	w := &captureWriter{}
	c := NewConsumer(nil, w)
	c.processMessage(context.Background(), kafka.Message{Value: data})

	require.Len(t, w.rows, 2)
	assert.Equal(t, "Rice", w.rows[0].Item)
	assert.Equal(t, 20.0, w.rows[0].Price)
	assert.Equal(t, "Dal", w.rows[1].Item)
	assert.Equal(t, 5.0, w.rows[1].Price)
}

func TestProcessMessageIgnoresPendingOrders(t *testing.T) {
	order := posentity.Order{ID: 8, Status: "PENDING"}
	data, err := json.Marshal(order)
	require.NoError(t, err)

	w := &captureWriter{}
	c := NewConsumer(nil, w)
	c.processMessage(context.Background(), kafka.Message{Value: data})

	assert.Empty(t, w.rows)
}

func TestProcessMessageBadPayload(t *testing.T) {
	w := &captureWriter{}
	c := NewConsumer(nil, w)
	c.processMessage(context.Background(), kafka.Message{Value: []byte("not json")})

	assert.Empty(t, w.rows)
}
