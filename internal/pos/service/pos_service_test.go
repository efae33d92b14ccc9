package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodiq/internal/pos/entity"
)

// fakeRepo mimics the transactional checkout against an in-memory
// catalog: any failure leaves stock untouched.
type fakeRepo struct {
	items  map[int]*entity.MenuItem
	nextID int
	orders []*entity.Order
}

func newFakeRepo(items ...entity.MenuItem) *fakeRepo {
	r := &fakeRepo{items: make(map[int]*entity.MenuItem), nextID: 1}
	for i := range items {
		item := items[i]
		r.items[item.ID] = &item
	}
	return r
}

func (r *fakeRepo) GetMenu(ctx context.Context) ([]entity.MenuItem, error) {
	var out []entity.MenuItem
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *fakeRepo) GetOrderByID(ctx context.Context, id int) (*entity.Order, error) {
	for _, order := range r.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, entity.ErrOrderNotFound
}

func (r *fakeRepo) Checkout(ctx context.Context, orderUUID string, cart []entity.CartLine, paymentMode string) (*entity.Order, error) {
	order := &entity.Order{ID: r.nextID, OrderUUID: orderUUID, PaymentMode: paymentMode, Status: "PENDING"}

	type deduction struct {
		item *entity.MenuItem
		qty  int
	}
	var applied []deduction

	for _, line := range cart {
		if line.Qty <= 0 {
			continue
		}
		item, ok := r.items[line.ID]
		if !ok {
			return nil, &entity.InvalidItemError{ItemID: line.ID}
		}
		if item.Stock < line.Qty {
			// Roll back deductions already applied for earlier lines.
			for _, d := range applied {
				d.item.Stock += d.qty
			}
			return nil, &entity.InsufficientStockError{ItemName: item.Name, Available: item.Stock}
		}
		item.Stock -= line.Qty
		applied = append(applied, deduction{item, line.Qty})
		order.TotalInPaise += item.PriceInPaise * line.Qty
		order.Items = append(order.Items, entity.OrderItem{
			OrderID:            order.ID,
			MenuItemID:         line.ID,
			ItemName:           item.Name,
			Quantity:           line.Qty,
			PriceAtSaleInPaise: item.PriceInPaise,
		})
	}

	order.Status = "COMPLETED"
	r.nextID++
	r.orders = append(r.orders, order)
	return order, nil
}

func TestCheckoutSuccess(t *testing.T) {
	repo := newFakeRepo(entity.MenuItem{ID: 1, Name: "Rice", PriceInPaise: 1000, Stock: 10, IsAvailable: true})
	svc := NewPOSService(repo, nil, nil)

	order, err := svc.Checkout(context.Background(), &entity.CheckoutRequest{
		Cart:        []entity.CartLine{{ID: 1, Qty: 5}},
		PaymentMode: "UPI",
	}, "")
	require.NoError(t, err)

	assert.Equal(t, 5000, order.TotalInPaise)
	assert.Equal(t, "COMPLETED", order.Status)
	assert.Equal(t, "UPI", order.PaymentMode)
	assert.NotEmpty(t, order.OrderUUID)
	assert.Equal(t, 5, repo.items[1].Stock)
}

func TestCheckoutEmptyCart(t *testing.T) {
	repo := newFakeRepo()
	svc := NewPOSService(repo, nil, nil)

	_, err := svc.Checkout(context.Background(), &entity.CheckoutRequest{}, "")
	assert.ErrorIs(t, err, entity.ErrEmptyCart)
	assert.Empty(t, repo.orders)
}

func TestCheckoutDefaultsPaymentMode(t *testing.T) {
	repo := newFakeRepo(entity.MenuItem{ID: 1, Name: "Chai", PriceInPaise: 1500, Stock: 3})
	svc := NewPOSService(repo, nil, nil)

	order, err := svc.Checkout(context.Background(), &entity.CheckoutRequest{
		Cart: []entity.CartLine{{ID: 1, Qty: 1}},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "Cash", order.PaymentMode)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	repo := newFakeRepo(entity.MenuItem{ID: 1, Name: "Rice", PriceInPaise: 1000, Stock: 10})
	svc := NewPOSService(repo, nil, nil)

	_, err := svc.Checkout(context.Background(), &entity.CheckoutRequest{
		Cart: []entity.CartLine{{ID: 1, Qty: 15}},
	}, "")

	var stockErr *entity.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Rice", stockErr.ItemName)
	assert.Equal(t, 10, stockErr.Available)
	assert.Equal(t, 10, repo.items[1].Stock)
	assert.Empty(t, repo.orders)
}

func TestCheckoutInvalidItem(t *testing.T) {
	repo := newFakeRepo(entity.MenuItem{ID: 1, Name: "Rice", PriceInPaise: 1000, Stock: 10})
	svc := NewPOSService(repo, nil, nil)

	_, err := svc.Checkout(context.Background(), &entity.CheckoutRequest{
		Cart: []entity.CartLine{{ID: 99, Qty: 1}},
	}, "")

	var itemErr *entity.InvalidItemError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, 99, itemErr.ItemID)
}

func TestCheckoutAtomicAcrossLines(t *testing.T) {
	repo := newFakeRepo(
		entity.MenuItem{ID: 1, Name: "Rice", PriceInPaise: 1000, Stock: 10},
		entity.MenuItem{ID: 2, Name: "Dal", PriceInPaise: 500, Stock: 2},
	)
	svc := NewPOSService(repo, nil, nil)

	// First line passes, second fails: nothing may stick.
	_, err := svc.Checkout(context.Background(), &entity.CheckoutRequest{
		Cart: []entity.CartLine{{ID: 1, Qty: 5}, {ID: 2, Qty: 3}},
	}, "")

	var stockErr *entity.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Dal", stockErr.ItemName)
	assert.Equal(t, 10, repo.items[1].Stock)
	assert.Equal(t, 2, repo.items[2].Stock)
	assert.Empty(t, repo.orders)
}

func TestCheckoutSkipsNonPositiveQuantities(t *testing.T) {
	repo := newFakeRepo(entity.MenuItem{ID: 1, Name: "Rice", PriceInPaise: 1000, Stock: 10})
	svc := NewPOSService(repo, nil, nil)

	order, err := svc.Checkout(context.Background(), &entity.CheckoutRequest{
		Cart: []entity.CartLine{{ID: 1, Qty: 0}, {ID: 1, Qty: -2}, {ID: 1, Qty: 3}},
	}, "")
	require.NoError(t, err)

	assert.Equal(t, 3000, order.TotalInPaise)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, 7, repo.items[1].Stock)
}

func TestGetOrder(t *testing.T) {
	repo := newFakeRepo(entity.MenuItem{ID: 1, Name: "Rice", PriceInPaise: 1000, Stock: 10})
	svc := NewPOSService(repo, nil, nil)

	created, err := svc.Checkout(context.Background(), &entity.CheckoutRequest{
		Cart: []entity.CartLine{{ID: 1, Qty: 2}},
	}, "")
	require.NoError(t, err)

	got, err := svc.GetOrder(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.TotalInPaise, got.TotalInPaise)
	assert.Len(t, got.Items, 1)

	_, err = svc.GetOrder(context.Background(), 999)
	assert.ErrorIs(t, err, entity.ErrOrderNotFound)
}

func TestCheckoutConservation(t *testing.T) {
	repo := newFakeRepo(
		entity.MenuItem{ID: 1, Name: "Rice", PriceInPaise: 1000, Stock: 10},
		entity.MenuItem{ID: 2, Name: "Dal", PriceInPaise: 500, Stock: 8},
	)
	svc := NewPOSService(repo, nil, nil)

	order, err := svc.Checkout(context.Background(), &entity.CheckoutRequest{
		Cart: []entity.CartLine{{ID: 1, Qty: 2}, {ID: 2, Qty: 4}},
	}, "")
	require.NoError(t, err)

	sum := 0
	for _, item := range order.Items {
		sum += item.PriceAtSaleInPaise * item.Quantity
	}
	assert.Equal(t, order.TotalInPaise, sum)
	assert.Equal(t, 8, repo.items[1].Stock)
	assert.Equal(t, 4, repo.items[2].Stock)
}
