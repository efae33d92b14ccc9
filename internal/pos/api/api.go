package api

import (
	"context"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"foodiq/internal/pos/entity"
)

// POSService is the part of the service layer the handlers use.
type POSService interface {
	GetMenu(ctx context.Context) ([]entity.MenuItem, error)
	Checkout(ctx context.Context, req *entity.CheckoutRequest, idempotentKey string) (*entity.Order, error)
	GetOrder(ctx context.Context, id int) (*entity.Order, error)
}

type POSHandler struct {
	posService POSService
}

func NewPOSHandler(posService POSService) *POSHandler {
	return &POSHandler{posService: posService}
}

type menuEntry struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
}

// GetMenu returns the available menu with prices in rupees --> /api/menu
func (h *POSHandler) GetMenu(c echo.Context) error {
	items, err := h.posService.GetMenu(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": "System Error"})
	}

	menu := make([]menuEntry, 0, len(items))
	for _, item := range items {
		menu = append(menu, menuEntry{
			ID:       item.ID,
			Name:     item.Name,
			Price:    float64(item.PriceInPaise) / 100.0,
			Category: item.Category,
			Stock:    item.Stock,
		})
	}

	return c.JSON(200, menu)
}

// Checkout processes a cart as one atomic sale --> /api/checkout
func (h *POSHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	req := entity.CheckoutRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	idempotentKey := c.Request().Header.Get("Idempotent-Key")

	order, err := h.posService.Checkout(ctx, &req, idempotentKey)
	if err != nil {
		var invalidItem *entity.InvalidItemError
		var outOfStock *entity.InsufficientStockError
		switch {
		case errors.Is(err, entity.ErrEmptyCart):
			return c.JSON(400, map[string]string{"error": err.Error()})
		case errors.As(err, &invalidItem), errors.As(err, &outOfStock), errors.Is(err, entity.ErrDuplicateCheckout):
			return c.JSON(409, map[string]string{"error": err.Error()})
		default:
			return c.JSON(500, map[string]string{"error": "System Error"})
		}
	}

	return c.JSON(201, map[string]interface{}{
		"success": true,
		"orderId": order.ID,
		"total":   float64(order.TotalInPaise) / 100.0,
	})
}

// GetOrder returns a past order with its line items --> /api/orders/:id
func (h *POSHandler) GetOrder(c echo.Context) error {
	id := c.Param("id")
	idInt, err := strconv.Atoi(id)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	order, err := h.posService.GetOrder(c.Request().Context(), idInt)
	if err != nil {
		if errors.Is(err, entity.ErrOrderNotFound) {
			return c.JSON(404, map[string]string{"error": err.Error()})
		}
		return c.JSON(500, map[string]string{"error": "System Error"})
	}

	return c.JSON(200, order)
}
