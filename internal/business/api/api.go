package api

import (
	"context"

	"github.com/labstack/echo/v4"

	"foodiq/internal/business/entity"
)

// BusinessService is the part of the service layer the handlers use.
type BusinessService interface {
	Stats(ctx context.Context) (*entity.BusinessStats, error)
}

type BusinessHandler struct {
	businessService BusinessService
}

func NewBusinessHandler(businessService BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// Stats returns the business dashboard aggregate --> /api/business_stats
func (h *BusinessHandler) Stats(c echo.Context) error {
	stats, err := h.businessService.Stats(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": "Failed to load transactions from DB"})
	}
	return c.JSON(200, stats)
}
