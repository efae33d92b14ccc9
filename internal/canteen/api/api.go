package api

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"foodiq/internal/stats"
)

// CanteenService is the part of the service layer the handlers use.
type CanteenService interface {
	Overall(ctx context.Context) stats.Summary
	Daily(ctx context.Context) []stats.DailyStat
	Dishes(ctx context.Context, topN int) []stats.CategoryStat
	Weekday(ctx context.Context) []stats.WeekdayTrend
	Threshold(date time.Time, thresholdQty float64) []stats.ThresholdRow
}

type CanteenHandler struct {
	canteenService CanteenService
}

func NewCanteenHandler(canteenService CanteenService) *CanteenHandler {
	return &CanteenHandler{canteenService: canteenService}
}

// Overall returns the overall summary --> /api/overall
func (h *CanteenHandler) Overall(c echo.Context) error {
	return c.JSON(200, h.canteenService.Overall(c.Request().Context()))
}

// Daily returns per-day totals --> /api/daily
func (h *CanteenHandler) Daily(c echo.Context) error {
	return c.JSON(200, h.canteenService.Daily(c.Request().Context()))
}

// Dishes returns per-dish totals with waste rates --> /api/dishes?top=N
func (h *CanteenHandler) Dishes(c echo.Context) error {
	topN := 0
	if top := c.QueryParam("top"); top != "" {
		n, err := strconv.Atoi(top)
		if err != nil {
			return c.JSON(400, map[string]string{"error": "Invalid top parameter"})
		}
		// Negative values mean no truncation.
		if n < 0 {
			n = 0
		}
		topN = n
	}
	return c.JSON(200, h.canteenService.Dishes(c.Request().Context(), topN))
}

// Weekday returns trends for all seven weekdays --> /api/weekday
func (h *CanteenHandler) Weekday(c echo.Context) error {
	return c.JSON(200, h.canteenService.Weekday(c.Request().Context()))
}

// Threshold returns records for one date whose surplus meets the
// threshold --> /api/threshold?date=YYYY-MM-DD&threshold=N
func (h *CanteenHandler) Threshold(c echo.Context) error {
	dateParam := c.QueryParam("date")
	if dateParam == "" {
		return c.JSON(400, map[string]string{"error": "provide date param YYYY-MM-DD"})
	}

	date, ok := stats.ParseDate(dateParam)
	if !ok {
		return c.JSON(400, map[string]string{"error": "provide date param YYYY-MM-DD"})
	}

	// Non-numeric thresholds coerce to zero.
	threshold, err := strconv.ParseFloat(c.QueryParam("threshold"), 64)
	if err != nil {
		threshold = 0
	}

	return c.JSON(200, h.canteenService.Threshold(date, threshold))
}
