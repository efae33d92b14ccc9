package api

import (
	"context"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"foodiq/internal/surplus/entity"
)

// SurplusService is the part of the service layer the handlers use.
type SurplusService interface {
	CreateListing(ctx context.Context, listing *entity.Listing) (*entity.Listing, error)
	AvailableListings(ctx context.Context) ([]entity.Listing, error)
	ClaimListing(ctx context.Context, id int) error
}

type SurplusHandler struct {
	surplusService SurplusService
}

func NewSurplusHandler(surplusService SurplusService) *SurplusHandler {
	return &SurplusHandler{surplusService: surplusService}
}

// CreateListing creates a surplus listing --> POST /api/surplus
func (h *SurplusHandler) CreateListing(c echo.Context) error {
	listing := entity.Listing{}
	if err := c.Bind(&listing); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	created, err := h.surplusService.CreateListing(c.Request().Context(), &listing)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidListing) {
			return c.JSON(400, map[string]string{"error": err.Error()})
		}
		return c.JSON(500, map[string]string{"error": "System Error"})
	}

	return c.JSON(201, created)
}

// ListAvailable returns unclaimed listings --> GET /api/surplus
func (h *SurplusHandler) ListAvailable(c echo.Context) error {
	listings, err := h.surplusService.AvailableListings(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": "System Error"})
	}
	return c.JSON(200, listings)
}

// Claim marks a listing as claimed --> POST /api/surplus/:id/claim
func (h *SurplusHandler) Claim(c echo.Context) error {
	id := c.Param("id")
	idInt, err := strconv.Atoi(id)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	err = h.surplusService.ClaimListing(c.Request().Context(), idInt)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrListingNotFound):
			return c.JSON(404, map[string]string{"error": err.Error()})
		case errors.Is(err, entity.ErrAlreadyClaimed):
			return c.JSON(409, map[string]string{"error": err.Error()})
		default:
			return c.JSON(500, map[string]string{"error": "System Error"})
		}
	}

	return c.JSON(200, map[string]string{"status": "claimed"})
}
