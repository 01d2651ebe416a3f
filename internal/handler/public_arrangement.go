package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventure/seat-reservation/internal/service"
)

// PublicHandler serves the seat-picker endpoints. Responses are
// filtered to label and status; holder identities and order tags never
// leave the administrative surface.
type PublicHandler struct {
	Bookings *service.BookingService
}

// NewPublicHandler constructs a PublicHandler.
func NewPublicHandler(bookings *service.BookingService) *PublicHandler {
	if bookings == nil {
		panic("nil service passed to NewPublicHandler")
	}
	return &PublicHandler{Bookings: bookings}
}

// GetSeats handles GET /v1/events/:id/seats and returns every seat as
// {label, status}. Expired holds are reaped before the read, so a
// lapsed reservation is never reported as RESERVED.
func (h *PublicHandler) GetSeats(c echo.Context) error {
	eventID, ok := pathEventID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	seats, err := h.Bookings.PublicView(c.Request().Context(), eventID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event_id": eventID,
		"count":    len(seats),
		"seats":    seats,
	})
}

// GetAvailableSeats handles GET /v1/events/:id/seats/available and
// returns just the labels currently free to reserve.
func (h *PublicHandler) GetAvailableSeats(c echo.Context) error {
	eventID, ok := pathEventID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	labels, err := h.Bookings.AvailableSeats(c.Request().Context(), eventID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event_id":  eventID,
		"count":     len(labels),
		"available": labels,
	})
}
