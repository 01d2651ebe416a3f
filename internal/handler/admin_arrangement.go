package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventure/seat-reservation/internal/service"
)

// AdminHandler exposes the administrative arrangement surface: create,
// full-detail read, layout update, deletion and the diagnostic reap.
// JWT authentication and the ADMIN role check run in middleware; the
// handlers only translate requests to service calls.
type AdminHandler struct {
	Arrangements *service.ArrangementService
	Bookings     *service.BookingService
}

// NewAdminHandler constructs an AdminHandler. All dependencies must be
// non-nil.
func NewAdminHandler(arrangements *service.ArrangementService, bookings *service.BookingService) *AdminHandler {
	if arrangements == nil || bookings == nil {
		panic("nil service passed to NewAdminHandler")
	}
	return &AdminHandler{Arrangements: arrangements, Bookings: bookings}
}

// CreateArrangement handles POST /v1/admin/events/:id/arrangement. The
// body carries the venue map image URL and the seat labels. Responds
// 201 with the created arrangement, 404 when the event is missing, 409
// when the event already has an arrangement.
func (h *AdminHandler) CreateArrangement(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathEventID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var body struct {
		ImageURL   string   `json:"image_url"`
		SeatLabels []string `json:"seat_labels"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	arrangement, err := h.Arrangements.Create(c.Request().Context(), service.CreateArrangementInput{
		EventID:    eventID,
		ImageURL:   body.ImageURL,
		SeatLabels: body.SeatLabels,
		CreatedBy:  adminID,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"arrangement": arrangement})
}

// GetArrangement handles GET /v1/admin/events/:id/arrangement and
// returns the full administrative view including holder identities and
// order tags.
func (h *AdminHandler) GetArrangement(c echo.Context) error {
	eventID, ok := pathEventID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	arrangement, err := h.Arrangements.Get(c.Request().Context(), eventID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"arrangement": arrangement})
}

// UpdateArrangement handles PUT /v1/admin/events/:id/arrangement. Both
// body fields are optional: omitting seat_labels keeps the current seat
// set, omitting image_url keeps the current image. Removing a BOOKED
// seat fails the whole request with 400.
func (h *AdminHandler) UpdateArrangement(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathEventID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var body struct {
		ImageURL   *string  `json:"image_url"`
		SeatLabels []string `json:"seat_labels"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	arrangement, err := h.Arrangements.UpdateLayout(c.Request().Context(), service.UpdateLayoutInput{
		EventID:    eventID,
		ImageURL:   body.ImageURL,
		SeatLabels: body.SeatLabels,
		UpdatedBy:  adminID,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"arrangement": arrangement})
}

// DeleteArrangement handles DELETE /v1/admin/events/:id/arrangement.
// Responds 400 while any seat is BOOKED; reserved seats are force
// released.
func (h *AdminHandler) DeleteArrangement(c echo.Context) error {
	eventID, ok := pathEventID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if err := h.Arrangements.Delete(c.Request().Context(), eventID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReapExpired handles POST /v1/admin/events/:id/arrangement/reap and
// returns how many expired holds were reverted. Purely diagnostic:
// every availability-sensitive operation reaps on its own.
func (h *AdminHandler) ReapExpired(c echo.Context) error {
	eventID, ok := pathEventID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	released, err := h.Bookings.ReapExpired(c.Request().Context(), eventID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"released": released})
}
