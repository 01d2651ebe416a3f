package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventure/seat-reservation/internal/queue"
	"github.com/eventure/seat-reservation/internal/service"
)

// CheckoutHandler wires the payment flow to the seat state machine:
// the user-facing reserve endpoint plus the internal callbacks the
// payment glue invokes on webhook success, failure and ticket
// cancellation.
type CheckoutHandler struct {
	Bookings *service.BookingService
}

// NewCheckoutHandler constructs a CheckoutHandler.
func NewCheckoutHandler(bookings *service.BookingService) *CheckoutHandler {
	if bookings == nil {
		panic("nil service passed to NewCheckoutHandler")
	}
	return &CheckoutHandler{Bookings: bookings}
}

// ReserveSeats handles POST /v1/events/:id/seats/reserve. The body
// carries the payment order id and the (label, holder_phone) pairs.
// The hold is all-or-nothing: 409 lists every unavailable seat with
// its actual status and nothing changes state.
func (h *CheckoutHandler) ReserveSeats(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathEventID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var body struct {
		OrderID string `json:"order_id"`
		Seats   []struct {
			Label       string `json:"label"`
			HolderPhone string `json:"holder_phone"`
		} `json:"seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.OrderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "order_id is required"})
	}

	seats := make([]service.SeatRequest, 0, len(body.Seats))
	for _, s := range body.Seats {
		seats = append(seats, service.SeatRequest{Label: s.Label, HolderPhone: s.HolderPhone})
	}

	result, err := h.Bookings.Reserve(c.Request().Context(), service.ReserveInput{
		EventID: eventID,
		UserID:  userID,
		OrderID: body.OrderID,
		Seats:   seats,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"order_id":   result.OrderID,
		"seats":      result.Labels,
		"expires_at": result.ExpiresAt.Format(time.RFC3339),
	})
}

// ConfirmOrder handles POST /v1/internal/orders/:order_id/confirm,
// called by the payment glue after a successful webhook. A confirmed
// payment with zero seats booked is reported with booked=0 so support
// tooling can reconcile the expiry/payment race; 404 means no seat at
// all carries the order.
func (h *CheckoutHandler) ConfirmOrder(c echo.Context) error {
	orderID := c.Param("order_id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	var body struct {
		EnrollmentID uint64 `json:"enrollment_id"`
	}
	if err := c.Bind(&body); err != nil || body.EnrollmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "enrollment_id is required"})
	}

	result, err := h.Bookings.Confirm(c.Request().Context(), service.ConfirmInput{
		OrderID:      orderID,
		EnrollmentID: body.EnrollmentID,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	if result.Booked > 0 {
		// Best effort: the booking already committed, a notification
		// failure must not fail the webhook.
		_ = queue.PublishSeatsBooked(c.Request().Context(), queue.SeatsBookedEvent{
			EventID:      result.EventID,
			OrderID:      orderID,
			EnrollmentID: body.EnrollmentID,
			UserID:       result.UserID,
			SeatLabels:   result.Labels,
			BookedAt:     time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"order_id": orderID,
		"booked":   result.Booked,
		"seats":    result.Labels,
	})
}

// ReleaseOrder handles POST /v1/internal/orders/:order_id/release,
// called when payment fails or is abandoned. Always succeeds; an order
// with no held seats is a no-op.
func (h *CheckoutHandler) ReleaseOrder(c echo.Context) error {
	orderID := c.Param("order_id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	released, err := h.Bookings.Release(c.Request().Context(), orderID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"order_id": orderID,
		"released": released,
	})
}

// CancelSeat handles POST /v1/internal/tickets/cancel-seat, called by
// the ticket-cancellation flow. Frees exactly the one seat matching
// (enrollment_id, holder_phone); absence is a no-op success since many
// events run without a seat arrangement.
func (h *CheckoutHandler) CancelSeat(c echo.Context) error {
	var body struct {
		EnrollmentID uint64 `json:"enrollment_id"`
		HolderPhone  string `json:"holder_phone"`
	}
	if err := c.Bind(&body); err != nil || body.EnrollmentID == 0 || body.HolderPhone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "enrollment_id and holder_phone are required"})
	}

	result, err := h.Bookings.Cancel(c.Request().Context(), service.CancelInput{
		EnrollmentID: body.EnrollmentID,
		HolderPhone:  body.HolderPhone,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	if result.Found {
		_ = queue.PublishSeatCancelled(c.Request().Context(), queue.SeatCancelledEvent{
			EventID:      result.EventID,
			EnrollmentID: body.EnrollmentID,
			SeatLabel:    result.Label,
			CancelledAt:  time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"freed": result.Found,
		"seat":  result.Label,
	})
}
