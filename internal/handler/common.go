package handler // handler implements the HTTP layer over the seat services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eventure/seat-reservation/internal/repository"
	"github.com/eventure/seat-reservation/internal/service"
)

// getUserID extracts the user_id placed in context by the JWT
// middleware and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathEventID parses the :id path parameter as an event identifier.
func pathEventID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// writeServiceError translates service and repository failures to HTTP
// responses. Conflict responses carry the full list of offending seats
// so the checkout UI can re-prompt selection instead of failing
// opaquely.
func writeServiceError(c echo.Context, err error) error {
	var conflict *service.SeatConflictError
	switch {
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "seats unavailable",
			"seats": conflict.Seats,
		})
	case errors.Is(err, repository.ErrArrangementExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat arrangement already exists"})
	case errors.Is(err, repository.ErrEventNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	case errors.Is(err, repository.ErrArrangementNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seat arrangement not found"})
	case errors.Is(err, repository.ErrEnrollmentNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "enrollment not found"})
	case errors.Is(err, service.ErrInvalidSeatList),
		errors.Is(err, service.ErrInvalidPhone),
		errors.Is(err, service.ErrBookedSeatRemoval),
		errors.Is(err, service.ErrArrangementHasBookings):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
