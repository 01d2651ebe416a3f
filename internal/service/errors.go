// Package service implements the seat state machine: arrangement
// lifecycle, time-bounded reservations, booking confirmation, release
// and cancellation. Every mutating operation runs as one transaction
// against one arrangement, so concurrent operations on the same seat
// set serialize and partial writes are never visible.
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eventure/seat-reservation/internal/model"
)

// SeatStatusUnknown marks a requested label that does not exist in the
// arrangement when reporting reservation conflicts.
const SeatStatusUnknown = model.SeatStatus("UNKNOWN")

var (
	// ErrInvalidSeatList flags an empty, duplicated or blank-labeled
	// seat list in a create, layout-update or reserve request.
	ErrInvalidSeatList = errors.New("invalid seat list")

	// ErrInvalidPhone flags a holder phone that does not normalize to
	// ten digits.
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrBookedSeatRemoval is returned when a layout update would drop
	// a BOOKED seat. The whole update is rejected.
	ErrBookedSeatRemoval = errors.New("cannot remove a booked seat")

	// ErrArrangementHasBookings is returned when deleting an
	// arrangement that still has BOOKED seats.
	ErrArrangementHasBookings = errors.New("arrangement has booked seats")
)

// SeatConflict names one requested seat that could not be reserved and
// the status it actually had.
type SeatConflict struct {
	Label  string           `json:"label"`
	Status model.SeatStatus `json:"status"`
}

// SeatConflictError reports every seat that blocked a reservation
// attempt. The caller is expected to re-fetch availability and
// re-prompt seat selection; no seat in the request changed state.
type SeatConflictError struct {
	Seats []SeatConflict
}

func (e *SeatConflictError) Error() string {
	parts := make([]string, 0, len(e.Seats))
	for _, s := range e.Seats {
		parts = append(parts, fmt.Sprintf("%s (%s)", s.Label, s.Status))
	}
	return "seats unavailable: " + strings.Join(parts, ", ")
}
