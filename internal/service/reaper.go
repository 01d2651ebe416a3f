package service

import (
	"time"

	"github.com/eventure/seat-reservation/internal/model"
)

// reapExpired reverts every RESERVED seat whose hold has lapsed back to
// AVAILABLE, clearing the hold fields. It mutates the arrangement in
// memory only; the caller persists when the returned count is non-zero.
// Running it at the head of every availability-sensitive operation is
// what makes expiry lazy: there is no background timer, the next touch
// of an arrangement enforces its deadlines.
func reapExpired(a *model.SeatArrangement, now time.Time) int {
	released := 0
	for i := range a.Seats {
		if a.Seats[i].HoldExpired(now) {
			a.Seats[i].Release()
			released++
		}
	}
	return released
}
