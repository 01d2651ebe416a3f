package model

import "time"

// SeatArrangement is the full seat map for one bookable event. There is
// at most one arrangement per event. The four counters are denormalized
// from the seat list and must always satisfy
// available + reserved + booked == total; they are recomputed from the
// seats after every mutation, never patched incrementally.
type SeatArrangement struct {
	ID             uint64    `json:"id"`
	EventID        uint64    `json:"event_id"`
	ImageURL       string    `json:"image_url"`
	Seats          []Seat    `json:"seats"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats int       `json:"available_seats_count"`
	ReservedSeats  int       `json:"reserved_seats_count"`
	BookedSeats    int       `json:"booked_seats_count"`
	CreatedBy      uint64    `json:"created_by"`
	UpdatedBy      uint64    `json:"updated_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RecomputeCounts derives the per-status totals from a seat list. It is
// the single source for the denormalized counters on SeatArrangement.
func RecomputeCounts(seats []Seat) (available, reserved, booked int) {
	for i := range seats {
		switch seats[i].Status {
		case SeatReserved:
			reserved++
		case SeatBooked:
			booked++
		default:
			available++
		}
	}
	return available, reserved, booked
}

// RefreshCounts recomputes all four counters from the current seat list.
func (a *SeatArrangement) RefreshCounts() {
	a.AvailableSeats, a.ReservedSeats, a.BookedSeats = RecomputeCounts(a.Seats)
	a.TotalSeats = len(a.Seats)
}

// SeatByLabel returns a pointer into the Seats slice for the given
// label, or nil when the label does not exist.
func (a *SeatArrangement) SeatByLabel(label string) *Seat {
	for i := range a.Seats {
		if a.Seats[i].Label == label {
			return &a.Seats[i]
		}
	}
	return nil
}

// PublicView returns the filtered seat list exposed to non-admin
// callers: label and status only.
func (a *SeatArrangement) PublicView() []SeatView {
	views := make([]SeatView, 0, len(a.Seats))
	for i := range a.Seats {
		views = append(views, SeatView{Label: a.Seats[i].Label, Status: a.Seats[i].Status})
	}
	return views
}
