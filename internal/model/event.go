package model

// Event mirrors the slice of the event registry this service reads and
// writes: existence, the arrangement back-reference and the available
// seat counter kept in sync with the arrangement.
type Event struct {
	ID                 uint64  `json:"id"`
	Name               string  `json:"name"`
	HasSeatArrangement bool    `json:"has_seat_arrangement"`
	SeatArrangementID  *uint64 `json:"seat_arrangement_id,omitempty"`
	AvailableSeats     int     `json:"available_seats"`
}
