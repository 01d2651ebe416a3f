package model

import "time"

// SeatStatus enumerates the states of the per-seat state machine.
// A seat is always in exactly one state; the transition rules are
// enforced by the service layer inside a single transaction per
// arrangement.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE" // free to reserve
	SeatReserved  SeatStatus = "RESERVED"  // held for a pending payment order
	SeatBooked    SeatStatus = "BOOKED"    // paid for, tied to an enrollment
)

// Seat is one bookable unit inside an arrangement, identified by its
// label (a human-readable seat code such as "A12"). Fields that belong
// to a status other than the current one are always nil.
//
// Fields:
//  Label             - seat code, unique within its arrangement, immutable.
//  Status            - AVAILABLE, RESERVED or BOOKED.
//  ReservedBy        - user holding the seat (RESERVED only).
//  ReservationExpiry - when the hold lapses (RESERVED only).
//  OrderID           - payment order correlating all seats of one checkout
//                      attempt (RESERVED only).
//  BookedBy          - paying user (BOOKED only).
//  BookedByPhone     - ticket holder's phone, set at reservation time and
//                      retained through booking. May differ from BookedBy:
//                      one user can reserve seats for other people.
//  EnrollmentID      - resulting ticket/enrollment record (BOOKED only).
type Seat struct {
	Label             string     `json:"label"`
	Status            SeatStatus `json:"status"`
	ReservedBy        *uint64    `json:"reserved_by,omitempty"`
	ReservationExpiry *time.Time `json:"reservation_expiry,omitempty"`
	OrderID           *string    `json:"order_id,omitempty"`
	BookedBy          *uint64    `json:"booked_by,omitempty"`
	BookedByPhone     *string    `json:"booked_by_phone,omitempty"`
	EnrollmentID      *uint64    `json:"enrollment_id,omitempty"`
}

// HoldExpired reports whether a RESERVED seat's hold has lapsed at the
// given instant. Non-reserved seats never count as expired.
func (s *Seat) HoldExpired(now time.Time) bool {
	return s.Status == SeatReserved && s.ReservationExpiry != nil && !s.ReservationExpiry.After(now)
}

// Release returns the seat to AVAILABLE and clears every field that
// belongs to the RESERVED or BOOKED states.
func (s *Seat) Release() {
	s.Status = SeatAvailable
	s.ReservedBy = nil
	s.ReservationExpiry = nil
	s.OrderID = nil
	s.BookedBy = nil
	s.BookedByPhone = nil
	s.EnrollmentID = nil
}

// Book transitions a RESERVED seat to BOOKED for the paying user and
// enrollment. BookedByPhone is deliberately left untouched: it was set
// at reservation time for the ticket holder.
func (s *Seat) Book(userID, enrollmentID uint64) {
	s.Status = SeatBooked
	s.BookedBy = &userID
	s.EnrollmentID = &enrollmentID
	s.ReservedBy = nil
	s.ReservationExpiry = nil
	s.OrderID = nil
}

// SeatView is the public projection of a seat: label and status only.
// Holder identities and order identifiers are never exposed to
// non-administrative callers.
type SeatView struct {
	Label  string     `json:"label"`
	Status SeatStatus `json:"status"`
}
