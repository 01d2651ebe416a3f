// Package queue defines the broker payloads and the background
// consumer for booking notifications.
package queue

// SeatsBookedEvent is published after a payment webhook converts
// reserved seats to booked. Downstream consumers (ticket delivery,
// notifications, analytics) get everything they need without querying
// the primary database.
type SeatsBookedEvent struct {
	EventID      uint64   `json:"event_id"`
	OrderID      string   `json:"order_id"`
	EnrollmentID uint64   `json:"enrollment_id"`
	UserID       uint64   `json:"user_id"`
	SeatLabels   []string `json:"seats"`
	BookedAt     string   `json:"booked_at"`
}

// SeatCancelledEvent is published when a booked seat is freed by a
// post-purchase ticket cancellation.
type SeatCancelledEvent struct {
	EventID      uint64 `json:"event_id"`
	EnrollmentID uint64 `json:"enrollment_id"`
	SeatLabel    string `json:"seat"`
	CancelledAt  string `json:"cancelled_at"`
}
