package model

// Enrollment is the read-only slice of the ticket registry this service
// needs at booking confirmation time: the paying user behind a ticket.
type Enrollment struct {
	ID     uint64 `json:"id"`
	UserID uint64 `json:"user_id"`
}
