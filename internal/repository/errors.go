// Package repository implements the data access layer over MySQL. The
// sentinel errors declared here let the service and handler layers
// distinguish failure scenarios without inspecting driver errors.
package repository

import "errors"

// ErrEventNotFound is returned when the referenced event does not exist
// in the event registry.
var ErrEventNotFound = errors.New("event not found")

// ErrArrangementNotFound is returned when no seat arrangement exists
// for the requested event, order or booked seat.
var ErrArrangementNotFound = errors.New("seat arrangement not found")

// ErrArrangementExists is returned when creating an arrangement for an
// event that already has one. Handlers translate this into HTTP 409.
var ErrArrangementExists = errors.New("seat arrangement already exists for event")

// ErrEnrollmentNotFound is returned when a booking confirmation
// references an enrollment that is missing from the ticket registry.
var ErrEnrollmentNotFound = errors.New("enrollment not found")
