package service

import (
	"context"

	"github.com/eventure/seat-reservation/internal/model"
)

// ArrangementStore is the persistence contract the services operate
// over. The repository implementation backs it with MySQL; tests use an
// in-memory fake. WithTx must guarantee that the closure either commits
// fully or leaves the store untouched, and that calls locking the same
// arrangement serialize.
type ArrangementStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetByEventForUpdate(ctx context.Context, eventID uint64) (*model.SeatArrangement, error)
	FindByOrderForUpdate(ctx context.Context, orderID string) (*model.SeatArrangement, error)
	FindByBookedSeatForUpdate(ctx context.Context, enrollmentID uint64, phone string) (*model.SeatArrangement, error)
	Create(ctx context.Context, a *model.SeatArrangement) error
	Save(ctx context.Context, a *model.SeatArrangement) error
	Delete(ctx context.Context, id uint64) error
}

// EventStore is the slice of the event registry the services touch.
type EventStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Event, error)
	SyncSeatInfo(ctx context.Context, eventID uint64, arrangementID *uint64, availableSeats int) error
}

// EnrollmentStore resolves the paying user behind a ticket during
// booking confirmation.
type EnrollmentStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Enrollment, error)
}
