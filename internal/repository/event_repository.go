package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eventure/seat-reservation/internal/model"
)

// EventRepo is the thin surface onto the event registry this service
// needs: reading an event's seat info and keeping the arrangement
// back-reference plus the available-seat counter in sync.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns an EventRepo bound to the provided database.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

// GetByID loads an event or returns ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	var (
		e             model.Event
		arrangementID sql.NullInt64
	)
	err := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT id, name, has_seat_arrangement, seat_arrangement_id, available_seats
		 FROM events WHERE id = ?`, id,
	).Scan(&e.ID, &e.Name, &e.HasSeatArrangement, &arrangementID, &e.AvailableSeats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if arrangementID.Valid {
		v := uint64(arrangementID.Int64)
		e.SeatArrangementID = &v
	}
	return &e, nil
}

// SyncSeatInfo updates the event's arrangement back-reference and its
// available-seat counter. A nil arrangementID clears the reference.
func (r *EventRepo) SyncSeatInfo(ctx context.Context, eventID uint64, arrangementID *uint64, availableSeats int) error {
	_, err := q(ctx, r.db).ExecContext(ctx,
		`UPDATE events SET has_seat_arrangement = ?, seat_arrangement_id = ?, available_seats = ? WHERE id = ?`,
		arrangementID != nil, nullUint(arrangementID), availableSeats, eventID,
	)
	return err
}
