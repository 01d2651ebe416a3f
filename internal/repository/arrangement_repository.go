package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/eventure/seat-reservation/internal/model"
)

const mysqlDupEntry = 1062

// ArrangementRepo persists seat arrangements and their embedded seats.
// An arrangement is stored as one seat_arrangements row plus its
// arrangement_seats rows; mutating operations lock the arrangement row
// with SELECT ... FOR UPDATE so all writers against the same
// arrangement serialize, which is the only concurrency primitive this
// subsystem relies on.
type ArrangementRepo struct {
	db *sql.DB
}

// NewArrangementRepo returns an ArrangementRepo bound to the database.
func NewArrangementRepo(db *sql.DB) *ArrangementRepo {
	return &ArrangementRepo{db: db}
}

// WithTx runs fn inside a single transaction. Every mutating service
// operation wraps its read-check-write sequence in one WithTx call.
func (r *ArrangementRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.db, fn)
}

const arrangementCols = `id, event_id, image_url, total_seats, available_seats, reserved_seats, booked_seats, created_by, updated_by, created_at, updated_at`

func (r *ArrangementRepo) scanArrangement(row *sql.Row) (*model.SeatArrangement, error) {
	var a model.SeatArrangement
	err := row.Scan(&a.ID, &a.EventID, &a.ImageURL,
		&a.TotalSeats, &a.AvailableSeats, &a.ReservedSeats, &a.BookedSeats,
		&a.CreatedBy, &a.UpdatedBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArrangementNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ArrangementRepo) loadSeats(ctx context.Context, a *model.SeatArrangement) error {
	rows, err := q(ctx, r.db).QueryContext(ctx,
		`SELECT label, status, reserved_by, reservation_expiry, order_id, booked_by, booked_by_phone, enrollment_id
		 FROM arrangement_seats WHERE arrangement_id = ? ORDER BY id`,
		a.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s          model.Seat
			reservedBy sql.NullInt64
			expiry     sql.NullTime
			orderID    sql.NullString
			bookedBy   sql.NullInt64
			phone      sql.NullString
			enrollment sql.NullInt64
		)
		if err := rows.Scan(&s.Label, &s.Status, &reservedBy, &expiry, &orderID, &bookedBy, &phone, &enrollment); err != nil {
			return err
		}
		if reservedBy.Valid {
			v := uint64(reservedBy.Int64)
			s.ReservedBy = &v
		}
		if expiry.Valid {
			t := expiry.Time.UTC()
			s.ReservationExpiry = &t
		}
		if orderID.Valid {
			v := orderID.String
			s.OrderID = &v
		}
		if bookedBy.Valid {
			v := uint64(bookedBy.Int64)
			s.BookedBy = &v
		}
		if phone.Valid {
			v := phone.String
			s.BookedByPhone = &v
		}
		if enrollment.Valid {
			v := uint64(enrollment.Int64)
			s.EnrollmentID = &v
		}
		a.Seats = append(a.Seats, s)
	}
	return rows.Err()
}

// GetByEventForUpdate loads an arrangement with its row locked for the
// duration of the surrounding transaction. Must be called inside WithTx.
func (r *ArrangementRepo) GetByEventForUpdate(ctx context.Context, eventID uint64) (*model.SeatArrangement, error) {
	row := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+arrangementCols+` FROM seat_arrangements WHERE event_id = ? FOR UPDATE`, eventID)
	a, err := r.scanArrangement(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadSeats(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// FindByOrderForUpdate locates the arrangement containing any seat
// tagged with the given payment order and locks it. The seat tag is
// only a lookup hint; callers re-verify seat state after the lock is
// held. Returns ErrArrangementNotFound when no seat carries the order.
func (r *ArrangementRepo) FindByOrderForUpdate(ctx context.Context, orderID string) (*model.SeatArrangement, error) {
	var arrangementID uint64
	err := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT arrangement_id FROM arrangement_seats WHERE order_id = ? LIMIT 1`, orderID,
	).Scan(&arrangementID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArrangementNotFound
		}
		return nil, err
	}
	return r.getByIDForUpdate(ctx, arrangementID)
}

// FindByBookedSeatForUpdate locates the arrangement containing a BOOKED
// seat matching the enrollment and holder phone, and locks it.
func (r *ArrangementRepo) FindByBookedSeatForUpdate(ctx context.Context, enrollmentID uint64, phone string) (*model.SeatArrangement, error) {
	var arrangementID uint64
	err := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT arrangement_id FROM arrangement_seats
		 WHERE enrollment_id = ? AND booked_by_phone = ? AND status = ? LIMIT 1`,
		enrollmentID, phone, model.SeatBooked,
	).Scan(&arrangementID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArrangementNotFound
		}
		return nil, err
	}
	return r.getByIDForUpdate(ctx, arrangementID)
}

func (r *ArrangementRepo) getByIDForUpdate(ctx context.Context, id uint64) (*model.SeatArrangement, error) {
	row := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+arrangementCols+` FROM seat_arrangements WHERE id = ? FOR UPDATE`, id)
	a, err := r.scanArrangement(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadSeats(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a new arrangement and its seats. The UNIQUE index on
// event_id rejects a second arrangement for the same event; that driver
// error is mapped to ErrArrangementExists.
func (r *ArrangementRepo) Create(ctx context.Context, a *model.SeatArrangement) error {
	res, err := q(ctx, r.db).ExecContext(ctx,
		`INSERT INTO seat_arrangements
		 (event_id, image_url, total_seats, available_seats, reserved_seats, booked_seats, created_by, updated_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.EventID, a.ImageURL, a.TotalSeats, a.AvailableSeats, a.ReservedSeats, a.BookedSeats, a.CreatedBy, a.UpdatedBy,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDupEntry {
			return ErrArrangementExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return r.insertSeats(ctx, a)
}

// Save persists the full in-memory state of an arrangement: the counter
// row is updated and the seat rows are replaced wholesale. Callers run
// this at the end of a WithTx body, after RefreshCounts.
func (r *ArrangementRepo) Save(ctx context.Context, a *model.SeatArrangement) error {
	_, err := q(ctx, r.db).ExecContext(ctx,
		`UPDATE seat_arrangements
		 SET image_url = ?, total_seats = ?, available_seats = ?, reserved_seats = ?, booked_seats = ?, updated_by = ?
		 WHERE id = ?`,
		a.ImageURL, a.TotalSeats, a.AvailableSeats, a.ReservedSeats, a.BookedSeats, a.UpdatedBy, a.ID,
	)
	if err != nil {
		return err
	}
	if _, err := q(ctx, r.db).ExecContext(ctx,
		`DELETE FROM arrangement_seats WHERE arrangement_id = ?`, a.ID); err != nil {
		return err
	}
	return r.insertSeats(ctx, a)
}

func (r *ArrangementRepo) insertSeats(ctx context.Context, a *model.SeatArrangement) error {
	if len(a.Seats) == 0 {
		return nil
	}
	query := `INSERT INTO arrangement_seats
	 (arrangement_id, label, status, reserved_by, reservation_expiry, order_id, booked_by, booked_by_phone, enrollment_id) VALUES `
	args := make([]any, 0, len(a.Seats)*9)
	for i := range a.Seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?)"
		s := &a.Seats[i]
		args = append(args, a.ID, s.Label, s.Status,
			nullUint(s.ReservedBy), nullTime(s.ReservationExpiry), nullStr(s.OrderID),
			nullUint(s.BookedBy), nullStr(s.BookedByPhone), nullUint(s.EnrollmentID))
	}
	_, err := q(ctx, r.db).ExecContext(ctx, query, args...)
	return err
}

// Delete removes the arrangement and, through the FK cascade, its seats.
func (r *ArrangementRepo) Delete(ctx context.Context, id uint64) error {
	_, err := q(ctx, r.db).ExecContext(ctx, `DELETE FROM seat_arrangements WHERE id = ?`, id)
	return err
}

func nullUint(v *uint64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullStr(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC()
}
