package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eventure/seat-reservation/internal/model"
)

// EnrollmentRepo reads the ticket registry. This service never creates
// or modifies enrollments; it only resolves the paying user during
// booking confirmation.
type EnrollmentRepo struct {
	db *sql.DB
}

// NewEnrollmentRepo returns an EnrollmentRepo bound to the database.
func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo {
	return &EnrollmentRepo{db: db}
}

// GetByID loads an enrollment or returns ErrEnrollmentNotFound.
func (r *EnrollmentRepo) GetByID(ctx context.Context, id uint64) (*model.Enrollment, error) {
	var e model.Enrollment
	err := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT id, user_id FROM enrollments WHERE id = ?`, id,
	).Scan(&e.ID, &e.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &e, nil
}
