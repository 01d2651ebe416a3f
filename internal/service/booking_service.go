package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eventure/seat-reservation/internal/clock"
	"github.com/eventure/seat-reservation/internal/model"
	"github.com/eventure/seat-reservation/internal/repository"
	"github.com/eventure/seat-reservation/internal/utils"
)

const defaultHoldTTL = 15 * time.Minute

// BookingService drives the seat state machine: time-bounded
// reservations for pending payment orders, webhook-driven booking
// confirmation, order release and single-ticket cancellation. Expired
// holds are reaped lazily at the head of every operation that depends
// on availability.
type BookingService struct {
	arrangements ArrangementStore
	enrollments  EnrollmentStore
	clock        clock.Clock
	holdTTL      time.Duration
}

// BookingServiceOption customizes a BookingService.
type BookingServiceOption func(*BookingService)

// WithHoldTTL overrides the default 15-minute reservation hold.
func WithHoldTTL(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		if d > 0 {
			s.holdTTL = d
		}
	}
}

// NewBookingService wires the service to its stores and clock.
func NewBookingService(arrangements ArrangementStore, enrollments EnrollmentStore, clk clock.Clock, opts ...BookingServiceOption) *BookingService {
	svc := &BookingService{
		arrangements: arrangements,
		enrollments:  enrollments,
		clock:        clk,
		holdTTL:      defaultHoldTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// ReapExpired reverts every expired hold on the event's arrangement and
// persists the result when anything changed. The returned count is for
// diagnostics only; reaping also runs implicitly inside every other
// operation, so correctness never depends on calling this.
func (s *BookingService) ReapExpired(ctx context.Context, eventID uint64) (int, error) {
	released := 0
	err := s.arrangements.WithTx(ctx, func(txCtx context.Context) error {
		a, err := s.arrangements.GetByEventForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}
		released = reapExpired(a, s.clock.Now())
		if released == 0 {
			return nil
		}
		a.RefreshCounts()
		return s.arrangements.Save(txCtx, a)
	})
	if err != nil {
		return 0, err
	}
	return released, nil
}

// PublicView returns the seat map filtered for non-admin callers:
// label and status per seat, nothing else.
func (s *BookingService) PublicView(ctx context.Context, eventID uint64) ([]model.SeatView, error) {
	var views []model.SeatView
	err := s.arrangements.WithTx(ctx, func(txCtx context.Context) error {
		a, err := s.reapLocked(txCtx, eventID)
		if err != nil {
			return err
		}
		views = a.PublicView()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// AvailableSeats returns the labels currently free to reserve.
func (s *BookingService) AvailableSeats(ctx context.Context, eventID uint64) ([]string, error) {
	labels := []string{}
	err := s.arrangements.WithTx(ctx, func(txCtx context.Context) error {
		a, err := s.reapLocked(txCtx, eventID)
		if err != nil {
			return err
		}
		for i := range a.Seats {
			if a.Seats[i].Status == model.SeatAvailable {
				labels = append(labels, a.Seats[i].Label)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return labels, nil
}

// reapLocked loads the arrangement with its row locked, reaps expired
// holds and persists when something changed.
func (s *BookingService) reapLocked(ctx context.Context, eventID uint64) (*model.SeatArrangement, error) {
	a, err := s.arrangements.GetByEventForUpdate(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if released := reapExpired(a, s.clock.Now()); released > 0 {
		a.RefreshCounts()
		if err := s.arrangements.Save(ctx, a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// SeatRequest pairs a seat label with the ticket holder's phone. The
// phone may belong to someone other than the reserving user.
type SeatRequest struct {
	Label       string
	HolderPhone string
}

// ReserveInput describes one all-or-nothing reservation attempt tied
// to a pending payment order.
type ReserveInput struct {
	EventID uint64
	UserID  uint64
	OrderID string
	Seats   []SeatRequest
}

// ReserveResult reports a successful hold.
type ReserveResult struct {
	OrderID   string
	Labels    []string
	ExpiresAt time.Time
}

// Reserve atomically converts the requested AVAILABLE seats to RESERVED
// for the given order. Expired holds are reaped first so
// recently-lapsed seats are eligible. If any requested seat is missing
// or not AVAILABLE the whole attempt fails with a SeatConflictError
// naming every offending seat and its actual status; no seat in the
// request changes state.
func (s *BookingService) Reserve(ctx context.Context, in ReserveInput) (ReserveResult, error) {
	if len(in.Seats) == 0 {
		return ReserveResult{}, fmt.Errorf("%w: empty", ErrInvalidSeatList)
	}
	phones := make(map[string]string, len(in.Seats))
	seen := make(map[string]struct{}, len(in.Seats))
	for _, req := range in.Seats {
		if _, dup := seen[req.Label]; dup {
			return ReserveResult{}, fmt.Errorf("%w: duplicate label %s", ErrInvalidSeatList, req.Label)
		}
		seen[req.Label] = struct{}{}
		phone, ok := utils.NormalizePhone(req.HolderPhone)
		if !ok {
			return ReserveResult{}, fmt.Errorf("%w: %q for seat %s", ErrInvalidPhone, req.HolderPhone, req.Label)
		}
		phones[req.Label] = phone
	}

	now := s.clock.Now()
	expiresAt := now.Add(s.holdTTL)
	var result ReserveResult

	err := s.arrangements.WithTx(ctx, func(txCtx context.Context) error {
		a, err := s.arrangements.GetByEventForUpdate(txCtx, in.EventID)
		if err != nil {
			return err
		}
		reapExpired(a, now)

		var conflicts []SeatConflict
		for _, req := range in.Seats {
			seat := a.SeatByLabel(req.Label)
			if seat == nil {
				conflicts = append(conflicts, SeatConflict{Label: req.Label, Status: SeatStatusUnknown})
				continue
			}
			if seat.Status != model.SeatAvailable {
				conflicts = append(conflicts, SeatConflict{Label: req.Label, Status: seat.Status})
			}
		}
		if len(conflicts) > 0 {
			return &SeatConflictError{Seats: conflicts}
		}

		labels := make([]string, 0, len(in.Seats))
		for _, req := range in.Seats {
			seat := a.SeatByLabel(req.Label)
			userID := in.UserID
			orderID := in.OrderID
			phone := phones[req.Label]
			expiry := expiresAt
			seat.Status = model.SeatReserved
			seat.ReservedBy = &userID
			seat.ReservationExpiry = &expiry
			seat.OrderID = &orderID
			seat.BookedByPhone = &phone
			labels = append(labels, req.Label)
		}
		a.RefreshCounts()
		if err := s.arrangements.Save(txCtx, a); err != nil {
			return err
		}
		result = ReserveResult{OrderID: in.OrderID, Labels: labels, ExpiresAt: expiresAt}
		return nil
	})
	if err != nil {
		return ReserveResult{}, err
	}
	return result, nil
}

// ConfirmInput identifies a paid order and the enrollment produced by
// the payment flow.
type ConfirmInput struct {
	OrderID      string
	EnrollmentID uint64
}

// ConfirmResult reports which seats became BOOKED.
type ConfirmResult struct {
	EventID uint64
	UserID  uint64
	Labels  []string
	Booked  int
}

// Confirm finalizes the reservation for a paid order: every seat still
// RESERVED under the order becomes BOOKED for the enrollment's user.
// A confirmation that matches no arrangement at all returns
// repository.ErrArrangementNotFound: payment succeeded for an order
// with no hold on record, which operators must reconcile. An
// arrangement found with zero matching seats is a success with Booked
// == 0, logged as an anomaly for the same reason.
func (s *BookingService) Confirm(ctx context.Context, in ConfirmInput) (ConfirmResult, error) {
	var result ConfirmResult
	err := s.arrangements.WithTx(ctx, func(txCtx context.Context) error {
		a, err := s.arrangements.FindByOrderForUpdate(txCtx, in.OrderID)
		if err != nil {
			return err
		}
		enrollment, err := s.enrollments.GetByID(txCtx, in.EnrollmentID)
		if err != nil {
			return err
		}

		labels := make([]string, 0, len(a.Seats))
		for i := range a.Seats {
			seat := &a.Seats[i]
			if seat.Status == model.SeatReserved && seat.OrderID != nil && *seat.OrderID == in.OrderID {
				seat.Book(enrollment.UserID, in.EnrollmentID)
				labels = append(labels, seat.Label)
			}
		}
		result = ConfirmResult{EventID: a.EventID, UserID: enrollment.UserID, Labels: labels, Booked: len(labels)}
		if len(labels) == 0 {
			logrus.WithFields(logrus.Fields{
				"order_id":      in.OrderID,
				"enrollment_id": in.EnrollmentID,
				"event_id":      a.EventID,
			}).Warn("payment confirmed but no reserved seats matched the order")
			return nil
		}
		a.RefreshCounts()
		return s.arrangements.Save(txCtx, a)
	})
	if err != nil {
		return ConfirmResult{}, err
	}
	return result, nil
}

// Release frees every seat still RESERVED under the order, clearing all
// hold fields including the holder phone. An order with no matching
// seats is a no-op success: it may never have reserved any, or was
// already released or reaped.
func (s *BookingService) Release(ctx context.Context, orderID string) (int, error) {
	released := 0
	err := s.arrangements.WithTx(ctx, func(txCtx context.Context) error {
		a, err := s.arrangements.FindByOrderForUpdate(txCtx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrArrangementNotFound) {
				return nil
			}
			return err
		}
		for i := range a.Seats {
			seat := &a.Seats[i]
			if seat.Status == model.SeatReserved && seat.OrderID != nil && *seat.OrderID == orderID {
				seat.Release()
				released++
			}
		}
		if released == 0 {
			return nil
		}
		a.RefreshCounts()
		return s.arrangements.Save(txCtx, a)
	})
	if err != nil {
		return 0, err
	}
	return released, nil
}

// CancelInput identifies one booked seat by its enrollment and the
// ticket holder's phone.
type CancelInput struct {
	EnrollmentID uint64
	HolderPhone  string
}

// CancelResult reports the seat freed by a cancellation, if any.
type CancelResult struct {
	Found   bool
	EventID uint64
	Label   string
}

// Cancel reverts exactly one BOOKED seat to AVAILABLE when a ticket is
// cancelled post-purchase. Absence of a matching seat is a no-op
// success: the event may not use a seat arrangement at all. Other seats
// of a multi-seat enrollment stay BOOKED until cancelled individually
// by their own holder phone.
func (s *BookingService) Cancel(ctx context.Context, in CancelInput) (CancelResult, error) {
	phone, ok := utils.NormalizePhone(in.HolderPhone)
	if !ok {
		return CancelResult{}, fmt.Errorf("%w: %q", ErrInvalidPhone, in.HolderPhone)
	}

	var result CancelResult
	err := s.arrangements.WithTx(ctx, func(txCtx context.Context) error {
		a, err := s.arrangements.FindByBookedSeatForUpdate(txCtx, in.EnrollmentID, phone)
		if err != nil {
			if errors.Is(err, repository.ErrArrangementNotFound) {
				return nil
			}
			return err
		}
		for i := range a.Seats {
			seat := &a.Seats[i]
			if seat.Status != model.SeatBooked {
				continue
			}
			if seat.EnrollmentID == nil || *seat.EnrollmentID != in.EnrollmentID {
				continue
			}
			if seat.BookedByPhone == nil || *seat.BookedByPhone != phone {
				continue
			}
			result = CancelResult{Found: true, EventID: a.EventID, Label: seat.Label}
			seat.Release()
			break
		}
		if !result.Found {
			return nil
		}
		a.RefreshCounts()
		return s.arrangements.Save(txCtx, a)
	})
	if err != nil {
		return CancelResult{}, err
	}
	return result, nil
}
