package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/eventure/seat-reservation/internal/clock"
	"github.com/eventure/seat-reservation/internal/model"
	"github.com/eventure/seat-reservation/internal/repository"
)

// ArrangementService owns the arrangement lifecycle: create, read,
// layout updates and deletion. It keeps the owning event's
// back-reference and available-seat counter in sync on every
// structural change.
type ArrangementService struct {
	arrangements ArrangementStore
	events       EventStore
	clock        clock.Clock
}

// NewArrangementService wires the service to its stores and clock.
func NewArrangementService(arrangements ArrangementStore, events EventStore, clk clock.Clock) *ArrangementService {
	return &ArrangementService{
		arrangements: arrangements,
		events:       events,
		clock:        clk,
	}
}

// CreateArrangementInput carries everything needed to create a seat map
// for an event. SeatLabels must be non-empty, unique and non-blank.
type CreateArrangementInput struct {
	EventID    uint64
	ImageURL   string
	SeatLabels []string
	CreatedBy  uint64
}

// Create persists a new arrangement with every seat AVAILABLE. It fails
// with repository.ErrEventNotFound when the event does not exist and
// repository.ErrArrangementExists when the event already has one.
func (s *ArrangementService) Create(ctx context.Context, in CreateArrangementInput) (*model.SeatArrangement, error) {
	labels, err := cleanLabels(in.SeatLabels)
	if err != nil {
		return nil, err
	}

	var result *model.SeatArrangement
	err = s.arrangements.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.events.GetByID(txCtx, in.EventID)
		if err != nil {
			return err
		}
		// Fast path; the unique index on event_id is the backstop.
		if event.HasSeatArrangement {
			return repository.ErrArrangementExists
		}

		a := &model.SeatArrangement{
			EventID:   in.EventID,
			ImageURL:  in.ImageURL,
			CreatedBy: in.CreatedBy,
			UpdatedBy: in.CreatedBy,
			Seats:     make([]model.Seat, 0, len(labels)),
		}
		for _, label := range labels {
			a.Seats = append(a.Seats, model.Seat{Label: label, Status: model.SeatAvailable})
		}
		a.RefreshCounts()

		if err := s.arrangements.Create(txCtx, a); err != nil {
			return err
		}
		if err := s.events.SyncSeatInfo(txCtx, in.EventID, &a.ID, a.AvailableSeats); err != nil {
			return err
		}
		result = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns the administrative view of an arrangement with every seat
// field. Expired holds are reaped (and persisted) before the read so a
// stale RESERVED state is never reported.
func (s *ArrangementService) Get(ctx context.Context, eventID uint64) (*model.SeatArrangement, error) {
	var result *model.SeatArrangement
	err := s.arrangements.WithTx(ctx, func(txCtx context.Context) error {
		a, err := s.arrangements.GetByEventForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}
		if released := reapExpired(a, s.clock.Now()); released > 0 {
			a.RefreshCounts()
			if err := s.arrangements.Save(txCtx, a); err != nil {
				return err
			}
		}
		result = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateLayoutInput describes a layout change. A nil SeatLabels keeps
// the current seat set; a nil ImageURL keeps the current image.
type UpdateLayoutInput struct {
	EventID    uint64
	ImageURL   *string
	SeatLabels []string
	UpdatedBy  uint64
}

// UpdateLayout replaces the seat label set. Seats whose label persists
// keep all state; new labels start AVAILABLE. Dropping a BOOKED seat
// aborts the whole update; dropping RESERVED seats proceeds but is
// logged with the stranded order ids, since a pending payment for those
// seats will no longer find anything to confirm.
func (s *ArrangementService) UpdateLayout(ctx context.Context, in UpdateLayoutInput) (*model.SeatArrangement, error) {
	var labels []string
	if in.SeatLabels != nil {
		var err error
		labels, err = cleanLabels(in.SeatLabels)
		if err != nil {
			return nil, err
		}
	}

	var result *model.SeatArrangement
	err := s.arrangements.WithTx(ctx, func(txCtx context.Context) error {
		a, err := s.arrangements.GetByEventForUpdate(txCtx, in.EventID)
		if err != nil {
			return err
		}
		reapExpired(a, s.clock.Now())

		if labels != nil {
			keep := make(map[string]*model.Seat, len(a.Seats))
			for i := range a.Seats {
				keep[a.Seats[i].Label] = &a.Seats[i]
			}
			wanted := make(map[string]struct{}, len(labels))
			for _, l := range labels {
				wanted[l] = struct{}{}
			}

			var strandedOrders []string
			for i := range a.Seats {
				seat := &a.Seats[i]
				if _, ok := wanted[seat.Label]; ok {
					continue
				}
				if seat.Status == model.SeatBooked {
					return fmt.Errorf("%w: %s", ErrBookedSeatRemoval, seat.Label)
				}
				if seat.Status == model.SeatReserved && seat.OrderID != nil {
					strandedOrders = append(strandedOrders, *seat.OrderID)
				}
			}
			if len(strandedOrders) > 0 {
				logrus.WithFields(logrus.Fields{
					"event_id": in.EventID,
					"orders":   strandedOrders,
				}).Warn("layout update drops reserved seats; pending orders need manual reconciliation")
			}

			next := make([]model.Seat, 0, len(labels))
			for _, label := range labels {
				if existing, ok := keep[label]; ok {
					next = append(next, *existing)
					continue
				}
				next = append(next, model.Seat{Label: label, Status: model.SeatAvailable})
			}
			a.Seats = next
		}

		if in.ImageURL != nil {
			a.ImageURL = *in.ImageURL
		}
		a.UpdatedBy = in.UpdatedBy
		a.RefreshCounts()

		if err := s.arrangements.Save(txCtx, a); err != nil {
			return err
		}
		if err := s.events.SyncSeatInfo(txCtx, in.EventID, &a.ID, a.AvailableSeats); err != nil {
			return err
		}
		result = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes an arrangement and clears the event back-reference.
// It is rejected while any seat is BOOKED. RESERVED seats are force
// released with a warning; that is a deliberate administrative
// override, not a normal path.
func (s *ArrangementService) Delete(ctx context.Context, eventID uint64) error {
	return s.arrangements.WithTx(ctx, func(txCtx context.Context) error {
		a, err := s.arrangements.GetByEventForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}
		reapExpired(a, s.clock.Now())

		var heldOrders []string
		for i := range a.Seats {
			switch a.Seats[i].Status {
			case model.SeatBooked:
				return ErrArrangementHasBookings
			case model.SeatReserved:
				if a.Seats[i].OrderID != nil {
					heldOrders = append(heldOrders, *a.Seats[i].OrderID)
				}
			}
		}
		if len(heldOrders) > 0 {
			logrus.WithFields(logrus.Fields{
				"event_id": eventID,
				"orders":   heldOrders,
			}).Warn("deleting arrangement force-releases reserved seats")
		}

		if err := s.arrangements.Delete(txCtx, a.ID); err != nil {
			return err
		}
		return s.events.SyncSeatInfo(txCtx, eventID, nil, 0)
	})
}

// cleanLabels trims, validates and preserves the order of seat labels.
func cleanLabels(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidSeatList)
	}
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, l := range raw {
		label := strings.TrimSpace(l)
		if label == "" {
			return nil, fmt.Errorf("%w: blank label", ErrInvalidSeatList)
		}
		if _, dup := seen[label]; dup {
			return nil, fmt.Errorf("%w: duplicate label %s", ErrInvalidSeatList, label)
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out, nil
}
