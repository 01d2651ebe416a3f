package service

import (
	"context"
	"sync"
	"time"

	"github.com/eventure/seat-reservation/internal/model"
	"github.com/eventure/seat-reservation/internal/repository"
)

// testClock is a mutable clock for driving expiry in tests.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(t time.Time) *testClock {
	return &testClock{now: t.UTC()}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeArrangements is an in-memory ArrangementStore. WithTx serializes
// callers with a mutex, mirroring the row lock the MySQL repository
// takes, and restores a snapshot when the closure fails so partial
// writes never stick.
type fakeArrangements struct {
	mu     sync.Mutex
	nextID uint64
	byID   map[uint64]*model.SeatArrangement
}

func newFakeArrangements() *fakeArrangements {
	return &fakeArrangements{nextID: 1, byID: map[uint64]*model.SeatArrangement{}}
}

func cloneArrangement(a *model.SeatArrangement) *model.SeatArrangement {
	c := *a
	c.Seats = make([]model.Seat, len(a.Seats))
	copy(c.Seats, a.Seats)
	return &c
}

func (f *fakeArrangements) snapshot() map[uint64]*model.SeatArrangement {
	snap := make(map[uint64]*model.SeatArrangement, len(f.byID))
	for id, a := range f.byID {
		snap[id] = cloneArrangement(a)
	}
	return snap
}

func (f *fakeArrangements) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := f.snapshot()
	if err := fn(ctx); err != nil {
		f.byID = snap
		return err
	}
	return nil
}

func (f *fakeArrangements) GetByEventForUpdate(ctx context.Context, eventID uint64) (*model.SeatArrangement, error) {
	for _, a := range f.byID {
		if a.EventID == eventID {
			return cloneArrangement(a), nil
		}
	}
	return nil, repository.ErrArrangementNotFound
}

func (f *fakeArrangements) FindByOrderForUpdate(ctx context.Context, orderID string) (*model.SeatArrangement, error) {
	for _, a := range f.byID {
		for i := range a.Seats {
			if a.Seats[i].OrderID != nil && *a.Seats[i].OrderID == orderID {
				return cloneArrangement(a), nil
			}
		}
	}
	return nil, repository.ErrArrangementNotFound
}

func (f *fakeArrangements) FindByBookedSeatForUpdate(ctx context.Context, enrollmentID uint64, phone string) (*model.SeatArrangement, error) {
	for _, a := range f.byID {
		for i := range a.Seats {
			s := &a.Seats[i]
			if s.Status == model.SeatBooked &&
				s.EnrollmentID != nil && *s.EnrollmentID == enrollmentID &&
				s.BookedByPhone != nil && *s.BookedByPhone == phone {
				return cloneArrangement(a), nil
			}
		}
	}
	return nil, repository.ErrArrangementNotFound
}

func (f *fakeArrangements) Create(ctx context.Context, a *model.SeatArrangement) error {
	for _, existing := range f.byID {
		if existing.EventID == a.EventID {
			return repository.ErrArrangementExists
		}
	}
	a.ID = f.nextID
	f.nextID++
	f.byID[a.ID] = cloneArrangement(a)
	return nil
}

func (f *fakeArrangements) Save(ctx context.Context, a *model.SeatArrangement) error {
	if _, ok := f.byID[a.ID]; !ok {
		return repository.ErrArrangementNotFound
	}
	f.byID[a.ID] = cloneArrangement(a)
	return nil
}

func (f *fakeArrangements) Delete(ctx context.Context, id uint64) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrArrangementNotFound
	}
	delete(f.byID, id)
	return nil
}

// seed inserts an arrangement directly, bypassing the uniqueness check,
// for tests that need pre-existing seat state.
func (f *fakeArrangements) seed(eventID uint64, seats ...model.Seat) *model.SeatArrangement {
	a := &model.SeatArrangement{ID: f.nextID, EventID: eventID, Seats: seats}
	f.nextID++
	a.RefreshCounts()
	f.byID[a.ID] = a
	return a
}

// current returns the stored state of the arrangement for assertions.
func (f *fakeArrangements) current(eventID uint64) *model.SeatArrangement {
	for _, a := range f.byID {
		if a.EventID == eventID {
			return cloneArrangement(a)
		}
	}
	return nil
}

// fakeEvents mirrors the event registry so tests can assert the
// arrangement back-reference and seat counter stay in sync.
type fakeEvents struct {
	mu   sync.Mutex
	byID map[uint64]*model.Event
}

func newFakeEvents(ids ...uint64) *fakeEvents {
	f := &fakeEvents{byID: map[uint64]*model.Event{}}
	for _, id := range ids {
		f.byID[id] = &model.Event{ID: id}
	}
	return f
}

func (f *fakeEvents) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEvents) SyncSeatInfo(ctx context.Context, eventID uint64, arrangementID *uint64, availableSeats int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[eventID]
	if !ok {
		return nil
	}
	e.HasSeatArrangement = arrangementID != nil
	e.SeatArrangementID = arrangementID
	e.AvailableSeats = availableSeats
	return nil
}

// event returns the mirrored registry row for assertions.
func (f *fakeEvents) event(id uint64) *model.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id]
}

// fakeEnrollments is a static enrollment registry.
type fakeEnrollments struct {
	byID map[uint64]model.Enrollment
}

func newFakeEnrollments(enrollments ...model.Enrollment) *fakeEnrollments {
	f := &fakeEnrollments{byID: map[uint64]model.Enrollment{}}
	for _, e := range enrollments {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEnrollments) GetByID(ctx context.Context, id uint64) (*model.Enrollment, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrEnrollmentNotFound
	}
	return &e, nil
}

func strPtr(s string) *string { return &s }

func u64Ptr(v uint64) *uint64 { return &v }

func timePtr(t time.Time) *time.Time {
	u := t.UTC()
	return &u
}
