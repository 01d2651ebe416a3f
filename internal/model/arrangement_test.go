package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeCounts(t *testing.T) {
	tests := []struct {
		name      string
		seats     []Seat
		available int
		reserved  int
		booked    int
	}{
		{name: "empty"},
		{
			name: "mixed",
			seats: []Seat{
				{Label: "A1", Status: SeatAvailable},
				{Label: "A2", Status: SeatReserved},
				{Label: "A3", Status: SeatReserved},
				{Label: "A4", Status: SeatBooked},
			},
			available: 1, reserved: 2, booked: 1,
		},
		{
			name:      "unknown status counts as available",
			seats:     []Seat{{Label: "A1", Status: SeatStatus("")}},
			available: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			available, reserved, booked := RecomputeCounts(tt.seats)
			assert.Equal(t, tt.available, available)
			assert.Equal(t, tt.reserved, reserved)
			assert.Equal(t, tt.booked, booked)
		})
	}
}

func TestRefreshCountsInvariant(t *testing.T) {
	a := SeatArrangement{Seats: []Seat{
		{Label: "A1", Status: SeatAvailable},
		{Label: "A2", Status: SeatReserved},
		{Label: "A3", Status: SeatBooked},
		{Label: "A4", Status: SeatBooked},
	}}
	a.RefreshCounts()
	assert.Equal(t, 4, a.TotalSeats)
	assert.Equal(t, a.TotalSeats, a.AvailableSeats+a.ReservedSeats+a.BookedSeats)
}

func TestSeatByLabel(t *testing.T) {
	a := SeatArrangement{Seats: []Seat{{Label: "A1"}, {Label: "A2"}}}

	seat := a.SeatByLabel("A2")
	require.NotNil(t, seat)
	assert.Equal(t, "A2", seat.Label)

	// The pointer aliases the slice so callers can mutate in place.
	seat.Status = SeatBooked
	assert.Equal(t, SeatBooked, a.Seats[1].Status)

	assert.Nil(t, a.SeatByLabel("ZZ"))
}

func TestPublicViewHidesHolderFields(t *testing.T) {
	phone := "9000000001"
	user := uint64(42)
	a := SeatArrangement{Seats: []Seat{
		{Label: "A1", Status: SeatBooked, BookedBy: &user, BookedByPhone: &phone},
		{Label: "A2", Status: SeatAvailable},
	}}
	assert.Equal(t, []SeatView{
		{Label: "A1", Status: SeatBooked},
		{Label: "A2", Status: SeatAvailable},
	}, a.PublicView())
}

func TestHoldExpired(t *testing.T) {
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	expiry := now

	s := Seat{Status: SeatReserved, ReservationExpiry: &expiry}
	assert.True(t, s.HoldExpired(now), "expiry instant itself counts as lapsed")
	assert.False(t, s.HoldExpired(now.Add(-time.Second)))

	s = Seat{Status: SeatAvailable}
	assert.False(t, s.HoldExpired(now))

	s = Seat{Status: SeatBooked, ReservationExpiry: &expiry}
	assert.False(t, s.HoldExpired(now), "booked seats never expire")
}

func TestSeatReleaseClearsEverything(t *testing.T) {
	user := uint64(5)
	order := "ORD1"
	phone := "9000000001"
	enrollment := uint64(2)
	expiry := time.Now()
	s := Seat{
		Label:             "A1",
		Status:            SeatBooked,
		ReservedBy:        &user,
		ReservationExpiry: &expiry,
		OrderID:           &order,
		BookedBy:          &user,
		BookedByPhone:     &phone,
		EnrollmentID:      &enrollment,
	}
	s.Release()
	assert.Equal(t, SeatAvailable, s.Status)
	assert.Nil(t, s.ReservedBy)
	assert.Nil(t, s.ReservationExpiry)
	assert.Nil(t, s.OrderID)
	assert.Nil(t, s.BookedBy)
	assert.Nil(t, s.BookedByPhone)
	assert.Nil(t, s.EnrollmentID)
}

func TestSeatBookKeepsHolderPhone(t *testing.T) {
	user := uint64(5)
	order := "ORD1"
	phone := "9000000001"
	expiry := time.Now()
	s := Seat{
		Label:             "A1",
		Status:            SeatReserved,
		ReservedBy:        &user,
		ReservationExpiry: &expiry,
		OrderID:           &order,
		BookedByPhone:     &phone,
	}
	s.Book(42, 9)
	assert.Equal(t, SeatBooked, s.Status)
	require.NotNil(t, s.BookedBy)
	assert.Equal(t, uint64(42), *s.BookedBy)
	require.NotNil(t, s.EnrollmentID)
	assert.Equal(t, uint64(9), *s.EnrollmentID)
	require.NotNil(t, s.BookedByPhone)
	assert.Equal(t, phone, *s.BookedByPhone)
	assert.Nil(t, s.ReservedBy)
	assert.Nil(t, s.ReservationExpiry)
	assert.Nil(t, s.OrderID)
}
