package common

import (
	"context"
	"testing"
	"time"

	"fbs/src/models"
	"fbs/src/types"

	"github.com/stretchr/testify/assert"
)

func TestSweepPromotesExpiredAcceptedBookings(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, tz)
	st, clock := newTestStore(t, now, fixtureRooms(), fixtureItems())

	expired := mustBook(t, st, models.Booking{
		RequesterID: "12345",
		Kind:        types.KIND_ROOM,
		ResourceID:  "A01",
		Start:       now,
		End:         now.Add(time.Hour),
	}, types.BOOKING_ACCEPTED)
	running := mustBook(t, st, models.Booking{
		RequesterID: "12345",
		Kind:        types.KIND_ROOM,
		ResourceID:  "B02",
		Start:       now,
		End:         now.Add(6 * time.Hour),
	}, types.BOOKING_ACCEPTED)
	pending := mustBook(t, st, models.Booking{
		RequesterID: "12345",
		Kind:        types.KIND_ROOM,
		ResourceID:  "A01",
		Start:       now,
		End:         now.Add(time.Hour),
	}, types.BOOKING_PENDING)

	sweeper := NewSweeper(st)
	clock.Advance(2 * time.Hour)
	n, err := sweeper.Sweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	got, _ := st.Booking(expired.ID)
	assert.Equal(t, types.BOOKING_COMPLETED, got.Status)
	got, _ = st.Booking(running.ID)
	assert.Equal(t, types.BOOKING_ACCEPTED, got.Status)
	// Pending bookings expire out of the queue but keep their status.
	got, _ = st.Booking(pending.ID)
	assert.Equal(t, types.BOOKING_PENDING, got.Status)
}

func TestSweepIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, tz)
	st, clock := newTestStore(t, now, fixtureRooms(), fixtureItems())

	mustBook(t, st, models.Booking{
		RequesterID: "12345",
		Kind:        types.KIND_ROOM,
		ResourceID:  "A01",
		Start:       now,
		End:         now.Add(time.Hour),
	}, types.BOOKING_ACCEPTED)

	sweeper := NewSweeper(st)
	clock.Advance(2 * time.Hour)

	n, err := sweeper.Sweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = sweeper.Sweep(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, n)
}
