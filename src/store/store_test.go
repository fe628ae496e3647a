package store

import (
	"context"
	"testing"
	"time"

	"fbs/src/models"
	"fbs/src/types"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

var tz = time.UTC

func testCatalog() ([]models.Room, []models.Item) {
	rooms := []models.Room{
		{ID: "A01", Name: "Meeting Room A01", Capacity: 30, Size: "Medium", Facilities: []string{"AC", "Projector"}},
		{ID: "B02", Name: "Auditorium B02", Capacity: 120, Size: "Large", Facilities: []string{"AC", "Sound System"}},
	}
	items := []models.Item{
		{ID: "X", Name: "Portable Projector", Stock: 5, Category: "Electronics"},
	}
	return rooms, items
}

func newTestStore(t *testing.T, at time.Time) (*Store, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(at)
	st := New(NewMemoryBlobs(), clock)
	rooms, items := testCatalog()
	if err := st.Initialize(context.Background(), rooms, items); err != nil {
		t.Fatalf("initialize: %s", err)
	}
	return st, clock
}

func TestInitializeSeedsAndIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, tz)
	clock := clockwork.NewFakeClockAt(now)
	blobs := NewMemoryBlobs()
	rooms, items := testCatalog()

	st := New(blobs, clock)
	assert.NoError(t, st.Initialize(context.Background(), rooms, items))
	assert.Len(t, st.Rooms(), 2)
	assert.Len(t, st.Items(), 1)

	blocked, err := st.ToggleBlock(context.Background(), types.KIND_ROOM, "A01")
	assert.NoError(t, err)
	assert.True(t, blocked)

	// A second store over the same snapshots must load the toggled registry,
	// not reseed from the catalog.
	st2 := New(blobs, clock)
	assert.NoError(t, st2.Initialize(context.Background(), rooms, items))
	room, ok := st2.Room("A01")
	assert.True(t, ok)
	assert.True(t, room.Blocked)
}

func TestCreateBooking(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, tz)
	st, _ := newTestStore(t, now)

	b, err := st.CreateBooking(context.Background(), models.Booking{
		RequesterID: "12345",
		Kind:        types.KIND_ROOM,
		ResourceID:  "A01",
		Purpose:     "Weekly sync",
		Start:       now.Add(time.Hour),
		End:         now.Add(3 * time.Hour),
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, types.BOOKING_PENDING, b.Status)
	assert.Equal(t, "Meeting Room A01", b.ResourceName)
	assert.Equal(t, now, b.CreatedAt)
	assert.Len(t, st.BookingsByRequester("12345"), 1)
}

func TestCreateBookingRejectsInvalidWindow(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, tz)
	st, _ := newTestStore(t, now)

	_, err := st.CreateBooking(context.Background(), models.Booking{
		RequesterID: "12345",
		Kind:        types.KIND_ROOM,
		ResourceID:  "A01",
		Start:       now.Add(2 * time.Hour),
		End:         now.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = st.CreateBooking(context.Background(), models.Booking{
		RequesterID: "12345",
		Kind:        types.KIND_ROOM,
		ResourceID:  "A01",
		Start:       now,
		End:         now,
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestCreateBookingUnknownResource(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, tz)
	st, _ := newTestStore(t, now)

	_, err := st.CreateBooking(context.Background(), models.Booking{
		RequesterID: "12345",
		Kind:        types.KIND_ROOM,
		ResourceID:  "Z99",
		Start:       now,
		End:         now.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateBookingStatus(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, tz)
	st, _ := newTestStore(t, now)

	b, _ := st.CreateBooking(context.Background(), models.Booking{
		RequesterID: "12345",
		Kind:        types.KIND_ROOM,
		ResourceID:  "A01",
		Start:       now,
		End:         now.Add(2 * time.Hour),
	})

	updated, err := st.UpdateBookingStatus(context.Background(), b.ID, types.BOOKING_ACCEPTED)
	assert.NoError(t, err)
	assert.Equal(t, types.BOOKING_ACCEPTED, updated.Status)

	_, err = st.UpdateBookingStatus(context.Background(), "PJ-missing", types.BOOKING_ACCEPTED)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.UpdateBookingStatus(context.Background(), b.ID, types.BookingStatus("archived"))
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestAcceptItemBookingChecksStock(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, tz)
	st, _ := newTestStore(t, now)

	accept := func(qty uint) error {
		b, err := st.CreateBooking(context.Background(), models.Booking{
			RequesterID: "12345",
			Kind:        types.KIND_ITEM,
			ResourceID:  "X",
			Qty:         qty,
			Start:       now,
			End:         now.Add(4 * time.Hour),
		})
		if err != nil {
			return err
		}
		_, err = st.UpdateBookingStatus(context.Background(), b.ID, types.BOOKING_ACCEPTED)
		return err
	}

	// Stock is 5: 2 + 2 fits, the third 2 does not.
	assert.NoError(t, accept(2))
	assert.NoError(t, accept(2))
	assert.ErrorIs(t, accept(2), ErrQuantityExceedsStock)
	assert.EqualValues(t, 4, st.AcceptedItemQuantity("X", now))

	// A single remaining unit still fits.
	assert.NoError(t, accept(1))
}

func TestCancelBookingIsUnconditional(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, tz)
	st, _ := newTestStore(t, now)

	b, _ := st.CreateBooking(context.Background(), models.Booking{
		RequesterID: "12345",
		Kind:        types.KIND_ROOM,
		ResourceID:  "A01",
		Start:       now,
		End:         now.Add(time.Hour),
	})
	st.UpdateBookingStatus(context.Background(), b.ID, types.BOOKING_ACCEPTED)

	cancelled, err := st.CancelBooking(context.Background(), b.ID)
	assert.NoError(t, err)
	assert.Equal(t, types.BOOKING_CANCELLED, cancelled.Status)

	_, err = st.CancelBooking(context.Background(), "PJ-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleBlockDoubleToggleRestores(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, tz)
	st, _ := newTestStore(t, now)

	blocked, err := st.ToggleBlock(context.Background(), types.KIND_ITEM, "X")
	assert.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = st.ToggleBlock(context.Background(), types.KIND_ITEM, "X")
	assert.NoError(t, err)
	assert.False(t, blocked)

	_, err = st.ToggleBlock(context.Background(), types.KIND_ROOM, "Z99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteExpired(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, tz)
	st, clock := newTestStore(t, now)

	past, _ := st.CreateBooking(context.Background(), models.Booking{
		RequesterID: "12345",
		Kind:        types.KIND_ROOM,
		ResourceID:  "A01",
		Start:       now,
		End:         now.Add(time.Hour),
	})
	future, _ := st.CreateBooking(context.Background(), models.Booking{
		RequesterID: "12345",
		Kind:        types.KIND_ROOM,
		ResourceID:  "B02",
		Start:       now,
		End:         now.Add(24 * time.Hour),
	})
	st.UpdateBookingStatus(context.Background(), past.ID, types.BOOKING_ACCEPTED)
	st.UpdateBookingStatus(context.Background(), future.ID, types.BOOKING_ACCEPTED)

	// Nothing has expired yet.
	n, err := st.CompleteExpired(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, n)

	clock.Advance(2 * time.Hour)
	n, err = st.CompleteExpired(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	got, _ := st.Booking(past.ID)
	assert.Equal(t, types.BOOKING_COMPLETED, got.Status)
	got, _ = st.Booking(future.ID)
	assert.Equal(t, types.BOOKING_ACCEPTED, got.Status)
}

func TestSnapshotRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, tz)
	clock := clockwork.NewFakeClockAt(now)
	blobs := NewMemoryBlobs()
	rooms, items := testCatalog()

	st := New(blobs, clock)
	assert.NoError(t, st.Initialize(context.Background(), rooms, items))
	b, err := st.CreateBooking(context.Background(), models.Booking{
		RequesterID: "12345",
		Kind:        types.KIND_ITEM,
		ResourceID:  "X",
		Qty:         3,
		Start:       now,
		End:         now.Add(time.Hour),
	})
	assert.NoError(t, err)

	// A fresh store over the same blobs sees the booking with its timestamps
	// intact.
	st2 := New(blobs, clock)
	assert.NoError(t, st2.Initialize(context.Background(), rooms, items))
	got, ok := st2.Booking(b.ID)
	assert.True(t, ok)
	assert.Equal(t, b.Start.UTC(), got.Start.UTC())
	assert.Equal(t, b.End.UTC(), got.End.UTC())
	assert.EqualValues(t, 3, got.Qty)
}
