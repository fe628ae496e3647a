package common

import (
	"context"
	"testing"
	"time"

	"fbs/src/models"
	"fbs/src/store"
	"fbs/src/types"

	"github.com/jonboulle/clockwork"
)

func newTestStore(t *testing.T, at time.Time, rooms []models.Room, items []models.Item) (*store.Store, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(at)
	st := store.New(store.NewMemoryBlobs(), clock)
	if err := st.Initialize(context.Background(), rooms, items); err != nil {
		t.Fatalf("initialize: %s", err)
	}
	return st, clock
}

func mustBook(t *testing.T, st *store.Store, draft models.Booking, status types.BookingStatus) models.Booking {
	t.Helper()
	b, err := st.CreateBooking(context.Background(), draft)
	if err != nil {
		t.Fatalf("create booking: %s", err)
	}
	if status != types.BOOKING_PENDING {
		b, err = st.UpdateBookingStatus(context.Background(), b.ID, status)
		if err != nil {
			t.Fatalf("update booking status: %s", err)
		}
	}
	return b
}
