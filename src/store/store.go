// Package store owns the booking, registry, and feedback collections. All
// mutation funnels through one Store guarded by a single lock and is mirrored
// to named snapshots before the lock is released, so a sweep can never
// overwrite a concurrently created booking.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"fbs/src/models"
	"fbs/src/types"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

var (
	ErrNotFound             = errors.New("record not found")
	ErrInvalidWindow        = errors.New("booking window must end after it starts")
	ErrUnknownStatus        = errors.New("unknown booking status")
	ErrUnknownKind          = errors.New("unknown resource kind")
	ErrQuantityExceedsStock = errors.New("requested quantity exceeds available stock")
)

type Store struct {
	mu    sync.Mutex
	blobs Blobs
	clock clockwork.Clock

	bookings []models.Booking
	rooms    []models.Room
	items    []models.Item
	feedback []models.Feedback
}

func New(blobs Blobs, clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{blobs: blobs, clock: clock}
}

func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// Initialize loads every snapshot. Missing booking and feedback snapshots
// start empty; a missing registry snapshot is seeded from the static catalog
// with block flags cleared and persisted immediately. Idempotent: a second
// call loads the existing snapshots unchanged.
func (s *Store) Initialize(ctx context.Context, rooms []models.Room, items []models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx, SnapshotBookings, &s.bookings); err != nil {
		return err
	}
	if err := s.load(ctx, SnapshotFeedback, &s.feedback); err != nil {
		return err
	}

	err := s.load(ctx, SnapshotRooms, &s.rooms)
	if errors.Is(err, ErrNoSnapshot) {
		s.rooms = make([]models.Room, len(rooms))
		copy(s.rooms, rooms)
		for i := range s.rooms {
			s.rooms[i].Blocked = false
		}
		log.Printf("Seeding room registry with %d catalog entries\n", len(s.rooms))
		if err := s.persist(ctx, SnapshotRooms, s.rooms); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	err = s.load(ctx, SnapshotItems, &s.items)
	if errors.Is(err, ErrNoSnapshot) {
		s.items = make([]models.Item, len(items))
		copy(s.items, items)
		for i := range s.items {
			s.items[i].Blocked = false
		}
		log.Printf("Seeding item registry with %d catalog entries\n", len(s.items))
		if err := s.persist(ctx, SnapshotItems, s.items); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	return nil
}

func (s *Store) load(ctx context.Context, name string, out any) error {
	data, err := s.blobs.Load(ctx, name)
	if errors.Is(err, ErrNoSnapshot) {
		if name == SnapshotBookings || name == SnapshotFeedback {
			return nil
		}
		return err
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// persist writes the full collection for one snapshot. Callers hold s.mu.
func (s *Store) persist(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding snapshot %s: %w", name, err)
	}
	return s.blobs.Save(ctx, name, data)
}

// CreateBooking appends a new pending booking and persists the collection.
// The resource must exist in the registry; its display name is copied onto
// the record. Windows that do not end after they start are rejected.
func (s *Store) CreateBooking(ctx context.Context, draft models.Booking) (models.Booking, error) {
	if !draft.Kind.Valid() {
		return models.Booking{}, ErrUnknownKind
	}
	if !draft.End.After(draft.Start) {
		return models.Booking{}, ErrInvalidWindow
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch draft.Kind {
	case types.KIND_ROOM:
		room, ok := s.findRoom(draft.ResourceID)
		if !ok {
			return models.Booking{}, ErrNotFound
		}
		draft.ResourceName = room.Name
		draft.Qty = 0
	case types.KIND_ITEM:
		item, ok := s.findItem(draft.ResourceID)
		if !ok {
			return models.Booking{}, ErrNotFound
		}
		draft.ResourceName = item.Name
	}

	draft.ID = fmt.Sprintf("PJ-%s", uuid.NewString())
	draft.Status = types.BOOKING_PENDING
	draft.CreatedAt = s.clock.Now()

	next := append(append([]models.Booking{}, s.bookings...), draft)
	if err := s.persist(ctx, SnapshotBookings, next); err != nil {
		return models.Booking{}, err
	}
	s.bookings = next
	return draft, nil
}

// UpdateBookingStatus sets the booking's status. Accepting an item booking
// verifies, under the store lock, that the requested quantity still fits the
// stock not already held by other accepted bookings.
func (s *Store) UpdateBookingStatus(ctx context.Context, id string, status types.BookingStatus) (models.Booking, error) {
	if !status.Valid() {
		return models.Booking{}, ErrUnknownStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findBooking(id)
	if idx < 0 {
		return models.Booking{}, ErrNotFound
	}
	b := s.bookings[idx]

	if status == types.BOOKING_ACCEPTED && b.Kind == types.KIND_ITEM {
		item, ok := s.findItem(b.ResourceID)
		if !ok {
			return models.Booking{}, ErrNotFound
		}
		held := s.acceptedItemQuantity(b.ResourceID, s.clock.Now(), b.ID)
		if held+b.Quantity() > item.Stock {
			return models.Booking{}, ErrQuantityExceedsStock
		}
	}

	next := append([]models.Booking{}, s.bookings...)
	next[idx].Status = status
	if err := s.persist(ctx, SnapshotBookings, next); err != nil {
		return models.Booking{}, err
	}
	s.bookings = next
	return next[idx], nil
}

// CancelBooking sets the booking to cancelled regardless of its current
// status. Callers that only allow cancelling pending or review bookings
// enforce that themselves.
func (s *Store) CancelBooking(ctx context.Context, id string) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findBooking(id)
	if idx < 0 {
		return models.Booking{}, ErrNotFound
	}
	next := append([]models.Booking{}, s.bookings...)
	next[idx].Status = types.BOOKING_CANCELLED
	if err := s.persist(ctx, SnapshotBookings, next); err != nil {
		return models.Booking{}, err
	}
	s.bookings = next
	return next[idx], nil
}

// CompleteExpired promotes every accepted booking whose end has passed to
// completed. The next collection is computed and persisted in one operation
// under the store lock, so a booking created during the sweep is never lost.
func (s *Store) CompleteExpired(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	changed := 0
	next := append([]models.Booking{}, s.bookings...)
	for i, b := range next {
		if b.Status == types.BOOKING_ACCEPTED && b.End.Before(now) {
			next[i].Status = types.BOOKING_COMPLETED
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	if err := s.persist(ctx, SnapshotBookings, next); err != nil {
		return 0, err
	}
	s.bookings = next
	return changed, nil
}

// ToggleBlock flips the administrator block flag and returns the new value.
// Existing bookings are untouched; only future availability reads change.
func (s *Store) ToggleBlock(ctx context.Context, kind types.ResourceKind, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case types.KIND_ROOM:
		for i := range s.rooms {
			if s.rooms[i].ID == id {
				next := append([]models.Room{}, s.rooms...)
				next[i].Blocked = !next[i].Blocked
				if err := s.persist(ctx, SnapshotRooms, next); err != nil {
					return false, err
				}
				s.rooms = next
				return next[i].Blocked, nil
			}
		}
		return false, ErrNotFound
	case types.KIND_ITEM:
		for i := range s.items {
			if s.items[i].ID == id {
				next := append([]models.Item{}, s.items...)
				next[i].Blocked = !next[i].Blocked
				if err := s.persist(ctx, SnapshotItems, next); err != nil {
					return false, err
				}
				s.items = next
				return next[i].Blocked, nil
			}
		}
		return false, ErrNotFound
	}
	return false, ErrUnknownKind
}

func (s *Store) AddFeedback(ctx context.Context, fb models.Feedback) (models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fb.ID = uuid.NewString()
	fb.CreatedAt = s.clock.Now()
	next := append(append([]models.Feedback{}, s.feedback...), fb)
	if err := s.persist(ctx, SnapshotFeedback, next); err != nil {
		return models.Feedback{}, err
	}
	s.feedback = next
	return fb, nil
}

func (s *Store) Bookings() []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Booking{}, s.bookings...)
}

func (s *Store) Booking(id string) (models.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.findBooking(id)
	if idx < 0 {
		return models.Booking{}, false
	}
	return s.bookings[idx], true
}

func (s *Store) BookingsByRequester(requesterID string) []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.RequesterID == requesterID {
			out = append(out, b)
		}
	}
	return out
}

func (s *Store) BookingsByStatus(statuses ...types.BookingStatus) []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		for _, st := range statuses {
			if b.Status == st {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

func (s *Store) BookingsByResource(kind types.ResourceKind, resourceID string) []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.Kind == kind && b.ResourceID == resourceID {
			out = append(out, b)
		}
	}
	return out
}

func (s *Store) Rooms() []models.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Room{}, s.rooms...)
}

func (s *Store) Room(id string) (models.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findRoom(id)
}

func (s *Store) Items() []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Item{}, s.items...)
}

func (s *Store) Item(id string) (models.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findItem(id)
}

func (s *Store) Feedback() []models.Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Feedback{}, s.feedback...)
}

// AcceptedItemQuantity sums the units held by accepted bookings of the item
// whose windows have not ended before t.
func (s *Store) AcceptedItemQuantity(itemID string, t time.Time) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acceptedItemQuantity(itemID, t, "")
}

func (s *Store) acceptedItemQuantity(itemID string, t time.Time, excludeID string) uint {
	var total uint
	for _, b := range s.bookings {
		if b.Kind != types.KIND_ITEM || b.ResourceID != itemID || b.ID == excludeID {
			continue
		}
		if b.Status == types.BOOKING_ACCEPTED && !b.End.Before(t) {
			total += b.Quantity()
		}
	}
	return total
}

func (s *Store) findBooking(id string) int {
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) findRoom(id string) (models.Room, bool) {
	for _, r := range s.rooms {
		if r.ID == id {
			return r, true
		}
	}
	return models.Room{}, false
}

func (s *Store) findItem(id string) (models.Item, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return models.Item{}, false
}
