// Package common computes the derived views over the store: availability,
// queue pressure, wait estimates, expiry promotion, and room recommendations.
// Every query here is a total function; a missing resource yields the most
// conservative answer.
package common

import (
	"time"

	"fbs/src/store"
	"fbs/src/types"
)

// IsRoomAvailable reports whether the room can be used at instant now.
// A missing or administrator-blocked room is never available; otherwise the
// room is free unless an accepted booking's window covers now.
func IsRoomAvailable(st *store.Store, roomID string, now time.Time) bool {
	room, ok := st.Room(roomID)
	if !ok || room.Blocked {
		return false
	}
	for _, b := range st.BookingsByResource(types.KIND_ROOM, roomID) {
		if b.Status == types.BOOKING_ACCEPTED && b.Window(now) {
			return false
		}
	}
	return true
}

// IsItemAvailable reports whether at least one unit of the item can be
// borrowed at instant now. Accepted bookings whose end has not passed hold
// their quantity against the stock; pending and review bookings hold nothing.
func IsItemAvailable(st *store.Store, itemID string, now time.Time) bool {
	item, ok := st.Item(itemID)
	if !ok || item.Blocked {
		return false
	}
	return item.Stock > st.AcceptedItemQuantity(itemID, now)
}

// AvailableItemCount returns how many units of the item remain borrowable at
// instant now, zero for missing or blocked items.
func AvailableItemCount(st *store.Store, itemID string, now time.Time) uint {
	item, ok := st.Item(itemID)
	if !ok || item.Blocked {
		return 0
	}
	held := st.AcceptedItemQuantity(itemID, now)
	if held >= item.Stock {
		return 0
	}
	return item.Stock - held
}
