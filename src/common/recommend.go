package common

import (
	"sort"
	"time"

	"fbs/src/models"
	"fbs/src/store"

	"github.com/gosimple/slug"
)

// RecommendRooms filters the registry down to rooms a request could use right
// now and ranks them best-fit first: unblocked, capacity at least
// minCapacity, facilities a superset of the requested tags, currently
// available, sorted ascending by capacity so the smallest sufficient room
// wins.
func RecommendRooms(st *store.Store, minCapacity uint, facilities []string, now time.Time) []models.Room {
	wanted := make([]string, 0, len(facilities))
	for _, f := range facilities {
		if f != "" {
			wanted = append(wanted, slug.Make(f))
		}
	}

	var out []models.Room
	for _, room := range st.Rooms() {
		if room.Blocked || room.Capacity < minCapacity {
			continue
		}
		if !hasFacilities(room, wanted) {
			continue
		}
		if !IsRoomAvailable(st, room.ID, now) {
			continue
		}
		out = append(out, room)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Capacity < out[j].Capacity
	})
	return out
}

// hasFacilities matches on slugged tags so catalog text like "Sound System"
// and a query for "sound-system" agree.
func hasFacilities(room models.Room, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	have := make(map[string]bool, len(room.Facilities))
	for _, f := range room.Facilities {
		have[slug.Make(f)] = true
	}
	for _, w := range wanted {
		if !have[w] {
			return false
		}
	}
	return true
}
