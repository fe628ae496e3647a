package common

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fbs/src/config"
	"fbs/src/models"
	"fbs/src/store"
	"fbs/src/types"
)

// ActiveBookings returns the bookings queued against the resource: every
// booking that is not cancelled, rejected, or completed and whose end has not
// passed.
func ActiveBookings(st *store.Store, kind types.ResourceKind, resourceID string, now time.Time) []models.Booking {
	var out []models.Booking
	for _, b := range st.BookingsByResource(kind, resourceID) {
		if !b.Status.Inactive() && !b.End.Before(now) {
			out = append(out, b)
		}
	}
	return out
}

// QueueCount is the congestion signal shown next to a resource.
func QueueCount(st *store.Store, kind types.ResourceKind, resourceID string, now time.Time) int {
	return len(ActiveBookings(st, kind, resourceID, now))
}

// EstimatedWait projects when the resource frees up, derived from the
// latest-ending accepted active booking plus a fixed handover buffer.
// ok is false when nothing accepted is queued, meaning no wait at all.
func EstimatedWait(st *store.Store, kind types.ResourceKind, resourceID string, now time.Time) (time.Duration, bool) {
	var accepted []models.Booking
	for _, b := range ActiveBookings(st, kind, resourceID, now) {
		if b.Status == types.BOOKING_ACCEPTED {
			accepted = append(accepted, b)
		}
	}
	if len(accepted) == 0 {
		return 0, false
	}
	sort.Slice(accepted, func(i, j int) bool {
		return accepted[i].End.Before(accepted[j].End)
	})
	end := accepted[len(accepted)-1].End
	if now.After(end) {
		return 0, false
	}
	return end.Sub(now) + config.WAIT_BUFFER, true
}

// FormatWait renders a wait duration as whole minutes rounded up, decomposed
// into days, hours, and minutes with zero components omitted, e.g.
// "1 day 3 minutes" or "45 minutes".
func FormatWait(d time.Duration) string {
	minutes := int((d + time.Minute - 1) / time.Minute)
	if minutes <= 0 {
		return "0 minutes"
	}
	days := minutes / (24 * 60)
	minutes -= days * 24 * 60
	hours := minutes / 60
	minutes -= hours * 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", days, plural(days, "day")))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", hours, plural(hours, "hour")))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", minutes, plural(minutes, "minute")))
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
