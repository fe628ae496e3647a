package models

import (
	"fbs/src/types"
	"time"
)

type Booking struct {
	ID           string              `json:"id"`
	RequesterID  string              `json:"requester_id"`
	Kind         types.ResourceKind  `json:"kind"`
	ResourceID   string              `json:"resource_id"`
	ResourceName string              `json:"resource_name"`
	Purpose      string              `json:"purpose"`
	Responsible  string              `json:"responsible"`
	Reason       string              `json:"reason"`
	Duration     string              `json:"duration"`
	Start        time.Time           `json:"start"`
	End          time.Time           `json:"end"`
	Attachment   string              `json:"attachment,omitempty"`
	Qty          uint                `json:"qty,omitempty"`
	Note         string              `json:"note,omitempty"`
	Status       types.BookingStatus `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
}

// Quantity returns the number of units the booking holds. Item bookings
// created without an explicit qty count as one unit; room bookings always
// hold the whole room.
func (b Booking) Quantity() uint {
	if b.Qty == 0 {
		return 1
	}
	return b.Qty
}

// Window reports whether t falls inside the booking's time window, bounds
// included.
func (b Booking) Window(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}
