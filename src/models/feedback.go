package models

import "time"

// Feedback is a free-text note from a requester, independent of any booking.
type Feedback struct {
	ID            string    `json:"id"`
	RequesterID   string    `json:"requester_id"`
	RequesterName string    `json:"requester_name,omitempty"`
	Text          string    `json:"text"`
	CreatedAt     time.Time `json:"created_at"`
}
