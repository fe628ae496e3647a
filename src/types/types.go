package types

type ResourceKind string

const (
	KIND_ROOM ResourceKind = "room"
	KIND_ITEM ResourceKind = "item"
)

func (k ResourceKind) Valid() bool {
	return k == KIND_ROOM || k == KIND_ITEM
}

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_REVIEW    BookingStatus = "review"
	BOOKING_ACCEPTED  BookingStatus = "accepted"
	BOOKING_REJECTED  BookingStatus = "rejected"
	BOOKING_CANCELLED BookingStatus = "cancelled"
	BOOKING_COMPLETED BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BOOKING_PENDING, BOOKING_REVIEW, BOOKING_ACCEPTED,
		BOOKING_REJECTED, BOOKING_CANCELLED, BOOKING_COMPLETED:
		return true
	}
	return false
}

// Terminal reports whether the booking can no longer move to another status
// on its own. Accepted bookings still expire to completed via the sweeper.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BOOKING_ACCEPTED, BOOKING_REJECTED, BOOKING_CANCELLED, BOOKING_COMPLETED:
		return true
	}
	return false
}

// Inactive statuses never count toward a resource's queue.
func (s BookingStatus) Inactive() bool {
	switch s {
	case BOOKING_CANCELLED, BOOKING_REJECTED, BOOKING_COMPLETED:
		return true
	}
	return false
}

// AdminTransitions lists the status moves an administrator may apply to a
// pending or review booking.
var AdminTransitions = map[BookingStatus][]BookingStatus{
	BOOKING_PENDING: {BOOKING_REVIEW, BOOKING_ACCEPTED, BOOKING_REJECTED, BOOKING_CANCELLED},
	BOOKING_REVIEW:  {BOOKING_ACCEPTED, BOOKING_REJECTED, BOOKING_CANCELLED},
}

type CreateBookingRequestBody struct {
	Kind        ResourceKind `json:"kind" binding:"required"`
	ResourceID  string       `json:"resource_id" binding:"required"`
	Purpose     string       `json:"purpose" binding:"required"`
	Responsible string       `json:"responsible" binding:"required"`
	Reason      string       `json:"reason" binding:"required"`
	Duration    string       `json:"duration" binding:"required"`
	Start       string       `json:"start" binding:"required,timestamp" time_format:"2006-01-02T15:04:05Z07:00"`
	End         string       `json:"end" binding:"required,timestamp,gtdate=Start" time_format:"2006-01-02T15:04:05Z07:00"`
	Attachment  string       `json:"attachment,omitempty"`
	Qty         uint         `json:"qty,omitempty"`
	Note        string       `json:"note,omitempty"`
}

type UpdateBookingStatusRequestBody struct {
	Status BookingStatus `json:"status" binding:"required"`
}

type CreateFeedbackRequestBody struct {
	Name string `json:"name" binding:"required"`
	Text string `json:"text" binding:"required"`
}

type SimpleRequestParams struct {
	ID string `uri:"id" binding:"required"`
}

type ResourceURIParams struct {
	Kind ResourceKind `uri:"kind" binding:"required"`
	ID   string       `uri:"id" binding:"required"`
}

type RoomsQueryFilters struct {
	MinCapacity uint   `form:"min_capacity,omitempty"`
	Facilities  string `form:"facilities,omitempty"`
}

type BookingsQueryFilters struct {
	Requester string `form:"requester,omitempty"`
	Status    string `form:"status,omitempty"`
}

type APIResponseRoom struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Capacity   uint     `json:"capacity"`
	Size       string   `json:"size,omitempty"`
	Facilities []string `json:"facilities,omitempty"`
	Blocked    bool     `json:"blocked"`
	Available  bool     `json:"available"`
	QueueCount int      `json:"queue_count"`
}

type APIResponseItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category,omitempty"`
	Stock      uint   `json:"stock"`
	Blocked    bool   `json:"blocked"`
	Available  bool   `json:"available"`
	QueueCount int    `json:"queue_count"`
}

type APIResponseQueue struct {
	ResourceID string `json:"resource_id"`
	Kind       string `json:"kind"`
	Count      int    `json:"count"`
	Wait       string `json:"wait,omitempty"`
}
