package models

// Room is a bookable space from the static catalog. Availability is never
// stored on the record; it is derived from accepted bookings at read time.
type Room struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Capacity   uint     `json:"capacity"`
	Size       string   `json:"size,omitempty"`
	Facilities []string `json:"facilities,omitempty"`
	Blocked    bool     `json:"blocked"`
}

// Item is a countable resource from the static catalog. The available count
// is derived; Stock is immutable after registry initialization.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Stock    uint   `json:"stock"`
	Category string `json:"category,omitempty"`
	Blocked  bool   `json:"blocked"`
}
