// Package catalog holds the static room and item definitions the registry is
// seeded from on first run. Entries here never change a live registry; block
// flags and derived availability live on the persisted snapshots.
package catalog

import "fbs/src/models"

const (
	SIZE_SMALL  = "Small"  // 1-10 people
	SIZE_MEDIUM = "Medium" // 11-30 people
	SIZE_LARGE  = "Large"  // 30+ people
)

func Rooms() []models.Room {
	return []models.Room{
		{ID: "A01", Name: "Meeting Room A01", Capacity: 30, Size: SIZE_MEDIUM,
			Facilities: []string{"AC", "Projector", "Whiteboard"}},
		{ID: "A02", Name: "Meeting Room A02", Capacity: 15, Size: SIZE_MEDIUM,
			Facilities: []string{"AC", "Whiteboard"}},
		{ID: "A03", Name: "Discussion Room A03", Capacity: 8, Size: SIZE_SMALL,
			Facilities: []string{"AC", "Whiteboard"}},
		{ID: "B01", Name: "Seminar Room B01", Capacity: 60, Size: SIZE_LARGE,
			Facilities: []string{"AC", "Projector", "Sound System", "Mic"}},
		{ID: "B02", Name: "Auditorium B02", Capacity: 120, Size: SIZE_LARGE,
			Facilities: []string{"AC", "Projector", "Sound System", "Mic", "Video Conference"}},
		{ID: "C01", Name: "Studio C01", Capacity: 10, Size: SIZE_SMALL,
			Facilities: []string{"AC", "Video Conference"}},
	}
}

func Items() []models.Item {
	return []models.Item{
		{ID: "BRG01", Name: "Portable Projector", Stock: 4, Category: "Electronics"},
		{ID: "BRG02", Name: "Wireless Microphone", Stock: 6, Category: "Audio"},
		{ID: "BRG03", Name: "Portable Speaker", Stock: 3, Category: "Audio"},
		{ID: "BRG04", Name: "HDMI Cable", Stock: 10, Category: "Electronics"},
		{ID: "BRG05", Name: "Folding Chair", Stock: 50, Category: "Furniture"},
		{ID: "BRG06", Name: "Folding Table", Stock: 20, Category: "Furniture"},
		{ID: "BRG07", Name: "Extension Cord", Stock: 12, Category: "Electronics"},
	}
}
