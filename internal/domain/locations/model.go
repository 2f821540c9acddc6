package locations

import "time"

// Location es una clínica o centro de vacunación.
type Location struct {
	ID      string
	Name    string
	Address string
	City    string
	State   string
	ZipCode string

	Latitude  *float64
	Longitude *float64

	Phone          string
	Email          string
	OperatingHours string

	CreatedAt time.Time
	UpdatedAt time.Time
}
