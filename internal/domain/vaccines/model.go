package vaccines

import "time"

// VaccineType es el catálogo de vacunas. Name es único.
type VaccineType struct {
	ID          string
	Name        string
	Category    string
	Description string

	RecommendedAgeMonths    *int
	RevaccineIntervalMonths *int

	CreatedAt time.Time
}
