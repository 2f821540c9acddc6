package vaccinations

import (
	"time"

	"github.com/ccis-arch/avacc/internal/domain/lifecycle"
	"github.com/ccis-arch/avacc/internal/domain/pets"
)

// Status de una vacunación.
// @Enum completed, scheduled, pending
type Status string

const (
	StatusCompleted Status = "completed"
	StatusScheduled Status = "scheduled"
	StatusPending   Status = "pending"
)

// Transitions: completed es terminal.
var Transitions = lifecycle.NewTable("vaccination", map[Status][]Status{
	StatusPending:   {StatusScheduled, StatusCompleted},
	StatusScheduled: {StatusPending, StatusCompleted},
	StatusCompleted: nil,
})

type Vaccination struct {
	ID            string
	PetID         string
	VaccineTypeID string
	LocationID    string // opcional

	VaccinationDate time.Time
	ExpiryDate      *time.Time

	BatchNumber  string
	Veterinarian string
	Notes        string
	Status       Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HistoryEntry es una vacunación con los nombres de vacuna y centro resueltos.
type HistoryEntry struct {
	Vaccination     Vaccination
	VaccineTypeName string
	LocationName    string
}

// History es la ficha de la mascota con su historial, más reciente primero.
type History struct {
	Pet          pets.Details
	Vaccinations []HistoryEntry
}
