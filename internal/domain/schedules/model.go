package schedules

import (
	"time"

	"github.com/ccis-arch/avacc/internal/domain/lifecycle"
)

// Status de un turno de vacunación.
// @Enum scheduled, completed, cancelled, no_show
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

var Transitions = lifecycle.NewTable("schedule", map[Status][]Status{
	StatusScheduled: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted: nil,
	StatusCancelled: nil,
	StatusNoShow:    nil,
})

// UpcomingWindow es el horizonte de los turnos por centro.
const UpcomingWindow = 30 * 24 * time.Hour

type Schedule struct {
	ID            string
	LocationID    string
	PetID         string
	VaccineTypeID string

	ScheduledDate time.Time
	ScheduledTime string // HH:MM opcional

	Status Status
	Notes  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Upcoming es un turno con vacuna y centro resueltos.
type Upcoming struct {
	Schedule        Schedule
	VaccineTypeName string
	LocationName    string
}
