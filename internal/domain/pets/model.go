package pets

import (
	"time"

	"github.com/ccis-arch/avacc/internal/domain/breeds"
	"github.com/ccis-arch/avacc/internal/domain/owners"
)

// Pet representa una mascota registrada. OwnerID apunta al perfil PetOwner, no al usuario.
type Pet struct {
	ID      string
	OwnerID string
	BreedID string

	Name        string
	DateOfBirth *time.Time
	MicrochipID string
	Weight      *float64 // kg
	Notes       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Details es la mascota con su raza y su dueño resueltos.
type Details struct {
	Pet   Pet
	Breed breeds.Breed
	Owner owners.PetOwner
}
