// Package access decide si un actor puede ejecutar una operación.
// No consulta el store directamente; las búsquedas las hacen PetLookup y ProfileLookup.
package access

import (
	"context"
	"errors"

	"github.com/ccis-arch/avacc/internal/platform/apperr"
	"github.com/ccis-arch/avacc/internal/ports/auth"
)

// PetLookup devuelve el id del perfil dueño de la mascota (apperr.ErrNotFound si no existe).
type PetLookup interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

// ProfileLookup devuelve el id del perfil PetOwner del usuario (apperr.ErrNotFound si no tiene).
type ProfileLookup interface {
	ProfileIDOf(ctx context.Context, userID string) (string, error)
}

type Resolver struct {
	pets     PetLookup
	profiles ProfileLookup
}

func NewResolver(pets PetLookup, profiles ProfileLookup) *Resolver {
	return &Resolver{pets: pets, profiles: profiles}
}

// IsOwner: admin siempre es dueño, sin lookup.
func (r *Resolver) IsOwner(ctx context.Context, a auth.Actor, petOwnerID string) (bool, error) {
	if a.IsAdmin() {
		return true, nil
	}
	profileID, err := r.profiles.ProfileIDOf(ctx, a.ID)
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return profileID == petOwnerID, nil
}

// IsOwnerOfPet busca la mascota primero: si no existe es NotFound para cualquier rol.
func (r *Resolver) IsOwnerOfPet(ctx context.Context, a auth.Actor, petID string) (bool, error) {
	ownerID, err := r.pets.OwnerOf(ctx, petID)
	if err != nil {
		return false, err
	}
	return r.IsOwner(ctx, a, ownerID)
}
