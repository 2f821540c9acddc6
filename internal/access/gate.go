package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/ccis-arch/avacc/internal/platform/apperr"
	"github.com/ccis-arch/avacc/internal/ports/auth"
)

// Check es una regla que se evalúa con el actor ya autenticado.
type Check func(ctx context.Context, a auth.Actor) error

type Gate struct {
	resolver *Resolver
	onDeny   func(reason string)
}

// NewGate; onDeny es opcional (métricas).
func NewGate(resolver *Resolver, onDeny func(reason string)) *Gate {
	if onDeny == nil {
		onDeny = func(string) {}
	}
	return &Gate{resolver: resolver, onDeny: onDeny}
}

// Authorize exige actor autenticado y luego corre checks en orden.
// Orden de errores: Unauthenticated, después lo que devuelva cada check.
func (g *Gate) Authorize(ctx context.Context, checks ...Check) (auth.Actor, error) {
	a, ok := auth.ActorFrom(ctx)
	if !ok {
		g.onDeny("unauthenticated")
		return auth.Actor{}, apperr.ErrUnauthenticated
	}
	for _, check := range checks {
		if err := check(ctx, a); err != nil {
			switch {
			case errors.Is(err, apperr.ErrForbidden):
				g.onDeny("forbidden")
			case errors.Is(err, apperr.ErrNotFound):
				g.onDeny("not_found")
			}
			return auth.Actor{}, err
		}
	}
	return a, nil
}

// Actor: solo autenticación.
func (g *Gate) Actor(ctx context.Context) (auth.Actor, error) {
	return g.Authorize(ctx)
}

// Admin: autenticación + rol admin.
func (g *Gate) Admin(ctx context.Context) (auth.Actor, error) {
	return g.Authorize(ctx, RequireRole(auth.RoleAdmin))
}

// Pet: autenticación + la mascota existe + el actor es dueño (o admin).
func (g *Gate) Pet(ctx context.Context, petID string) (auth.Actor, error) {
	return g.Authorize(ctx, g.PetOwner(petID))
}

func RequireRole(role auth.Role) Check {
	return func(_ context.Context, a auth.Actor) error {
		if role == auth.RoleAdmin && !a.IsAdmin() {
			return fmt.Errorf("%w: admin role required", apperr.ErrForbidden)
		}
		return nil
	}
}

func (g *Gate) PetOwner(petID string) Check {
	return func(ctx context.Context, a auth.Actor) error {
		ok, err := g.resolver.IsOwnerOfPet(ctx, a, petID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return fmt.Errorf("%w: pet not found", apperr.ErrNotFound)
			}
			return err
		}
		if !ok {
			return fmt.Errorf("%w: not the owner of this pet", apperr.ErrForbidden)
		}
		return nil
	}
}
