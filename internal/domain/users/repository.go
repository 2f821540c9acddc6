package users

import (
	"context"
	"time"

	"github.com/ccis-arch/avacc/internal/ports/auth"
)

type Repository interface {
	// Upsert inserta por Identity o actualiza name/email/last_signed_in del existente.
	// Role vacío conserva el rol guardado (o "user" si es nuevo). Devuelve la fila final.
	Upsert(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	List(ctx context.Context) ([]User, error)
	SetRole(ctx context.Context, id string, role auth.Role, at time.Time) (User, error)
}
