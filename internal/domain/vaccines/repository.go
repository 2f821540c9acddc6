package vaccines

import "context"

type Repository interface {
	// Create devuelve apperr.ErrConflict si el nombre ya existe.
	Create(ctx context.Context, v VaccineType) error
	GetByID(ctx context.Context, id string) (VaccineType, error)
	List(ctx context.Context) ([]VaccineType, error)
}
