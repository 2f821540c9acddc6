package breeds

import "context"

type Repository interface {
	// Create devuelve apperr.ErrConflict si el nombre ya existe.
	Create(ctx context.Context, b Breed) error
	GetByID(ctx context.Context, id string) (Breed, error)
	// List ordena por nombre.
	List(ctx context.Context) ([]Breed, error)
}
