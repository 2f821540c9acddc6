package owners

import "context"

type Repository interface {
	// Create devuelve apperr.ErrConflict si ya hay perfil para UserID.
	Create(ctx context.Context, o PetOwner) error
	Update(ctx context.Context, o PetOwner) error
	GetByID(ctx context.Context, id string) (PetOwner, error)
	GetByUserID(ctx context.Context, userID string) (PetOwner, error)
	List(ctx context.Context) ([]PetOwner, error)
	// SearchByName busca q (case-insensitive) en nombre o apellido.
	SearchByName(ctx context.Context, q string) ([]PetOwner, error)
}
