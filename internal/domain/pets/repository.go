package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)

	// ListByOwner ordena por nombre.
	ListByOwner(ctx context.Context, ownerID string) ([]Pet, error)
	// ListAll ordena por created_at desc.
	ListAll(ctx context.Context) ([]Pet, error)
	// ListByBreeds ordena por nombre.
	ListByBreeds(ctx context.Context, breedIDs []string) ([]Pet, error)
	// Search: nombre o microchip contienen text (case-insensitive), o el dueño está en ownerIDs.
	// Orden created_at desc.
	Search(ctx context.Context, text string, ownerIDs []string) ([]Pet, error)
}
