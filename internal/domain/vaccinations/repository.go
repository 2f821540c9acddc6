package vaccinations

import "context"

type Repository interface {
	Create(ctx context.Context, v Vaccination) error
	Update(ctx context.Context, v Vaccination) error
	GetByID(ctx context.Context, id string) (Vaccination, error)

	// ListByPet ordena por vaccination_date desc.
	ListByPet(ctx context.Context, petID string) ([]Vaccination, error)
	// ListByStatus ordena por vaccination_date asc.
	ListByStatus(ctx context.Context, status Status) ([]Vaccination, error)
	CountByStatus(ctx context.Context, status Status) (int, error)
}
