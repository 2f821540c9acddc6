package schedules

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s Schedule) error
	Update(ctx context.Context, s Schedule) error
	GetByID(ctx context.Context, id string) (Schedule, error)

	// Todos los listados ordenan por scheduled_date asc.
	ListByStatus(ctx context.Context, status Status) ([]Schedule, error)
	// ListByLocation incluye from y to.
	ListByLocation(ctx context.Context, locationID string, from, to time.Time) ([]Schedule, error)
	// ListUpcomingByPet: status scheduled y scheduled_date >= from.
	ListUpcomingByPet(ctx context.Context, petID string, from time.Time) ([]Schedule, error)

	CountByStatus(ctx context.Context, status Status) (int, error)
}
