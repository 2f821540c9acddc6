package inventory

import "context"

type Repository interface {
	// Create devuelve apperr.ErrConflict si ya hay item para (vaccine_type_id, location_id).
	Create(ctx context.Context, i Item) error
	Update(ctx context.Context, i Item) error
	GetByID(ctx context.Context, id string) (Item, error)

	// List y ListByLocation ordenan por created_at asc.
	List(ctx context.Context) ([]Item, error)
	ListByLocation(ctx context.Context, locationID string) ([]Item, error)
	// ListLowStock: quantity <= threshold, por quantity asc.
	ListLowStock(ctx context.Context) ([]Item, error)
	CountLowStock(ctx context.Context) (int, error)
}

type AlertRepository interface {
	Create(ctx context.Context, a Alert) error
	Update(ctx context.Context, a Alert) error
	GetByID(ctx context.Context, id string) (Alert, error)

	ListByInventory(ctx context.Context, inventoryID string) ([]Alert, error)
	// ListByStatus ordena por created_at desc.
	ListByStatus(ctx context.Context, status AlertStatus) ([]Alert, error)
	CountByStatus(ctx context.Context, status AlertStatus) (int, error)
}
