package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ccis-arch/avacc/internal/domain/inventory"
	"github.com/ccis-arch/avacc/internal/platform/apperr"
)

type pairKey struct{ vaccineTypeID, locationID string }

type inventoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]inventory.Item
	byPair map[pairKey]string
}

func NewInventoryRepo() inventory.Repository {
	return &inventoryRepo{
		byID:   make(map[string]inventory.Item),
		byPair: make(map[pairKey]string),
	}
}

func (r *inventoryRepo) Create(ctx context.Context, i inventory.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pairKey{i.VaccineTypeID, i.LocationID}
	if _, exists := r.byPair[k]; exists {
		return apperr.ErrConflict
	}
	r.byID[i.ID] = i
	r.byPair[k] = i.ID
	return nil
}

// Update no cambia el par (vaccine_type_id, location_id).
func (r *inventoryRepo) Update(ctx context.Context, i inventory.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[i.ID]
	if !ok {
		return apperr.ErrNotFound
	}
	i.VaccineTypeID, i.LocationID = cur.VaccineTypeID, cur.LocationID
	r.byID[i.ID] = i
	return nil
}

func (r *inventoryRepo) GetByID(ctx context.Context, id string) (inventory.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return inventory.Item{}, apperr.ErrNotFound
	}
	return i, nil
}

func (r *inventoryRepo) filter(keep func(inventory.Item) bool) []inventory.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]inventory.Item, 0)
	for _, i := range r.byID {
		if keep(i) {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.Before(out[b].CreatedAt) })
	return out
}

func (r *inventoryRepo) List(ctx context.Context) ([]inventory.Item, error) {
	return r.filter(func(inventory.Item) bool { return true }), nil
}

func (r *inventoryRepo) ListByLocation(ctx context.Context, locationID string) ([]inventory.Item, error) {
	return r.filter(func(i inventory.Item) bool { return i.LocationID == locationID }), nil
}

func (r *inventoryRepo) ListLowStock(ctx context.Context) ([]inventory.Item, error) {
	out := r.filter(inventory.Item.LowStock)
	sort.SliceStable(out, func(a, b int) bool { return out[a].QuantityInStock < out[b].QuantityInStock })
	return out, nil
}

func (r *inventoryRepo) CountLowStock(ctx context.Context) (int, error) {
	return len(r.filter(inventory.Item.LowStock)), nil
}

type alertRepo struct {
	mu   sync.RWMutex
	byID map[string]inventory.Alert
}

func NewAlertRepo() inventory.AlertRepository {
	return &alertRepo{byID: make(map[string]inventory.Alert)}
}

func (r *alertRepo) Create(ctx context.Context, a inventory.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; exists {
		return apperr.ErrConflict
	}
	r.byID[a.ID] = a
	return nil
}

func (r *alertRepo) Update(ctx context.Context, a inventory.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return apperr.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *alertRepo) GetByID(ctx context.Context, id string) (inventory.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return inventory.Alert{}, apperr.ErrNotFound
	}
	return a, nil
}

func (r *alertRepo) newestFirst(keep func(inventory.Alert) bool) []inventory.Alert {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]inventory.Alert, 0)
	for _, a := range r.byID {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *alertRepo) ListByInventory(ctx context.Context, inventoryID string) ([]inventory.Alert, error) {
	return r.newestFirst(func(a inventory.Alert) bool { return a.InventoryID == inventoryID }), nil
}

func (r *alertRepo) ListByStatus(ctx context.Context, status inventory.AlertStatus) ([]inventory.Alert, error) {
	return r.newestFirst(func(a inventory.Alert) bool { return a.Status == status }), nil
}

func (r *alertRepo) CountByStatus(ctx context.Context, status inventory.AlertStatus) (int, error) {
	return len(r.newestFirst(func(a inventory.Alert) bool { return a.Status == status })), nil
}
