package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ccis-arch/avacc/internal/domain/owners"
	"github.com/ccis-arch/avacc/internal/platform/apperr"
)

// ownerRepo mantiene el índice byUser bajo el mismo lock que byID:
// es la restricción única sobre user_id.
type ownerRepo struct {
	mu     sync.RWMutex
	byID   map[string]owners.PetOwner
	byUser map[string]string
}

func NewOwnerRepo() owners.Repository {
	return &ownerRepo{
		byID:   make(map[string]owners.PetOwner),
		byUser: make(map[string]string),
	}
}

func (r *ownerRepo) Create(ctx context.Context, o owners.PetOwner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUser[o.UserID]; exists {
		return apperr.ErrConflict
	}
	r.byID[o.ID] = o
	r.byUser[o.UserID] = o.ID
	return nil
}

func (r *ownerRepo) Update(ctx context.Context, o owners.PetOwner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[o.ID]
	if !ok {
		return apperr.ErrNotFound
	}
	o.UserID = cur.UserID
	r.byID[o.ID] = o
	return nil
}

func (r *ownerRepo) GetByID(ctx context.Context, id string) (owners.PetOwner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return owners.PetOwner{}, apperr.ErrNotFound
	}
	return o, nil
}

func (r *ownerRepo) GetByUserID(ctx context.Context, userID string) (owners.PetOwner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUser[userID]
	if !ok {
		return owners.PetOwner{}, apperr.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *ownerRepo) List(ctx context.Context) ([]owners.PetOwner, error) {
	return r.filter(func(owners.PetOwner) bool { return true }), nil
}

func (r *ownerRepo) SearchByName(ctx context.Context, q string) ([]owners.PetOwner, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	return r.filter(func(o owners.PetOwner) bool {
		return strings.Contains(strings.ToLower(o.FirstName), q) ||
			strings.Contains(strings.ToLower(o.LastName), q)
	}), nil
}

func (r *ownerRepo) filter(keep func(owners.PetOwner) bool) []owners.PetOwner {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]owners.PetOwner, 0)
	for _, o := range r.byID {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
