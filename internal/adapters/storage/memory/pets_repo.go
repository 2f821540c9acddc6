package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/ccis-arch/avacc/internal/domain/pets"
	"github.com/ccis-arch/avacc/internal/platform/apperr"
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return apperr.ErrConflict
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return apperr.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, apperr.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) filter(keep func(pets.Pet) bool) []pets.Pet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func byName(items []pets.Pet) []pets.Pet {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name == items[j].Name {
			return items[i].ID < items[j].ID
		}
		return items[i].Name < items[j].Name
	})
	return items
}

func newestFirst(items []pets.Pet) []pets.Pet {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	return byName(r.filter(func(p pets.Pet) bool { return p.OwnerID == ownerID })), nil
}

func (r *petRepo) ListAll(ctx context.Context) ([]pets.Pet, error) {
	return newestFirst(r.filter(func(pets.Pet) bool { return true })), nil
}

func (r *petRepo) ListByBreeds(ctx context.Context, breedIDs []string) ([]pets.Pet, error) {
	set := toSet(breedIDs)
	return byName(r.filter(func(p pets.Pet) bool { return set[p.BreedID] })), nil
}

func (r *petRepo) Search(ctx context.Context, text string, ownerIDs []string) ([]pets.Pet, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	owners := toSet(ownerIDs)
	return newestFirst(r.filter(func(p pets.Pet) bool {
		if owners[p.OwnerID] {
			return true
		}
		return text != "" && (strings.Contains(strings.ToLower(p.Name), text) ||
			strings.Contains(strings.ToLower(p.MicrochipID), text))
	})), nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
