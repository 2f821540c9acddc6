package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ccis-arch/avacc/internal/domain/breeds"
	"github.com/ccis-arch/avacc/internal/domain/locations"
	"github.com/ccis-arch/avacc/internal/domain/vaccines"
	"github.com/ccis-arch/avacc/internal/platform/apperr"
)

// catalog es un map por id con nombre único (case-insensitive) y listado por nombre.
type catalog[T any] struct {
	mu     sync.RWMutex
	byID   map[string]T
	names  map[string]string // nombre normalizado -> id
	idOf   func(T) string
	nameOf func(T) string
	unique bool
}

func newCatalog[T any](idOf, nameOf func(T) string, unique bool) *catalog[T] {
	return &catalog[T]{
		byID:   make(map[string]T),
		names:  make(map[string]string),
		idOf:   idOf,
		nameOf: nameOf,
		unique: unique,
	}
}

func normalize(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

func (c *catalog[T]) create(v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := normalize(c.nameOf(v))
	if c.unique {
		if _, taken := c.names[key]; taken {
			return apperr.ErrConflict
		}
		c.names[key] = c.idOf(v)
	}
	c.byID[c.idOf(v)] = v
	return nil
}

func (c *catalog[T]) update(v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[c.idOf(v)]; !ok {
		return apperr.ErrNotFound
	}
	c.byID[c.idOf(v)] = v
	return nil
}

func (c *catalog[T]) get(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.byID[id]
	if !ok {
		var zero T
		return zero, apperr.ErrNotFound
	}
	return v, nil
}

func (c *catalog[T]) list() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.byID))
	for _, v := range c.byID {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return c.nameOf(out[i]) < c.nameOf(out[j]) })
	return out
}

// -------------------------
// Breeds
// -------------------------

type breedRepo struct{ c *catalog[breeds.Breed] }

func NewBreedRepo() breeds.Repository {
	return &breedRepo{c: newCatalog(
		func(b breeds.Breed) string { return b.ID },
		func(b breeds.Breed) string { return b.Name },
		true,
	)}
}

func (r *breedRepo) Create(ctx context.Context, b breeds.Breed) error { return r.c.create(b) }
func (r *breedRepo) GetByID(ctx context.Context, id string) (breeds.Breed, error) {
	return r.c.get(id)
}
func (r *breedRepo) List(ctx context.Context) ([]breeds.Breed, error) { return r.c.list(), nil }

// -------------------------
// Vaccine types
// -------------------------

type vaccineTypeRepo struct{ c *catalog[vaccines.VaccineType] }

func NewVaccineTypeRepo() vaccines.Repository {
	return &vaccineTypeRepo{c: newCatalog(
		func(v vaccines.VaccineType) string { return v.ID },
		func(v vaccines.VaccineType) string { return v.Name },
		true,
	)}
}

func (r *vaccineTypeRepo) Create(ctx context.Context, v vaccines.VaccineType) error {
	return r.c.create(v)
}
func (r *vaccineTypeRepo) GetByID(ctx context.Context, id string) (vaccines.VaccineType, error) {
	return r.c.get(id)
}
func (r *vaccineTypeRepo) List(ctx context.Context) ([]vaccines.VaccineType, error) {
	return r.c.list(), nil
}

// -------------------------
// Locations
// -------------------------

type locationRepo struct{ c *catalog[locations.Location] }

func NewLocationRepo() locations.Repository {
	return &locationRepo{c: newCatalog(
		func(l locations.Location) string { return l.ID },
		func(l locations.Location) string { return l.Name },
		false,
	)}
}

func (r *locationRepo) Create(ctx context.Context, l locations.Location) error { return r.c.create(l) }
func (r *locationRepo) Update(ctx context.Context, l locations.Location) error { return r.c.update(l) }
func (r *locationRepo) GetByID(ctx context.Context, id string) (locations.Location, error) {
	return r.c.get(id)
}
func (r *locationRepo) List(ctx context.Context) ([]locations.Location, error) {
	return r.c.list(), nil
}
