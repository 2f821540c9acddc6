package breeds

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ccis-arch/avacc/internal/platform/apperr"
	"github.com/ccis-arch/avacc/internal/ports/cache"
)

const listCacheKey = "breeds:list"

type Service struct {
	repo  Repository
	cache cache.Options
	now   func() time.Time
}

func NewService(repo Repository, co cache.Options) *Service {
	return &Service{
		repo:  repo,
		cache: co,
		now:   time.Now,
	}
}

type CreateInput struct {
	Name        string
	Species     string
	Description string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Breed, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Breed{}, fmt.Errorf("%w: name is required", apperr.ErrInvalidInput)
	}
	sp := Species(strings.ToLower(strings.TrimSpace(in.Species)))
	if !sp.Valid() {
		return Breed{}, fmt.Errorf("%w: species must be one of dog, cat, bird, rabbit, other", apperr.ErrInvalidInput)
	}

	b := Breed{
		ID:          uuid.NewString(),
		Name:        name,
		Species:     sp,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return Breed{}, fmt.Errorf("%w: breed %q already exists", apperr.ErrConflict, name)
		}
		return Breed{}, apperr.Unavailable(err)
	}
	cache.Invalidate(ctx, s.cache.Cache, listCacheKey)
	return b, nil
}

func (s *Service) Get(ctx context.Context, id string) (Breed, error) {
	b, err := s.repo.GetByID(ctx, id)
	return b, apperr.Unavailable(err)
}

func (s *Service) List(ctx context.Context) ([]Breed, error) {
	items, err := cache.Cached(ctx, s.cache, listCacheKey, s.repo.List)
	return items, apperr.Unavailable(err)
}
