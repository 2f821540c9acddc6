package vaccines

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

const listCacheKey = "vaccine-types:list"

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
	Name                    string
	Category                string
	Description             string
	RecommendedAgeMonths    *int
	RevaccineIntervalMonths *int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (VaccineType, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" {
		return VaccineType{}, fmt.Errorf("%w: name and category are required", apperr.ErrInvalidInput)
	}
	if negative(in.RecommendedAgeMonths) || negative(in.RevaccineIntervalMonths) {
		return VaccineType{}, fmt.Errorf("%w: months must be >= 0", apperr.ErrInvalidInput)
	}

	v := VaccineType{
		ID:                      uuid.NewString(),
		Name:                    name,
		Category:                category,
		Description:             strings.TrimSpace(in.Description),
		RecommendedAgeMonths:    in.RecommendedAgeMonths,
		RevaccineIntervalMonths: in.RevaccineIntervalMonths,
		CreatedAt:               s.now().UTC(),
	}
	if err := s.repo.Create(ctx, v); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return VaccineType{}, fmt.Errorf("%w: vaccine type %q already exists", apperr.ErrConflict, name)
		}
		return VaccineType{}, apperr.Unavailable(err)
	}
	cache.Invalidate(ctx, s.cache.Cache, listCacheKey)
	return v, nil
}

func negative(p *int) bool { return p != nil && *p < 0 }

func (s *Service) Get(ctx context.Context, id string) (VaccineType, error) {
	v, err := s.repo.GetByID(ctx, id)
	return v, apperr.Unavailable(err)
}

func (s *Service) List(ctx context.Context) ([]VaccineType, error) {
	items, err := cache.Cached(ctx, s.cache, listCacheKey, s.repo.List)
	return items, apperr.Unavailable(err)
}
