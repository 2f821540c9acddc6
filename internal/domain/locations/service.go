package locations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ccis-arch/avacc/internal/platform/apperr"
	"github.com/ccis-arch/avacc/internal/ports/cache"
)

const listCacheKey = "locations:list"

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
	Name           string
	Address        string
	City           string
	State          string
	ZipCode        string
	Latitude       *float64
	Longitude      *float64
	Phone          string
	Email          string
	OperatingHours string
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name           *string
	Address        *string
	City           *string
	State          *string
	ZipCode        *string
	Latitude       *float64
	Longitude      *float64
	Phone          *string
	Email          *string
	OperatingHours *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Location, error) {
	now := s.now().UTC()
	l := Location{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(in.Name),
		Address:        strings.TrimSpace(in.Address),
		City:           strings.TrimSpace(in.City),
		State:          strings.TrimSpace(in.State),
		ZipCode:        strings.TrimSpace(in.ZipCode),
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		Phone:          strings.TrimSpace(in.Phone),
		Email:          strings.TrimSpace(in.Email),
		OperatingHours: strings.TrimSpace(in.OperatingHours),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := validate(l); err != nil {
		return Location{}, err
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return Location{}, apperr.Unavailable(err)
	}
	cache.Invalidate(ctx, s.cache.Cache, listCacheKey)
	return l, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Location, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Location{}, apperr.Unavailable(err)
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&l.Name, in.Name)
	set(&l.Address, in.Address)
	set(&l.City, in.City)
	set(&l.State, in.State)
	set(&l.ZipCode, in.ZipCode)
	set(&l.Phone, in.Phone)
	set(&l.Email, in.Email)
	set(&l.OperatingHours, in.OperatingHours)
	if in.Latitude != nil {
		l.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		l.Longitude = in.Longitude
	}
	if err := validate(l); err != nil {
		return Location{}, err
	}
	l.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, l); err != nil {
		return Location{}, apperr.Unavailable(err)
	}
	cache.Invalidate(ctx, s.cache.Cache, listCacheKey)
	return l, nil
}

func validate(l Location) error {
	if l.Name == "" || l.Address == "" || l.City == "" {
		return fmt.Errorf("%w: name, address and city are required", apperr.ErrInvalidInput)
	}
	if l.Latitude != nil && (*l.Latitude < -90 || *l.Latitude > 90) {
		return fmt.Errorf("%w: latitude out of range", apperr.ErrInvalidInput)
	}
	if l.Longitude != nil && (*l.Longitude < -180 || *l.Longitude > 180) {
		return fmt.Errorf("%w: longitude out of range", apperr.ErrInvalidInput)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (Location, error) {
	l, err := s.repo.GetByID(ctx, id)
	return l, apperr.Unavailable(err)
}

func (s *Service) List(ctx context.Context) ([]Location, error) {
	items, err := cache.Cached(ctx, s.cache, listCacheKey, s.repo.List)
	return items, apperr.Unavailable(err)
}
