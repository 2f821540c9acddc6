package vaccinations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ccis-arch/avacc/internal/domain/locations"
	"github.com/ccis-arch/avacc/internal/domain/pets"
	"github.com/ccis-arch/avacc/internal/domain/vaccines"
	"github.com/ccis-arch/avacc/internal/platform/apperr"
)

type VaccineTypes interface {
	Get(ctx context.Context, id string) (vaccines.VaccineType, error)
}

type Locations interface {
	Get(ctx context.Context, id string) (locations.Location, error)
}

type Pets interface {
	Details(ctx context.Context, id string) (pets.Details, error)
}

type Service struct {
	repo      Repository
	vaccines  VaccineTypes
	locations Locations
	pets      Pets

	// enforce=false acepta cualquier estado enumerado en Update.
	enforce bool
	now     func() time.Time
}

func NewService(repo Repository, vaccineTypes VaccineTypes, locs Locations, petsSvc Pets, enforceTransitions bool) *Service {
	return &Service{
		repo:      repo,
		vaccines:  vaccineTypes,
		locations: locs,
		pets:      petsSvc,
		enforce:   enforceTransitions,
		now:       time.Now,
	}
}

type CreateInput struct {
	VaccineTypeID   string
	LocationID      string
	VaccinationDate *time.Time
	ExpiryDate      *time.Time
	BatchNumber     string
	Veterinarian    string
	Notes           string
	Status          string // vacío => completed
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Status       *string
	ExpiryDate   *time.Time
	LocationID   *string
	BatchNumber  *string
	Veterinarian *string
	Notes        *string
}

// Create no valida ownership; eso lo hace el gate antes.
func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Vaccination, error) {
	if in.VaccinationDate == nil {
		return Vaccination{}, fmt.Errorf("%w: vaccination_date is required", apperr.ErrInvalidInput)
	}
	if in.ExpiryDate != nil && in.ExpiryDate.Before(*in.VaccinationDate) {
		return Vaccination{}, fmt.Errorf("%w: expiry_date before vaccination_date", apperr.ErrInvalidInput)
	}

	status := StatusCompleted
	if raw := strings.TrimSpace(in.Status); raw != "" {
		st, err := Transitions.Parse(raw)
		if err != nil {
			return Vaccination{}, err
		}
		status = st
	}

	vaccineTypeID := strings.TrimSpace(in.VaccineTypeID)
	if err := s.checkVaccineType(ctx, vaccineTypeID); err != nil {
		return Vaccination{}, err
	}
	locationID := strings.TrimSpace(in.LocationID)
	if err := s.checkLocation(ctx, locationID); err != nil {
		return Vaccination{}, err
	}

	now := s.now().UTC()
	v := Vaccination{
		ID:              uuid.NewString(),
		PetID:           petID,
		VaccineTypeID:   vaccineTypeID,
		LocationID:      locationID,
		VaccinationDate: *in.VaccinationDate,
		ExpiryDate:      in.ExpiryDate,
		BatchNumber:     strings.TrimSpace(in.BatchNumber),
		Veterinarian:    strings.TrimSpace(in.Veterinarian),
		Notes:           strings.TrimSpace(in.Notes),
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return Vaccination{}, apperr.Unavailable(err)
	}
	return v, nil
}

func (s *Service) checkVaccineType(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: vaccine_type_id is required", apperr.ErrInvalidInput)
	}
	if _, err := s.vaccines.Get(ctx, id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("%w: unknown vaccine_type_id", apperr.ErrInvalidInput)
		}
		return err
	}
	return nil
}

// checkLocation: vacío es válido (la vacunación puede no tener centro).
func (s *Service) checkLocation(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if _, err := s.locations.Get(ctx, id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("%w: unknown location_id", apperr.ErrInvalidInput)
		}
		return err
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (Vaccination, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Vaccination{}, fmt.Errorf("%w: vaccination not found", apperr.ErrNotFound)
		}
		return Vaccination{}, apperr.Unavailable(err)
	}
	return v, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Vaccination, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return Vaccination{}, err
	}

	if in.Status != nil {
		to := Status(strings.TrimSpace(*in.Status))
		if err := Transitions.Check(v.Status, to, s.enforce); err != nil {
			return Vaccination{}, err
		}
		v.Status = to
	}
	if in.ExpiryDate != nil {
		if in.ExpiryDate.Before(v.VaccinationDate) {
			return Vaccination{}, fmt.Errorf("%w: expiry_date before vaccination_date", apperr.ErrInvalidInput)
		}
		v.ExpiryDate = in.ExpiryDate
	}
	if in.LocationID != nil {
		loc := strings.TrimSpace(*in.LocationID)
		if err := s.checkLocation(ctx, loc); err != nil {
			return Vaccination{}, err
		}
		v.LocationID = loc
	}
	if in.BatchNumber != nil {
		v.BatchNumber = strings.TrimSpace(*in.BatchNumber)
	}
	if in.Veterinarian != nil {
		v.Veterinarian = strings.TrimSpace(*in.Veterinarian)
	}
	if in.Notes != nil {
		v.Notes = strings.TrimSpace(*in.Notes)
	}
	v.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, v); err != nil {
		return Vaccination{}, apperr.Unavailable(err)
	}
	return v, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Vaccination, error) {
	items, err := s.repo.ListByPet(ctx, petID)
	return items, apperr.Unavailable(err)
}

// Pending: todas las pendientes de todos los dueños, por fecha ascendente.
func (s *Service) Pending(ctx context.Context) ([]Vaccination, error) {
	items, err := s.repo.ListByStatus(ctx, StatusPending)
	return items, apperr.Unavailable(err)
}

func (s *Service) CountByStatus(ctx context.Context, status Status) (int, error) {
	n, err := s.repo.CountByStatus(ctx, status)
	return n, apperr.Unavailable(err)
}

func (s *Service) History(ctx context.Context, petID string) (History, error) {
	d, err := s.pets.Details(ctx, petID)
	if err != nil {
		return History{}, err
	}
	items, err := s.ListByPet(ctx, petID)
	if err != nil {
		return History{}, err
	}

	vaccineNames := map[string]string{}
	locationNames := map[string]string{}
	out := make([]HistoryEntry, 0, len(items))
	for _, v := range items {
		e := HistoryEntry{Vaccination: v}

		name, ok := vaccineNames[v.VaccineTypeID]
		if !ok {
			vt, err := s.vaccines.Get(ctx, v.VaccineTypeID)
			if err != nil && !errors.Is(err, apperr.ErrNotFound) {
				return History{}, err
			}
			name = vt.Name
			vaccineNames[v.VaccineTypeID] = name
		}
		e.VaccineTypeName = name

		if v.LocationID != "" {
			name, ok := locationNames[v.LocationID]
			if !ok {
				l, err := s.locations.Get(ctx, v.LocationID)
				if err != nil && !errors.Is(err, apperr.ErrNotFound) {
					return History{}, err
				}
				name = l.Name
				locationNames[v.LocationID] = name
			}
			e.LocationName = name
		}
		out = append(out, e)
	}
	return History{Pet: d, Vaccinations: out}, nil
}
