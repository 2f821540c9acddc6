package schedules

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

type Pets interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
}

type VaccineTypes interface {
	Get(ctx context.Context, id string) (vaccines.VaccineType, error)
}

type Locations interface {
	Get(ctx context.Context, id string) (locations.Location, error)
}

type Service struct {
	repo      Repository
	pets      Pets
	vaccines  VaccineTypes
	locations Locations

	enforce bool
	now     func() time.Time
}

func NewService(repo Repository, petsSvc Pets, vaccineTypes VaccineTypes, locs Locations, enforceTransitions bool) *Service {
	return &Service{
		repo:      repo,
		pets:      petsSvc,
		vaccines:  vaccineTypes,
		locations: locs,
		enforce:   enforceTransitions,
		now:       time.Now,
	}
}

// CreateInput no lleva Status: un turno nuevo siempre nace scheduled.
type CreateInput struct {
	PetID         string
	VaccineTypeID string
	LocationID    string
	ScheduledDate *time.Time
	ScheduledTime string
	Notes         string
}

type UpdateInput struct {
	Status        *string
	ScheduledDate *time.Time
	ScheduledTime *string
	Notes         *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Schedule, error) {
	if in.ScheduledDate == nil {
		return Schedule{}, fmt.Errorf("%w: scheduled_date is required", apperr.ErrInvalidInput)
	}
	hhmm, err := parseTime(in.ScheduledTime)
	if err != nil {
		return Schedule{}, err
	}

	petID := strings.TrimSpace(in.PetID)
	vaccineTypeID := strings.TrimSpace(in.VaccineTypeID)
	locationID := strings.TrimSpace(in.LocationID)
	if err := s.checkRefs(ctx, petID, vaccineTypeID, locationID); err != nil {
		return Schedule{}, err
	}

	now := s.now().UTC()
	sc := Schedule{
		ID:            uuid.NewString(),
		LocationID:    locationID,
		PetID:         petID,
		VaccineTypeID: vaccineTypeID,
		ScheduledDate: *in.ScheduledDate,
		ScheduledTime: hhmm,
		Status:        StatusScheduled,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, sc); err != nil {
		return Schedule{}, apperr.Unavailable(err)
	}
	return sc, nil
}

func parseTime(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if _, err := time.Parse("15:04", raw); err != nil {
		return "", fmt.Errorf("%w: scheduled_time must be HH:MM", apperr.ErrInvalidInput)
	}
	return raw, nil
}

// checkRefs: una referencia inexistente es un error del request, no un 404.
func (s *Service) checkRefs(ctx context.Context, petID, vaccineTypeID, locationID string) error {
	if petID == "" || vaccineTypeID == "" || locationID == "" {
		return fmt.Errorf("%w: pet_id, vaccine_type_id and location_id are required", apperr.ErrInvalidInput)
	}
	refs := []struct {
		field string
		get   func() error
	}{
		{"pet_id", func() error { _, err := s.pets.GetByID(ctx, petID); return err }},
		{"vaccine_type_id", func() error { _, err := s.vaccines.Get(ctx, vaccineTypeID); return err }},
		{"location_id", func() error { _, err := s.locations.Get(ctx, locationID); return err }},
	}
	for _, ref := range refs {
		if err := ref.get(); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return fmt.Errorf("%w: unknown %s", apperr.ErrInvalidInput, ref.field)
			}
			return err
		}
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (Schedule, error) {
	sc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Schedule{}, fmt.Errorf("%w: schedule not found", apperr.ErrNotFound)
		}
		return Schedule{}, apperr.Unavailable(err)
	}
	return sc, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Schedule, error) {
	sc, err := s.Get(ctx, id)
	if err != nil {
		return Schedule{}, err
	}

	if in.Status != nil {
		to := Status(strings.TrimSpace(*in.Status))
		if err := Transitions.Check(sc.Status, to, s.enforce); err != nil {
			return Schedule{}, err
		}
		sc.Status = to
	}
	if in.ScheduledDate != nil {
		sc.ScheduledDate = *in.ScheduledDate
	}
	if in.ScheduledTime != nil {
		hhmm, err := parseTime(*in.ScheduledTime)
		if err != nil {
			return Schedule{}, err
		}
		sc.ScheduledTime = hhmm
	}
	if in.Notes != nil {
		sc.Notes = strings.TrimSpace(*in.Notes)
	}
	sc.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, sc); err != nil {
		return Schedule{}, apperr.Unavailable(err)
	}
	return sc, nil
}

// List devuelve los turnos en el estado dado; vacío => scheduled.
func (s *Service) List(ctx context.Context, rawStatus string) ([]Schedule, error) {
	status := StatusScheduled
	if raw := strings.TrimSpace(rawStatus); raw != "" {
		st, err := Transitions.Parse(raw)
		if err != nil {
			return nil, err
		}
		status = st
	}
	items, err := s.repo.ListByStatus(ctx, status)
	return items, apperr.Unavailable(err)
}

func (s *Service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// ByLocation: turnos del centro desde hoy hasta UpcomingWindow.
func (s *Service) ByLocation(ctx context.Context, locationID string) ([]Schedule, error) {
	from := s.today()
	items, err := s.repo.ListByLocation(ctx, locationID, from, from.Add(UpcomingWindow))
	return items, apperr.Unavailable(err)
}

func (s *Service) UpcomingForPet(ctx context.Context, petID string) ([]Upcoming, error) {
	items, err := s.repo.ListUpcomingByPet(ctx, petID, s.today())
	if err != nil {
		return nil, apperr.Unavailable(err)
	}

	out := make([]Upcoming, 0, len(items))
	for _, sc := range items {
		vt, err := s.vaccines.Get(ctx, sc.VaccineTypeID)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		loc, err := s.locations.Get(ctx, sc.LocationID)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		out = append(out, Upcoming{Schedule: sc, VaccineTypeName: vt.Name, LocationName: loc.Name})
	}
	return out, nil
}

func (s *Service) CountByStatus(ctx context.Context, status Status) (int, error) {
	n, err := s.repo.CountByStatus(ctx, status)
	return n, apperr.Unavailable(err)
}
