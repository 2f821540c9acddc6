package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ccis-arch/avacc/internal/domain/schedules"
	"github.com/ccis-arch/avacc/internal/platform/apperr"
)

type scheduleRepo struct {
	mu   sync.RWMutex
	byID map[string]schedules.Schedule
}

func NewScheduleRepo() schedules.Repository {
	return &scheduleRepo{byID: make(map[string]schedules.Schedule)}
}

func (r *scheduleRepo) Create(ctx context.Context, s schedules.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; exists {
		return apperr.ErrConflict
	}
	r.byID[s.ID] = s
	return nil
}

func (r *scheduleRepo) Update(ctx context.Context, s schedules.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; !exists {
		return apperr.ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (schedules.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return schedules.Schedule{}, apperr.ErrNotFound
	}
	return s, nil
}

// ascending filtra y ordena por scheduled_date, scheduled_time.
func (r *scheduleRepo) ascending(keep func(schedules.Schedule) bool) []schedules.Schedule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedules.Schedule, 0)
	for _, s := range r.byID {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledDate.Equal(out[j].ScheduledDate) {
			return out[i].ScheduledTime < out[j].ScheduledTime
		}
		return out[i].ScheduledDate.Before(out[j].ScheduledDate)
	})
	return out
}

func (r *scheduleRepo) ListByStatus(ctx context.Context, status schedules.Status) ([]schedules.Schedule, error) {
	return r.ascending(func(s schedules.Schedule) bool { return s.Status == status }), nil
}

func (r *scheduleRepo) ListByLocation(ctx context.Context, locationID string, from, to time.Time) ([]schedules.Schedule, error) {
	return r.ascending(func(s schedules.Schedule) bool {
		return s.LocationID == locationID && !s.ScheduledDate.Before(from) && !s.ScheduledDate.After(to)
	}), nil
}

func (r *scheduleRepo) ListUpcomingByPet(ctx context.Context, petID string, from time.Time) ([]schedules.Schedule, error) {
	return r.ascending(func(s schedules.Schedule) bool {
		return s.PetID == petID && s.Status == schedules.StatusScheduled && !s.ScheduledDate.Before(from)
	}), nil
}

func (r *scheduleRepo) CountByStatus(ctx context.Context, status schedules.Status) (int, error) {
	items, _ := r.ListByStatus(ctx, status)
	return len(items), nil
}
