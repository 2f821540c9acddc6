package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ccis-arch/avacc/internal/domain/vaccinations"
	"github.com/ccis-arch/avacc/internal/platform/apperr"
)

type vaccinationRepo struct {
	mu   sync.RWMutex
	byID map[string]vaccinations.Vaccination
}

func NewVaccinationRepo() vaccinations.Repository {
	return &vaccinationRepo{byID: make(map[string]vaccinations.Vaccination)}
}

func (r *vaccinationRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[v.ID]; exists {
		return apperr.ErrConflict
	}
	r.byID[v.ID] = v
	return nil
}

func (r *vaccinationRepo) Update(ctx context.Context, v vaccinations.Vaccination) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[v.ID]; !exists {
		return apperr.ErrNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *vaccinationRepo) GetByID(ctx context.Context, id string) (vaccinations.Vaccination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return vaccinations.Vaccination{}, apperr.ErrNotFound
	}
	return v, nil
}

func (r *vaccinationRepo) filter(keep func(vaccinations.Vaccination) bool) []vaccinations.Vaccination {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vaccinations.Vaccination, 0)
	for _, v := range r.byID {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (r *vaccinationRepo) ListByPet(ctx context.Context, petID string) ([]vaccinations.Vaccination, error) {
	out := r.filter(func(v vaccinations.Vaccination) bool { return v.PetID == petID })
	sort.Slice(out, func(i, j int) bool {
		if out[i].VaccinationDate.Equal(out[j].VaccinationDate) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].VaccinationDate.After(out[j].VaccinationDate)
	})
	return out, nil
}

func (r *vaccinationRepo) ListByStatus(ctx context.Context, status vaccinations.Status) ([]vaccinations.Vaccination, error) {
	out := r.filter(func(v vaccinations.Vaccination) bool { return v.Status == status })
	sort.Slice(out, func(i, j int) bool {
		if out[i].VaccinationDate.Equal(out[j].VaccinationDate) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].VaccinationDate.Before(out[j].VaccinationDate)
	})
	return out, nil
}

func (r *vaccinationRepo) CountByStatus(ctx context.Context, status vaccinations.Status) (int, error) {
	return len(r.filter(func(v vaccinations.Vaccination) bool { return v.Status == status })), nil
}
