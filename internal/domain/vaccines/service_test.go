package vaccines

import (
	"context"
	"errors"
	"testing"

	"github.com/ccis-arch/avacc/internal/platform/apperr"
	"github.com/ccis-arch/avacc/internal/ports/cache"
)

type testRepo struct {
	byID map[string]VaccineType
}

func (r *testRepo) Create(_ context.Context, v VaccineType) error {
	for _, cur := range r.byID {
		if cur.Name == v.Name {
			return apperr.ErrConflict
		}
	}
	r.byID[v.ID] = v
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (VaccineType, error) {
	v, ok := r.byID[id]
	if !ok {
		return VaccineType{}, apperr.ErrNotFound
	}
	return v, nil
}

func (r *testRepo) List(_ context.Context) ([]VaccineType, error) {
	out := make([]VaccineType, 0, len(r.byID))
	for _, v := range r.byID {
		out = append(out, v)
	}
	return out, nil
}

func intp(v int) *int { return &v }

func TestService_Create(t *testing.T) {
	svc := NewService(&testRepo{byID: map[string]VaccineType{}}, cache.Options{})

	v, err := svc.Create(context.Background(), CreateInput{
		Name:                    "Rabies",
		Category:                "core",
		RecommendedAgeMonths:    intp(3),
		RevaccineIntervalMonths: intp(12),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if *v.RevaccineIntervalMonths != 12 {
		t.Fatalf("unexpected vaccine type %#v", v)
	}

	if _, err := svc.Create(context.Background(), CreateInput{Name: "Rabies", Category: "core"}); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{Name: "Parvo"}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without category, got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{Name: "Parvo", Category: "core", RecommendedAgeMonths: intp(-1)}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative months, got %v", err)
	}
}

func TestService_Get_NotFound(t *testing.T) {
	svc := NewService(&testRepo{byID: map[string]VaccineType{}}, cache.Options{})
	if _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
