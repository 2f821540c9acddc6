package locations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ccis-arch/avacc/internal/platform/apperr"
	"github.com/ccis-arch/avacc/internal/ports/cache"
)

type testRepo struct {
	byID map[string]Location
}

func (r *testRepo) Create(_ context.Context, l Location) error {
	r.byID[l.ID] = l
	return nil
}

func (r *testRepo) Update(_ context.Context, l Location) error {
	if _, ok := r.byID[l.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.byID[l.ID] = l
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Location, error) {
	l, ok := r.byID[id]
	if !ok {
		return Location{}, apperr.ErrNotFound
	}
	return l, nil
}

func (r *testRepo) List(_ context.Context) ([]Location, error) {
	out := make([]Location, 0, len(r.byID))
	for _, l := range r.byID {
		out = append(out, l)
	}
	return out, nil
}

func TestService_CreateAndUpdate(t *testing.T) {
	svc := NewService(&testRepo{byID: map[string]Location{}}, cache.Options{})
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }

	if _, err := svc.Create(context.Background(), CreateInput{Name: "Centro"}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	lat := -34.6
	l, err := svc.Create(context.Background(), CreateInput{Name: "Centro", Address: "Av. 1", City: "BA", Latitude: &lat})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	t1 := t0.Add(time.Hour)
	svc.now = func() time.Time { return t1 }
	hours := "9-18"
	u, err := svc.Update(context.Background(), l.ID, UpdateInput{OperatingHours: &hours})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if u.OperatingHours != hours || u.Name != "Centro" || *u.Latitude != lat || u.UpdatedAt != t1 || u.CreatedAt != t0 {
		t.Fatalf("unexpected location %#v", u)
	}

	bad := 200.0
	if _, err := svc.Update(context.Background(), l.ID, UpdateInput{Longitude: &bad}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for longitude, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "missing", UpdateInput{}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
