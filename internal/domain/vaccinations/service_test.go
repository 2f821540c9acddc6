package vaccinations

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/ccis-arch/avacc/internal/domain/locations"
	"github.com/ccis-arch/avacc/internal/domain/pets"
	"github.com/ccis-arch/avacc/internal/domain/vaccines"
	"github.com/ccis-arch/avacc/internal/platform/apperr"
)

type testRepo struct {
	byID map[string]Vaccination
}

func newTestRepo() *testRepo { return &testRepo{byID: map[string]Vaccination{}} }

func (r *testRepo) Create(_ context.Context, v Vaccination) error {
	r.byID[v.ID] = v
	return nil
}

func (r *testRepo) Update(_ context.Context, v Vaccination) error {
	if _, ok := r.byID[v.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Vaccination, error) {
	v, ok := r.byID[id]
	if !ok {
		return Vaccination{}, apperr.ErrNotFound
	}
	return v, nil
}

func (r *testRepo) ListByPet(_ context.Context, petID string) ([]Vaccination, error) {
	out := make([]Vaccination, 0)
	for _, v := range r.byID {
		if v.PetID == petID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VaccinationDate.After(out[j].VaccinationDate) })
	return out, nil
}

func (r *testRepo) ListByStatus(_ context.Context, status Status) ([]Vaccination, error) {
	out := make([]Vaccination, 0)
	for _, v := range r.byID {
		if v.Status == status {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VaccinationDate.Before(out[j].VaccinationDate) })
	return out, nil
}

func (r *testRepo) CountByStatus(ctx context.Context, status Status) (int, error) {
	items, _ := r.ListByStatus(ctx, status)
	return len(items), nil
}

type fakeVaccines map[string]string

func (f fakeVaccines) Get(_ context.Context, id string) (vaccines.VaccineType, error) {
	name, ok := f[id]
	if !ok {
		return vaccines.VaccineType{}, apperr.ErrNotFound
	}
	return vaccines.VaccineType{ID: id, Name: name}, nil
}

type fakeLocations map[string]string

func (f fakeLocations) Get(_ context.Context, id string) (locations.Location, error) {
	name, ok := f[id]
	if !ok {
		return locations.Location{}, apperr.ErrNotFound
	}
	return locations.Location{ID: id, Name: name}, nil
}

type fakePets struct{}

func (fakePets) Details(_ context.Context, id string) (pets.Details, error) {
	if id != "pet-1" {
		return pets.Details{}, apperr.ErrNotFound
	}
	return pets.Details{Pet: pets.Pet{ID: id, Name: "Toby"}}, nil
}

func newTestService(enforce bool) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo,
		fakeVaccines{"rabies": "Rabies"},
		fakeLocations{"loc-1": "Centro Norte"},
		fakePets{},
		enforce,
	)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc, repo
}

func day(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func TestService_Create_DefaultsToCompleted(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := context.Background()

	v, err := svc.Create(ctx, "pet-1", CreateInput{VaccineTypeID: "rabies", VaccinationDate: day("2025-02-10")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if v.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", v.Status)
	}

	p, err := svc.Create(ctx, "pet-1", CreateInput{VaccineTypeID: "rabies", VaccinationDate: day("2025-04-10"), Status: "pending"})
	if err != nil {
		t.Fatalf("Create pending: %v", err)
	}
	if p.Status != StatusPending {
		t.Fatalf("expected pending, got %s", p.Status)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := context.Background()

	cases := []CreateInput{
		{VaccineTypeID: "rabies"},
		{VaccineTypeID: "nope", VaccinationDate: day("2025-02-10")},
		{VaccineTypeID: "rabies", VaccinationDate: day("2025-02-10"), LocationID: "nope"},
		{VaccineTypeID: "rabies", VaccinationDate: day("2025-02-10"), Status: "lost"},
		{VaccineTypeID: "rabies", VaccinationDate: day("2025-02-10"), ExpiryDate: day("2025-01-01")},
	}
	for i, in := range cases {
		if _, err := svc.Create(ctx, "pet-1", in); !errors.Is(err, apperr.ErrInvalidInput) {
			t.Fatalf("case %d: expected invalid input, got %v", i, err)
		}
	}
}

func TestService_Update_Transitions(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := context.Background()

	v, _ := svc.Create(ctx, "pet-1", CreateInput{VaccineTypeID: "rabies", VaccinationDate: day("2025-04-10"), Status: "pending"})

	scheduled := "scheduled"
	if _, err := svc.Update(ctx, v.ID, UpdateInput{Status: &scheduled}); err != nil {
		t.Fatalf("pending -> scheduled: %v", err)
	}
	completed := "completed"
	if _, err := svc.Update(ctx, v.ID, UpdateInput{Status: &completed}); err != nil {
		t.Fatalf("scheduled -> completed: %v", err)
	}
	// completed es terminal
	pending := "pending"
	if _, err := svc.Update(ctx, v.ID, UpdateInput{Status: &pending}); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	// mismo estado: no-op
	if _, err := svc.Update(ctx, v.ID, UpdateInput{Status: &completed}); err != nil {
		t.Fatalf("same state: %v", err)
	}
	bogus := "lost"
	if _, err := svc.Update(ctx, v.ID, UpdateInput{Status: &bogus}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := svc.Update(ctx, "missing", UpdateInput{Status: &pending}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_Update_WithoutEnforcement(t *testing.T) {
	svc, _ := newTestService(false)
	ctx := context.Background()

	v, _ := svc.Create(ctx, "pet-1", CreateInput{VaccineTypeID: "rabies", VaccinationDate: day("2025-02-10")})
	pending := "pending"
	got, err := svc.Update(ctx, v.ID, UpdateInput{Status: &pending})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Status != StatusPending {
		t.Fatalf("expected pending, got %s", got.Status)
	}
}

func TestService_PendingAndHistory(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := context.Background()

	_, _ = svc.Create(ctx, "pet-1", CreateInput{VaccineTypeID: "rabies", VaccinationDate: day("2025-05-01"), Status: "pending"})
	_, _ = svc.Create(ctx, "pet-1", CreateInput{VaccineTypeID: "rabies", VaccinationDate: day("2025-04-01"), Status: "pending"})
	_, _ = svc.Create(ctx, "pet-1", CreateInput{VaccineTypeID: "rabies", VaccinationDate: day("2025-01-01"), LocationID: "loc-1"})

	pending, err := svc.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 2 || !pending[0].VaccinationDate.Before(pending[1].VaccinationDate) {
		t.Fatalf("expected 2 pending ascending, got %+v", pending)
	}

	h, err := svc.History(ctx, "pet-1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if h.Pet.Pet.Name != "Toby" || len(h.Vaccinations) != 3 {
		t.Fatalf("unexpected history %+v", h)
	}
	last := h.Vaccinations[2]
	if last.VaccineTypeName != "Rabies" || last.LocationName != "Centro Norte" {
		t.Fatalf("names not resolved: %+v", last)
	}
	if !h.Vaccinations[0].Vaccination.VaccinationDate.After(last.Vaccination.VaccinationDate) {
		t.Fatalf("expected newest first")
	}

	if _, err := svc.History(ctx, "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
