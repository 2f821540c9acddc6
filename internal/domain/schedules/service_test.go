package schedules

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
	byID map[string]Schedule
}

func newTestRepo() *testRepo { return &testRepo{byID: map[string]Schedule{}} }

func (r *testRepo) Create(_ context.Context, s Schedule) error {
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) Update(_ context.Context, s Schedule) error {
	if _, ok := r.byID[s.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Schedule, error) {
	s, ok := r.byID[id]
	if !ok {
		return Schedule{}, apperr.ErrNotFound
	}
	return s, nil
}

func (r *testRepo) filter(keep func(Schedule) bool) []Schedule {
	out := make([]Schedule, 0)
	for _, s := range r.byID {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out
}

func (r *testRepo) ListByStatus(_ context.Context, status Status) ([]Schedule, error) {
	return r.filter(func(s Schedule) bool { return s.Status == status }), nil
}

func (r *testRepo) ListByLocation(_ context.Context, locationID string, from, to time.Time) ([]Schedule, error) {
	return r.filter(func(s Schedule) bool {
		return s.LocationID == locationID && !s.ScheduledDate.Before(from) && !s.ScheduledDate.After(to)
	}), nil
}

func (r *testRepo) ListUpcomingByPet(_ context.Context, petID string, from time.Time) ([]Schedule, error) {
	return r.filter(func(s Schedule) bool {
		return s.PetID == petID && s.Status == StatusScheduled && !s.ScheduledDate.Before(from)
	}), nil
}

func (r *testRepo) CountByStatus(ctx context.Context, status Status) (int, error) {
	items, _ := r.ListByStatus(ctx, status)
	return len(items), nil
}

type fakePets struct{}

func (fakePets) GetByID(_ context.Context, id string) (pets.Pet, error) {
	if id != "pet-1" {
		return pets.Pet{}, apperr.ErrNotFound
	}
	return pets.Pet{ID: id}, nil
}

type fakeVaccines struct{}

func (fakeVaccines) Get(_ context.Context, id string) (vaccines.VaccineType, error) {
	if id != "rabies" {
		return vaccines.VaccineType{}, apperr.ErrNotFound
	}
	return vaccines.VaccineType{ID: id, Name: "Rabies"}, nil
}

type fakeLocations struct{}

func (fakeLocations) Get(_ context.Context, id string) (locations.Location, error) {
	if id != "loc-1" {
		return locations.Location{}, apperr.ErrNotFound
	}
	return locations.Location{ID: id, Name: "Centro Norte"}, nil
}

func newTestService(enforce bool) *Service {
	svc := NewService(newTestRepo(), fakePets{}, fakeVaccines{}, fakeLocations{}, enforce)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC) }
	return svc
}

func day(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func input(date string) CreateInput {
	return CreateInput{PetID: "pet-1", VaccineTypeID: "rabies", LocationID: "loc-1", ScheduledDate: day(date)}
}

func TestService_Create_AlwaysScheduled(t *testing.T) {
	svc := newTestService(true)

	sc, err := svc.Create(context.Background(), input("2025-03-10"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sc.Status != StatusScheduled {
		t.Fatalf("expected scheduled, got %s", sc.Status)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := newTestService(true)
	ctx := context.Background()

	bad := []CreateInput{
		{PetID: "pet-1", VaccineTypeID: "rabies", LocationID: "loc-1"},
		func() CreateInput { in := input("2025-03-10"); in.PetID = "ghost"; return in }(),
		func() CreateInput { in := input("2025-03-10"); in.LocationID = ""; return in }(),
		func() CreateInput { in := input("2025-03-10"); in.ScheduledTime = "25:99"; return in }(),
	}
	for i, in := range bad {
		if _, err := svc.Create(ctx, in); !errors.Is(err, apperr.ErrInvalidInput) {
			t.Fatalf("case %d: expected invalid input, got %v", i, err)
		}
	}
}

func TestService_Update_Transitions(t *testing.T) {
	svc := newTestService(true)
	ctx := context.Background()
	sc, _ := svc.Create(ctx, input("2025-03-10"))

	cancelled := "cancelled"
	if _, err := svc.Update(ctx, sc.ID, UpdateInput{Status: &cancelled}); err != nil {
		t.Fatalf("scheduled -> cancelled: %v", err)
	}
	back := "scheduled"
	if _, err := svc.Update(ctx, sc.ID, UpdateInput{Status: &back}); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	loose := newTestService(false)
	sc2, _ := loose.Create(ctx, input("2025-03-10"))
	noShow := "no_show"
	if _, err := loose.Update(ctx, sc2.ID, UpdateInput{Status: &noShow}); err != nil {
		t.Fatalf("no_show: %v", err)
	}
	got, err := loose.Update(ctx, sc2.ID, UpdateInput{Status: &back})
	if err != nil || got.Status != StatusScheduled {
		t.Fatalf("expected free transition, got %v %v", got.Status, err)
	}
}

func TestService_ByLocationWindowAndUpcoming(t *testing.T) {
	svc := newTestService(true)
	ctx := context.Background()

	past, _ := svc.Create(ctx, input("2025-02-20"))
	today, _ := svc.Create(ctx, input("2025-03-01"))
	soon, _ := svc.Create(ctx, input("2025-03-20"))
	_, _ = svc.Create(ctx, input("2025-05-01")) // fuera de la ventana
	cancelled := "cancelled"
	_, _ = svc.Update(ctx, soon.ID, UpdateInput{Status: &cancelled})

	byLoc, err := svc.ByLocation(ctx, "loc-1")
	if err != nil {
		t.Fatalf("ByLocation: %v", err)
	}
	if len(byLoc) != 2 || byLoc[0].ID != today.ID || byLoc[1].ID != soon.ID {
		t.Fatalf("unexpected window %+v", byLoc)
	}

	up, err := svc.UpcomingForPet(ctx, "pet-1")
	if err != nil {
		t.Fatalf("UpcomingForPet: %v", err)
	}
	if len(up) != 2 || up[0].Schedule.ID != today.ID {
		t.Fatalf("unexpected upcoming %+v", up)
	}
	for _, u := range up {
		if u.Schedule.ID == past.ID || u.Schedule.ID == soon.ID {
			t.Fatalf("past or cancelled schedule listed")
		}
		if u.VaccineTypeName != "Rabies" || u.LocationName != "Centro Norte" {
			t.Fatalf("names not resolved: %+v", u)
		}
	}

	if n, _ := svc.CountByStatus(ctx, StatusScheduled); n != 3 {
		t.Fatalf("expected 3 scheduled, got %d", n)
	}
}
