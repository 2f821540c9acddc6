package owners

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ccis-arch/avacc/internal/platform/apperr"
	"github.com/ccis-arch/avacc/internal/ports/auth"
)

// testRepo respeta la unicidad por user_id como el store real.
type testRepo struct {
	mu      sync.Mutex
	byID    map[string]PetOwner
	inserts int

	// beforeCreate permite simular una carrera entre Get y Create.
	beforeCreate func()
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]PetOwner{}}
}

func (r *testRepo) Create(_ context.Context, o PetOwner) error {
	if r.beforeCreate != nil {
		hook := r.beforeCreate
		r.beforeCreate = nil
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cur := range r.byID {
		if cur.UserID == o.UserID {
			return apperr.ErrConflict
		}
	}
	r.byID[o.ID] = o
	r.inserts++
	return nil
}

func (r *testRepo) Update(_ context.Context, o PetOwner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[o.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.byID[o.ID] = o
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (PetOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok {
		return PetOwner{}, apperr.ErrNotFound
	}
	return o, nil
}

func (r *testRepo) GetByUserID(_ context.Context, userID string) (PetOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.byID {
		if o.UserID == userID {
			return o, nil
		}
	}
	return PetOwner{}, apperr.ErrNotFound
}

func (r *testRepo) List(_ context.Context) ([]PetOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]PetOwner, 0, len(r.byID))
	for _, o := range r.byID {
		out = append(out, o)
	}
	return out, nil
}

func (r *testRepo) SearchByName(_ context.Context, q string) ([]PetOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]PetOwner, 0)
	for _, o := range r.byID {
		if strings.Contains(strings.ToLower(o.FullName()), strings.ToLower(q)) {
			out = append(out, o)
		}
	}
	return out, nil
}

func TestService_EnsureForActor_SynthesizesFromName(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	o, err := svc.EnsureForActor(context.Background(), auth.Actor{ID: "u1", Name: "Ana María Pérez", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("EnsureForActor error: %v", err)
	}
	if o.FirstName != "Ana" || o.LastName != "María Pérez" || o.Email != "ana@example.com" {
		t.Fatalf("unexpected profile %#v", o)
	}
	if o.UserID != "u1" || o.CreatedAt != now {
		t.Fatalf("unexpected ownership/timestamps %#v", o)
	}
}

func TestService_EnsureForActor_SingleTokenAndEmptyName(t *testing.T) {
	svc := NewService(newTestRepo())

	o, _ := svc.EnsureForActor(context.Background(), auth.Actor{ID: "u1", Name: "Cher"})
	if o.FirstName != "Cher" || o.LastName != "" || o.Email != "" {
		t.Fatalf("unexpected profile %#v", o)
	}

	o, _ = svc.EnsureForActor(context.Background(), auth.Actor{ID: "u2"})
	if o.FirstName != "User" || o.LastName != "" {
		t.Fatalf("unexpected profile for empty name %#v", o)
	}
}

func TestService_EnsureForActor_Idempotent(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	a := auth.Actor{ID: "u1", Name: "Ana Pérez"}

	first, err := svc.EnsureForActor(context.Background(), a)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.EnsureForActor(context.Background(), auth.Actor{ID: "u1", Name: "Otro Nombre"})
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first != second {
		t.Fatalf("expected same profile, got %#v vs %#v", first, second)
	}
	if repo.inserts != 1 {
		t.Fatalf("expected exactly one row, got %d", repo.inserts)
	}
}

func TestService_EnsureForActor_ConcurrentCreateConverges(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	a := auth.Actor{ID: "u1", Name: "Ana"}

	// Otro request gana la carrera entre el Get y el Create.
	var winner PetOwner
	repo.beforeCreate = func() {
		w, err := NewService(repo).EnsureForActor(context.Background(), a)
		if err != nil {
			t.Errorf("winner: %v", err)
		}
		winner = w
	}

	got, err := svc.EnsureForActor(context.Background(), a)
	if err != nil {
		t.Fatalf("EnsureForActor error: %v", err)
	}
	if got.ID != winner.ID {
		t.Fatalf("expected loser to return winner's profile %s, got %s", winner.ID, got.ID)
	}
	if repo.inserts != 1 {
		t.Fatalf("expected one row, got %d", repo.inserts)
	}
}

func TestService_CreateProfile_ConflictKeepsFirst(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	a := auth.Actor{ID: "u1"}

	first, err := svc.CreateProfile(context.Background(), a, ProfileInput{FirstName: "Ana", LastName: "Pérez", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err = svc.CreateProfile(context.Background(), a, ProfileInput{FirstName: "Otra", LastName: "Persona", Email: "x@example.com"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	cur, _ := svc.Mine(context.Background(), a)
	if cur != first {
		t.Fatalf("first profile must be unaffected, got %#v", cur)
	}
}

func TestService_CreateProfile_Validation(t *testing.T) {
	svc := NewService(newTestRepo())
	_, err := svc.CreateProfile(context.Background(), auth.Actor{ID: "u1"}, ProfileInput{FirstName: "Ana", Email: "ana@example.com"})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing last name, got %v", err)
	}
	_, err = svc.CreateProfile(context.Background(), auth.Actor{ID: "u1"}, ProfileInput{FirstName: "Ana", LastName: "P", Email: "nope"})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad email, got %v", err)
	}
}

func TestService_UpdateMine(t *testing.T) {
	svc := NewService(newTestRepo())
	a := auth.Actor{ID: "u1", Name: "Ana"}

	phone := "555-1234"
	if _, err := svc.UpdateMine(context.Background(), a, UpdateInput{Phone: &phone}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound without profile, got %v", err)
	}

	_, _ = svc.EnsureForActor(context.Background(), a)
	o, err := svc.UpdateMine(context.Background(), a, UpdateInput{Phone: &phone})
	if err != nil {
		t.Fatalf("UpdateMine: %v", err)
	}
	if o.Phone != phone || o.FirstName != "Ana" {
		t.Fatalf("unexpected profile %#v", o)
	}
}

func TestService_ProfileIDOf(t *testing.T) {
	svc := NewService(newTestRepo())
	if _, err := svc.ProfileIDOf(context.Background(), "u1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	o, _ := svc.EnsureForActor(context.Background(), auth.Actor{ID: "u1"})
	id, err := svc.ProfileIDOf(context.Background(), "u1")
	if err != nil || id != o.ID {
		t.Fatalf("expected %s, got %s %v", o.ID, id, err)
	}
}
