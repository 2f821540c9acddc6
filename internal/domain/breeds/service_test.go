package breeds

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/ccis-arch/avacc/internal/platform/apperr"
	"github.com/ccis-arch/avacc/internal/ports/cache"
)

type testRepo struct {
	byID  map[string]Breed
	lists int
}

func newTestRepo() *testRepo { return &testRepo{byID: map[string]Breed{}} }

func (r *testRepo) Create(_ context.Context, b Breed) error {
	for _, cur := range r.byID {
		if cur.Name == b.Name {
			return apperr.ErrConflict
		}
	}
	r.byID[b.ID] = b
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Breed, error) {
	b, ok := r.byID[id]
	if !ok {
		return Breed{}, apperr.ErrNotFound
	}
	return b, nil
}

func (r *testRepo) List(_ context.Context) ([]Breed, error) {
	r.lists++
	out := make([]Breed, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type mapCache map[string][]byte

func (m mapCache) Get(_ context.Context, k string) ([]byte, bool, error) {
	v, ok := m[k]
	return v, ok, nil
}
func (m mapCache) Set(_ context.Context, k string, v []byte, _ time.Duration) error {
	m[k] = v
	return nil
}
func (m mapCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m, k)
	}
	return nil
}

func TestService_Create_ValidatesAndRejectsDuplicates(t *testing.T) {
	svc := NewService(newTestRepo(), cache.Options{})

	if _, err := svc.Create(context.Background(), CreateInput{Name: "Labrador", Species: "dragon"}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for species, got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{Species: "dog"}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for name, got %v", err)
	}

	b, err := svc.Create(context.Background(), CreateInput{Name: " Labrador ", Species: "DOG"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.Name != "Labrador" || b.Species != SpeciesDog {
		t.Fatalf("unexpected breed %#v", b)
	}

	if _, err := svc.Create(context.Background(), CreateInput{Name: "Labrador", Species: "dog"}); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestService_List_UsesCacheAndInvalidatesOnCreate(t *testing.T) {
	repo := newTestRepo()
	c := mapCache{}
	svc := NewService(repo, cache.Options{Cache: c, TTL: time.Minute})

	_, _ = svc.Create(context.Background(), CreateInput{Name: "Poodle", Species: "dog"})
	for i := 0; i < 3; i++ {
		items, err := svc.List(context.Background())
		if err != nil || len(items) != 1 {
			t.Fatalf("List: %v %#v", err, items)
		}
	}
	if repo.lists != 1 {
		t.Fatalf("expected one store read, got %d", repo.lists)
	}

	_, _ = svc.Create(context.Background(), CreateInput{Name: "Beagle", Species: "dog"})
	items, _ := svc.List(context.Background())
	if len(items) != 2 || items[0].Name != "Beagle" {
		t.Fatalf("expected fresh ordered list after create, got %#v", items)
	}
	if repo.lists != 2 {
		t.Fatalf("expected cache invalidated on create, got %d reads", repo.lists)
	}
}
