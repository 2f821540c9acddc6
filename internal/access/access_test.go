package access

import (
	"context"
	"errors"
	"testing"

	"github.com/ccis-arch/avacc/internal/platform/apperr"
	"github.com/ccis-arch/avacc/internal/ports/auth"
)

type fakePets map[string]string // petID -> ownerID

func (f fakePets) OwnerOf(_ context.Context, petID string) (string, error) {
	o, ok := f[petID]
	if !ok {
		return "", apperr.ErrNotFound
	}
	return o, nil
}

type fakeProfiles struct {
	byUser map[string]string
	calls  int
	err    error
}

func (f *fakeProfiles) ProfileIDOf(_ context.Context, userID string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	p, ok := f.byUser[userID]
	if !ok {
		return "", apperr.ErrNotFound
	}
	return p, nil
}

func setup() (*Gate, *fakeProfiles, *[]string) {
	profiles := &fakeProfiles{byUser: map[string]string{"u1": "owner-1", "u2": "owner-2"}}
	var denials []string
	g := NewGate(NewResolver(fakePets{"pet-1": "owner-1"}, profiles), func(r string) { denials = append(denials, r) })
	return g, profiles, &denials
}

func as(a auth.Actor) context.Context {
	return auth.WithActor(context.Background(), a)
}

func TestGate_Unauthenticated(t *testing.T) {
	g, _, denials := setup()

	_, err := g.Pet(context.Background(), "missing")
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated before any lookup, got %v", err)
	}
	if len(*denials) != 1 || (*denials)[0] != "unauthenticated" {
		t.Fatalf("unexpected denials %#v", *denials)
	}
}

func TestGate_PetOwnership(t *testing.T) {
	g, _, _ := setup()

	if _, err := g.Pet(as(auth.Actor{ID: "u1", Role: auth.RoleUser}), "pet-1"); err != nil {
		t.Fatalf("owner should pass, got %v", err)
	}
	if _, err := g.Pet(as(auth.Actor{ID: "u2", Role: auth.RoleUser}), "pet-1"); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("non-owner should be forbidden, got %v", err)
	}
	if _, err := g.Pet(as(auth.Actor{ID: "u3", Role: auth.RoleUser}), "pet-1"); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("actor without profile should be forbidden, got %v", err)
	}
}

func TestGate_AdminBypassesOwnershipButNotExistence(t *testing.T) {
	g, profiles, _ := setup()
	admin := as(auth.Actor{ID: "root", Role: auth.RoleAdmin})

	if _, err := g.Pet(admin, "pet-1"); err != nil {
		t.Fatalf("admin should pass, got %v", err)
	}
	if profiles.calls != 0 {
		t.Fatalf("admin must not trigger profile lookup, got %d calls", profiles.calls)
	}
	if _, err := g.Pet(admin, "nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown pet must be NotFound for admin, got %v", err)
	}
	if _, err := g.Pet(as(auth.Actor{ID: "u2", Role: auth.RoleUser}), "nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown pet must be NotFound for users, got %v", err)
	}
}

func TestGate_Admin(t *testing.T) {
	g, _, denials := setup()

	if _, err := g.Admin(as(auth.Actor{ID: "u1", Role: auth.RoleUser})); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if a, err := g.Admin(as(auth.Actor{ID: "root", Role: auth.RoleAdmin})); err != nil || a.ID != "root" {
		t.Fatalf("expected admin actor, got %#v %v", a, err)
	}
	if len(*denials) != 1 || (*denials)[0] != "forbidden" {
		t.Fatalf("unexpected denials %#v", *denials)
	}
}

func TestGate_StoreFaultPropagates(t *testing.T) {
	g, profiles, denials := setup()
	profiles.err = apperr.Unavailable(errors.New("conn refused"))

	_, err := g.Pet(as(auth.Actor{ID: "u1", Role: auth.RoleUser}), "pet-1")
	if !errors.Is(err, apperr.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if len(*denials) != 0 {
		t.Fatalf("store faults are not denials, got %#v", *denials)
	}
}
