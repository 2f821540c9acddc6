package auth

import (
	"context"
	"testing"
)

func TestActorFrom(t *testing.T) {
	if _, ok := ActorFrom(context.Background()); ok {
		t.Fatalf("expected no actor in empty context")
	}

	ctx := WithActor(context.Background(), Actor{ID: "u1", Role: RoleAdmin})
	a, ok := ActorFrom(ctx)
	if !ok || a.ID != "u1" || !a.IsAdmin() {
		t.Fatalf("unexpected actor %#v ok=%v", a, ok)
	}

	if _, ok := ActorFrom(WithActor(context.Background(), Actor{})); ok {
		t.Fatalf("actor without id must not count as authenticated")
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleUser, RoleAdmin} {
		if !r.Valid() {
			t.Fatalf("expected %q valid", r)
		}
	}
	if Role("root").Valid() {
		t.Fatalf("expected unknown role invalid")
	}
}
