package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ccis-arch/avacc/internal/domain/users"
	"github.com/ccis-arch/avacc/internal/platform/apperr"
	"github.com/ccis-arch/avacc/internal/ports/auth"
)

type userRepo struct {
	mu         sync.RWMutex
	byID       map[string]users.User
	byIdentity map[string]string
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID:       make(map[string]users.User),
		byIdentity: make(map[string]string),
	}
}

func (r *userRepo) Upsert(ctx context.Context, u users.User) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byIdentity[u.Identity]; ok {
		cur := r.byID[id]
		cur.Name = u.Name
		cur.Email = u.Email
		cur.LastSignedIn = u.LastSignedIn
		cur.UpdatedAt = u.UpdatedAt
		if u.Role != "" {
			cur.Role = u.Role
		}
		r.byID[id] = cur
		return cur, nil
	}

	if u.Role == "" {
		u.Role = auth.RoleUser
	}
	r.byID[u.ID] = u
	r.byIdentity[u.Identity] = u.ID
	return u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, apperr.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) List(ctx context.Context) ([]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]users.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *userRepo) SetRole(ctx context.Context, id string, role auth.Role, at time.Time) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, apperr.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = at
	r.byID[id] = u
	return u, nil
}
