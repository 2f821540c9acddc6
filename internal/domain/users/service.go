package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ccis-arch/avacc/internal/platform/apperr"
	"github.com/ccis-arch/avacc/internal/ports/auth"
)

type Service struct {
	repo   Repository
	policy BootstrapPolicy
	now    func() time.Time
}

func NewService(repo Repository, policy BootstrapPolicy) *Service {
	return &Service{
		repo:   repo,
		policy: policy,
		now:    time.Now,
	}
}

// SignIn hace upsert de la identidad verificada y devuelve el actor del request.
func (s *Service) SignIn(ctx context.Context, c auth.Claims) (auth.Actor, error) {
	identity := strings.TrimSpace(c.Subject)
	if identity == "" {
		return auth.Actor{}, apperr.ErrUnauthenticated
	}

	now := s.now().UTC()
	u, err := s.repo.Upsert(ctx, User{
		ID:           uuid.NewString(),
		Identity:     identity,
		Name:         strings.TrimSpace(c.Name),
		Email:        strings.TrimSpace(c.Email),
		Role:         s.policy.RoleFor(identity),
		CreatedAt:    now,
		UpdatedAt:    now,
		LastSignedIn: now,
	})
	if err != nil {
		return auth.Actor{}, apperr.Unavailable(err)
	}
	return u.Actor(), nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	items, err := s.repo.List(ctx)
	return items, apperr.Unavailable(err)
}

func (s *Service) SetRole(ctx context.Context, id string, role auth.Role) (User, error) {
	if !role.Valid() {
		return User{}, fmt.Errorf("%w: role must be user or admin", apperr.ErrInvalidInput)
	}
	u, err := s.repo.SetRole(ctx, strings.TrimSpace(id), role, s.now().UTC())
	if err != nil {
		return User{}, apperr.Unavailable(err)
	}
	return u, nil
}
