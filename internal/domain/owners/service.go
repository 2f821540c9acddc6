package owners

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ccis-arch/avacc/internal/platform/apperr"
	"github.com/ccis-arch/avacc/internal/ports/auth"
)

var ErrProfileExists = fmt.Errorf("%w: pet owner profile already exists", apperr.ErrConflict)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type ProfileInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
	City      *string
	State     *string
	ZipCode   *string
}

func (s *Service) CreateProfile(ctx context.Context, a auth.Actor, in ProfileInput) (PetOwner, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	if in.FirstName == "" || in.LastName == "" {
		return PetOwner{}, fmt.Errorf("%w: first_name and last_name are required", apperr.ErrInvalidInput)
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return PetOwner{}, fmt.Errorf("%w: valid email is required", apperr.ErrInvalidInput)
	}

	if _, err := s.repo.GetByUserID(ctx, a.ID); err == nil {
		return PetOwner{}, ErrProfileExists
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return PetOwner{}, apperr.Unavailable(err)
	}

	now := s.now().UTC()
	o := PetOwner{
		ID:        uuid.NewString(),
		UserID:    a.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		City:      strings.TrimSpace(in.City),
		State:     strings.TrimSpace(in.State),
		ZipCode:   strings.TrimSpace(in.ZipCode),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return PetOwner{}, ErrProfileExists
		}
		return PetOwner{}, apperr.Unavailable(err)
	}
	return o, nil
}

// EnsureForActor devuelve el perfil del actor, creándolo a partir de su nombre si no existe.
// Si otro request lo creó en paralelo, el Create choca con el índice único y se relee.
func (s *Service) EnsureForActor(ctx context.Context, a auth.Actor) (PetOwner, error) {
	o, err := s.repo.GetByUserID(ctx, a.ID)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return PetOwner{}, apperr.Unavailable(err)
	}

	first, last := splitDisplayName(a.Name)
	now := s.now().UTC()
	o = PetOwner{
		ID:        uuid.NewString(),
		UserID:    a.ID,
		FirstName: first,
		LastName:  last,
		Email:     strings.TrimSpace(a.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			winner, err := s.repo.GetByUserID(ctx, a.ID)
			return winner, apperr.Unavailable(err)
		}
		return PetOwner{}, apperr.Unavailable(err)
	}
	return o, nil
}

// splitDisplayName: primer token => nombre, el resto => apellido.
func splitDisplayName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "User", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func (s *Service) Mine(ctx context.Context, a auth.Actor) (PetOwner, error) {
	o, err := s.repo.GetByUserID(ctx, a.ID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return PetOwner{}, fmt.Errorf("%w: pet owner profile not found", apperr.ErrNotFound)
		}
		return PetOwner{}, apperr.Unavailable(err)
	}
	return o, nil
}

func (s *Service) UpdateMine(ctx context.Context, a auth.Actor, in UpdateInput) (PetOwner, error) {
	o, err := s.Mine(ctx, a)
	if err != nil {
		return PetOwner{}, err
	}

	apply := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	apply(&o.FirstName, in.FirstName)
	apply(&o.LastName, in.LastName)
	apply(&o.Email, in.Email)
	apply(&o.Phone, in.Phone)
	apply(&o.Address, in.Address)
	apply(&o.City, in.City)
	apply(&o.State, in.State)
	apply(&o.ZipCode, in.ZipCode)

	if o.FirstName == "" {
		return PetOwner{}, fmt.Errorf("%w: first_name cannot be empty", apperr.ErrInvalidInput)
	}
	o.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, o); err != nil {
		return PetOwner{}, apperr.Unavailable(err)
	}
	return o, nil
}

// ProfileIDOf implementa access.ProfileLookup.
func (s *Service) ProfileIDOf(ctx context.Context, userID string) (string, error) {
	o, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return "", apperr.Unavailable(err)
	}
	return o.ID, nil
}

func (s *Service) Get(ctx context.Context, id string) (PetOwner, error) {
	o, err := s.repo.GetByID(ctx, id)
	return o, apperr.Unavailable(err)
}

func (s *Service) ListAll(ctx context.Context) ([]PetOwner, error) {
	items, err := s.repo.List(ctx)
	return items, apperr.Unavailable(err)
}

func (s *Service) SearchByName(ctx context.Context, q string) ([]PetOwner, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	items, err := s.repo.SearchByName(ctx, q)
	return items, apperr.Unavailable(err)
}
