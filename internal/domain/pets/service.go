package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ccis-arch/avacc/internal/domain/breeds"
	"github.com/ccis-arch/avacc/internal/domain/owners"
	"github.com/ccis-arch/avacc/internal/platform/apperr"
	"github.com/ccis-arch/avacc/internal/ports/auth"
)

// Owners es lo que pets necesita del módulo owners.
type Owners interface {
	EnsureForActor(ctx context.Context, a auth.Actor) (owners.PetOwner, error)
	ProfileIDOf(ctx context.Context, userID string) (string, error)
	Get(ctx context.Context, id string) (owners.PetOwner, error)
	SearchByName(ctx context.Context, q string) ([]owners.PetOwner, error)
}

// Breeds es lo que pets necesita del catálogo de razas.
type Breeds interface {
	Get(ctx context.Context, id string) (breeds.Breed, error)
	List(ctx context.Context) ([]breeds.Breed, error)
}

type Service struct {
	repo   Repository
	owners Owners
	breeds Breeds
	now    func() time.Time
}

func NewService(repo Repository, ownersSvc Owners, breedsSvc Breeds) *Service {
	return &Service{
		repo:   repo,
		owners: ownersSvc,
		breeds: breedsSvc,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name        string
	BreedID     string
	DateOfBirth *time.Time
	MicrochipID string
	Weight      *float64
	Notes       string
}

// PatchDate distingue "no enviado" de "enviado null" (limpiar).
type PatchDate struct {
	Present bool
	Value   *time.Time
}

type UpdateInput struct {
	Name        *string
	BreedID     *string
	DateOfBirth PatchDate
	MicrochipID *string
	Weight      *float64
	Notes       *string
}

type SearchQuery struct {
	Text    string
	BreedID string
	Species string
}

// Create registra la mascota a nombre del perfil del actor; si no tiene perfil se crea uno.
func (s *Service) Create(ctx context.Context, a auth.Actor, in CreateInput) (Pet, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Pet{}, fmt.Errorf("%w: name is required", apperr.ErrInvalidInput)
	}
	if in.Weight != nil && *in.Weight < 0 {
		return Pet{}, fmt.Errorf("%w: weight must be >= 0", apperr.ErrInvalidInput)
	}
	breedID := strings.TrimSpace(in.BreedID)
	if err := s.checkBreed(ctx, breedID); err != nil {
		return Pet{}, err
	}

	owner, err := s.owners.EnsureForActor(ctx, a)
	if err != nil {
		return Pet{}, err
	}

	now := s.now().UTC()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerID:     owner.ID,
		BreedID:     breedID,
		Name:        name,
		DateOfBirth: in.DateOfBirth,
		MicrochipID: strings.TrimSpace(in.MicrochipID),
		Weight:      in.Weight,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, apperr.Unavailable(err)
	}
	return p, nil
}

func (s *Service) checkBreed(ctx context.Context, breedID string) error {
	if breedID == "" {
		return fmt.Errorf("%w: breed_id is required", apperr.ErrInvalidInput)
	}
	if _, err := s.breeds.Get(ctx, breedID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("%w: unknown breed_id", apperr.ErrInvalidInput)
		}
		return err
	}
	return nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, fmt.Errorf("%w: name cannot be empty", apperr.ErrInvalidInput)
		}
		p.Name = name
	}
	if in.BreedID != nil {
		breedID := strings.TrimSpace(*in.BreedID)
		if err := s.checkBreed(ctx, breedID); err != nil {
			return Pet{}, err
		}
		p.BreedID = breedID
	}
	if in.DateOfBirth.Present {
		p.DateOfBirth = in.DateOfBirth.Value
	}
	if in.MicrochipID != nil {
		p.MicrochipID = strings.TrimSpace(*in.MicrochipID)
	}
	if in.Weight != nil {
		if *in.Weight < 0 {
			return Pet{}, fmt.Errorf("%w: weight must be >= 0", apperr.ErrInvalidInput)
		}
		p.Weight = in.Weight
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, apperr.Unavailable(err)
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Pet{}, fmt.Errorf("%w: pet not found", apperr.ErrNotFound)
		}
		return Pet{}, apperr.Unavailable(err)
	}
	return p, nil
}

// OwnerOf expone el perfil dueño de una mascota (access.PetLookup).
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerID, nil
}

// ListMine: mascotas del perfil del actor; sin perfil => lista vacía.
func (s *Service) ListMine(ctx context.Context, a auth.Actor) ([]Pet, error) {
	ownerID, err := s.owners.ProfileIDOf(ctx, a.ID)
	if errors.Is(err, apperr.ErrNotFound) {
		return []Pet{}, nil
	}
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListByOwner(ctx, ownerID)
	return items, apperr.Unavailable(err)
}

func (s *Service) ListAll(ctx context.Context) ([]Pet, error) {
	items, err := s.repo.ListAll(ctx)
	return items, apperr.Unavailable(err)
}

func (s *Service) ListAllDetails(ctx context.Context) ([]Details, error) {
	items, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.withDetails(ctx, items)
}

func (s *Service) Details(ctx context.Context, id string) (Details, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Details{}, err
	}
	out, err := s.withDetails(ctx, []Pet{p})
	if err != nil {
		return Details{}, err
	}
	if len(out) == 0 {
		return Details{}, fmt.Errorf("%w: pet references missing breed or owner", apperr.ErrNotFound)
	}
	return out[0], nil
}

// Search es público. Prioridad: texto, después breed_id, después especie.
func (s *Service) Search(ctx context.Context, q SearchQuery) ([]Details, error) {
	var (
		items []Pet
		err   error
	)
	switch {
	case strings.TrimSpace(q.Text) != "":
		text := strings.TrimSpace(q.Text)
		matches, err := s.owners.SearchByName(ctx, text)
		if err != nil {
			return nil, err
		}
		ownerIDs := make([]string, 0, len(matches))
		for _, o := range matches {
			ownerIDs = append(ownerIDs, o.ID)
		}
		items, err = s.repo.Search(ctx, text, ownerIDs)
		if err != nil {
			return nil, apperr.Unavailable(err)
		}
	case strings.TrimSpace(q.BreedID) != "":
		items, err = s.repo.ListByBreeds(ctx, []string{strings.TrimSpace(q.BreedID)})
		if err != nil {
			return nil, apperr.Unavailable(err)
		}
	case strings.TrimSpace(q.Species) != "":
		sp := breeds.Species(strings.ToLower(strings.TrimSpace(q.Species)))
		if !sp.Valid() {
			return nil, fmt.Errorf("%w: species must be one of dog, cat, bird, rabbit, other", apperr.ErrInvalidInput)
		}
		all, err := s.breeds.List(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0)
		for _, b := range all {
			if b.Species == sp {
				ids = append(ids, b.ID)
			}
		}
		if len(ids) == 0 {
			return []Details{}, nil
		}
		items, err = s.repo.ListByBreeds(ctx, ids)
		if err != nil {
			return nil, apperr.Unavailable(err)
		}
	default:
		return nil, fmt.Errorf("%w: q, breed_id or species is required", apperr.ErrInvalidInput)
	}
	return s.withDetails(ctx, items)
}

// withDetails resuelve raza y dueño. Las filas sin raza o dueño se omiten (como un inner join).
func (s *Service) withDetails(ctx context.Context, items []Pet) ([]Details, error) {
	all, err := s.breeds.List(ctx)
	if err != nil {
		return nil, err
	}
	byBreed := make(map[string]breeds.Breed, len(all))
	for _, b := range all {
		byBreed[b.ID] = b
	}
	byOwner := map[string]owners.PetOwner{}

	out := make([]Details, 0, len(items))
	for _, p := range items {
		b, ok := byBreed[p.BreedID]
		if !ok {
			continue
		}
		o, ok := byOwner[p.OwnerID]
		if !ok {
			o, err = s.owners.Get(ctx, p.OwnerID)
			if errors.Is(err, apperr.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			byOwner[p.OwnerID] = o
		}
		out = append(out, Details{Pet: p, Breed: b, Owner: o})
	}
	return out, nil
}
