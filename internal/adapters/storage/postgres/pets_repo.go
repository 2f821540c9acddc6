package postgres

import (
	"context"
	"database/sql"

	"github.com/ccis-arch/avacc/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `id, owner_id, breed_id, name, date_of_birth, microchip_id, weight, notes, created_at, updated_at`

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p      pets.Pet
		dob    sql.NullTime
		weight sql.NullFloat64
	)
	if err := s.Scan(
		&p.ID, &p.OwnerID, &p.BreedID,
		&p.Name, &dob, &p.MicrochipID, &weight, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	// date_of_birth es DATE: pgx lo mapea a medianoche UTC.
	p.DateOfBirth = fromNullDate(dob)
	p.Weight = fromNullFloat(weight)
	return p, nil
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		p.ID, p.OwnerID, p.BreedID,
		p.Name, toNullDate(p.DateOfBirth), p.MicrochipID, toNullFloat(p.Weight), p.Notes,
		p.CreatedAt, p.UpdatedAt,
	)
	return storeErr(err)
}

// Update no toca owner_id: no hay transferencia de mascotas.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	return affected(r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			breed_id = $2,
			name = $3,
			date_of_birth = $4,
			microchip_id = $5,
			weight = $6,
			notes = $7,
			updated_at = $8
		WHERE id = $1
	`,
		p.ID, p.BreedID,
		p.Name, toNullDate(p.DateOfBirth), p.MicrochipID, toNullFloat(p.Weight), p.Notes,
		p.UpdatedAt,
	))
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	p, err := scanPet(r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id))
	return p, storeErr(err)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+` FROM pets WHERE owner_id = $1 ORDER BY name ASC, id ASC
	`, ownerID)
	return collect(rows, err, scanPet)
}

func (r *PetsRepo) ListAll(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+petColumns+` FROM pets ORDER BY created_at DESC`)
	return collect(rows, err, scanPet)
}

func (r *PetsRepo) ListByBreeds(ctx context.Context, breedIDs []string) ([]pets.Pet, error) {
	if len(breedIDs) == 0 {
		return []pets.Pet{}, nil
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+` FROM pets WHERE breed_id = ANY($1) ORDER BY name ASC, id ASC
	`, breedIDs)
	return collect(rows, err, scanPet)
}

// petSearchQuery: substring literal sin distinguir mayúsculas. strpos y no
// ILIKE, así '%' y '_' del texto no actúan como comodines.
const petSearchQuery = `
	SELECT ` + petColumns + `
	FROM pets
	WHERE ($1 <> '' AND (strpos(lower(name), lower($1)) > 0 OR strpos(lower(microchip_id), lower($1)) > 0))
	   OR owner_id = ANY($2)
	ORDER BY created_at DESC
`

func (r *PetsRepo) Search(ctx context.Context, text string, ownerIDs []string) ([]pets.Pet, error) {
	if ownerIDs == nil {
		ownerIDs = []string{}
	}
	rows, err := r.db.QueryContext(ctx, petSearchQuery, text, ownerIDs)
	return collect(rows, err, scanPet)
}
