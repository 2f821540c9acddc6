package postgres

import (
	"context"
	"database/sql"

	"github.com/ccis-arch/avacc/internal/domain/owners"
)

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

const ownerColumns = `id, user_id, first_name, last_name, email, phone, address, city, state, zip_code, created_at, updated_at`

func scanOwner(s scanner) (owners.PetOwner, error) {
	var o owners.PetOwner
	err := s.Scan(
		&o.ID, &o.UserID,
		&o.FirstName, &o.LastName, &o.Email, &o.Phone,
		&o.Address, &o.City, &o.State, &o.ZipCode,
		&o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

// Create: el índice único pet_owners_user_id_key devuelve Conflict al perdedor de la carrera.
func (r *OwnersRepo) Create(ctx context.Context, o owners.PetOwner) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_owners (`+ownerColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		o.ID, o.UserID,
		o.FirstName, o.LastName, o.Email, o.Phone,
		o.Address, o.City, o.State, o.ZipCode,
		o.CreatedAt, o.UpdatedAt,
	)
	return storeErr(err)
}

func (r *OwnersRepo) Update(ctx context.Context, o owners.PetOwner) error {
	return affected(r.db.ExecContext(ctx, `
		UPDATE pet_owners
		SET
			first_name = $2,
			last_name = $3,
			email = $4,
			phone = $5,
			address = $6,
			city = $7,
			state = $8,
			zip_code = $9,
			updated_at = $10
		WHERE id = $1
	`,
		o.ID,
		o.FirstName, o.LastName, o.Email, o.Phone,
		o.Address, o.City, o.State, o.ZipCode,
		o.UpdatedAt,
	))
}

func (r *OwnersRepo) GetByID(ctx context.Context, id string) (owners.PetOwner, error) {
	o, err := scanOwner(r.db.QueryRowContext(ctx, `SELECT `+ownerColumns+` FROM pet_owners WHERE id = $1`, id))
	return o, storeErr(err)
}

func (r *OwnersRepo) GetByUserID(ctx context.Context, userID string) (owners.PetOwner, error) {
	o, err := scanOwner(r.db.QueryRowContext(ctx, `SELECT `+ownerColumns+` FROM pet_owners WHERE user_id = $1`, userID))
	return o, storeErr(err)
}

func (r *OwnersRepo) List(ctx context.Context) ([]owners.PetOwner, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ownerColumns+` FROM pet_owners ORDER BY created_at ASC`)
	return collect(rows, err, scanOwner)
}

// Mismo criterio que petSearchQuery.
const ownerSearchQuery = `
	SELECT ` + ownerColumns + `
	FROM pet_owners
	WHERE strpos(lower(first_name), lower($1)) > 0 OR strpos(lower(last_name), lower($1)) > 0
	ORDER BY created_at ASC
`

func (r *OwnersRepo) SearchByName(ctx context.Context, q string) ([]owners.PetOwner, error) {
	rows, err := r.db.QueryContext(ctx, ownerSearchQuery, q)
	return collect(rows, err, scanOwner)
}
