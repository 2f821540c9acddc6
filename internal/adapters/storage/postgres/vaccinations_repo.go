package postgres

import (
	"context"
	"database/sql"

	"github.com/ccis-arch/avacc/internal/domain/vaccinations"
)

type VaccinationsRepo struct {
	db *sql.DB
}

func NewVaccinationsRepo(db *sql.DB) *VaccinationsRepo {
	return &VaccinationsRepo{db: db}
}

const vaccinationColumns = `id, pet_id, vaccine_type_id, location_id, vaccination_date, expiry_date,
	batch_number, veterinarian, notes, status, created_at, updated_at`

func scanVaccination(s scanner) (vaccinations.Vaccination, error) {
	var (
		v        vaccinations.Vaccination
		location sql.NullString
		expiry   sql.NullTime
	)
	if err := s.Scan(
		&v.ID, &v.PetID, &v.VaccineTypeID, &location, &v.VaccinationDate, &expiry,
		&v.BatchNumber, &v.Veterinarian, &v.Notes, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return vaccinations.Vaccination{}, err
	}
	v.LocationID = location.String
	v.ExpiryDate = fromNullDate(expiry)
	return v, nil
}

func (r *VaccinationsRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccinations (`+vaccinationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		v.ID, v.PetID, v.VaccineTypeID, toNullString(v.LocationID), v.VaccinationDate, toNullDate(v.ExpiryDate),
		v.BatchNumber, v.Veterinarian, v.Notes, string(v.Status), v.CreatedAt, v.UpdatedAt,
	)
	return storeErr(err)
}

func (r *VaccinationsRepo) Update(ctx context.Context, v vaccinations.Vaccination) error {
	return affected(r.db.ExecContext(ctx, `
		UPDATE vaccinations
		SET
			location_id = $2,
			expiry_date = $3,
			batch_number = $4,
			veterinarian = $5,
			notes = $6,
			status = $7,
			updated_at = $8
		WHERE id = $1
	`,
		v.ID, toNullString(v.LocationID), toNullDate(v.ExpiryDate),
		v.BatchNumber, v.Veterinarian, v.Notes, string(v.Status), v.UpdatedAt,
	))
}

func (r *VaccinationsRepo) GetByID(ctx context.Context, id string) (vaccinations.Vaccination, error) {
	v, err := scanVaccination(r.db.QueryRowContext(ctx, `SELECT `+vaccinationColumns+` FROM vaccinations WHERE id = $1`, id))
	return v, storeErr(err)
}

func (r *VaccinationsRepo) ListByPet(ctx context.Context, petID string) ([]vaccinations.Vaccination, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vaccinations
		WHERE pet_id = $1
		ORDER BY vaccination_date DESC, created_at DESC
	`, petID)
	return collect(rows, err, scanVaccination)
}

func (r *VaccinationsRepo) ListByStatus(ctx context.Context, status vaccinations.Status) ([]vaccinations.Vaccination, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vaccinations
		WHERE status = $1
		ORDER BY vaccination_date ASC, created_at ASC
	`, string(status))
	return collect(rows, err, scanVaccination)
}

func (r *VaccinationsRepo) CountByStatus(ctx context.Context, status vaccinations.Status) (int, error) {
	return count(r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vaccinations WHERE status = $1`, string(status)))
}
