package postgres

import (
	"context"
	"database/sql"

	"github.com/ccis-arch/avacc/internal/domain/breeds"
	"github.com/ccis-arch/avacc/internal/domain/locations"
	"github.com/ccis-arch/avacc/internal/domain/vaccines"
)

// -------------------------
// Breeds
// -------------------------

type BreedsRepo struct {
	db *sql.DB
}

func NewBreedsRepo(db *sql.DB) *BreedsRepo {
	return &BreedsRepo{db: db}
}

const breedColumns = `id, name, species, description, created_at`

func scanBreed(s scanner) (breeds.Breed, error) {
	var b breeds.Breed
	err := s.Scan(&b.ID, &b.Name, &b.Species, &b.Description, &b.CreatedAt)
	return b, err
}

func (r *BreedsRepo) Create(ctx context.Context, b breeds.Breed) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO breeds (`+breedColumns+`) VALUES ($1,$2,$3,$4,$5)
	`, b.ID, b.Name, string(b.Species), b.Description, b.CreatedAt)
	return storeErr(err)
}

func (r *BreedsRepo) GetByID(ctx context.Context, id string) (breeds.Breed, error) {
	b, err := scanBreed(r.db.QueryRowContext(ctx, `SELECT `+breedColumns+` FROM breeds WHERE id = $1`, id))
	return b, storeErr(err)
}

func (r *BreedsRepo) List(ctx context.Context) ([]breeds.Breed, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+breedColumns+` FROM breeds ORDER BY name ASC`)
	return collect(rows, err, scanBreed)
}

// -------------------------
// Vaccine types
// -------------------------

type VaccineTypesRepo struct {
	db *sql.DB
}

func NewVaccineTypesRepo(db *sql.DB) *VaccineTypesRepo {
	return &VaccineTypesRepo{db: db}
}

const vaccineTypeColumns = `id, name, category, description, recommended_age_months, revaccine_interval_months, created_at`

func scanVaccineType(s scanner) (vaccines.VaccineType, error) {
	var (
		v        vaccines.VaccineType
		age      sql.NullInt64
		interval sql.NullInt64
	)
	if err := s.Scan(&v.ID, &v.Name, &v.Category, &v.Description, &age, &interval, &v.CreatedAt); err != nil {
		return vaccines.VaccineType{}, err
	}
	v.RecommendedAgeMonths = fromNullInt(age)
	v.RevaccineIntervalMonths = fromNullInt(interval)
	return v, nil
}

func (r *VaccineTypesRepo) Create(ctx context.Context, v vaccines.VaccineType) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccine_types (`+vaccineTypeColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		v.ID, v.Name, v.Category, v.Description,
		toNullInt(v.RecommendedAgeMonths), toNullInt(v.RevaccineIntervalMonths),
		v.CreatedAt,
	)
	return storeErr(err)
}

func (r *VaccineTypesRepo) GetByID(ctx context.Context, id string) (vaccines.VaccineType, error) {
	v, err := scanVaccineType(r.db.QueryRowContext(ctx, `SELECT `+vaccineTypeColumns+` FROM vaccine_types WHERE id = $1`, id))
	return v, storeErr(err)
}

func (r *VaccineTypesRepo) List(ctx context.Context) ([]vaccines.VaccineType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+vaccineTypeColumns+` FROM vaccine_types ORDER BY name ASC`)
	return collect(rows, err, scanVaccineType)
}

// -------------------------
// Locations
// -------------------------

type LocationsRepo struct {
	db *sql.DB
}

func NewLocationsRepo(db *sql.DB) *LocationsRepo {
	return &LocationsRepo{db: db}
}

const locationColumns = `id, name, address, city, state, zip_code, latitude, longitude, phone, email, operating_hours, created_at, updated_at`

func scanLocation(s scanner) (locations.Location, error) {
	var (
		l        locations.Location
		lat, lng sql.NullFloat64
	)
	if err := s.Scan(
		&l.ID, &l.Name, &l.Address, &l.City, &l.State, &l.ZipCode,
		&lat, &lng,
		&l.Phone, &l.Email, &l.OperatingHours,
		&l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return locations.Location{}, err
	}
	l.Latitude = fromNullFloat(lat)
	l.Longitude = fromNullFloat(lng)
	return l, nil
}

func (r *LocationsRepo) Create(ctx context.Context, l locations.Location) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO locations (`+locationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		l.ID, l.Name, l.Address, l.City, l.State, l.ZipCode,
		toNullFloat(l.Latitude), toNullFloat(l.Longitude),
		l.Phone, l.Email, l.OperatingHours,
		l.CreatedAt, l.UpdatedAt,
	)
	return storeErr(err)
}

func (r *LocationsRepo) Update(ctx context.Context, l locations.Location) error {
	return affected(r.db.ExecContext(ctx, `
		UPDATE locations
		SET
			name = $2,
			address = $3,
			city = $4,
			state = $5,
			zip_code = $6,
			latitude = $7,
			longitude = $8,
			phone = $9,
			email = $10,
			operating_hours = $11,
			updated_at = $12
		WHERE id = $1
	`,
		l.ID, l.Name, l.Address, l.City, l.State, l.ZipCode,
		toNullFloat(l.Latitude), toNullFloat(l.Longitude),
		l.Phone, l.Email, l.OperatingHours,
		l.UpdatedAt,
	))
}

func (r *LocationsRepo) GetByID(ctx context.Context, id string) (locations.Location, error) {
	l, err := scanLocation(r.db.QueryRowContext(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id))
	return l, storeErr(err)
}

func (r *LocationsRepo) List(ctx context.Context) ([]locations.Location, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+locationColumns+` FROM locations ORDER BY name ASC`)
	return collect(rows, err, scanLocation)
}
