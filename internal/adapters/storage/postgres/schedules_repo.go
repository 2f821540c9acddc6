package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/ccis-arch/avacc/internal/domain/schedules"
)

type SchedulesRepo struct {
	db *sql.DB
}

func NewSchedulesRepo(db *sql.DB) *SchedulesRepo {
	return &SchedulesRepo{db: db}
}

const scheduleColumns = `id, location_id, pet_id, vaccine_type_id, scheduled_date, scheduled_time,
	status, notes, created_at, updated_at`

const scheduleOrder = ` ORDER BY scheduled_date ASC, scheduled_time ASC`

func scanSchedule(s scanner) (schedules.Schedule, error) {
	var sc schedules.Schedule
	err := s.Scan(
		&sc.ID, &sc.LocationID, &sc.PetID, &sc.VaccineTypeID, &sc.ScheduledDate, &sc.ScheduledTime,
		&sc.Status, &sc.Notes, &sc.CreatedAt, &sc.UpdatedAt,
	)
	return sc, err
}

func (r *SchedulesRepo) Create(ctx context.Context, sc schedules.Schedule) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccination_schedules (`+scheduleColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		sc.ID, sc.LocationID, sc.PetID, sc.VaccineTypeID, sc.ScheduledDate, sc.ScheduledTime,
		string(sc.Status), sc.Notes, sc.CreatedAt, sc.UpdatedAt,
	)
	return storeErr(err)
}

func (r *SchedulesRepo) Update(ctx context.Context, sc schedules.Schedule) error {
	return affected(r.db.ExecContext(ctx, `
		UPDATE vaccination_schedules
		SET
			scheduled_date = $2,
			scheduled_time = $3,
			status = $4,
			notes = $5,
			updated_at = $6
		WHERE id = $1
	`,
		sc.ID, sc.ScheduledDate, sc.ScheduledTime, string(sc.Status), sc.Notes, sc.UpdatedAt,
	))
}

func (r *SchedulesRepo) GetByID(ctx context.Context, id string) (schedules.Schedule, error) {
	sc, err := scanSchedule(r.db.QueryRowContext(ctx, `SELECT `+scheduleColumns+` FROM vaccination_schedules WHERE id = $1`, id))
	return sc, storeErr(err)
}

func (r *SchedulesRepo) ListByStatus(ctx context.Context, status schedules.Status) ([]schedules.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+scheduleColumns+` FROM vaccination_schedules WHERE status = $1`+scheduleOrder,
		string(status))
	return collect(rows, err, scanSchedule)
}

func (r *SchedulesRepo) ListByLocation(ctx context.Context, locationID string, from, to time.Time) ([]schedules.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+scheduleColumns+`
		FROM vaccination_schedules
		WHERE location_id = $1 AND scheduled_date >= $2 AND scheduled_date <= $3`+scheduleOrder,
		locationID, from, to)
	return collect(rows, err, scanSchedule)
}

func (r *SchedulesRepo) ListUpcomingByPet(ctx context.Context, petID string, from time.Time) ([]schedules.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+scheduleColumns+`
		FROM vaccination_schedules
		WHERE pet_id = $1 AND status = 'scheduled' AND scheduled_date >= $2`+scheduleOrder,
		petID, from)
	return collect(rows, err, scanSchedule)
}

func (r *SchedulesRepo) CountByStatus(ctx context.Context, status schedules.Status) (int, error) {
	return count(r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vaccination_schedules WHERE status = $1`, string(status)))
}
