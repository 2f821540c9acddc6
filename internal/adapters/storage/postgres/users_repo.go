package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/ccis-arch/avacc/internal/domain/users"
	"github.com/ccis-arch/avacc/internal/ports/auth"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userColumns = `id, identity, name, email, role, created_at, updated_at, last_signed_in`

func scanUser(s scanner) (users.User, error) {
	var u users.User
	err := s.Scan(&u.ID, &u.Identity, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt, &u.LastSignedIn)
	return u, err
}

// Upsert: rol vacío conserva el guardado; en alta nueva cae al default 'user'.
func (r *UsersRepo) Upsert(ctx context.Context, u users.User) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, identity, name, email, role, created_at, updated_at, last_signed_in)
		VALUES ($1, $2, $3, $4, COALESCE(NULLIF($5, ''), 'user'), $6, $7, $8)
		ON CONFLICT (identity) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			role = CASE WHEN $5 = '' THEN users.role ELSE EXCLUDED.role END,
			updated_at = EXCLUDED.updated_at,
			last_signed_in = EXCLUDED.last_signed_in
		RETURNING `+userColumns,
		u.ID, u.Identity, u.Name, u.Email, string(u.Role), u.CreatedAt, u.UpdatedAt, u.LastSignedIn,
	)
	out, err := scanUser(row)
	return out, storeErr(err)
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	return u, storeErr(err)
}

func (r *UsersRepo) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC`)
	return collect(rows, err, scanUser)
}

func (r *UsersRepo) SetRole(ctx context.Context, id string, role auth.Role, at time.Time) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE users SET role = $2, updated_at = $3
		WHERE id = $1
		RETURNING `+userColumns,
		id, string(role), at,
	)
	u, err := scanUser(row)
	return u, storeErr(err)
}
