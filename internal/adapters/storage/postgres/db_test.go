package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/ccis-arch/avacc/internal/platform/apperr"
)

func TestStoreErr(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "pet_owners_user_id_key"}
	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "pets_breed_id_fkey"}

	cases := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", sql.ErrNoRows, apperr.ErrNotFound},
		{"unique", fmt.Errorf("exec: %w", unique), apperr.ErrConflict},
		{"foreign key", fk, apperr.ErrInvalidInput},
		{"driver fault", errors.New("dial tcp: connection refused"), apperr.ErrUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, storeErr(tc.in), tc.want)
		})
	}
	assert.NoError(t, storeErr(nil))
}

func TestStoreErr_ConflictNamesConstraint(t *testing.T) {
	err := storeErr(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "breeds_name_key"})
	assert.Contains(t, err.Error(), "breeds_name_key")
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, fromNullDate(toNullDate(nil)))
	d := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, d, *fromNullDate(toNullDate(&d)))

	assert.False(t, toNullString("").Valid)
	assert.True(t, toNullString("loc-1").Valid)

	n := 12
	assert.Equal(t, 12, *fromNullInt(toNullInt(&n)))
	assert.Nil(t, fromNullFloat(toNullFloat(nil)))
}

func TestSchema_DeclaresUniqueOwnerPerUser(t *testing.T) {
	assert.True(t, strings.Contains(Schema, "pet_owners_user_id_key"))
	assert.True(t, strings.Contains(Schema, "UNIQUE (vaccine_type_id, location_id)"))
}

func TestSearchQueries_MatchLiteralSubstrings(t *testing.T) {
	for name, q := range map[string]string{"pets": petSearchQuery, "owners": ownerSearchQuery} {
		assert.NotContains(t, strings.ToUpper(q), "LIKE", name)
		assert.Contains(t, q, "strpos(lower(", name)
		assert.Contains(t, q, "lower($1)", name)
	}
}
