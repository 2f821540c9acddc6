package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccis-arch/avacc/internal/domain/breeds"
	"github.com/ccis-arch/avacc/internal/domain/inventory"
	"github.com/ccis-arch/avacc/internal/domain/owners"
	"github.com/ccis-arch/avacc/internal/domain/pets"
	"github.com/ccis-arch/avacc/internal/domain/users"
	"github.com/ccis-arch/avacc/internal/platform/apperr"
	"github.com/ccis-arch/avacc/internal/ports/auth"
)

func TestOwnerRepo_UniqueUserUnderConcurrency(t *testing.T) {
	repo := NewOwnerRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.Create(ctx, owners.PetOwner{ID: string(rune('a' + i)), UserID: "u1"})
		}(i)
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, apperr.ErrConflict)
	}
	assert.Equal(t, 1, ok)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserRepo_UpsertKeepsRole(t *testing.T) {
	repo := NewUserRepo()
	ctx := context.Background()
	now := time.Now()

	u, err := repo.Upsert(ctx, users.User{ID: "id-1", Identity: "sub-1", Name: "Ana", CreatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleUser, u.Role)

	_, err = repo.SetRole(ctx, "id-1", auth.RoleAdmin, now)
	require.NoError(t, err)

	// segundo login: otro ID propuesto, mismo identity, sin rol
	u, err = repo.Upsert(ctx, users.User{ID: "id-2", Identity: "sub-1", Name: "Ana María"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", u.ID)
	assert.Equal(t, auth.RoleAdmin, u.Role)
	assert.Equal(t, "Ana María", u.Name)
}

func TestBreedRepo_UniqueNameAndOrder(t *testing.T) {
	repo := NewBreedRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, breeds.Breed{ID: "2", Name: "Siamese"}))
	require.NoError(t, repo.Create(ctx, breeds.Breed{ID: "1", Name: "Beagle"}))
	assert.ErrorIs(t, repo.Create(ctx, breeds.Breed{ID: "3", Name: " beagle "}), apperr.ErrConflict)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Beagle", all[0].Name)
}

func TestPetRepo_SearchAndOrder(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p1", OwnerID: "o1", BreedID: "b1", Name: "Toby", MicrochipID: "CHIP-9", CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p2", OwnerID: "o2", BreedID: "b2", Name: "Luna", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p3", OwnerID: "o1", BreedID: "b2", Name: "Ares", CreatedAt: base.Add(2 * time.Hour)}))

	mine, err := repo.ListByOwner(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ares", "Toby"}, names(mine))

	found, err := repo.Search(ctx, "chip-9", []string{"o2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Luna", "Toby"}, names(found))

	byBreed, err := repo.ListByBreeds(ctx, []string{"b2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ares", "Luna"}, names(byBreed))

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func names(items []pets.Pet) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Name)
	}
	return out
}

func TestInventoryRepo_PairUniqueAndLowStock(t *testing.T) {
	repo := NewInventoryRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, inventory.Item{ID: "i1", VaccineTypeID: "v1", LocationID: "l1", QuantityInStock: 5, ReorderThreshold: 10}))
	require.NoError(t, repo.Create(ctx, inventory.Item{ID: "i2", VaccineTypeID: "v2", LocationID: "l1", QuantityInStock: 2, ReorderThreshold: 10}))
	require.NoError(t, repo.Create(ctx, inventory.Item{ID: "i3", VaccineTypeID: "v1", LocationID: "l2", QuantityInStock: 50, ReorderThreshold: 10}))
	assert.ErrorIs(t, repo.Create(ctx, inventory.Item{ID: "i4", VaccineTypeID: "v1", LocationID: "l1"}), apperr.ErrConflict)

	low, err := repo.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "i2", low[0].ID)

	n, err := repo.CountLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
