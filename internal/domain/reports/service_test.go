package reports

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ccis-arch/avacc/internal/domain/breeds"
	"github.com/ccis-arch/avacc/internal/domain/inventory"
	"github.com/ccis-arch/avacc/internal/domain/owners"
	"github.com/ccis-arch/avacc/internal/domain/pets"
)

type fakeInventory []inventory.StockLevel

func (f fakeInventory) StockLevels(context.Context) ([]inventory.StockLevel, error) { return f, nil }

type fakePets []pets.Details

func (f fakePets) ListAllDetails(context.Context) ([]pets.Details, error) { return f, nil }

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestInventoryXLSX(t *testing.T) {
	expiry := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	svc := NewService(fakeInventory{
		{
			Item:            inventory.Item{QuantityInStock: 3, ReorderThreshold: 10, ReorderQuantity: 50, ExpiryDate: &expiry},
			VaccineTypeName: "Rabies",
			LocationName:    "Centro Norte",
		},
	}, fakePets{})

	data, err := svc.InventoryXLSX(context.Background())
	require.NoError(t, err)

	f := open(t, data)
	rows, err := f.GetRows("Inventory")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, InventoryHeader, rows[0])
	assert.Equal(t, []string{"Rabies", "Centro Norte", "3", "10", "50", "Yes", "", "2025-06-30"}, rows[1])
	assert.Equal(t, []string{"Inventory"}, f.GetSheetList())
}

func TestPetsXLSX(t *testing.T) {
	created := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	svc := NewService(fakeInventory{}, fakePets{
		{
			Pet:   pets.Pet{Name: "Max", MicrochipID: "CHIP-1", CreatedAt: created},
			Breed: breeds.Breed{Name: "Labrador", Species: breeds.SpeciesDog},
			Owner: owners.PetOwner{FirstName: "Ana", LastName: "Paz", Email: "ana@example.com"},
		},
	})

	data, err := svc.PetsXLSX(context.Background())
	require.NoError(t, err)

	rows, err := open(t, data).GetRows("Pets")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Max", rows[1][0])
	assert.Equal(t, "dog", rows[1][1])
	assert.Equal(t, "Ana Paz", rows[1][5])
	assert.Equal(t, "2025-01-02", rows[1][7])
}
