// Package reports genera planillas xlsx de inventario y mascotas.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ccis-arch/avacc/internal/domain/inventory"
	"github.com/ccis-arch/avacc/internal/domain/pets"
	"github.com/ccis-arch/avacc/internal/platform/httpx"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	InventoryHeader = []string{
		"Vaccine Type", "Location", "Quantity In Stock", "Reorder Threshold",
		"Reorder Quantity", "Low Stock", "Last Restocked", "Expiry Date",
	}
	PetsHeader = []string{
		"Pet", "Species", "Breed", "Date Of Birth", "Microchip ID",
		"Owner", "Owner Email", "Registered At",
	}
)

type Inventory interface {
	StockLevels(ctx context.Context) ([]inventory.StockLevel, error)
}

type Pets interface {
	ListAllDetails(ctx context.Context) ([]pets.Details, error)
}

type Service struct {
	inventory Inventory
	pets      Pets
}

func NewService(inv Inventory, p Pets) *Service {
	return &Service{inventory: inv, pets: p}
}

func (s *Service) InventoryXLSX(ctx context.Context) ([]byte, error) {
	items, err := s.inventory.StockLevels(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(items))
	for _, l := range items {
		low := "No"
		if l.Item.LowStock() {
			low = "Yes"
		}
		rows = append(rows, []any{
			l.VaccineTypeName,
			l.LocationName,
			l.Item.QuantityInStock,
			l.Item.ReorderThreshold,
			l.Item.ReorderQuantity,
			low,
			dateCell(l.Item.LastRestockedDate),
			dateCell(l.Item.ExpiryDate),
		})
	}
	return writeSheet("Inventory", InventoryHeader, rows)
}

func (s *Service) PetsXLSX(ctx context.Context) ([]byte, error) {
	items, err := s.pets.ListAllDetails(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(items))
	for _, d := range items {
		rows = append(rows, []any{
			d.Pet.Name,
			string(d.Breed.Species),
			d.Breed.Name,
			dateCell(d.Pet.DateOfBirth),
			d.Pet.MicrochipID,
			d.Owner.FullName(),
			d.Owner.Email,
			d.Pet.CreatedAt.Format(httpx.DateLayout),
		})
	}
	return writeSheet("Pets", PetsHeader, rows)
}

func writeSheet(name string, header []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(name); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	// Borrar Sheet1 corre los índices.
	if index, err := f.GetSheetIndex(name); err == nil && index >= 0 {
		f.SetActiveSheet(index)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &cells); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(name, "A", lastCol, 20); err != nil {
		return nil, fmt.Errorf("column width: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func dateCell(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(httpx.DateLayout)
}
