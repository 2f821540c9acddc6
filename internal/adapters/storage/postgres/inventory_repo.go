package postgres

import (
	"context"
	"database/sql"

	"github.com/ccis-arch/avacc/internal/domain/inventory"
)

type InventoryRepo struct {
	db *sql.DB
}

func NewInventoryRepo(db *sql.DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

const itemColumns = `id, vaccine_type_id, location_id, quantity_in_stock, reorder_threshold, reorder_quantity,
	last_restocked_date, expiry_date, created_at, updated_at`

func scanItem(s scanner) (inventory.Item, error) {
	var (
		i         inventory.Item
		restocked sql.NullTime
		expiry    sql.NullTime
	)
	if err := s.Scan(
		&i.ID, &i.VaccineTypeID, &i.LocationID, &i.QuantityInStock, &i.ReorderThreshold, &i.ReorderQuantity,
		&restocked, &expiry, &i.CreatedAt, &i.UpdatedAt,
	); err != nil {
		return inventory.Item{}, err
	}
	i.LastRestockedDate = fromNullDate(restocked)
	i.ExpiryDate = fromNullDate(expiry)
	return i, nil
}

// Create: UNIQUE (vaccine_type_id, location_id) => Conflict.
func (r *InventoryRepo) Create(ctx context.Context, i inventory.Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccine_inventory (`+itemColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		i.ID, i.VaccineTypeID, i.LocationID, i.QuantityInStock, i.ReorderThreshold, i.ReorderQuantity,
		toNullDate(i.LastRestockedDate), toNullDate(i.ExpiryDate), i.CreatedAt, i.UpdatedAt,
	)
	return storeErr(err)
}

func (r *InventoryRepo) Update(ctx context.Context, i inventory.Item) error {
	return affected(r.db.ExecContext(ctx, `
		UPDATE vaccine_inventory
		SET
			quantity_in_stock = $2,
			reorder_threshold = $3,
			reorder_quantity = $4,
			last_restocked_date = $5,
			expiry_date = $6,
			updated_at = $7
		WHERE id = $1
	`,
		i.ID, i.QuantityInStock, i.ReorderThreshold, i.ReorderQuantity,
		toNullDate(i.LastRestockedDate), toNullDate(i.ExpiryDate), i.UpdatedAt,
	))
}

func (r *InventoryRepo) GetByID(ctx context.Context, id string) (inventory.Item, error) {
	i, err := scanItem(r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM vaccine_inventory WHERE id = $1`, id))
	return i, storeErr(err)
}

func (r *InventoryRepo) List(ctx context.Context) ([]inventory.Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM vaccine_inventory ORDER BY created_at ASC`)
	return collect(rows, err, scanItem)
}

func (r *InventoryRepo) ListByLocation(ctx context.Context, locationID string) ([]inventory.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+itemColumns+` FROM vaccine_inventory WHERE location_id = $1 ORDER BY created_at ASC
	`, locationID)
	return collect(rows, err, scanItem)
}

func (r *InventoryRepo) ListLowStock(ctx context.Context) ([]inventory.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM vaccine_inventory
		WHERE quantity_in_stock <= reorder_threshold
		ORDER BY quantity_in_stock ASC, created_at ASC
	`)
	return collect(rows, err, scanItem)
}

func (r *InventoryRepo) CountLowStock(ctx context.Context) (int, error) {
	return count(r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vaccine_inventory WHERE quantity_in_stock <= reorder_threshold`))
}

// -------------------------
// Reorder alerts
// -------------------------

type AlertsRepo struct {
	db *sql.DB
}

func NewAlertsRepo(db *sql.DB) *AlertsRepo {
	return &AlertsRepo{db: db}
}

const alertColumns = `id, inventory_id, alert_type, quantity, status, created_at, updated_at`

func scanAlert(s scanner) (inventory.Alert, error) {
	var a inventory.Alert
	err := s.Scan(&a.ID, &a.InventoryID, &a.Type, &a.Quantity, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *AlertsRepo) Create(ctx context.Context, a inventory.Alert) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reorder_alerts (`+alertColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, a.ID, a.InventoryID, string(a.Type), a.Quantity, string(a.Status), a.CreatedAt, a.UpdatedAt)
	return storeErr(err)
}

func (r *AlertsRepo) Update(ctx context.Context, a inventory.Alert) error {
	return affected(r.db.ExecContext(ctx, `
		UPDATE reorder_alerts SET status = $2, updated_at = $3 WHERE id = $1
	`, a.ID, string(a.Status), a.UpdatedAt))
}

func (r *AlertsRepo) GetByID(ctx context.Context, id string) (inventory.Alert, error) {
	a, err := scanAlert(r.db.QueryRowContext(ctx, `SELECT `+alertColumns+` FROM reorder_alerts WHERE id = $1`, id))
	return a, storeErr(err)
}

func (r *AlertsRepo) ListByInventory(ctx context.Context, inventoryID string) ([]inventory.Alert, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+alertColumns+` FROM reorder_alerts WHERE inventory_id = $1 ORDER BY created_at DESC
	`, inventoryID)
	return collect(rows, err, scanAlert)
}

func (r *AlertsRepo) ListByStatus(ctx context.Context, status inventory.AlertStatus) ([]inventory.Alert, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+alertColumns+` FROM reorder_alerts WHERE status = $1 ORDER BY created_at DESC
	`, string(status))
	return collect(rows, err, scanAlert)
}

func (r *AlertsRepo) CountByStatus(ctx context.Context, status inventory.AlertStatus) (int, error) {
	return count(r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reorder_alerts WHERE status = $1`, string(status)))
}
