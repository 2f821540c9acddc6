package inventory

import (
	"time"

	"github.com/ccis-arch/avacc/internal/domain/lifecycle"
)

const (
	DefaultReorderThreshold = 10
	DefaultReorderQuantity  = 50

	// ExpiringSoonWindow: un lote que vence dentro de esta ventana genera expiring_soon.
	ExpiringSoonWindow = 30 * 24 * time.Hour
)

// Item es el stock de un tipo de vacuna en un centro. (vaccine_type_id, location_id) es único.
type Item struct {
	ID            string
	VaccineTypeID string
	LocationID    string

	QuantityInStock  int
	ReorderThreshold int
	ReorderQuantity  int

	LastRestockedDate *time.Time
	ExpiryDate        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (i Item) LowStock() bool { return i.QuantityInStock <= i.ReorderThreshold }

// @Enum low_stock, expired, expiring_soon
type AlertType string

const (
	AlertLowStock     AlertType = "low_stock"
	AlertExpired      AlertType = "expired"
	AlertExpiringSoon AlertType = "expiring_soon"
)

// @Enum active, acknowledged, resolved
type AlertStatus string

const (
	AlertActive       AlertStatus = "active"
	AlertAcknowledged AlertStatus = "acknowledged"
	AlertResolved     AlertStatus = "resolved"
)

var AlertTransitions = lifecycle.NewTable("reorder alert", map[AlertStatus][]AlertStatus{
	AlertActive:       {AlertAcknowledged, AlertResolved},
	AlertAcknowledged: {AlertResolved},
	AlertResolved:     nil,
})

type Alert struct {
	ID          string
	InventoryID string
	Type        AlertType
	Quantity    int // stock al momento de la alerta
	Status      AlertStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open: la alerta sigue pendiente de resolución.
func (a Alert) Open() bool { return a.Status != AlertResolved }

// StockLevel es un item con los nombres de vacuna y centro resueltos.
type StockLevel struct {
	Item            Item
	VaccineTypeName string
	LocationName    string
}
