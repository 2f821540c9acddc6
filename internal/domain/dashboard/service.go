// Package dashboard agrega contadores de los demás módulos para la vista de admin.
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ccis-arch/avacc/internal/domain/inventory"
	"github.com/ccis-arch/avacc/internal/domain/schedules"
	"github.com/ccis-arch/avacc/internal/domain/vaccinations"
)

type Vaccinations interface {
	CountByStatus(ctx context.Context, status vaccinations.Status) (int, error)
}

type Schedules interface {
	CountByStatus(ctx context.Context, status schedules.Status) (int, error)
}

type Inventory interface {
	CountLowStock(ctx context.Context) (int, error)
	CountActiveAlerts(ctx context.Context) (int, error)
	StockLevels(ctx context.Context) ([]inventory.StockLevel, error)
	ActiveAlerts(ctx context.Context) ([]inventory.Alert, error)
}

type KPIs struct {
	ScheduledVaccinations int `json:"scheduledVaccinations"`
	PendingVaccinations   int `json:"pendingVaccinations"`
	// LowVaccinationRequests cuenta vacunaciones pending.
	LowVaccinationRequests int `json:"lowVaccinationRequests"`
	LowStockItems          int `json:"lowStockItems"`
	ActiveReorderAlerts    int `json:"activeReorderAlerts"`
}

type Service struct {
	vaccinations Vaccinations
	schedules    Schedules
	inventory    Inventory
}

func NewService(v Vaccinations, s Schedules, inv Inventory) *Service {
	return &Service{vaccinations: v, schedules: s, inventory: inv}
}

// KPIs corre los conteos en paralelo; el primer error cancela el resto.
func (s *Service) KPIs(ctx context.Context) (KPIs, error) {
	var k KPIs
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.schedules.CountByStatus(gctx, schedules.StatusScheduled)
		k.ScheduledVaccinations = n
		return err
	})
	g.Go(func() error {
		n, err := s.vaccinations.CountByStatus(gctx, vaccinations.StatusPending)
		k.PendingVaccinations = n
		k.LowVaccinationRequests = n
		return err
	})
	g.Go(func() error {
		n, err := s.inventory.CountLowStock(gctx)
		k.LowStockItems = n
		return err
	})
	g.Go(func() error {
		n, err := s.inventory.CountActiveAlerts(gctx)
		k.ActiveReorderAlerts = n
		return err
	})

	if err := g.Wait(); err != nil {
		return KPIs{}, err
	}
	return k, nil
}

func (s *Service) StockLevels(ctx context.Context) ([]inventory.StockLevel, error) {
	return s.inventory.StockLevels(ctx)
}

func (s *Service) ReorderAlerts(ctx context.Context) ([]inventory.Alert, error) {
	return s.inventory.ActiveAlerts(ctx)
}
