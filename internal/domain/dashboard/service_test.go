package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/ccis-arch/avacc/internal/domain/inventory"
	"github.com/ccis-arch/avacc/internal/domain/schedules"
	"github.com/ccis-arch/avacc/internal/domain/vaccinations"
	"github.com/ccis-arch/avacc/internal/platform/apperr"
)

type fakeVaccinations map[vaccinations.Status]int

func (f fakeVaccinations) CountByStatus(_ context.Context, s vaccinations.Status) (int, error) {
	return f[s], nil
}

type fakeSchedules struct {
	counts map[schedules.Status]int
	err    error
}

func (f fakeSchedules) CountByStatus(_ context.Context, s schedules.Status) (int, error) {
	return f.counts[s], f.err
}

type fakeInventory struct {
	low, active int
}

func (f fakeInventory) CountLowStock(context.Context) (int, error)     { return f.low, nil }
func (f fakeInventory) CountActiveAlerts(context.Context) (int, error) { return f.active, nil }
func (f fakeInventory) StockLevels(context.Context) ([]inventory.StockLevel, error) {
	return nil, nil
}
func (f fakeInventory) ActiveAlerts(context.Context) ([]inventory.Alert, error) { return nil, nil }

func TestService_KPIs(t *testing.T) {
	svc := NewService(
		fakeVaccinations{vaccinations.StatusPending: 4, vaccinations.StatusCompleted: 9},
		fakeSchedules{counts: map[schedules.Status]int{schedules.StatusScheduled: 7, schedules.StatusCancelled: 2}},
		fakeInventory{low: 2, active: 3},
	)

	k, err := svc.KPIs(context.Background())
	if err != nil {
		t.Fatalf("KPIs: %v", err)
	}
	want := KPIs{
		ScheduledVaccinations:  7,
		PendingVaccinations:    4,
		LowVaccinationRequests: 4,
		LowStockItems:          2,
		ActiveReorderAlerts:    3,
	}
	if k != want {
		t.Fatalf("expected %+v, got %+v", want, k)
	}
}

func TestService_KPIs_StoreFault(t *testing.T) {
	svc := NewService(
		fakeVaccinations{},
		fakeSchedules{err: apperr.Unavailable(errors.New("conn refused"))},
		fakeInventory{},
	)
	if _, err := svc.KPIs(context.Background()); !errors.Is(err, apperr.ErrUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}
