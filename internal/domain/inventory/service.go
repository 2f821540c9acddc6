package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ccis-arch/avacc/internal/domain/locations"
	"github.com/ccis-arch/avacc/internal/domain/vaccines"
	"github.com/ccis-arch/avacc/internal/platform/apperr"
	"github.com/ccis-arch/avacc/internal/platform/logger"
	"github.com/ccis-arch/avacc/internal/ports/notify"
)

// EventAlertRaised es el tipo de evento publicado por cada alerta nueva.
const EventAlertRaised = "reorder_alert.raised"

type VaccineTypes interface {
	Get(ctx context.Context, id string) (vaccines.VaccineType, error)
}

type Locations interface {
	Get(ctx context.Context, id string) (locations.Location, error)
}

type Options struct {
	// Publisher nil => las alertas solo se persisten.
	Publisher notify.Publisher
	// OnAlert se llama por cada alerta nueva (métricas).
	OnAlert func(alertType string)
	// OnEvaluateFailure se llama cuando la evaluación de alertas no pudo completarse.
	OnEvaluateFailure func()
	Log               logger.Logger

	EnforceTransitions bool
}

type Service struct {
	items     Repository
	alerts    AlertRepository
	vaccines  VaccineTypes
	locations Locations

	publisher     notify.Publisher
	onAlert       func(string)
	onEvalFailure func()
	log           logger.Logger
	enforce       bool

	now func() time.Time
}

func NewService(items Repository, alerts AlertRepository, vaccineTypes VaccineTypes, locs Locations, opts Options) *Service {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	onAlert := opts.OnAlert
	if onAlert == nil {
		onAlert = func(string) {}
	}
	onEvalFailure := opts.OnEvaluateFailure
	if onEvalFailure == nil {
		onEvalFailure = func() {}
	}
	return &Service{
		items:         items,
		alerts:        alerts,
		vaccines:      vaccineTypes,
		locations:     locs,
		publisher:     opts.Publisher,
		onAlert:       onAlert,
		onEvalFailure: onEvalFailure,
		log:           log,
		enforce:       opts.EnforceTransitions,
		now:           time.Now,
	}
}

type CreateInput struct {
	VaccineTypeID     string
	LocationID        string
	QuantityInStock   int
	ReorderThreshold  *int // nil => DefaultReorderThreshold
	ReorderQuantity   *int // nil => DefaultReorderQuantity
	LastRestockedDate *time.Time
	ExpiryDate        *time.Time
}

type UpdateInput struct {
	QuantityInStock   *int
	ReorderThreshold  *int
	ReorderQuantity   *int
	LastRestockedDate *time.Time
	ExpiryDate        *time.Time
}

// Result es el item mutado más las alertas que levantó la evaluación.
type Result struct {
	Item   Item
	Raised []Alert
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Result, error) {
	it := Item{
		ID:                uuid.NewString(),
		VaccineTypeID:     strings.TrimSpace(in.VaccineTypeID),
		LocationID:        strings.TrimSpace(in.LocationID),
		QuantityInStock:   in.QuantityInStock,
		ReorderThreshold:  DefaultReorderThreshold,
		ReorderQuantity:   DefaultReorderQuantity,
		LastRestockedDate: in.LastRestockedDate,
		ExpiryDate:        in.ExpiryDate,
	}
	if in.ReorderThreshold != nil {
		it.ReorderThreshold = *in.ReorderThreshold
	}
	if in.ReorderQuantity != nil {
		it.ReorderQuantity = *in.ReorderQuantity
	}
	if err := validate(it); err != nil {
		return Result{}, err
	}
	if err := s.checkRefs(ctx, it.VaccineTypeID, it.LocationID); err != nil {
		return Result{}, err
	}

	now := s.now().UTC()
	it.CreatedAt, it.UpdatedAt = now, now
	if err := s.items.Create(ctx, it); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return Result{}, fmt.Errorf("%w: inventory already exists for this vaccine type and location", apperr.ErrConflict)
		}
		return Result{}, apperr.Unavailable(err)
	}

	return Result{Item: it, Raised: s.reconcile(ctx, it)}, nil
}

func validate(it Item) error {
	if it.QuantityInStock < 0 || it.ReorderThreshold < 0 || it.ReorderQuantity < 0 {
		return fmt.Errorf("%w: quantities must be >= 0", apperr.ErrInvalidInput)
	}
	return nil
}

func (s *Service) checkRefs(ctx context.Context, vaccineTypeID, locationID string) error {
	if vaccineTypeID == "" || locationID == "" {
		return fmt.Errorf("%w: vaccine_type_id and location_id are required", apperr.ErrInvalidInput)
	}
	if _, err := s.vaccines.Get(ctx, vaccineTypeID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("%w: unknown vaccine_type_id", apperr.ErrInvalidInput)
		}
		return err
	}
	if _, err := s.locations.Get(ctx, locationID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("%w: unknown location_id", apperr.ErrInvalidInput)
		}
		return err
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (Item, error) {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Item{}, fmt.Errorf("%w: inventory item not found", apperr.ErrNotFound)
		}
		return Item{}, apperr.Unavailable(err)
	}
	return it, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Result, error) {
	it, err := s.Get(ctx, id)
	if err != nil {
		return Result{}, err
	}

	if in.QuantityInStock != nil {
		// Un aumento de stock sin fecha explícita cuenta como reposición de hoy.
		if *in.QuantityInStock > it.QuantityInStock && in.LastRestockedDate == nil {
			today := s.today()
			it.LastRestockedDate = &today
		}
		it.QuantityInStock = *in.QuantityInStock
	}
	if in.ReorderThreshold != nil {
		it.ReorderThreshold = *in.ReorderThreshold
	}
	if in.ReorderQuantity != nil {
		it.ReorderQuantity = *in.ReorderQuantity
	}
	if in.LastRestockedDate != nil {
		it.LastRestockedDate = in.LastRestockedDate
	}
	if in.ExpiryDate != nil {
		it.ExpiryDate = in.ExpiryDate
	}
	if err := validate(it); err != nil {
		return Result{}, err
	}
	it.UpdatedAt = s.now().UTC()

	if err := s.items.Update(ctx, it); err != nil {
		return Result{}, apperr.Unavailable(err)
	}

	return Result{Item: it, Raised: s.reconcile(ctx, it)}, nil
}

func (s *Service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// reconcile corre después de persistir el item y no falla la mutación:
// el stock ya quedó guardado, la próxima mutación vuelve a evaluar.
func (s *Service) reconcile(ctx context.Context, it Item) []Alert {
	raised, err := s.evaluate(ctx, it)
	if err != nil {
		s.log.Warn("reorder alert evaluation failed", map[string]any{
			"inventory_id": it.ID,
			"error":        err,
		})
		s.onEvalFailure()
	}
	return raised
}

// evaluate levanta una alerta por condición mientras no haya otra abierta del mismo tipo,
// y resuelve las abiertas cuya condición ya no se cumple.
func (s *Service) evaluate(ctx context.Context, it Item) ([]Alert, error) {
	existing, err := s.alerts.ListByInventory(ctx, it.ID)
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	open := map[AlertType][]Alert{}
	for _, a := range existing {
		if a.Open() {
			open[a.Type] = append(open[a.Type], a)
		}
	}

	want := map[AlertType]bool{AlertLowStock: it.LowStock()}
	if it.ExpiryDate != nil {
		today := s.today()
		switch {
		case it.ExpiryDate.Before(today):
			want[AlertExpired] = true
		case it.ExpiryDate.Before(today.Add(ExpiringSoonWindow)):
			want[AlertExpiringSoon] = true
		}
	}

	now := s.now().UTC()
	var raised []Alert
	for _, t := range []AlertType{AlertLowStock, AlertExpired, AlertExpiringSoon} {
		if !want[t] {
			for _, a := range open[t] {
				a.Status = AlertResolved
				a.UpdatedAt = now
				if err := s.alerts.Update(ctx, a); err != nil {
					return raised, apperr.Unavailable(err)
				}
			}
			continue
		}
		if len(open[t]) > 0 {
			continue
		}
		a := Alert{
			ID:          uuid.NewString(),
			InventoryID: it.ID,
			Type:        t,
			Quantity:    it.QuantityInStock,
			Status:      AlertActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.alerts.Create(ctx, a); err != nil {
			return raised, apperr.Unavailable(err)
		}
		raised = append(raised, a)
		s.onAlert(string(a.Type))
		s.publish(ctx, it, a)
	}
	return raised, nil
}

// publish no falla la mutación: la alerta ya quedó persistida.
func (s *Service) publish(ctx context.Context, it Item, a Alert) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, notify.Event{
		Type:       EventAlertRaised,
		OccurredAt: a.CreatedAt,
		Payload: map[string]any{
			"alert_id":         a.ID,
			"alert_type":       string(a.Type),
			"inventory_id":     it.ID,
			"vaccine_type_id":  it.VaccineTypeID,
			"location_id":      it.LocationID,
			"quantity":         a.Quantity,
			"reorder_quantity": it.ReorderQuantity,
		},
	})
	if err != nil {
		s.log.Warn("reorder alert publish failed", map[string]any{
			"alert_id":   a.ID,
			"alert_type": string(a.Type),
			"error":      err,
		})
	}
}

func (s *Service) List(ctx context.Context) ([]Item, error) {
	items, err := s.items.List(ctx)
	return items, apperr.Unavailable(err)
}

func (s *Service) ByLocation(ctx context.Context, locationID string) ([]Item, error) {
	items, err := s.items.ListByLocation(ctx, locationID)
	return items, apperr.Unavailable(err)
}

func (s *Service) LowStock(ctx context.Context) ([]Item, error) {
	items, err := s.items.ListLowStock(ctx)
	return items, apperr.Unavailable(err)
}

func (s *Service) CountLowStock(ctx context.Context) (int, error) {
	n, err := s.items.CountLowStock(ctx)
	return n, apperr.Unavailable(err)
}

// StockLevels: todo el inventario con nombres resueltos.
func (s *Service) StockLevels(ctx context.Context) ([]StockLevel, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	vaccineNames := map[string]string{}
	locationNames := map[string]string{}
	out := make([]StockLevel, 0, len(items))
	for _, it := range items {
		vn, ok := vaccineNames[it.VaccineTypeID]
		if !ok {
			vt, err := s.vaccines.Get(ctx, it.VaccineTypeID)
			if err != nil && !errors.Is(err, apperr.ErrNotFound) {
				return nil, err
			}
			vn = vt.Name
			vaccineNames[it.VaccineTypeID] = vn
		}
		ln, ok := locationNames[it.LocationID]
		if !ok {
			l, err := s.locations.Get(ctx, it.LocationID)
			if err != nil && !errors.Is(err, apperr.ErrNotFound) {
				return nil, err
			}
			ln = l.Name
			locationNames[it.LocationID] = ln
		}
		out = append(out, StockLevel{Item: it, VaccineTypeName: vn, LocationName: ln})
	}
	return out, nil
}

// ActiveAlerts: alertas active, más reciente primero.
func (s *Service) ActiveAlerts(ctx context.Context) ([]Alert, error) {
	items, err := s.alerts.ListByStatus(ctx, AlertActive)
	return items, apperr.Unavailable(err)
}

func (s *Service) CountActiveAlerts(ctx context.Context) (int, error) {
	n, err := s.alerts.CountByStatus(ctx, AlertActive)
	return n, apperr.Unavailable(err)
}

func (s *Service) Acknowledge(ctx context.Context, alertID string) (Alert, error) {
	return s.setAlertStatus(ctx, alertID, AlertAcknowledged)
}

func (s *Service) Resolve(ctx context.Context, alertID string) (Alert, error) {
	return s.setAlertStatus(ctx, alertID, AlertResolved)
}

func (s *Service) setAlertStatus(ctx context.Context, alertID string, to AlertStatus) (Alert, error) {
	a, err := s.alerts.GetByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Alert{}, fmt.Errorf("%w: reorder alert not found", apperr.ErrNotFound)
		}
		return Alert{}, apperr.Unavailable(err)
	}
	if err := AlertTransitions.Check(a.Status, to, s.enforce); err != nil {
		return Alert{}, err
	}
	a.Status = to
	a.UpdatedAt = s.now().UTC()
	if err := s.alerts.Update(ctx, a); err != nil {
		return Alert{}, apperr.Unavailable(err)
	}
	return a, nil
}
