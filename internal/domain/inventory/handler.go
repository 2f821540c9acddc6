package inventory

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ccis-arch/avacc/internal/access"
	"github.com/ccis-arch/avacc/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, gate *access.Gate) {
	r.Post("/inventory", createItemHandler(svc, gate))
	r.Get("/inventory", listItemsHandler(svc, gate))
	r.Get("/inventory/low-stock", lowStockHandler(svc, gate))
	r.Patch("/inventory/{inventoryID}", updateItemHandler(svc, gate))

	r.Get("/locations/{locationID}/inventory", locationInventoryHandler(svc, gate))

	r.Route("/reorder-alerts", func(r chi.Router) {
		r.Get("/", activeAlertsHandler(svc, gate))
		r.Post("/{alertID}/acknowledge", alertStatusHandler(gate, svc.Acknowledge))
		r.Post("/{alertID}/resolve", alertStatusHandler(gate, svc.Resolve))
	})
}

type createItemRequest struct {
	VaccineTypeID     string `json:"vaccine_type_id"`
	LocationID        string `json:"location_id"`
	QuantityInStock   int    `json:"quantity_in_stock"`
	ReorderThreshold  *int   `json:"reorder_threshold"` // default 10
	ReorderQuantity   *int   `json:"reorder_quantity"`  // default 50
	LastRestockedDate string `json:"last_restocked_date"`
	ExpiryDate        string `json:"expiry_date"`
}

type updateItemRequest struct {
	QuantityInStock   *int    `json:"quantity_in_stock"`
	ReorderThreshold  *int    `json:"reorder_threshold"`
	ReorderQuantity   *int    `json:"reorder_quantity"`
	LastRestockedDate *string `json:"last_restocked_date"`
	ExpiryDate        *string `json:"expiry_date"`
}

type ItemResponse struct {
	ID                string    `json:"id"`
	VaccineTypeID     string    `json:"vaccine_type_id"`
	LocationID        string    `json:"location_id"`
	QuantityInStock   int       `json:"quantity_in_stock"`
	ReorderThreshold  int       `json:"reorder_threshold"`
	ReorderQuantity   int       `json:"reorder_quantity"`
	LowStock          bool      `json:"low_stock"`
	LastRestockedDate *string   `json:"last_restocked_date,omitempty"`
	ExpiryDate        *string   `json:"expiry_date,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type AlertResponse struct {
	ID          string      `json:"id"`
	InventoryID string      `json:"inventory_id"`
	AlertType   AlertType   `json:"alert_type"`
	Quantity    int         `json:"quantity"`
	Status      AlertStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type ResultResponse struct {
	Item         ItemResponse    `json:"item"`
	RaisedAlerts []AlertResponse `json:"raised_alerts"`
}

type StockLevelResponse struct {
	ItemResponse
	VaccineTypeName string `json:"vaccine_type_name"`
	LocationName    string `json:"location_name"`
}

// createItemHandler godoc
// @Summary Crear inventario (admin)
// @Description Un item por (vaccine_type_id, location_id). Evalúa alertas de reposición al guardar.
// @Tags inventory
// @Accept json
// @Produce json
// @Param payload body createItemRequest true "Stock inicial; fechas YYYY-MM-DD"
// @Success 201 {object} ResultResponse
// @Failure 400 {string} string "invalid input"
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "inventory already exists"
// @Router /inventory [post]
func createItemHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}

		var req createItemRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		restocked, err := httpx.ParseDate("last_restocked_date", req.LastRestockedDate)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		expiry, err := httpx.ParseDate("expiry_date", req.ExpiryDate)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		res, err := svc.Create(r.Context(), CreateInput{
			VaccineTypeID:     req.VaccineTypeID,
			LocationID:        req.LocationID,
			QuantityInStock:   req.QuantityInStock,
			ReorderThreshold:  req.ReorderThreshold,
			ReorderQuantity:   req.ReorderQuantity,
			LastRestockedDate: restocked,
			ExpiryDate:        expiry,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toResultResponse(res))
	}
}

// updateItemHandler godoc
// @Summary Actualizar inventario (admin)
// @Description Reevalúa alertas: levanta nuevas y resuelve las que ya no aplican.
// @Tags inventory
// @Accept json
// @Produce json
// @Param inventoryID path string true "ID del item"
// @Param payload body updateItemRequest true "Campos a modificar"
// @Success 200 {object} ResultResponse
// @Failure 404 {string} string "inventory item not found"
// @Router /inventory/{inventoryID} [patch]
func updateItemHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}

		var req updateItemRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		in := UpdateInput{
			QuantityInStock:  req.QuantityInStock,
			ReorderThreshold: req.ReorderThreshold,
			ReorderQuantity:  req.ReorderQuantity,
		}
		if req.LastRestockedDate != nil {
			d, err := httpx.ParseDate("last_restocked_date", *req.LastRestockedDate)
			if err != nil {
				httpx.WriteError(w, err)
				return
			}
			in.LastRestockedDate = d
		}
		if req.ExpiryDate != nil {
			d, err := httpx.ParseDate("expiry_date", *req.ExpiryDate)
			if err != nil {
				httpx.WriteError(w, err)
				return
			}
			in.ExpiryDate = d
		}

		res, err := svc.Update(r.Context(), chi.URLParam(r, "inventoryID"), in)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResultResponse(res))
	}
}

func listItemsHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toItemResponses(items))
	}
}

// lowStockHandler godoc
// @Summary Items con stock bajo (admin)
// @Description quantity_in_stock <= reorder_threshold, por cantidad ascendente.
// @Tags inventory
// @Produce json
// @Success 200 {array} ItemResponse
// @Router /inventory/low-stock [get]
func lowStockHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		items, err := svc.LowStock(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toItemResponses(items))
	}
}

func locationInventoryHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		items, err := svc.ByLocation(r.Context(), chi.URLParam(r, "locationID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toItemResponses(items))
	}
}

// activeAlertsHandler godoc
// @Summary Alertas de reposición activas (admin)
// @Tags inventory
// @Produce json
// @Success 200 {array} AlertResponse
// @Router /reorder-alerts [get]
func activeAlertsHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		items, err := svc.ActiveAlerts(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToAlertResponses(items))
	}
}

// alertStatusHandler sirve acknowledge y resolve.
func alertStatusHandler(gate *access.Gate, apply func(ctx context.Context, alertID string) (Alert, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		a, err := apply(r.Context(), chi.URLParam(r, "alertID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToAlertResponse(a))
	}
}

func dateOrNil(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(httpx.DateLayout)
	return &s
}

func ToItemResponse(i Item) ItemResponse {
	return ItemResponse{
		ID:                i.ID,
		VaccineTypeID:     i.VaccineTypeID,
		LocationID:        i.LocationID,
		QuantityInStock:   i.QuantityInStock,
		ReorderThreshold:  i.ReorderThreshold,
		ReorderQuantity:   i.ReorderQuantity,
		LowStock:          i.LowStock(),
		LastRestockedDate: dateOrNil(i.LastRestockedDate),
		ExpiryDate:        dateOrNil(i.ExpiryDate),
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

func toItemResponses(items []Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, ToItemResponse(i))
	}
	return out
}

func ToAlertResponse(a Alert) AlertResponse {
	return AlertResponse{
		ID:          a.ID,
		InventoryID: a.InventoryID,
		AlertType:   a.Type,
		Quantity:    a.Quantity,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func ToAlertResponses(items []Alert) []AlertResponse {
	out := make([]AlertResponse, 0, len(items))
	for _, a := range items {
		out = append(out, ToAlertResponse(a))
	}
	return out
}

func ToStockLevelResponses(items []StockLevel) []StockLevelResponse {
	out := make([]StockLevelResponse, 0, len(items))
	for _, s := range items {
		out = append(out, StockLevelResponse{
			ItemResponse:    ToItemResponse(s.Item),
			VaccineTypeName: s.VaccineTypeName,
			LocationName:    s.LocationName,
		})
	}
	return out
}

func toResultResponse(res Result) ResultResponse {
	return ResultResponse{
		Item:         ToItemResponse(res.Item),
		RaisedAlerts: ToAlertResponses(res.Raised),
	}
}
