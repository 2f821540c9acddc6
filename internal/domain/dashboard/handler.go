package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ccis-arch/avacc/internal/access"
	"github.com/ccis-arch/avacc/internal/domain/inventory"
	"github.com/ccis-arch/avacc/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, gate *access.Gate) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/kpis", kpisHandler(svc, gate))
		r.Get("/stock-levels", stockLevelsHandler(svc, gate))
		r.Get("/reorder-alerts", reorderAlertsHandler(svc, gate))
	})
}

// kpisHandler godoc
// @Summary KPIs del dashboard (admin)
// @Tags dashboard
// @Produce json
// @Success 200 {object} KPIs
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 503 {string} string "service unavailable"
// @Router /dashboard/kpis [get]
func kpisHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		k, err := svc.KPIs(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, k)
	}
}

func stockLevelsHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		items, err := svc.StockLevels(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, inventory.ToStockLevelResponses(items))
	}
}

func reorderAlertsHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		items, err := svc.ReorderAlerts(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, inventory.ToAlertResponses(items))
	}
}
