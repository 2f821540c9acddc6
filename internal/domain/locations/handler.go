package locations

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ccis-arch/avacc/internal/access"
	"github.com/ccis-arch/avacc/internal/platform/httpx"
)

// RegisterRoutes registra rutas planas: /locations/{id}/... también lo usan inventory y schedules.
func RegisterRoutes(r chi.Router, svc *Service, gate *access.Gate) {
	r.Get("/locations", listLocationsHandler(svc))
	r.Post("/locations", createLocationHandler(svc, gate))
	r.Patch("/locations/{locationID}", updateLocationHandler(svc, gate))
}

type createLocationRequest struct {
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	ZipCode        string   `json:"zip_code"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	OperatingHours string   `json:"operating_hours"`
}

type updateLocationRequest struct {
	Name           *string  `json:"name"`
	Address        *string  `json:"address"`
	City           *string  `json:"city"`
	State          *string  `json:"state"`
	ZipCode        *string  `json:"zip_code"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Phone          *string  `json:"phone"`
	Email          *string  `json:"email"`
	OperatingHours *string  `json:"operating_hours"`
}

type LocationResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	State          string    `json:"state,omitempty"`
	ZipCode        string    `json:"zip_code,omitempty"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	OperatingHours string    `json:"operating_hours,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// listLocationsHandler godoc
// @Summary Listar centros de vacunación
// @Tags locations
// @Produce json
// @Success 200 {array} LocationResponse
// @Router /locations [get]
func listLocationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		out := make([]LocationResponse, 0, len(items))
		for _, l := range items {
			out = append(out, ToResponse(l))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createLocationHandler godoc
// @Summary Crear centro de vacunación (admin)
// @Tags locations
// @Accept json
// @Produce json
// @Param payload body createLocationRequest true "Centro"
// @Success 201 {object} LocationResponse
// @Failure 400 {string} string "invalid input"
// @Failure 403 {string} string "forbidden"
// @Router /locations [post]
func createLocationHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		var req createLocationRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		l, err := svc.Create(r.Context(), CreateInput(req))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, ToResponse(l))
	}
}

func updateLocationHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		var req updateLocationRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		l, err := svc.Update(r.Context(), chi.URLParam(r, "locationID"), UpdateInput(req))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(l))
	}
}

func ToResponse(l Location) LocationResponse {
	return LocationResponse{
		ID:             l.ID,
		Name:           l.Name,
		Address:        l.Address,
		City:           l.City,
		State:          l.State,
		ZipCode:        l.ZipCode,
		Latitude:       l.Latitude,
		Longitude:      l.Longitude,
		Phone:          l.Phone,
		Email:          l.Email,
		OperatingHours: l.OperatingHours,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}
