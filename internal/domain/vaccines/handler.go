package vaccines

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ccis-arch/avacc/internal/access"
	"github.com/ccis-arch/avacc/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, gate *access.Gate) {
	r.Route("/vaccine-types", func(vr chi.Router) {
		vr.Get("/", listVaccineTypesHandler(svc))
		vr.Post("/", createVaccineTypeHandler(svc, gate))
	})
}

type createVaccineTypeRequest struct {
	Name                    string `json:"name"`
	Category                string `json:"category"`
	Description             string `json:"description"`
	RecommendedAgeMonths    *int   `json:"recommended_age_months"`
	RevaccineIntervalMonths *int   `json:"revaccine_interval_months"`
}

type VaccineTypeResponse struct {
	ID                      string    `json:"id"`
	Name                    string    `json:"name"`
	Category                string    `json:"category"`
	Description             string    `json:"description,omitempty"`
	RecommendedAgeMonths    *int      `json:"recommended_age_months,omitempty"`
	RevaccineIntervalMonths *int      `json:"revaccine_interval_months,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
}

// listVaccineTypesHandler godoc
// @Summary Listar tipos de vacuna
// @Tags vaccine-types
// @Produce json
// @Success 200 {array} VaccineTypeResponse
// @Router /vaccine-types [get]
func listVaccineTypesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		out := make([]VaccineTypeResponse, 0, len(items))
		for _, v := range items {
			out = append(out, ToResponse(v))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createVaccineTypeHandler godoc
// @Summary Crear tipo de vacuna (admin)
// @Tags vaccine-types
// @Accept json
// @Produce json
// @Param payload body createVaccineTypeRequest true "Tipo de vacuna"
// @Success 201 {object} VaccineTypeResponse
// @Failure 400 {string} string "invalid input"
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "vaccine type already exists"
// @Router /vaccine-types [post]
func createVaccineTypeHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		var req createVaccineTypeRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		v, err := svc.Create(r.Context(), CreateInput(req))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, ToResponse(v))
	}
}

func ToResponse(v VaccineType) VaccineTypeResponse {
	return VaccineTypeResponse{
		ID:                      v.ID,
		Name:                    v.Name,
		Category:                v.Category,
		Description:             v.Description,
		RecommendedAgeMonths:    v.RecommendedAgeMonths,
		RevaccineIntervalMonths: v.RevaccineIntervalMonths,
		CreatedAt:               v.CreatedAt,
	}
}
