package vaccinations

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ccis-arch/avacc/internal/access"
	"github.com/ccis-arch/avacc/internal/domain/pets"
	"github.com/ccis-arch/avacc/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, gate *access.Gate) {
	r.Post("/pets/{petID}/vaccinations", createVaccinationHandler(svc, gate))
	r.Get("/pets/{petID}/vaccinations", listPetVaccinationsHandler(svc, gate))
	r.Get("/pets/{petID}/history", petHistoryHandler(svc, gate))

	r.Get("/vaccinations/pending", listPendingHandler(svc, gate))
	r.Patch("/vaccinations/{vaccinationID}", updateVaccinationHandler(svc, gate))
}

type createVaccinationRequest struct {
	VaccineTypeID   string `json:"vaccine_type_id"`
	LocationID      string `json:"location_id"`
	VaccinationDate string `json:"vaccination_date"` // YYYY-MM-DD
	ExpiryDate      string `json:"expiry_date"`      // YYYY-MM-DD opcional
	BatchNumber     string `json:"batch_number"`
	Veterinarian    string `json:"veterinarian"`
	Notes           string `json:"notes"`
	Status          string `json:"status"` // completed por defecto
}

type updateVaccinationRequest struct {
	Status       *string `json:"status"`
	ExpiryDate   *string `json:"expiry_date"`
	LocationID   *string `json:"location_id"`
	BatchNumber  *string `json:"batch_number"`
	Veterinarian *string `json:"veterinarian"`
	Notes        *string `json:"notes"`
}

type VaccinationResponse struct {
	ID              string    `json:"id"`
	PetID           string    `json:"pet_id"`
	VaccineTypeID   string    `json:"vaccine_type_id"`
	LocationID      string    `json:"location_id,omitempty"`
	VaccinationDate string    `json:"vaccination_date"`
	ExpiryDate      *string   `json:"expiry_date,omitempty"`
	BatchNumber     string    `json:"batch_number,omitempty"`
	Veterinarian    string    `json:"veterinarian,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type HistoryEntryResponse struct {
	VaccinationResponse
	VaccineTypeName string `json:"vaccine_type_name"`
	LocationName    string `json:"location_name,omitempty"`
}

type HistoryResponse struct {
	pets.DetailsResponse
	Vaccinations []HistoryEntryResponse `json:"vaccinations"`
}

// createVaccinationHandler godoc
// @Summary Registrar vacunación
// @Description Solo el dueño de la mascota o un admin. status por defecto completed.
// @Tags vaccinations
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body createVaccinationRequest true "Datos de la vacunación; fechas YYYY-MM-DD"
// @Success 201 {object} VaccinationResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/vaccinations [post]
func createVaccinationHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, err := gate.Pet(r.Context(), petID); err != nil {
			httpx.WriteError(w, err)
			return
		}

		var req createVaccinationRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		date, err := httpx.ParseDate("vaccination_date", req.VaccinationDate)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		expiry, err := httpx.ParseDate("expiry_date", req.ExpiryDate)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		v, err := svc.Create(r.Context(), petID, CreateInput{
			VaccineTypeID:   req.VaccineTypeID,
			LocationID:      req.LocationID,
			VaccinationDate: date,
			ExpiryDate:      expiry,
			BatchNumber:     req.BatchNumber,
			Veterinarian:    req.Veterinarian,
			Notes:           req.Notes,
			Status:          req.Status,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, ToResponse(v))
	}
}

func listPetVaccinationsHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, err := gate.Pet(r.Context(), petID); err != nil {
			httpx.WriteError(w, err)
			return
		}
		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponses(items))
	}
}

// petHistoryHandler godoc
// @Summary Historial de vacunación
// @Description Mascota, raza, dueño y vacunaciones con nombre de vacuna y centro, más reciente primero.
// @Tags vaccinations
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} HistoryResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/history [get]
func petHistoryHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, err := gate.Pet(r.Context(), petID); err != nil {
			httpx.WriteError(w, err)
			return
		}
		h, err := svc.History(r.Context(), petID)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		out := HistoryResponse{
			DetailsResponse: pets.ToDetailsResponse(h.Pet),
			Vaccinations:    make([]HistoryEntryResponse, 0, len(h.Vaccinations)),
		}
		for _, e := range h.Vaccinations {
			out.Vaccinations = append(out.Vaccinations, HistoryEntryResponse{
				VaccinationResponse: ToResponse(e.Vaccination),
				VaccineTypeName:     e.VaccineTypeName,
				LocationName:        e.LocationName,
			})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// listPendingHandler godoc
// @Summary Vacunaciones pendientes (admin)
// @Tags vaccinations
// @Produce json
// @Success 200 {array} VaccinationResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /vaccinations/pending [get]
func listPendingHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		items, err := svc.Pending(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponses(items))
	}
}

// updateVaccinationHandler godoc
// @Summary Actualizar vacunación
// @Description 404 si la vacunación no existe; después aplica las reglas de la mascota.
// @Tags vaccinations
// @Accept json
// @Produce json
// @Param vaccinationID path string true "ID de la vacunación"
// @Param payload body updateVaccinationRequest true "Campos a modificar"
// @Success 200 {object} VaccinationResponse
// @Failure 400 {string} string "invalid input"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "vaccination not found"
// @Failure 409 {string} string "invalid status transition"
// @Router /vaccinations/{vaccinationID} [patch]
func updateVaccinationHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Actor(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		current, err := svc.Get(r.Context(), chi.URLParam(r, "vaccinationID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		if _, err := gate.Pet(r.Context(), current.PetID); err != nil {
			httpx.WriteError(w, err)
			return
		}

		var req updateVaccinationRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		in := UpdateInput{
			Status:       req.Status,
			LocationID:   req.LocationID,
			BatchNumber:  req.BatchNumber,
			Veterinarian: req.Veterinarian,
			Notes:        req.Notes,
		}
		if req.ExpiryDate != nil {
			expiry, err := httpx.ParseDate("expiry_date", *req.ExpiryDate)
			if err != nil {
				httpx.WriteError(w, err)
				return
			}
			in.ExpiryDate = expiry
		}

		updated, err := svc.Update(r.Context(), current.ID, in)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(updated))
	}
}

func ToResponse(v Vaccination) VaccinationResponse {
	var expiry *string
	if v.ExpiryDate != nil {
		s := v.ExpiryDate.Format(httpx.DateLayout)
		expiry = &s
	}
	return VaccinationResponse{
		ID:              v.ID,
		PetID:           v.PetID,
		VaccineTypeID:   v.VaccineTypeID,
		LocationID:      v.LocationID,
		VaccinationDate: v.VaccinationDate.Format(httpx.DateLayout),
		ExpiryDate:      expiry,
		BatchNumber:     v.BatchNumber,
		Veterinarian:    v.Veterinarian,
		Notes:           v.Notes,
		Status:          v.Status,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func toResponses(items []Vaccination) []VaccinationResponse {
	out := make([]VaccinationResponse, 0, len(items))
	for _, v := range items {
		out = append(out, ToResponse(v))
	}
	return out
}
