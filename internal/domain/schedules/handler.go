package schedules

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ccis-arch/avacc/internal/access"
	"github.com/ccis-arch/avacc/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, gate *access.Gate) {
	r.Post("/schedules", createScheduleHandler(svc, gate))
	r.Get("/schedules", listSchedulesHandler(svc, gate))
	r.Patch("/schedules/{scheduleID}", updateScheduleHandler(svc, gate))

	r.Get("/locations/{locationID}/schedules", locationSchedulesHandler(svc))
	r.Get("/pets/{petID}/schedules/upcoming", upcomingForPetHandler(svc, gate))
}

type createScheduleRequest struct {
	PetID         string `json:"pet_id"`
	VaccineTypeID string `json:"vaccine_type_id"`
	LocationID    string `json:"location_id"`
	ScheduledDate string `json:"scheduled_date"` // YYYY-MM-DD
	ScheduledTime string `json:"scheduled_time"` // HH:MM opcional
	Notes         string `json:"notes"`

	// Se ignora: un turno nuevo siempre queda scheduled.
	Status string `json:"status,omitempty"`
}

type updateScheduleRequest struct {
	Status        *string `json:"status"`
	ScheduledDate *string `json:"scheduled_date"`
	ScheduledTime *string `json:"scheduled_time"`
	Notes         *string `json:"notes"`
}

type ScheduleResponse struct {
	ID            string    `json:"id"`
	LocationID    string    `json:"location_id"`
	PetID         string    `json:"pet_id"`
	VaccineTypeID string    `json:"vaccine_type_id"`
	ScheduledDate string    `json:"scheduled_date"`
	ScheduledTime string    `json:"scheduled_time,omitempty"`
	Status        Status    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type UpcomingResponse struct {
	ScheduleResponse
	VaccineTypeName string `json:"vaccine_type_name"`
	LocationName    string `json:"location_name"`
}

// createScheduleHandler godoc
// @Summary Crear turno (admin)
// @Description El status del request se ignora; el turno se crea scheduled.
// @Tags schedules
// @Accept json
// @Produce json
// @Param payload body createScheduleRequest true "Datos del turno"
// @Success 201 {object} ScheduleResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /schedules [post]
func createScheduleHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}

		var req createScheduleRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		date, err := httpx.ParseDate("scheduled_date", req.ScheduledDate)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		sc, err := svc.Create(r.Context(), CreateInput{
			PetID:         req.PetID,
			VaccineTypeID: req.VaccineTypeID,
			LocationID:    req.LocationID,
			ScheduledDate: date,
			ScheduledTime: req.ScheduledTime,
			Notes:         req.Notes,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, ToResponse(sc))
	}
}

// listSchedulesHandler godoc
// @Summary Listar turnos (admin)
// @Tags schedules
// @Produce json
// @Param status query string false "scheduled (default), completed, cancelled, no_show"
// @Success 200 {array} ScheduleResponse
// @Router /schedules [get]
func listSchedulesHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		items, err := svc.List(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponses(items))
	}
}

func updateScheduleHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}

		var req updateScheduleRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		in := UpdateInput{
			Status:        req.Status,
			ScheduledTime: req.ScheduledTime,
			Notes:         req.Notes,
		}
		if req.ScheduledDate != nil {
			d, err := httpx.ParseDate("scheduled_date", *req.ScheduledDate)
			if err != nil {
				httpx.WriteError(w, err)
				return
			}
			in.ScheduledDate = d
		}

		sc, err := svc.Update(r.Context(), chi.URLParam(r, "scheduleID"), in)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(sc))
	}
}

// locationSchedulesHandler godoc
// @Summary Turnos de un centro
// @Description Público. Turnos de los próximos 30 días, por fecha ascendente.
// @Tags schedules
// @Produce json
// @Param locationID path string true "ID del centro"
// @Success 200 {array} ScheduleResponse
// @Router /locations/{locationID}/schedules [get]
func locationSchedulesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ByLocation(r.Context(), chi.URLParam(r, "locationID"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponses(items))
	}
}

func upcomingForPetHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, err := gate.Pet(r.Context(), petID); err != nil {
			httpx.WriteError(w, err)
			return
		}
		items, err := svc.UpcomingForPet(r.Context(), petID)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		out := make([]UpcomingResponse, 0, len(items))
		for _, u := range items {
			out = append(out, UpcomingResponse{
				ScheduleResponse: ToResponse(u.Schedule),
				VaccineTypeName:  u.VaccineTypeName,
				LocationName:     u.LocationName,
			})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func ToResponse(s Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:            s.ID,
		LocationID:    s.LocationID,
		PetID:         s.PetID,
		VaccineTypeID: s.VaccineTypeID,
		ScheduledDate: s.ScheduledDate.Format(httpx.DateLayout),
		ScheduledTime: s.ScheduledTime,
		Status:        s.Status,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toResponses(items []Schedule) []ScheduleResponse {
	out := make([]ScheduleResponse, 0, len(items))
	for _, s := range items {
		out = append(out, ToResponse(s))
	}
	return out
}
