package pets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ccis-arch/avacc/internal/access"
	"github.com/ccis-arch/avacc/internal/domain/breeds"
	"github.com/ccis-arch/avacc/internal/domain/owners"
	"github.com/ccis-arch/avacc/internal/platform/apperr"
	"github.com/ccis-arch/avacc/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, gate *access.Gate) {
	r.Post("/pets", createPetHandler(svc, gate))
	r.Get("/pets", listMyPetsHandler(svc, gate))
	r.Get("/pets/search", searchPetsHandler(svc))
	r.Get("/pets/{petID}", getPetHandler(svc, gate))
	r.Patch("/pets/{petID}", updatePetHandler(svc, gate))

	r.Get("/admin/pets", listAllPetsHandler(svc, gate))
}

type createPetRequest struct {
	Name        string   `json:"name"`
	BreedID     string   `json:"breed_id"`
	DateOfBirth string   `json:"date_of_birth"` // YYYY-MM-DD opcional
	MicrochipID string   `json:"microchip_id"`
	Weight      *float64 `json:"weight"`
	Notes       string   `json:"notes"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string          `json:"name"`
	BreedID     *string          `json:"breed_id"`
	DateOfBirth *json.RawMessage `json:"date_of_birth"` // YYYY-MM-DD o null para limpiar
	MicrochipID *string          `json:"microchip_id"`
	Weight      *float64         `json:"weight"`
	Notes       *string          `json:"notes"`
}

type PetResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	BreedID     string    `json:"breed_id"`
	Name        string    `json:"name"`
	DateOfBirth *string   `json:"date_of_birth,omitempty"`
	MicrochipID string    `json:"microchip_id,omitempty"`
	Weight      *float64  `json:"weight,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type DetailsResponse struct {
	Pet   PetResponse          `json:"pet"`
	Breed breeds.BreedResponse `json:"breed"`
	Owner owners.OwnerResponse `json:"owner"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Registra una mascota a nombre del actor. Si el actor no tiene perfil de dueño se crea a partir de su nombre.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createPetRequest true "Datos de la mascota; date_of_birth YYYY-MM-DD"
// @Success 201 {object} httpx.Success
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 503 {string} string "service unavailable"
// @Router /pets [post]
func createPetHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := gate.Actor(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		var req createPetRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		dob, err := httpx.ParseDate("date_of_birth", req.DateOfBirth)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		p, err := svc.Create(r.Context(), a, CreateInput{
			Name:        req.Name,
			BreedID:     req.BreedID,
			DateOfBirth: dob,
			MicrochipID: req.MicrochipID,
			Weight:      req.Weight,
			Notes:       req.Notes,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, httpx.Success{Success: true, ID: p.ID})
	}
}

func listMyPetsHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := gate.Actor(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		items, err := svc.ListMine(r.Context(), a)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		out := make([]PetResponse, 0, len(items))
		for _, p := range items {
			out = append(out, ToResponse(p))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Ver mascota
// @Description Solo el dueño o un admin. 404 si la mascota no existe, para cualquier rol.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} PetResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, err := gate.Pet(r.Context(), petID); err != nil {
			httpx.WriteError(w, err)
			return
		}
		p, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description PATCH parcial. date_of_birth: null limpia la fecha.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} PetResponse
// @Failure 400 {string} string "invalid input"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if _, err := gate.Pet(r.Context(), petID); err != nil {
			httpx.WriteError(w, err)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			httpx.WriteError(w, fmt.Errorf("%w: invalid body", apperr.ErrInvalidInput))
			return
		}
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			httpx.WriteError(w, fmt.Errorf("%w: invalid json", apperr.ErrInvalidInput))
			return
		}

		// json.RawMessage con valor null se decodifica como nil, así que la presencia
		// del campo se mira en el body crudo.
		dob, err := parsePatchDate(body)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		updated, err := svc.Update(r.Context(), petID, UpdateInput{
			Name:        req.Name,
			BreedID:     req.BreedID,
			DateOfBirth: dob,
			MicrochipID: req.MicrochipID,
			Weight:      req.Weight,
			Notes:       req.Notes,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(updated))
	}
}

func parsePatchDate(body []byte) (PatchDate, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return PatchDate{}, fmt.Errorf("%w: invalid json", apperr.ErrInvalidInput)
	}
	v, ok := raw["date_of_birth"]
	if !ok {
		return PatchDate{}, nil
	}
	if string(bytes.TrimSpace(v)) == "null" {
		return PatchDate{Present: true}, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return PatchDate{}, fmt.Errorf("%w: date_of_birth must be YYYY-MM-DD or null", apperr.ErrInvalidInput)
	}
	t, err := httpx.ParseDate("date_of_birth", s)
	if err != nil {
		return PatchDate{}, err
	}
	return PatchDate{Present: true, Value: t}, nil
}

// searchPetsHandler godoc
// @Summary Buscar mascotas
// @Description Público. q busca en nombre, microchip y nombre del dueño; si no, filtra por breed_id o species.
// @Tags pets
// @Produce json
// @Param q query string false "Texto libre"
// @Param breed_id query string false "ID de raza"
// @Param species query string false "dog, cat, bird, rabbit, other"
// @Success 200 {array} DetailsResponse
// @Failure 400 {string} string "invalid input"
// @Router /pets/search [get]
func searchPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.Search(r.Context(), SearchQuery{
			Text:    q.Get("q"),
			BreedID: q.Get("breed_id"),
			Species: q.Get("species"),
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToDetailsResponses(items))
	}
}

// listAllPetsHandler godoc
// @Summary Listar todas las mascotas (admin)
// @Tags pets
// @Produce json
// @Success 200 {array} DetailsResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /admin/pets [get]
func listAllPetsHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		items, err := svc.ListAllDetails(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToDetailsResponses(items))
	}
}

func ToResponse(p Pet) PetResponse {
	var dob *string
	if p.DateOfBirth != nil {
		s := p.DateOfBirth.Format(httpx.DateLayout)
		dob = &s
	}
	return PetResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		BreedID:     p.BreedID,
		Name:        p.Name,
		DateOfBirth: dob,
		MicrochipID: p.MicrochipID,
		Weight:      p.Weight,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToDetailsResponse(d Details) DetailsResponse {
	return DetailsResponse{
		Pet:   ToResponse(d.Pet),
		Breed: breeds.ToResponse(d.Breed),
		Owner: owners.ToResponse(d.Owner),
	}
}

func ToDetailsResponses(items []Details) []DetailsResponse {
	out := make([]DetailsResponse, 0, len(items))
	for _, d := range items {
		out = append(out, ToDetailsResponse(d))
	}
	return out
}
