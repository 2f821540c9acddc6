package breeds

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ccis-arch/avacc/internal/access"
	"github.com/ccis-arch/avacc/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, gate *access.Gate) {
	r.Route("/breeds", func(br chi.Router) {
		br.Get("/", listBreedsHandler(svc))
		br.Post("/", createBreedHandler(svc, gate))
	})
}

type createBreedRequest struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Description string `json:"description"`
}

type BreedResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Species     Species   `json:"species"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// listBreedsHandler godoc
// @Summary Listar razas
// @Description Público. Ordenado por nombre.
// @Tags breeds
// @Produce json
// @Success 200 {array} BreedResponse
// @Failure 503 {string} string "service unavailable"
// @Router /breeds [get]
func listBreedsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		out := make([]BreedResponse, 0, len(items))
		for _, b := range items {
			out = append(out, ToResponse(b))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createBreedHandler godoc
// @Summary Crear raza (admin)
// @Tags breeds
// @Accept json
// @Produce json
// @Param payload body createBreedRequest true "species: dog, cat, bird, rabbit, other"
// @Success 201 {object} BreedResponse
// @Failure 400 {string} string "invalid input"
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "breed already exists"
// @Router /breeds [post]
func createBreedHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		var req createBreedRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		b, err := svc.Create(r.Context(), CreateInput(req))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, ToResponse(b))
	}
}

func ToResponse(b Breed) BreedResponse {
	return BreedResponse{
		ID:          b.ID,
		Name:        b.Name,
		Species:     b.Species,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
	}
}
