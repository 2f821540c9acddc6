package owners

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ccis-arch/avacc/internal/access"
	"github.com/ccis-arch/avacc/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, gate *access.Gate) {
	r.Route("/owners", func(or chi.Router) {
		or.Get("/", listOwnersHandler(svc, gate))
		or.Post("/me", createProfileHandler(svc, gate))
		or.Get("/me", getProfileHandler(svc, gate))
		or.Patch("/me", updateProfileHandler(svc, gate))
	})
}

type profileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	ZipCode   *string `json:"zip_code"`
}

// OwnerResponse también lo usan pets y reports.
type OwnerResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	ZipCode   string    `json:"zip_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createProfileHandler godoc
// @Summary Crear perfil de dueño
// @Description Crea el perfil PetOwner del actor. Si ya existe responde 409.
// @Tags owners
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body profileRequest true "Datos del perfil"
// @Success 201 {object} OwnerResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "pet owner profile already exists"
// @Router /owners/me [post]
func createProfileHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := gate.Actor(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		var req profileRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}

		o, err := svc.CreateProfile(r.Context(), a, ProfileInput(req))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, ToResponse(o))
	}
}

func getProfileHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := gate.Actor(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		o, err := svc.Mine(r.Context(), a)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(o))
	}
}

func updateProfileHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := gate.Actor(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		var req updateProfileRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}

		o, err := svc.UpdateMine(r.Context(), a, UpdateInput(req))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(o))
	}
}

// listOwnersHandler godoc
// @Summary Listar perfiles de dueños (admin)
// @Tags owners
// @Produce json
// @Success 200 {array} OwnerResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /owners [get]
func listOwnersHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		items, err := svc.ListAll(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		out := make([]OwnerResponse, 0, len(items))
		for _, o := range items {
			out = append(out, ToResponse(o))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func ToResponse(o PetOwner) OwnerResponse {
	return OwnerResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		FirstName: o.FirstName,
		LastName:  o.LastName,
		Email:     o.Email,
		Phone:     o.Phone,
		Address:   o.Address,
		City:      o.City,
		State:     o.State,
		ZipCode:   o.ZipCode,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
