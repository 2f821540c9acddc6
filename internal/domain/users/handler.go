package users

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ccis-arch/avacc/internal/access"
	"github.com/ccis-arch/avacc/internal/platform/httpx"
	"github.com/ccis-arch/avacc/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service, gate *access.Gate) {
	r.Get("/me", meHandler(gate))

	r.Route("/admin/users", func(ur chi.Router) {
		ur.Get("/", listUsersHandler(svc, gate))
		ur.Put("/{userID}/role", setRoleHandler(svc, gate))
	})
}

type actorResponse struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  auth.Role `json:"role"`
}

type userResponse struct {
	ID           string    `json:"id"`
	Identity     string    `json:"identity"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         auth.Role `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	LastSignedIn time.Time `json:"last_signed_in"`
}

type setRoleRequest struct {
	Role auth.Role `json:"role"`
}

// meHandler godoc
// @Summary Actor actual
// @Tags users
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} actorResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me [get]
func meHandler(gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := gate.Actor(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, actorResponse{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role})
	}
}

// listUsersHandler godoc
// @Summary Listar usuarios (admin)
// @Tags users
// @Produce json
// @Success 200 {array} userResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /admin/users [get]
func listUsersHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
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
		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// setRoleHandler godoc
// @Summary Cambiar rol de un usuario (admin)
// @Tags users
// @Accept json
// @Produce json
// @Param userID path string true "ID del usuario"
// @Param payload body setRoleRequest true "user | admin"
// @Success 200 {object} userResponse
// @Failure 400 {string} string "invalid input"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /admin/users/{userID}/role [put]
func setRoleHandler(svc *Service, gate *access.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		var req setRoleRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		u, err := svc.SetRole(r.Context(), chi.URLParam(r, "userID"), req.Role)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:           u.ID,
		Identity:     u.Identity,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		LastSignedIn: u.LastSignedIn,
	}
}
