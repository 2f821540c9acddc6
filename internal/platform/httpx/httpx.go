// Package httpx junta los helpers HTTP que antes estaban duplicados en cada handler.
package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ccis-arch/avacc/internal/platform/apperr"
)

const DateLayout = "2006-01-02"

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError responde en texto plano según la taxonomía de apperr.
// 5xx nunca exponen el detalle del store.
func WriteError(w http.ResponseWriter, err error) {
	status := apperr.StatusCode(err)
	switch status {
	case http.StatusUnauthorized:
		http.Error(w, "unauthorized", status)
	case http.StatusServiceUnavailable:
		http.Error(w, "service unavailable", status)
	case http.StatusInternalServerError:
		http.Error(w, "internal error", status)
	default:
		http.Error(w, err.Error(), status)
	}
}

// DecodeJSON decodifica el body; cualquier error es ErrInvalidInput.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid json", apperr.ErrInvalidInput)
	}
	return nil
}

// ParseDate acepta YYYY-MM-DD; vacío devuelve nil.
func ParseDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", apperr.ErrInvalidInput, field)
	}
	return &t, nil
}

// Success es la respuesta mínima de las mutaciones que no devuelven el recurso.
type Success struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
}
