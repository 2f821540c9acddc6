package reports

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ccis-arch/avacc/internal/access"
	"github.com/ccis-arch/avacc/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, gate *access.Gate) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/inventory.xlsx", xlsxHandler(gate, "inventory.xlsx", svc.InventoryXLSX))
		r.Get("/pets.xlsx", xlsxHandler(gate, "pets.xlsx", svc.PetsXLSX))
	})
}

// xlsxHandler godoc
// @Summary Reportes xlsx (admin)
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 403 {string} string "forbidden"
// @Router /reports/inventory.xlsx [get]
// @Router /reports/pets.xlsx [get]
func xlsxHandler(gate *access.Gate, filename string, build func(ctx context.Context) ([]byte, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := gate.Admin(r.Context()); err != nil {
			httpx.WriteError(w, err)
			return
		}
		data, err := build(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		w.Header().Set("Content-Type", ContentTypeXLSX)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
