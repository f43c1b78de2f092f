package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/LucasDG1/vraag-en-aanbod/logging"
	"github.com/LucasDG1/vraag-en-aanbod/services"
)

type CatalogHandler struct {
	Service *services.CatalogService
}

func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: service}
}

func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, "categories", h.Service.Categories)
}

func (h *CatalogHandler) Skills(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, "skills", h.Service.Skills)
}

func (h *CatalogHandler) writeList(w http.ResponseWriter, r *http.Request, name string, fetch func(context.Context) ([]string, error)) {
	values, err := fetch(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: CATALOG_FETCH_FAILED, Description: Failed to fetch %s: %v", name, err)
		http.Error(w, "Failed to fetch "+name, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(values)
}

// HealthHandler answers GET /health. The Pinger is the Mongo client's
// ping when the service runs against Mongo, nil for the memory store.
type HealthHandler struct {
	Pinger func(ctx context.Context) error
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if h.Pinger != nil {
		if err := h.Pinger(r.Context()); err != nil {
			logging.Logger.Warnf("Event ID: HEALTH_DEGRADED, Description: Store ping failed: %v", err)
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
