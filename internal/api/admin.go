package api

import (
	"net/http"

	"github.com/admitpath/compass/internal/catalog"
	"github.com/admitpath/compass/internal/store"
)

type AdminHandler struct {
	store   store.Store
	catalog *catalog.Catalog
}

func NewAdminHandler(s store.Store, c *catalog.Catalog) *AdminHandler {
	return &AdminHandler{store: s, catalog: c}
}

// Stats reports store and index health.
// GET /api/v1/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetCatalogStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"store":   stats,
		"indexed": h.catalog.Len(),
	})
}

// Refresh forces an immediate catalog reload.
// POST /api/v1/catalog/refresh
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Refresh(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "refreshed",
		"indexed": h.catalog.Len(),
	})
}
