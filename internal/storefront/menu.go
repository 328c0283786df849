package storefront

import (
	"net/http"

	"github.com/warungpos/storefront/internal/catalog"
)

// HandleProducts serves the filtered menu. category matches the label
// exactly; q is a case-insensitive name search.
func (h *Handler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	if err := h.ensureCatalog(r); err != nil {
		h.logger.Error("failed to load menu", "error", err)
		h.writeError(w, http.StatusBadGateway, "Gagal memuat menu")
		return
	}

	query := r.URL.Query()
	products := catalog.Visible(h.catalog.Products(), query.Get("category"), query.Get("q"))

	h.writeJSON(w, http.StatusOK, map[string]any{"items": products})
}

func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if err := h.ensureCatalog(r); err != nil {
		h.logger.Error("failed to load categories", "error", err)
		h.writeError(w, http.StatusBadGateway, "Gagal memuat menu")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"categories": h.catalog.Categories()})
}

// ensureCatalog fetches the menu on first use; afterwards the background
// refresh keeps it current and requests never wait on the remote service.
func (h *Handler) ensureCatalog(r *http.Request) error {
	if !h.catalog.RefreshedAt().IsZero() {
		return nil
	}
	return h.catalog.Refresh(r.Context())
}
