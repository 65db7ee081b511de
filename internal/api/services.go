package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/bebestgroup/portal/internal/catalog"
	"github.com/bebestgroup/portal/internal/content"
	"github.com/bebestgroup/portal/internal/domain"
)

// RegisterCatalogRoutes registers the service catalog endpoints.
func (h *Handler) RegisterCatalogRoutes(r chi.Router) {
	r.Route("/api/services", func(r chi.Router) {
		r.Get("/", h.ListServices)
		r.Get("/{id}", h.GetService)
	})
	r.Get("/api/contact", h.Contact)
	r.Get("/api/config", h.GetConfig)
}

// ListServices returns the full catalog.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{"services": catalog.Services()})
}

// GetService returns one division's catalog entry. Division identifiers
// contain spaces, so the path segment arrives percent-encoded.
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}

	id, err := domain.ParseServiceType(raw)
	if err != nil {
		Error(w, http.StatusNotFound, err.Error())
		return
	}

	svc := catalog.ByID(id)
	if svc == nil {
		Error(w, http.StatusNotFound, "service not found")
		return
	}
	JSON(w, http.StatusOK, svc)
}

// Contact returns the office details.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, content.ContactOffice())
}

// GetConfig returns the server configuration for the frontend.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"ai_enabled": h.cfg.AIEnabled(),
	})
}
