package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bebestgroup/portal/internal/domain"
	"github.com/bebestgroup/portal/internal/portal"
)

type generateRequest struct {
	Service domain.ServiceType `json:"service"`
	Query   string             `json:"query"`
}

// RegisterChecklistRoutes registers the checklist tool endpoints. All of
// them require a signed-in user.
func (h *Handler) RegisterChecklistRoutes(r chi.Router) {
	r.Route("/api/checklist", func(r chi.Router) {
		r.Post("/generate", h.GenerateChecklist)
		r.Get("/", h.GetChecklist)
		r.Post("/items/{itemID}/toggle", h.ToggleChecklistItem)
		r.Post("/reset", h.ResetChecklist)
		r.Post("/save", h.SaveChecklist)
	})
	r.Get("/api/checklists", h.ListSavedChecklists)
}

// GenerateChecklist starts a generation. A new request supersedes an
// in-flight one; the superseded result is discarded.
func (h *Handler) GenerateChecklist(w http.ResponseWriter, r *http.Request) {
	c := h.controller(r)
	if c.User() == nil {
		Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	var req generateRequest
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := c.GenerateChecklist(req.Service, req.Query); err != nil {
		if errors.Is(err, portal.ErrEmptyQuery) {
			Error(w, http.StatusBadRequest, err.Error())
			return
		}
		Error(w, http.StatusInternalServerError, "failed to start generation")
		return
	}

	JSON(w, http.StatusAccepted, c.ChecklistSnapshot())
}

// GetChecklist returns the checklist tool state, including generation
// progress. Clients poll this until generating is false.
func (h *Handler) GetChecklist(w http.ResponseWriter, r *http.Request) {
	c := h.controller(r)
	if c.User() == nil {
		Error(w, http.StatusUnauthorized, "not signed in")
		return
	}
	JSON(w, http.StatusOK, c.ChecklistSnapshot())
}

// ToggleChecklistItem flips one item's completion flag.
func (h *Handler) ToggleChecklistItem(w http.ResponseWriter, r *http.Request) {
	c := h.controller(r)
	if c.User() == nil {
		Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	if !c.ToggleChecklistItem(chi.URLParam(r, "itemID")) {
		Error(w, http.StatusNotFound, "checklist item not found")
		return
	}
	JSON(w, http.StatusOK, c.ChecklistSnapshot())
}

// ResetChecklist clears all completion flags.
func (h *Handler) ResetChecklist(w http.ResponseWriter, r *http.Request) {
	c := h.controller(r)
	if c.User() == nil {
		Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	c.ResetChecklist()
	JSON(w, http.StatusOK, c.ChecklistSnapshot())
}

// SaveChecklist persists the current checklist to the user's account.
func (h *Handler) SaveChecklist(w http.ResponseWriter, r *http.Request) {
	c := h.controller(r)
	user := c.User()
	if user == nil {
		Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	snap := c.ChecklistSnapshot()
	if snap.Checklist == nil {
		Error(w, http.StatusBadRequest, "no checklist to save")
		return
	}

	saved := &domain.SavedChecklist{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Checklist: *snap.Checklist,
		SavedAt:   time.Now(),
	}
	if err := h.repo.SaveChecklist(r.Context(), saved); err != nil {
		Error(w, http.StatusInternalServerError, "failed to save checklist")
		return
	}
	JSON(w, http.StatusCreated, saved)
}

// ListSavedChecklists returns the user's saved checklists, newest first.
func (h *Handler) ListSavedChecklists(w http.ResponseWriter, r *http.Request) {
	c := h.controller(r)
	user := c.User()
	if user == nil {
		Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	saved, err := h.repo.ListChecklists(r.Context(), user.ID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to list checklists")
		return
	}
	if saved == nil {
		saved = []*domain.SavedChecklist{}
	}
	JSON(w, http.StatusOK, map[string]interface{}{"checklists": saved})
}
