package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bebestgroup/portal/internal/catalog"
	"github.com/bebestgroup/portal/internal/content"
	"github.com/bebestgroup/portal/internal/domain"
	"github.com/bebestgroup/portal/internal/portal"
)

type navigateRequest struct {
	Page string `json:"page"`
}

type selectFeatureRequest struct {
	Service domain.ServiceType `json:"service"`
	Feature string             `json:"feature"`
}

type homeView struct {
	Hero        content.Hero         `json:"hero"`
	Services    []domain.ServiceInfo `json:"services"`
	TrustPoints []string             `json:"trust_points"`
	Testimonial content.Testimonial  `json:"testimonial"`
}

type detailView struct {
	Service     domain.ServiceInfo `json:"service"`
	Feature     string             `json:"feature"`
	Description string             `json:"description"`
	WhyChooseUs []string           `json:"why_choose_us"`
}

type dashboardStats struct {
	ActiveServices  int   `json:"active_services"`
	PendingActions  int   `json:"pending_actions"`
	SavedChecklists int64 `json:"saved_checklists"`
}

type dashboardView struct {
	User      *domain.User          `json:"user"`
	ActiveTab portal.Tab            `json:"active_tab"`
	Stats     dashboardStats        `json:"stats"`
	Tool      portal.ChecklistState `json:"tool"`
}

type viewResponse struct {
	Page      portal.Page          `json:"page"`
	Home      *homeView            `json:"home,omitempty"`
	Services  []domain.ServiceInfo `json:"services,omitempty"`
	Detail    *detailView          `json:"detail,omitempty"`
	Dashboard *dashboardView       `json:"dashboard,omitempty"`
	Contact   *content.Office      `json:"contact,omitempty"`
}

// RegisterViewRoutes registers navigation and view-model endpoints.
func (h *Handler) RegisterViewRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/view", h.View)
		r.Post("/navigate", h.Navigate)
		r.Post("/feature/select", h.SelectFeature)
		r.Post("/feature/signup", h.RequestSignUp)
		r.Post("/dashboard/tab", h.SetDashboardTab)
	})
}

// Navigate moves the visitor to the target page. Unknown page identifiers
// are rejected, not silently mapped to home.
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	target, err := portal.ParsePage(req.Page)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	page := h.controller(r).Navigate(target)
	JSON(w, http.StatusOK, map[string]interface{}{"page": page})
}

// SelectFeature records the feature choice and opens the detail page.
func (h *Handler) SelectFeature(w http.ResponseWriter, r *http.Request) {
	var req selectFeatureRequest
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	c := h.controller(r)
	if err := c.SelectFeature(req.Service, req.Feature); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{"page": c.Page()})
}

// RequestSignUp captures the pending checklist intent from the selected
// feature and routes to auth or the portal.
func (h *Handler) RequestSignUp(w http.ResponseWriter, r *http.Request) {
	page := h.controller(r).RequestSignUp()
	JSON(w, http.StatusOK, map[string]interface{}{"page": page})
}

type dashboardTabRequest struct {
	Tab portal.Tab `json:"tab"`
}

// SetDashboardTab switches the dashboard between overview and tools.
func (h *Handler) SetDashboardTab(w http.ResponseWriter, r *http.Request) {
	var req dashboardTabRequest
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	c := h.controller(r)
	if c.User() == nil {
		Error(w, http.StatusUnauthorized, "not signed in")
		return
	}
	c.SetActiveTab(req.Tab)
	JSON(w, http.StatusOK, map[string]interface{}{"active_tab": c.ActiveTab()})
}

// View renders the current page's view model. The switch over the page set
// is exhaustive; there is no fall-through default content.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	c := h.controller(r)

	resp := viewResponse{Page: c.Page()}
	switch resp.Page {
	case portal.PageHome:
		resp.Home = &homeView{
			Hero:        content.HomeHero(),
			Services:    catalog.Services(),
			TrustPoints: content.TrustPoints(),
			Testimonial: content.HomeTestimonial(),
		}

	case portal.PageServices:
		resp.Services = catalog.Services()

	case portal.PageServiceDetail:
		sel := c.SelectedFeature()
		if sel == nil {
			// Detail page with nothing selected renders the services list,
			// matching the catalog fallback of the original navigation.
			resp.Page = portal.PageServices
			resp.Services = catalog.Services()
			break
		}
		svc := catalog.ByID(sel.Service)
		if svc == nil {
			Error(w, http.StatusInternalServerError, "selected service missing from catalog")
			return
		}
		resp.Detail = &detailView{
			Service:     *svc,
			Feature:     sel.Feature,
			Description: h.gen.GenerateServiceDescription(r.Context(), sel.Service, sel.Feature),
			WhyChooseUs: content.WhyChooseUs(),
		}

	case portal.PageAuth:
		// The auth page is a static form; the page identifier is enough.

	case portal.PagePortal:
		user := c.User()
		if user == nil {
			// Portal without a user renders the auth page.
			resp.Page = portal.PageAuth
			break
		}
		saved, err := h.repo.CountChecklists(r.Context(), user.ID)
		if err != nil {
			saved = 0
		}
		resp.Dashboard = &dashboardView{
			User:      user,
			ActiveTab: c.ActiveTab(),
			// Active services and pending actions are placeholder metrics;
			// the saved checklist count is real.
			Stats: dashboardStats{ActiveServices: 3, PendingActions: 2, SavedChecklists: saved},
			Tool:  c.ChecklistSnapshot(),
		}

	case portal.PageContact:
		office := content.ContactOffice()
		resp.Contact = &office
	}

	JSON(w, http.StatusOK, resp)
}
