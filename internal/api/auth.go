package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bebestgroup/portal/internal/auth"
	"github.com/bebestgroup/portal/internal/identity"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterAuthRoutes registers the authentication endpoints.
func (h *Handler) RegisterAuthRoutes(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/signup", h.Signup)
		r.Post("/logout", h.LogoutHandler)
		r.Get("/me", h.Me)
	})
}

// Login opens a session for any non-empty credential pair.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	c := h.controller(r)
	c.CompleteLogin(user, token)
	identity.SetSessionCookie(w, token, h.cfg.IsDevelopment())

	JSON(w, http.StatusOK, map[string]interface{}{
		"user": user,
		"page": c.Page(),
	})
}

// Signup creates an account for any non-empty field triple.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.auth.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	c := h.controller(r)
	c.CompleteLogin(user, token)
	identity.SetSessionCookie(w, token, h.cfg.IsDevelopment())

	JSON(w, http.StatusOK, map[string]interface{}{
		"user": user,
		"page": c.Page(),
	})
}

// LogoutHandler revokes the session and resets the visitor state.
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	c := h.controller(r)
	token := c.Logout()

	if err := h.auth.Logout(r.Context(), token); err != nil {
		// The in-memory state is already cleared; the stale row will be
		// swept by the TTL worker.
		Error(w, http.StatusInternalServerError, "failed to revoke session")
		return
	}
	identity.ClearSessionCookie(w, h.cfg.IsDevelopment())

	JSON(w, http.StatusOK, map[string]interface{}{
		"page": c.Page(),
	})
}

// Me returns the current user, or 401 when anonymous.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.controller(r).User()
	if user == nil {
		Error(w, http.StatusUnauthorized, "not signed in")
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *Handler) writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrMissingFields):
		Error(w, http.StatusBadRequest, err.Error())
	default:
		Error(w, http.StatusInternalServerError, "authentication failed")
	}
}
