// Package api provides HTTP handlers for the portal API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bebestgroup/portal/internal/auth"
	"github.com/bebestgroup/portal/internal/chatlog"
	"github.com/bebestgroup/portal/internal/config"
	"github.com/bebestgroup/portal/internal/gateway"
	"github.com/bebestgroup/portal/internal/identity"
	"github.com/bebestgroup/portal/internal/portal"
	"github.com/bebestgroup/portal/internal/store"
)

// maxRequestBodySize is the maximum allowed request body size (64KB).
const maxRequestBodySize = 64 << 10

// Handler provides common dependencies for the API handlers.
type Handler struct {
	registry *portal.Registry
	auth     *auth.Service
	repo     store.Repository
	gen      gateway.Generator
	chatLog  *chatlog.Logger
	cfg      *config.Config
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(registry *portal.Registry, authSvc *auth.Service, repo store.Repository, gen gateway.Generator, chatLog *chatlog.Logger, cfg *config.Config) *Handler {
	return &Handler{
		registry: registry,
		auth:     authSvc,
		repo:     repo,
		gen:      gen,
		chatLog:  chatLog,
		cfg:      cfg,
	}
}

// controller resolves the visitor's controller and reinstates a persisted
// portal session into it when the controller is fresh (e.g. after a server
// restart the cookie outlives the in-memory state).
func (h *Handler) controller(r *http.Request) *portal.Controller {
	c := h.registry.Get(identity.VisitorIDFromContext(r.Context()))

	if c.User() == nil {
		if token := identity.SessionTokenFromContext(r.Context()); token != "" {
			user, err := h.auth.CurrentUser(r.Context(), token)
			if err == nil && user != nil {
				c.RestoreUser(user, token)
			}
		}
	}
	return c
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// decode reads a JSON request body into v, enforcing the body size cap.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body too large")
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
