package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bebestgroup/portal/internal/chatlog"
	"github.com/bebestgroup/portal/internal/identity"
)

// defaultChatContext is the static context label sent with every widget
// message; prior turns are never resent to the model.
const defaultChatContext = "General Inquiry"

type chatRequest struct {
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// RegisterChatRoutes registers the "Ask Bebest" widget endpoints.
func (h *Handler) RegisterChatRoutes(r chi.Router) {
	r.Route("/api/chat", func(r chi.Router) {
		r.Post("/", h.Chat)
		r.Get("/", h.ChatTranscript)
		r.Get("/ws", h.ChatSocket)
	})
}

// Chat answers one widget message.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		Error(w, http.StatusBadRequest, "message must not be empty")
		return
	}

	contextLabel := req.Context
	if contextLabel == "" {
		contextLabel = defaultChatContext
	}

	visitorID := identity.VisitorIDFromContext(r.Context())
	c := h.controller(r)
	reply := c.Chat(r.Context(), req.Message, contextLabel)

	h.chatLog.Log(chatlog.Event{VisitorID: visitorID, Channel: "http", IsUser: true, Text: req.Message})
	h.chatLog.Log(chatlog.Event{VisitorID: visitorID, Channel: "http", IsUser: false, Text: reply})

	JSON(w, http.StatusOK, map[string]interface{}{"reply": reply})
}

// ChatTranscript returns the widget transcript for this visitor.
func (h *Handler) ChatTranscript(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"messages": h.controller(r).Transcript(),
	})
}
