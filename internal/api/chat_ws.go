package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coder/websocket"

	"github.com/bebestgroup/portal/internal/chatlog"
	"github.com/bebestgroup/portal/internal/identity"
)

// wsChatMessage is the wire format of the chat socket, both directions.
type wsChatMessage struct {
	Text    string `json:"text"`
	Context string `json:"context,omitempty"`
	IsUser  bool   `json:"is_user"`
}

// ChatSocket serves the "Ask Bebest" widget over a WebSocket. Each inbound
// message gets exactly one reply; the model still sees only the latest
// message plus the context label, never the full transcript.
func (h *Handler) ChatSocket(w http.ResponseWriter, r *http.Request) {
	visitorID := identity.VisitorIDFromContext(r.Context())
	slog.Info("Chat socket connection request", "visitor_id", visitorID, "ip", r.RemoteAddr)

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept chat socket", "error", err, "visitor_id", visitorID)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "chat ended"); closeErr != nil {
			slog.Debug("Failed to close chat socket", "error", closeErr, "visitor_id", visitorID)
		}
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := h.controller(r)

	// Replay the transcript so a reopened widget shows its history.
	for _, msg := range c.Transcript() {
		if err := writeChatMessage(ctx, ws, wsChatMessage{Text: msg.Text, IsUser: msg.IsUser}); err != nil {
			return
		}
	}

	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, context.Canceled) {
				return
			}
			slog.Debug("Chat socket read error", "error", err, "visitor_id", visitorID)
			return
		}

		var msg wsChatMessage
		if err := json.Unmarshal(data, &msg); err != nil || strings.TrimSpace(msg.Text) == "" {
			continue
		}

		contextLabel := msg.Context
		if contextLabel == "" {
			contextLabel = defaultChatContext
		}

		reply := c.Chat(ctx, msg.Text, contextLabel)

		h.chatLog.Log(chatlog.Event{VisitorID: visitorID, Channel: "ws", IsUser: true, Text: msg.Text})
		h.chatLog.Log(chatlog.Event{VisitorID: visitorID, Channel: "ws", IsUser: false, Text: reply})

		if err := writeChatMessage(ctx, ws, wsChatMessage{Text: reply, IsUser: false}); err != nil {
			return
		}
	}
}

func writeChatMessage(ctx context.Context, ws *websocket.Conn, msg wsChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return ws.Write(ctx, websocket.MessageText, data)
}
