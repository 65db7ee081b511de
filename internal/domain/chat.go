package domain

import "time"

// ChatMessage is one turn in the "Ask Bebest" widget transcript.
type ChatMessage struct {
	Text   string    `json:"text"`
	IsUser bool      `json:"is_user"`
	SentAt time.Time `json:"sent_at"`
}
