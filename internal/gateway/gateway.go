// Package gateway wraps calls to the hosted language model behind a small
// request/response interface. Each operation is a single blocking call with
// no retries and no streaming; failures collapse to "no result" or a fixed
// fallback string, never to a crash.
package gateway

import (
	"context"
	"errors"

	"github.com/bebestgroup/portal/internal/domain"
)

// ChecklistDraft is the structured model output for a checklist request,
// before items get identifiers and completion flags.
type ChecklistDraft struct {
	Title string               `json:"title"`
	Items []ChecklistDraftItem `json:"items"`
}

// ChecklistDraftItem is one step of a drafted checklist.
type ChecklistDraftItem struct {
	Task        string `json:"task"`
	Description string `json:"description"`
}

// Generator is the boundary to the hosted model.
type Generator interface {
	// GenerateChecklist produces a structured checklist for a business
	// process. Any failure (network, empty response, malformed JSON) is
	// returned as an error; callers treat it as "nothing generated".
	GenerateChecklist(ctx context.Context, service domain.ServiceType, userRequest string) (*ChecklistDraft, error)

	// GenerateServiceDescription produces a multi-paragraph plain-text
	// description for a catalog feature. On failure it returns a fixed
	// fallback string, never an error.
	GenerateServiceDescription(ctx context.Context, service domain.ServiceType, feature string) string

	// ChatReply answers a single widget message. Prior turns are not
	// resent; contextLabel is the only context the model receives. On
	// failure it returns a fixed apology string.
	ChatReply(ctx context.Context, message, contextLabel string) string
}

// Fixed fallback strings surfaced when the model cannot be reached or
// returns nothing usable.
const (
	DescriptionFallbackEmpty = "Information for this service is currently being updated. Please contact us for details."
	DescriptionFallbackError = "We are currently unable to load the details for this service. Please contact our support team at 8111786."
	ChatFallbackEmpty        = "I apologize, I could not generate a response at this time."
	ChatFallbackError        = "I am currently experiencing high traffic. Please try again later."
)

// ErrDisabled is returned by the disabled gateway for structured requests.
var ErrDisabled = errors.New("generative content gateway is not configured")

// Disabled is the Generator used when no API key is configured. Every
// operation degrades to its fallback state.
type Disabled struct{}

// GenerateChecklist always fails; the caller shows the empty state.
func (Disabled) GenerateChecklist(ctx context.Context, service domain.ServiceType, userRequest string) (*ChecklistDraft, error) {
	return nil, ErrDisabled
}

// GenerateServiceDescription returns the static fallback.
func (Disabled) GenerateServiceDescription(ctx context.Context, service domain.ServiceType, feature string) string {
	return DescriptionFallbackError
}

// ChatReply returns the static apology.
func (Disabled) ChatReply(ctx context.Context, message, contextLabel string) string {
	return ChatFallbackError
}
