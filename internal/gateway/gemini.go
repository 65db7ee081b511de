package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
	"google.golang.org/genai"

	"github.com/bebestgroup/portal/internal/domain"
)

// Gemini implements Generator against the hosted Gemini API.
type Gemini struct {
	client *genai.Client
	model  string

	// Feature descriptions are static per (division, feature), so successful
	// generations are cached for the process lifetime. Concurrent misses for
	// the same key collapse to a single model call.
	descMu    sync.RWMutex
	descCache map[string]string
	descGroup singleflight.Group
}

// NewGemini creates a Gemini-backed gateway.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{
		client:    client,
		model:     model,
		descCache: make(map[string]string),
	}, nil
}

var checklistSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title": {
			Type:        genai.TypeString,
			Description: "A professional title for the checklist process",
		},
		"items": {
			Type:        genai.TypeArray,
			Description: "List of actionable steps",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"task": {
						Type:        genai.TypeString,
						Description: "The action item title",
					},
					"description": {
						Type:        genai.TypeString,
						Description: "A brief explanation of what needs to be done",
					},
				},
				Required: []string{"task", "description"},
			},
		},
	},
	Required: []string{"title", "items"},
}

// GenerateChecklist asks the model for a schema-constrained JSON checklist.
func (g *Gemini) GenerateChecklist(ctx context.Context, service domain.ServiceType, userRequest string) (*ChecklistDraft, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(checklistPrompt(service, userRequest), genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(checklistSystemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    checklistSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("generate checklist: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, errors.New("generate checklist: empty model response")
	}

	return parseChecklist(text)
}

// GenerateServiceDescription asks the model for feature copy, serving cached
// text when available.
func (g *Gemini) GenerateServiceDescription(ctx context.Context, service domain.ServiceType, feature string) string {
	key := string(service) + "\x00" + feature

	g.descMu.RLock()
	cached, ok := g.descCache[key]
	g.descMu.RUnlock()
	if ok {
		return cached
	}

	result, err, _ := g.descGroup.Do(key, func() (interface{}, error) {
		return g.generateDescription(ctx, service, feature)
	})
	if err != nil {
		slog.Warn("service description generation failed",
			"service", service, "feature", feature, "error", err)
		return DescriptionFallbackError
	}

	text := result.(string)
	g.descMu.Lock()
	g.descCache[key] = text
	g.descMu.Unlock()
	return text
}

func (g *Gemini) generateDescription(ctx context.Context, service domain.ServiceType, feature string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(descriptionPrompt(service, feature), genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate description: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return DescriptionFallbackEmpty, nil
	}
	return text, nil
}

// ChatReply answers one widget message. No conversation state is sent; the
// model sees only the message and a static context label.
func (g *Gemini) ChatReply(ctx context.Context, message, contextLabel string) string {
	contents := []*genai.Content{
		genai.NewContentFromText(chatPrompt(message, contextLabel), genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		slog.Warn("chat reply generation failed", "error", err)
		return ChatFallbackError
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return ChatFallbackEmpty
	}
	return text
}

// parseChecklist decodes and validates the model's JSON output. Some models
// wrap JSON in markdown fences despite the schema constraint, so fences are
// stripped before decoding.
func parseChecklist(text string) (*ChecklistDraft, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var draft ChecklistDraft
	if err := json.Unmarshal([]byte(cleaned), &draft); err != nil {
		return nil, fmt.Errorf("parse checklist response: %w", err)
	}
	if draft.Title == "" {
		return nil, errors.New("parse checklist response: missing title")
	}
	if len(draft.Items) == 0 {
		return nil, errors.New("parse checklist response: no items")
	}
	return &draft, nil
}
