package portal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bebestgroup/portal/internal/catalog"
	"github.com/bebestgroup/portal/internal/content"
	"github.com/bebestgroup/portal/internal/domain"
	"github.com/bebestgroup/portal/internal/gateway"
)

// Tab identifies a dashboard tab.
type Tab string

const (
	TabOverview Tab = "overview"
	TabTools    Tab = "tools"
)

// ErrEmptyQuery is returned when a generation request carries no query text.
var ErrEmptyQuery = errors.New("checklist query must not be empty")

// ErrUnknownFeature is returned when a selected feature is not in the catalog.
var ErrUnknownFeature = errors.New("feature is not part of the service catalog")

// ChecklistState is a snapshot of the checklist tool session.
type ChecklistState struct {
	Service    domain.ServiceType `json:"service"`
	Query      string             `json:"query"`
	Generating bool               `json:"generating"`
	Checklist  *domain.Checklist  `json:"checklist,omitempty"`
}

// Controller owns the navigation and session state of one visitor. All
// operations are safe for concurrent use; external calls run outside the
// lock on contexts derived from the controller's lifetime.
type Controller struct {
	gen gateway.Generator

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	page       Page
	user       *domain.User
	token      string
	pending    *domain.PendingChecklistIntent
	selected   *domain.SelectedFeature
	activeTab  Tab
	tool       ChecklistState
	chat       []domain.ChatMessage
	lastActive time.Time

	// Generation fencing: each generation bumps genSeq; a result is applied
	// only while its sequence is still current (last-writer-wins). genCancel
	// aborts the superseded or abandoned call.
	genSeq    uint64
	genCancel context.CancelFunc
	genDone   chan struct{}
}

// NewController creates a controller in its initial state: home page,
// anonymous, chat seeded with the assistant greeting.
func NewController(gen gateway.Generator) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		gen:    gen,
		ctx:    ctx,
		cancel: cancel,
		page:   PageHome,
		tool: ChecklistState{
			Service: domain.ServiceEmployment,
		},
		activeTab:  TabOverview,
		chat:       []domain.ChatMessage{{Text: content.ChatGreeting, IsUser: false, SentAt: time.Now()}},
		lastActive: time.Now(),
	}
}

// Close cancels the controller's lifetime context, aborting any in-flight
// external call. The controller must not be used afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	c.cancelGenerationLocked()
	c.mu.Unlock()
	c.cancel()
}

// Navigate moves to the target page. The portal page is transparently
// substituted by the auth page while no user is signed in. Leaving the
// service detail page clears the selected feature; leaving the portal
// cancels an in-flight generation, since the view that requested it is gone.
func (c *Controller) Navigate(target Page) Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	if target == PagePortal && c.user == nil {
		target = PageAuth
	}

	if c.page == PageServiceDetail && target != PageServiceDetail {
		c.selected = nil
	}
	if c.page == PagePortal && target != PagePortal {
		c.cancelGenerationLocked()
	}

	c.page = target
	if target == PagePortal {
		c.enterPortalLocked()
	}
	return c.page
}

// SelectFeature records the (service, feature) pair and opens the detail
// page. The feature must exist in the catalog.
func (c *Controller) SelectFeature(service domain.ServiceType, feature string) error {
	if !catalog.HasFeature(service, feature) {
		return fmt.Errorf("%w: %s / %s", ErrUnknownFeature, service, feature)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	c.selected = &domain.SelectedFeature{Service: service, Feature: feature}
	c.page = PageServiceDetail
	return nil
}

// RequestSignUp captures a pending checklist intent from the selected
// feature and routes to the portal (authenticated) or the auth page. A new
// intent overwrites any previous one; intents are never queued.
func (c *Controller) RequestSignUp() Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	if c.selected != nil {
		c.pending = &domain.PendingChecklistIntent{
			Service: c.selected.Service,
			Query:   "Checklist process for " + c.selected.Feature,
		}
	}

	if c.user != nil {
		c.page = PagePortal
		c.enterPortalLocked()
	} else {
		c.page = PageAuth
	}
	return c.page
}

// CompleteLogin installs the authenticated user and opens the portal. A
// pending checklist intent is consumed exactly once: the dashboard opens on
// the tools tab with the query populated and generation already started.
func (c *Controller) CompleteLogin(user *domain.User, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	c.user = user
	c.token = token
	c.page = PagePortal
	c.enterPortalLocked()
}

// RestoreUser reinstates a persisted session into a fresh controller
// without navigating, mirroring session restoration at app start. It is a
// no-op when a user is already installed.
func (c *Controller) RestoreUser(user *domain.User, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user != nil {
		return
	}
	c.user = user
	c.token = token
}

// Logout clears the user, any pending intent, the checklist session and the
// chat transcript, cancels in-flight generation and returns to the home
// page. It returns the session token to revoke, if any.
func (c *Controller) Logout() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	token := c.token
	c.cancelGenerationLocked()
	c.user = nil
	c.token = ""
	c.pending = nil
	c.tool = ChecklistState{Service: domain.ServiceEmployment}
	c.activeTab = TabOverview
	c.chat = []domain.ChatMessage{{Text: content.ChatGreeting, IsUser: false, SentAt: time.Now()}}
	c.page = PageHome
	return token
}

// SetActiveTab switches the dashboard tab.
func (c *Controller) SetActiveTab(tab Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	switch tab {
	case TabOverview, TabTools:
		c.activeTab = tab
	}
}

// enterPortalLocked consumes a pending checklist intent on arrival at the
// portal: tools tab, query populated, generation fired. Runs at most once
// per intent.
func (c *Controller) enterPortalLocked() {
	if c.pending == nil {
		return
	}
	intent := c.pending
	c.pending = nil

	c.activeTab = TabTools
	c.startGenerationLocked(intent.Service, intent.Query)
}

// GenerateChecklist starts a generation for the given service and query.
// A newer request supersedes an older in-flight one; the older result is
// discarded (last-writer-wins).
func (c *Controller) GenerateChecklist(service domain.ServiceType, query string) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()
	c.startGenerationLocked(service, query)
	return nil
}

func (c *Controller) startGenerationLocked(service domain.ServiceType, query string) {
	c.cancelGenerationLocked()

	c.genSeq++
	seq := c.genSeq

	genCtx, cancel := context.WithCancel(c.ctx)
	c.genCancel = cancel
	done := make(chan struct{})
	c.genDone = done

	c.tool = ChecklistState{
		Service:    service,
		Query:      query,
		Generating: true,
	}

	go func() {
		defer close(done)
		draft, err := c.gen.GenerateChecklist(genCtx, service, query)

		c.mu.Lock()
		defer c.mu.Unlock()
		if seq != c.genSeq {
			// Superseded by a newer request or cleared by logout.
			return
		}
		c.tool.Generating = false
		if err != nil {
			slog.Warn("checklist generation failed", "service", service, "error", err)
			c.tool.Checklist = nil
			return
		}
		c.tool.Checklist = buildChecklist(service, draft)
	}()
}

// cancelGenerationLocked aborts the in-flight generation, if any, and bumps
// the sequence so a late result cannot be applied.
func (c *Controller) cancelGenerationLocked() {
	if c.genCancel != nil {
		c.genCancel()
		c.genCancel = nil
	}
	if c.tool.Generating {
		c.genSeq++
		c.tool.Generating = false
	}
}

// buildChecklist turns a model draft into a checklist with item ids and
// cleared completion flags.
func buildChecklist(service domain.ServiceType, draft *gateway.ChecklistDraft) *domain.Checklist {
	items := make([]domain.ChecklistItem, len(draft.Items))
	for i, it := range draft.Items {
		items[i] = domain.ChecklistItem{
			ID:          fmt.Sprintf("item-%d", i),
			Task:        it.Task,
			Description: it.Description,
		}
	}
	return &domain.Checklist{Title: draft.Title, Service: service, Items: items}
}

// ToggleChecklistItem flips one item's completion flag.
func (c *Controller) ToggleChecklistItem(itemID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	if c.tool.Checklist == nil {
		return false
	}
	return c.tool.Checklist.Toggle(itemID)
}

// ResetChecklist clears every completion flag; task text, descriptions and
// ordering are untouched.
func (c *Controller) ResetChecklist() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	if c.tool.Checklist != nil {
		c.tool.Checklist.Reset()
	}
}

// Chat appends the visitor message, asks the gateway for a reply and
// appends it. Only the latest message and a static context label are sent;
// prior turns stay client-side.
func (c *Controller) Chat(ctx context.Context, message, contextLabel string) string {
	c.mu.Lock()
	c.touchLocked()
	c.chat = append(c.chat, domain.ChatMessage{Text: message, IsUser: true, SentAt: time.Now()})
	c.mu.Unlock()

	reply := c.gen.ChatReply(ctx, message, contextLabel)

	c.mu.Lock()
	c.chat = append(c.chat, domain.ChatMessage{Text: reply, IsUser: false, SentAt: time.Now()})
	c.mu.Unlock()
	return reply
}

// Page returns the current page.
func (c *Controller) Page() Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// User returns the current user, or nil.
func (c *Controller) User() *domain.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// SessionToken returns the portal session token, or "".
func (c *Controller) SessionToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// SelectedFeature returns the feature driving the detail page, or nil.
func (c *Controller) SelectedFeature() *domain.SelectedFeature {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return nil
	}
	sel := *c.selected
	return &sel
}

// PendingIntent returns the deferred checklist intent, or nil.
func (c *Controller) PendingIntent() *domain.PendingChecklistIntent {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return nil
	}
	intent := *c.pending
	return &intent
}

// ActiveTab returns the dashboard tab.
func (c *Controller) ActiveTab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeTab
}

// ChecklistSnapshot returns a deep copy of the checklist tool state.
func (c *Controller) ChecklistSnapshot() ChecklistState {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.tool
	if c.tool.Checklist != nil {
		cl := *c.tool.Checklist
		cl.Items = make([]domain.ChecklistItem, len(c.tool.Checklist.Items))
		copy(cl.Items, c.tool.Checklist.Items)
		snap.Checklist = &cl
	}
	return snap
}

// Transcript returns a copy of the chat transcript.
func (c *Controller) Transcript() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ChatMessage, len(c.chat))
	copy(out, c.chat)
	return out
}

// LastActive returns when the visitor last touched the controller.
func (c *Controller) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

// generationDone exposes the completion signal of the current generation
// for tests.
func (c *Controller) generationDone() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.genDone
}

func (c *Controller) touchLocked() {
	c.lastActive = time.Now()
}
