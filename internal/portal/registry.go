package portal

import (
	"log/slog"
	"sync"
	"time"

	"github.com/bebestgroup/portal/internal/gateway"
)

// Registry manages the live controllers, one per anonymous visitor id.
type Registry struct {
	mu          sync.RWMutex
	controllers map[string]*Controller
	gen         gateway.Generator
}

// NewRegistry creates a registry whose controllers use the given generator.
func NewRegistry(gen gateway.Generator) *Registry {
	return &Registry{
		controllers: make(map[string]*Controller),
		gen:         gen,
	}
}

// Get returns the controller for a visitor, creating it on first sight.
func (r *Registry) Get(visitorID string) *Controller {
	r.mu.RLock()
	c, ok := r.controllers[visitorID]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.controllers[visitorID]; ok {
		return c
	}
	c = NewController(r.gen)
	r.controllers[visitorID] = c
	slog.Info("Visitor controller created", "visitor_id", visitorID)
	return c
}

// Close tears down a visitor's controller, cancelling any in-flight work.
func (r *Registry) Close(visitorID string) {
	r.mu.Lock()
	c, ok := r.controllers[visitorID]
	if ok {
		delete(r.controllers, visitorID)
	}
	r.mu.Unlock()

	if ok {
		c.Close()
		slog.Info("Visitor controller closed", "visitor_id", visitorID)
	}
}

// Sweep evicts controllers idle longer than ttl and returns how many were
// closed.
func (r *Registry) Sweep(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	r.mu.Lock()
	var stale []*Controller
	for id, c := range r.controllers {
		if c.LastActive().Before(cutoff) {
			stale = append(stale, c)
			delete(r.controllers, id)
		}
	}
	r.mu.Unlock()

	for _, c := range stale {
		c.Close()
	}
	return len(stale)
}

// Len returns the number of live controllers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.controllers)
}
