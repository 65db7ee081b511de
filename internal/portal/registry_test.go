package portal

import (
	"testing"
	"time"
)

func TestRegistryGetCreatesOncePerVisitor(t *testing.T) {
	reg := NewRegistry(newFakeGenerator())

	a := reg.Get("v_abc")
	b := reg.Get("v_abc")
	if a != b {
		t.Error("Expected the same controller for a repeat visitor")
	}
	if reg.Get("v_other") == a {
		t.Error("Expected a distinct controller per visitor")
	}
	if reg.Len() != 2 {
		t.Errorf("Expected 2 controllers, got %d", reg.Len())
	}
}

func TestRegistryClose(t *testing.T) {
	reg := NewRegistry(newFakeGenerator())
	reg.Get("v_abc")

	reg.Close("v_abc")
	if reg.Len() != 0 {
		t.Errorf("Expected 0 controllers after close, got %d", reg.Len())
	}

	// Closing an unknown visitor is a no-op.
	reg.Close("v_missing")
}

func TestRegistrySweepEvictsIdleControllers(t *testing.T) {
	reg := NewRegistry(newFakeGenerator())

	idle := reg.Get("v_idle")
	idle.mu.Lock()
	idle.lastActive = time.Now().Add(-time.Hour)
	idle.mu.Unlock()

	fresh := reg.Get("v_fresh")
	fresh.Navigate(PageServices)

	if swept := reg.Sweep(30 * time.Minute); swept != 1 {
		t.Errorf("Expected 1 controller swept, got %d", swept)
	}
	if reg.Len() != 1 {
		t.Errorf("Expected 1 controller left, got %d", reg.Len())
	}
	if reg.Get("v_fresh") != fresh {
		t.Error("Expected the fresh controller to survive the sweep")
	}
}
