package catalog

import (
	"testing"

	"github.com/bebestgroup/portal/internal/domain"
)

func TestServicesCoversAllDivisions(t *testing.T) {
	all := Services()
	if len(all) != 4 {
		t.Fatalf("Expected 4 divisions, got %d", len(all))
	}

	want := []domain.ServiceType{
		domain.ServiceEmployment,
		domain.ServiceInsurance,
		domain.ServiceManagement,
		domain.ServiceIT,
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("Expected division %v at position %d, got %v", id, i, all[i].ID)
		}
		if len(all[i].Features) != 4 {
			t.Errorf("%v: expected 4 features, got %d", id, len(all[i].Features))
		}
		if all[i].Title == "" || all[i].ShortDesc == "" || all[i].FullDesc == "" {
			t.Errorf("%v: incomplete catalog entry", id)
		}
	}
}

func TestServicesReturnsCopy(t *testing.T) {
	first := Services()
	first[0].Title = "mutated"

	if Services()[0].Title == "mutated" {
		t.Error("Expected the catalog to be immutable")
	}
}

func TestByID(t *testing.T) {
	svc := ByID(domain.ServiceEmployment)
	if svc == nil || svc.Title != "Employment Agency" {
		t.Errorf("Unexpected entry: %+v", svc)
	}
	if ByID(domain.ServiceType("Space Agency")) != nil {
		t.Error("Expected nil for unknown division")
	}
}

func TestHasFeature(t *testing.T) {
	if !HasFeature(domain.ServiceEmployment, "Foreign Worker Permits") {
		t.Error("Expected Foreign Worker Permits under Employment Agency")
	}
	if HasFeature(domain.ServiceEmployment, "Risk Assessment") {
		t.Error("Risk Assessment belongs to the insurance division")
	}
	if HasFeature(domain.ServiceType("Space Agency"), "Anything") {
		t.Error("Expected false for unknown division")
	}
}
