package domain

import (
	"encoding/json"
	"fmt"
)

// ServiceType identifies one of the four fixed business divisions.
type ServiceType string

const (
	ServiceEmployment ServiceType = "Employment Agency"
	ServiceInsurance  ServiceType = "Insurance Agency"
	ServiceManagement ServiceType = "Management Services"
	ServiceIT         ServiceType = "Information Technology"
)

// ServiceTypes lists all divisions in display order.
func ServiceTypes() []ServiceType {
	return []ServiceType{ServiceEmployment, ServiceInsurance, ServiceManagement, ServiceIT}
}

// ParseServiceType validates a division identifier.
func ParseServiceType(s string) (ServiceType, error) {
	switch ServiceType(s) {
	case ServiceEmployment, ServiceInsurance, ServiceManagement, ServiceIT:
		return ServiceType(s), nil
	}
	return "", fmt.Errorf("unknown service type %q", s)
}

// UnmarshalJSON rejects identifiers outside the fixed division set.
func (t *ServiceType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseServiceType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ServiceInfo is a static catalog entry for one division.
// Entries are defined at process start and never mutated.
type ServiceInfo struct {
	ID        ServiceType `json:"id"`
	Title     string      `json:"title"`
	IconName  string      `json:"icon_name"`
	ShortDesc string      `json:"short_desc"`
	FullDesc  string      `json:"full_desc"`
	Features  []string    `json:"features"`
}

// HasFeature reports whether name is one of the entry's listed features.
func (s *ServiceInfo) HasFeature(name string) bool {
	for _, f := range s.Features {
		if f == name {
			return true
		}
	}
	return false
}

// SelectedFeature is the transient (division, feature) pair driving the
// service detail page.
type SelectedFeature struct {
	Service ServiceType `json:"service"`
	Feature string      `json:"feature"`
}

// PendingChecklistIntent is a deferred checklist request captured when an
// anonymous visitor asks to sign up for a feature. At most one exists per
// visitor; a newer request overwrites it.
type PendingChecklistIntent struct {
	Service ServiceType `json:"service"`
	Query   string      `json:"query"`
}
