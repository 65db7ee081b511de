// Package catalog holds the compiled-in service catalog for the four
// Bebest Group divisions.
package catalog

import "github.com/bebestgroup/portal/internal/domain"

var services = []domain.ServiceInfo{
	{
		ID:        domain.ServiceEmployment,
		Title:     "Employment Agency",
		IconName:  "Users",
		ShortDesc: "Comprehensive staffing and recruitment solutions.",
		FullDesc: "We connect top talent with leading organizations. Our employment agency handles " +
			"everything from recruitment and screening to work permit applications and onboarding.",
		Features: []string{"Talent Acquisition", "Foreign Worker Permits", "Payroll Management", "HR Consulting"},
	},
	{
		ID:        domain.ServiceInsurance,
		Title:     "Insurance Agency",
		IconName:  "Shield",
		ShortDesc: "Protecting what matters most with tailored policies.",
		FullDesc: "Our insurance division provides extensive coverage options for businesses and " +
			"individuals, ensuring peace of mind in an unpredictable world.",
		Features: []string{"Corporate Liability", "Group Health Insurance", "Asset Protection", "Risk Assessment"},
	},
	{
		ID:        domain.ServiceManagement,
		Title:     "Management Services",
		IconName:  "Briefcase",
		ShortDesc: "Optimizing operations for sustainable growth.",
		FullDesc: "Expert management consultancy to streamline your business processes, improve " +
			"efficiency, and drive strategic growth.",
		Features: []string{"Strategic Planning", "Process Optimization", "Financial Advisory", "Project Management"},
	},
	{
		ID:        domain.ServiceIT,
		Title:     "IT Services",
		IconName:  "Monitor",
		ShortDesc: "Cutting-edge technology solutions for modern business.",
		FullDesc: "From custom software development to network security, our IT division empowers " +
			"your business with digital tools for the future.",
		Features: []string{"Software Development", "Cloud Infrastructure", "Cybersecurity", "Technical Support"},
	},
}

// Services returns all catalog entries in display order. The returned slice
// is a copy; the catalog itself is immutable.
func Services() []domain.ServiceInfo {
	out := make([]domain.ServiceInfo, len(services))
	copy(out, services)
	return out
}

// ByID returns the catalog entry for a division, or nil if the identifier
// is not part of the fixed set.
func ByID(id domain.ServiceType) *domain.ServiceInfo {
	for i := range services {
		if services[i].ID == id {
			s := services[i]
			return &s
		}
	}
	return nil
}

// HasFeature reports whether the division lists the named feature.
func HasFeature(id domain.ServiceType, feature string) bool {
	s := ByID(id)
	return s != nil && s.HasFeature(feature)
}
