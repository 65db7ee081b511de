// Package portal holds the per-visitor navigation and session state for the
// site: the current page, the authenticated user, deferred checklist
// intents, the checklist tool session and the chat widget transcript.
package portal

import (
	"encoding/json"
	"fmt"
)

// Page identifies one of the fixed set of site pages. The set is closed;
// identifiers outside it are rejected when parsed, never silently mapped to
// the home page.
type Page int

const (
	PageHome Page = iota
	PageServices
	PageServiceDetail
	PageAuth
	PagePortal
	PageContact
)

var pageNames = map[Page]string{
	PageHome:          "home",
	PageServices:      "services",
	PageServiceDetail: "service-detail",
	PageAuth:          "auth",
	PagePortal:        "portal",
	PageContact:       "contact",
}

// String returns the wire identifier for the page.
func (p Page) String() string {
	if name, ok := pageNames[p]; ok {
		return name
	}
	return fmt.Sprintf("page(%d)", int(p))
}

// ParsePage maps a wire identifier to a Page.
func ParsePage(s string) (Page, error) {
	for p, name := range pageNames {
		if name == s {
			return p, nil
		}
	}
	return PageHome, fmt.Errorf("unknown page %q", s)
}

// MarshalJSON encodes the page as its wire identifier.
func (p Page) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a wire identifier, rejecting unknown pages.
func (p *Page) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePage(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
