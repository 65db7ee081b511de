package portal

import (
	"encoding/json"
	"testing"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		in   string
		want Page
	}{
		{"home", PageHome},
		{"services", PageServices},
		{"service-detail", PageServiceDetail},
		{"auth", PageAuth},
		{"portal", PagePortal},
		{"contact", PageContact},
	}
	for _, tc := range cases {
		got, err := ParsePage(tc.in)
		if err != nil {
			t.Errorf("ParsePage(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePage(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParsePageRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "dashboard", "HOME", "settings"} {
		if _, err := ParsePage(in); err == nil {
			t.Errorf("Expected ParsePage(%q) to fail", in)
		}
	}
}

func TestPageJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(PageServiceDetail)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"service-detail"` {
		t.Errorf("Unexpected encoding: %s", data)
	}

	var p Page
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if p != PageServiceDetail {
		t.Errorf("Round trip produced %v", p)
	}

	if err := json.Unmarshal([]byte(`"nope"`), &p); err == nil {
		t.Error("Expected unmarshal of unknown page to fail")
	}
}
