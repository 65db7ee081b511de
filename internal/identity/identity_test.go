package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddlewareIssuesVisitorCookie(t *testing.T) {
	var gotID string
	handler := Middleware(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = VisitorIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if !isValidVisitorID(gotID) {
		t.Errorf("Expected a valid visitor id in context, got %q", gotID)
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == VisitorCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("Expected a visitor cookie to be set")
	}
	if cookie.Value != gotID {
		t.Errorf("Cookie value %q does not match context id %q", cookie.Value, gotID)
	}
	if !cookie.HttpOnly {
		t.Error("Expected the visitor cookie to be HttpOnly")
	}
}

func TestMiddlewareKeepsExistingVisitorID(t *testing.T) {
	const id = "v_0123456789abcdef0123456789abcdef"

	var gotID string
	handler := Middleware(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = VisitorIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: VisitorCookieName, Value: id})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotID != id {
		t.Errorf("Expected existing visitor id %q to be kept, got %q", id, gotID)
	}
}

func TestMiddlewareReplacesMalformedVisitorID(t *testing.T) {
	var gotID string
	handler := Middleware(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = VisitorIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: VisitorCookieName, Value: "not-a-visitor-id"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotID == "not-a-visitor-id" {
		t.Error("Expected malformed visitor id to be replaced")
	}
	if !isValidVisitorID(gotID) {
		t.Errorf("Expected a fresh valid visitor id, got %q", gotID)
	}
}

func TestMiddlewareExtractsSessionToken(t *testing.T) {
	const token = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

	var gotToken string
	handler := Middleware(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = SessionTokenFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotToken != token {
		t.Errorf("Expected session token in context, got %q", gotToken)
	}
}

func TestMiddlewareIgnoresMalformedSessionToken(t *testing.T) {
	var gotToken string
	handler := Middleware(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = SessionTokenFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "short"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotToken != "" {
		t.Errorf("Expected malformed session token to be dropped, got %q", gotToken)
	}
}

func TestClearSessionCookie(t *testing.T) {
	w := httptest.NewRecorder()
	ClearSessionCookie(w, true)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookieName {
		t.Fatalf("Expected one session cookie, got %v", cookies)
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("Expected expired cookie, got MaxAge %d", cookies[0].MaxAge)
	}
}
