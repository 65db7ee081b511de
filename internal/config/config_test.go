package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "SESSION_TTL_MINUTES", "GEMINI_API_KEY", "GEMINI_MODEL",
		"AUTH_LATENCY_MS", "CHAT_LOG_ENABLED",
	} {
		if _, ok := os.LookupEnv(key); ok {
			t.Skipf("%s is set in the environment", key)
		}
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %q", cfg.Port)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("Expected default session TTL of 12h, got %v", cfg.SessionTTL)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("Unexpected default model: %q", cfg.GeminiModel)
	}
	if cfg.AuthLatency != 800*time.Millisecond {
		t.Errorf("Unexpected default auth latency: %v", cfg.AuthLatency)
	}
	if cfg.AIEnabled() {
		t.Error("Expected AI disabled without an API key")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL_MINUTES", "30")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("AUTH_LATENCY_MS", "0")
	t.Setenv("CHAT_LOG_ENABLED", "true")
	t.Setenv("CHAT_LOG_DIR", "/tmp/chat")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %q", cfg.Port)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("Expected 30m session TTL, got %v", cfg.SessionTTL)
	}
	if !cfg.AIEnabled() {
		t.Error("Expected AI enabled with an API key")
	}
	if cfg.AuthLatency != 0 {
		t.Errorf("Expected zero auth latency, got %v", cfg.AuthLatency)
	}
	if !cfg.ChatLog.Enabled || cfg.ChatLog.Dir != "/tmp/chat" {
		t.Errorf("Unexpected chat log config: %+v", cfg.ChatLog)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:        "8080",
			DBPath:      "./data/portal.db",
			GeminiModel: "gemini-2.5-flash",
			SessionTTL:  time.Hour,
		}
	}

	if err := base().Validate(); err != nil {
		t.Errorf("Expected valid base config, got %v", err)
	}

	cfg := base()
	cfg.Port = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expected empty port to fail validation")
	}

	cfg = base()
	cfg.SessionTTL = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected zero session TTL to fail validation")
	}

	cfg = base()
	cfg.AuthLatency = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("Expected negative auth latency to fail validation")
	}

	cfg = base()
	cfg.ChatLog.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Error("Expected enabled chat log without a directory to fail validation")
	}
}

func TestIsDevelopment(t *testing.T) {
	cases := []struct {
		frontendURL string
		want        bool
	}{
		{"", true},
		{"http://localhost:5173", true},
		{"http://127.0.0.1:5173", true},
		{"https://bebestgroup.com", false},
	}
	for _, tc := range cases {
		cfg := &Config{FrontendURL: tc.frontendURL}
		if got := cfg.IsDevelopment(); got != tc.want {
			t.Errorf("IsDevelopment(%q) = %v, want %v", tc.frontendURL, got, tc.want)
		}
	}
}
