package chatlog

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoggerWritesPerVisitorNDJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logger, err := New(Config{Enabled: true, Dir: dir, QueueSize: 16}, slog.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Log(Event{VisitorID: "v_1", Channel: "http", IsUser: true, Text: "hello"})
	logger.Log(Event{VisitorID: "v_1", Channel: "http", IsUser: false, Text: "hi there"})
	logger.Log(Event{VisitorID: "v_2", Channel: "ws", IsUser: true, Text: "other visitor"})

	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	lines := readLines(t, filepath.Join(dir, "v_1.ndjson"))
	if len(lines) != 2 {
		t.Fatalf("Expected 2 events for v_1, got %d", len(lines))
	}

	var got Event
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("Failed to unmarshal log line: %v", err)
	}
	if got.Text != "hello" || !got.IsUser || got.Channel != "http" {
		t.Errorf("Unexpected first event: %+v", got)
	}
	if got.Timestamp == "" {
		t.Error("Expected timestamp to be populated")
	}

	if lines := readLines(t, filepath.Join(dir, "v_2.ndjson")); len(lines) != 1 {
		t.Errorf("Expected 1 event for v_2, got %d", len(lines))
	}
}

func TestDisabledLoggerIsNoOp(t *testing.T) {
	t.Parallel()

	logger, err := New(Config{Enabled: false}, slog.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Log(Event{VisitorID: "v_1", Text: "dropped on the floor"})
	if err := logger.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	// Closing twice must be safe.
	if err := logger.Close(); err != nil {
		t.Errorf("Repeat close failed: %v", err)
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("Failed to scan %s: %v", path, err)
	}
	return lines
}
