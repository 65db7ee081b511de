// Package chatlog provides asynchronous NDJSON logging of chat widget
// transcripts, one file per visitor.
package chatlog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config controls transcript logging.
type Config struct {
	Enabled   bool
	Dir       string
	QueueSize int
}

// Event is one logged chat turn.
type Event struct {
	Timestamp string `json:"ts"`
	VisitorID string `json:"visitor_id"`
	Channel   string `json:"channel"` // "http" or "ws"
	IsUser    bool   `json:"is_user"`
	Text      string `json:"text"`
}

// Logger writes chat events to per-visitor NDJSON files. Log never blocks
// the request path; events are dropped when the queue is full.
type Logger struct {
	cfg    Config
	log    *slog.Logger
	queue  chan Event
	done   chan struct{}
	closed sync.Once

	mu      sync.Mutex
	dropped int64
}

// New creates a transcript logger. A disabled config yields a logger whose
// Log is a no-op.
func New(cfg Config, log *slog.Logger) (*Logger, error) {
	l := &Logger{cfg: cfg, log: log, done: make(chan struct{})}
	if !cfg.Enabled {
		return l, nil
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create chat log directory: %w", err)
	}

	size := cfg.QueueSize
	if size <= 0 {
		size = 1000
	}
	l.queue = make(chan Event, size)
	go l.run()
	return l, nil
}

// Log enqueues a chat turn for writing.
func (l *Logger) Log(event Event) {
	if !l.cfg.Enabled {
		return
	}
	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}

	select {
	case l.queue <- event:
	default:
		l.mu.Lock()
		l.dropped++
		dropped := l.dropped
		l.mu.Unlock()
		l.log.Warn("chat log queue full, dropping event", "dropped_total", dropped)
	}
}

// Close flushes queued events and stops the writer.
func (l *Logger) Close() error {
	if !l.cfg.Enabled {
		return nil
	}
	l.closed.Do(func() {
		close(l.queue)
		<-l.done
	})
	return nil
}

func (l *Logger) run() {
	defer close(l.done)
	for event := range l.queue {
		if err := l.write(event); err != nil {
			l.log.Warn("failed to write chat log event", "visitor_id", event.VisitorID, "error", err)
		}
	}
}

func (l *Logger) write(event Event) error {
	path := filepath.Join(l.cfg.Dir, event.VisitorID+".ndjson")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open chat log file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			l.log.Warn("failed to close chat log file", "path", path, "error", closeErr)
		}
	}()

	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal chat log event: %w", err)
	}
	line = append(line, '\n')

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("append chat log event: %w", err)
	}
	return nil
}
