// pattern: Imperative Shell

package logging

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// RingSink implements zapcore.WriteSyncer and keeps the most recent parsed
// entries in a fixed-size ring. Writes never block; once the ring is full
// the oldest entry is overwritten.
type RingSink struct {
	mu      sync.Mutex
	ring    []LogEntry
	start   int
	count   int
	updates chan struct{}
	closed  bool
}

// NewRingSink creates a sink holding at most capacity entries.
func NewRingSink(capacity int) *RingSink {
	if capacity <= 0 {
		capacity = 1
	}
	return &RingSink{
		ring:    make([]LogEntry, capacity),
		updates: make(chan struct{}, 1),
	}
}

// Write implements io.Writer. It parses one JSON line from zap and appends
// the resulting entry.
func (s *RingSink) Write(p []byte) (int, error) {
	entry, err := parseEntry(p)
	if err != nil {
		// Unparseable lines are dropped but must not fail the logger
		return len(p), nil
	}
	if !s.Append(entry) {
		return 0, fmt.Errorf("write to closed ring sink")
	}
	return len(p), nil
}

// Append stores an entry directly. Returns false after Close.
func (s *RingSink) Append(entry LogEntry) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	end := (s.start + s.count) % len(s.ring)
	s.ring[end] = entry
	if s.count < len(s.ring) {
		s.count++
	} else {
		s.start = (s.start + 1) % len(s.ring)
	}
	s.mu.Unlock()

	// Coalesced: one pending signal is enough for any number of appends
	select {
	case s.updates <- struct{}{}:
	default:
	}
	return true
}

// Recent returns up to n of the newest entries, oldest first. n <= 0
// returns everything held.
func (s *RingSink) Recent(n int) []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 || n > s.count {
		n = s.count
	}
	out := make([]LogEntry, n)
	first := s.start + s.count - n
	for i := range out {
		out[i] = s.ring[(first+i)%len(s.ring)]
	}
	return out
}

// Len returns the number of entries held.
func (s *RingSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Updates signals after entries were appended. Closed by Close.
func (s *RingSink) Updates() <-chan struct{} {
	return s.updates
}

// Sync implements zapcore.WriteSyncer. No-op for the ring.
func (s *RingSink) Sync() error {
	return nil
}

// Close stops accepting entries. Safe to call multiple times.
func (s *RingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.updates)
	}
	return nil
}

// parseEntry converts JSON log data from zap into a LogEntry.
func parseEntry(data []byte) (LogEntry, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return LogEntry{}, err
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     "INFO",
		Scope:     "app",
		Fields:    make(map[string]any),
	}
	if msg, ok := raw["msg"].(string); ok {
		entry.Message = msg
	}
	if level, ok := raw["level"].(string); ok {
		entry.Level = ParseLevel(level)
	}
	if logger, ok := raw["logger"].(string); ok {
		entry.Scope = logger
	}
	if ts, ok := raw["ts"].(float64); ok {
		sec := int64(ts)
		entry.Timestamp = time.Unix(sec, int64((ts-float64(sec))*1e9))
	}

	for _, k := range []string{"msg", "level", "logger", "ts", "caller", "stacktrace"} {
		delete(raw, k)
	}
	for k, v := range raw {
		entry.Fields[k] = v
	}
	return entry, nil
}
