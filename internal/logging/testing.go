// pattern: Imperative Shell

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NopLogger returns a logger that discards all output.
func NopLogger() *ScopedLogger {
	return &ScopedLogger{}
}

// TestLogManager is a LoggerProvider for tests. It logs at debug level into
// a ring only.
type TestLogManager struct {
	sink    *RingSink
	baseZap *zap.Logger
	cache   loggerCache
}

// NewTestLogManager creates a test manager whose ring holds size entries.
func NewTestLogManager(size int) *TestLogManager {
	sink := NewRingSink(size)
	return &TestLogManager{
		sink:    sink,
		baseZap: zap.New(jsonCore(sink, zapcore.DebugLevel)),
	}
}

// For returns a scoped logger for the given scope name.
func (m *TestLogManager) For(scope string) *ScopedLogger {
	return m.cache.get(scope, m.baseZap, zapcore.DebugLevel)
}

// Sink returns the ring the logs are written to.
func (m *TestLogManager) Sink() *RingSink {
	return m.sink
}

// Entries returns everything logged so far, oldest first.
func (m *TestLogManager) Entries() []LogEntry {
	return m.sink.Recent(0)
}

// Close closes the test log manager.
func (m *TestLogManager) Close() error {
	return m.sink.Close()
}
