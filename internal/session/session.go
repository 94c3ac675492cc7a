// pattern: Imperative Shell

// Package session owns the live layout set. It is the only writer: the
// terminal editor, the web API and the store watcher all mutate layouts
// through it, and every reader gets a consistent copy.
package session

import (
	"sync"

	"framedock/internal/geom"
	"framedock/internal/layout"
	"framedock/internal/logging"
)

// Session guards one layout.Set.
type Session struct {
	mu  sync.RWMutex
	set layout.Set

	listenersMu sync.Mutex
	listeners   []func()

	logger *logging.ScopedLogger
}

// New creates a session over a copy of set.
func New(set layout.Set, logger *logging.ScopedLogger) *Session {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Session{set: set.Clone(), logger: logger}
}

// Subscribe registers fn to run after every change. Listeners run on the
// mutating goroutine once the lock is released.
func (s *Session) Subscribe(fn func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Session) notify() {
	s.listenersMu.Lock()
	listeners := append([]func(){}, s.listeners...)
	s.listenersMu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Active returns a copy of the active layout. The zero Layout is returned
// for an empty set.
func (s *Session) Active() layout.Layout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l := s.set.Active(); l != nil {
		return l.Clone()
	}
	return layout.Layout{}
}

// Snapshot returns a copy of the whole set.
func (s *Session) Snapshot() layout.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Clone()
}

// Restore replaces the set, for example after the store file changed.
func (s *Session) Restore(set layout.Set) {
	s.mu.Lock()
	s.set = set.Clone()
	n := len(s.set.Layouts)
	s.mu.Unlock()

	s.logger.Info("layouts restored", "count", n)
	s.notify()
}

// Drag moves a boundary of the active layout.
func (s *Session) Drag(iv geom.Interval, delta float64) layout.DragResult {
	s.mu.Lock()
	var res layout.DragResult
	if l := s.set.Active(); l != nil {
		res = l.Drag(iv, delta)
	}
	s.mu.Unlock()

	s.logDrag(res, delta)
	if res.Changed() {
		s.notify()
	}
	return res
}

// DragFrame drags one edge of a frame of the active layout. It returns
// false when the frame does not exist.
func (s *Session) DragFrame(frameID string, edge geom.Edge, delta float64) (layout.DragResult, bool) {
	s.mu.Lock()
	var (
		res layout.DragResult
		ok  bool
	)
	if l := s.set.Active(); l != nil {
		res, ok = l.DragFrame(frameID, edge, delta)
	}
	s.mu.Unlock()

	if !ok {
		return res, false
	}
	s.logDrag(res, delta, "frame", frameID, "edge", edge.String())
	if res.Changed() {
		s.notify()
	}
	return res, true
}

func (s *Session) logDrag(res layout.DragResult, requested float64, args ...any) {
	iv := res.Interval
	s.logger.Debug("drag",
		append([]any{
			"axis", iv.Axis.String(),
			"from", iv.From,
			"to", iv.To,
			"pos", iv.Pos,
			"low", res.Low,
			"high", res.High,
			"requested", requested,
			"applied", res.Delta,
			"moved", res.Moved,
		}, args...)...,
	)
}

// SetFrameType assigns a content kind to a frame of the active layout. It
// returns false when the frame does not exist or already has that kind.
func (s *Session) SetFrameType(frameID string, frameType int) bool {
	s.mu.Lock()
	changed := false
	if l := s.set.Active(); l != nil {
		changed = l.SetFrameType(frameID, frameType)
	}
	s.mu.Unlock()

	if changed {
		s.logger.Info("frame type changed", "frame", frameID, "type", frameType)
		s.notify()
	}
	return changed
}

// Select makes layout i active.
func (s *Session) Select(i int) bool {
	s.mu.Lock()
	changed := s.set.Select(i)
	s.mu.Unlock()

	if changed {
		s.logger.Info("layout selected", "index", i)
		s.notify()
	}
	return changed
}

// Cycle moves the selection by step, wrapping around. Returns the new index.
func (s *Session) Cycle(step int) int {
	s.mu.Lock()
	n := len(s.set.Layouts)
	if n == 0 {
		s.mu.Unlock()
		return -1
	}
	next := ((s.set.ActiveIndex()+step)%n + n) % n
	changed := s.set.Select(next)
	s.mu.Unlock()

	if changed {
		s.logger.Info("layout selected", "index", next)
		s.notify()
	}
	return next
}

// HasFrame reports whether the active layout contains frameID.
func (s *Session) HasFrame(frameID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l := s.set.Active(); l != nil {
		_, ok := l.Frame(frameID)
		return ok
	}
	return false
}
