// pattern: Imperative Shell

package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// changeFeed numbers session changes and hands every subscriber the
// latest revision. A subscriber that falls behind skips straight to the
// newest revision instead of queueing the ones it missed.
type changeFeed struct {
	mu          sync.Mutex
	revision    uint64
	subscribers map[chan uint64]struct{}
}

func newChangeFeed() *changeFeed {
	return &changeFeed{
		subscribers: make(map[chan uint64]struct{}),
	}
}

// Subscribe returns a channel receiving each new revision and the revision
// current at subscription time. The caller must call Unsubscribe when done.
func (f *changeFeed) Subscribe() (chan uint64, uint64) {
	ch := make(chan uint64, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribers[ch] = struct{}{}
	return ch, f.revision
}

// Unsubscribe removes a subscriber channel.
func (f *changeFeed) Unsubscribe(ch chan uint64) {
	f.mu.Lock()
	delete(f.subscribers, ch)
	f.mu.Unlock()
}

// Len returns the number of subscribers.
func (f *changeFeed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers)
}

// Revision returns the number of changes published so far.
func (f *changeFeed) Revision() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revision
}

// Publish records one change and offers the new revision to every
// subscriber, replacing any revision still pending.
func (f *changeFeed) Publish() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revision++
	for ch := range f.subscribers {
		// Only Publish sends, and it holds the lock, so after the drain
		// the buffered send cannot block.
		select {
		case <-ch:
		default:
		}
		ch <- f.revision
	}
}

// refreshEvent is the SSE payload; clients re-fetch what they need. A gap
// in Revision means intermediate changes were coalesced.
type refreshEvent struct {
	Revision uint64 `json:"revision"`
	LayoutID string `json:"layout_id"`
	Name     string `json:"name"`
	Selected int    `json:"selected"`
}

// handleEvents is the SSE endpoint. It sends a "connected" event carrying
// the current revision on open, then a "refresh" event naming the active
// layout after each change.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, rev := s.changes.Subscribe()
	defer s.changes.Unsubscribe(ch)

	fmt.Fprintf(w, "event: connected\ndata: {\"revision\":%d}\n\n", rev)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.closing:
			return
		case rev := <-ch:
			set := s.session.Snapshot()
			ev := refreshEvent{Revision: rev, Selected: set.ActiveIndex()}
			if l := set.Active(); l != nil {
				ev.LayoutID, ev.Name = l.ID, l.Name
			}
			data, _ := json.Marshal(ev)
			fmt.Fprintf(w, "event: refresh\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
