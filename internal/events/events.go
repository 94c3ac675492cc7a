// package events contains message types shared between web and tui packages.
package events

// LayoutChangedMsg is sent by the web server after it mutated the session,
// so the editor re-renders and autosaves.
type LayoutChangedMsg struct {
	Source string
}

// WebListenURLMsg is sent when the web server starts listening.
type WebListenURLMsg struct{ URL string }

// StoreReloadedMsg is sent after the layouts file changed on disk and the
// session was restored from it. Err carries repaired-layout warnings.
type StoreReloadedMsg struct{ Err error }
