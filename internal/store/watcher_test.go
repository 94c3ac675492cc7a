package store

import (
	"context"
	"os"
	"testing"
	"time"

	"framedock/internal/layout"
)

func TestWatcher_ReloadsExternalChanges(t *testing.T) {
	s := newStore(t)
	if _, err := s.Save(layout.DefaultSet()); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan layout.Set, 4)
	w, err := NewWatcher(s, func(set layout.Set, err error) {
		if err != nil {
			t.Errorf("reload error = %v", err)
		}
		reloaded <- set
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Our own save is not reported back.
	set := layout.DefaultSet()
	set.Selected = 1
	if _, err := s.Save(set); err != nil {
		t.Fatal(err)
	}
	select {
	case <-reloaded:
		t.Fatal("own write triggered a reload")
	case <-time.After(300 * time.Millisecond):
	}

	// Another writer changes the file.
	other := New(s.Path(), nil)
	external := layout.Set{Layouts: []layout.Layout{layout.QuadLayout()}}
	if _, err := other.Save(external); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-reloaded:
		if len(got.Layouts) != 1 || got.Layouts[0].Name != "Quad" {
			t.Errorf("reloaded set = %+v", got)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("external change was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not stop on cancel")
	}
}

func TestWatcher_IgnoresBrokenFile(t *testing.T) {
	s := newStore(t)
	reloaded := make(chan struct{}, 1)
	w, err := NewWatcher(s, func(layout.Set, error) { reloaded <- struct{}{} })
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	if err := os.WriteFile(s.Path(), []byte("layouts: [oops"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-reloaded:
		t.Error("broken file should not be reloaded")
	case <-time.After(300 * time.Millisecond):
	}
}
