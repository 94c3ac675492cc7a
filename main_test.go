package main

import (
	"os"
	"path/filepath"
	"testing"

	"framedock/internal/config"
	"framedock/internal/logging"
	"framedock/internal/store"
)

func TestNewLogManager(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.LogLevel = "debug"

	lm, err := newLogManager(tmpDir, cfg)
	if err != nil {
		t.Fatalf("failed to create log manager: %v", err)
	}
	defer lm.Close()

	lm.For("app").Info("test message")
	_ = lm.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "framedock.log")); os.IsNotExist(err) {
		t.Error("log file was not created")
	}

	recent := lm.Sink().Recent(1)
	if len(recent) != 1 {
		t.Fatalf("ring holds %d entries, want 1", len(recent))
	}
	if recent[0].Scope != "app" || recent[0].Message != "test message" {
		t.Errorf("entry = %+v", recent[0])
	}
}

func TestLoadLayouts(t *testing.T) {
	tests := []struct {
		name      string
		contents  string
		wantFirst string
		wantCount int
	}{
		{name: "missing file", wantFirst: "Default", wantCount: 2},
		{name: "unparseable file", contents: "layouts: [", wantFirst: "Default", wantCount: 2},
		{
			name: "broken layout dropped",
			contents: `layouts:
  - id: l1
    name: Half
    content:
      - frame_type: 0
        id: f1
        rect: {min: {x: 0, y: 0}, max: {x: 0.5, y: 1}}
`,
			wantFirst: "Default",
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "layouts.yaml")
			if tt.contents != "" {
				if err := os.WriteFile(path, []byte(tt.contents), 0644); err != nil {
					t.Fatal(err)
				}
			}

			set := loadLayouts(store.New(path, nil), logging.NopLogger())
			if len(set.Layouts) != tt.wantCount {
				t.Fatalf("got %d layouts, want %d", len(set.Layouts), tt.wantCount)
			}
			if set.Layouts[0].Name != tt.wantFirst {
				t.Errorf("first layout = %q, want %q", set.Layouts[0].Name, tt.wantFirst)
			}
		})
	}
}
