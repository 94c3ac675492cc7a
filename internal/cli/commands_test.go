// pattern: Imperative Shell
package cli

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"framedock/internal/geom"
	"framedock/internal/instance"
	"framedock/internal/layout"
	"framedock/internal/store"
)

func writeLayouts(t *testing.T, dir string, set layout.Set) {
	t.Helper()
	if _, err := store.New(filepath.Join(dir, "layouts.yaml"), nil).Save(set); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

func TestResolveDataDir(t *testing.T) {
	if got := ResolveDataDir("/tmp/fd"); got != "/tmp/fd" {
		t.Errorf("ResolveDataDir(/tmp/fd) = %s", got)
	}

	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := ResolveDataDir(""); got != filepath.Join("/xdg", "framedock") {
		t.Errorf("ResolveDataDir(\"\") = %s", got)
	}
}

func TestBuildApp_RegistersCommands(t *testing.T) {
	app := BuildApp("1.0.0", t.TempDir())

	for _, name := range []string{"show", "export", "validate", "reset", "cleanup", "version"} {
		if _, ok := app.commands[name]; !ok {
			t.Errorf("command %s not registered", name)
		}
	}
	group, ok := app.groups["layout"]
	if !ok {
		t.Fatal("layout group not registered")
	}
	for _, name := range []string{"list", "active", "select", "drag", "assign", "preview"} {
		cmd, ok := group.Commands[name]
		if !ok {
			t.Errorf("layout %s not registered", name)
			continue
		}
		if !cmd.RequiresInstance {
			t.Errorf("layout %s should require an instance", name)
		}
	}
}

func TestRunShow(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	if err := runShow(dir, []string{"--width", "21", "--height", "5"}, &out); err != nil {
		t.Fatalf("runShow() error = %v", err)
	}
	lines := strings.Split(out.String(), "\n")
	if lines[0] != "Default" {
		t.Errorf("first line = %q, want the layout name", lines[0])
	}
	if !strings.HasPrefix(lines[1], "+") || !strings.Contains(lines[2], "Graph") {
		t.Errorf("sketch missing:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Inspector") {
		t.Errorf("table missing:\n%s", out.String())
	}
}

func TestRunShow_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown layout", args: []string{"--layout", "Nope"}, want: `no layout named "Nope"`},
		{name: "tiny grid", args: []string{"--width", "1"}, want: "at least 2x2"},
		{name: "bad flag", args: []string{"--bogus"}, want: "bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runShow(t.TempDir(), tt.args, &bytes.Buffer{})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("runShow() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestRunShow_NamedLayout(t *testing.T) {
	dir := t.TempDir()
	writeLayouts(t, dir, layout.DefaultSet())

	var out bytes.Buffer
	if err := runShow(dir, []string{"--layout", "Quad"}, &out); err != nil {
		t.Fatalf("runShow() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "Quad\n") || !strings.Contains(out.String(), "(select)") {
		t.Errorf("output =\n%s", out.String())
	}
}

func TestRunExport(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.png")

	var out bytes.Buffer
	if err := runExport(dir, []string{"--out", target, "--width", "200", "--height", "120"}, &out); err != nil {
		t.Fatalf("runExport() error = %v", err)
	}
	if !strings.Contains(out.String(), "(200x120)") {
		t.Errorf("output = %q", out.String())
	}

	f, err := os.Open(target)
	if err != nil {
		t.Fatalf("open png: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 120 {
		t.Errorf("bounds = %v, want 200x120", b)
	}
}

func TestRunExport_Errors(t *testing.T) {
	dir := t.TempDir()

	if err := runExport(dir, nil, &bytes.Buffer{}); err == nil || !strings.Contains(err.Error(), "--out") {
		t.Errorf("missing --out error = %v", err)
	}

	target := filepath.Join(dir, "small.png")
	if err := runExport(dir, []string{"--out", target, "--width", "4"}, &bytes.Buffer{}); err == nil {
		t.Error("undersized export should fail")
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("failed export should not leave a file behind")
	}
}

func TestRunValidate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var out bytes.Buffer
		if err := runValidate(t.TempDir(), nil, &out); err != nil {
			t.Fatalf("runValidate() error = %v", err)
		}
		if !strings.Contains(out.String(), "2 layouts ok") {
			t.Errorf("output = %q", out.String())
		}
	})

	t.Run("broken tiling", func(t *testing.T) {
		dir := t.TempDir()
		broken := layout.New("Gappy", layout.NewFrame(0, geom.FromRanges(0, 0.5, 0, 1)))
		writeLayouts(t, dir, layout.Set{Layouts: []layout.Layout{layout.DefaultLayout(), broken}})

		var out bytes.Buffer
		err := runValidate(dir, nil, &out)
		if err == nil || !strings.Contains(err.Error(), "1 problem(s) found") {
			t.Fatalf("runValidate() error = %v", err)
		}
		if !strings.Contains(out.String(), `"Gappy"`) {
			t.Errorf("report should name the broken layout: %q", out.String())
		}
	})

	t.Run("unparseable", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "layouts.yaml"), []byte("layouts: [oops"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := runValidate(dir, nil, &bytes.Buffer{}); err == nil {
			t.Error("unparseable file should fail validation")
		}
	})
}

func TestRunReset(t *testing.T) {
	dir := t.TempDir()
	writeLayouts(t, dir, layout.Set{Layouts: []layout.Layout{layout.QuadLayout()}})

	var out bytes.Buffer
	if err := runReset(dir, nil, &out); err != nil {
		t.Fatalf("runReset() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "Wrote default layouts to") {
		t.Errorf("output = %q", out.String())
	}

	set, err := store.New(filepath.Join(dir, "layouts.yaml"), nil).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(set.Layouts) != 2 || set.Layouts[0].Name != "Default" {
		t.Errorf("layouts after reset = %d, first %q", len(set.Layouts), set.Layouts[0].Name)
	}
}

func TestRunReset_RefusesWhileRunning(t *testing.T) {
	dir := t.TempDir()
	fl, err := instance.Lock(dir)
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	defer instance.Cleanup(dir, fl)

	err = runReset(dir, nil, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "instance is running") {
		t.Errorf("runReset() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "layouts.yaml")); !os.IsNotExist(err) {
		t.Error("reset should not write while an instance runs")
	}
}

func TestRunCleanupCommand(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "framedock.port"), []byte("127.0.0.1:1"), 0600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runCleanupCommand(dir, &out); err != nil {
		t.Fatalf("runCleanupCommand() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "framedock.port")); !os.IsNotExist(err) {
		t.Error("stale port file should be removed")
	}

	fl, err := instance.Lock(dir)
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	defer instance.Cleanup(dir, fl)
	if err := runCleanupCommand(dir, &out); err == nil {
		t.Error("cleanup should refuse while an instance holds the lock")
	}
}
