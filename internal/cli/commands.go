// pattern: Imperative Shell
package cli

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/multierr"

	"framedock/internal/config"
	"framedock/internal/content"
	"framedock/internal/export"
	"framedock/internal/instance"
	"framedock/internal/layout"
	"framedock/internal/store"
)

// Sketch size used by show when no size is given.
const (
	defaultSketchCols = 60
	defaultSketchRows = 20
)

// ResolveDataDir returns the data directory for config, layouts and
// lock/port files. If configDir is specified, uses that; otherwise uses
// ~/.config/framedock.
func ResolveDataDir(configDir string) string {
	if configDir != "" {
		return configDir
	}
	return config.DefaultDir()
}

// BuildApp creates and configures the CLI application with all commands and groups.
func BuildApp(version string, configDir string) *App {
	app := NewApp(version)

	app.AddCommand(&Command{
		Name:    "show",
		Summary: "Print a text preview of a stored layout",
		Usage:   "Usage: framedock show [--layout name] [--width cols] [--height rows]",
		Run: func(args []string) error {
			return runShow(configDir, args, os.Stdout)
		},
	})

	app.AddCommand(&Command{
		Name:    "export",
		Summary: "Render a stored layout to a PNG file",
		Usage:   "Usage: framedock export --out file.png [--layout name] [--width px] [--height px]",
		Run: func(args []string) error {
			return runExport(configDir, args, os.Stdout)
		},
	})

	app.AddCommand(&Command{
		Name:    "validate",
		Summary: "Check the layouts file for broken tilings",
		Usage:   "Usage: framedock validate",
		Run: func(args []string) error {
			return runValidate(configDir, args, os.Stdout)
		},
	})

	app.AddCommand(&Command{
		Name:    "reset",
		Summary: "Overwrite the layouts file with the built-in layouts",
		Usage:   "Usage: framedock reset",
		Run: func(args []string) error {
			return runReset(configDir, args, os.Stdout)
		},
	})

	app.AddCommand(&Command{
		Name:    "cleanup",
		Summary: "Remove stale lock/port files from a crashed instance",
		Usage:   "Usage: framedock cleanup",
		Run: func(args []string) error {
			return runCleanupCommand(configDir, os.Stdout)
		},
	})

	app.AddCommand(&Command{
		Name:    "version",
		Summary: "Print version and exit",
		Usage:   "Usage: framedock version",
		Run: func(args []string) error {
			fmt.Println(version)
			return nil
		},
	})

	layoutGroup := app.AddGroup("layout", "Inspect and edit the running editor's layout")
	RegisterLayoutCommands(layoutGroup, Delegate{ConfigDir: configDir})

	return app
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// openStore loads the config from the data directory and returns the
// layouts store it points at.
func openStore(configDir string) (*store.Store, config.Config, error) {
	dataDir := ResolveDataDir(configDir)
	cfg, err := config.LoadFromDir(dataDir)
	if err != nil {
		return nil, cfg, fmt.Errorf("load config: %w", err)
	}
	return store.New(cfg.ResolveLayoutsPath(dataDir), nil), cfg, nil
}

// loadLayout returns the named layout, or the active one when name is
// empty. Repaired layouts are fine for previews, so only unrecoverable load
// errors are reported.
func loadLayout(configDir, name string) (layout.Layout, config.Config, error) {
	st, cfg, err := openStore(configDir)
	if err != nil {
		return layout.Layout{}, cfg, err
	}
	set, err := st.Load()
	if err != nil && !store.Recoverable(err) {
		return layout.Layout{}, cfg, err
	}

	if name == "" {
		active := set.Active()
		if active == nil {
			return layout.Layout{}, cfg, fmt.Errorf("%s has no layouts", st.Path())
		}
		return *active, cfg, nil
	}
	i, ok := set.Find(name)
	if !ok {
		return layout.Layout{}, cfg, fmt.Errorf("no layout named %q", name)
	}
	return set.Layouts[i], cfg, nil
}

func runShow(configDir string, args []string, w io.Writer) error {
	fs := newFlagSet("show")
	name := fs.String("layout", "", "layout name (default: the active layout)")
	cols := fs.Int("width", defaultSketchCols, "preview width in columns")
	rows := fs.Int("height", defaultSketchRows, "preview height in rows")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *cols < 2 || *rows < 2 {
		return fmt.Errorf("preview needs at least 2x2 cells, got %dx%d", *cols, *rows)
	}

	l, _, err := loadLayout(configDir, *name)
	if err != nil {
		return err
	}

	reg := content.Default()
	fmt.Fprintf(w, "%s\n", l.Name)
	fmt.Fprint(w, export.Sketch(l, *cols, *rows, reg))
	fmt.Fprintln(w)
	fmt.Fprint(w, export.Table(l, reg))
	return nil
}

func runExport(configDir string, args []string, w io.Writer) error {
	fs := newFlagSet("export")
	out := fs.StringP("out", "o", "", "PNG file to write")
	name := fs.String("layout", "", "layout name (default: the active layout)")
	width := fs.Int("width", 0, "image width in pixels (default from config)")
	height := fs.Int("height", 0, "image height in pixels (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("--out is required")
	}

	l, cfg, err := loadLayout(configDir, *name)
	if err != nil {
		return err
	}
	opts := export.Options{
		Width:    cfg.Export.Width,
		Height:   cfg.Export.Height,
		Flavor:   content.Flavor(cfg.Theme),
		Registry: content.Default(),
	}
	if *width > 0 {
		opts.Width = *width
	}
	if *height > 0 {
		opts.Height = *height
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	if err := export.WritePNG(f, l, opts); err != nil {
		_ = f.Close()
		_ = os.Remove(*out)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", *out, err)
	}

	fmt.Fprintf(w, "Wrote %s (%dx%d)\n", *out, opts.Width, opts.Height)
	return nil
}

func runValidate(configDir string, args []string, w io.Writer) error {
	if err := newFlagSet("validate").Parse(args); err != nil {
		return err
	}
	st, _, err := openStore(configDir)
	if err != nil {
		return err
	}

	set, err := st.Load()
	if err == nil {
		fmt.Fprintf(w, "%s: %d layouts ok\n", st.Path(), len(set.Layouts))
		return nil
	}

	problems := multierr.Errors(err)
	for _, p := range problems {
		fmt.Fprintf(w, "  %v\n", p)
	}
	return fmt.Errorf("%s: %d problem(s) found", st.Path(), len(problems))
}

func runReset(configDir string, args []string, w io.Writer) error {
	if err := newFlagSet("reset").Parse(args); err != nil {
		return err
	}
	if instance.Running(ResolveDataDir(configDir)) {
		return fmt.Errorf("a framedock instance is running; quit it before resetting layouts")
	}

	st, _, err := openStore(configDir)
	if err != nil {
		return err
	}
	if err := st.Reset(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote default layouts to %s\n", st.Path())
	return nil
}

// runCleanupCommand removes stale lock and port files from a crashed instance.
func runCleanupCommand(configDir string, w io.Writer) error {
	dataDir := ResolveDataDir(configDir)

	// Try to acquire the lock to verify no instance is actually running
	fl, err := instance.Lock(dataDir)
	if err != nil {
		return fmt.Errorf("a framedock instance appears to be running; stop it first")
	}
	// We got the lock, so nothing is running.
	instance.Cleanup(dataDir, fl)
	fmt.Fprintln(w, "Cleaned up stale lock and port files.")
	return nil
}
