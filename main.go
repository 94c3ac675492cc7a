// pattern: Imperative Shell
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"framedock/internal/cli"
	"framedock/internal/config"
	"framedock/internal/content"
	"framedock/internal/events"
	"framedock/internal/instance"
	"framedock/internal/layout"
	"framedock/internal/logging"
	"framedock/internal/session"
	"framedock/internal/store"
	"framedock/internal/tui"
	"framedock/internal/web"
)

var version = "dev"

func main() {
	// Stop parsing flags after the first non-flag arg (the subcommand),
	// so that flags after a subcommand are handled by the subcommand.
	flag.CommandLine.SetInterspersed(false)

	configDir := flag.StringP("config-dir", "c", "", "config directory (default: ~/.config/framedock)")

	// Override flag.Usage before Parse so --help uses the CLI app's help
	flag.Usage = func() {
		app := cli.BuildApp(version, *configDir)
		app.PrintHelp(os.Stderr)
		flag.PrintDefaults()
	}

	flag.Parse()

	app := cli.BuildApp(version, *configDir)
	if app.Execute(flag.Args()) {
		runTUI(*configDir)
	}
}

// newLogManager writes logs next to the layouts and keeps recent entries
// for the Logs frame.
func newLogManager(dataDir string, cfg config.Config) (*logging.Manager, error) {
	return logging.NewManager(logging.Config{
		FilePath:   filepath.Join(dataDir, "framedock.log"),
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Level:      cfg.LogLevel,
		RingSize:   500,
	})
}

// loadLayouts reads the store, falling back to the built-in layouts when
// the file cannot be used. Repaired layouts are logged and kept.
func loadLayouts(st *store.Store, logger *logging.ScopedLogger) layout.Set {
	set, err := st.Load()
	switch {
	case err == nil:
	case store.Recoverable(err):
		logger.Warn("repaired invalid layouts", "path", st.Path(), "error", err)
	default:
		logger.Error("failed to load layouts, using defaults", "path", st.Path(), "error", err)
	}
	return set
}

// runTUI launches the interactive editor.
func runTUI(configDir string) {
	dataDir := cli.ResolveDataDir(configDir)

	cfg, err := config.LoadFromDir(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}

	// Acquire single-instance lock
	fl, err := instance.Lock(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer instance.Cleanup(dataDir, fl)

	logManager, err := newLogManager(dataDir, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logManager.Close() }()

	appLogger := logManager.For("app")
	appLogger.Info("application starting", "version", version, "data_dir", dataDir)

	st := store.New(cfg.ResolveLayoutsPath(dataDir), logManager.For("store"))
	sess := session.New(loadLayouts(st, appLogger), logManager.For("session"))
	registry := content.Default()

	model := tui.NewModel(tui.Options{
		Session:      sess,
		Store:        st,
		Registry:     registry,
		Logs:         logManager.Sink(),
		Logger:       logManager.For("tui"),
		Theme:        cfg.Theme,
		KeyboardStep: cfg.KeyboardStep,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Web server always starts (ephemeral port if not configured)
	webServer := web.New(
		web.Config{
			Bind:          cfg.Web.Bind,
			Port:          cfg.Web.Port,
			Theme:         cfg.Theme,
			PreviewWidth:  cfg.Export.Width,
			PreviewHeight: cfg.Export.Height,
		},
		sess,
		registry,
		func(msg any) { p.Send(msg) },
		logManager,
	)
	ln, err := webServer.Listen()
	if err != nil {
		appLogger.Error("web server listen error", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Write port file for CLI discovery
	if err := instance.WritePort(dataDir, webServer.Addr()); err != nil {
		appLogger.Error("failed to write port file", "error", err)
	}

	webURL := fmt.Sprintf("http://%s", webServer.Addr())
	go func() {
		p.Send(events.WebListenURLMsg{URL: webURL})
	}()

	go func() {
		if err := webServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			appLogger.Error("web server error", "error", err)
		}
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := webServer.Shutdown(ctx); err != nil {
			appLogger.Error("web server shutdown error", "error", err)
		}
	}()

	// Pick up edits other processes make to the layouts file
	watchCtx, stopWatching := context.WithCancel(context.Background())
	defer stopWatching()
	watcher, err := store.NewWatcher(st, func(set layout.Set, err error) {
		sess.Restore(set)
		p.Send(events.StoreReloadedMsg{Err: err})
	})
	if err != nil {
		appLogger.Warn("layouts watcher unavailable (continuing without reload)", "error", err)
	} else {
		go func() { _ = watcher.Run(watchCtx) }()
	}

	if _, err := p.Run(); err != nil {
		appLogger.Error("application exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}

	if _, err := st.Save(sess.Snapshot()); err != nil {
		appLogger.Error("failed to save layouts on exit", "error", err)
	}
	appLogger.Info("application stopped")
}
