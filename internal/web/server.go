// pattern: Imperative Shell

package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	catppuccin "github.com/catppuccin/go"

	"framedock/internal/content"
	"framedock/internal/logging"
	"framedock/internal/session"
)

// Server is the local HTTP API over the live layout session.
type Server struct {
	httpServer *http.Server
	session    *session.Session
	registry   *content.Registry
	flavor     catppuccin.Flavor
	preview    previewSize
	notifyTUI  func(any)
	logger     *logging.ScopedLogger
	addr       string
	listener   net.Listener
	changes    *changeFeed

	// closing is closed by Shutdown so streaming handlers return.
	closing   chan struct{}
	closeOnce sync.Once
}

// Config holds web server configuration.
type Config struct {
	Bind string
	Port int
	// Theme colors the PNG preview.
	Theme string
	// PreviewWidth and PreviewHeight are the default preview size.
	PreviewWidth  int
	PreviewHeight int
}

type previewSize struct{ width, height int }

// New creates a web server.
// notifyTUI is called after mutations to keep the TUI in sync via p.Send().
// logProvider must implement logging.LoggerProvider (both *logging.Manager and
// *logging.TestLogManager satisfy this interface).
func New(cfg Config, sess *session.Session, registry *content.Registry, notifyTUI func(any), logProvider logging.LoggerProvider) *Server {
	logger := logProvider.For("web")
	addr := fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port)
	if registry == nil {
		registry = content.Default()
	}
	if cfg.PreviewWidth <= 0 {
		cfg.PreviewWidth = 1280
	}
	if cfg.PreviewHeight <= 0 {
		cfg.PreviewHeight = 800
	}

	mux := http.NewServeMux()

	changes := newChangeFeed()
	sess.Subscribe(changes.Publish)

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		session:   sess,
		registry:  registry,
		flavor:    content.Flavor(cfg.Theme),
		preview:   previewSize{width: cfg.PreviewWidth, height: cfg.PreviewHeight},
		notifyTUI: notifyTUI,
		logger:    logger,
		addr:      addr,
		changes:   changes,
		closing:   make(chan struct{}),
	}

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.HandleFunc("GET /api/layouts", s.handleListLayouts)
	mux.HandleFunc("GET /api/layouts/active", s.handleGetActive)
	mux.HandleFunc("POST /api/layouts/select", s.handleSelect)
	mux.HandleFunc("POST /api/layouts/active/drag", s.handleDrag)
	mux.HandleFunc("PUT /api/layouts/active/frames/{id}/type", s.handleSetFrameType)
	mux.HandleFunc("GET /api/layouts/active/preview.png", s.handlePreview)
	mux.HandleFunc("GET /api/layouts/stream", s.handleStream)

	return s
}

// Listen binds the server to its configured address and returns the listener.
// Call Serve() after Listen() to start accepting connections.
// This two-step approach lets callers read the bound address (ephemeral
// port 0) before Serve blocks.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, fmt.Errorf("web server listen: %w", err)
	}
	s.listener = ln
	return ln, nil
}

// Serve accepts connections on the listener. Blocks until the server stops.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("web server started", "addr", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Addr returns the address the server is listening on.
// Only valid after Listen() has been called.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Handler exposes the router for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("web server shutting down")
	s.closeOnce.Do(func() { close(s.closing) })
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
