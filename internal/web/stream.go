// pattern: Imperative Shell

package web

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const streamWriteTimeout = 5 * time.Second

// handleStream upgrades to a websocket and pushes the active layout as JSON
// on connect and after every change. Client messages are ignored.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	// Restrict to localhost origins to prevent cross-origin WebSocket attacks.
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"127.0.0.1:*", "localhost:*"},
	})
	if err != nil {
		s.logger.Error("websocket accept failed", "error", err)
		return
	}
	defer func() { _ = conn.CloseNow() }()

	// Do not use r.Context() after Accept; CloseRead drains the client side
	// and cancels ctx when the peer goes away.
	ctx := conn.CloseRead(context.Background())

	ch, _ := s.changes.Subscribe()
	defer s.changes.Unsubscribe(ch)

	s.logger.Info("layout stream connected", "remote", r.RemoteAddr)
	defer s.logger.Info("layout stream disconnected", "remote", r.RemoteAddr)

	if err := s.pushActive(ctx, conn); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.closing:
			_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		case <-ch:
			if err := s.pushActive(ctx, conn); err != nil {
				return
			}
		}
	}
}

func (s *Server) pushActive(ctx context.Context, conn *websocket.Conn) error {
	ctx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, s.session.Active())
}
