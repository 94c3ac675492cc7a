// pattern: Imperative Shell

package web

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"framedock/internal/events"
	"framedock/internal/export"
	"framedock/internal/geom"
)

// SelectRequest is the body of POST /api/layouts/select.
type SelectRequest struct {
	Index *int `json:"index"`
}

// DragRequest is the body of POST /api/layouts/active/drag.
type DragRequest struct {
	FrameID string  `json:"frame_id"`
	Edge    string  `json:"edge"`
	Delta   float64 `json:"delta"`
}

// FrameTypeRequest is the body of PUT /api/layouts/active/frames/{id}/type.
type FrameTypeRequest struct {
	FrameType *int `json:"frame_type"`
}

// ChangeResponse reports whether a mutation changed anything.
type ChangeResponse struct {
	Changed bool `json:"changed"`
}

// handleListLayouts handles GET /api/layouts.
func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

// handleGetActive handles GET /api/layouts/active.
func (s *Server) handleGetActive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Active())
}

// handleSelect handles POST /api/layouts/select.
// Returns 400 if the index is missing or out of range.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Index == nil {
		writeError(w, http.StatusBadRequest, "index is required")
		return
	}
	if n := len(s.session.Snapshot().Layouts); *req.Index < 0 || *req.Index >= n {
		writeError(w, http.StatusBadRequest, "index out of range")
		return
	}

	changed := s.session.Select(*req.Index)
	if changed {
		s.notify()
	}
	writeJSON(w, http.StatusOK, ChangeResponse{Changed: changed})
}

// handleDrag handles POST /api/layouts/active/drag and returns the
// layout.DragResult. Returns 400 on a bad edge or delta, 404 if the frame
// is not in the active layout.
func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	var req DragRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FrameID == "" {
		writeError(w, http.StatusBadRequest, "frame_id is required")
		return
	}
	edge, err := geom.ParseEdge(req.Edge)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if math.IsNaN(req.Delta) || math.IsInf(req.Delta, 0) {
		writeError(w, http.StatusBadRequest, "delta must be finite")
		return
	}

	res, ok := s.session.DragFrame(req.FrameID, edge, req.Delta)
	if !ok {
		writeError(w, http.StatusNotFound, "frame not found")
		return
	}
	if res.Changed() {
		s.notify()
	}
	writeJSON(w, http.StatusOK, res)
}

// handleSetFrameType handles PUT /api/layouts/active/frames/{id}/type.
// Returns 400 for an unknown content kind, 404 if the frame is not in the
// active layout.
func (s *Server) handleSetFrameType(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req FrameTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FrameType == nil {
		writeError(w, http.StatusBadRequest, "frame_type is required")
		return
	}
	if !s.registry.Known(*req.FrameType) {
		writeError(w, http.StatusBadRequest, "unknown frame_type "+strconv.Itoa(*req.FrameType))
		return
	}
	if !s.session.HasFrame(id) {
		writeError(w, http.StatusNotFound, "frame not found")
		return
	}

	changed := s.session.SetFrameType(id, *req.FrameType)
	if changed {
		s.notify()
	}
	writeJSON(w, http.StatusOK, ChangeResponse{Changed: changed})
}

// handlePreview handles GET /api/layouts/active/preview.png. The width and
// height query parameters default to the configured export size.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	width, ok := queryInt(r, "width", s.preview.width)
	if !ok {
		writeError(w, http.StatusBadRequest, "width must be an integer")
		return
	}
	height, ok := queryInt(r, "height", s.preview.height)
	if !ok {
		writeError(w, http.StatusBadRequest, "height must be an integer")
		return
	}

	var buf bytes.Buffer
	err := export.WritePNG(&buf, s.session.Active(), export.Options{
		Width:    width,
		Height:   height,
		Flavor:   s.flavor,
		Registry: s.registry,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func queryInt(r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}

// notify tells the TUI that the session changed from the web side.
func (s *Server) notify() {
	if s.notifyTUI != nil {
		s.notifyTUI(events.LayoutChangedMsg{Source: "web"})
	}
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
