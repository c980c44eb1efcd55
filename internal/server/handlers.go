package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/wsyqhh/Accessibility-Service/internal/action"
	"github.com/wsyqhh/Accessibility-Service/internal/model"
	"github.com/wsyqhh/Accessibility-Service/internal/platform"
)

// screenResponse is the GET /screen body. Before the first hierarchy event
// it is {ts: now, rev: 0, pkg: null, nodes: []}.
type screenResponse struct {
	TS    int64            `json:"ts"`
	Rev   uint64           `json:"rev"`
	Pkg   *string          `json:"pkg"`
	Nodes []model.FlatNode `json:"nodes"`
}

// okResponse is the envelope for every handled mutating request. A failed or
// unsupported action is ok=false with status 200, never a 5xx.
type okResponse struct {
	OK bool `json:"ok"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"rev":    s.store.Revision(),
	})
}

func (s *Server) handleScreen(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Current()
	writeJSON(w, http.StatusOK, screenResponse{
		TS:    snap.Captured.UnixMilli(),
		Rev:   snap.Revision,
		Pkg:   snap.Package,
		Nodes: model.Flatten(snap.Root),
	})
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		clientError(w, "missing text")
		return
	}
	ok := s.exec.ClickLabel(r.Context(), s.store.Current().Root, text)
	writeJSON(w, http.StatusOK, okResponse{OK: ok})
}

func (s *Server) handleTap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, err := intParam(q, "x")
	if err != nil {
		clientError(w, err.Error())
		return
	}
	y, err := intParam(q, "y")
	if err != nil {
		clientError(w, err.Error())
		return
	}
	ok := s.exec.Tap(r.Context(), x, y)
	writeJSON(w, http.StatusOK, okResponse{OK: ok})
}

func (s *Server) handleSwipe(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	coords := make(map[string]int, 4)
	for _, name := range []string{"x1", "y1", "x2", "y2"} {
		v, err := intParam(q, name)
		if err != nil {
			clientError(w, err.Error())
			return
		}
		coords[name] = v
	}

	dur := action.DefaultSwipeDuration
	if raw := q.Get("dur"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil {
			clientError(w, "missing or non-integer dur")
			return
		}
		dur = time.Duration(ms) * time.Millisecond
	}

	ok := s.exec.Swipe(r.Context(),
		coords["x1"], coords["y1"], coords["x2"], coords["y2"], dur)
	writeJSON(w, http.StatusOK, okResponse{OK: ok})
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	// An unrecognized (or missing) name is ok=false, not a client error.
	name := r.URL.Query().Get("name")
	ok := s.exec.Key(r.Context(), name)
	writeJSON(w, http.StatusOK, okResponse{OK: ok})
}

func (s *Server) handleScreenshot(w http.ResponseWriter, r *http.Request) {
	if s.shots == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "screenshot not supported by this backend",
		})
		return
	}

	q := r.URL.Query()
	opts := platform.ScreenshotOptions{Format: q.Get("format")}
	if raw := q.Get("scale"); raw != "" {
		scale, err := strconv.ParseFloat(raw, 64)
		if err != nil || scale <= 0 || scale > 1 {
			clientError(w, "scale must be a number in (0, 1]")
			return
		}
		opts.Scale = scale
	}
	if raw := q.Get("quality"); raw != "" {
		quality, err := strconv.Atoi(raw)
		if err != nil {
			clientError(w, "missing or non-integer quality")
			return
		}
		opts.Quality = quality
	}

	data, err := s.shots.Capture(r.Context(), opts)
	if err != nil {
		s.log.Error("screenshot capture failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "capture failed: " + err.Error(),
		})
		return
	}

	mimeType := "image/png"
	if opts.Format == "jpg" || opts.Format == "jpeg" {
		mimeType = "image/jpeg"
	}
	w.Header().Set("Content-Type", mimeType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// intParam reads a required integer query parameter. The error message is
// the 400 body text.
func intParam(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing or non-integer %s", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("missing or non-integer %s", name)
	}
	return v, nil
}

func clientError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}
