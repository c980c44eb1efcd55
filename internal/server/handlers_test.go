package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wsyqhh/Accessibility-Service/internal/action"
	"github.com/wsyqhh/Accessibility-Service/internal/model"
	"github.com/wsyqhh/Accessibility-Service/internal/platform"
	"github.com/wsyqhh/Accessibility-Service/internal/snapshot"
)

type stubShell struct {
	commands [][]string
	fail     bool
}

func (s *stubShell) Run(_ context.Context, args ...string) error {
	s.commands = append(s.commands, args)
	if s.fail {
		return errors.New("exit status 1")
	}
	return nil
}

type stubGestures struct {
	outcome platform.GestureOutcome
}

func (s *stubGestures) Dispatch(platform.Stroke) (<-chan platform.GestureOutcome, error) {
	ch := make(chan platform.GestureOutcome, 1)
	ch <- s.outcome
	return ch, nil
}

type stubGlobal struct {
	actions []platform.GlobalAction
	result  bool
}

func (s *stubGlobal) Perform(a platform.GlobalAction) bool {
	s.actions = append(s.actions, a)
	return s.result
}

type stubActivator struct{ result bool }

func (s *stubActivator) Activate(context.Context, *model.Node) bool { return s.result }

func newTestServer(store *snapshot.Store, exec *action.Executor) *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New("127.0.0.1:0", store, exec, nil, log)
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestScreen_BeforeAnyEvent(t *testing.T) {
	s := newTestServer(snapshot.NewStore(), &action.Executor{})
	w := do(t, s, http.MethodGet, "/screen")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["rev"] != float64(0) {
		t.Errorf("expected rev 0, got %v", body["rev"])
	}
	if body["pkg"] != nil {
		t.Errorf("expected null pkg, got %v", body["pkg"])
	}
	nodes, ok := body["nodes"].([]any)
	if !ok || len(nodes) != 0 {
		t.Errorf("expected empty nodes array, got %v", body["nodes"])
	}
	if body["ts"] == nil || body["ts"].(float64) <= 0 {
		t.Errorf("expected a current timestamp, got %v", body["ts"])
	}
}

func TestScreen_PublishedHierarchy(t *testing.T) {
	store := snapshot.NewStore()
	root := &model.Node{Bounds: [4]int{0, 0, 1080, 1920}}
	row := &model.Node{Clickable: true, Enabled: true}
	row.AddChild(&model.Node{Text: model.Str("Wi-Fi")})
	root.AddChild(row)
	store.Publish(root, "com.android.settings")

	s := newTestServer(store, &action.Executor{})
	w := do(t, s, http.MethodGet, "/screen")
	body := decodeBody(t, w)

	if body["rev"] != float64(1) {
		t.Errorf("expected rev 1, got %v", body["rev"])
	}
	if body["pkg"] != "com.android.settings" {
		t.Errorf("expected pkg, got %v", body["pkg"])
	}
	nodes := body["nodes"].([]any)
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	first := nodes[0].(map[string]any)
	if first["id"] != float64(0) {
		t.Errorf("expected 0-based ids, got %v", first["id"])
	}
	if first["text"] != nil {
		t.Errorf("absent text must serialize as null, got %v", first["text"])
	}
	last := nodes[2].(map[string]any)
	if last["text"] != "Wi-Fi" {
		t.Errorf("expected leaf text last in BFS order, got %v", last["text"])
	}
}

func TestClick_MissingText(t *testing.T) {
	shell := &stubShell{}
	s := newTestServer(snapshot.NewStore(), &action.Executor{Shell: shell})
	w := do(t, s, http.MethodPost, "/click?text=")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(shell.commands) != 0 {
		t.Error("matcher must not run on missing text")
	}
}

func TestClick_NoMatchIsOKFalse(t *testing.T) {
	store := snapshot.NewStore()
	store.Publish(&model.Node{Text: model.Str("other")}, "com.example")
	s := newTestServer(store, &action.Executor{Activator: &stubActivator{result: true}})

	w := do(t, s, http.MethodPost, "/click?text=missing")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if decodeBody(t, w)["ok"] != false {
		t.Error("expected ok=false for no match")
	}
}

func TestClick_Match(t *testing.T) {
	store := snapshot.NewStore()
	root := &model.Node{}
	row := &model.Node{Clickable: true}
	row.AddChild(&model.Node{Text: model.Str("Settings")})
	root.AddChild(row)
	store.Publish(root, "com.example")

	s := newTestServer(store, &action.Executor{Activator: &stubActivator{result: true}})
	w := do(t, s, http.MethodPost, "/click?text=Settings")
	if decodeBody(t, w)["ok"] != true {
		t.Error("expected ok=true")
	}
}

func TestTap_ValidatesParams(t *testing.T) {
	shell := &stubShell{}
	s := newTestServer(snapshot.NewStore(), &action.Executor{Shell: shell})

	for _, target := range []string{"/tap", "/tap?x=10", "/tap?x=abc&y=20", "/tap?x=1.5&y=20"} {
		w := do(t, s, http.MethodPost, target)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, w.Code)
		}
	}
	if len(shell.commands) != 0 {
		t.Error("executor must not run on invalid input")
	}

	w := do(t, s, http.MethodPost, "/tap?x=540&y=980")
	if w.Code != http.StatusOK || decodeBody(t, w)["ok"] != true {
		t.Errorf("expected ok=true, got %d %s", w.Code, w.Body.String())
	}
}

func TestTap_UnprivilegedGestureFallback(t *testing.T) {
	exec := &action.Executor{
		Shell:    &stubShell{fail: true},
		Gestures: &stubGestures{outcome: platform.GestureCompleted},
	}
	s := newTestServer(snapshot.NewStore(), exec)
	w := do(t, s, http.MethodPost, "/tap?x=540&y=980")
	if w.Code != http.StatusOK || decodeBody(t, w)["ok"] != true {
		t.Errorf("expected ok=true via gesture, got %d %s", w.Code, w.Body.String())
	}

	exec.Gestures = &stubGestures{outcome: platform.GestureCancelled}
	w = do(t, s, http.MethodPost, "/tap?x=540&y=980")
	if w.Code != http.StatusOK || decodeBody(t, w)["ok"] != false {
		t.Errorf("cancelled gesture must be 200 ok=false, got %d %s", w.Code, w.Body.String())
	}
}

func TestSwipe_DefaultDuration(t *testing.T) {
	shell := &stubShell{}
	s := newTestServer(snapshot.NewStore(), &action.Executor{Shell: shell})

	w := do(t, s, http.MethodPost, "/swipe?x1=540&y1=2000&x2=540&y2=800")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := shell.commands[0][6]; got != "300" {
		t.Errorf("expected default 300ms duration, got %s", got)
	}

	w = do(t, s, http.MethodPost, "/swipe?x1=540&y1=2000&x2=540&y2=800&dur=300")
	if got := shell.commands[1][6]; got != "300" {
		t.Errorf("explicit dur=300 must behave like the default, got %s", got)
	}
}

func TestSwipe_MissingCoordinate(t *testing.T) {
	s := newTestServer(snapshot.NewStore(), &action.Executor{Shell: &stubShell{}})
	w := do(t, s, http.MethodPost, "/swipe?x1=540&y1=2000&x2=540")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing y2, got %d", w.Code)
	}
}

func TestKey_MenuFallsBackToRecents(t *testing.T) {
	global := &stubGlobal{result: true}
	exec := &action.Executor{Shell: &stubShell{fail: true}, Global: global}
	s := newTestServer(snapshot.NewStore(), exec)

	w := do(t, s, http.MethodPost, "/key?name=menu")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if decodeBody(t, w)["ok"] != true {
		t.Error("expected the recents fallback result")
	}
	if len(global.actions) != 1 || global.actions[0] != platform.GlobalRecents {
		t.Errorf("expected recents global action, got %v", global.actions)
	}
}

func TestKey_UnrecognizedNameIsOKFalse(t *testing.T) {
	s := newTestServer(snapshot.NewStore(), &action.Executor{Shell: &stubShell{}})
	w := do(t, s, http.MethodPost, "/key?name=volume_up")
	if w.Code != http.StatusOK {
		t.Fatalf("unrecognized key must be 200, got %d", w.Code)
	}
	if decodeBody(t, w)["ok"] != false {
		t.Error("expected ok=false for unrecognized key")
	}
}

func TestRouting_UnknownPathAndMethod(t *testing.T) {
	s := newTestServer(snapshot.NewStore(), &action.Executor{})
	if w := do(t, s, http.MethodGet, "/nope"); w.Code != http.StatusNotFound {
		t.Errorf("unknown path: expected 404, got %d", w.Code)
	}
	if w := do(t, s, http.MethodGet, "/tap?x=1&y=2"); w.Code != http.StatusNotFound {
		t.Errorf("wrong method: expected 404, got %d", w.Code)
	}
	if w := do(t, s, http.MethodPost, "/screen"); w.Code != http.StatusNotFound {
		t.Errorf("wrong method: expected 404, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	store := snapshot.NewStore()
	store.Publish(&model.Node{}, "com.example")
	s := newTestServer(store, &action.Executor{})
	w := do(t, s, http.MethodGet, "/health")
	body := decodeBody(t, w)
	if body["status"] != "ok" || body["rev"] != float64(1) {
		t.Errorf("unexpected health body: %v", body)
	}
}
