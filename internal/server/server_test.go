package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v5"

	"github.com/san-kum/mechsim/internal/config"
	"github.com/san-kum/mechsim/internal/parser"
	"github.com/san-kum/mechsim/internal/physics"
	"github.com/san-kum/mechsim/internal/service"
)

func newServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.DefaultConfig()
	cfg.Server.Tick = time.Millisecond
	svc := service.New(cfg.Sim, parser.New(cfg.Parser, logger), logger)
	return New(svc, cfg.Server, logger)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(newServer().Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	resp, err := http.Post(ts.URL+path, "application/json", &buf)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func decodeState(t *testing.T, data []byte) *physics.WorldSnapshot {
	t.Helper()
	var resp simulationResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode: %v (%s)", err, data)
	}
	if !resp.Success || resp.WorldState == nil {
		t.Fatalf("expected success with world_state, got %s", data)
	}
	return resp.WorldState
}

func TestHealthAndRoot(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/", "/health"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestStateWithoutSimulation(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}

	resp2, data := post(t, ts, "/api/step", map[string]int{"num_steps": 1})
	if resp2.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for step, got %d", resp2.StatusCode)
	}
	var e errorResponse
	if err := json.Unmarshal(data, &e); err != nil || e.Detail == "" {
		t.Errorf("expected detail in error body, got %s", data)
	}
}

func TestPresetLifecycle(t *testing.T) {
	ts := newTestServer(t)

	resp, data := post(t, ts, "/api/preset", map[string]any{
		"preset_name": "elastic_collision",
		"parameters":  map[string]float64{"mass1": 3},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, data)
	}
	state := decodeState(t, data)
	if len(state.Objects) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(state.Objects))
	}

	post(t, ts, "/api/start", nil)
	_, data = post(t, ts, "/api/step", map[string]int{"num_steps": 6})
	state = decodeState(t, data)
	if state.Time < 0.09 {
		t.Errorf("expected time to advance, got %f", state.Time)
	}

	_, data = post(t, ts, "/api/reset", nil)
	if state = decodeState(t, data); state.Time != 0 {
		t.Errorf("expected time 0 after reset, got %f", state.Time)
	}
}

func TestSimulateFallback(t *testing.T) {
	ts := newTestServer(t)

	resp, data := post(t, ts, "/api/simulate", map[string]string{
		"problem_text": "A ball is dropped from a height of 20 m",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, data)
	}
	var r simulationResponse
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatal(err)
	}
	if r.ScenarioDescription == "" {
		t.Error("expected scenario description")
	}

	resp, _ = post(t, ts, "/api/simulate", map[string]string{"problem_text": "  "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for empty problem, got %d", resp.StatusCode)
	}
}

func TestErrorMapping(t *testing.T) {
	ts := newTestServer(t)
	post(t, ts, "/api/preset", map[string]any{"preset_name": "projectile_motion"})

	tests := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"unknown preset", "/api/preset", map[string]any{"preset_name": "nope"}, http.StatusBadRequest},
		{"missing body", "/api/remove-object", map[string]string{"object_id": "ghost"}, http.StatusNotFound},
		{"bad mass", "/api/add-object", map[string]any{"mass": -1}, http.StatusBadRequest},
		{"unknown parameter", "/api/update", map[string]any{"object_id": "Projectile", "parameter": "charge", "value": 1}, http.StatusBadRequest},
		{"update missing body", "/api/update", map[string]any{"object_id": "ghost", "parameter": "mass", "value": 1}, http.StatusNotFound},
		{"not circular", "/api/circular-motion-radius", map[string]any{"object_id": "Projectile", "radius": 3}, http.StatusBadRequest},
		{"bad collision type", "/api/collision-settings", map[string]any{"object_id": "Projectile", "collision_type": "sticky"}, http.StatusBadRequest},
		{"zero steps", "/api/step", map[string]int{"num_steps": 0}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := post(t, ts, tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("expected %d, got %d: %s", tt.status, resp.StatusCode, data)
			}
		})
	}

	resp, _ := post(t, ts, "/api/update", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for empty update, got %d", resp.StatusCode)
	}
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/step", strings.NewReader("{not json"))
	raw, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	raw.Body.Close()
	if raw.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed json, got %d", raw.StatusCode)
	}
}

func TestWriteJSON_Unencodable(t *testing.T) {
	srv := newServer()
	srv.e.GET("/inf", func(c *echo.Context) error {
		return srv.writeJSON(c, http.StatusOK, map[string]float64{"energy": math.Inf(1)})
	})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inf", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	var e errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil || e.Detail == "" {
		t.Errorf("expected detail in body, got %q", rec.Body.String())
	}
}

func TestAddObject_OverflowRejected(t *testing.T) {
	ts := newTestServer(t)
	post(t, ts, "/api/preset", map[string]any{"preset_name": "free_fall"})

	resp, data := post(t, ts, "/api/add-object", map[string]any{
		"velocity": map[string]float64{"x": 1e200, "y": 0},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", resp.StatusCode, data)
	}

	get, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatal(err)
	}
	defer get.Body.Close()
	body, _ := io.ReadAll(get.Body)
	if get.StatusCode != http.StatusOK || len(body) == 0 {
		t.Errorf("expected state to stay encodable, got %d %q", get.StatusCode, body)
	}
}

func TestObjectEndpoints(t *testing.T) {
	ts := newTestServer(t)
	post(t, ts, "/api/preset", map[string]any{"preset_name": "free_fall"})

	_, data := post(t, ts, "/api/add-object", map[string]any{
		"mass":     2,
		"position": map[string]float64{"x": 10, "y": 30},
		"velocity": map[string]float64{"x": 1, "y": 0},
		"label":    "Box",
		"shape":    "square",
	})
	state := decodeState(t, data)
	var box *physics.BodySnapshot
	for i := range state.Objects {
		if state.Objects[i].ID == "Box" {
			box = &state.Objects[i]
		}
	}
	if box == nil {
		t.Fatalf("expected Box in %+v", state.Objects)
	}
	if box.Shape != physics.ShapeSquare || box.Radius != 0.5 {
		t.Errorf("unexpected box %+v", box)
	}

	_, data = post(t, ts, "/api/circular-motion", map[string]any{
		"object_id":        "Box",
		"center":           map[string]float64{"x": 50, "y": 50},
		"radius":           10,
		"angular_velocity": 2,
	})
	state = decodeState(t, data)

	resp, data := post(t, ts, "/api/circular-motion-radius?object_id=Box&radius=12", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, data)
	}

	_, data = post(t, ts, "/api/update-world", map[string]any{"gravity_enabled": false})
	if state = decodeState(t, data); state.GravityEnabled {
		t.Error("expected gravity disabled")
	}

	_, data = post(t, ts, "/api/remove-object", map[string]string{"object_id": "Box"})
	if state = decodeState(t, data); len(state.Objects) != 1 {
		t.Errorf("expected 1 object after removal, got %d", len(state.Objects))
	}
}

func TestWebSocketCommands(t *testing.T) {
	ts := newTestServer(t)
	post(t, ts, "/api/preset", map[string]any{"preset_name": "projectile_motion"})

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	read := func() map[string]json.RawMessage {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var m map[string]json.RawMessage
		if err := conn.ReadJSON(&m); err != nil {
			t.Fatalf("read: %v", err)
		}
		return m
	}

	if err := conn.WriteJSON(command{Type: "step"}); err != nil {
		t.Fatal(err)
	}
	if m := read(); m["world_state"] == nil {
		t.Errorf("expected world_state after step, got %v", m)
	}

	conn.WriteJSON(command{Type: "start"})
	for i := 0; i < 3; i++ {
		if m := read(); m["world_state"] == nil {
			t.Fatalf("expected streamed frame, got %v", m)
		}
	}

	conn.WriteJSON(command{Type: "stop"})
	for i := 0; i < 50; i++ {
		m := read()
		if string(m["status"]) == `"stopped"` {
			return
		}
	}
	t.Error("expected stopped status")
}
