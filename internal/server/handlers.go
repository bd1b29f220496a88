package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v5"

	"github.com/san-kum/mechsim/internal/physics"
	"github.com/san-kum/mechsim/internal/scenario"
	"github.com/san-kum/mechsim/internal/service"
)

const maxBody = 1 << 20

type simulationResponse struct {
	Success             bool                   `json:"success"`
	WorldState          *physics.WorldSnapshot `json:"world_state,omitempty"`
	ScenarioDescription string                 `json:"scenario_description,omitempty"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// writeJSON marshals v before writing the header. A value that cannot be
// encoded is answered with a 500 and a detail.
func (s *Server) writeJSON(c *echo.Context, status int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode response", "path", (*c).Request().URL.Path, "error", err)
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorResponse{Detail: "encode response: " + err.Error()})
	}
	return (*c).JSONBlob(status, data)
}

func (s *Server) writeError(c *echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", (*c).Request().URL.Path, "error", err)
	}
	return s.writeJSON(c, status, errorResponse{Detail: err.Error()})
}

func (s *Server) reply(c *echo.Context, snap *physics.WorldSnapshot, err error) error {
	if err != nil {
		return s.writeError(c, err)
	}
	return s.writeJSON(c, http.StatusOK, simulationResponse{Success: true, WorldState: snap})
}

// decode reads a JSON body into v. An empty body leaves v untouched so
// prefilled defaults survive.
func decode(c *echo.Context, v any) error {
	err := json.NewDecoder(io.LimitReader((*c).Request().Body, maxBody)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrBadRequest, err)
}

func (s *Server) handleRoot(c *echo.Context) error {
	return s.writeJSON(c, http.StatusOK, map[string]string{
		"message": "Mechanics Simulation API",
		"version": "1.0.0",
	})
}

func (s *Server) handleHealth(c *echo.Context) error {
	return s.writeJSON(c, http.StatusOK, statusResponse{Status: "healthy"})
}

func (s *Server) handleSimulate(c *echo.Context) error {
	var req struct {
		ProblemText string `json:"problem_text"`
	}
	if err := decode(c, &req); err != nil {
		return s.writeError(c, err)
	}
	snap, err := s.svc.CreateFromText((*c).Request().Context(), req.ProblemText)
	if err != nil {
		return s.writeError(c, err)
	}
	resp := simulationResponse{Success: true, WorldState: snap}
	if sc, err := s.svc.Scenario(); err == nil {
		resp.ScenarioDescription = sc.Description
	}
	return s.writeJSON(c, http.StatusOK, resp)
}

func (s *Server) handlePreset(c *echo.Context) error {
	var req struct {
		PresetName string             `json:"preset_name"`
		Parameters map[string]float64 `json:"parameters"`
	}
	if err := decode(c, &req); err != nil {
		return s.writeError(c, err)
	}
	snap, err := s.svc.CreatePreset(req.PresetName, req.Parameters)
	return s.reply(c, snap, err)
}

func (s *Server) handlePresets(c *echo.Context) error {
	out := make(map[string]map[string]float64)
	for _, name := range scenario.PresetNames() {
		defaults, err := scenario.PresetDefaults(name)
		if err != nil {
			return s.writeError(c, err)
		}
		out[name] = defaults
	}
	return s.writeJSON(c, http.StatusOK, out)
}

func (s *Server) handleStep(c *echo.Context) error {
	req := struct {
		NumSteps int `json:"num_steps"`
	}{NumSteps: 1}
	if err := decode(c, &req); err != nil {
		return s.writeError(c, err)
	}
	snap, err := s.svc.Step(req.NumSteps)
	return s.reply(c, snap, err)
}

func (s *Server) handleStepOnce(c *echo.Context) error {
	snap, err := s.svc.StepOnce()
	return s.reply(c, snap, err)
}

func (s *Server) handleAddObject(c *echo.Context) error {
	spec := service.BodySpec{
		Mass:   1,
		Radius: 0.5,
		Label:  "Object",
		Color:  "#3498db",
		Shape:  string(physics.ShapeCircle),
		Width:  1,
		Height: 1,
	}
	if err := decode(c, &spec); err != nil {
		return s.writeError(c, err)
	}
	snap, err := s.svc.AddBody(spec)
	return s.reply(c, snap, err)
}

type objectRef struct {
	ObjectID string `json:"object_id"`
}

func (s *Server) handleRemoveObject(c *echo.Context) error {
	var req objectRef
	if err := decode(c, &req); err != nil {
		return s.writeError(c, err)
	}
	snap, err := s.svc.RemoveBody(req.ObjectID)
	return s.reply(c, snap, err)
}

func (s *Server) handleUpdate(c *echo.Context) error {
	var req struct {
		objectRef
		Parameter string `json:"parameter"`
		Value     any    `json:"value"`
	}
	if err := decode(c, &req); err != nil {
		return s.writeError(c, err)
	}
	snap, err := s.svc.UpdateParameter(req.ObjectID, req.Parameter, req.Value)
	return s.reply(c, snap, err)
}

func (s *Server) handleUpdateWorld(c *echo.Context) error {
	var req service.WorldUpdate
	if err := decode(c, &req); err != nil {
		return s.writeError(c, err)
	}
	snap, err := s.svc.UpdateWorld(req)
	return s.reply(c, snap, err)
}

func (s *Server) handleCircularMotion(c *echo.Context) error {
	req := struct {
		objectRef
		service.CircularSettings
	}{CircularSettings: service.CircularSettings{Enabled: true}}
	if err := decode(c, &req); err != nil {
		return s.writeError(c, err)
	}
	snap, err := s.svc.SetCircularMotion(req.ObjectID, req.CircularSettings)
	return s.reply(c, snap, err)
}

// handleCircularRadius accepts object_id and radius either as query
// parameters or in a JSON body.
func (s *Server) handleCircularRadius(c *echo.Context) error {
	var req struct {
		objectRef
		Radius *float64 `json:"radius"`
	}
	q := (*c).Request().URL.Query()
	if q.Has("object_id") || q.Has("radius") {
		req.ObjectID = q.Get("object_id")
		rad, err := strconv.ParseFloat(q.Get("radius"), 64)
		if err != nil {
			return s.writeError(c, fmt.Errorf("%w: radius %q", ErrBadRequest, q.Get("radius")))
		}
		req.Radius = &rad
	} else if err := decode(c, &req); err != nil {
		return s.writeError(c, err)
	}
	if req.Radius == nil {
		return s.writeError(c, fmt.Errorf("%w: radius is required", ErrBadRequest))
	}
	snap, err := s.svc.SetCircularRadius(req.ObjectID, *req.Radius)
	return s.reply(c, snap, err)
}

func (s *Server) handleCollisionSettings(c *echo.Context) error {
	req := struct {
		objectRef
		CollisionType string  `json:"collision_type"`
		Restitution   float64 `json:"restitution"`
	}{Restitution: 1}
	if err := decode(c, &req); err != nil {
		return s.writeError(c, err)
	}
	snap, err := s.svc.SetCollisionSettings(req.ObjectID, req.CollisionType, req.Restitution)
	return s.reply(c, snap, err)
}

func (s *Server) handleReset(c *echo.Context) error {
	snap, err := s.svc.Reset()
	return s.reply(c, snap, err)
}

func (s *Server) handleStart(c *echo.Context) error {
	if err := s.svc.Start(); err != nil {
		return s.writeError(c, err)
	}
	return s.writeJSON(c, http.StatusOK, statusResponse{Status: "started"})
}

func (s *Server) handleStop(c *echo.Context) error {
	if err := s.svc.Stop(); err != nil {
		return s.writeError(c, err)
	}
	return s.writeJSON(c, http.StatusOK, statusResponse{Status: "stopped"})
}

func (s *Server) handleState(c *echo.Context) error {
	snap, err := s.svc.State()
	if errors.Is(err, service.ErrNoSimulation) {
		return s.writeJSON(c, http.StatusNotFound, errorResponse{Detail: "No active simulation"})
	}
	if err != nil {
		return s.writeError(c, err)
	}
	return s.writeJSON(c, http.StatusOK, snap)
}

func (s *Server) handleMetrics(c *echo.Context) error {
	m, err := s.svc.Metrics()
	if err != nil {
		return s.writeError(c, err)
	}
	return s.writeJSON(c, http.StatusOK, m)
}
