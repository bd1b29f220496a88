// Package parser turns free-form problem text into scenarios, first through
// a remote text-to-JSON service and otherwise with a local keyword parser.
package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"regexp"
	"strings"

	"github.com/san-kum/mechsim/internal/config"
	"github.com/san-kum/mechsim/internal/scenario"
)

type Parser struct {
	baseURL string
	model   string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

func New(cfg config.ParserConfig, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// RemoteEnabled reports whether an API key is configured.
func (p *Parser) RemoteEnabled() bool { return p.apiKey != "" }

// Parse returns a scenario for text. Remote failures of any kind fall
// back to the local parser, so only blank text is an error.
func (p *Parser) Parse(ctx context.Context, text string) (scenario.Scenario, error) {
	if strings.TrimSpace(text) == "" {
		return scenario.Scenario{}, ErrEmptyProblem
	}

	s, err := p.Remote(ctx, text)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, ErrRemoteDisabled) {
		p.logger.Warn("remote parse failed, using fallback", "err", err)
	}
	return Fallback(text), nil
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Remote asks the text-to-JSON service for a scenario and validates it.
func (p *Parser) Remote(ctx context.Context, text string) (scenario.Scenario, error) {
	if !p.RemoteEnabled() {
		return scenario.Scenario{}, ErrRemoteDisabled
	}

	body, err := json.Marshal(generateRequest{
		Model:  p.model,
		Prompt: buildPrompt(text),
		Stream: false,
		Format: "json",
	})
	if err != nil {
		return scenario.Scenario{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return scenario.Scenario{}, err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return scenario.Scenario{}, fmt.Errorf("POST /generate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return scenario.Scenario{}, fmt.Errorf("POST /generate: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return scenario.Scenario{}, fmt.Errorf("decode /generate: %w", err)
	}
	p.logger.Debug("remote parser response", "bytes", len(out.Response))

	return decodeScenario(out.Response)
}

func decodeScenario(text string) (scenario.Scenario, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return scenario.Scenario{}, err
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return scenario.Scenario{}, fmt.Errorf("%w: %v", ErrNoJSON, err)
	}
	addCircularMotion(doc)

	raw, err = json.Marshal(doc)
	if err != nil {
		return scenario.Scenario{}, err
	}
	var s scenario.Scenario
	if err := json.Unmarshal(raw, &s); err != nil {
		return scenario.Scenario{}, fmt.Errorf("%w: %v", scenario.ErrInvalidScenario, err)
	}
	if s.Description == "" {
		return scenario.Scenario{}, fmt.Errorf("%w: missing description", scenario.ErrInvalidScenario)
	}
	if err := s.Validate(); err != nil {
		return scenario.Scenario{}, err
	}
	return s, nil
}

var (
	fencedJSON = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")
	bracedJSON = regexp.MustCompile(`(?s)\{.*\}`)
)

// ExtractJSON finds a JSON object in text: the whole text, a ```json
// fenced block, or the widest {...} span, in that order.
func ExtractJSON(text string) ([]byte, error) {
	trimmed := strings.TrimSpace(text)
	if json.Valid([]byte(trimmed)) && strings.HasPrefix(trimmed, "{") {
		return []byte(trimmed), nil
	}
	if m := fencedJSON.FindStringSubmatch(text); m != nil && json.Valid([]byte(m[1])) {
		return []byte(m[1]), nil
	}
	if m := bracedJSON.FindString(text); m != "" && json.Valid([]byte(m)) {
		return []byte(m), nil
	}
	return nil, ErrNoJSON
}

// addCircularMotion gives every entity of a circular_motion scenario an
// orbit around the canvas center with its speed as linear velocity.
func addCircularMotion(doc map[string]any) {
	if doc["scenario_type"] != "circular_motion" {
		return
	}
	entities, _ := doc["entities"].([]any)
	for _, item := range entities {
		e, ok := item.(map[string]any)
		if !ok {
			continue
		}
		vel, _ := e["initial_velocity"].(map[string]any)
		vx, _ := vel["x"].(float64)
		vy, _ := vel["y"].(float64)

		radius, ok := e["radius"].(float64)
		if !ok {
			radius = 15
		}
		e["circular_motion"] = map[string]any{
			"center":          map[string]any{"x": 50.0, "y": 50.0},
			"radius":          radius,
			"linear_velocity": math.Hypot(vx, vy),
		}
	}
}
