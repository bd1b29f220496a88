// Package storage persists finished runs as a directory per run holding
// metadata.json, energy.csv and trajectories.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/mechsim/internal/physics"
	"github.com/san-kum/mechsim/internal/sim"
)

// ErrRunNotFound indicates a run id with no metadata on disk.
var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile     = "metadata.json"
	energyFile       = "energy.csv"
	trajectoriesFile = "trajectories.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Scenario      string             `json:"scenario"`
	Description   string             `json:"description,omitempty"`
	Timestamp     time.Time          `json:"timestamp"`
	Dt            float64            `json:"dt"`
	Steps         int                `json:"steps"`
	SimTime       float64            `json:"sim_time"`
	InitialEnergy float64            `json:"initial_energy"`
	EnergyLoss    float64            `json:"energy_loss"`
	Bodies        []string           `json:"bodies"`
	Metrics       map[string]float64 `json:"metrics"`
}

// Run is everything Save writes for one finished simulation.
type Run struct {
	Scenario     string
	Description  string
	Dt           float64
	Result       *sim.Result
	Energy       []physics.EnergySample
	Trajectories map[string][]physics.TrajectoryPoint
}

// Capture collects the energy history and body trajectories of w.
func Capture(scenario, description string, dt float64, w *physics.World, res *sim.Result) Run {
	run := Run{
		Scenario:     scenario,
		Description:  description,
		Dt:           dt,
		Result:       res,
		Energy:       w.Tracker().History(),
		Trajectories: make(map[string][]physics.TrajectoryPoint, w.Len()),
	}
	for _, b := range w.Bodies() {
		run.Trajectories[b.ID] = b.Trajectory()
	}
	return run
}

func (s *Store) Save(run Run) (string, error) {
	if run.Result == nil {
		return "", fmt.Errorf("storage: run has no result")
	}
	runID := fmt.Sprintf("%s_%s", run.Scenario, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Scenario:      run.Scenario,
		Description:   run.Description,
		Timestamp:     time.Now(),
		Dt:            run.Dt,
		Steps:         run.Result.Steps,
		SimTime:       run.Result.Time,
		InitialEnergy: run.Result.InitialEnergy,
		EnergyLoss:    run.Result.EnergyLoss,
		Bodies:        bodyIDs(run.Trajectories),
		Metrics:       run.Result.Metrics,
	}

	if err := writeJSONFile(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeEnergy(filepath.Join(runDir, energyFile), run.Energy); err != nil {
		return "", err
	}
	if err := writeTrajectories(filepath.Join(runDir, trajectoriesFile), run.Trajectories); err != nil {
		return "", err
	}
	return runID, nil
}

func bodyIDs(traj map[string][]physics.TrajectoryPoint) []string {
	ids := make([]string, 0, len(traj))
	for id := range traj {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}

func writeEnergy(path string, samples []physics.EnergySample) error {
	rows := make([][]string, 0, len(samples))
	for _, e := range samples {
		rows = append(rows, []string{
			formatFloat(e.Time),
			formatFloat(e.Kinetic),
			formatFloat(e.Potential),
			formatFloat(e.Mechanical),
		})
	}
	return writeCSV(path, []string{"time", "kinetic", "potential", "mechanical"}, rows)
}

func writeTrajectories(path string, traj map[string][]physics.TrajectoryPoint) error {
	var rows [][]string
	for _, id := range bodyIDs(traj) {
		for _, p := range traj[id] {
			rows = append(rows, []string{id, formatFloat(p.Time), formatFloat(p.X), formatFloat(p.Y)})
		}
	}
	return writeCSV(path, []string{"body", "time", "x", "y"}, rows)
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) readCSV(runID, name string) ([][]string, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}
	return records[1:], nil
}

func parseFloats(fields []string) ([]float64, bool) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// LoadEnergy reads the energy history. Malformed rows are skipped.
func (s *Store) LoadEnergy(runID string) ([]physics.EnergySample, error) {
	records, err := s.readCSV(runID, energyFile)
	if err != nil {
		return nil, err
	}

	samples := make([]physics.EnergySample, 0, len(records))
	for _, rec := range records {
		if len(rec) < 4 {
			continue
		}
		v, ok := parseFloats(rec[:4])
		if !ok {
			continue
		}
		samples = append(samples, physics.EnergySample{Time: v[0], Kinetic: v[1], Potential: v[2], Mechanical: v[3]})
	}
	return samples, nil
}

// LoadTrajectories reads the recorded trajectory of every body.
func (s *Store) LoadTrajectories(runID string) (map[string][]physics.TrajectoryPoint, error) {
	records, err := s.readCSV(runID, trajectoriesFile)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]physics.TrajectoryPoint)
	for _, rec := range records {
		if len(rec) < 4 {
			continue
		}
		v, ok := parseFloats(rec[1:4])
		if !ok {
			continue
		}
		out[rec[0]] = append(out[rec[0]], physics.TrajectoryPoint{Time: v[0], X: v[1], Y: v[2]})
	}
	return out, nil
}
