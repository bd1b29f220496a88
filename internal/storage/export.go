package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/mechsim/internal/physics"
)

type ExportData struct {
	Run          RunMetadata                          `json:"run"`
	Energy       []physics.EnergySample               `json:"energy"`
	Trajectories map[string][]physics.TrajectoryPoint `json:"trajectories"`
}

// ExportJSON writes a saved run and its series to w as one document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	energy, err := s.LoadEnergy(runID)
	if err != nil {
		return err
	}
	traj, err := s.LoadTrajectories(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: *meta, Energy: energy, Trajectories: traj})
}
