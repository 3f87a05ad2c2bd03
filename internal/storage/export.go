package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/fdtd2d/internal/experiment"
)

type ExportData struct {
	Scenario string           `json:"scenario"`
	Dt       float64          `json:"dt"`
	Duration float64          `json:"duration"`
	Steps    int              `json:"steps"`
	Nx       int              `json:"nx"`
	Ny       int              `json:"ny"`
	Hz       [][]Float        `json:"hz"`
	Times    []float64        `json:"times"`
	ProbeHz  []Float          `json:"probe_hz"`
	Flux     []Float          `json:"flux,omitempty"`
	Metrics  map[string]Float `json:"metrics"`
}

func newExportData(result *experiment.Result) ExportData {
	data := ExportData{
		Dt:       result.Dt,
		Duration: result.Time,
		Steps:    result.Steps,
		Nx:       result.Field.Nx,
		Ny:       result.Field.Ny,
		Times:    result.Times,
		ProbeHz:  toFloats(result.ProbeHz),
		Flux:     toFloats(result.FluxSum),
		Metrics:  toFloatMap(result.Metrics),
	}
	for _, row := range result.Field.Rows() {
		data.Hz = append(data.Hz, toFloats(row))
	}
	if result.Config != nil {
		data.Scenario = result.Config.Name
	}
	return data
}

func ExportJSON(path string, result *experiment.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, result)
}

// WriteJSON encodes the run as indented JSON.
func WriteJSON(w io.Writer, result *experiment.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(result))
}

// ExportCSV copies the stored field of a run to path.
func (s *Store) ExportCSV(runID, path string) error {
	field, err := s.LoadField(runID)
	if err != nil {
		return err
	}
	return writeField(path, field)
}
