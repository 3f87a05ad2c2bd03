package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/fdtd2d/internal/config"
	"github.com/san-kum/fdtd2d/internal/experiment"
	"github.com/san-kum/fdtd2d/internal/fdtd"
)

const (
	metadataFile = "metadata.json"
	fieldFile    = "field.csv"
	seriesFile   = "series.csv"
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
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Nx        int                `json:"nx"`
	Ny        int                `json:"ny"`
	Peak      Float            `json:"peak"`
	Energy    Float            `json:"energy"`
	Flux      *Float           `json:"flux,omitempty"`
	Warnings  []string         `json:"warnings,omitempty"`
	Metrics   map[string]Float `json:"metrics"`
	Config    *config.Config   `json:"config"`
}

// Save writes a run directory named by a fresh identifier.
func (s *Store) Save(result *experiment.Result) (string, error) {
	name := "run"
	if result.Config != nil && result.Config.Name != "" {
		name = result.Config.Name
	}
	runID := fmt.Sprintf("%s_%s", name, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  name,
		Timestamp: time.Now(),
		Dt:        result.Dt,
		Duration:  result.Time,
		Steps:     result.Steps,
		Nx:        result.Field.Nx,
		Ny:        result.Field.Ny,
		Peak:      Float(result.Peak),
		Energy:    Float(result.Energy),
		Warnings:  result.Warnings,
		Metrics:   toFloatMap(result.Metrics),
		Config:    result.Config,
	}
	if result.HasFlux {
		flux := Float(result.Flux)
		meta.Flux = &flux
	}

	if err := writeRun(runDir, meta, result); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, result *experiment.Result) error {
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return err
	}
	if err := writeField(filepath.Join(runDir, fieldFile), result.Field); err != nil {
		return err
	}
	return writeSeries(filepath.Join(runDir, seriesFile), result)
}

func writeJSON(path string, v any) error {
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
	return strconv.FormatFloat(v, 'g', 17, 64)
}

// writeField stores Hz with one x-row per line.
func writeField(path string, field fdtd.Field2D) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, row := range field.Rows() {
		record := make([]string, len(row))
		for j, v := range row {
			record[j] = formatFloat(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeSeries(path string, result *experiment.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"time", "hz"}
	if result.HasFlux {
		header = append(header, "flux")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, t := range result.Times {
		row := []string{formatFloat(t), formatFloat(result.ProbeHz[i])}
		if result.HasFlux && i < len(result.FluxSum) {
			row = append(row, formatFloat(result.FluxSum[i]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadField reads the final Hz of a run.
func (s *Store) LoadField(runID string) (fdtd.Field2D, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, fieldFile))
	if err != nil {
		return fdtd.Field2D{}, err
	}

	rows := make([][]float64, len(records))
	for i, record := range records {
		rows[i] = make([]float64, len(record))
		for j, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return fdtd.Field2D{}, fmt.Errorf("storage: %s row %d: %w", fieldFile, i, err)
			}
			rows[i][j] = v
		}
	}
	return fdtd.FieldFromRows(rows)
}

// Series is the per-step record of a run.
type Series struct {
	Times []float64
	Hz    []float64
	Flux  []float64
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}

	series := &Series{}
	if len(records) < 2 {
		return series, nil
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}

		vals := make([]float64, len(record))
		for j, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: %s line %d: %w", seriesFile, i+1, err)
			}
			vals[j] = v
		}
		series.Times = append(series.Times, vals[0])
		series.Hz = append(series.Hz, vals[1])
		if len(vals) > 2 {
			series.Flux = append(series.Flux, vals[2])
		}
	}

	return series, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
