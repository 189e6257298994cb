package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/eschmidt42/hardspheres-2d/internal/engine"
	"github.com/eschmidt42/hardspheres-2d/internal/gas"
)

// Store persists runs on disk, one directory per run holding
// metadata.json and states.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata carries everything needed to reconstruct the run's states
// from the CSV: per-particle radii and masses plus the domain. Metrics
// are the run's summary values.
type RunMetadata struct {
	ID          string             `json:"id"`
	Label       string             `json:"label"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	N           int                `json:"n"`
	Bounds      gas.Bounds         `json:"bounds"`
	Radii       []float64          `json:"radii"`
	Masses      []float64          `json:"masses"`
	Resolutions int                `json:"resolutions"`
	WallImpulse float64            `json:"wall_impulse"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes one run. The run ID is label plus a nanosecond timestamp,
// so rapid consecutive saves cannot collide.
func (s *Store) Save(label string, dt, duration float64, seed int64, result *engine.Result) (string, error) {
	if len(result.States) == 0 {
		return "", fmt.Errorf("storage: refusing to save a run with no states")
	}

	runID := fmt.Sprintf("%s_%d", label, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	first := result.States[0]
	meta := RunMetadata{
		ID:          runID,
		Label:       label,
		Timestamp:   time.Now(),
		Seed:        seed,
		Dt:          dt,
		Duration:    duration,
		N:           first.N(),
		Bounds:      first.Bounds,
		Radii:       first.Radius,
		Masses:      first.Mass,
		Resolutions: result.Resolutions,
		WallImpulse: result.WallImpulse,
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time"}
	for i := 0; i < first.N(); i++ {
		header = append(header,
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, st := range result.States {
		row := make([]string, 0, 1+4*st.N())
		row = append(row, formatFloat(result.Times[i]))
		for j := 0; j < st.N(); j++ {
			row = append(row,
				formatFloat(st.Pos[j].X), formatFloat(st.Pos[j].Y),
				formatFloat(st.Vel[j].X), formatFloat(st.Vel[j].Y))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 17, 64)
}

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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStates reconstructs the run's trajectory from states.csv, attaching
// the radii, masses and bounds recorded in the metadata. Each returned
// state owns its slices.
func (s *Store) LoadStates(runID string) ([]*gas.State, []float64, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []*gas.State{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([]*gas.State, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) != 1+4*meta.N {
			return nil, nil, fmt.Errorf("storage: run %s: row has %d fields, want %d",
				runID, len(record), 1+4*meta.N)
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("storage: run %s: bad time %q: %w", runID, record[0], err)
		}

		st := &gas.State{
			Pos:    make([]gas.Vec2, meta.N),
			Vel:    make([]gas.Vec2, meta.N),
			Radius: append([]float64(nil), meta.Radii...),
			Mass:   append([]float64(nil), meta.Masses...),
			Bounds: meta.Bounds,
			Time:   t,
		}
		for j := 0; j < meta.N; j++ {
			st.Pos[j].X, err = strconv.ParseFloat(record[1+4*j], 64)
			if err == nil {
				st.Pos[j].Y, err = strconv.ParseFloat(record[2+4*j], 64)
			}
			if err == nil {
				st.Vel[j].X, err = strconv.ParseFloat(record[3+4*j], 64)
			}
			if err == nil {
				st.Vel[j].Y, err = strconv.ParseFloat(record[4+4*j], 64)
			}
			if err != nil {
				return nil, nil, fmt.Errorf("storage: run %s: bad value for particle %d: %w", runID, j, err)
			}
		}

		times = append(times, t)
		states = append(states, st)
	}

	return states, times, nil
}
