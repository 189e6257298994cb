package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/eschmidt42/hardspheres-2d/internal/engine"
	"github.com/eschmidt42/hardspheres-2d/internal/gas"
)

// ExportData is the self-contained JSON form of a run: geometry, masses
// and the full recorded trajectory.
type ExportData struct {
	Label      string             `json:"label"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	N          int                `json:"n"`
	Bounds     gas.Bounds         `json:"bounds"`
	Radii      []float64          `json:"radii"`
	Masses     []float64          `json:"masses"`
	Times      []float64          `json:"times"`
	Positions  [][]gas.Vec2       `json:"positions"`
	Velocities [][]gas.Vec2       `json:"velocities"`
	Metrics    map[string]float64 `json:"metrics"`
}

func buildExportData(label string, dt, duration float64, result *engine.Result) ExportData {
	data := ExportData{
		Label:      label,
		Dt:         dt,
		Duration:   duration,
		Steps:      len(result.Times),
		Times:      result.Times,
		Positions:  make([][]gas.Vec2, len(result.States)),
		Velocities: make([][]gas.Vec2, len(result.States)),
		Metrics:    result.Metrics,
	}

	if len(result.States) > 0 {
		first := result.States[0]
		data.N = first.N()
		data.Bounds = first.Bounds
		data.Radii = first.Radius
		data.Masses = first.Mass
	}

	for i, st := range result.States {
		data.Positions[i] = st.Pos
		data.Velocities[i] = st.Vel
	}
	return data
}

func encodeJSON(w io.Writer, data ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSON(path, label string, dt, duration float64, result *engine.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return encodeJSON(file, buildExportData(label, dt, duration, result))
}

func ExportJSONStdout(label string, dt, duration float64, result *engine.Result) error {
	return encodeJSON(os.Stdout, buildExportData(label, dt, duration, result))
}
