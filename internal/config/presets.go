package config

import "sort"

var Presets = map[string]*Config{
	"dilute": {
		Dt: 0.01, Duration: 20.0, RecordEvery: 5,
		Gas: GasConfig{
			Rows: 6, Cols: 6, Spacing: 3.0, Jitter: 0.5,
			Radius: 0.4, Mass: 1.0, Temperature: 1.0,
		},
	},
	"dense": {
		Dt: 0.002, Duration: 5.0, RecordEvery: 10,
		Gas: GasConfig{
			Rows: 10, Cols: 10, Spacing: 1.25, Jitter: 0.1,
			Radius: 0.5, Mass: 1.0, Temperature: 1.0,
		},
	},
	"crystal": {
		Dt: 0.005, Duration: 30.0, RecordEvery: 10,
		Gas: GasConfig{
			Rows: 8, Cols: 8, Spacing: 1.2, Jitter: 0.05,
			Radius: 0.5, Mass: 1.0, Temperature: 0.05,
		},
	},
	"hot": {
		Dt: 0.001, Duration: 5.0, RecordEvery: 10,
		Gas: GasConfig{
			Rows: 8, Cols: 8, Spacing: 2.0, Jitter: 0.3,
			Radius: 0.5, Mass: 1.0, Temperature: 10.0,
		},
	},
	"heavy": {
		Dt: 0.01, Duration: 20.0, RecordEvery: 5,
		Gas: GasConfig{
			Rows: 6, Cols: 6, Spacing: 2.5, Jitter: 0.3,
			Radius: 0.6, Mass: 5.0, Temperature: 1.0,
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
