package boltzmann

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func equalMasses(n int, m float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = m
	}
	return out
}

func TestSampleVelocities_Statistics(t *testing.T) {
	const n = 100000
	rng := rand.New(rand.NewSource(1))

	vels, err := SampleVelocities(rng, equalMasses(n, 1.0), 2, 1.0, DefaultBoltzmannConstant)
	if err != nil {
		t.Fatalf("SampleVelocities failed: %v", err)
	}
	if len(vels) != n || len(vels[0]) != 2 {
		t.Fatalf("shape = (%d, %d), want (%d, 2)", len(vels), len(vels[0]), n)
	}

	// kB*T/m = 1: each component should have mean ~0 and std ~1.
	for d := 0; d < 2; d++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += vels[i][d]
		}
		mean := sum / n

		varSum := 0.0
		for i := 0; i < n; i++ {
			diff := vels[i][d] - mean
			varSum += diff * diff
		}
		std := math.Sqrt(varSum / n)

		if math.Abs(mean) > 0.01 {
			t.Errorf("component %d mean = %v, want within 0.01 of 0", d, mean)
		}
		if math.Abs(std-1.0) > 0.01 {
			t.Errorf("component %d std = %v, want within 1%% of 1.0", d, std)
		}
	}
}

func TestSampleVelocities_StdScalesWithMass(t *testing.T) {
	const n = 50000
	rng := rand.New(rand.NewSource(2))

	// m = 4, T = 1, kB = 1 -> std = 0.5 per component.
	vels, err := SampleVelocities(rng, equalMasses(n, 4.0), 1, 1.0, 1.0)
	if err != nil {
		t.Fatalf("SampleVelocities failed: %v", err)
	}

	varSum := 0.0
	for i := 0; i < n; i++ {
		varSum += vels[i][0] * vels[i][0]
	}
	std := math.Sqrt(varSum / n)

	if math.Abs(std-0.5) > 0.01 {
		t.Errorf("std = %v, want ~0.5 for m=4", std)
	}
}

func TestSampleVelocities_HeterogeneousMasses(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	vels, err := SampleVelocities(rng, []float64{1.0, 2.0}, 2, 1.0, 1.0)
	if err == nil {
		t.Fatal("expected error for heterogeneous masses, got nil")
	}
	if !errors.Is(err, ErrHeterogeneousMasses) {
		t.Errorf("error = %v, want ErrHeterogeneousMasses", err)
	}
	if vels != nil {
		t.Errorf("expected no velocities on error, got %d rows", len(vels))
	}
}

func TestSupportsMasses(t *testing.T) {
	tests := []struct {
		name   string
		masses []float64
		want   error
	}{
		{"equal", []float64{2, 2, 2}, nil},
		{"single", []float64{1.5}, nil},
		{"mixture", []float64{1, 2}, ErrHeterogeneousMasses},
		{"empty", nil, ErrBadParams},
		{"non-positive", []float64{1, 0}, ErrBadParams},
		{"NaN", []float64{1, math.NaN()}, ErrBadParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SupportsMasses(tt.masses)
			if tt.want == nil {
				if err != nil {
					t.Errorf("SupportsMasses = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("SupportsMasses = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSampleVelocities_BadParams(t *testing.T) {
	masses := equalMasses(3, 1)

	tests := []struct {
		name string
		call func() ([][]float64, error)
	}{
		{"nil rng", func() ([][]float64, error) {
			return SampleVelocities(nil, masses, 2, 1, 1)
		}},
		{"zero dim", func() ([][]float64, error) {
			return SampleVelocities(rand.New(rand.NewSource(1)), masses, 0, 1, 1)
		}},
		{"negative temperature", func() ([][]float64, error) {
			return SampleVelocities(rand.New(rand.NewSource(1)), masses, 2, -1, 1)
		}},
		{"zero kB", func() ([][]float64, error) {
			return SampleVelocities(rand.New(rand.NewSource(1)), masses, 2, 1, 0)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.call()
			if !errors.Is(err, ErrBadParams) {
				t.Errorf("error = %v, want ErrBadParams", err)
			}
		})
	}
}

func TestSampleVelocities_SeedReproducible(t *testing.T) {
	masses := equalMasses(100, 1)

	a, err := SampleVelocities(rand.New(rand.NewSource(7)), masses, 2, 1.5, 1)
	if err != nil {
		t.Fatalf("first sample failed: %v", err)
	}
	b, err := SampleVelocities(rand.New(rand.NewSource(7)), masses, 2, 1.5, 1)
	if err != nil {
		t.Fatalf("second sample failed: %v", err)
	}

	for i := range a {
		if a[i][0] != b[i][0] || a[i][1] != b[i][1] {
			t.Fatalf("same seed diverged at row %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSampleVec2(t *testing.T) {
	vels, err := SampleVec2(rand.New(rand.NewSource(5)), 1000, 1.0, 2.0, 1.0)
	if err != nil {
		t.Fatalf("SampleVec2 failed: %v", err)
	}
	if len(vels) != 1000 {
		t.Fatalf("len = %d, want 1000", len(vels))
	}

	// kB*T/m = 2: mean squared speed should be ~2*std^2 = 4.
	sum := 0.0
	for _, v := range vels {
		sum += v.LengthSquared()
	}
	meanSq := sum / 1000

	if math.Abs(meanSq-4.0) > 0.4 {
		t.Errorf("mean squared speed = %v, want ~4", meanSq)
	}

	if _, err := SampleVec2(rand.New(rand.NewSource(5)), 10, -1, 1, 1); err == nil {
		t.Error("expected error for negative mass")
	}
}
