package scattered

import (
	"math"
	"testing"
)

func TestEstimateAtSample(t *testing.T) {
	pts := []Point{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	vals := []float64{1, 2, 3, 4}
	params := Params{Range: 2, Sill: 1, Nugget: 0, Model: Gaussian}

	k, err := NewInterpolator(pts, vals, params, 8)
	if err != nil {
		t.Fatalf("NewInterpolator: %v", err)
	}

	for i, p := range pts {
		got := k.Estimate(p.X, p.Y, p.Z)
		if math.Abs(got-vals[i]) > 1e-6 {
			t.Errorf("estimate at sample %d: got %f, want %f", i, got, vals[i])
		}
	}
}

func TestEstimateInterpolatesBetweenSamples(t *testing.T) {
	pts := []Point{{0, 0, 0}, {10, 0, 0}}
	vals := []float64{0, 10}
	params := Params{Range: 20, Sill: 1, Nugget: 0, Model: Exponential}

	k, err := NewInterpolator(pts, vals, params, 8)
	if err != nil {
		t.Fatalf("NewInterpolator: %v", err)
	}

	mid := k.Estimate(5, 0, 0)
	if mid < 0 || mid > 10 {
		t.Errorf("midpoint estimate %f out of sample range [0,10]", mid)
	}
}

func TestMismatchedLengths(t *testing.T) {
	_, err := NewInterpolator([]Point{{0, 0, 0}}, nil, Params{}, 8)
	if err == nil {
		t.Error("expected error for mismatched points/values lengths")
	}
}

func TestFillGrid(t *testing.T) {
	pts := []Point{{0, 0, 0}, {3, 3, 3}}
	vals := []float64{0, 1}
	params := FitVariogram(pts, vals, Gaussian, 1.0)

	k, err := NewInterpolator(pts, vals, params, 8)
	if err != nil {
		t.Fatalf("NewInterpolator: %v", err)
	}

	samples := FillGrid(k, 4, 4, 4, Point{0, 0, 0}, 1.0)
	if len(samples) != 64 {
		t.Fatalf("expected 64 samples, got %d", len(samples))
	}
}
