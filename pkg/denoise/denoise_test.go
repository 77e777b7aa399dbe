package denoise

import "testing"

func TestSmoothGridLeavesNonSquareSlicesUntouched(t *testing.T) {
	samples := []float64{1, 2, 3, 4, 5, 6}
	want := append([]float64(nil), samples...)
	SmoothGrid(samples, 3, 2, 1)
	for i := range samples {
		if samples[i] != want[i] {
			t.Errorf("expected non-square slice to be left alone, index %d: got %f want %f", i, samples[i], want[i])
		}
	}
}

func TestSmoothGridPreservesLength(t *testing.T) {
	nx, ny, nz := 8, 8, 3
	samples := make([]float64, nx*ny*nz)
	for i := range samples {
		samples[i] = float64(i % 7)
	}
	before := len(samples)
	SmoothGrid(samples, nx, ny, nz)
	if len(samples) != before {
		t.Fatalf("SmoothGrid changed slice length: got %d want %d", len(samples), before)
	}
}
