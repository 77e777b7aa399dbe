package gradient

import (
	"math"
	"testing"
)

type linearField struct {
	nx, ny, nz int
}

func (f linearField) Dims() (int, int, int) { return f.nx, f.ny, f.nz }
func (f linearField) Sample(i, j, k int) float64 {
	return 2*float64(i) + 3*float64(j) + 5*float64(k)
}

func TestAtInteriorMatchesAnalyticGradient(t *testing.T) {
	f := linearField{10, 10, 10}
	gx, gy, gz := At(f, 5, 5, 5)
	if math.Abs(gx-2) > 1e-9 || math.Abs(gy-3) > 1e-9 || math.Abs(gz-5) > 1e-9 {
		t.Errorf("got (%f,%f,%f) want (2,3,5)", gx, gy, gz)
	}
}

func TestAtBoundaryUsesOneSidedDifference(t *testing.T) {
	f := linearField{10, 10, 10}
	gx, gy, gz := At(f, 0, 0, 0)
	if math.Abs(gx-2) > 1e-9 || math.Abs(gy-3) > 1e-9 || math.Abs(gz-5) > 1e-9 {
		t.Errorf("got (%f,%f,%f) want (2,3,5) at origin corner", gx, gy, gz)
	}

	gx, gy, gz = At(f, 9, 9, 9)
	if math.Abs(gx-2) > 1e-9 || math.Abs(gy-3) > 1e-9 || math.Abs(gz-5) > 1e-9 {
		t.Errorf("got (%f,%f,%f) want (2,3,5) at far corner", gx, gy, gz)
	}
}
