package mc

import "testing"

func TestGridSetGetSample(t *testing.T) {
	g := NewGrid(3, 4, 5)
	g.SetSample(1, 2, 3, 42)
	if got := g.GetSample(1, 2, 3); got != 42 {
		t.Errorf("got %f want 42", got)
	}
	if got := g.GetSample(0, 0, 0); got != 0 {
		t.Errorf("expected zero-filled grid, got %f", got)
	}
}

func TestGridDims(t *testing.T) {
	g := NewGrid(3, 4, 5)
	nx, ny, nz := g.Dims()
	if nx != 3 || ny != 4 || nz != 5 {
		t.Errorf("got %d,%d,%d want 3,4,5", nx, ny, nz)
	}
}

func TestGridResize(t *testing.T) {
	g := NewGrid(2, 2, 2)
	g.SetSample(1, 1, 1, 5)
	g.Resize(3, 3, 3)
	nx, ny, nz := g.Dims()
	if nx != 3 || ny != 3 || nz != 3 {
		t.Fatalf("resize did not update dims: %d,%d,%d", nx, ny, nz)
	}
	if got := g.GetSample(1, 1, 1); got != 0 {
		t.Errorf("expected resize to discard old samples, got %f", got)
	}
}

func TestNewGridRejectsNonPositiveDims(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-positive dims")
		}
	}()
	NewGrid(0, 1, 1)
}
