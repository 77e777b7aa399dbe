package formula

import (
	"math"
	"testing"

	"marchcubes/pkg/mc"
)

func TestGridBinderInterpolates(t *testing.T) {
	grid := mc.NewGrid(2, 2, 2)
	grid.SetSample(0, 0, 0, 0)
	grid.SetSample(1, 0, 0, 10)

	b := GridBinder{Grid: grid, Cell: 1}
	if got := b.Eval(0.5, 0, 0); math.Abs(got-5) > 1e-9 {
		t.Errorf("got %f want 5", got)
	}
	if got := b.Eval(0, 0, 0); got != 0 {
		t.Errorf("got %f want 0", got)
	}
}

func TestGridBinderClampsOutOfRange(t *testing.T) {
	grid := mc.NewGrid(2, 2, 2)
	grid.SetSample(0, 0, 0, 7)
	b := GridBinder{Grid: grid, Cell: 1}
	if got := b.Eval(-10, -10, -10); got != 7 {
		t.Errorf("got %f want 7 (clamped)", got)
	}
}

func TestGridBinderAsFormulaVariable(t *testing.T) {
	grid := mc.NewGrid(2, 2, 2)
	grid.SetSample(0, 0, 0, 3)
	e, err := Parse("i * 2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	e.Bind(nil, GridBinder{Grid: grid, Cell: 1})
	got, err := e.Eval(0, 0, 0)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != 6 {
		t.Errorf("got %f want 6", got)
	}
}
