package formula

import (
	"math"
	"testing"
)

func eval(t *testing.T, expr string, x, y, z float64) float64 {
	t.Helper()
	e, err := Parse(expr)
	if err != nil {
		t.Fatalf("Parse(%q): %v", expr, err)
	}
	v, err := e.Eval(x, y, z)
	if err != nil {
		t.Fatalf("Eval(%q): %v", expr, err)
	}
	return v
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"2 ^ 3 ^ 2", 512}, // right-associative: 2^(3^2)
		{"-2 + 3", 1},
		{"10 / 4", 2.5},
		{"sqrt(16)", 4},
		{"abs(-5)", 5},
	}
	for _, c := range cases {
		if got := eval(t, c.expr, 0, 0, 0); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("%s = %f, want %f", c.expr, got, c.want)
		}
	}
}

func TestVariables(t *testing.T) {
	if got := eval(t, "x*x + y*y + z*z", 1, 2, 3); got != 14 {
		t.Errorf("got %f want 14", got)
	}
}

func TestSphereFormula(t *testing.T) {
	got := eval(t, "sqrt(x*x + y*y + z*z) - 5", 5, 0, 0)
	if math.Abs(got) > 1e-9 {
		t.Errorf("expected ~0 on sphere surface, got %f", got)
	}
}

type constBinder float64

func (c constBinder) Eval(x, y, z float64) float64 { return float64(c) }

func TestBoundVariables(t *testing.T) {
	e, err := Parse("c + i")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	e.Bind(constBinder(2), constBinder(3))
	got, err := e.Eval(0, 0, 0)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != 5 {
		t.Errorf("got %f want 5", got)
	}
}

func TestUnboundVariableIsError(t *testing.T) {
	e, err := Parse("c")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := e.Eval(0, 0, 0); err == nil {
		t.Error("expected error evaluating unbound c")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{"1 +", "(1 + 2", "1 2", "q"}
	for _, expr := range cases {
		if _, err := Parse(expr); err == nil {
			t.Errorf("Parse(%q): expected error", expr)
		}
	}
}

func TestUnknownFunctionIsEvalError(t *testing.T) {
	e, err := Parse("foo(1)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := e.Eval(0, 0, 0); err == nil {
		t.Error("expected error evaluating unknown function")
	}
}

func TestDivisionByZero(t *testing.T) {
	e, err := Parse("1 / 0")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := e.Eval(0, 0, 0); err == nil {
		t.Error("expected division-by-zero error")
	}
}
