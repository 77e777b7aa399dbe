package csg

import (
	"math"
	"testing"
)

func TestSphereSurface(t *testing.T) {
	s := Sphere{CX: 0, CY: 0, CZ: 0, R: 2}
	if d := s.Eval(2, 0, 0); math.Abs(d) > 1e-9 {
		t.Errorf("expected ~0 on surface, got %f", d)
	}
	if d := s.Eval(0, 0, 0); d >= 0 {
		t.Errorf("expected negative inside sphere, got %f", d)
	}
	if d := s.Eval(10, 0, 0); d <= 0 {
		t.Errorf("expected positive outside sphere, got %f", d)
	}
}

func TestUnionTakesCloserSurface(t *testing.T) {
	a := Sphere{CX: -5, CY: 0, CZ: 0, R: 1}
	b := Sphere{CX: 5, CY: 0, CZ: 0, R: 1}
	u := Union{A: a, B: b}
	if got, want := u.Eval(-5, 0, 0), a.Eval(-5, 0, 0); got != want {
		t.Errorf("union at a's center: got %f want %f", got, want)
	}
}

func TestDifferenceCarvesHole(t *testing.T) {
	outer := Sphere{CX: 0, CY: 0, CZ: 0, R: 5}
	inner := Sphere{CX: 0, CY: 0, CZ: 0, R: 2}
	d := Difference{A: outer, B: inner}
	if v := d.Eval(0, 0, 0); v <= 0 {
		t.Errorf("expected center to be outside the difference (inside the carved hole), got %f", v)
	}
	if v := d.Eval(3.5, 0, 0); v >= 0 {
		t.Errorf("expected midshell point to be inside the difference, got %f", v)
	}
}

func TestFillGrid(t *testing.T) {
	s := Sphere{CX: 2, CY: 2, CZ: 2, R: 1.5}
	samples := FillGrid(s, 5, 5, 5, 0, 0, 0, 1)
	if len(samples) != 125 {
		t.Fatalf("expected 125 samples, got %d", len(samples))
	}
	center := samples[(2*5+2)*5+2]
	if center >= 0 {
		t.Errorf("expected grid center inside sphere, got %f", center)
	}
}
