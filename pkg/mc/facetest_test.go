package mc

import "testing"

func TestFaceTestDegenerateAlwaysTrue(t *testing.T) {
	// A*C - B*D == 0 by construction: the classical ±1 ambiguous face.
	var cube [8]float64
	for i := range cube {
		cube[i] = -1
	}
	c := faceCorners[4]
	cube[c[0]] = 1
	cube[c[2]] = 1
	cube[c[1]] = -1
	cube[c[3]] = -1
	if !faceTest(cube, 4) {
		t.Error("expected degenerate face test (Df==0) to resolve true")
	}
}

func TestFaceTestTrueWhenASharesSignWithDf(t *testing.T) {
	var cube [8]float64
	c := faceCorners[0]
	cube[c[0]], cube[c[1]], cube[c[2]], cube[c[3]] = 2, -1, 3, -4
	// Df = A*C - B*D = 6 - 4 = 2; A and Df are both positive.
	if !faceTest(cube, 0) {
		t.Error("expected face test true when A and Df share sign")
	}
}

func TestFaceTestFalseWhenAOpposesDf(t *testing.T) {
	var cube [8]float64
	c := faceCorners[0]
	cube[c[0]], cube[c[1]], cube[c[2]], cube[c[3]] = 1, 5, 1, 1
	// Df = A*C - B*D = 1 - 5 = -4; A is positive, Df is negative.
	if faceTest(cube, 0) {
		t.Error("expected face test false when A and Df have opposite sign")
	}
}
