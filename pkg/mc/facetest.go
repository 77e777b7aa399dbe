package mc

import "math"

// faceTest decides, for an ambiguous cube face (corners alternating
// +,-,+,-), whether the two same-sign diagonal corners belong to the same
// isosurface component (spec 4.4). faceIdx indexes faceCorners/faceEdges
// (0..5); the four corners are read in that table's fixed cyclic order
// A,B,C,D, and the test is evaluated with the positive face-id convention
// (f=+1): the degenerate branch therefore always resolves to true.
//
// D_f is the determinant of the bilinear restriction's saddle; a true
// result means A and C (the first and third corners of the cycle) are
// connected through the face.
func faceTest(cube [8]float64, faceIdx int) bool {
	c := faceCorners[faceIdx]
	a, b, cc, d := cube[c[0]], cube[c[1]], cube[c[2]], cube[c[3]]
	df := a*cc - b*d
	if math.Abs(df) < epsilon {
		return true
	}
	return a*df >= 0
}
