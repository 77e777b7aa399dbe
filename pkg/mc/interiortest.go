package mc

import "math"

// interiorDecide applies the shared 4-bit classification table of spec 4.5
// to the four corner values of a parameterized trilinear slice and the
// tie-breaker sign s (true means s>0).
func interiorDecide(at, bt, ct, dt float64, s bool) bool {
	test := 0
	if at >= 0 {
		test |= 1
	}
	if bt >= 0 {
		test |= 2
	}
	if ct >= 0 {
		test |= 4
	}
	if dt >= 0 {
		test |= 8
	}
	switch test {
	case 0, 1, 2, 3, 4, 6, 8, 9, 12:
		return s
	case 7, 11, 13, 14, 15:
		return !s
	case 5:
		if at*ct-bt*dt < epsilon {
			return s
		}
		return !s
	case 10:
		if at*ct-bt*dt >= epsilon {
			return s
		}
		return !s
	}
	return !s
}

// interiorTestBodyDiagonal is the cases-4/10 interior test: it solves the
// quadratic derived from the trilinear restriction along the z-parallel
// body edges and samples the four bottom/top corner interpolants at the
// critical parameter (spec 4.5).
func interiorTestBodyDiagonal(c [8]float64, s bool) bool {
	a := (c[4]-c[0])*(c[6]-c[2]) - (c[7]-c[3])*(c[5]-c[1])
	b := c[2]*(c[4]-c[0]) + c[0]*(c[6]-c[2]) - c[1]*(c[7]-c[3]) - c[3]*(c[5]-c[1])
	if math.Abs(a) < epsilon {
		return s
	}
	t := -b / (2 * a)
	if t < 0 || t > 1 {
		return s
	}
	at := c[0] + t*(c[4]-c[0])
	bt := c[1] + t*(c[5]-c[1])
	ct := c[2] + t*(c[6]-c[2])
	dt := c[3] + t*(c[7]-c[3])
	return interiorDecide(at, bt, ct, dt, s)
}

// interiorTestFaceEdge is the cases-6/7/12/13 interior test: it parameterizes
// the trilinear restriction at the zero-crossing of a chosen reference edge
// and samples the other three edges of the same direction at that
// parameter (spec 4.5). An out-of-range edge is a bug in the caller; per
// spec 7 it is logged and the test falls through to s<0.
func interiorTestFaceEdge(cube [8]float64, edge int, s bool, logger Logger) bool {
	if edge < 0 || edge > 11 {
		logger.Printf("mc: interior test received invalid reference edge %d", edge)
		return !s
	}
	lo, hi := orientedEdge(edge)
	c0, c1 := cube[lo], cube[hi]
	denom := c0 - c1
	if math.Abs(denom) < epsilon {
		return !s
	}
	t := c0 / denom

	// All four edges of the group are parameterized from their own lo
	// corner to their own hi corner, which by orientedEdge's construction
	// sit on the same pair of opposite faces as edge's lo/hi — so t=0 and
	// t=1 name the same two faces for every edge in the group, and a given
	// t names one consistent plane across all four.
	group := parallelEdgeGroups[edgeDirection(edge)]
	var at float64
	others := make([]float64, 0, 3)
	for _, ge := range group {
		gl, gh := orientedEdge(ge)
		v := cube[gl] + t*(cube[gh]-cube[gl])
		if ge == edge {
			at = v
		} else {
			others = append(others, v)
		}
	}
	bt, ct, dt := others[0], others[1], others[2]
	return interiorDecide(at, bt, ct, dt, s)
}

// decideInterior picks which interior test formula applies to the cell's
// sign pattern (spec 4.5: the body-diagonal form for 2/6 positive corners,
// the face-edge form otherwise) and evaluates it. For the face-edge form,
// the reference edge and tie-breaker sign are read off the lowest-indexed
// ambiguous face of the cube (the same face an ambiguity-resolution table
// such as test6/test7/test12 would be keyed by) rather than from loop
// traversal order: the first edge of faceEdges[face] is the reference edge,
// and the tie-breaker is the sign of that face's first corner. This makes
// the choice a function of the cube's own corner pattern, never of which
// loop buildLoops happened to trace first.
func decideInterior(cube [8]float64, loops [][]int, logger Logger) bool {
	lambda := 0
	for p := 0; p < 8; p++ {
		if cube[p] > 0 {
			lambda |= 1 << uint(p)
		}
	}
	pc := popcount8(lambda)

	if pc == 2 || pc == 6 {
		return interiorTestBodyDiagonal(cube, pc >= 4)
	}

	face, ok := lowestAmbiguousFace(cube)
	if !ok {
		return interiorTestFaceEdge(cube, loops[0][0], pc >= 4, logger)
	}
	edge := faceEdges[face][0]
	s := cube[faceCorners[face][0]] >= 0
	return interiorTestFaceEdge(cube, edge, s, logger)
}

// lowestAmbiguousFace returns the lowest-indexed face (faceCorners' order)
// whose four corners alternate sign around the cycle -- the structural
// definition of an ambiguous face, independent of the face test's
// resolution of it. Cases 6/7/12/13 always have at least one such face.
func lowestAmbiguousFace(cube [8]float64) (int, bool) {
	for f := 0; f < 6; f++ {
		c := faceCorners[f]
		p0, p1, p2, p3 := cube[c[0]] > 0, cube[c[1]] > 0, cube[c[2]] > 0, cube[c[3]] > 0
		if p0 == p2 && p1 == p3 && p0 != p1 {
			return f, true
		}
	}
	return 0, false
}
