package mc

// Fixed geometric tables for the unit cell, normative per the corner/edge
// numbering: corner p has lattice offset ((p^(p>>1))&1, (p>>1)&1, (p>>2)&1).

var cornerOffset = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// edgeCorners gives the two corner indices spanned by each of the 12 cube
// edges, in the order edges 0-3 (bottom face), 4-7 (top face), 8-11
// (vertical pillars) used throughout the emission table.
var edgeCorners = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// faceCorners lists the four corners of each of the 6 cube faces in the
// cyclic order used by the bilinear face test (spec 4.4).
var faceCorners = [6][4]int{
	{0, 4, 5, 1},
	{1, 5, 6, 2},
	{2, 6, 7, 3},
	{3, 7, 4, 0},
	{0, 3, 2, 1},
	{4, 7, 6, 5},
}

// faceEdges lists, in the same cyclic order as faceCorners, the edge
// connecting consecutive corners of that face.
var faceEdges = [6][4]int{
	{8, 4, 9, 0},
	{9, 5, 10, 1},
	{10, 6, 11, 2},
	{11, 7, 8, 3},
	{3, 2, 1, 0},
	{7, 6, 5, 4},
}

// parallelEdgeGroups partitions the 12 edges by travel direction: x-parallel
// (Ex), y-parallel (Ey), z-parallel (Ez), matching the edge-id -> vertex-id
// lookup of spec 4.3.
var parallelEdgeGroups = [3][4]int{
	{0, 2, 4, 6},
	{1, 3, 5, 7},
	{8, 9, 10, 11},
}

// orientedEdge returns the two corners of edge e ordered low-to-high along
// the edge's own direction axis (cornerOffset[lo][axis]==0), so that every
// edge in the same parallelEdgeGroups entry is parameterized consistently
// by a caller that walks from lo to hi.
func orientedEdge(e int) (lo, hi int) {
	p0, p1 := edgeCorners[e][0], edgeCorners[e][1]
	axis := edgeDirection(e)
	if cornerOffset[p0][axis] == 0 {
		return p0, p1
	}
	return p1, p0
}

func edgeDirection(e int) int {
	switch {
	case e == 0 || e == 2 || e == 4 || e == 6:
		return 0
	case e == 1 || e == 3 || e == 5 || e == 7:
		return 1
	default:
		return 2
	}
}

// noVertex is the sentinel stored in the edge-vertex index maps for edges
// that carry no intersection.
const noVertex = -1

// epsilon perturbs zero corner samples and gates the face/interior test
// degenerate branches, per spec 3 and spec 9.
const epsilon = 1e-10
