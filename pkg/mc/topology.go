package mc

// loopGraph is the undirected 2-regular graph formed by matching each cut
// cube edge with its partner on each of its two incident faces. Tracing it
// yields the disjoint cycles (loops) that bound the surface patch inside
// the cell. Fixed-size arrays keep iteration order (and therefore
// extraction) deterministic; map iteration order would not be.
type loopGraph struct {
	neighbors [12][2]int
	degree    [12]int8
	cut       [12]bool
}

func (g *loopGraph) addPair(a, b int) {
	g.neighbors[a][g.degree[a]] = b
	g.degree[a]++
	g.neighbors[b][g.degree[b]] = a
	g.degree[b]++
	g.cut[a] = true
	g.cut[b] = true
}

// faceMatching returns the pairing(s) of cut edges on one face: no pairing
// if the face has no sign change, one pairing if exactly two of its edges
// are cut, two pairings (gated by the face test) if the face is ambiguous.
func faceMatching(cube [8]float64, faceIdx int) [][2]int {
	corners := faceCorners[faceIdx]
	edges := faceEdges[faceIdx]

	var cutAt [4]bool
	cutCount := 0
	for i := 0; i < 4; i++ {
		a, b := corners[i], corners[(i+1)%4]
		if (cube[a] > 0) != (cube[b] > 0) {
			cutAt[i] = true
			cutCount++
		}
	}

	switch cutCount {
	case 0:
		return nil
	case 2:
		var first, second int
		found := 0
		for i := 0; i < 4; i++ {
			if cutAt[i] {
				if found == 0 {
					first = edges[i]
				} else {
					second = edges[i]
				}
				found++
			}
		}
		return [][2]int{{first, second}}
	case 4:
		eAB, eBC, eCD, eDA := edges[0], edges[1], edges[2], edges[3]
		if faceTest(cube, faceIdx) {
			// A and C connected: isolate B and D individually.
			return [][2]int{{eAB, eBC}, {eCD, eDA}}
		}
		// A and C isolated individually: isolate B and D's side as one band.
		return [][2]int{{eDA, eAB}, {eBC, eCD}}
	default:
		// A 4-cycle can only have an even number of sign changes.
		return nil
	}
}

// buildLoops partitions the cell's cut edges into disjoint cycles by
// matching each edge with its partner across both incident faces.
func buildLoops(cube [8]float64) [][]int {
	var g loopGraph
	for f := 0; f < 6; f++ {
		for _, pair := range faceMatching(cube, f) {
			g.addPair(pair[0], pair[1])
		}
	}

	var visited [12]bool
	var loops [][]int
	for start := 0; start < 12; start++ {
		if !g.cut[start] || visited[start] {
			continue
		}
		loop := []int{start}
		visited[start] = true
		prev := -1
		cur := start
		for {
			n0, n1 := g.neighbors[cur][0], g.neighbors[cur][1]
			next := n0
			if n0 == prev && int(g.degree[cur]) > 1 {
				next = n1
			}
			if next == start {
				break
			}
			visited[next] = true
			loop = append(loop, next)
			prev = cur
			cur = next
		}
		loops = append(loops, loop)
	}
	return loops
}

// popcount8 counts the set bits of an 8-bit corner mask.
func popcount8(lambda int) int {
	n := 0
	for lambda != 0 {
		n += lambda & 1
		lambda >>= 1
	}
	return n
}
