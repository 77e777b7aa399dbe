package mc

import "testing"

// TestOrientedEdgeConsistentWithinGroup checks that every edge in a
// parallel-edge group, once oriented, advances along the same physical
// axis direction: the low corner's offset on that axis is always 0 and the
// high corner's is always 1.
func TestOrientedEdgeConsistentWithinGroup(t *testing.T) {
	for axis, group := range parallelEdgeGroups {
		for _, e := range group {
			lo, hi := orientedEdge(e)
			if cornerOffset[lo][axis] != 0 {
				t.Errorf("edge %d: lo corner %d has offset %d on axis %d, want 0", e, lo, cornerOffset[lo][axis], axis)
			}
			if cornerOffset[hi][axis] != 1 {
				t.Errorf("edge %d: hi corner %d has offset %d on axis %d, want 1", e, hi, cornerOffset[hi][axis], axis)
			}
		}
	}
}

func TestOrientedEdgeIsPermutationOfEdgeCorners(t *testing.T) {
	for e := 0; e < 12; e++ {
		lo, hi := orientedEdge(e)
		a, b := edgeCorners[e][0], edgeCorners[e][1]
		if !((lo == a && hi == b) || (lo == b && hi == a)) {
			t.Errorf("edge %d: orientedEdge returned (%d,%d), not a permutation of edgeCorners (%d,%d)", e, lo, hi, a, b)
		}
	}
}

func TestEdgeDirectionMatchesParallelGroups(t *testing.T) {
	for axis, group := range parallelEdgeGroups {
		for _, e := range group {
			if got := edgeDirection(e); got != axis {
				t.Errorf("edgeDirection(%d) = %d, want %d", e, got, axis)
			}
		}
	}
}

func TestPopcount8(t *testing.T) {
	cases := []struct {
		lambda, want int
	}{
		{0, 0}, {1, 1}, {3, 2}, {255, 8}, {0x0f, 4}, {0xaa, 4},
	}
	for _, c := range cases {
		if got := popcount8(c.lambda); got != c.want {
			t.Errorf("popcount8(%d) = %d, want %d", c.lambda, got, c.want)
		}
	}
}
