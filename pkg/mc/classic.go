package mc

import "sync"

// maxClassicEdges bounds casesClassic's row width: at most 10 triangles (30
// edge indices), the most buildLoops yields for any cube sign pattern, plus
// one -1 sentinel slot.
const maxClassicEdges = 31

// casesClassic[λ] is the flat, sentinel-terminated edge-triple list consulted
// by the classical (non-topological) method (spec 4.3 step 3), indexed
// directly by the 8-bit corner sign pattern λ exactly as the reference
// dispatch indexes its table by _lut_entry: a row holds up to 10 triangles'
// worth of edge indices (0-11) followed by a -1 terminator, never by
// case/config indirection. It is built once, lazily, from the sign pattern
// alone: each ambiguous face is always resolved by the face test's
// degenerate branch (since a synthetic ±1 cube always produces a zero face
// determinant, see faceTest), and no interior connection is ever attempted.
// This reproduces the classical method's known defect of sometimes leaving a
// crack or hole at an ambiguous configuration, matching spec 8's "classical
// MC on the same grid may produce a hole" expectation.
var (
	classicOnce  sync.Once
	casesClassic [256][maxClassicEdges]int
)

func ensureClassicTiles() {
	classicOnce.Do(func() {
		for lambda := 0; lambda < 256; lambda++ {
			buildClassicTile(lambda, &casesClassic[lambda])
		}
	})
}

// buildClassicTile fills row with λ's triangle edge indices followed by a
// -1 sentinel, padding any unused trailing slots with -1 as well.
func buildClassicTile(lambda int, row *[maxClassicEdges]int) {
	for i := range row {
		row[i] = -1
	}
	if lambda == 0 || lambda == 255 {
		return
	}
	var cube [8]float64
	for p := 0; p < 8; p++ {
		if lambda&(1<<uint(p)) != 0 {
			cube[p] = 1
		} else {
			cube[p] = -1
		}
	}
	loops := buildLoops(cube)
	n := 0
	for _, loop := range loops {
		ln := len(loop)
		if ln < 3 {
			continue
		}
		for idx := 1; idx < ln-1; idx++ {
			if n+3 > maxClassicEdges-1 {
				return
			}
			row[n], row[n+1], row[n+2] = loop[0], loop[idx], loop[idx+1]
			n += 3
		}
	}
}

// classicTriangleCount returns how many triangles row holds before its -1
// sentinel, mirroring the reference dispatch's "while (table[3*nt] != -1)
// nt++" scan.
func classicTriangleCount(row *[maxClassicEdges]int) int {
	nt := 0
	for 3*nt < maxClassicEdges && row[3*nt] != -1 {
		nt++
	}
	return nt
}
