package mc

import "testing"

func TestEnsureClassicTilesBuildsTrianglesForEveryCase(t *testing.T) {
	ensureClassicTiles()
	for lambda := 0; lambda < 256; lambda++ {
		row := &casesClassic[lambda]
		nt := classicTriangleCount(row)
		if 3*nt > maxClassicEdges-1 {
			t.Errorf("lambda=%d: triangle count %d overruns the row", lambda, nt)
		}
		for i := 3 * nt; i < maxClassicEdges; i++ {
			if row[i] != -1 {
				t.Errorf("lambda=%d: expected -1 padding at slot %d, got %d", lambda, i, row[i])
			}
		}
	}
	if classicTriangleCount(&casesClassic[0]) != 0 || classicTriangleCount(&casesClassic[255]) != 0 {
		t.Error("expected uniform-sign cases to produce no triangles")
	}
	if classicTriangleCount(&casesClassic[1]) == 0 {
		t.Error("expected single-corner case to produce a triangle")
	}
}

func TestBuildClassicTileEdgesAreValid(t *testing.T) {
	var row [maxClassicEdges]int
	for lambda := 1; lambda < 255; lambda++ {
		buildClassicTile(lambda, &row)
		nt := classicTriangleCount(&row)
		for i := 0; i < 3*nt; i++ {
			if row[i] < 0 || row[i] > 11 {
				t.Fatalf("lambda=%d: tile references invalid edge %d", lambda, row[i])
			}
		}
	}
}
