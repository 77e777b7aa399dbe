package pipeline

import (
	"testing"

	"marchcubes/internal/models"
)

func TestSplitMergeQuadrantsRoundTrip(t *testing.T) {
	w, h, d := 6, 5, 3
	v := models.Volume{Data: make([]float64, w*h*d), Width: w, Height: h, Depth: d}
	for i := range v.Data {
		v.Data[i] = float64(i)
	}

	quadrants := splitQuadrants(v)
	if len(quadrants) != 4 {
		t.Fatalf("expected 4 quadrants, got %d", len(quadrants))
	}

	merged := models.Volume{Data: make([]float64, w*h*d), Width: w, Height: h, Depth: d}
	mergeQuadrants(&merged, quadrants)

	for i := range v.Data {
		if merged.Data[i] != v.Data[i] {
			t.Fatalf("round trip mismatch at index %d: got %f want %f", i, merged.Data[i], v.Data[i])
		}
	}
}

func TestSplitQuadrantsCoversEveryCell(t *testing.T) {
	w, h, d := 3, 3, 2
	v := models.Volume{Data: make([]float64, w*h*d), Width: w, Height: h, Depth: d}
	quadrants := splitQuadrants(v)
	total := 0
	for _, q := range quadrants {
		total += len(q.Data)
	}
	if total != w*h*d {
		t.Errorf("quadrants cover %d cells, want %d", total, w*h*d)
	}
}
