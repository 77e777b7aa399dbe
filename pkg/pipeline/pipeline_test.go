package pipeline

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writeSpherePoints scatters sample points of a signed-distance sphere
// field into a single points file under dir.
func writeSpherePoints(t *testing.T, dir string) {
	t.Helper()
	path := filepath.Join(dir, "points.txt")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create points file: %v", err)
	}
	defer f.Close()

	cx, cy, cz, r := 5.0, 5.0, 5.0, 3.0
	n := 0
	for k := 0; k <= 10; k++ {
		for j := 0; j <= 10; j++ {
			for i := 0; i <= 10; i++ {
				x, y, z := float64(i), float64(j), float64(k)
				v := math.Sqrt((x-cx)*(x-cx)+(y-cy)*(y-cy)+(z-cz)*(z-cz)) - r
				if _, err := fmt.Fprintf(f, "%g %g %g %g\n", x, y, z, v); err != nil {
					t.Fatalf("write point: %v", err)
				}
				n++
			}
		}
	}
}

func TestProcessEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeSpherePoints(t, dir)
	outPath := filepath.Join(dir, "mesh.stl")

	p := NewPipeline(&Params{
		PointsDir:  dir,
		OutputFile: outPath,
		NumCores:   2,
		CellSize:   1,
		IsoValue:   0,
	})
	if err := p.Process(); err != nil {
		t.Fatalf("Process: %v", err)
	}

	metrics := p.GetMetrics()
	if metrics.PointCount == 0 {
		t.Error("expected points to be loaded")
	}
	if metrics.Triangles == 0 {
		t.Error("expected a nonempty mesh")
	}

	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected nonempty output file")
	}
}

func TestProcessWithDenoise(t *testing.T) {
	dir := t.TempDir()
	writeSpherePoints(t, dir)
	outPath := filepath.Join(dir, "mesh.ply")

	p := NewPipeline(&Params{
		PointsDir:  dir,
		OutputFile: outPath,
		NumCores:   2,
		CellSize:   1,
		IsoValue:   0,
		Denoise:    true,
	})
	if err := p.Process(); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if p.GetMetrics().Triangles == 0 {
		t.Error("expected a nonempty mesh with denoising enabled")
	}
}

func TestProcessSavesIntermediaryResults(t *testing.T) {
	dir := t.TempDir()
	writeSpherePoints(t, dir)
	intermediaryDir := filepath.Join(dir, "intermediary")

	p := NewPipeline(&Params{
		PointsDir:               dir,
		OutputFile:              filepath.Join(dir, "mesh.stl"),
		CellSize:                1,
		IsoValue:                0,
		Denoise:                 true,
		SaveIntermediaryResults: true,
		IntermediaryDir:         intermediaryDir,
	})
	if err := p.Process(); err != nil {
		t.Fatalf("Process: %v", err)
	}
	for _, stage := range []string{"02_kriged_volume", "03_denoised_volume"} {
		entries, err := os.ReadDir(filepath.Join(intermediaryDir, stage))
		if err != nil {
			t.Fatalf("stage %s: %v", stage, err)
		}
		if len(entries) == 0 {
			t.Errorf("stage %s: expected saved slices", stage)
		}
	}
}

func TestLoadPointsRejectsEmptyDir(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := loadPoints(dir); err == nil {
		t.Error("expected error loading points from an empty directory")
	}
}

func TestGetVolumeDataMatchesDims(t *testing.T) {
	dir := t.TempDir()
	writeSpherePoints(t, dir)
	p := NewPipeline(&Params{
		PointsDir:  dir,
		OutputFile: filepath.Join(dir, "mesh.stl"),
		CellSize:   1,
	})
	if err := p.Process(); err != nil {
		t.Fatalf("Process: %v", err)
	}
	data, nx, ny, nz := p.GetVolumeData()
	if len(data) != nx*ny*nz {
		t.Errorf("volume data length %d does not match dims %d*%d*%d", len(data), nx, ny, nz)
	}
}
