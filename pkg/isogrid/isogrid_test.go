package isogrid

import (
	"os"
	"path/filepath"
	"testing"

	"marchcubes/pkg/mc"
)

func TestWriteReadRoundTrip(t *testing.T) {
	nx, ny, nz := 3, 4, 5
	grid := mc.NewGrid(nx, ny, nz)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				grid.SetSample(i, j, k, float64(i)+10*float64(j)+100*float64(k))
			}
		}
	}

	path := filepath.Join(t.TempDir(), "volume.iso")
	if err := Write(path, grid, -1, -2, -3, 0.5); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, ox, oy, oz, cell, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if ox != -1 || oy != -2 || oz != -3 || cell != 0.5 {
		t.Errorf("unexpected origin/cell: %f %f %f %f", ox, oy, oz, cell)
	}

	gnx, gny, gnz := got.Dims()
	if gnx != nx || gny != ny || gnz != nz {
		t.Fatalf("dims mismatch: got %d,%d,%d want %d,%d,%d", gnx, gny, gnz, nx, ny, nz)
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				want := float64(i) + 10*float64(j) + 100*float64(k)
				if got.GetSample(i, j, k) != want {
					t.Fatalf("sample (%d,%d,%d): got %f want %f", i, j, k, got.GetSample(i, j, k), want)
				}
			}
		}
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.iso")
	grid := mc.NewGrid(1, 1, 1)
	if err := Write(path, grid, 0, 0, 0, 1); err != nil {
		t.Fatalf("Write: %v", err)
	}

	// Corrupt the first byte of the magic.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	data[0] ^= 0xff
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, _, _, _, _, err := Read(path); err == nil {
		t.Error("expected error reading corrupted magic")
	}
}
