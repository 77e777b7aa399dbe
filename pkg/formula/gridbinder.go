package formula

import "marchcubes/pkg/mc"

// GridBinder adapts an mc.Grid, placed in world space at Origin with uniform
// spacing Cell, into a Binder usable as formula's "i" variable: Eval
// trilinearly interpolates the grid at the given world point, clamping to
// the grid's extent at the boundary.
type GridBinder struct {
	Grid                      *mc.Grid
	OriginX, OriginY, OriginZ float64
	Cell                      float64
}

func (b GridBinder) Eval(x, y, z float64) float64 {
	nx, ny, nz := b.Grid.Dims()
	cell := b.Cell
	if cell == 0 {
		cell = 1
	}

	fi := (x - b.OriginX) / cell
	fj := (y - b.OriginY) / cell
	fk := (z - b.OriginZ) / cell

	i0, ti := splitClamped(fi, nx)
	j0, tj := splitClamped(fj, ny)
	k0, tk := splitClamped(fk, nz)
	i1, j1, k1 := clampIndex(i0+1, nx), clampIndex(j0+1, ny), clampIndex(k0+1, nz)

	c000 := b.Grid.GetSample(i0, j0, k0)
	c100 := b.Grid.GetSample(i1, j0, k0)
	c010 := b.Grid.GetSample(i0, j1, k0)
	c110 := b.Grid.GetSample(i1, j1, k0)
	c001 := b.Grid.GetSample(i0, j0, k1)
	c101 := b.Grid.GetSample(i1, j0, k1)
	c011 := b.Grid.GetSample(i0, j1, k1)
	c111 := b.Grid.GetSample(i1, j1, k1)

	c00 := lerp(c000, c100, ti)
	c10 := lerp(c010, c110, ti)
	c01 := lerp(c001, c101, ti)
	c11 := lerp(c011, c111, ti)
	c0 := lerp(c00, c10, tj)
	c1 := lerp(c01, c11, tj)
	return lerp(c0, c1, tk)
}

func lerp(a, b, t float64) float64 { return a + t*(b-a) }

// splitClamped splits a fractional index f into a base integer index
// (clamped to [0, n-1]) and its fractional remainder in [0,1].
func splitClamped(f float64, n int) (int, float64) {
	if f < 0 {
		return 0, 0
	}
	i0 := int(f)
	if i0 >= n-1 {
		return n - 1, 0
	}
	return i0, f - float64(i0)
}

func clampIndex(i, n int) int {
	if i >= n {
		return n - 1
	}
	if i < 0 {
		return 0
	}
	return i
}
