// Package denoise applies the shearlet-based edge-preserving smoothing of
// package shearlet to a 3-D grid, slice by slice along z, so a grid
// produced from noisy scattered data can be cleaned before extraction.
package denoise

import "marchcubes/pkg/shearlet"

// SmoothGrid denoises samples in place, treating it as nx*ny*nz values in
// x-fastest order. Each of the nz z-slices is smoothed independently by
// shearlet.Transform.ApplyEdgePreservedSmoothing, which requires a square
// slice (nx == ny); slices that aren't square are left untouched.
func SmoothGrid(samples []float64, nx, ny, nz int) {
	if nx != ny {
		return
	}
	t := shearlet.NewTransform()
	sliceLen := nx * ny
	slice := make([]float64, sliceLen)
	for k := 0; k < nz; k++ {
		base := k * sliceLen
		copy(slice, samples[base:base+sliceLen])
		smoothed := t.ApplyEdgePreservedSmoothing(slice)
		copy(samples[base:base+sliceLen], smoothed)
	}
}
