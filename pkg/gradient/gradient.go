// Package gradient estimates the gradient of a sampled scalar field by
// central differences, with one-sided differences at the field boundary.
package gradient

// Field is a dense 3-D scalar field addressable by lattice index.
type Field interface {
	Dims() (nx, ny, nz int)
	Sample(i, j, k int) float64
}

// At returns the estimated gradient of f at (i,j,k): central difference in
// the interior, one-sided at the boundary along each axis independently.
func At(f Field, i, j, k int) (gx, gy, gz float64) {
	nx, ny, nz := f.Dims()

	switch {
	case i == 0:
		gx = f.Sample(1, j, k) - f.Sample(0, j, k)
	case i == nx-1:
		gx = f.Sample(nx-1, j, k) - f.Sample(nx-2, j, k)
	default:
		gx = (f.Sample(i+1, j, k) - f.Sample(i-1, j, k)) / 2
	}

	switch {
	case j == 0:
		gy = f.Sample(i, 1, k) - f.Sample(i, 0, k)
	case j == ny-1:
		gy = f.Sample(i, ny-1, k) - f.Sample(i, ny-2, k)
	default:
		gy = (f.Sample(i, j+1, k) - f.Sample(i, j-1, k)) / 2
	}

	switch {
	case k == 0:
		gz = f.Sample(i, j, 1) - f.Sample(i, j, 0)
	case k == nz-1:
		gz = f.Sample(i, j, nz-1) - f.Sample(i, j, nz-2)
	default:
		gz = (f.Sample(i, j, k+1) - f.Sample(i, j, k-1)) / 2
	}

	return gx, gy, gz
}
