// Package gridview renders 2-D slices of a sample grid as grayscale images,
// for inspecting a volume before running extraction on it.
package gridview

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"
)

// Field is the subset of mc.Grid that gridview needs; kept as an interface
// so tests and other producers can supply their own samples.
type Field interface {
	Dims() (nx, ny, nz int)
	Sample(i, j, k int) float64
}

// Viewer renders slices of a Field, mapping the range [Lo,Hi] to the full
// grayscale range. ValueRange supplies the field's own minimum and maximum
// as a default range.
type Viewer struct {
	field  Field
	lo, hi float64
}

// NewViewer creates a viewer that maps [lo,hi] linearly onto 16-bit gray.
func NewViewer(field Field, lo, hi float64) *Viewer {
	return &Viewer{field: field, lo: lo, hi: hi}
}

// ValueRange scans the field and returns its minimum and maximum sample,
// a convenient default range for NewViewer.
func ValueRange(field Field) (lo, hi float64) {
	nx, ny, nz := field.Dims()
	lo, hi = math.MaxFloat64, -math.MaxFloat64
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				v := field.Sample(i, j, k)
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
		}
	}
	return lo, hi
}

func (v *Viewer) normalize(value float64) uint16 {
	if v.hi <= v.lo {
		return 0
	}
	t := (value - v.lo) / (v.hi - v.lo)
	return uint16(math.Max(0, math.Min(65535, t*65535)))
}

// ExtractSlice renders the 2-D slice at position along the given axis
// ("x", "y", or "z") as a 16-bit grayscale image.
func (v *Viewer) ExtractSlice(axis string, position int) (image.Image, error) {
	nx, ny, nz := v.field.Dims()
	if position < 0 {
		return nil, fmt.Errorf("gridview: position must be non-negative")
	}

	var img *image.Gray16
	switch axis {
	case "x", "X":
		if position >= nx {
			return nil, fmt.Errorf("gridview: position %d exceeds width %d", position, nx)
		}
		img = image.NewGray16(image.Rect(0, 0, nz, ny))
		for k := 0; k < nz; k++ {
			for j := 0; j < ny; j++ {
				img.SetGray16(k, j, color.Gray16{Y: v.normalize(v.field.Sample(position, j, k))})
			}
		}
	case "y", "Y":
		if position >= ny {
			return nil, fmt.Errorf("gridview: position %d exceeds height %d", position, ny)
		}
		img = image.NewGray16(image.Rect(0, 0, nx, nz))
		for k := 0; k < nz; k++ {
			for i := 0; i < nx; i++ {
				img.SetGray16(i, k, color.Gray16{Y: v.normalize(v.field.Sample(i, position, k))})
			}
		}
	case "z", "Z":
		if position >= nz {
			return nil, fmt.Errorf("gridview: position %d exceeds depth %d", position, nz)
		}
		img = image.NewGray16(image.Rect(0, 0, nx, ny))
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				img.SetGray16(i, j, color.Gray16{Y: v.normalize(v.field.Sample(i, j, position))})
			}
		}
	default:
		return nil, fmt.Errorf("gridview: invalid axis %q (must be x, y, or z)", axis)
	}
	return img, nil
}

// SaveSlice writes img to filename as a JPEG.
func (v *Viewer) SaveSlice(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("gridview: %w", err)
	}
	defer file.Close()
	return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
}

// SaveSliceSequence renders and saves every slice along axis into outputDir.
func (v *Viewer) SaveSliceSequence(axis string, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("gridview: %w", err)
	}

	nx, ny, nz := v.field.Dims()
	var maxPos int
	switch axis {
	case "x", "X":
		maxPos = nx
	case "y", "Y":
		maxPos = ny
	case "z", "Z":
		maxPos = nz
	default:
		return fmt.Errorf("gridview: invalid axis %q (must be x, y, or z)", axis)
	}

	for pos := 0; pos < maxPos; pos++ {
		img, err := v.ExtractSlice(axis, pos)
		if err != nil {
			return err
		}
		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.jpg", axis, pos))
		if err := v.SaveSlice(img, filename); err != nil {
			return err
		}
	}
	return nil
}
