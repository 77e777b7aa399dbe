// Package models holds the plain data types shared by the pipeline package
// that don't belong to any single producer or the core extractor.
package models

// Volume is a dense 3-D scalar field as a flat, x-fastest array, the
// pipeline's working representation before it is handed to mc.Grid.
type Volume struct {
	Data []float64

	Width, Height, Depth int

	// VoxelSize is the physical size of one grid step along each axis.
	VoxelSize struct {
		X, Y, Z float64
	}
}

// Quadrant identifies one of the four XY quadrants a Volume is split into
// for parallel processing.
type Quadrant int

const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

// SubVolume is one quadrant's worth of a Volume, processed independently
// and merged back by the pipeline.
type SubVolume struct {
	Data []float64

	Width, Height, Depth int

	QuadrantType Quadrant

	// OriginX, OriginY are the subvolume's offset within the parent Volume.
	OriginX, OriginY int
}
