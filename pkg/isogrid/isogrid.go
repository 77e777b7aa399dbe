// Package isogrid reads and writes a dense scalar grid to a compact binary
// file, so a grid can be produced once (by a slow formula, CSG tree, or
// scattered-data fit) and reloaded without recomputing it.
package isogrid

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"marchcubes/pkg/mc"
)

// magic identifies the file format; version allows the header to grow.
const (
	magic   uint32 = 0x4d434947 // "GICM" read little-endian
	version uint32 = 1
)

// header is written verbatim in little-endian order, followed by
// Nx*Ny*Nz little-endian float64 samples in x-fastest order.
type header struct {
	Magic, Version            uint32
	Nx, Ny, Nz                uint32
	OriginX, OriginY, OriginZ float64
	CellSize                  float64
}

// Write serializes grid to path, anchored at origin with the given uniform
// cell spacing (the physical size of one grid step, used to place the
// mesh produced from it in the same units as the source data).
func Write(path string, grid *mc.Grid, originX, originY, originZ, cellSize float64) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("isogrid: %w", err)
	}
	defer file.Close()

	nx, ny, nz := grid.Dims()
	h := header{
		Magic: magic, Version: version,
		Nx: uint32(nx), Ny: uint32(ny), Nz: uint32(nz),
		OriginX: originX, OriginY: originY, OriginZ: originZ,
		CellSize: cellSize,
	}

	w := bufio.NewWriter(file)
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("isogrid: %w", err)
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				if err := binary.Write(w, binary.LittleEndian, grid.GetSample(i, j, k)); err != nil {
					return fmt.Errorf("isogrid: %w", err)
				}
			}
		}
	}
	return w.Flush()
}

// Read deserializes a grid written by Write, returning the grid plus its
// origin and cell size.
func Read(path string) (grid *mc.Grid, originX, originY, originZ, cellSize float64, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, 0, 0, fmt.Errorf("isogrid: %w", err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, 0, 0, 0, 0, fmt.Errorf("isogrid: %w", err)
	}
	if h.Magic != magic {
		return nil, 0, 0, 0, 0, fmt.Errorf("isogrid: bad magic %x, not an isogrid file", h.Magic)
	}
	if h.Version != version {
		return nil, 0, 0, 0, 0, fmt.Errorf("isogrid: unsupported version %d", h.Version)
	}

	nx, ny, nz := int(h.Nx), int(h.Ny), int(h.Nz)
	grid = mc.NewGrid(nx, ny, nz)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				var v float64
				if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
					return nil, 0, 0, 0, 0, fmt.Errorf("isogrid: %w", err)
				}
				grid.SetSample(i, j, k, v)
			}
		}
	}

	return grid, h.OriginX, h.OriginY, h.OriginZ, h.CellSize, nil
}
