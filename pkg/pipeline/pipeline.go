// Package pipeline orchestrates an end-to-end reconstruction from scattered
// point samples to an extracted mesh: load points, krige them onto a grid,
// denoise the grid in parallel quadrants, extract the isosurface, and
// write the result, mirroring the staged Process/GetMetrics shape of the
// reference MRI reconstruction pipeline this module was adapted from.
package pipeline

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"marchcubes/internal/models"
	"marchcubes/pkg/denoise"
	"marchcubes/pkg/mc"
	"marchcubes/pkg/meshio"
	"marchcubes/pkg/scattered"
)

// Params holds the pipeline's configuration.
type Params struct {
	// PointsDir contains one or more text files of "x y z value" samples,
	// one sample per line.
	PointsDir string

	// OutputFile is the path the final mesh is written to; its extension
	// (.stl or .ply) selects the writer.
	OutputFile string

	// NumCores bounds how many goroutines process grid quadrants in
	// parallel.
	NumCores int

	// CellSize is the uniform grid spacing used to krige the points onto
	// a dense volume.
	CellSize float64

	// IsoValue is the surface level passed to the extractor.
	IsoValue float64

	// Denoise applies shearlet-based edge-preserved smoothing to the
	// gridded volume before extraction.
	Denoise bool

	// SaveIntermediaryResults writes each stage's output under
	// IntermediaryDir for inspection.
	SaveIntermediaryResults bool
	IntermediaryDir         string
}

// Metrics summarizes one Process run.
type Metrics struct {
	PointCount        int
	Nx, Ny, Nz        int
	Vertices          int
	Triangles         int
	ExtractionSeconds float64
	CoresUsed         int
}

// Pipeline runs the staged reconstruction described in the package comment.
type Pipeline struct {
	params *Params

	volume models.Volume
	mesh   *mc.Mesh

	metrics Metrics
}

// NewPipeline creates a pipeline instance with the given parameters.
func NewPipeline(params *Params) *Pipeline {
	return &Pipeline{params: params}
}

// Process runs the complete pipeline: load, krige, denoise, extract, write.
func (p *Pipeline) Process() error {
	if p.params.SaveIntermediaryResults {
		if err := os.MkdirAll(p.params.IntermediaryDir, 0755); err != nil {
			return fmt.Errorf("pipeline: failed to create intermediary directory: %w", err)
		}
	}

	fmt.Println("Step 1: Loading scattered point samples...")
	pts, values, err := loadPoints(p.params.PointsDir)
	if err != nil {
		return fmt.Errorf("pipeline: failed to load points: %w", err)
	}
	p.metrics.PointCount = len(pts)

	fmt.Println("Step 2: Kriging points onto a dense grid...")
	if err := p.krigeToVolume(pts, values); err != nil {
		return fmt.Errorf("pipeline: failed to krige points: %w", err)
	}
	if p.params.SaveIntermediaryResults {
		if err := p.saveVolumeSlices("02_kriged_volume"); err != nil {
			fmt.Printf("Warning: failed to save kriged volume: %v\n", err)
		}
	}

	if p.params.Denoise {
		fmt.Println("Step 3: Denoising volume in parallel quadrants...")
		p.denoiseInQuadrants()
		if p.params.SaveIntermediaryResults {
			if err := p.saveVolumeSlices("03_denoised_volume"); err != nil {
				fmt.Printf("Warning: failed to save denoised volume: %v\n", err)
			}
		}
	}

	fmt.Println("Step 4: Extracting isosurface...")
	if err := p.extract(); err != nil {
		return fmt.Errorf("pipeline: failed to extract isosurface: %w", err)
	}

	fmt.Println("Step 5: Writing mesh...")
	if err := writeMesh(p.params.OutputFile, p.mesh); err != nil {
		return fmt.Errorf("pipeline: failed to write mesh: %w", err)
	}

	return nil
}

// GetMetrics returns the metrics collected by the last Process call.
func (p *Pipeline) GetMetrics() Metrics { return p.metrics }

// GetVolumeData returns the kriged (and possibly denoised) volume and its
// dimensions, for callers that want to preview it (e.g. with gridview)
// without re-running the pipeline.
func (p *Pipeline) GetVolumeData() ([]float64, int, int, int) {
	return p.volume.Data, p.volume.Width, p.volume.Height, p.volume.Depth
}

func loadPoints(dir string) ([]scattered.Point, []float64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading points directory: %w", err)
	}

	var pts []scattered.Point
	var values []float64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		file, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening %s: %w", path, err)
		}
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			fields := strings.Fields(line)
			if len(fields) != 4 {
				continue
			}
			x, errX := strconv.ParseFloat(fields[0], 64)
			y, errY := strconv.ParseFloat(fields[1], 64)
			z, errZ := strconv.ParseFloat(fields[2], 64)
			v, errV := strconv.ParseFloat(fields[3], 64)
			if errX != nil || errY != nil || errZ != nil || errV != nil {
				continue
			}
			pts = append(pts, scattered.Point{X: x, Y: y, Z: z})
			values = append(values, v)
		}
		err = scanner.Err()
		file.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("scanning %s: %w", path, err)
		}
	}

	if len(pts) == 0 {
		return nil, nil, fmt.Errorf("no point samples found under %s", dir)
	}
	return pts, values, nil
}

func (p *Pipeline) krigeToVolume(pts []scattered.Point, values []float64) error {
	cell := p.params.CellSize
	if cell == 0 {
		cell = 1
	}

	minX, minY, minZ := pts[0].X, pts[0].Y, pts[0].Z
	maxX, maxY, maxZ := pts[0].X, pts[0].Y, pts[0].Z
	for _, pt := range pts {
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
		minZ, maxZ = math.Min(minZ, pt.Z), math.Max(maxZ, pt.Z)
	}

	margin := 2 * cell
	nx := int((maxX-minX)/cell) + 1 + int(margin/cell)*2
	ny := int((maxY-minY)/cell) + 1 + int(margin/cell)*2
	nz := int((maxZ-minZ)/cell) + 1 + int(margin/cell)*2
	nx, ny, nz = maxInt(nx, 2), maxInt(ny, 2), maxInt(nz, 2)

	variogramParams := scattered.FitVariogram(pts, values, scattered.Spherical, cell*4)
	interp, err := scattered.NewInterpolator(pts, values, variogramParams, 12)
	if err != nil {
		return err
	}

	origin := scattered.Point{X: minX - margin, Y: minY - margin, Z: minZ - margin}
	data := scattered.FillGrid(interp, nx, ny, nz, origin, cell)

	p.volume = models.Volume{Data: data, Width: nx, Height: ny, Depth: nz}
	p.volume.VoxelSize.X, p.volume.VoxelSize.Y, p.volume.VoxelSize.Z = cell, cell, cell
	return nil
}

// denoiseInQuadrants splits each z-slice of the volume into its four XY
// quadrants, smooths each independently (in parallel, bounded by
// p.params.NumCores), and writes the result back in place. denoise.SmoothGrid
// smooths square slices only, so a quadrant whose width and height differ
// is written back unchanged.
func (p *Pipeline) denoiseInQuadrants() {
	quadrants := splitQuadrants(p.volume)

	cores := p.params.NumCores
	if cores <= 0 {
		cores = runtime.NumCPU()
	}
	sem := make(chan struct{}, cores)
	var wg sync.WaitGroup
	for i := range quadrants {
		wg.Add(1)
		sem <- struct{}{}
		go func(sv *models.SubVolume) {
			defer wg.Done()
			defer func() { <-sem }()
			denoise.SmoothGrid(sv.Data, sv.Width, sv.Height, sv.Depth)
		}(&quadrants[i])
	}
	wg.Wait()

	mergeQuadrants(&p.volume, quadrants)
}

func (p *Pipeline) extract() error {
	grid := mc.NewGrid(p.volume.Width, p.volume.Height, p.volume.Depth)
	idx := 0
	for k := 0; k < p.volume.Depth; k++ {
		for j := 0; j < p.volume.Height; j++ {
			for i := 0; i < p.volume.Width; i++ {
				grid.SetSample(i, j, k, p.volume.Data[idx])
				idx++
			}
		}
	}

	extractor := mc.NewExtractor(p.volume.Width, p.volume.Height, p.volume.Depth)
	extractor.SetGrid(grid)

	start := time.Now()
	extractor.Run(p.params.IsoValue)
	elapsed := time.Since(start)

	p.mesh = &mc.Mesh{Verts: extractor.Vertices(), Tris: extractor.Triangles()}
	p.metrics.Nx, p.metrics.Ny, p.metrics.Nz = p.volume.Width, p.volume.Height, p.volume.Depth
	p.metrics.Vertices = extractor.NVerts()
	p.metrics.Triangles = extractor.NTrigs()
	p.metrics.ExtractionSeconds = elapsed.Seconds()
	cores := p.params.NumCores
	if cores <= 0 {
		cores = runtime.NumCPU()
	}
	p.metrics.CoresUsed = cores
	return nil
}

func writeMesh(path string, mesh *mc.Mesh) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		return meshio.WriteSTL(path, mesh)
	case ".ply":
		return meshio.WritePLY(path, mesh)
	}
	return fmt.Errorf("unsupported mesh output extension in %q (expected .stl or .ply)", path)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
