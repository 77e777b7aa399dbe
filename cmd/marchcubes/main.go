package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"marchcubes/pkg/config"
	"marchcubes/pkg/csg"
	"marchcubes/pkg/formula"
	"marchcubes/pkg/gridview"
	"marchcubes/pkg/isogrid"
	"marchcubes/pkg/mc"
	"marchcubes/pkg/meshio"
	"marchcubes/pkg/pipeline"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (defaults used if omitted)")
	outputName := flag.String("output", "", "Output mesh filename (.stl or .ply); overrides the config")
	formulaExpr := flag.String("formula", "", "Scalar field formula over x,y,z[,c,i]; overrides the config's producer")
	nx := flag.Int("nx", 0, "Grid resolution along x; overrides the config")
	ny := flag.Int("ny", 0, "Grid resolution along y; overrides the config")
	nz := flag.Int("nz", 0, "Grid resolution along z; overrides the config")
	isoValue := flag.Float64("iso", 0, "Isosurface level")
	hasIso := false
	classic := flag.Bool("classic", false, "Use the classical (non-topological) method instead of the default")
	extractSlices := flag.Bool("extract-slices", false, "Save grid slice previews along all axes before extraction")
	slicesDir := flag.String("slices-dir", "grid_slices", "Directory to save extracted slice previews")
	pointsDir := flag.String("points", "", "Directory of scattered \"x y z value\" point files; runs the kriging pipeline instead of a single producer")
	denoise := flag.Bool("denoise", false, "Apply shearlet-based denoising to the kriged volume (only with -points)")
	cellSize := flag.Float64("cell", 1, "Grid spacing used when kriging -points onto a volume")
	numCores := flag.Int("cores", 0, "CPU cores to use for the -points pipeline (0: all available)")
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "iso" {
			hasIso = true
		}
	})

	fmt.Println("================================")
	fmt.Println("TOPOLOGICALLY CONSISTENT MARCHING CUBES ISOSURFACE EXTRACTION")
	fmt.Println("Based on Lewiner, Lopes, Vieira and Tavares (2003)")
	fmt.Println("================================")

	if *pointsDir != "" {
		runPipeline(*pointsDir, *outputName, *cellSize, *isoValue, *numCores, *denoise)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *formulaExpr != "" {
		cfg.Producer.Kind = "formula"
		cfg.Producer.Formula = *formulaExpr
	}
	if *nx > 0 {
		cfg.Grid.Nx = *nx
	}
	if *ny > 0 {
		cfg.Grid.Ny = *ny
	}
	if *nz > 0 {
		cfg.Grid.Nz = *nz
	}
	if hasIso {
		cfg.Processing.IsoValue = *isoValue
	}
	if *classic {
		cfg.Processing.ClassicMethod = true
	}
	if *outputName != "" {
		cfg.Output.Path = *outputName
	}

	grid, err := buildGrid(cfg)
	if err != nil {
		log.Fatalf("Failed to build sample grid: %v", err)
	}

	if *extractSlices {
		fmt.Println("\nSaving grid slice previews along all axes...")
		lo, hi := gridview.ValueRange(grid)
		viewer := gridview.NewViewer(grid, lo, hi)
		for _, axis := range []string{"x", "y", "z"} {
			axisDir := filepath.Join(*slicesDir, axis)
			fmt.Printf("Saving %s-axis slices to: %s\n", axis, axisDir)
			if err := viewer.SaveSliceSequence(axis, axisDir); err != nil {
				log.Printf("Warning: failed to save %s-axis slices: %v", axis, err)
			}
		}
	}

	extractor := mc.NewExtractor(cfg.Grid.Nx, cfg.Grid.Ny, cfg.Grid.Nz)
	if !cfg.Output.Verbose {
		extractor.SetLogger(nil)
	}
	extractor.SetMethod(cfg.Processing.ClassicMethod)
	extractor.SetGrid(grid)

	fmt.Println("\nExtracting isosurface...")
	startTime := time.Now()
	extractor.Run(cfg.Processing.IsoValue)
	elapsed := time.Since(startTime)

	fmt.Printf("Extraction completed in %.3f seconds\n", elapsed.Seconds())
	fmt.Printf("Vertices: %d, Triangles: %d\n", extractor.NVerts(), extractor.NTrigs())

	mesh := &mc.Mesh{Verts: extractor.Vertices(), Tris: extractor.Triangles()}
	if err := writeMesh(cfg.Output.Path, mesh); err != nil {
		log.Fatalf("Failed to write mesh: %v", err)
	}
	fmt.Printf("Mesh written to: %s\n", cfg.Output.Path)
}

// runPipeline drives the scattered-point-to-mesh pipeline in place of the
// single-producer flow above, when -points is given.
func runPipeline(pointsDir, output string, cellSize, isoValue float64, numCores int, denoiseVolume bool) {
	if output == "" {
		output = "mesh.stl"
	}

	p := pipeline.NewPipeline(&pipeline.Params{
		PointsDir:  pointsDir,
		OutputFile: output,
		NumCores:   numCores,
		CellSize:   cellSize,
		IsoValue:   isoValue,
		Denoise:    denoiseVolume,
	})

	if err := p.Process(); err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	metrics := p.GetMetrics()
	fmt.Printf("Points loaded: %d\n", metrics.PointCount)
	fmt.Printf("Grid: %dx%dx%d\n", metrics.Nx, metrics.Ny, metrics.Nz)
	fmt.Printf("Extraction completed in %.3f seconds (denoising bounded to %d core(s))\n", metrics.ExtractionSeconds, metrics.CoresUsed)
	fmt.Printf("Vertices: %d, Triangles: %d\n", metrics.Vertices, metrics.Triangles)
	fmt.Printf("Mesh written to: %s\n", output)
}

// buildGrid samples cfg's configured producer into an mc.Grid.
func buildGrid(cfg *config.Config) (*mc.Grid, error) {
	nx, ny, nz := cfg.Grid.Nx, cfg.Grid.Ny, cfg.Grid.Nz
	ox, oy, oz := cfg.Grid.OriginX, cfg.Grid.OriginY, cfg.Grid.OriginZ
	cell := cfg.Grid.CellSize
	if cell == 0 {
		cell = 1
	}

	switch cfg.Producer.Kind {
	case "formula":
		expr, err := formula.Parse(cfg.Producer.Formula)
		if err != nil {
			return nil, fmt.Errorf("main: %w", err)
		}
		grid := mc.NewGrid(nx, ny, nz)
		for k := 0; k < nz; k++ {
			z := oz + float64(k)*cell
			for j := 0; j < ny; j++ {
				y := oy + float64(j)*cell
				for i := 0; i < nx; i++ {
					x := ox + float64(i)*cell
					v, err := expr.Eval(x, y, z)
					if err != nil {
						return nil, fmt.Errorf("main: evaluating formula at (%g,%g,%g): %w", x, y, z, err)
					}
					grid.SetSample(i, j, k, v)
				}
			}
		}
		return grid, nil

	case "csg":
		node, err := parseCSG(cfg.Producer.Formula)
		if err != nil {
			return nil, fmt.Errorf("main: %w", err)
		}
		samples := csg.FillGrid(node, nx, ny, nz, ox, oy, oz, cell)
		grid := mc.NewGrid(nx, ny, nz)
		idx := 0
		for k := 0; k < nz; k++ {
			for j := 0; j < ny; j++ {
				for i := 0; i < nx; i++ {
					grid.SetSample(i, j, k, samples[idx])
					idx++
				}
			}
		}
		return grid, nil

	case "grid":
		grid, _, _, _, _, err := isogrid.Read(cfg.Producer.GridFile)
		if err != nil {
			return nil, fmt.Errorf("main: %w", err)
		}
		return grid, nil
	}

	return nil, fmt.Errorf("main: unknown producer kind %q", cfg.Producer.Kind)
}

// parseCSG builds a single csg.Sphere from a "sphere cx cy cz r" spec; it is
// a minimal stand-in for a full CSG description language, enough to drive
// the producer from the command line or a config file.
func parseCSG(spec string) (csg.Node, error) {
	fields := strings.Fields(spec)
	if len(fields) == 5 && fields[0] == "sphere" {
		var cx, cy, cz, r float64
		if _, err := fmt.Sscanf(strings.Join(fields[1:], " "), "%g %g %g %g", &cx, &cy, &cz, &r); err != nil {
			return nil, fmt.Errorf("parsing sphere spec %q: %w", spec, err)
		}
		return csg.Sphere{CX: cx, CY: cy, CZ: cz, R: r}, nil
	}
	return nil, fmt.Errorf("unrecognized CSG spec %q (expected \"sphere cx cy cz r\")", spec)
}

func writeMesh(path string, mesh *mc.Mesh) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		return meshio.WriteSTL(path, mesh)
	case ".ply":
		return meshio.WritePLY(path, mesh)
	}
	return fmt.Errorf("main: unsupported mesh output extension in %q (expected .stl or .ply)", path)
}
