package mc

import "marchcubes/pkg/gradient"

// Extractor runs Marching Cubes over a Grid, producing a Mesh. It owns the
// per-axis edge-vertex index maps and the method flag (spec 4.1, 4.3).
type Extractor struct {
	grid *Grid
	mesh *Mesh
	log  Logger

	original bool // true: classical method, false: topological (default)

	iso float64
	// ex, ey, ez hold the global vertex id interned for the x/y/z-parallel
	// edge leaving sample (i,j,k), or noVertex if that edge is not cut.
	ex, ey, ez []int32
}

// NewExtractor allocates an extractor bound to a grid of the given
// dimensions. The grid starts zero-filled; callers populate it via
// SetSample before calling Run.
func NewExtractor(nx, ny, nz int) *Extractor {
	return &Extractor{
		grid: NewGrid(nx, ny, nz),
		mesh: newMesh(),
		log:  stdLogger{},
	}
}

// Grid returns the extractor's backing grid for sample population.
func (e *Extractor) Grid() *Grid { return e.grid }

// SetGrid replaces the extractor's backing grid outright, for callers that
// already have a populated Grid from a producer (formula, CSG, isogrid)
// rather than one to fill in place.
func (e *Extractor) SetGrid(g *Grid) { e.grid = g }

// SetLogger installs a custom diagnostics sink, replacing the standard
// log-backed default.
func (e *Extractor) SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	e.log = l
}

// SetMethod selects the classical method (original=true) or the
// topological method (original=false, the default).
func (e *Extractor) SetMethod(original bool) { e.original = original }

// Vertices returns the extracted mesh's vertices. Valid until the next Run.
func (e *Extractor) Vertices() []Vertex { return e.mesh.Vertices() }

// Triangles returns the extracted mesh's triangles. Valid until the next Run.
func (e *Extractor) Triangles() []Triangle { return e.mesh.Triangles() }

// NVerts returns the number of vertices produced by the last Run.
func (e *Extractor) NVerts() int { return e.mesh.NVerts() }

// NTrigs returns the number of triangles produced by the last Run.
func (e *Extractor) NTrigs() int { return e.mesh.NTrigs() }

// Reset discards the current mesh and edge maps without touching the grid's
// samples.
func (e *Extractor) Reset() {
	e.mesh.reset()
	e.ex, e.ey, e.ez = nil, nil, nil
}

func perturb(v float64) float64 {
	if v == 0 {
		return epsilon
	}
	return v
}

// Run extracts the isosurface at the given value, replacing any mesh from a
// previous call (spec 4.1, 4.3). It always completes: malformed
// configurations are logged (spec 7) rather than causing failure.
func (e *Extractor) Run(iso float64) {
	e.mesh.reset()
	e.iso = iso
	nx, ny, nz := e.grid.nx, e.grid.ny, e.grid.nz
	n := nx * ny * nz
	e.ex = make([]int32, n)
	e.ey = make([]int32, n)
	e.ez = make([]int32, n)
	for idx := range e.ex {
		e.ex[idx] = noVertex
		e.ey[idx] = noVertex
		e.ez[idx] = noVertex
	}

	e.computeEdges()

	if e.original {
		ensureClassicTiles()
	}

	for k := 0; k < nz-1; k++ {
		for j := 0; j < ny-1; j++ {
			for i := 0; i < nx-1; i++ {
				e.processCell(i, j, k)
			}
		}
	}
}

// computeEdges runs the edge-intersection pass of spec 4.2: every grid edge
// whose endpoints straddle the isovalue is interned as one mesh vertex,
// positioned by linear interpolation and normaled by interpolating the
// central-difference gradient at its two endpoints.
func (e *Extractor) computeEdges() {
	nx, ny, nz := e.grid.nx, e.grid.ny, e.grid.nz

	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				idx := e.grid.index(i, j, k)
				s0 := perturb(e.grid.samples[idx] - e.iso)

				if i+1 < nx {
					i1 := e.grid.index(i+1, j, k)
					s1 := perturb(e.grid.samples[i1] - e.iso)
					if (s0 > 0) != (s1 > 0) {
						e.ex[idx] = int32(e.internVertex(i, j, k, i+1, j, k, s0, s1))
					}
				}
				if j+1 < ny {
					i1 := e.grid.index(i, j+1, k)
					s1 := perturb(e.grid.samples[i1] - e.iso)
					if (s0 > 0) != (s1 > 0) {
						e.ey[idx] = int32(e.internVertex(i, j, k, i, j+1, k, s0, s1))
					}
				}
				if k+1 < nz {
					i1 := e.grid.index(i, j, k+1)
					s1 := perturb(e.grid.samples[i1] - e.iso)
					if (s0 > 0) != (s1 > 0) {
						e.ez[idx] = int32(e.internVertex(i, j, k, i, j, k+1, s0, s1))
					}
				}
			}
		}
	}
}

func (e *Extractor) internVertex(i0, j0, k0, i1, j1, k1 int, s0, s1 float64) int {
	t := s0 / (s0 - s1)
	x := float64(i0) + t*float64(i1-i0)
	y := float64(j0) + t*float64(j1-j0)
	z := float64(k0) + t*float64(k1-k0)

	g0x, g0y, g0z := gradient.At(e.grid, i0, j0, k0)
	g1x, g1y, g1z := gradient.At(e.grid, i1, j1, k1)
	nx := g0x + t*(g1x-g0x)
	ny := g0y + t*(g1y-g0y)
	nz := g0z + t*(g1z-g0z)

	return e.mesh.appendVertex(Vertex{X: x, Y: y, Z: z, NX: nx, NY: ny, NZ: nz})
}

// cube reads the eight perturbed corner values of cell (i,j,k) in the
// normative corner order.
func (e *Extractor) cube(i, j, k int) [8]float64 {
	var c [8]float64
	for p := 0; p < 8; p++ {
		off := cornerOffset[p]
		v := e.grid.GetSample(i+off[0], j+off[1], k+off[2])
		c[p] = perturb(v - e.iso)
	}
	return c
}

// cellVertexID maps a cell-local edge id (0-11) to the global mesh vertex
// id interned for that edge, or noVertex if the edge is not cut.
func (e *Extractor) cellVertexID(i, j, k, edge int) int {
	switch edge {
	case 0:
		return int(e.ex[e.grid.index(i, j, k)])
	case 1:
		return int(e.ey[e.grid.index(i+1, j, k)])
	case 2:
		return int(e.ex[e.grid.index(i, j+1, k)])
	case 3:
		return int(e.ey[e.grid.index(i, j, k)])
	case 4:
		return int(e.ex[e.grid.index(i, j, k+1)])
	case 5:
		return int(e.ey[e.grid.index(i+1, j, k+1)])
	case 6:
		return int(e.ex[e.grid.index(i, j+1, k+1)])
	case 7:
		return int(e.ey[e.grid.index(i, j, k+1)])
	case 8:
		return int(e.ez[e.grid.index(i, j, k)])
	case 9:
		return int(e.ez[e.grid.index(i+1, j, k)])
	case 10:
		return int(e.ez[e.grid.index(i+1, j+1, k)])
	case 11:
		return int(e.ez[e.grid.index(i, j+1, k)])
	}
	e.log.Printf("mc: cellVertexID received invalid edge id %d at cell (%d,%d,%d)", edge, i, j, k)
	return noVertex
}

// synthesizeCentralVertex averages every one of the cell's 12 edges that
// carries an intersection vertex, not just the edges of the loops being
// connected, producing the extra interior point used to connect separate
// loops (spec 4.6).
func (e *Extractor) synthesizeCentralVertex(i, j, k int) int {
	var x, y, z, nx, ny, nz float64
	count := 0
	for edge := 0; edge < 12; edge++ {
		vid := e.cellVertexID(i, j, k, edge)
		if vid == noVertex {
			continue
		}
		v := e.mesh.Verts[vid]
		x += v.X
		y += v.Y
		z += v.Z
		nx += v.NX
		ny += v.NY
		nz += v.NZ
		count++
	}
	if count == 0 {
		e.log.Printf("mc: central vertex requested at cell (%d,%d,%d) with no cut edges", i, j, k)
		return noVertex
	}
	f := 1 / float64(count)
	return e.mesh.appendVertex(Vertex{
		X: x * f, Y: y * f, Z: z * f,
		NX: nx * f, NY: ny * f, NZ: nz * f,
	})
}

// processCell dispatches cell (i,j,k) to the classical or topological
// triangulation, per the method flag.
func (e *Extractor) processCell(i, j, k int) {
	cube := e.cube(i, j, k)

	lambda := 0
	for p := 0; p < 8; p++ {
		if cube[p] > 0 {
			lambda |= 1 << uint(p)
		}
	}
	if lambda == 0 || lambda == 255 {
		return
	}

	if e.original {
		e.processCellClassic(i, j, k, lambda)
		return
	}
	e.processCellTopological(i, j, k, cube)
}

func (e *Extractor) processCellClassic(i, j, k, lambda int) {
	row := &casesClassic[lambda]
	nt := classicTriangleCount(row)
	for t := 0; t < nt; t++ {
		e.emitTriangle(i, j, k, row[3*t], row[3*t+1], row[3*t+2])
	}
}

// processCellTopological triangulates the cell by tracing the loop graph
// (topology.go) and deciding, via the interior test, whether separate
// loops must be connected through a synthesized central vertex (spec 4.5,
// 4.6).
func (e *Extractor) processCellTopological(i, j, k int, cube [8]float64) {
	loops := buildLoops(cube)
	if len(loops) == 0 {
		return
	}
	if len(loops) == 1 {
		e.emitFan(i, j, k, loops[0], noVertex)
		return
	}

	connect := decideInterior(cube, loops, e.log)
	if !connect {
		for _, loop := range loops {
			e.emitFan(i, j, k, loop, noVertex)
		}
		return
	}

	center := e.synthesizeCentralVertex(i, j, k)
	for _, loop := range loops {
		e.emitFan(i, j, k, loop, center)
	}
}

// emitFan triangulates a single loop by fanning from its first vertex, or
// from center if the interior test connected this loop to others.
func (e *Extractor) emitFan(i, j, k int, loop []int, center int) {
	if len(loop) < 3 {
		e.log.Printf("mc: degenerate loop of length %d at cell (%d,%d,%d)", len(loop), i, j, k)
		return
	}
	if center == noVertex {
		for idx := 1; idx < len(loop)-1; idx++ {
			e.emitTriangle(i, j, k, loop[0], loop[idx], loop[idx+1])
		}
		return
	}
	for idx := 0; idx < len(loop); idx++ {
		a := loop[idx]
		b := loop[(idx+1)%len(loop)]
		e.emitTriangleCentered(i, j, k, center, a, b)
	}
}

// emitTriangle resolves three cell-local edge ids to mesh vertices and
// appends a triangle, flipping its winding if it disagrees with the
// averaged vertex normals (spec invariant 4).
func (e *Extractor) emitTriangle(i, j, k, ea, eb, ec int) {
	va := e.cellVertexID(i, j, k, ea)
	vb := e.cellVertexID(i, j, k, eb)
	vc := e.cellVertexID(i, j, k, ec)
	e.appendOriented(i, j, k, va, vb, vc)
}

func (e *Extractor) emitTriangleCentered(i, j, k, center, ea, eb int) {
	va := e.cellVertexID(i, j, k, ea)
	vb := e.cellVertexID(i, j, k, eb)
	e.appendOriented(i, j, k, center, va, vb)
}

func (e *Extractor) appendOriented(i, j, k, va, vb, vc int) {
	if va == noVertex || vb == noVertex || vc == noVertex || va == vb || vb == vc || va == vc {
		e.log.Printf("mc: skipped degenerate triangle #%d (%d,%d,%d) at cell (%d,%d,%d), corners %v", len(e.mesh.Tris), va, vb, vc, i, j, k, e.cube(i, j, k))
		return
	}
	pa, pb, pc := e.mesh.Verts[va], e.mesh.Verts[vb], e.mesh.Verts[vc]

	ux, uy, uz := pb.X-pa.X, pb.Y-pa.Y, pb.Z-pa.Z
	wx, wy, wz := pc.X-pa.X, pc.Y-pa.Y, pc.Z-pa.Z
	fx := uy*wz - uz*wy
	fy := uz*wx - ux*wz
	fz := ux*wy - uy*wx

	nx := pa.NX + pb.NX + pc.NX
	ny := pa.NY + pb.NY + pc.NY
	nz := pa.NZ + pb.NZ + pc.NZ

	if fx*nx+fy*ny+fz*nz < 0 {
		vb, vc = vc, vb
	}
	e.mesh.appendTriangle(va, vb, vc)
}
