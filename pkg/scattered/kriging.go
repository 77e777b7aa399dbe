// Package scattered interpolates scattered 3-D samples onto a dense grid
// using ordinary kriging, for producers that start from an irregular point
// cloud (e.g. a sparse iso-grid file or manually authored control points)
// rather than a formula or CSG tree.
package scattered

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// VariogramModel selects the spatial-correlation model used by the kriging
// system.
type VariogramModel int

const (
	Spherical VariogramModel = iota
	Exponential
	Gaussian
)

// Params holds the variogram parameters for the kriging system.
type Params struct {
	Range  float64
	Sill   float64
	Nugget float64
	Model  VariogramModel
}

// Point is a 3-D sample location.
type Point struct {
	X, Y, Z float64
}

// Compare implements kdtree.Comparable.
func (p Point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(Point)
	switch d {
	case 0:
		return p.X - q.X
	case 1:
		return p.Y - q.Y
	case 2:
		return p.Z - q.Z
	default:
		panic("scattered: illegal dimension")
	}
}

// Dims implements kdtree.Comparable.
func (p Point) Dims() int { return 3 }

// Distance implements kdtree.Comparable as squared Euclidean distance.
func (p Point) Distance(c kdtree.Comparable) float64 {
	q := c.(Point)
	dx, dy, dz := p.X-q.X, p.Y-q.Y, p.Z-q.Z
	return dx*dx + dy*dy + dz*dz
}

// points implements kdtree.Interface over a slice of Point.
type points []Point

func (p points) Index(i int) kdtree.Comparable         { return p[i] }
func (p points) Len() int                              { return len(p) }
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }
func (p points) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(plane{points: p, dim: d}, kdtree.MedianOfRandoms(plane{points: p, dim: d}, 100))
}

type plane struct {
	points points
	dim    kdtree.Dim
}

func (pl plane) Len() int { return len(pl.points) }
func (pl plane) Less(i, j int) bool {
	switch pl.dim {
	case 0:
		return pl.points[i].X < pl.points[j].X
	case 1:
		return pl.points[i].Y < pl.points[j].Y
	default:
		return pl.points[i].Z < pl.points[j].Z
	}
}
func (pl plane) Swap(i, j int) { pl.points[i], pl.points[j] = pl.points[j], pl.points[i] }
func (pl plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{points: pl.points[start:end], dim: pl.dim}
}

// Interpolator performs ordinary kriging interpolation of scattered 3-D
// samples, using a KD-tree to restrict each estimate to nearby neighbors.
type Interpolator struct {
	points     []Point
	values     []float64
	params     Params
	tree       *kdtree.Tree
	neighborCap int
}

// NewInterpolator builds an interpolator over the given samples. params'
// Range/Sill/Nugget are used directly; callers that don't know good values
// can start from FitVariogram.
func NewInterpolator(pts []Point, values []float64, params Params, neighborCap int) (*Interpolator, error) {
	if len(pts) != len(values) {
		return nil, fmt.Errorf("scattered: %d points but %d values", len(pts), len(values))
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("scattered: no samples")
	}
	if neighborCap <= 0 {
		neighborCap = 32
	}
	k := &Interpolator{points: pts, values: values, params: params, neighborCap: neighborCap}
	k.tree = kdtree.New(points(pts), true)
	return k, nil
}

// FitVariogram estimates Range/Sill/Nugget by a coarse grid search scored
// with leave-one-out cross-validation, evaluated in parallel across
// candidate parameter sets.
func FitVariogram(pts []Point, values []float64, model VariogramModel, typicalSpacing float64) Params {
	rangeVals := []float64{typicalSpacing * 2, typicalSpacing * 4, typicalSpacing * 8}
	sillVals := []float64{0.5, 1.0, 1.5}
	nuggetVals := []float64{0.0, 0.1, 0.2}

	type candidate struct {
		params Params
		err    float64
	}
	results := make(chan candidate)
	var wg sync.WaitGroup

	for _, r := range rangeVals {
		for _, s := range sillVals {
			for _, n := range nuggetVals {
				wg.Add(1)
				p := Params{Range: r, Sill: s, Nugget: n, Model: model}
				go func(p Params) {
					defer wg.Done()
					results <- candidate{p, crossValidate(pts, values, p)}
				}(p)
			}
		}
	}
	go func() { wg.Wait(); close(results) }()

	best := Params{Model: model, Range: typicalSpacing * 4, Sill: 1, Nugget: 0}
	bestErr := math.MaxFloat64
	for c := range results {
		if c.err < bestErr {
			bestErr = c.err
			best = c.params
		}
	}
	return best
}

func crossValidate(pts []Point, values []float64, params Params) float64 {
	n := len(pts)
	if n > 64 {
		n = 64 // cap the cross-validation set for speed on large clouds
	}
	total := 0.0
	for i := 0; i < n; i++ {
		trainPts := make([]Point, 0, len(pts)-1)
		trainVals := make([]float64, 0, len(pts)-1)
		for j, p := range pts {
			if j == i {
				continue
			}
			trainPts = append(trainPts, p)
			trainVals = append(trainVals, values[j])
		}
		est := estimateDirect(pts[i], trainPts, trainVals, params)
		d := values[i] - est
		total += d * d
	}
	return math.Sqrt(total / float64(n))
}

// estimateDirect solves the full kriging system against every supplied
// point, with no neighbor restriction; used only for cross-validation on
// small candidate sets.
func estimateDirect(at Point, pts []Point, values []float64, params Params) float64 {
	if len(pts) == 0 {
		return 0
	}
	weights := solveKriging(at, pts, params)
	est := 0.0
	for i, w := range weights {
		est += w * values[i]
	}
	return est
}

// Estimate returns the kriging estimate at (x,y,z), restricted to the
// nearest neighborCap samples found via the KD-tree.
func (k *Interpolator) Estimate(x, y, z float64) float64 {
	at := Point{x, y, z}
	nbrPts, nbrVals := k.neighbors(at)
	if len(nbrPts) == 0 {
		return 0
	}
	weights := solveKriging(at, nbrPts, k.params)
	est := 0.0
	for i, w := range weights {
		est += w * nbrVals[i]
	}
	return est
}

func (k *Interpolator) neighbors(at Point) ([]Point, []float64) {
	if len(k.points) <= k.neighborCap {
		return k.points, k.values
	}
	keeper := kdtree.NewNKeeper(k.neighborCap)
	k.tree.NearestSet(keeper, at)

	type hit struct {
		p Point
		d float64
	}
	hits := make([]hit, 0, keeper.Len())
	for _, item := range keeper.Heap {
		if item.Comparable == nil {
			continue
		}
		hits = append(hits, hit{item.Comparable.(Point), item.Dist})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].d < hits[j].d })

	pts := make([]Point, len(hits))
	vals := make([]float64, len(hits))
	for i, h := range hits {
		pts[i] = h.p
		for j, p := range k.points {
			if p == h.p {
				vals[i] = k.values[j]
				break
			}
		}
	}
	return pts, vals
}

// solveKriging builds and solves the ordinary-kriging linear system for one
// target point against the given samples, returning per-sample weights.
func solveKriging(at Point, pts []Point, params Params) []float64 {
	n := len(pts)
	if n == 1 {
		return []float64{1}
	}

	// n+1 system: kriging weights plus the Lagrange multiplier enforcing
	// that the weights sum to one.
	a := mat.NewDense(n+1, n+1, nil)
	b := mat.NewVecDense(n+1, nil)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			h := distance(pts[i], pts[j])
			a.Set(i, j, variogram(h, params))
		}
		a.Set(i, n, 1)
		a.Set(n, i, 1)
		b.SetVec(i, variogram(distance(at, pts[i]), params))
	}
	b.SetVec(n, 1)

	var lu mat.LU
	lu.Factorize(a)
	x := mat.NewVecDense(n+1, nil)
	if err := lu.SolveVecTo(x, false, b); err != nil {
		// Near-singular system (coincident or collinear samples): fall
		// back to inverse-distance weighting.
		return inverseDistanceWeights(at, pts)
	}

	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		weights[i] = x.AtVec(i)
	}
	return weights
}

func inverseDistanceWeights(at Point, pts []Point) []float64 {
	weights := make([]float64, len(pts))
	total := 0.0
	for i, p := range pts {
		d := distance(at, p)
		if d < 1e-10 {
			for j := range weights {
				weights[j] = 0
			}
			weights[i] = 1
			return weights
		}
		weights[i] = 1 / d
		total += weights[i]
	}
	if total > 0 {
		for i := range weights {
			weights[i] /= total
		}
	}
	return weights
}

func distance(a, b Point) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func variogram(h float64, params Params) float64 {
	if h == 0 {
		return 0
	}
	gamma := params.Nugget
	switch params.Model {
	case Spherical:
		if h < params.Range {
			r := h / params.Range
			gamma += params.Sill * (1.5*r - 0.5*r*r*r)
		} else {
			gamma += params.Sill
		}
	case Exponential:
		gamma += params.Sill * (1 - math.Exp(-3*h/params.Range))
	case Gaussian:
		gamma += params.Sill * (1 - math.Exp(-3*h*h/(params.Range*params.Range)))
	}
	return gamma
}

// FillGrid evaluates the interpolator at every lattice point of an
// nx*ny*nz grid spaced by cell, using numCPU goroutines, and returns the
// samples in x-fastest order matching mc.Grid's layout.
func FillGrid(k *Interpolator, nx, ny, nz int, origin Point, cell float64) []float64 {
	out := make([]float64, nx*ny*nz)
	numWorkers := runtime.NumCPU()
	var wg sync.WaitGroup
	rowsPerWorker := (nz + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		k0 := w * rowsPerWorker
		k1 := k0 + rowsPerWorker
		if k1 > nz {
			k1 = nz
		}
		if k0 >= k1 {
			continue
		}
		wg.Add(1)
		go func(k0, k1 int) {
			defer wg.Done()
			for kk := k0; kk < k1; kk++ {
				for j := 0; j < ny; j++ {
					for i := 0; i < nx; i++ {
						x := origin.X + float64(i)*cell
						y := origin.Y + float64(j)*cell
						z := origin.Z + float64(kk)*cell
						out[(kk*ny+j)*nx+i] = k.Estimate(x, y, z)
					}
				}
			}
		}(k0, k1)
	}
	wg.Wait()
	return out
}
