// Package csg implements a minimal constructive-solid-geometry tree of
// signed-distance primitives, usable anywhere a scalar field is needed
// (directly as a grid producer, or bound to formula's "c" variable).
package csg

import "math"

// Node evaluates a signed distance (negative inside, positive outside) at
// a point. It has the same method set as formula.Binder, so a CSG tree can
// be bound directly as a formula's c variable.
type Node interface {
	Eval(x, y, z float64) float64
}

// Sphere is a signed-distance sphere centered at (CX,CY,CZ) with radius R.
type Sphere struct {
	CX, CY, CZ, R float64
}

func (s Sphere) Eval(x, y, z float64) float64 {
	dx, dy, dz := x-s.CX, y-s.CY, z-s.CZ
	return math.Sqrt(dx*dx+dy*dy+dz*dz) - s.R
}

// Box is an axis-aligned signed-distance box centered at (CX,CY,CZ) with
// half-extents (HX,HY,HZ).
type Box struct {
	CX, CY, CZ, HX, HY, HZ float64
}

func (b Box) Eval(x, y, z float64) float64 {
	qx := math.Abs(x-b.CX) - b.HX
	qy := math.Abs(y-b.CY) - b.HY
	qz := math.Abs(z-b.CZ) - b.HZ
	outside := math.Sqrt(square(math.Max(qx, 0))+square(math.Max(qy, 0))+square(math.Max(qz, 0)))
	inside := math.Min(math.Max(qx, math.Max(qy, qz)), 0)
	return outside + inside
}

func square(v float64) float64 { return v * v }

// Plane is a signed-distance half-space: negative on the side the normal
// (NX,NY,NZ) points away from. The normal need not be unit length; Eval
// divides by its magnitude.
type Plane struct {
	NX, NY, NZ, D float64
}

func (p Plane) Eval(x, y, z float64) float64 {
	mag := math.Sqrt(p.NX*p.NX + p.NY*p.NY + p.NZ*p.NZ)
	if mag < 1e-12 {
		return 0
	}
	return (p.NX*x+p.NY*y+p.NZ*z+p.D) / mag
}

// Union is the signed-distance minimum of its children (outside both ⇒
// outside the union).
type Union struct{ A, B Node }

func (u Union) Eval(x, y, z float64) float64 { return math.Min(u.A.Eval(x, y, z), u.B.Eval(x, y, z)) }

// Intersection is the signed-distance maximum of its children.
type Intersection struct{ A, B Node }

func (n Intersection) Eval(x, y, z float64) float64 {
	return math.Max(n.A.Eval(x, y, z), n.B.Eval(x, y, z))
}

// Difference subtracts B from A: inside A and outside B.
type Difference struct{ A, B Node }

func (d Difference) Eval(x, y, z float64) float64 {
	return math.Max(d.A.Eval(x, y, z), -d.B.Eval(x, y, z))
}

// FillGrid samples node over an nx*ny*nz grid anchored at origin with
// uniform cell spacing, matching mc.Grid's x-fastest sample order.
func FillGrid(node Node, nx, ny, nz int, originX, originY, originZ, cell float64) []float64 {
	out := make([]float64, nx*ny*nz)
	idx := 0
	for k := 0; k < nz; k++ {
		z := originZ + float64(k)*cell
		for j := 0; j < ny; j++ {
			y := originY + float64(j)*cell
			for i := 0; i < nx; i++ {
				x := originX + float64(i)*cell
				out[idx] = node.Eval(x, y, z)
				idx++
			}
		}
	}
	return out
}
