// Package kernel implements the per-triangle geometric precomputation
// and the point-to-surface distance primitives used by the ring-search
// nearest-point query (spec.md §4.2, §4.4).
package kernel

import (
	"github.com/arl/math32"

	"github.com/arl/meshdist/geom"
	"github.com/arl/meshdist/mesh"
)

// Info holds the precomputed per-triangle data needed by the
// point-to-triangle distance primitive (spec.md §4.2): vertices
// reordered so AB is the longest side, the triangle's plane normal,
// its area, and the three outward half-space normals used to classify
// which Voronoi region of the triangle a query point falls into.
type Info struct {
	A, B, C geom.Vec3 // reordered: |AB| >= |BC|, |AB| >= |CA|

	Normal geom.Vec3 // unit normal of the plane through A, B, C
	Area   float32

	// Outward half-space normals, one per edge, lying in the
	// triangle's plane and pointing away from the opposite vertex.
	// nhsAB.Dot(p-A) > 0 means p lies on the far side of AB from C.
	NhsAB, NhsBC, NhsCA geom.Vec3

	// WideAtC records whether C's interior angle is obtuse; when it
	// is, the outer-BC branch of the distance primitive falls through
	// to test outer-CA directly instead of assuming region BC exactly
	// borders region CA (spec.md §9 open question #2).
	WideAtC bool

	Degenerate bool
}

// NewInfo precomputes Info for the triangle indexed by f in m
// (spec.md §4.2).
func NewInfo(m *mesh.Mesh, f mesh.Face) Info {
	v0, v1, v2 := m.Verts[f.V0], m.Verts[f.V1], m.Verts[f.V2]
	a, b, c := reorderLongestSide(v0, v1, v2)

	ab := b.Sub(a)
	bc := c.Sub(b)
	ca := a.Sub(c)

	cross := ab.Cross(c.Sub(a))
	area := 0.5 * cross.Len()

	info := Info{A: a, B: b, C: c, Area: area}
	info.Degenerate = area < geom.DegenerateFloor()
	if info.Degenerate {
		return info
	}

	n := cross
	n.Normalize()
	info.Normal = n

	info.NhsAB = ab.Cross(n)
	info.NhsBC = bc.Cross(n)
	info.NhsCA = ca.Cross(n)

	// C is "wide" when the angle at C is obtuse, i.e. when
	// AB^2 > CA^2 + CB^2, which is equivalent to dot(CA, CB) < 0.
	ac := a.Sub(c)
	bcv := b.Sub(c)
	info.WideAtC = ac.Dot(bcv) < 0

	return info
}

// reorderLongestSide rotates (v0, v1, v2) cyclically so that the
// returned (a, b, c) always has |a-b| as the longest side (spec.md
// §4.2 step 1). Only cyclic (even) permutations are used, so the
// triangle's orientation (and hence its face normal sign) is always
// preserved.
func reorderLongestSide(v0, v1, v2 geom.Vec3) (a, b, c geom.Vec3) {
	d01 := v0.DistSqr(v1)
	d12 := v1.DistSqr(v2)
	d20 := v2.DistSqr(v0)

	switch {
	case d01 >= d12 && d01 >= d20:
		return v0, v1, v2
	case d12 >= d01 && d12 >= d20:
		return v1, v2, v0
	default:
		return v2, v0, v1
	}
}

// SqDistPoint is the squared distance and closest point returned by
// PointTriangleDistSqr.
type SqDistPoint struct {
	DistSqr float32
	Closest geom.Vec3
}

// PointTriangleDistSqr computes the squared distance from p to the
// closest point on triangle info (spec.md §4.4.1). The branch
// structure is load-bearing and intentionally mirrors the original
// region classification exactly (spec.md §9 open question #2): the
// outer-BC branch, when the angle at C is wide, falls through to the
// outer-CA test rather than assuming BC and CA partition the plane's
// exterior symmetrically.
func PointTriangleDistSqr(info *Info, p geom.Vec3) SqDistPoint {
	ap := p.Sub(info.A)

	// Project p onto the triangle's plane first; region classification
	// only needs the in-plane component.
	distToPlane := ap.Dot(info.Normal)
	pPlane := p.Sub(info.Normal.Scale(distToPlane))

	outsideAB := info.NhsAB.Dot(pPlane.Sub(info.A)) > 0
	outsideBC := info.NhsBC.Dot(pPlane.Sub(info.B)) > 0
	outsideCA := info.NhsCA.Dot(pPlane.Sub(info.C)) > 0

	var closest geom.Vec3
	switch {
	case outsideAB:
		closest = closestOnSegment(info.A, info.B, p)
	case outsideBC:
		if info.WideAtC && p.Sub(info.C).Dot(info.B.Sub(info.C)) < 0 {
			// Wide angle at C and p projects beyond C along BC: that
			// part of BC's exterior overlaps CA's, so resolve against
			// CA instead.
			closest = closestOnSegment(info.C, info.A, p)
		} else {
			closest = closestOnSegment(info.B, info.C, p)
		}
	case outsideCA:
		closest = closestOnSegment(info.C, info.A, p)
	default:
		closest = pPlane
	}

	d := p.DistSqr(closest)
	return SqDistPoint{DistSqr: d, Closest: closest}
}

// closestOnSegment returns the closest point to p on segment [a, b].
func closestOnSegment(a, b, p geom.Vec3) geom.Vec3 {
	ab := b.Sub(a)
	lenSqr := ab.LenSqr()
	if lenSqr < geom.DegenerateFloor() {
		return a
	}
	t := p.Sub(a).Dot(ab) / lenSqr
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}
