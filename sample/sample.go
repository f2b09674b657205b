// Package sample implements uniform per-face triangle sampling and the
// micro-triangle area-weighted error aggregation used to turn a cloud
// of per-sample distances into per-face and whole-mesh statistics
// (spec.md §4.5, §4.6).
package sample

import (
	"github.com/arl/math32"

	"github.com/arl/meshdist/geom"
	"github.com/arl/meshdist/mesh"
)

// Lattice is the barycentric sampling grid of a single triangle at
// frequency n: point Points[i][j], for i in 0..n-1, j in 0..n-1-i, sits
// at A + i*u + j*v with u = (B-A)/(n-1), v = (C-A)/(n-1) (spec.md
// §4.5). Frequency n=1 is special-cased below per spec.md §9 open
// question #1 and does not produce a regular lattice.
type Lattice struct {
	N      int32
	Points []geom.Vec3 // flattened; see index()
}

// index returns the flat offset of grid point (i, j) for i+j<=N-1.
func (l *Lattice) index(i, j int32) int32 {
	// Row i starts after rows 0..i-1, which together hold
	// N+(N-1)+...+(N-i+1) = i*N - i*(i-1)/2 points.
	return i*l.N - i*(i-1)/2 + j
}

// At returns grid point (i, j).
func (l *Lattice) At(i, j int32) geom.Vec3 { return l.Points[l.index(i, j)] }

// MicroTriangle is one of the (n-1)^2 small triangles tiling the
// sampled triangle, identified by its three lattice-point indices into
// Lattice.Points. All micro-triangles produced at a given frequency
// have equal area (the barycentric-to-world map is affine, so it
// scales every abstract unit triangle in (i, j) space by the same
// factor).
type MicroTriangle struct {
	I0, I1, I2 int32 // indices into Lattice.Points
}

// SampleTriangle builds the sampling lattice and its micro-triangle
// tiling for triangle (a, b, c) at frequency n (spec.md §4.5): n
// samples per edge, n*(n+1)/2 points total, (n-1)*n/2 "up" and
// (n-2)*(n-1)/2 "down" micro-triangles.
//
// n=1 does not produce a one-point centroid sample: the original tool
// places its single sample at A + 0.5*(B-A) + 0.5*(C-A), the midpoint
// of edge BC, not the triangle's centroid. spec.md §9 open question #1
// requires this literal formula to be preserved rather than "corrected"
// to an actual centroid.
func SampleTriangle(a, b, c geom.Vec3, n int32) (Lattice, []MicroTriangle) {
	if n <= 1 {
		u := b.Sub(a)
		v := c.Sub(a)
		p := a.Add(u.Scale(0.5)).Add(v.Scale(0.5))
		return Lattice{N: 1, Points: []geom.Vec3{p}}, nil
	}

	u := b.Sub(a).Scale(1 / float32(n-1))
	v := c.Sub(a).Scale(1 / float32(n-1))

	npts := n * (n + 1) / 2
	pts := make([]geom.Vec3, 0, npts)
	for i := int32(0); i < n; i++ {
		for j := int32(0); j <= n-1-i; j++ {
			pts = append(pts, a.Add(u.Scale(float32(i))).Add(v.Scale(float32(j))))
		}
	}
	lat := Lattice{N: n, Points: pts}

	tris := make([]MicroTriangle, 0, (n-1)*(n-1))
	for i := int32(0); i <= n-2; i++ {
		for j := int32(0); j <= n-i-2; j++ {
			tris = append(tris, MicroTriangle{lat.index(i, j), lat.index(i, j+1), lat.index(i+1, j)})
		}
	}
	for i := int32(1); i <= n-1; i++ {
		for j := int32(1); j <= n-i-1; j++ {
			tris = append(tris, MicroTriangle{lat.index(i-1, j), lat.index(i, j-1), lat.index(i, j)})
		}
	}
	return lat, tris
}

// FrequencyFromStep picks a sampling frequency for triangle f so that
// its longest edge is covered by samples step apart (spec.md §4.5
// "Sampling frequency from step size"): n = floor(longest/step) + 1,
// with a floor of 1 when step is non-positive.
func FrequencyFromStep(m *mesh.Mesh, f mesh.Face, step float32) int32 {
	if step <= 0 {
		return 1
	}
	a, b, c := m.Verts[f.V0], m.Verts[f.V1], m.Verts[f.V2]
	longest := a.Dist(b)
	if d := b.Dist(c); d > longest {
		longest = d
	}
	if d := c.Dist(a); d > longest {
		longest = d
	}
	n := int32(math32.Floor(longest/step)) + 1
	if n < 1 {
		n = 1
	}
	return n
}
