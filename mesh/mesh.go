// Package mesh defines the canonical triangular-mesh representation
// produced by the loader and consumed by the cell grid, the distance
// kernel and the sampler.
package mesh

import (
	"github.com/arl/assertgo"
	"github.com/arl/gogeo/f32/d3"

	"github.com/arl/meshdist/geom"
)

// Face is an ordered triple of 0-based vertex indices.
type Face struct {
	V0, V1, V2 int32
}

// Mesh is an immutable (after load) triangular surface mesh: a vertex
// array, a face array and the axis-aligned bounding box of the
// vertices. Optional per-vertex and per-face normals may be present
// from the source file; the distance engine never reads them.
type Mesh struct {
	Verts []geom.Vec3
	Faces []Face

	VertNormals []geom.Vec3 // nil if absent from the source file
	FaceNormals []geom.Vec3 // nil if absent from the source file

	BMin, BMax geom.Vec3

	incident [][]int32 // lazy, see IncidentFaces
}

// NumVerts returns the number of vertices.
func (m *Mesh) NumVerts() int { return len(m.Verts) }

// NumFaces returns the number of faces.
func (m *Mesh) NumFaces() int { return len(m.Faces) }

// BBoxDiag returns the length of the bounding box diagonal, used to
// express error statistics as a percentage (spec.md §6).
func (m *Mesh) BBoxDiag() float32 {
	return m.BMax.Sub(m.BMin).Len()
}

// CalcBounds recomputes BMin/BMax from Verts. Grounded on
// recast.CalcBounds: copy the first vertex into both bounds, then widen
// with Vec3Min/Vec3Max for the rest.
func (m *Mesh) CalcBounds() {
	assert.True(len(m.Verts) > 0, "CalcBounds: mesh has no vertices")

	bmin := geom.New(m.Verts[0].X(), m.Verts[0].Y(), m.Verts[0].Z())
	bmax := geom.New(m.Verts[0].X(), m.Verts[0].Y(), m.Verts[0].Z())
	for _, v := range m.Verts[1:] {
		d3.Vec3Min(bmin, v)
		d3.Vec3Max(bmax, v)
	}
	m.BMin, m.BMax = bmin, bmax
}

// UnionBounds returns the bounding box of the union of m and other,
// used to size the cell grid over a source/target mesh pair (spec.md
// §4.3).
func UnionBounds(m, other *Mesh) (bmin, bmax geom.Vec3) {
	bmin = geom.New(
		min32(m.BMin.X(), other.BMin.X()),
		min32(m.BMin.Y(), other.BMin.Y()),
		min32(m.BMin.Z(), other.BMin.Z()),
	)
	bmax = geom.New(
		max32(m.BMax.X(), other.BMax.X()),
		max32(m.BMax.Y(), other.BMax.Y()),
		max32(m.BMax.Z(), other.BMax.Z()),
	)
	return
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// MeanFaceArea returns the mean area of all faces, used by the cell
// grid to derive its average cell side (spec.md §4.3 step 1).
func (m *Mesh) MeanFaceArea() float32 {
	if len(m.Faces) == 0 {
		return 0
	}
	var sum float32
	for _, f := range m.Faces {
		sum += geom.TriangleArea(m.Verts[f.V0], m.Verts[f.V1], m.Verts[f.V2])
	}
	return sum / float32(len(m.Faces))
}

// IncidentFaces returns, for each vertex index, the list of face
// indices that reference it. Built lazily on first call and cached;
// used to attribute per-face error back to vertices (spec.md §2,
// "Incident-face table") and to derive per-vertex normals on demand
// (SPEC_FULL.md §C) when the source file didn't carry any.
func (m *Mesh) IncidentFaces() [][]int32 {
	if m.incident != nil {
		return m.incident
	}
	table := make([][]int32, len(m.Verts))
	for fi, f := range m.Faces {
		table[f.V0] = append(table[f.V0], int32(fi))
		table[f.V1] = append(table[f.V1], int32(fi))
		table[f.V2] = append(table[f.V2], int32(fi))
	}
	m.incident = table
	return table
}

// VertexNormals returns per-vertex normals, using the ones loaded from
// the source file if present, or deriving them by area-weighted
// averaging of the incident face normals otherwise (SPEC_FULL.md §C).
func (m *Mesh) VertexNormals() []geom.Vec3 {
	if m.VertNormals != nil {
		return m.VertNormals
	}
	table := m.IncidentFaces()
	out := make([]geom.Vec3, len(m.Verts))
	for vi, faces := range table {
		sum := geom.New(0, 0, 0)
		for _, fi := range faces {
			f := m.Faces[fi]
			a, b, c := m.Verts[f.V0], m.Verts[f.V1], m.Verts[f.V2]
			n := b.Sub(a).Cross(c.Sub(a)) // unnormalized: area-weighted
			sum = sum.Add(n)
		}
		if sum.Len() > 0 {
			sum.Normalize()
		}
		out[vi] = sum
	}
	return out
}

// Concat appends the vertices and faces of every mesh in list into a
// single mesh, offsetting face indices and unioning the bounding
// boxes (spec.md §4.1: VRML2 "concat" behavior for multiple
// IndexedFaceSets).
func Concat(list []*Mesh) *Mesh {
	out := &Mesh{}
	for _, m := range list {
		base := int32(len(out.Verts))
		out.Verts = append(out.Verts, m.Verts...)
		for _, f := range m.Faces {
			out.Faces = append(out.Faces, Face{V0: f.V0 + base, V1: f.V1 + base, V2: f.V2 + base})
		}
	}
	out.CalcBounds()
	return out
}
