package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arl/meshdist/geom"
)

func square() *Mesh {
	m := &Mesh{
		Verts: []geom.Vec3{
			geom.New(0, 0, 0),
			geom.New(1, 0, 0),
			geom.New(1, 1, 0),
			geom.New(0, 1, 0),
		},
		Faces: []Face{
			{V0: 0, V1: 1, V2: 2},
			{V0: 0, V1: 2, V2: 3},
		},
	}
	m.CalcBounds()
	return m
}

func TestCalcBounds(t *testing.T) {
	m := square()
	assert.Equal(t, geom.New(0, 0, 0), m.BMin)
	assert.Equal(t, geom.New(1, 1, 0), m.BMax)
}

func TestBBoxDiag(t *testing.T) {
	m := square()
	assert.InDelta(t, 1.41421356, m.BBoxDiag(), 1e-5)
}

func TestUnionBounds(t *testing.T) {
	a := square()
	b := &Mesh{Verts: []geom.Vec3{geom.New(-1, -1, -1), geom.New(2, 2, 2)}}
	b.CalcBounds()

	bmin, bmax := UnionBounds(a, b)
	assert.Equal(t, geom.New(-1, -1, -1), bmin)
	assert.Equal(t, geom.New(2, 2, 2), bmax)
}

func TestMeanFaceArea(t *testing.T) {
	m := square()
	// two right triangles of area 0.5 each, over a unit square.
	assert.InDelta(t, 0.5, m.MeanFaceArea(), 1e-6)
}

func TestIncidentFaces(t *testing.T) {
	m := square()
	table := m.IncidentFaces()
	assert.ElementsMatch(t, []int32{0, 1}, table[0])
	assert.ElementsMatch(t, []int32{0}, table[1])
	assert.ElementsMatch(t, []int32{0, 1}, table[2])
	assert.ElementsMatch(t, []int32{1}, table[3])

	// cached: mutating the backing array directly would corrupt a
	// freshly recomputed table, so a second call must return the same
	// slice rather than rebuilding it.
	assert.Same(t, &table[0][0], &m.IncidentFaces()[0][0])
}

func TestVertexNormalsDerived(t *testing.T) {
	m := square()
	normals := m.VertexNormals()
	assert.Len(t, normals, 4)
	for _, n := range normals {
		assert.InDelta(t, 1.0, n.Len(), 1e-5)
		assert.InDelta(t, 0.0, n.X(), 1e-5)
		assert.InDelta(t, 0.0, n.Y(), 1e-5)
	}
}

func TestVertexNormalsFromSource(t *testing.T) {
	m := square()
	m.VertNormals = []geom.Vec3{geom.New(0, 0, 1)}
	assert.Equal(t, m.VertNormals, m.VertexNormals())
}

func TestConcat(t *testing.T) {
	a := square()
	b := square()
	out := Concat([]*Mesh{a, b})

	assert.Equal(t, 8, out.NumVerts())
	assert.Equal(t, 4, out.NumFaces())
	assert.Equal(t, Face{V0: 4, V1: 5, V2: 6}, out.Faces[2])
}
