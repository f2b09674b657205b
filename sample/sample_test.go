package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arl/meshdist/geom"
	"github.com/arl/meshdist/mesh"
)

func TestSampleTriangleFrequencyOneIsMidpointOfBC(t *testing.T) {
	a := geom.New(0, 0, 0)
	b := geom.New(2, 0, 0)
	c := geom.New(0, 2, 0)
	lat, tris := SampleTriangle(a, b, c, 1)

	// midpoint of BC is (1,1,0); the naive centroid would be
	// (2/3,2/3,0) -- these must not be confused.
	want := geom.New(1, 1, 0)
	assert.Len(t, lat.Points, 1)
	assert.InDelta(t, want.X(), lat.Points[0].X(), 1e-5)
	assert.InDelta(t, want.Y(), lat.Points[0].Y(), 1e-5)
	assert.NotInDelta(t, 2.0/3.0, lat.Points[0].X(), 1e-3)
	assert.Nil(t, tris)
}

func TestSampleTriangleFrequencyZeroSameAsOne(t *testing.T) {
	a, b, c := geom.New(0, 0, 0), geom.New(2, 0, 0), geom.New(0, 2, 0)
	lat0, _ := SampleTriangle(a, b, c, 0)
	lat1, _ := SampleTriangle(a, b, c, 1)
	assert.Equal(t, lat1.Points, lat0.Points)
}

func TestSampleTriangleLatticePointCount(t *testing.T) {
	a, b, c := geom.New(0, 0, 0), geom.New(4, 0, 0), geom.New(0, 4, 0)
	for _, n := range []int32{2, 3, 5} {
		lat, tris := SampleTriangle(a, b, c, n)
		assert.Len(t, lat.Points, int(n*(n+1)/2))
		assert.Len(t, tris, int((n-1)*(n-1)))
	}
}

func TestSampleTriangleCornersAreExact(t *testing.T) {
	a, b, c := geom.New(0, 0, 0), geom.New(4, 0, 0), geom.New(0, 4, 0)
	lat, _ := SampleTriangle(a, b, c, 4)
	assert.Equal(t, a, lat.At(0, 0))
	assert.InDelta(t, b.X(), lat.At(3, 0).X(), 1e-5)
	assert.InDelta(t, c.Y(), lat.At(0, 3).Y(), 1e-5)
}

func TestSampleTriangleMicroTrianglesHaveEqualArea(t *testing.T) {
	a, b, c := geom.New(0, 0, 0), geom.New(4, 0, 0), geom.New(0, 4, 0)
	lat, tris := SampleTriangle(a, b, c, 4)
	parentArea := geom.TriangleArea(a, b, c)
	expected := parentArea / float32(len(tris))
	for _, tri := range tris {
		area := geom.TriangleArea(lat.Points[tri.I0], lat.Points[tri.I1], lat.Points[tri.I2])
		assert.InDelta(t, expected, area, 1e-4)
	}
}

func TestFrequencyFromStepFloorsAtOne(t *testing.T) {
	m := &mesh.Mesh{
		Verts: []geom.Vec3{geom.New(0, 0, 0), geom.New(0.01, 0, 0), geom.New(0, 0.01, 0)},
		Faces: []mesh.Face{{V0: 0, V1: 1, V2: 2}},
	}
	n := FrequencyFromStep(m, m.Faces[0], 1.0)
	assert.Equal(t, int32(1), n)
}

func TestFrequencyFromStepScalesWithEdgeLength(t *testing.T) {
	m := &mesh.Mesh{
		Verts: []geom.Vec3{geom.New(0, 0, 0), geom.New(10, 0, 0), geom.New(0, 1, 0)},
		Faces: []mesh.Face{{V0: 0, V1: 1, V2: 2}},
	}
	n := FrequencyFromStep(m, m.Faces[0], 1.0)
	assert.Equal(t, int32(11), n)
}

func TestFrequencyFromStepNonPositiveStepReturnsOne(t *testing.T) {
	m := &mesh.Mesh{
		Verts: []geom.Vec3{geom.New(0, 0, 0), geom.New(10, 0, 0), geom.New(0, 1, 0)},
		Faces: []mesh.Face{{V0: 0, V1: 1, V2: 2}},
	}
	assert.Equal(t, int32(1), FrequencyFromStep(m, m.Faces[0], 0))
	assert.Equal(t, int32(1), FrequencyFromStep(m, m.Faces[0], -1))
}
