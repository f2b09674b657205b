package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arl/meshdist/geom"
	"github.com/arl/meshdist/grid"
	"github.com/arl/meshdist/mesh"
)

func planeGrid(n int32) (*mesh.Mesh, *grid.Grid, []Info, *grid.RingCache) {
	m := &mesh.Mesh{}
	for y := int32(0); y <= n; y++ {
		for x := int32(0); x <= n; x++ {
			m.Verts = append(m.Verts, geom.New(float32(x), float32(y), 0))
		}
	}
	idx := func(x, y int32) int32 { return y*(n+1) + x }
	for y := int32(0); y < n; y++ {
		for x := int32(0); x < n; x++ {
			v0, v1, v2, v3 := idx(x, y), idx(x+1, y), idx(x+1, y+1), idx(x, y+1)
			m.Faces = append(m.Faces,
				mesh.Face{V0: v0, V1: v1, V2: v2},
				mesh.Face{V0: v0, V1: v2, V2: v3},
			)
		}
	}
	m.CalcBounds()

	g := grid.Build(m.BMin, m.BMax, m)
	infos := make([]Info, len(m.Faces))
	for i, f := range m.Faces {
		infos[i] = NewInfo(m, f)
	}
	rc := grid.NewRingCache(g)
	return m, g, infos, rc
}

func TestNearestPointOnFlatMesh(t *testing.T) {
	_, g, infos, rc := planeGrid(4)
	p := geom.New(2, 2, 3)
	res, err := NearestPoint(g, infos, rc, p, Seed{})
	assert.NoError(t, err)
	assert.InDelta(t, 9.0, res.DistSqr, 1e-3) // directly above the surface by 3
	assert.True(t, res.Seed.valid)
}

func TestNearestPointQueryOutsideMeshExtentStillFindsClosest(t *testing.T) {
	_, g, infos, rc := planeGrid(4)
	p := geom.New(-10, -10, 1)
	res, err := NearestPoint(g, infos, rc, p, Seed{})
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, res.DistSqr, float32(1.0))
}

func TestNearestPointSeedFromPriorQueryIsConsistent(t *testing.T) {
	_, g, infos, rc := planeGrid(4)
	p0 := geom.New(2, 2, 3)
	first, err := NearestPoint(g, infos, rc, p0, Seed{})
	assert.NoError(t, err)

	p1 := geom.New(2.1, 2.1, 3)
	second, err := NearestPoint(g, infos, rc, p1, first.Seed)
	assert.NoError(t, err)
	assert.InDelta(t, first.DistSqr, second.DistSqr, 0.2)
}

func TestNearestPointDegenerateTrianglesAreSkipped(t *testing.T) {
	m := &mesh.Mesh{
		Verts: []geom.Vec3{
			geom.New(0, 0, 0),
			geom.New(1, 0, 0),
			geom.New(2, 0, 0), // collinear: degenerate
			geom.New(0, 1, 0),
		},
		Faces: []mesh.Face{
			{V0: 0, V1: 1, V2: 2}, // degenerate
			{V0: 0, V1: 1, V2: 3}, // valid
		},
	}
	m.CalcBounds()
	g := grid.Build(m.BMin, m.BMax, m)
	infos := []Info{NewInfo(m, m.Faces[0]), NewInfo(m, m.Faces[1])}
	rc := grid.NewRingCache(g)

	res, err := NearestPoint(g, infos, rc, geom.New(0.2, 0.2, 1), Seed{})
	assert.NoError(t, err)
	assert.Equal(t, int32(1), res.Face)
}

func TestNearestPointNoTrianglesReturnsError(t *testing.T) {
	m := &mesh.Mesh{
		Verts: []geom.Vec3{geom.New(0, 0, 0), geom.New(1, 0, 0), geom.New(0, 1, 0)},
		Faces: []mesh.Face{{V0: 0, V1: 1, V2: 2}},
	}
	m.CalcBounds()
	g := grid.Build(m.BMin, m.BMax, m)
	infos := []Info{{Degenerate: true}}
	rc := grid.NewRingCache(g)

	_, err := NearestPoint(g, infos, rc, geom.New(0.2, 0.2, 1), Seed{})
	assert.Error(t, err)
}

func TestIsBadFloat(t *testing.T) {
	assert.True(t, isBadFloat(float32(math.NaN())))
	assert.True(t, isBadFloat(float32(math.Inf(1))))
	assert.False(t, isBadFloat(1.0))
}
