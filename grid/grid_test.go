package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arl/meshdist/geom"
	"github.com/arl/meshdist/mesh"
)

func onePlane(n int32) *mesh.Mesh {
	// n*n grid of unit-square-ish faces tiling [0,n]x[0,n]x{0}, so
	// MeanFaceArea and the resulting cell size are predictable.
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
	return m
}

func TestBuildProducesNonEmptyGridOverFlatMesh(t *testing.T) {
	m := onePlane(4)
	g := Build(m.BMin, m.BMax, m)
	assert.Greater(t, g.NumCells(), int32(0))
	assert.Greater(t, len(g.triangles), 0)
}

func TestCellIndexRoundTripsThroughCellXYZ(t *testing.T) {
	m := onePlane(4)
	g := Build(m.BMin, m.BMax, m)
	for _, c := range []int32{0, g.NumCells() - 1, g.NumCells() / 2} {
		x, y, z := g.CellXYZ(c)
		assert.Equal(t, c, g.CellIndex(x, y, z))
	}
}

func TestIsEmptyAgreesWithTrianglesInCell(t *testing.T) {
	m := onePlane(4)
	g := Build(m.BMin, m.BMax, m)
	for c := int32(0); c < g.NumCells(); c++ {
		assert.Equal(t, len(g.TrianglesInCell(c)) == 0, g.IsEmpty(c))
	}
}

func TestEveryFaceIsBucketedAtLeastOnce(t *testing.T) {
	m := onePlane(3)
	g := Build(m.BMin, m.BMax, m)
	seen := make(map[int32]bool)
	for c := int32(0); c < g.NumCells(); c++ {
		for _, ti := range g.TrianglesInCell(c) {
			seen[ti] = true
		}
	}
	assert.Len(t, seen, m.NumFaces())
}

func TestCellCoordsClampsToGridExtent(t *testing.T) {
	m := onePlane(4)
	g := Build(m.BMin, m.BMax, m)
	x, y, z := g.CellCoords(geom.New(-100, -100, -100))
	assert.Equal(t, int32(0), x)
	assert.Equal(t, int32(0), y)
	assert.Equal(t, int32(0), z)

	x, y, z = g.CellCoords(geom.New(1000, 1000, 1000))
	assert.Equal(t, g.NX-1, x)
	assert.Equal(t, g.NY-1, y)
	assert.Equal(t, g.NZ-1, z)
}

func TestBuildRespectsMaxCellsCap(t *testing.T) {
	// A huge, thin mesh with tiny faces: naive cell sizing would blow
	// past MaxCells, forcing the cube-root cell-size correction.
	m := &mesh.Mesh{
		Verts: []geom.Vec3{
			geom.New(0, 0, 0),
			geom.New(0.01, 0, 0),
			geom.New(0, 0.01, 0),
		},
		Faces: []mesh.Face{{V0: 0, V1: 1, V2: 2}},
	}
	m.BMin = geom.New(0, 0, 0)
	m.BMax = geom.New(1000, 1000, 1000)

	g := Build(m.BMin, m.BMax, m)
	assert.LessOrEqual(t, int64(g.NX)*int64(g.NY)*int64(g.NZ), int64(MaxCells))
}

func TestMultiCellSpanningTriangleIsBucketedIntoEachTouchedCell(t *testing.T) {
	// One huge triangle across an otherwise finely subdivided target, so
	// its bounding box spans many cells of the grid sized from the small
	// faces.
	small := onePlane(6)
	big := mesh.Face{V0: int32(len(small.Verts)), V1: int32(len(small.Verts) + 1), V2: int32(len(small.Verts) + 2)}
	m := &mesh.Mesh{
		Verts: append(append([]geom.Vec3{}, small.Verts...), geom.New(0, 0, 0), geom.New(6, 0, 0), geom.New(0, 6, 0)),
		Faces: append(append([]mesh.Face{}, small.Faces...), big),
	}
	m.CalcBounds()

	g := Build(m.BMin, m.BMax, m)
	bigIdx := int32(len(small.Faces))
	touched := 0
	for c := int32(0); c < g.NumCells(); c++ {
		for _, ti := range g.TrianglesInCell(c) {
			if ti == bigIdx {
				touched++
			}
		}
	}
	assert.Greater(t, touched, 1)
}
