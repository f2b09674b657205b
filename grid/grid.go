// Package grid implements the uniform 3D cell-grid spatial index used
// to bound the nearest-surface-point search (spec.md §4.3), and the
// lazy per-cell ring-distance cache consumed by the distance kernel
// (spec.md §4.4, §9).
//
// The original tool stores, per cell, a -1-terminated slice of
// triangle indices plus a side bitmap of empty cells. Following
// spec.md §9's re-architecture note, this is flattened into a
// cell-offset/triangle-index pair of parallel arrays (CSR-style),
// which removes both the sentinel and the per-cell allocations while
// keeping the "list of triangles per cell" semantics. Grounded on
// recast/chunkytrimesh.go's createChunkyTriMesh, which buckets
// triangles by bounding box into spatial nodes and flattens them into
// parallel Nodes/Tris arrays the same way.
package grid

import (
	"github.com/arl/assertgo"
	"github.com/arl/math32"

	"github.com/arl/meshdist/geom"
	"github.com/arl/meshdist/mesh"
)

// MaxCells is the hard cap on the number of cells in the grid
// (spec.md §3: GRID_CELLS_MAX).
const MaxCells = 512_000

// degenerateFloor guards cell_sz against division by zero (spec.md
// §4.3 step 2).
func degenerateFloor() float32 { return geom.DegenerateFloor() }

// Grid is a uniform cubic subdivision of a bounding box, with each
// cell mapped to the indices of the triangles that touch it.
type Grid struct {
	BMin, BMax geom.Vec3
	CellSize   float32
	NX, NY, NZ int32

	// cellOffset[c]..cellOffset[c+1] indexes into triangles for cell c.
	cellOffset []int32
	triangles  []int32
}

// NumCells returns the total number of cells in the grid.
func (g *Grid) NumCells() int32 { return g.NX * g.NY * g.NZ }

// CellIndex returns the linear index of grid cell (x, y, z).
func (g *Grid) CellIndex(x, y, z int32) int32 {
	return x + y*g.NX + z*g.NX*g.NY
}

// TrianglesInCell returns the indices of the triangles touching cell c.
func (g *Grid) TrianglesInCell(c int32) []int32 {
	return g.triangles[g.cellOffset[c]:g.cellOffset[c+1]]
}

// IsEmpty reports whether cell c has no triangles.
func (g *Grid) IsEmpty(c int32) bool {
	return g.cellOffset[c] == g.cellOffset[c+1]
}

// CellXYZ decomposes a linear cell index back into (x, y, z) coordinates.
func (g *Grid) CellXYZ(c int32) (x, y, z int32) {
	z = c / (g.NX * g.NY)
	rem := c % (g.NX * g.NY)
	y = rem / g.NX
	x = rem % g.NX
	return
}

// CellCoords returns the clamped integer cell coordinates of point p.
func (g *Grid) CellCoords(p geom.Vec3) (x, y, z int32) {
	rel := p.Sub(g.BMin)
	x = clampi(int32(math32.Floor(rel.X()/g.CellSize)), 0, g.NX-1)
	y = clampi(int32(math32.Floor(rel.Y()/g.CellSize)), 0, g.NY-1)
	z = clampi(int32(math32.Floor(rel.Z()/g.CellSize)), 0, g.NZ-1)
	return
}

func clampi(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Build constructs the cell grid over [bmin, bmax] (the union bounding
// box of the source and target meshes, spec.md §4.3) and buckets every
// triangle of target into the cells it touches.
func Build(bmin, bmax geom.Vec3, target *mesh.Mesh) *Grid {
	assert.True(len(target.Faces) > 0, "Build: target mesh has no faces")

	sideAvg := equilateralSide(target.MeanFaceArea())
	cellSz := 3 * sideAvg
	if cellSz < degenerateFloor() {
		cellSz = degenerateFloor()
	}

	ext := bmax.Sub(bmin)
	nx, ny, nz := gridDims(ext, cellSz)
	for int64(nx)*int64(ny)*int64(nz) > MaxCells {
		// Enlarge cell_sz by the cube root of the overrun ratio so the
		// grid fits the cap (spec.md §4.3 step 2, E5).
		overrun := float32(int64(nx)*int64(ny)*int64(nz)) / float32(MaxCells)
		cellSz *= math32.Cbrt(overrun)
		nx, ny, nz = gridDims(ext, cellSz)
	}

	g := &Grid{BMin: bmin, BMax: bmax, CellSize: cellSz, NX: nx, NY: ny, NZ: nz}
	g.bucketTriangles(target)
	return g
}

// equilateralSide returns the side length of an equilateral triangle
// with the given area (spec.md §4.3 step 1): area = (sqrt(3)/4)*s^2.
func equilateralSide(area float32) float32 {
	if area <= 0 {
		return 0
	}
	const fourOverSqrt3 = 4.0 / 1.7320508
	return math32.Sqrt(area * fourOverSqrt3)
}

func gridDims(ext geom.Vec3, cellSz float32) (nx, ny, nz int32) {
	nx = dimOf(ext.X(), cellSz)
	ny = dimOf(ext.Y(), cellSz)
	nz = dimOf(ext.Z(), cellSz)
	return
}

func dimOf(extent, cellSz float32) int32 {
	n := int32(math32.Floor(extent/cellSz)) + 1
	if n < 1 {
		n = 1
	}
	return n
}

// bucketTriangles assigns every triangle of target to the cells its
// surface touches (spec.md §4.3 step 3). Triangles that span
// multiple cells are resolved by sampling the triangle (cf. sampler)
// at a density proportional to the cell span, deduplicating
// consecutively repeated cells, the same tactic chunkytrimesh.go uses
// when an item spans more than one spatial bucket -- except
// chunkytrimesh splits the *tree*, while a uniform grid instead
// samples the *triangle* to discover every cell it touches.
func (g *Grid) bucketTriangles(target *mesh.Mesh) {
	ncells := g.NumCells()
	perCell := make([][]int32, ncells)

	for ti, f := range target.Faces {
		a, b, c := target.Verts[f.V0], target.Verts[f.V1], target.Verts[f.V2]
		ax, ay, az := g.CellCoords(a)
		bx, by, bz := g.CellCoords(b)
		cx, cy, cz := g.CellCoords(c)

		if ax == bx && ax == cx && ay == by && ay == cy && az == bz && az == cz {
			g.appendUnique(perCell, g.CellIndex(ax, ay, az), int32(ti))
			continue
		}

		d := maxSpan(ax, bx, cx, ay, by, cy, az, bz, cz)
		n := 2 * (d + 1)
		for _, s := range sampleTriangleN(a, b, c, n) {
			sx, sy, sz := g.CellCoords(s)
			g.appendUnique(perCell, g.CellIndex(sx, sy, sz), int32(ti))
		}
	}

	g.flatten(perCell)
}

// appendUnique appends tri to cell's list unless it is already the
// last entry (spec.md §4.3 step 3c: "suppresses duplicates from
// resampling").
func (g *Grid) appendUnique(perCell [][]int32, cell, tri int32) {
	lst := perCell[cell]
	if len(lst) > 0 && lst[len(lst)-1] == tri {
		return
	}
	perCell[cell] = append(lst, tri)
}

func (g *Grid) flatten(perCell [][]int32) {
	ncells := g.NumCells()
	g.cellOffset = make([]int32, ncells+1)
	total := int32(0)
	for c := int32(0); c < ncells; c++ {
		g.cellOffset[c] = total
		total += int32(len(perCell[c]))
	}
	g.cellOffset[ncells] = total

	g.triangles = make([]int32, total)
	for c := int32(0); c < ncells; c++ {
		copy(g.triangles[g.cellOffset[c]:], perCell[c])
	}
}

func maxSpan(ax, bx, cx, ay, by, cy, az, bz, cz int32) int32 {
	spanX := spread(ax, bx, cx)
	spanY := spread(ay, by, cy)
	spanZ := spread(az, bz, cz)
	d := spanX
	if spanY > d {
		d = spanY
	}
	if spanZ > d {
		d = spanZ
	}
	return d
}

func spread(a, b, c int32) int32 {
	mn, mx := a, a
	for _, v := range [2]int32{b, c} {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	return mx - mn
}

// sampleTriangleN returns n*(n+1)/2 uniform samples of the triangle,
// used only to discover which cells a multi-cell-spanning triangle
// touches. Mirrors sample.SampleTriangle's (i,j) parametrization; kept
// local to avoid a dependency from grid on the sample package.
func sampleTriangleN(a, b, c geom.Vec3, n int32) []geom.Vec3 {
	if n <= 1 {
		return []geom.Vec3{a.Add(b.Sub(a).Scale(0.5)).Add(c.Sub(a).Scale(0.5))}
	}
	u := b.Sub(a).Scale(1 / float32(n-1))
	v := c.Sub(a).Scale(1 / float32(n-1))
	out := make([]geom.Vec3, 0, n*(n+1)/2)
	for i := int32(0); i < n; i++ {
		for j := int32(0); j <= n-1-i; j++ {
			p := a.Add(u.Scale(float32(i))).Add(v.Scale(float32(j)))
			out = append(out, p)
		}
	}
	return out
}
