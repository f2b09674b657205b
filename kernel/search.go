package kernel

import (
	"math"

	"github.com/arl/math32"

	"github.com/arl/meshdist/geom"
	"github.com/arl/meshdist/grid"
	"github.com/arl/meshdist/status"
)

// Seed carries the previous query's outcome from one sample to the
// next: the ring in which that query found its closest triangle.
// NearestPoint visits every ring from 0 up to one less than that ring
// without the early-termination test, then continues outward as
// usual; a seed never makes it skip a ring. A zero Seed starts the
// outward expansion at ring 0 (spec.md §9 open question #3: the
// ring-seed lower bound must clamp to zero, never go negative).
type Seed struct {
	valid bool
	ring  int32
}

// Result is the outcome of a single nearest-surface-point query.
type Result struct {
	DistSqr float32
	Face    int32
	Point   geom.Vec3
	Seed    Seed // feed into the next query's Seed argument
}

// NearestPoint finds, among the triangles bucketed in g, the point
// closest to p, searching outward in cell-grid rings from the cell
// containing p and stopping once no farther ring could possibly
// contain a closer triangle (spec.md §4.4).
//
// infos holds one precomputed Info per triangle, indexed the same way
// as the target mesh's face indices that g was built from.
func NearestPoint(g *grid.Grid, infos []Info, rc *grid.RingCache, p geom.Vec3, seed Seed) (Result, error) {
	cx, cy, cz := g.CellCoords(p)
	center := g.CellIndex(cx, cy, cz)

	startRing := int32(0)
	if seed.valid && seed.ring-1 > 0 {
		startRing = seed.ring - 1
	}

	var (
		bestDistSqr = math32.MaxFloat32
		bestFace    = int32(-1)
		bestPoint   geom.Vec3
		bestRing    int32
	)

	// When the search is seeded past ring 0, the inner rings still
	// have to be visited at least once to preserve correctness -- the
	// seed only saves the outward-expansion bound check below from
	// re-deriving it from scratch, since a closer triangle could in
	// principle still lie in ring startRing (the seed is a heuristic
	// starting point, not a proof it is the true innermost ring).
	for k := int32(0); k <= startRing; k++ {
		considerRing(g, infos, rc, center, k, p, &bestDistSqr, &bestFace, &bestPoint, &bestRing)
	}

	maxRing := g.NX
	if g.NY > maxRing {
		maxRing = g.NY
	}
	if g.NZ > maxRing {
		maxRing = g.NZ
	}

	for k := startRing + 1; k <= maxRing; k++ {
		// Every cell in ring k is at least (k-1) whole cells away from
		// p's own cell along the ring's axis, so any triangle in it is
		// at least (k-1)*CellSize away from p.
		lowerBound := float32(k-1) * g.CellSize
		if bestFace >= 0 && lowerBound*lowerBound > bestDistSqr {
			break
		}
		considerRing(g, infos, rc, center, k, p, &bestDistSqr, &bestFace, &bestPoint, &bestRing)
	}

	if bestFace < 0 {
		return Result{}, status.Errf(status.ModelError, "no triangle found within grid bounds")
	}
	if isBadFloat(bestDistSqr) {
		return Result{}, status.Errf(status.NumericAbort, "non-finite distance at (%v)", p)
	}

	return Result{
		DistSqr: bestDistSqr,
		Face:    bestFace,
		Point:   bestPoint,
		Seed:    Seed{valid: true, ring: bestRing},
	}, nil
}

func considerRing(g *grid.Grid, infos []Info, rc *grid.RingCache, center, k int32, p geom.Vec3,
	bestDistSqr *float32, bestFace *int32, bestPoint *geom.Vec3, bestRing *int32) {

	var cells []int32
	if k == 0 {
		if !g.IsEmpty(center) {
			cells = []int32{center}
		}
	} else {
		cells = rc.Ring(center, k)
	}

	for _, c := range cells {
		for _, ti := range g.TrianglesInCell(c) {
			info := &infos[ti]
			if info.Degenerate {
				continue
			}
			sd := PointTriangleDistSqr(info, p)
			if sd.DistSqr < *bestDistSqr {
				*bestDistSqr = sd.DistSqr
				*bestFace = ti
				*bestPoint = sd.Closest
				*bestRing = k
			}
		}
	}
}

func isBadFloat(f float32) bool {
	x := float64(f)
	return math.IsNaN(x) || math.IsInf(x, 0)
}
