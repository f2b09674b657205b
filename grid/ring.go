package grid

// RingCache lazily computes and memoizes, for a cell and a ring radius
// k, the list of non-empty cells at exactly Chebyshev distance k from
// that cell (spec.md §4.4 "DistCellLists", re-architected per spec.md
// §9's note to use a single associative structure keyed by
// (cell_index, k) rather than a fixed-size per-cell array of lists).
// Grounded on crowd/proximity_grid.go's query-and-cache-on-first-use
// shape, generalized from a 2D hash bucket to a 3D ring-shell query.
type RingCache struct {
	grid  *Grid
	cache map[int64][]int32
}

// NewRingCache returns an empty cache over g.
func NewRingCache(g *Grid) *RingCache {
	return &RingCache{grid: g, cache: make(map[int64][]int32)}
}

const ringKeyBase = 1 << 20

func ringKey(cell, k int32) int64 {
	return int64(cell)*ringKeyBase + int64(k)
}

// Ring returns the non-empty cells at Chebyshev distance exactly k
// from cell, clipped to the grid's extents.
func (rc *RingCache) Ring(cell, k int32) []int32 {
	key := ringKey(cell, k)
	if list, ok := rc.cache[key]; ok {
		return list
	}

	x, y, z := rc.grid.CellXYZ(cell)
	var list []int32
	for xi := x - k; xi <= x+k; xi++ {
		if xi < 0 || xi >= rc.grid.NX {
			continue
		}
		for yi := y - k; yi <= y+k; yi++ {
			if yi < 0 || yi >= rc.grid.NY {
				continue
			}
			for zi := z - k; zi <= z+k; zi++ {
				if zi < 0 || zi >= rc.grid.NZ {
					continue
				}
				if chebyshev(xi-x, yi-y, zi-z) != k {
					continue
				}
				c := rc.grid.CellIndex(xi, yi, zi)
				if !rc.grid.IsEmpty(c) {
					list = append(list, c)
				}
			}
		}
	}
	rc.cache[key] = list
	return list
}

func chebyshev(dx, dy, dz int32) int32 {
	d := abs32(dx)
	if v := abs32(dy); v > d {
		d = v
	}
	if v := abs32(dz); v > d {
		d = v
	}
	return d
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
