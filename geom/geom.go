// Package geom provides the 3-vector arithmetic and triangle-area
// primitives shared by the mesh loader, the cell grid and the distance
// kernel.
package geom

import (
	"github.com/arl/gogeo/f32/d3"
	"github.com/arl/math32"
)

// Vec3 is a point or direction in 3D space, backed by gogeo's float32
// vector type.
type Vec3 = d3.Vec3

// New returns Vec3{x, y, z}.
func New(x, y, z float32) Vec3 {
	return d3.NewVec3XYZ(x, y, z)
}

// TriangleArea returns the area of the triangle (a, b, c).
func TriangleArea(a, b, c Vec3) float32 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	return 0.5 * ab.Cross(ac).Len()
}

// marginFactor is the DMARGIN of the original Metro tool.
const marginFactor = 1e10

// DegenerateFloor returns the squared-length floor below which a
// triangle's longest side is considered degenerate (spec.md §9,
// original Metro's DBL_MIN*DMARGIN). The original constant is a
// float64 DBL_MIN; meshdist works in float32 so it uses math32's
// smallest positive float32 instead, scaled by the same margin.
func DegenerateFloor() float32 {
	return math32.SmallestNonzeroFloat32 * marginFactor
}

// Clamp01Sqrt returns sqrt(max(0, x)), guarding against small negative
// values produced by rounding error in squared-length subtractions.
func Clamp01Sqrt(x float32) float32 {
	if x < 0 {
		x = 0
	}
	return math32.Sqrt(x)
}
