package engine

import (
	"fmt"
	"io"

	"github.com/arl/math32"

	"github.com/arl/meshdist/geom"
	"github.com/arl/meshdist/grid"
	"github.com/arl/meshdist/kernel"
	"github.com/arl/meshdist/mesh"
	"github.com/arl/meshdist/sample"
)

// DistSurfSurf measures the surface-to-surface distance from source to
// target (spec.md §6 "dist_surf_surf"). When settings.Symmetric is
// set, it also measures target to source and combines both directions
// into the Hausdorff result (spec.md §4.7).
func DistSurfSurf(ctx *Context, source, target *mesh.Mesh, settings Settings) (sample.Stats, error) {
	ctx.StartTimer(TimerTotal)
	defer ctx.StopTimer(TimerTotal)

	forward, err := measure(ctx, source, target, settings)
	if err != nil {
		return sample.Stats{}, err
	}
	if !settings.Symmetric {
		return forward, nil
	}

	ctx.Progressf("symmetric mode: measuring reverse direction")
	backward, err := measure(ctx, target, source, settings)
	if err != nil {
		return sample.Stats{}, err
	}
	return sample.CombineSymmetric(forward, backward), nil
}

// measure runs the one-directional sample-every-source-face,
// nearest-point-on-target pipeline (spec.md §6).
func measure(ctx *Context, source, target *mesh.Mesh, settings Settings) (sample.Stats, error) {
	ctx.StartTimer(TimerGrid)
	bmin, bmax := mesh.UnionBounds(source, target)
	g := grid.Build(bmin, bmax, target)

	infos := make([]kernel.Info, len(target.Faces))
	for i, f := range target.Faces {
		infos[i] = kernel.NewInfo(target, f)
	}
	rc := grid.NewRingCache(g)
	ctx.StopTimer(TimerGrid)

	ctx.StartTimer(TimerMeasure)
	acc := sample.NewAccumulator()

	for fi, f := range source.Faces {
		a, b, c := source.Verts[f.V0], source.Verts[f.V1], source.Verts[f.V2]
		n := faceFrequency(source, f, settings)

		lat, tris := sample.SampleTriangle(a, b, c, n)
		dist := make([]float32, len(lat.Points))

		seed := kernel.Seed{}
		for pi, p := range lat.Points {
			res, err := kernel.NearestPoint(g, infos, rc, p, seed)
			if err != nil {
				return sample.Stats{}, err
			}
			dist[pi] = math32.Sqrt(res.DistSqr)
			seed = res.Seed
		}

		area := geom.TriangleArea(a, b, c)
		fe := acc.AddFace(int32(fi), area, lat, tris, dist)
		ctx.Progressf("face %d/%d: mean=%g max=%g", fi+1, len(source.Faces), fe.Mean, fe.Max)
	}

	stats := acc.Finalize()
	ctx.StopTimer(TimerMeasure)
	return stats, nil
}

// faceFrequency derives face f's sampling frequency from settings
// (spec.md §4.5 "Sampling frequency from step size"): an absolute
// SamplingStep or a RelativeStep fraction of the source mesh's
// bounding-box diagonal both route through FrequencyFromStep, falling
// back to the fixed Frequency when neither is set; MinSampleFreq then
// floors whichever frequency that produced.
func faceFrequency(m *mesh.Mesh, f mesh.Face, settings Settings) int32 {
	var n int32
	switch {
	case settings.RelativeSampling:
		n = sample.FrequencyFromStep(m, f, settings.RelativeStep*m.BBoxDiag())
	case settings.SamplingStep > 0:
		n = sample.FrequencyFromStep(m, f, settings.SamplingStep)
	case settings.Frequency >= 1:
		n = settings.Frequency
	default:
		n = 1
	}
	if n < settings.MinSampleFreq {
		n = settings.MinSampleFreq
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Report writes the spec.md §6 statistics block to w: each of
// Min/Max/Mean/RMS followed by its value as a percentage of target's
// bounding-box diagonal.
func Report(w io.Writer, stats sample.Stats, target *mesh.Mesh) error {
	diag := target.BBoxDiag()
	pct := func(v float32) float32 {
		if diag <= 0 {
			return 0
		}
		return v / diag * 100
	}
	_, err := fmt.Fprintf(w, "Min:     %g %g\nMax:     %g %g\nMean:    %g %g\nRMS:     %g %g\n",
		stats.Min, pct(stats.Min),
		stats.Max, pct(stats.Max),
		stats.Mean, pct(stats.Mean),
		stats.RMS, pct(stats.RMS))
	return err
}
