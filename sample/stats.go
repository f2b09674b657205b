package sample

import "github.com/arl/math32"

// FaceError summarizes the distance-to-surface error measured over a
// single source face: its area-weighted mean and mean-square error,
// and the best and worst single samples (spec.md §3 "FaceError":
// face_area, min_error, max_error, mean_error, mean_sqr_error).
type FaceError struct {
	Face    int32
	Area    float32
	Min     float32
	Mean    float32
	MeanSqr float32
	Max     float32
}

// HistogramBuckets is the resolution of the supplemented per-sample
// error distribution (SPEC_FULL.md §C).
const HistogramBuckets = 256

// Stats is the aggregate result of one direction of a surface-to-surface
// comparison (spec.md §4.6 "DistSurfSurfStats"): the smallest and
// largest single samples (min_dist/max_dist), area-weighted mean and
// RMS error over the whole source mesh, and a histogram of all sample
// errors (SPEC_FULL.md §C).
type Stats struct {
	Min     float32
	Mean    float32
	RMS     float32
	Max     float32
	MaxFace int32

	Histogram [HistogramBuckets]uint64
	Faces     []FaceError
}

// Accumulator incrementally builds Stats face by face.
type Accumulator struct {
	sumArea        float64
	sumAreaMean    float64
	sumAreaMeanSqr float64
	min            float32
	max            float32
	maxFace        int32
	haveMin        bool

	faces   []FaceError
	samples []float32
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator { return &Accumulator{maxFace: -1} }

// AddFace folds the samples measured over one source face's lattice
// into both that face's FaceError and the running whole-mesh totals
// (spec.md §4.6). Over each micro-triangle the error is interpolated
// linearly between its corner samples e0, e1, e2: its mean is
// (e0+e1+e2)/3 and its mean-square is the exact integral
// (e0²+e1²+e2²+e0e1+e1e2+e0e2)/6. Both are weighted by the
// micro-triangle's area and summed across the face and the mesh.
//
// dist holds one distance per lattice point, same indexing as
// lat.Points. For n=1 (no micro-triangles), face holds a single
// sample and its error stands for the whole face.
func (acc *Accumulator) AddFace(face int32, area float32, lat Lattice, tris []MicroTriangle, dist []float32) FaceError {
	var fe FaceError
	fe.Face = face
	fe.Area = area

	fe.Min = dist[0]
	for _, e := range dist[1:] {
		if e < fe.Min {
			fe.Min = e
		}
	}

	if len(tris) == 0 {
		e := dist[0]
		fe.Mean = e
		fe.MeanSqr = e * e
		fe.Max = e
	} else {
		microArea := area / float32(len(tris))
		var sumMean, sumMeanSqr float64
		for _, mt := range tris {
			e0, e1, e2 := dist[mt.I0], dist[mt.I1], dist[mt.I2]
			mean := (e0 + e1 + e2) / 3
			meanSqr := (e0*e0 + e1*e1 + e2*e2 + e0*e1 + e1*e2 + e0*e2) / 6
			sumMean += float64(microArea) * float64(mean)
			sumMeanSqr += float64(microArea) * float64(meanSqr)
			if e0 > fe.Max {
				fe.Max = e0
			}
			if e1 > fe.Max {
				fe.Max = e1
			}
			if e2 > fe.Max {
				fe.Max = e2
			}
		}
		if area > 0 {
			fe.Mean = float32(sumMean / float64(area))
			fe.MeanSqr = float32(sumMeanSqr / float64(area))
		}
	}

	acc.sumArea += float64(area)
	acc.sumAreaMean += float64(area) * float64(fe.Mean)
	acc.sumAreaMeanSqr += float64(area) * float64(fe.MeanSqr)
	if fe.Max > acc.max {
		acc.max = fe.Max
		acc.maxFace = face
	}
	if !acc.haveMin || fe.Min < acc.min {
		acc.min = fe.Min
		acc.haveMin = true
	}
	acc.faces = append(acc.faces, fe)
	acc.samples = append(acc.samples, dist...)
	return fe
}

// Finalize computes the whole-mesh Stats, including the per-sample
// error histogram, which can only be binned once the global max is
// known.
func (acc *Accumulator) Finalize() Stats {
	var s Stats
	if acc.sumArea > 0 {
		s.Mean = float32(acc.sumAreaMean / acc.sumArea)
		s.RMS = math32.Sqrt(float32(acc.sumAreaMeanSqr / acc.sumArea))
	}
	s.Min = acc.min
	s.Max = acc.max
	s.MaxFace = acc.maxFace
	s.Faces = acc.faces

	if acc.max > 0 {
		scale := float32(HistogramBuckets-1) / acc.max
		for _, e := range acc.samples {
			b := int(e * scale)
			if b < 0 {
				b = 0
			}
			if b >= HistogramBuckets {
				b = HistogramBuckets - 1
			}
			s.Histogram[b]++
		}
	}
	return s
}

// CombineSymmetric merges two one-directional Stats into the
// symmetric (Hausdorff) result by taking the worse value of each
// aggregate statistic (spec.md §4.7: "the symmetric distance is the
// max, per statistic, of both directions") and summing the two
// histograms into a single combined distribution.
func CombineSymmetric(a, b Stats) Stats {
	var out Stats
	out.Min = math32.Min(a.Min, b.Min)
	out.Mean = math32.Max(a.Mean, b.Mean)
	out.RMS = math32.Max(a.RMS, b.RMS)
	if a.Max >= b.Max {
		out.Max, out.MaxFace = a.Max, a.MaxFace
	} else {
		out.Max, out.MaxFace = b.Max, b.MaxFace
	}
	for i := range out.Histogram {
		out.Histogram[i] = a.Histogram[i] + b.Histogram[i]
	}
	out.Faces = append(append([]FaceError{}, a.Faces...), b.Faces...)
	return out
}
