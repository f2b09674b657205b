package engine

// Settings configures a DistSurfSurf run (spec.md §6
// "dist_surf_surf(m1, m2, sampling_step, min_sample_freq, symmetric,
// quiet, compute_target_normals)").
type Settings struct {
	// SamplingStep is the absolute sample spacing (spec.md §4.5
	// "Sampling frequency from step size"): each face's frequency is
	// derived from its longest side divided by SamplingStep. Zero
	// falls back to Frequency.
	SamplingStep float32 `yaml:"samplingStep"`

	// MinSampleFreq lifts the derived frequency so it never drops
	// below this floor (spec.md §4.5: "an optional min_sample_freq
	// lifts n so n >= min_sample_freq").
	MinSampleFreq int32 `yaml:"minSampleFreq"`

	// Frequency is the fixed per-face sampling frequency used when
	// neither SamplingStep nor RelativeSampling is set.
	Frequency int32 `yaml:"frequency"`

	// RelativeSampling, when true, derives each face's sampling step
	// from RelativeStep times the source mesh's bounding-box diagonal
	// instead of an absolute SamplingStep (SPEC_FULL.md §C).
	RelativeSampling bool    `yaml:"relativeSampling"`
	RelativeStep     float32 `yaml:"relativeStep"`

	// Symmetric runs the comparison in both directions and combines
	// them into the Hausdorff (worst-of-both) result (spec.md §4.7).
	Symmetric bool `yaml:"symmetric"`

	// Quiet disables Context logging and timers.
	Quiet bool `yaml:"quiet"`
}

// DefaultSettings returns the settings the CLI falls back to absent
// any flags or config file (spec.md §6).
func DefaultSettings() Settings {
	return Settings{Frequency: 4}
}
