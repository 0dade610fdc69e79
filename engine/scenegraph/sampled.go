package scenegraph

import (
	"github.com/hickb/hdcycles/engine/math"
)

/**
 * @brief Transform samples over the shutter window, ordered by time. Time 0
 * is the shutter centre.
 */
type TransformSamples struct {
	Times  []float32
	Values []math.Mat4
}

func (ts *TransformSamples) Count() int {
	return len(ts.Times)
}

// Limit caps the consumed sample count, keeping the earliest samples. A
// non-positive limit leaves the samples untouched.
func (ts TransformSamples) Limit(n int) TransformSamples {
	if n <= 0 || len(ts.Times) <= n {
		return ts
	}
	return TransformSamples{Times: ts.Times[:n], Values: ts.Values[:n]}
}

// Resample evaluates the sampled transform at an arbitrary time with linear
// interpolation between the bracketing samples. Outside the sampled range it
// clamps to the nearest endpoint.
func (ts *TransformSamples) Resample(time float32) math.Mat4 {
	if len(ts.Values) == 0 {
		return math.NewMat4Identity()
	}
	if time <= ts.Times[0] {
		return ts.Values[0]
	}
	last := len(ts.Times) - 1
	if time >= ts.Times[last] {
		return ts.Values[last]
	}
	for i := 0; i < last; i++ {
		t0, t1 := ts.Times[i], ts.Times[i+1]
		if time < t0 || time > t1 {
			continue
		}
		if t1 == t0 {
			return ts.Values[i]
		}
		u := float64((time - t0) / (t1 - t0))
		return ts.Values[i].Lerp(ts.Values[i+1], u)
	}
	return ts.Values[last]
}

/**
 * @brief Point position samples for deformation motion blur, ordered by
 * time.
 */
type PointSamples struct {
	Times  []float32
	Values [][][3]float32
}

func (ps *PointSamples) Count() int {
	return len(ps.Times)
}

// Limit caps the consumed sample count, keeping the earliest samples. A
// non-positive limit leaves the samples untouched.
func (ps PointSamples) Limit(n int) PointSamples {
	if n <= 0 || len(ps.Times) <= n {
		return ps
	}
	return PointSamples{Times: ps.Times[:n], Values: ps.Values[:n]}
}

/**
 * @brief Per-instance transform samples from a point instancer: one matrix
 * per instance per time sample.
 */
type InstanceTransformSamples struct {
	Times  []float32
	Values [][]math.Mat4
}

func (is *InstanceTransformSamples) Count() int {
	return len(is.Times)
}

// NumInstances is the instance count of the first sample; every sample holds
// the same number of instances.
func (is *InstanceTransformSamples) NumInstances() int {
	if len(is.Values) == 0 {
		return 0
	}
	return len(is.Values[0])
}
