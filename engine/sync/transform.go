package sync

import (
	"github.com/hickb/hdcycles/engine/math"
	"github.com/hickb/hdcycles/engine/render"
	"github.com/hickb/hdcycles/engine/scenegraph"
)

// transformAt picks the sample at shutter centre, falling back to the first
// sample when the window never crosses time zero.
func transformAt(samples scenegraph.TransformSamples) math.Mat4 {
	if samples.Count() == 0 {
		return math.NewMat4Identity()
	}
	for i, t := range samples.Times {
		if t == 0 {
			return samples.Values[i]
		}
	}
	return samples.Values[0]
}

/**
 * @brief Applies sampled transforms to an object. The centre sample becomes
 * the object transform; with motion blur enabled and more than one sample the
 * full set becomes the object's transform motion. When the object's geometry
 * already carries deformation steps that disagree with the sample count, the
 * transform is held static across those steps so the two blur sources stay
 * aligned.
 */
func SyncObjectTransform(object *render.Object, samples scenegraph.TransformSamples, useMotion bool) {
	object.Tfm = math.Mat4ToTransform(transformAt(samples))
	object.Motion = nil

	if !useMotion || samples.Count() <= 1 {
		return
	}

	geometry := object.Geometry
	if geometry != nil && geometry.UseMotionBlur && geometry.MotionSteps != samples.Count() {
		object.Motion = make([]render.Transform, geometry.MotionSteps)
		for i := range object.Motion {
			object.Motion[i] = object.Tfm
		}
		return
	}

	object.Motion = make([]render.Transform, samples.Count())
	for i, m := range samples.Values {
		object.Motion[i] = math.Mat4ToTransform(m)
	}
	if geometry != nil && !geometry.UseMotionBlur {
		geometry.UseMotionBlur = true
		geometry.MotionSteps = samples.Count()
	}
}
