package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hickb/hdcycles/engine/math"
	"github.com/hickb/hdcycles/engine/render"
	"github.com/hickb/hdcycles/engine/scenegraph"
)

func translation(x, y, z float64) math.Mat4 {
	m := math.NewMat4Identity()
	m.Data[12] = x
	m.Data[13] = y
	m.Data[14] = z
	return m
}

func TestTransformPicksShutterCentreSample(t *testing.T) {
	obj := render.NewObject()
	samples := scenegraph.TransformSamples{
		Times:  []float32{-0.25, 0, 0.25},
		Values: []math.Mat4{translation(1, 0, 0), translation(2, 0, 0), translation(3, 0, 0)},
	}

	SyncObjectTransform(obj, samples, false)

	assert.InDelta(t, 2.0, float64(obj.Tfm.X.W), 1e-6)
	assert.Nil(t, obj.Motion)
}

func TestTransformMotionFromSamples(t *testing.T) {
	obj := render.NewObject()
	samples := scenegraph.TransformSamples{
		Times:  []float32{-0.25, 0.25},
		Values: []math.Mat4{translation(0, 1, 0), translation(0, 3, 0)},
	}

	SyncObjectTransform(obj, samples, true)

	require.Len(t, obj.Motion, 2)
	assert.InDelta(t, 1.0, float64(obj.Motion[0].Y.W), 1e-6)
	assert.InDelta(t, 3.0, float64(obj.Motion[1].Y.W), 1e-6)
}

func TestTransformHoldsStaticOverDeformationSteps(t *testing.T) {
	obj := render.NewObject()
	obj.Geometry = render.NewMesh()
	obj.Geometry.UseMotionBlur = true
	obj.Geometry.MotionSteps = 3

	samples := scenegraph.TransformSamples{
		Times:  []float32{-0.25, 0.25},
		Values: []math.Mat4{translation(1, 0, 0), translation(5, 0, 0)},
	}

	SyncObjectTransform(obj, samples, true)

	require.Len(t, obj.Motion, 3)
	for _, tfm := range obj.Motion {
		assert.Equal(t, obj.Tfm, tfm)
	}
}

func TestTransformIdentityWithoutSamples(t *testing.T) {
	obj := render.NewObject()
	SyncObjectTransform(obj, scenegraph.TransformSamples{}, true)
	assert.Equal(t, render.TransformIdentity(), obj.Tfm)
}
