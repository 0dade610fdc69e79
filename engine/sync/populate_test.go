package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hickb/hdcycles/engine/core"
	"github.com/hickb/hdcycles/engine/render"
	"github.com/hickb/hdcycles/engine/scenegraph"
)

func quadContext() MeshContext {
	return MeshContext{
		FaceVertexCounts: []int{4},
		VertexCount:      4,
	}
}

func TestPopulateUniformExpandsToTriangles(t *testing.T) {
	attr := &render.Attribute{Name: "roughness", Width: 1}
	value := scenegraph.FromScalars([]float32{5})

	err := PopulateAttribute("roughness", scenegraph.InterpolationUniform, value, attr, quadContext())

	require.NoError(t, err)
	assert.Equal(t, []float32{5, 5}, attr.Data)
}

func TestPopulateUniformRejectsShortArray(t *testing.T) {
	ctx := MeshContext{
		FaceVertexCounts: []int{3, 3},
		VertexCount:      4,
	}
	attr := &render.Attribute{Name: "roughness", Width: 1}
	value := scenegraph.FromScalars([]float32{5})

	err := PopulateAttribute("roughness", scenegraph.InterpolationUniform, value, attr, ctx)
	assert.ErrorIs(t, err, core.ErrRefineShortfall)
	assert.Empty(t, attr.Data)
}

func TestPopulateBaseFacesKeepSourceOrder(t *testing.T) {
	ctx := quadContext()
	ctx.BaseFaces = true

	attr := &render.Attribute{Name: "st", Width: 1}
	value := scenegraph.FromScalars([]float32{0, 1, 2, 3})
	require.NoError(t, PopulateAttribute("st", scenegraph.InterpolationFaceVarying, value, attr, ctx))
	// No fan expansion: corners stay addressable through the face start.
	assert.Equal(t, []float32{0, 1, 2, 3}, attr.Data)

	faceAttr := &render.Attribute{Name: "roughness", Width: 1}
	face := scenegraph.FromScalars([]float32{7})
	require.NoError(t, PopulateAttribute("roughness", scenegraph.InterpolationUniform, face, faceAttr, ctx))
	assert.Equal(t, []float32{7}, faceAttr.Data)
}

func TestPopulateConstantRequiresSingleElement(t *testing.T) {
	attr := &render.Attribute{Name: "tint", Width: 3}
	value := scenegraph.FromVec3([][3]float32{{1, 0, 0}, {0, 1, 0}})

	err := PopulateAttribute("tint", scenegraph.InterpolationConstant, value, attr, quadContext())
	assert.ErrorIs(t, err, core.ErrConstantSize)
}

func TestPopulateVertexRequiresExactCount(t *testing.T) {
	attr := &render.Attribute{Name: "mass", Width: 1}
	value := scenegraph.FromScalars([]float32{1, 2, 3})

	err := PopulateAttribute("mass", scenegraph.InterpolationVertex, value, attr, quadContext())
	assert.ErrorIs(t, err, core.ErrRefineShortfall)
}

func TestPopulateFaceVaryingFansCorners(t *testing.T) {
	attr := &render.Attribute{Name: "st", Width: 1}
	value := scenegraph.FromScalars([]float32{0, 1, 2, 3})

	err := PopulateAttribute("st", scenegraph.InterpolationFaceVarying, value, attr, quadContext())

	require.NoError(t, err)
	// Two fan triangles: (c0, c1, c2) and (c0, c2, c3).
	assert.Equal(t, []float32{0, 1, 2, 0, 2, 3}, attr.Data)
}

func TestPopulateFaceVaryingLeftHandedSwapsWinding(t *testing.T) {
	ctx := MeshContext{
		FaceVertexCounts: []int{3},
		VertexCount:      3,
		LeftHanded:       true,
	}
	attr := &render.Attribute{Name: "st", Width: 1}
	value := scenegraph.FromScalars([]float32{0, 1, 2})

	err := PopulateAttribute("st", scenegraph.InterpolationFaceVarying, value, attr, ctx)

	require.NoError(t, err)
	assert.Equal(t, []float32{0, 2, 1}, attr.Data)
}

func TestPopulateRejectsWidthMismatch(t *testing.T) {
	attr := &render.Attribute{Name: "st", Width: 2}
	value := scenegraph.FromVec3([][3]float32{{0, 0, 0}})

	err := PopulateAttribute("st", scenegraph.InterpolationConstant, value, attr, quadContext())
	assert.ErrorIs(t, err, core.ErrUnsupportedType)
}
