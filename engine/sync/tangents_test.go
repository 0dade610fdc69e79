package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hickb/hdcycles/engine/render"
)

func planarQuadMesh() *render.Mesh {
	mesh := render.NewMesh()
	mesh.AddVertex(render.Float3{X: -1, Y: -1})
	mesh.AddVertex(render.Float3{X: 1, Y: -1})
	mesh.AddVertex(render.Float3{X: 1, Y: 1})
	mesh.AddVertex(render.Float3{X: -1, Y: 1})
	mesh.AddTriangle(0, 1, 2, 0, true)
	mesh.AddTriangle(0, 2, 3, 0, true)

	uvs := []float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	attr := mesh.Attributes.Add("st", render.AttrStdUV, render.ElementCorner, 2)
	attr.Resize(6)
	copy(attr.Data, uvs)
	return mesh
}

func TestTangentsAlignWithUVGradient(t *testing.T) {
	mesh := planarQuadMesh()

	require.NoError(t, ComputeMikkTangents("st", mesh, true))

	tangent := mesh.Attributes.Find("st.tangent")
	require.NotNil(t, tangent)
	require.Equal(t, 6, tangent.Elements())

	// U grows along +X on a planar quad, so every corner tangent is +X.
	for i := 0; i < tangent.Elements(); i++ {
		v := tangent.Float3At(i)
		assert.InDelta(t, 1.0, float64(v.X), 1e-4)
		assert.InDelta(t, 0.0, float64(v.Y), 1e-4)
		assert.InDelta(t, 0.0, float64(v.Z), 1e-4)
	}

	sign := mesh.Attributes.Find("st.tangent_sign")
	require.NotNil(t, sign)
	require.Equal(t, 6, sign.Elements())
	for _, s := range sign.Data {
		assert.Equal(t, float32(1), s)
	}
}

func TestTangentsDeriveMissingNormals(t *testing.T) {
	mesh := planarQuadMesh()

	require.NoError(t, ComputeMikkTangents("st", mesh, false))

	assert.NotNil(t, mesh.Attributes.FindStandard(render.AttrStdVertexNormal))
	assert.Nil(t, mesh.Attributes.Find("st.tangent_sign"))
}

func TestTangentsRequireGeometry(t *testing.T) {
	mesh := render.NewMesh()
	assert.Error(t, ComputeMikkTangents("st", mesh, false))
}
