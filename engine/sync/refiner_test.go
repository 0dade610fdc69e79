package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hickb/hdcycles/engine/core"
	"github.com/hickb/hdcycles/engine/scenegraph"
)

func TestRefinerTriangulatesQuad(t *testing.T) {
	topology := scenegraph.Topology{
		FaceVertexCounts:  []int{4},
		FaceVertexIndices: []int{0, 1, 2, 3},
	}

	r := NewRefiner(topology, 0, "/quad")

	require.Equal(t, 2, r.NumTriangles())
	assert.Equal(t, [3]int{0, 1, 2}, r.RefinedIndices()[0])
	assert.Equal(t, [3]int{0, 2, 3}, r.RefinedIndices()[1])
	assert.Equal(t, 4, r.NumVertices())
}

func TestRefinerTriangleCountPerFace(t *testing.T) {
	// A face of k corners fans into k-2 triangles.
	topology := scenegraph.Topology{
		FaceVertexCounts:  []int{4, 5},
		FaceVertexIndices: []int{0, 1, 2, 3, 4, 5, 6, 7, 8},
	}

	r := NewRefiner(topology, 0, "/ngons")
	assert.Equal(t, 2+3, r.NumTriangles())
}

func TestRefinerSkipsHolesAndDegenerateFaces(t *testing.T) {
	topology := scenegraph.Topology{
		FaceVertexCounts:  []int{3, 2, 3},
		FaceVertexIndices: []int{0, 1, 2, 3, 4, 5, 6, 7},
		HoleIndices:       []int{0},
	}

	r := NewRefiner(topology, 0, "/holes")

	require.Equal(t, 1, r.NumTriangles())
	assert.Equal(t, [3]int{5, 6, 7}, r.RefinedIndices()[0])
}

func TestRefineVertexDataRejectsShortArrays(t *testing.T) {
	topology := scenegraph.Topology{
		FaceVertexCounts:  []int{3},
		FaceVertexIndices: []int{0, 1, 2},
	}
	r := NewRefiner(topology, 0, "/tri")

	_, err := r.RefineVertexData(scenegraph.FromScalars([]float32{1, 2}))
	assert.ErrorIs(t, err, core.ErrRefineShortfall)

	value, err := r.RefineVertexData(scenegraph.FromScalars([]float32{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, 3, value.Len())
}

func TestRefineUniformIntsExpandsPerTriangle(t *testing.T) {
	topology := scenegraph.Topology{
		FaceVertexCounts:  []int{4, 3},
		FaceVertexIndices: []int{0, 1, 2, 3, 4, 5, 6},
	}
	r := NewRefiner(topology, 0, "/mixed")

	out := r.RefineUniformInts([]int32{7, 9})
	assert.Equal(t, []int32{7, 7, 9}, out)
}

func TestRefineDataRejectsOversizedUniform(t *testing.T) {
	topology := scenegraph.Topology{
		FaceVertexCounts:  []int{3},
		FaceVertexIndices: []int{0, 1, 2},
	}
	r := NewRefiner(topology, 0, "/tri")

	_, err := r.RefineData(scenegraph.FromScalars([]float32{1, 2}), scenegraph.InterpolationUniform)
	assert.ErrorIs(t, err, core.ErrOversizedSource)
}
