package scenegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenNarrowsDoubles(t *testing.T) {
	v := FromVec3([][3]float64{{1, 2, 3}, {4, 5, 6}})

	require.Equal(t, KindDouble, v.Kind())
	require.Equal(t, 3, v.Width())
	require.Equal(t, 2, v.Len())

	lanes, err := v.Flatten()
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, lanes)
}

func TestFlattenCopiesFloats(t *testing.T) {
	src := []float32{1, 2, 3}
	v := FromScalars(src)

	lanes, err := v.Flatten()
	require.NoError(t, err)

	lanes[0] = 99
	assert.Equal(t, float32(1), src[0])
}

func TestFromFlatRoundTrip(t *testing.T) {
	v := FromFlat([]float32{1, 2, 3, 4}, 2)

	require.Equal(t, 2, v.Len())
	require.Equal(t, 2, v.Width())

	lanes, err := v.Flatten()
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4}, lanes)
}

func TestEmptyValue(t *testing.T) {
	var v Value
	assert.True(t, v.IsEmpty())

	_, err := v.Flatten()
	assert.Error(t, err)
}

func TestAsVec3f(t *testing.T) {
	v := FromVec3([][3]float32{{1, 2, 3}})
	data, ok := v.AsVec3f()
	require.True(t, ok)
	assert.Equal(t, [3]float32{1, 2, 3}, data[0])

	_, ok = FromScalars([]int32{1}).AsVec3f()
	assert.False(t, ok)
}
