package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMat4ToTransformMovesTranslationToRows(t *testing.T) {
	m := NewMat4Identity()
	m.Data[12] = 1
	m.Data[13] = 2
	m.Data[14] = 3

	tfm := Mat4ToTransform(m)

	assert.Equal(t, float32(1), tfm.X.W)
	assert.Equal(t, float32(2), tfm.Y.W)
	assert.Equal(t, float32(3), tfm.Z.W)
	assert.Equal(t, float32(1), tfm.X.X)
	assert.Equal(t, float32(1), tfm.Y.Y)
	assert.Equal(t, float32(1), tfm.Z.Z)
}

func TestMat4ToTransformTransposesRotation(t *testing.T) {
	var m Mat4
	// Row-major 90 degree rotation around Z.
	m.Data = [16]float64{
		0, 1, 0, 0,
		-1, 0, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}

	tfm := Mat4ToTransform(m)

	// Matrix columns become transform rows.
	assert.Equal(t, float32(0), tfm.X.X)
	assert.Equal(t, float32(-1), tfm.X.Y)
	assert.Equal(t, float32(1), tfm.Y.X)
	assert.Equal(t, float32(0), tfm.Y.Y)
}

func TestMat4Lerp(t *testing.T) {
	a := NewMat4Identity()
	b := NewMat4Identity()
	b.Data[12] = 10

	mid := a.Lerp(b, 0.5)
	assert.InDelta(t, 5.0, mid.Data[12], 1e-12)
}

func TestVec3Normalized(t *testing.T) {
	v := NewVec3(3, 0, 4).Normalized()
	assert.InDelta(t, 0.6, float64(v.X), 1e-6)
	assert.InDelta(t, 0.8, float64(v.Z), 1e-6)

	assert.Equal(t, Vec3{}, Vec3{}.Normalized())
}
