package math

import (
	"github.com/hickb/hdcycles/engine/render"
)

// Mat4ToTransform converts a row-major 4x4 scene-graph matrix to the
// renderer's 3x4 affine form. The renderer stores row vectors, so the matrix
// columns become transform rows; the projective row is dropped.
func Mat4ToTransform(m Mat4) render.Transform {
	out := render.TransformIdentity()

	out.X.X = float32(m.Data[0*4+0])
	out.X.Y = float32(m.Data[1*4+0])
	out.X.Z = float32(m.Data[2*4+0])
	out.X.W = float32(m.Data[3*4+0])

	out.Y.X = float32(m.Data[0*4+1])
	out.Y.Y = float32(m.Data[1*4+1])
	out.Y.Z = float32(m.Data[2*4+1])
	out.Y.W = float32(m.Data[3*4+1])

	out.Z.X = float32(m.Data[0*4+2])
	out.Z.Y = float32(m.Data[1*4+2])
	out.Z.Z = float32(m.Data[2*4+2])
	out.Z.W = float32(m.Data[3*4+2])

	return out
}

func Vec2ToFloat2(v Vec2) render.Float2 {
	return render.Float2{X: v.X, Y: v.Y}
}

func Vec3ToFloat3(v Vec3) render.Float3 {
	return render.Float3{X: v.X, Y: v.Y, Z: v.Z}
}

func Vec4ToFloat3(v Vec4) render.Float3 {
	return render.Float3{X: v.X, Y: v.Y, Z: v.Z}
}

func Vec4ToFloat4(v Vec4) render.Float4 {
	return render.Float4{X: v.X, Y: v.Y, Z: v.Z, W: v.W}
}

// Float1ToFloat4 splats a scalar across all four lanes.
func Float1ToFloat4(v float32) render.Float4 {
	return render.Float4{X: v, Y: v, Z: v, W: v}
}

func Vec2ToFloat4(v Vec2, z, w float32) render.Float4 {
	return render.Float4{X: v.X, Y: v.Y, Z: z, W: w}
}

func Vec3ToFloat4(v Vec3, w float32) render.Float4 {
	return render.Float4{X: v.X, Y: v.Y, Z: v.Z, W: w}
}
