package math

import (
	"github.com/chewxy/math32"
)

func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) MulScalar(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.MulScalar(1.0 / l)
}

func (v Vec3) Compare(o Vec3, epsilon float32) bool {
	return math32.Abs(v.X-o.X) <= epsilon &&
		math32.Abs(v.Y-o.Y) <= epsilon &&
		math32.Abs(v.Z-o.Z) <= epsilon
}

/** @brief Returns the identity matrix. */
func NewMat4Identity() Mat4 {
	return Mat4{Data: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Mul returns m * o, both row major.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m.Data[r*4+k] * o.Data[k*4+c]
			}
			out.Data[r*4+c] = sum
		}
	}
	return out
}

func (m Mat4) IsIdentity() bool {
	return m == NewMat4Identity()
}

// Lerp interpolates every element; good enough for transform resampling
// inside a shutter window where rotations are small.
func (m Mat4) Lerp(o Mat4, t float64) Mat4 {
	var out Mat4
	for i := 0; i < 16; i++ {
		out.Data[i] = m.Data[i] + (o.Data[i]-m.Data[i])*t
	}
	return out
}
