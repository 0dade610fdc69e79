package render

// Float2 is the renderer's native 2-component vector.
type Float2 struct {
	X, Y float32
}

// Float3 is the renderer's native 3-component vector.
type Float3 struct {
	X, Y, Z float32
}

// Float4 is the renderer's native 4-component vector.
type Float4 struct {
	X, Y, Z, W float32
}

/**
 * @brief An affine transform as the renderer consumes it: three rows of a
 * 4x4 matrix, the fourth row implied as (0, 0, 0, 1).
 */
type Transform struct {
	X, Y, Z Float4
}

func TransformIdentity() Transform {
	return Transform{
		X: Float4{1, 0, 0, 0},
		Y: Float4{0, 1, 0, 0},
		Z: Float4{0, 0, 1, 0},
	}
}

/** @brief Ray visibility flags for an object. */
const (
	PathRayCamera uint32 = 1 << iota
	PathRayDiffuse
	PathRayGlossy
	PathRayVolumeScatter
	PathRayShadow
	PathRayTransmit
)

const PathRayAllVisibility = PathRayCamera | PathRayDiffuse | PathRayGlossy |
	PathRayVolumeScatter | PathRayShadow | PathRayTransmit

// BoundBox is an axis-aligned bounding box. The zero value is empty.
type BoundBox struct {
	Min, Max Float3
	valid    bool
}

func (b *BoundBox) Grow(p Float3) {
	if !b.valid {
		b.Min, b.Max = p, p
		b.valid = true
		return
	}
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}

func (b *BoundBox) Valid() bool {
	return b.valid
}
