package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/**
 * @brief A 4x4 row-major matrix in double precision, matching the
 * scene-graph's transform representation.
 */
type Mat4 struct {
	/** @brief The matrix elements, row major. */
	Data [16]float64
}

/**
 * @brief Represents the extents of a 3d object.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
}

const K_FLOAT_EPSILON float32 = 1.192092896e-07
