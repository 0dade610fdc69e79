package scenegraph

/** @brief The domain an attribute value applies to. */
type Interpolation int

const (
	InterpolationConstant Interpolation = iota
	InterpolationUniform
	InterpolationVarying
	InterpolationVertex
	InterpolationFaceVarying
	InterpolationInstance
	InterpolationCount
)

func (i Interpolation) String() string {
	switch i {
	case InterpolationConstant:
		return "constant"
	case InterpolationUniform:
		return "uniform"
	case InterpolationVarying:
		return "varying"
	case InterpolationVertex:
		return "vertex"
	case InterpolationFaceVarying:
		return "faceVarying"
	case InterpolationInstance:
		return "instance"
	}
	return "unknown"
}

// Interpolations lists every interpolation class in query order.
var Interpolations = [InterpolationCount]Interpolation{
	InterpolationConstant, InterpolationUniform,
	InterpolationVarying, InterpolationVertex,
	InterpolationFaceVarying, InterpolationInstance,
}

/** @brief A hint about what an attribute's values mean. */
type Role int

const (
	RoleNone Role = iota
	RoleNormal
	RoleTextureCoordinate
	RoleColor
	RoleVector
)

// Well-known primvar names.
const (
	TokenPoints       = "points"
	TokenNormals      = "normals"
	TokenWidths       = "widths"
	TokenVelocities   = "velocities"
	TokenDisplayColor = "displayColor"

	// Object-level render settings, authored as constant primvars.
	TokenShadowCatcher = "cycles:object:is_shadow_catcher"
	TokenUseHoldout    = "cycles:object:use_holdout"
)

// PrimvarDescriptor names one attribute a primitive carries and how it
// interpolates.
type PrimvarDescriptor struct {
	Name          string
	Interpolation Interpolation
	Role          Role
}
