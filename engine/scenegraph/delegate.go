package scenegraph

import (
	"github.com/hickb/hdcycles/engine/render"
)

// DisplayStyle carries the viewport refinement request for one primitive.
type DisplayStyle struct {
	RefineLevel int
}

/**
 * @brief A point instancer handle. The instancer owns the per-instance
 * transform sampling; prototypes compose these with their own transform.
 */
type Instancer interface {
	// SampleInstanceTransforms returns the time-sampled transforms of every
	// instance of the given prototype.
	SampleInstanceTransforms(prototypeID string) InstanceTransformSamples
}

/**
 * @brief Read access to the host scene-graph's view of one primitive. This
 * is the inbound boundary: the host owns storage and change tracking, sync
 * only pulls state from it.
 */
type Delegate interface {
	// GetMeshTopology snapshots the primitive's current topology.
	GetMeshTopology(id string) Topology

	GetDisplayStyle(id string) DisplayStyle

	// GetPrimvarDescriptors lists the primitive's attributes declared at the
	// given interpolation.
	GetPrimvarDescriptors(id string, interpolation Interpolation) []PrimvarDescriptor

	// Get returns the current value of a named primvar.
	Get(id, name string) Value

	// GetExtComputationPrimvarDescriptors lists computed (e.g. skinned)
	// primvars at the given interpolation.
	GetExtComputationPrimvarDescriptors(id string, interpolation Interpolation) []PrimvarDescriptor

	// GetComputedPrimvarValues runs the host's computations for the given
	// descriptors and returns the results by name.
	GetComputedPrimvarValues(id string, descs []PrimvarDescriptor) map[string]Value

	// SampleTransform returns the primitive's transform over the shutter
	// window.
	SampleTransform(id string) TransformSamples

	// SamplePrimvar returns time samples of a primvar holding positions.
	SamplePrimvar(id, name string) PointSamples

	GetDoubleSided(id string) bool
	GetVisible(id string) bool
	GetPrimID(id string) int

	// GetMaterialID returns the binding path of the primitive's material, or
	// empty when unbound.
	GetMaterialID(id string) string

	// GetMaterial resolves a material binding path to a renderer shader.
	// Returns nil when the material does not exist or failed to build.
	GetMaterial(path string) *render.Shader

	// GetInstancer resolves an instancer path; nil when the primitive is not
	// instanced.
	GetInstancer(id string) Instancer
}
