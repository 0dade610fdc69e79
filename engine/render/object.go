package render

import (
	"github.com/google/uuid"
)

/**
 * @brief A renderable object: one geometry reference plus the per-object
 * state (transform, visibility, pass id) the renderer needs. Instances are
 * plain Objects sharing the prototype's geometry.
 */
type Object struct {
	UniqueID uuid.UUID
	Name     string

	Geometry *Mesh

	Tfm    Transform
	Motion []Transform

	Visibility      uint32
	PassID          int
	Color           Float3
	DoubleSided     bool
	IsShadowCatcher bool
	UseHoldout      bool
}

func NewObject() *Object {
	return &Object{
		UniqueID:   uuid.New(),
		Tfm:        TransformIdentity(),
		PassID:     -1,
		Visibility: PathRayAllVisibility,
	}
}

// TagUpdate marks the object as modified for the next render round.
func (o *Object) TagUpdate(scene *Scene) {
	scene.tagUpdate()
}
