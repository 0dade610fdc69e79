package render

import (
	"github.com/google/uuid"
)

/** @brief The name of the default surface shader. */
const DefaultSurfaceName string = "default_surface"

/** @brief The name of the default vertex-colour aware surface shader. */
const DefaultVColSurfaceName string = "default_vcol_surface"

/**
 * @brief An opaque handle to a compiled surface shader. Shader graph
 * construction lives outside this core; the sync layer only binds handles.
 */
type Shader struct {
	UniqueID uuid.UUID
	Name     string
	// UseVertexColor marks shaders that read the displayColor vertex
	// attribute for their base colour.
	UseVertexColor bool
}

func NewShader(name string) *Shader {
	return &Shader{
		UniqueID: uuid.New(),
		Name:     name,
	}
}

// TagUpdate marks the shader as needing recompilation on the next render
// round.
func (s *Shader) TagUpdate(scene *Scene) {
	scene.tagUpdate()
}
