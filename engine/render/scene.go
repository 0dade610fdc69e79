package render

import (
	"sync"

	"github.com/chewxy/math32"
)

func sqrt32(v float32) float32 {
	return math32.Sqrt(v)
}

/**
 * @brief The renderer's scene container. All mutation from sync calls
 * happens under the scene mutex; the render threads take the same lock when
 * they copy state over to the device.
 */
type Scene struct {
	mu sync.Mutex

	Geometries []*Mesh
	Objects    []*Object
	Shaders    []*Shader

	// DefaultSurface is bound when a material cannot be resolved.
	DefaultSurface *Shader
	// DefaultVColSurface is the unresolved-material fallback for primitives
	// carrying vertex colours.
	DefaultVColSurface *Shader

	requested map[AttributeStandard]bool

	mutations  uint64
	interrupts uint64
}

func NewScene() *Scene {
	s := &Scene{
		requested: make(map[AttributeStandard]bool),
	}
	s.DefaultSurface = NewShader(DefaultSurfaceName)
	s.DefaultVColSurface = NewShader(DefaultVColSurfaceName)
	s.DefaultVColSurface.UseVertexColor = true
	s.Shaders = append(s.Shaders, s.DefaultSurface, s.DefaultVColSurface)
	return s
}

// Lock acquires the scene-wide mutation lock. Every sync call holds it for
// its full duration.
func (s *Scene) Lock() {
	s.mu.Lock()
}

func (s *Scene) Unlock() {
	s.mu.Unlock()
}

func (s *Scene) AddGeometry(m *Mesh) {
	s.Geometries = append(s.Geometries, m)
	s.mutations++
}

func (s *Scene) RemoveGeometry(m *Mesh) {
	for i, g := range s.Geometries {
		if g == m {
			s.Geometries = append(s.Geometries[:i], s.Geometries[i+1:]...)
			s.mutations++
			return
		}
	}
}

func (s *Scene) AddObject(o *Object) {
	s.Objects = append(s.Objects, o)
	s.mutations++
}

func (s *Scene) RemoveObject(o *Object) {
	for i, obj := range s.Objects {
		if obj == o {
			s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
			s.mutations++
			return
		}
	}
}

// RequestAttribute registers renderer-side interest in a standard attribute,
// e.g. generated texture coordinates when a shader samples them.
func (s *Scene) RequestAttribute(std AttributeStandard) {
	s.requested[std] = true
}

// NeedAttribute reports whether any shader in the scene requested the given
// standard attribute.
func (s *Scene) NeedAttribute(std AttributeStandard) bool {
	return s.requested[std]
}

// Interrupt asks an in-flight progressive render to restart with the updated
// scene.
func (s *Scene) Interrupt() {
	s.interrupts++
}

func (s *Scene) InterruptCount() uint64 {
	return s.interrupts
}

// MutationCount counts scene mutations (adds, removals, tag updates). Used to
// verify that a clean sync touches nothing.
func (s *Scene) MutationCount() uint64 {
	return s.mutations
}

func (s *Scene) tagUpdate() {
	s.mutations++
}
