package testbed

import (
	"github.com/hickb/hdcycles/engine/math"
	"github.com/hickb/hdcycles/engine/render"
	"github.com/hickb/hdcycles/engine/scenegraph"
)

/**
 * @brief An in-memory scene-graph host backing the demo and the test suite.
 * Prim state lives in plain structs; edits go through the stage so the change
 * tracker always hears about them.
 */
type Stage struct {
	prims      map[string]*PrimData
	materials  map[string]*render.Shader
	instancers map[string]*PointInstancer
	tracker    *scenegraph.ChangeTracker
}

// PrimData is the authored state of one mesh primitive.
type PrimData struct {
	Topology     scenegraph.Topology
	Points       [][3]float32
	PointSamples scenegraph.PointSamples
	Transform    scenegraph.TransformSamples

	Primvars map[scenegraph.Interpolation][]scenegraph.PrimvarDescriptor
	Values   map[string]scenegraph.Value

	DisplayStyle scenegraph.DisplayStyle
	DoubleSided  bool
	Visible      bool
	PrimID       int
	MaterialID   string
	InstancerID  string
}

func NewPrimData() *PrimData {
	return &PrimData{
		Primvars: make(map[scenegraph.Interpolation][]scenegraph.PrimvarDescriptor),
		Values:   make(map[string]scenegraph.Value),
		Visible:  true,
		Transform: scenegraph.TransformSamples{
			Times:  []float32{0},
			Values: []math.Mat4{math.NewMat4Identity()},
		},
	}
}

// SetPrimvar declares a primvar and stores its value in one step.
func (p *PrimData) SetPrimvar(desc scenegraph.PrimvarDescriptor, value scenegraph.Value) {
	for _, d := range p.Primvars[desc.Interpolation] {
		if d.Name == desc.Name {
			p.Values[desc.Name] = value
			return
		}
	}
	p.Primvars[desc.Interpolation] = append(p.Primvars[desc.Interpolation], desc)
	p.Values[desc.Name] = value
}

/** @brief A fixed-transform point instancer. */
type PointInstancer struct {
	Samples scenegraph.InstanceTransformSamples
}

func (pi *PointInstancer) SampleInstanceTransforms(prototypeID string) scenegraph.InstanceTransformSamples {
	return pi.Samples
}

func NewStage(tracker *scenegraph.ChangeTracker) *Stage {
	return &Stage{
		prims:      make(map[string]*PrimData),
		materials:  make(map[string]*render.Shader),
		instancers: make(map[string]*PointInstancer),
		tracker:    tracker,
	}
}

// AddPrim inserts a primitive and marks it fully dirty.
func (s *Stage) AddPrim(id string, data *PrimData) {
	s.prims[id] = data
	if s.tracker != nil {
		s.tracker.MarkDirty(id, scenegraph.AllDirty|scenegraph.DirtyInstancer)
	}
}

// Prim returns the mutable state of a primitive for edits; pair every edit
// with a MarkDirty call.
func (s *Stage) Prim(id string) *PrimData {
	return s.prims[id]
}

// MarkDirty forwards an edit notification to the change tracker.
func (s *Stage) MarkDirty(id string, bits scenegraph.DirtyBits) {
	if s.tracker != nil {
		s.tracker.MarkDirty(id, bits)
	}
}

func (s *Stage) AddMaterial(path string, shader *render.Shader) {
	s.materials[path] = shader
}

func (s *Stage) AddInstancer(path string, instancer *PointInstancer) {
	s.instancers[path] = instancer
}

func (s *Stage) GetMeshTopology(id string) scenegraph.Topology {
	return s.prims[id].Topology
}

func (s *Stage) GetDisplayStyle(id string) scenegraph.DisplayStyle {
	return s.prims[id].DisplayStyle
}

func (s *Stage) GetPrimvarDescriptors(id string, interpolation scenegraph.Interpolation) []scenegraph.PrimvarDescriptor {
	return s.prims[id].Primvars[interpolation]
}

func (s *Stage) Get(id, name string) scenegraph.Value {
	if name == scenegraph.TokenPoints {
		return scenegraph.FromVec3(s.prims[id].Points)
	}
	return s.prims[id].Values[name]
}

func (s *Stage) GetExtComputationPrimvarDescriptors(id string, interpolation scenegraph.Interpolation) []scenegraph.PrimvarDescriptor {
	return nil
}

func (s *Stage) GetComputedPrimvarValues(id string, descs []scenegraph.PrimvarDescriptor) map[string]scenegraph.Value {
	return nil
}

func (s *Stage) SampleTransform(id string) scenegraph.TransformSamples {
	return s.prims[id].Transform
}

func (s *Stage) SamplePrimvar(id, name string) scenegraph.PointSamples {
	if name == scenegraph.TokenPoints {
		return s.prims[id].PointSamples
	}
	return scenegraph.PointSamples{}
}

func (s *Stage) GetDoubleSided(id string) bool {
	return s.prims[id].DoubleSided
}

func (s *Stage) GetVisible(id string) bool {
	return s.prims[id].Visible
}

func (s *Stage) GetPrimID(id string) int {
	return s.prims[id].PrimID
}

func (s *Stage) GetMaterialID(id string) string {
	return s.prims[id].MaterialID
}

func (s *Stage) GetMaterial(path string) *render.Shader {
	return s.materials[path]
}

func (s *Stage) GetInstancer(id string) scenegraph.Instancer {
	path := s.prims[id].InstancerID
	if path == "" {
		return nil
	}
	instancer, ok := s.instancers[path]
	if !ok {
		return nil
	}
	return instancer
}
