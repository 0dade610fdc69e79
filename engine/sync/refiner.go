package sync

import (
	"fmt"

	"github.com/hickb/hdcycles/engine/core"
	"github.com/hickb/hdcycles/engine/scenegraph"
)

/**
 * @brief Turns a topology snapshot into a triangulated index buffer plus the
 * attribute remapping tables the populators need. Without subdivision every
 * polygon is fan triangulated; with subdivision the renderer's own dicing
 * evaluates the limit surface and the refiner only maps attribute domains.
 */
type Refiner struct {
	topology scenegraph.Topology
	level    int

	triangles [][3]int
	// triFace maps each refined triangle back to its source face.
	triFace     []int
	numVertices int
}

func NewRefiner(topology scenegraph.Topology, refineLevel int, id string) *Refiner {
	r := &Refiner{
		topology:    topology,
		level:       refineLevel,
		numVertices: topology.NumVertices(),
	}

	corner := 0
	for face, count := range topology.FaceVertexCounts {
		if corner+count > len(topology.FaceVertexIndices) {
			core.LogWarn("topology of %s is truncated at face %d, ignoring the remainder", id, face)
			break
		}
		if count < 3 || topology.IsHole(face) {
			corner += count
			continue
		}
		for j := 1; j < count-1; j++ {
			r.triangles = append(r.triangles, [3]int{
				topology.FaceVertexIndices[corner],
				topology.FaceVertexIndices[corner+j],
				topology.FaceVertexIndices[corner+j+1],
			})
			r.triFace = append(r.triFace, face)
		}
		corner += count
	}

	return r
}

// RefinedIndices is the triangulated index buffer.
func (r *Refiner) RefinedIndices() [][3]int {
	return r.triangles
}

func (r *Refiner) NumTriangles() int {
	return len(r.triangles)
}

func (r *Refiner) NumVertices() int {
	return r.numVertices
}

// Topology returns the snapshot the refiner was built from.
func (r *Refiner) Topology() *scenegraph.Topology {
	return &r.topology
}

// RefineVertexData maps per-vertex source data into the refined vertex
// domain. Without subdivision the domain is unchanged; the element count
// must cover every source vertex.
func (r *Refiner) RefineVertexData(value scenegraph.Value) (scenegraph.Value, error) {
	if value.Len() < r.numVertices {
		return scenegraph.Value{}, fmt.Errorf("%w: %d vertex elements, need %d",
			core.ErrRefineShortfall, value.Len(), r.numVertices)
	}
	return value, nil
}

// RefineUniformData expands per-face source data into the refined triangle
// domain: every triangle produced from a face inherits that face's value.
func (r *Refiner) RefineUniformData(value scenegraph.Value) (scenegraph.Value, error) {
	if value.Len() > r.topology.NumFaces() {
		return scenegraph.Value{}, fmt.Errorf("%w: %d uniform elements for %d faces",
			core.ErrOversizedSource, value.Len(), r.topology.NumFaces())
	}
	lanes, err := value.Flatten()
	if err != nil {
		return scenegraph.Value{}, err
	}
	width := value.Width()
	out := make([]float32, 0, len(r.triangles)*width)
	for _, face := range r.triFace {
		if face >= value.Len() {
			out = append(out, make([]float32, width)...)
			continue
		}
		out = append(out, lanes[face*width:(face+1)*width]...)
	}
	return scenegraph.FromFlat(out, width), nil
}

// RefineUniformInts expands a per-face int array (e.g. material indices)
// into the refined triangle domain.
func (r *Refiner) RefineUniformInts(values []int32) []int32 {
	out := make([]int32, len(r.triangles))
	for i, face := range r.triFace {
		if face < len(values) {
			out[i] = values[face]
		}
	}
	return out
}

// RefineData dispatches on the interpolation class. Face-varying and uniform
// data stay in their source domains here; the populators own the fan
// expansion to renderer corners and triangles.
func (r *Refiner) RefineData(value scenegraph.Value, interpolation scenegraph.Interpolation) (scenegraph.Value, error) {
	switch interpolation {
	case scenegraph.InterpolationVertex, scenegraph.InterpolationVarying:
		return r.RefineVertexData(value)
	case scenegraph.InterpolationUniform:
		if value.Len() > r.topology.NumFaces() {
			return scenegraph.Value{}, fmt.Errorf("%w: %d uniform elements for %d faces",
				core.ErrOversizedSource, value.Len(), r.topology.NumFaces())
		}
		return value, nil
	case scenegraph.InterpolationFaceVarying:
		if corners := r.topology.NumCorners(); value.Len() < corners {
			return scenegraph.Value{}, fmt.Errorf("%w: %d face-varying elements for %d corners",
				core.ErrRefineShortfall, value.Len(), corners)
		}
		return value, nil
	case scenegraph.InterpolationConstant:
		return value, nil
	}
	return scenegraph.Value{}, fmt.Errorf("%w: %s", core.ErrUnsupportedType, interpolation)
}
