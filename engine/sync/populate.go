package sync

import (
	"fmt"

	"github.com/hickb/hdcycles/engine/core"
	"github.com/hickb/hdcycles/engine/render"
	"github.com/hickb/hdcycles/engine/scenegraph"
)

/**
 * @brief The unrefined face-vertex structure a populate call expands
 * against, plus the winding declared on the source topology.
 */
type MeshContext struct {
	// FaceVertexCounts are the source polygon sizes, pre-triangulation.
	FaceVertexCounts []int
	VertexCount      int
	LeftHanded       bool
	// BaseFaces means the renderer keeps the source faces for subdivision
	// dicing, so face and corner data stay in source order instead of
	// fanning out to triangles.
	BaseFaces bool
}

func contextForTopology(topology *scenegraph.Topology) MeshContext {
	return MeshContext{
		FaceVertexCounts: topology.FaceVertexCounts,
		VertexCount:      topology.NumVertices(),
		LeftHanded:       topology.Orientation == scenegraph.OrientationLeftHanded,
	}
}

/**
 * @brief Copies a scene-graph attribute array into a renderer attribute
 * buffer, expanding it to the triangulated domain its interpolation class
 * implies. Failures are reported to the caller for skip-and-continue
 * handling; they never abort a sync.
 */
func PopulateAttribute(name string, interpolation scenegraph.Interpolation, value scenegraph.Value, attr *render.Attribute, ctx MeshContext) error {
	if value.IsEmpty() {
		return fmt.Errorf("%w: primvar %q holds no data", core.ErrUnsupportedType, name)
	}

	lanes, err := value.Flatten()
	if err != nil {
		return fmt.Errorf("primvar %q: %w", name, err)
	}
	width := value.Width()
	if attr.Width != width {
		return fmt.Errorf("%w: primvar %q has %d components, attribute %q wants %d",
			core.ErrUnsupportedType, name, width, attr.Name, attr.Width)
	}

	switch interpolation {
	case scenegraph.InterpolationConstant:
		return populateConstant(name, lanes, width, attr)
	case scenegraph.InterpolationVertex, scenegraph.InterpolationVarying:
		return populateVertex(name, lanes, width, attr, ctx)
	case scenegraph.InterpolationUniform:
		return populateUniform(name, lanes, width, attr, ctx)
	case scenegraph.InterpolationFaceVarying:
		return populateFaceVarying(lanes, width, attr, ctx)
	}

	return fmt.Errorf("%w: primvar %q interpolation %s", core.ErrUnsupportedType, name, interpolation)
}

func populateConstant(name string, lanes []float32, width int, attr *render.Attribute) error {
	if len(lanes) != width {
		return fmt.Errorf("%w: primvar %q has %d elements", core.ErrConstantSize, name, len(lanes)/width)
	}
	attr.Resize(1)
	copy(attr.Data, lanes)
	return nil
}

func populateVertex(name string, lanes []float32, width int, attr *render.Attribute, ctx MeshContext) error {
	if len(lanes)/width != ctx.VertexCount {
		return fmt.Errorf("%w: primvar %q has %d vertex elements, mesh has %d",
			core.ErrRefineShortfall, name, len(lanes)/width, ctx.VertexCount)
	}
	attr.Resize(ctx.VertexCount)
	copy(attr.Data, lanes)
	return nil
}

// populateUniform writes one copy of a face's value per triangle the face
// fans into: an n-gon of size k contributes k-2 triangles.
func populateUniform(name string, lanes []float32, width int, attr *render.Attribute, ctx MeshContext) error {
	numElems := len(lanes) / width
	if numElems > len(ctx.FaceVertexCounts) {
		return fmt.Errorf("%w: primvar %q has %d elements for %d faces",
			core.ErrOversizedSource, name, numElems, len(ctx.FaceVertexCounts))
	}
	if numElems < len(ctx.FaceVertexCounts) {
		return fmt.Errorf("%w: primvar %q has %d elements for %d faces",
			core.ErrRefineShortfall, name, numElems, len(ctx.FaceVertexCounts))
	}

	if ctx.BaseFaces {
		attr.Resize(numElems)
		copy(attr.Data, lanes)
		return nil
	}

	total := 0
	for i := 0; i < numElems; i++ {
		total += ctx.FaceVertexCounts[i] - 2
	}
	attr.Resize(total)

	idx := 0
	for i := 0; i < numElems; i++ {
		for j := 0; j < ctx.FaceVertexCounts[i]-2; j++ {
			copy(attr.Data[idx*width:], lanes[i*width:(i+1)*width])
			idx++
		}
	}
	return nil
}

// populateFaceVarying fan-triangulates each face's corner range and writes
// three interleaved values per produced triangle. A left-handed source swaps
// the second and third corner of every fan triangle to preserve winding.
func populateFaceVarying(lanes []float32, width int, attr *render.Attribute, ctx MeshContext) error {
	corners := 0
	triangles := 0
	for _, count := range ctx.FaceVertexCounts {
		corners += count
		if count >= 3 {
			triangles += count - 2
		}
	}
	if len(lanes)/width < corners {
		return fmt.Errorf("%w: %d face-varying elements for %d corners",
			core.ErrRefineShortfall, len(lanes)/width, corners)
	}

	// Base faces keep their corners; attributes index through the face's
	// start corner, so the data must stay in source order.
	if ctx.BaseFaces {
		attr.Resize(corners)
		copy(attr.Data, lanes[:corners*width])
		return nil
	}

	attr.Resize(triangles * 3)

	out := 0
	base := 0
	for _, count := range ctx.FaceVertexCounts {
		for j := 1; j < count-1; j++ {
			c0 := base
			c1 := base + j
			c2 := base + j + 1
			if ctx.LeftHanded {
				c1, c2 = c2, c1
			}
			copy(attr.Data[out*width:], lanes[c0*width:(c0+1)*width])
			copy(attr.Data[(out+1)*width:], lanes[c1*width:(c1+1)*width])
			copy(attr.Data[(out+2)*width:], lanes[c2*width:(c2+1)*width])
			out += 3
		}
		base += count
	}
	return nil
}

// elementForInterpolation maps an interpolation class to the renderer-side
// storage domain.
func elementForInterpolation(interpolation scenegraph.Interpolation) render.AttributeElement {
	switch interpolation {
	case scenegraph.InterpolationConstant:
		return render.ElementMesh
	case scenegraph.InterpolationUniform:
		return render.ElementFace
	case scenegraph.InterpolationVertex:
		return render.ElementVertex
	case scenegraph.InterpolationVarying, scenegraph.InterpolationFaceVarying:
		return render.ElementCorner
	}
	return render.ElementNone
}
