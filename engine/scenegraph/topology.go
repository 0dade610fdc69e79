package scenegraph

/** @brief Polygon winding order. */
type Orientation int

const (
	OrientationRightHanded Orientation = iota
	OrientationLeftHanded
)

/** @brief The subdivision scheme requested on a mesh. */
type SubdivisionScheme int

const (
	SchemeNone SubdivisionScheme = iota
	SchemeBilinear
	SchemeCatmullClark
)

/**
 * @brief Sharpness tags for subdivision surfaces. Evaluated by the
 * renderer's dicing machinery, carried through untouched here.
 */
type SubdivTags struct {
	CreaseIndices []int
	CreaseLengths []int
	CreaseWeights []float32
	CornerIndices []int
	CornerWeights []float32
}

// GeomSubset binds a run of faces to one material.
type GeomSubset struct {
	// Indices are face indices into the unrefined topology.
	Indices []int
	// MaterialID is the binding path; empty means unbound.
	MaterialID string
}

/**
 * @brief An immutable snapshot of a mesh primitive's topology. Replaced
 * wholesale when topology-affecting bits fire; a refiner built from one
 * snapshot never outlives it.
 */
type Topology struct {
	FaceVertexCounts  []int
	FaceVertexIndices []int
	Orientation       Orientation
	Scheme            SubdivisionScheme
	SubdivTags        SubdivTags
	HoleIndices       []int
	GeomSubsets       []GeomSubset
}

// NumFaces is the unrefined face count.
func (t *Topology) NumFaces() int {
	return len(t.FaceVertexCounts)
}

// NumCorners is the total face-corner count.
func (t *Topology) NumCorners() int {
	total := 0
	for _, c := range t.FaceVertexCounts {
		total += c
	}
	return total
}

// NumVertices derives the vertex count from the highest referenced index.
func (t *Topology) NumVertices() int {
	max := -1
	for _, idx := range t.FaceVertexIndices {
		if idx > max {
			max = idx
		}
	}
	return max + 1
}

func (t *Topology) IsHole(face int) bool {
	for _, h := range t.HoleIndices {
		if h == face {
			return true
		}
	}
	return false
}
