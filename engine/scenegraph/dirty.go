package scenegraph

/**
 * @brief A change-notification bitset for one primitive. The host's change
 * tracker owns the representation; sync only tests and clears bits.
 */
type DirtyBits uint32

const (
	Clean DirtyBits = 0

	DirtyPoints DirtyBits = 1 << iota
	DirtyTopology
	DirtyTransform
	DirtyVisibility
	DirtyPrimvar
	DirtyNormals
	DirtyWidths
	DirtyMaterialID
	DirtySubdivTags
	DirtyPrimID
	DirtyDisplayStyle
	DirtyDoubleSided
	DirtyInstancer
)

// AllDirty is the initial mask a freshly inserted mesh primitive reports.
const AllDirty = DirtyPoints | DirtyTopology | DirtyTransform |
	DirtyVisibility | DirtyPrimvar | DirtyNormals | DirtyMaterialID |
	DirtySubdivTags | DirtyPrimID | DirtyDisplayStyle | DirtyDoubleSided

func (b DirtyBits) Has(mask DirtyBits) bool {
	return b&mask != 0
}

func IsTopologyDirty(bits DirtyBits) bool {
	return bits.Has(DirtyTopology)
}

func IsSubdivTagsDirty(bits DirtyBits) bool {
	return bits.Has(DirtySubdivTags)
}

func IsDisplayStyleDirty(bits DirtyBits) bool {
	return bits.Has(DirtyDisplayStyle)
}

// IsPrimvarDirty reports whether the named primvar changed. Points and
// normals carry dedicated bits; everything else shares DirtyPrimvar.
func IsPrimvarDirty(bits DirtyBits, name string) bool {
	switch name {
	case TokenPoints:
		return bits.Has(DirtyPoints)
	case TokenNormals:
		return bits.Has(DirtyNormals)
	case TokenWidths:
		return bits.Has(DirtyWidths)
	default:
		return bits.Has(DirtyPrimvar)
	}
}
