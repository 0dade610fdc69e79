package render

/** @brief Well-known attribute roles the renderer looks up by tag. */
type AttributeStandard int

const (
	AttrStdNone AttributeStandard = iota
	AttrStdVertexNormal
	AttrStdFaceNormal
	AttrStdUV
	AttrStdUVTangent
	AttrStdUVTangentSign
	AttrStdVertexColor
	AttrStdGenerated
	AttrStdMotionVertexPosition
)

/** @brief The domain an attribute's elements apply to. */
type AttributeElement int

const (
	ElementNone AttributeElement = iota
	// ElementMesh holds a single value for the whole geometry.
	ElementMesh
	ElementVertex
	ElementFace
	ElementCorner
)

/**
 * @brief A flat typed attribute buffer attached to a geometry. Storage is
 * always float32 lanes; Width is the number of lanes per element.
 */
type Attribute struct {
	Name     string
	Standard AttributeStandard
	Element  AttributeElement
	Width    int
	Data     []float32
}

// Resize allocates storage for the given element count, discarding any
// previous contents.
func (a *Attribute) Resize(elements int) {
	a.Data = make([]float32, elements*a.Width)
}

// Elements reports how many whole elements the buffer currently holds.
func (a *Attribute) Elements() int {
	if a.Width == 0 {
		return 0
	}
	return len(a.Data) / a.Width
}

// Float3At reads element i as a Float3. Missing lanes read as zero.
func (a *Attribute) Float3At(i int) Float3 {
	base := i * a.Width
	var out Float3
	if a.Width > 0 {
		out.X = a.Data[base]
	}
	if a.Width > 1 {
		out.Y = a.Data[base+1]
	}
	if a.Width > 2 {
		out.Z = a.Data[base+2]
	}
	return out
}

/**
 * @brief The set of attributes applied to one geometry. Adding an attribute
 * under an existing name replaces it rather than duplicating it.
 */
type AttributeSet struct {
	Attributes []*Attribute
}

func NewAttributeSet() *AttributeSet {
	return &AttributeSet{}
}

func (as *AttributeSet) Add(name string, std AttributeStandard, element AttributeElement, width int) *Attribute {
	as.Remove(name)
	attr := &Attribute{
		Name:     name,
		Standard: std,
		Element:  element,
		Width:    width,
	}
	as.Attributes = append(as.Attributes, attr)
	return attr
}

func (as *AttributeSet) Find(name string) *Attribute {
	for _, attr := range as.Attributes {
		if attr.Name == name {
			return attr
		}
	}
	return nil
}

func (as *AttributeSet) FindStandard(std AttributeStandard) *Attribute {
	for _, attr := range as.Attributes {
		if attr.Standard == std {
			return attr
		}
	}
	return nil
}

func (as *AttributeSet) Remove(name string) bool {
	for i, attr := range as.Attributes {
		if attr.Name == name {
			as.Attributes = append(as.Attributes[:i], as.Attributes[i+1:]...)
			return true
		}
	}
	return false
}

func (as *AttributeSet) RemoveStandard(std AttributeStandard) bool {
	for i, attr := range as.Attributes {
		if attr.Standard == std {
			as.Attributes = append(as.Attributes[:i], as.Attributes[i+1:]...)
			return true
		}
	}
	return false
}

func (as *AttributeSet) Clear() {
	as.Attributes = nil
}
