package render

import (
	"github.com/google/uuid"
)

type SubdivisionType int

const (
	SubdivisionNone SubdivisionType = iota
	SubdivisionLinear
	SubdivisionCatmullClark
)

// Triangle is one refined triangle: three vertex indices plus the index of
// its shader in the geometry's used-shader list.
type Triangle struct {
	V           [3]int
	ShaderIndex int
	Smooth      bool
}

/**
 * @brief A base face of a subdivision surface. Corners index into
 * SubdFaceCorners on the owning mesh.
 */
type SubdFace struct {
	StartCorner int
	NumCorners  int
	Smooth      bool
}

/**
 * @brief Mesh geometry as the renderer consumes it: triangulated indices,
 * vertex positions, attribute sets and motion-blur bookkeeping. Subdivision
 * dicing itself happens inside the renderer; the mesh only carries the
 * scheme, dicing rate and level.
 */
type Mesh struct {
	UniqueID uuid.UUID
	Name     string

	Verts     []Float3
	Triangles []Triangle

	SubdFaces       []SubdFace
	SubdFaceCorners []int
	Subdivision     SubdivisionType
	DicingRate      float32
	MaxLevel        int

	UseMotionBlur bool
	MotionSteps   int

	Attributes     *AttributeSet
	SubdAttributes *AttributeSet

	UsedShaders []*Shader

	Bounds BoundBox
}

func NewMesh() *Mesh {
	m := &Mesh{
		UniqueID:       uuid.New(),
		Attributes:     NewAttributeSet(),
		SubdAttributes: NewAttributeSet(),
		Subdivision:    SubdivisionNone,
	}
	m.Clear()
	return m
}

// Clear drops all geometry data while keeping the handle itself alive.
func (m *Mesh) Clear() {
	m.Verts = nil
	m.Triangles = nil
	m.SubdFaces = nil
	m.SubdFaceCorners = nil
	m.Attributes.Clear()
	m.SubdAttributes.Clear()
	m.Bounds = BoundBox{}
}

func (m *Mesh) Reserve(numVerts, numTriangles int) {
	if cap(m.Verts) < numVerts {
		m.Verts = make([]Float3, 0, numVerts)
	}
	if cap(m.Triangles) < numTriangles {
		m.Triangles = make([]Triangle, 0, numTriangles)
	}
}

func (m *Mesh) AddVertex(v Float3) {
	m.Verts = append(m.Verts, v)
}

func (m *Mesh) AddTriangle(v0, v1, v2, shaderIndex int, smooth bool) {
	m.Triangles = append(m.Triangles, Triangle{
		V:           [3]int{v0, v1, v2},
		ShaderIndex: shaderIndex,
		Smooth:      smooth,
	})
}

func (m *Mesh) NumTriangles() int {
	return len(m.Triangles)
}

func (m *Mesh) NumVerts() int {
	return len(m.Verts)
}

// ActiveAttributes returns the attribute set refinement writes into: the
// subdivision set when base faces exist, the triangle set otherwise.
func (m *Mesh) ActiveAttributes() *AttributeSet {
	if len(m.SubdFaces) > 0 {
		return m.SubdAttributes
	}
	return m.Attributes
}

func (m *Mesh) ComputeBounds() {
	m.Bounds = BoundBox{}
	for _, v := range m.Verts {
		m.Bounds.Grow(v)
	}
}

// TriangleNormal returns the geometric normal of triangle i.
func (m *Mesh) TriangleNormal(i int) Float3 {
	t := m.Triangles[i]
	p0, p1, p2 := m.Verts[t.V[0]], m.Verts[t.V[1]], m.Verts[t.V[2]]
	e1 := Float3{p1.X - p0.X, p1.Y - p0.Y, p1.Z - p0.Z}
	e2 := Float3{p2.X - p0.X, p2.Y - p0.Y, p2.Z - p0.Z}
	n := Float3{
		e1.Y*e2.Z - e1.Z*e2.Y,
		e1.Z*e2.X - e1.X*e2.Z,
		e1.X*e2.Y - e1.Y*e2.X,
	}
	return normalize3(n)
}

// AddFaceNormals derives and stores per-face geometric normals.
func (m *Mesh) AddFaceNormals() *Attribute {
	attr := m.Attributes.Add("std_face_normal", AttrStdFaceNormal, ElementFace, 3)
	attr.Resize(len(m.Triangles))
	for i := range m.Triangles {
		n := m.TriangleNormal(i)
		attr.Data[i*3+0] = n.X
		attr.Data[i*3+1] = n.Y
		attr.Data[i*3+2] = n.Z
	}
	return attr
}

// AddVertexNormals derives per-vertex normals by averaging the face normals
// of every triangle sharing the vertex. Face normals must exist already.
func (m *Mesh) AddVertexNormals() *Attribute {
	faceN := m.Attributes.FindStandard(AttrStdFaceNormal)
	if faceN == nil {
		faceN = m.AddFaceNormals()
	}

	attr := m.Attributes.Add("std_vertex_normal", AttrStdVertexNormal, ElementVertex, 3)
	attr.Resize(len(m.Verts))
	for i, t := range m.Triangles {
		for _, v := range t.V {
			attr.Data[v*3+0] += faceN.Data[i*3+0]
			attr.Data[v*3+1] += faceN.Data[i*3+1]
			attr.Data[v*3+2] += faceN.Data[i*3+2]
		}
	}
	for v := 0; v < len(m.Verts); v++ {
		n := normalize3(Float3{attr.Data[v*3+0], attr.Data[v*3+1], attr.Data[v*3+2]})
		attr.Data[v*3+0] = n.X
		attr.Data[v*3+1] = n.Y
		attr.Data[v*3+2] = n.Z
	}
	return attr
}

// TagUpdate marks the geometry as modified so the renderer rebuilds its
// internal buffers.
func (m *Mesh) TagUpdate(scene *Scene, rebuild bool) {
	_ = rebuild
	scene.tagUpdate()
}

func normalize3(v Float3) Float3 {
	d := v.X*v.X + v.Y*v.Y + v.Z*v.Z
	if d == 0 {
		return Float3{}
	}
	inv := 1.0 / sqrt32(d)
	return Float3{v.X * inv, v.Y * inv, v.Z * inv}
}
