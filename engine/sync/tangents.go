package sync

import (
	"fmt"

	"github.com/hickb/hdcycles/engine/core"
	"github.com/hickb/hdcycles/engine/math"
	"github.com/hickb/hdcycles/engine/render"
)

// tangentMesh abstracts the face set tangents are generated over: plain
// triangles, or subdivision base faces when the mesh carries them.
type tangentMesh struct {
	mesh         *render.Mesh
	vertexNormal *render.Attribute
	texface      *render.Attribute
}

func (tm *tangentMesh) numFaces() int {
	if len(tm.mesh.SubdFaces) > 0 {
		return len(tm.mesh.SubdFaces)
	}
	return tm.mesh.NumTriangles()
}

func (tm *tangentMesh) numCorners(face int) int {
	if len(tm.mesh.SubdFaces) > 0 {
		return tm.mesh.SubdFaces[face].NumCorners
	}
	return 3
}

func (tm *tangentMesh) vertexIndex(face, corner int) int {
	if len(tm.mesh.SubdFaces) > 0 {
		f := tm.mesh.SubdFaces[face]
		return tm.mesh.SubdFaceCorners[f.StartCorner+corner]
	}
	return tm.mesh.Triangles[face].V[corner]
}

func (tm *tangentMesh) cornerIndex(face, corner int) int {
	if len(tm.mesh.SubdFaces) > 0 {
		return tm.mesh.SubdFaces[face].StartCorner + corner
	}
	return face*3 + corner
}

func (tm *tangentMesh) position(face, corner int) math.Vec3 {
	v := tm.mesh.Verts[tm.vertexIndex(face, corner)]
	return math.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

func (tm *tangentMesh) uv(face, corner int) math.Vec2 {
	if tm.texface == nil {
		return math.Vec2{}
	}
	ci := tm.cornerIndex(face, corner)
	if ci >= tm.texface.Elements() {
		return math.Vec2{}
	}
	return math.Vec2{
		X: tm.texface.Data[ci*tm.texface.Width],
		Y: tm.texface.Data[ci*tm.texface.Width+1],
	}
}

func (tm *tangentMesh) smooth(face int) bool {
	if len(tm.mesh.SubdFaces) > 0 {
		return tm.mesh.SubdFaces[face].Smooth
	}
	return tm.mesh.Triangles[face].Smooth
}

func (tm *tangentMesh) faceNormal(face int) math.Vec3 {
	var n math.Vec3
	if len(tm.mesh.SubdFaces) > 0 {
		// Newell's method over the polygon.
		k := tm.numCorners(face)
		for c := 0; c < k; c++ {
			p0 := tm.position(face, c)
			p1 := tm.position(face, (c+1)%k)
			n.X += (p0.Y - p1.Y) * (p0.Z + p1.Z)
			n.Y += (p0.Z - p1.Z) * (p0.X + p1.X)
			n.Z += (p0.X - p1.X) * (p0.Y + p1.Y)
		}
		return n.Normalized()
	}
	fn := tm.mesh.TriangleNormal(face)
	return math.Vec3{X: fn.X, Y: fn.Y, Z: fn.Z}
}

func (tm *tangentMesh) normal(face, corner int) math.Vec3 {
	if tm.smooth(face) && tm.vertexNormal != nil {
		vi := tm.vertexIndex(face, corner)
		if vi < tm.vertexNormal.Elements() {
			n := tm.vertexNormal.Float3At(vi)
			return math.Vec3{X: n.X, Y: n.Y, Z: n.Z}
		}
	}
	return tm.faceNormal(face)
}

/**
 * @brief Computes per-corner tangents (and optionally bitangent signs) for
 * one UV layer, by averaging per-triangle tangent contributions over the
 * face-vertex graph and re-orthogonalizing against the shading normal. The
 * results land in "<layer>.tangent" and "<layer>.tangent_sign" corner
 * attributes.
 */
func ComputeMikkTangents(layerName string, mesh *render.Mesh, needSign bool) error {
	if mesh.NumVerts() == 0 {
		return fmt.Errorf("cannot compute tangents on an empty mesh")
	}

	attributes := mesh.ActiveAttributes()

	vertexNormal := attributes.FindStandard(render.AttrStdVertexNormal)
	if vertexNormal == nil && len(mesh.SubdFaces) == 0 {
		mesh.AddFaceNormals()
		vertexNormal = mesh.AddVertexNormals()
	}

	texface := attributes.Find(layerName)
	if texface == nil {
		core.LogWarn("uv layer %q not found, tangents fall back to zero uvs", layerName)
	}

	tm := &tangentMesh{mesh: mesh, vertexNormal: vertexNormal, texface: texface}

	numFaces := tm.numFaces()
	totalCorners := 0
	for f := 0; f < numFaces; f++ {
		totalCorners += tm.numCorners(f)
	}

	tangentAttr := attributes.Add(layerName+".tangent", render.AttrStdUVTangent, render.ElementCorner, 3)
	tangentAttr.Resize(totalCorners)

	var signAttr *render.Attribute
	if needSign {
		signAttr = attributes.Add(layerName+".tangent_sign", render.AttrStdUVTangentSign, render.ElementCorner, 1)
		signAttr.Resize(totalCorners)
	}

	// Accumulate raw tangent and bitangent directions per vertex.
	accT := make([]math.Vec3, mesh.NumVerts())
	accB := make([]math.Vec3, mesh.NumVerts())

	for f := 0; f < numFaces; f++ {
		k := tm.numCorners(f)
		for j := 1; j < k-1; j++ {
			v0 := tm.vertexIndex(f, 0)
			v1 := tm.vertexIndex(f, j)
			v2 := tm.vertexIndex(f, j+1)

			p0 := tm.position(f, 0)
			e1 := tm.position(f, j).Sub(p0)
			e2 := tm.position(f, j+1).Sub(p0)

			uv0 := tm.uv(f, 0)
			du1 := tm.uv(f, j).X - uv0.X
			dv1 := tm.uv(f, j).Y - uv0.Y
			du2 := tm.uv(f, j+1).X - uv0.X
			dv2 := tm.uv(f, j+1).Y - uv0.Y

			r := du1*dv2 - du2*dv1
			if r == 0 {
				continue
			}
			fc := 1.0 / r

			t := math.NewVec3(
				fc*(dv2*e1.X-dv1*e2.X),
				fc*(dv2*e1.Y-dv1*e2.Y),
				fc*(dv2*e1.Z-dv1*e2.Z),
			)
			b := math.NewVec3(
				fc*(du1*e2.X-du2*e1.X),
				fc*(du1*e2.Y-du2*e1.Y),
				fc*(du1*e2.Z-du2*e1.Z),
			)

			for _, v := range [3]int{v0, v1, v2} {
				accT[v] = accT[v].Add(t)
				accB[v] = accB[v].Add(b)
			}
		}
	}

	for f := 0; f < numFaces; f++ {
		k := tm.numCorners(f)
		for c := 0; c < k; c++ {
			vi := tm.vertexIndex(f, c)
			ci := tm.cornerIndex(f, c)

			n := tm.normal(f, c)
			t := accT[vi]

			// Gram-Schmidt against the shading normal.
			tangent := t.Sub(n.MulScalar(n.Dot(t))).Normalized()
			if tangent.Length() == 0 {
				tangent = arbitraryPerpendicular(n)
			}

			tangentAttr.Data[ci*3+0] = tangent.X
			tangentAttr.Data[ci*3+1] = tangent.Y
			tangentAttr.Data[ci*3+2] = tangent.Z

			if signAttr != nil {
				sign := float32(1.0)
				if n.Cross(tangent).Dot(accB[vi]) < 0 {
					sign = -1.0
				}
				signAttr.Data[ci] = sign
			}
		}
	}

	return nil
}

func arbitraryPerpendicular(n math.Vec3) math.Vec3 {
	axis := math.NewVec3(1, 0, 0)
	if n.X > 0.9 || n.X < -0.9 {
		axis = math.NewVec3(0, 1, 0)
	}
	return n.Cross(axis).Normalized()
}
