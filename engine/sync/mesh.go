package sync

import (
	"fmt"

	"github.com/hickb/hdcycles/engine/config"
	"github.com/hickb/hdcycles/engine/core"
	"github.com/hickb/hdcycles/engine/math"
	"github.com/hickb/hdcycles/engine/render"
	"github.com/hickb/hdcycles/engine/scenegraph"
)

/**
 * @brief Mirrors one host mesh primitive into the render scene. Each Sync
 * round pulls exactly the state the dirty bits name, rebuilding the renderer
 * mesh only when topology-shaped bits fire and patching in place otherwise.
 */
type MeshPrim struct {
	id  string
	cfg config.Config

	cyclesMesh   *render.Mesh
	cyclesObject *render.Object
	instances    []*render.Object

	refiner     *Refiner
	refineLevel int
	visible     bool

	hasVertexColors bool
}

// NewMesh creates the renderer-side mesh and object for one primitive and
// inserts them into the scene.
func NewMesh(id string, cfg config.Config, scene *render.Scene) *MeshPrim {
	m := &MeshPrim{
		id:      id,
		cfg:     cfg,
		visible: true,
	}

	m.cyclesMesh = render.NewMesh()
	m.cyclesMesh.Name = id

	m.cyclesObject = render.NewObject()
	m.cyclesObject.Name = id
	m.cyclesObject.Geometry = m.cyclesMesh

	scene.Lock()
	scene.AddGeometry(m.cyclesMesh)
	scene.AddObject(m.cyclesObject)
	scene.Unlock()

	return m
}

func (m *MeshPrim) InitialDirtyBits() scenegraph.DirtyBits {
	return scenegraph.AllDirty | scenegraph.DirtyInstancer
}

// Finalize tears the primitive down: instances first, then the prototype
// object, then the geometry they all reference.
func (m *MeshPrim) Finalize(scene *render.Scene) {
	scene.Lock()
	defer scene.Unlock()

	m.clearInstances(scene)
	scene.RemoveObject(m.cyclesObject)
	scene.RemoveGeometry(m.cyclesMesh)
	scene.Interrupt()
}

func (m *MeshPrim) Sync(delegate scenegraph.Delegate, scene *render.Scene, dirtyBits *scenegraph.DirtyBits) {
	scene.Lock()
	defer scene.Unlock()

	bits := *dirtyBits
	if bits == scenegraph.Clean {
		return
	}

	mesh := m.cyclesMesh
	updated := false
	newMesh := false

	if bits.Has(scenegraph.DirtyDoubleSided) {
		m.cyclesObject.DoubleSided = delegate.GetDoubleSided(m.id)
		updated = true
	}

	if scenegraph.IsTopologyDirty(bits) || scenegraph.IsDisplayStyleDirty(bits) ||
		scenegraph.IsSubdivTagsDirty(bits) {
		if scenegraph.IsDisplayStyleDirty(bits) {
			m.refineLevel = clamp(delegate.GetDisplayStyle(m.id).RefineLevel, 0, m.cfg.MaxSubdivision)
		}
		m.refiner = NewRefiner(delegate.GetMeshTopology(m.id), m.refineLevel, m.id)
		newMesh = true
	}
	if m.refiner == nil {
		m.refiner = NewRefiner(delegate.GetMeshTopology(m.id), m.refineLevel, m.id)
		newMesh = true
	}

	if newMesh || bits.Has(scenegraph.DirtyPoints) || bits.Has(scenegraph.DirtyPrimvar) ||
		bits.Has(scenegraph.DirtyNormals) {
		m.rebuild(delegate, scene, bits, newMesh)
		updated = true
	}

	if newMesh || bits.Has(scenegraph.DirtyPrimID) {
		// Zero is reserved for "no primitive" in the id pass.
		m.cyclesObject.PassID = delegate.GetPrimID(m.id) + 1
		updated = true
	}

	if newMesh || bits.Has(scenegraph.DirtyMaterialID) {
		m.bindMaterial(delegate, scene)
		updated = true
	}

	if newMesh || bits.Has(scenegraph.DirtyTransform) {
		SyncObjectTransform(m.cyclesObject, delegate.SampleTransform(m.id).Limit(m.cfg.MotionSteps), m.cfg.EnableMotionBlur)
		updated = true
	}

	if bits.Has(scenegraph.DirtyVisibility) {
		m.visible = delegate.GetVisible(m.id)
		updated = true
	}

	if newMesh || bits.Has(scenegraph.DirtyInstancer) {
		m.syncInstances(delegate, scene)
		updated = true
	}

	if updated {
		m.finish(scene)
		mesh.TagUpdate(scene, newMesh)
		m.cyclesObject.TagUpdate(scene)
		scene.Interrupt()
	}

	*dirtyBits = scenegraph.Clean
}

// rebuild repopulates geometry and attributes. With newMesh set the renderer
// mesh is cleared and rebuilt from the refined topology; otherwise only the
// primvars the bits name are patched.
func (m *MeshPrim) rebuild(delegate scenegraph.Delegate, scene *render.Scene, bits scenegraph.DirtyBits, newMesh bool) {
	mesh := m.cyclesMesh

	computed := m.gatherComputed(delegate)

	if newMesh {
		primary := scene.DefaultSurface
		if len(mesh.UsedShaders) > 0 {
			primary = mesh.UsedShaders[0]
		}
		mesh.Clear()
		mesh.UsedShaders = []*render.Shader{primary}
		m.hasVertexColors = false

		faceShaders := m.faceShaders(delegate, scene)
		m.populateFaces(faceShaders)
	}

	if newMesh || bits.Has(scenegraph.DirtyPoints) {
		points := computed[scenegraph.TokenPoints]
		if points.IsEmpty() {
			points = delegate.Get(m.id, scenegraph.TokenPoints)
		}
		if err := m.populateVertices(points); err != nil {
			core.LogWarn("%s: %s", m.id, err.Error())
		}
		m.populateMotion(delegate)
	}

	m.populatePrimvars(delegate, scene, bits, newMesh, computed)
}

// gatherComputed runs the host's ext computations and returns the resulting
// values by primvar name, across all interpolations.
func (m *MeshPrim) gatherComputed(delegate scenegraph.Delegate) map[string]scenegraph.Value {
	out := make(map[string]scenegraph.Value)
	for _, interp := range scenegraph.Interpolations {
		descs := delegate.GetExtComputationPrimvarDescriptors(m.id, interp)
		if len(descs) == 0 {
			continue
		}
		for name, value := range delegate.GetComputedPrimvarValues(m.id, descs) {
			out[name] = value
		}
	}
	return out
}

// faceShaders resolves material subsets to per-face shader indices on the
// unrefined topology. Index zero is the primitive-level material.
func (m *MeshPrim) faceShaders(delegate scenegraph.Delegate, scene *render.Scene) []int32 {
	topology := m.refiner.Topology()
	faces := make([]int32, topology.NumFaces())

	for _, subset := range topology.GeomSubsets {
		shader := delegate.GetMaterial(subset.MaterialID)
		if shader == nil {
			core.LogWarn("%s: subset material %q not found, using the default surface", m.id, subset.MaterialID)
			shader = scene.DefaultSurface
		}
		idx := m.shaderIndex(shader)
		for _, face := range subset.Indices {
			if face >= 0 && face < len(faces) {
				faces[face] = int32(idx)
			}
		}
	}

	return faces
}

func (m *MeshPrim) shaderIndex(shader *render.Shader) int {
	mesh := m.cyclesMesh
	for i, s := range mesh.UsedShaders {
		if s == shader {
			return i
		}
	}
	mesh.UsedShaders = append(mesh.UsedShaders, shader)
	return len(mesh.UsedShaders) - 1
}

// populateFaces writes the index buffers: triangulated indices normally, base
// faces when subdivision is active and the renderer dices the limit surface.
func (m *MeshPrim) populateFaces(faceShaders []int32) {
	mesh := m.cyclesMesh
	topology := m.refiner.Topology()
	leftHanded := topology.Orientation == scenegraph.OrientationLeftHanded

	if subdivision := m.subdivisionType(); subdivision != render.SubdivisionNone {
		mesh.Subdivision = subdivision
		mesh.DicingRate = m.cfg.SubdivisionDicingRate
		mesh.MaxLevel = m.refineLevel
		mesh.SubdFaceCorners = append([]int(nil), topology.FaceVertexIndices...)
		corner := 0
		for _, count := range topology.FaceVertexCounts {
			mesh.SubdFaces = append(mesh.SubdFaces, render.SubdFace{
				StartCorner: corner,
				NumCorners:  count,
				Smooth:      true,
			})
			corner += count
		}
		return
	}

	mesh.Subdivision = render.SubdivisionNone
	triangles := m.refiner.RefinedIndices()
	shaderIdx := m.refiner.RefineUniformInts(faceShaders)
	mesh.Reserve(m.refiner.NumVertices(), len(triangles))
	for i, t := range triangles {
		v0, v1, v2 := t[0], t[1], t[2]
		if leftHanded {
			v1, v2 = v2, v1
		}
		idx := 0
		if i < len(shaderIdx) {
			idx = int(shaderIdx[i])
		}
		mesh.AddTriangle(v0, v1, v2, idx, true)
	}
}

func (m *MeshPrim) subdivisionType() render.SubdivisionType {
	if !m.cfg.EnableSubdivision || m.refineLevel == 0 {
		return render.SubdivisionNone
	}
	switch m.refiner.Topology().Scheme {
	case scenegraph.SchemeCatmullClark:
		return render.SubdivisionCatmullClark
	case scenegraph.SchemeBilinear:
		return render.SubdivisionLinear
	}
	return render.SubdivisionNone
}

func (m *MeshPrim) populateVertices(points scenegraph.Value) error {
	data, ok := points.AsVec3f()
	if !ok {
		return fmt.Errorf("%w: points must be 3-component float", core.ErrUnsupportedType)
	}
	if _, err := m.refiner.RefineVertexData(points); err != nil {
		return fmt.Errorf("points: %w", err)
	}

	mesh := m.cyclesMesh
	mesh.Verts = make([]render.Float3, len(data))
	for i, p := range data {
		mesh.Verts[i] = render.Float3{X: p[0], Y: p[1], Z: p[2]}
	}
	return nil
}

// populateMotion derives deformation motion blur from sampled positions. The
// shutter-centre sample lands in the base vertex buffer; every other sample
// becomes one motion step.
func (m *MeshPrim) populateMotion(delegate scenegraph.Delegate) {
	mesh := m.cyclesMesh
	mesh.UseMotionBlur = false
	mesh.MotionSteps = 0
	mesh.ActiveAttributes().RemoveStandard(render.AttrStdMotionVertexPosition)

	if !m.cfg.EnableMotionBlur || !m.cfg.DeformMotionBlur {
		return
	}

	samples := delegate.SamplePrimvar(m.id, scenegraph.TokenPoints).Limit(m.cfg.MotionSteps)
	if samples.Count() <= 1 {
		return
	}

	numVerts := mesh.NumVerts()
	center := -1
	for i, t := range samples.Times {
		if t == 0 {
			center = i
			break
		}
	}
	// One implicit step for the shutter centre on top of the sampled ones.
	steps := samples.Count() + 1
	nonCentre := samples.Count()
	if center >= 0 {
		nonCentre--
	}

	attr := mesh.ActiveAttributes().Add("std_motion_vertex_position",
		render.AttrStdMotionVertexPosition, render.ElementVertex, 3)
	attr.Resize(nonCentre * numVerts)

	out := 0
	for i, pts := range samples.Values {
		if i == center {
			for v, p := range pts {
				if v < numVerts {
					mesh.Verts[v] = render.Float3{X: p[0], Y: p[1], Z: p[2]}
				}
			}
			continue
		}
		if len(pts) != numVerts {
			core.LogWarn("%s: motion sample %d has %d points, mesh has %d, dropping deformation blur",
				m.id, i, len(pts), numVerts)
			mesh.ActiveAttributes().RemoveStandard(render.AttrStdMotionVertexPosition)
			return
		}
		base := out * numVerts * 3
		for v, p := range pts {
			attr.Data[base+v*3+0] = p[0]
			attr.Data[base+v*3+1] = p[1]
			attr.Data[base+v*3+2] = p[2]
		}
		out++
	}

	mesh.UseMotionBlur = true
	mesh.MotionSteps = steps
}

// populatePrimvars walks every declared primvar and routes it to the handler
// its name or role selects. A failed primvar is skipped with a warning, never
// aborting the rest of the sync.
func (m *MeshPrim) populatePrimvars(delegate scenegraph.Delegate, scene *render.Scene, bits scenegraph.DirtyBits, newMesh bool, computed map[string]scenegraph.Value) {
	for _, interp := range scenegraph.Interpolations {
		descs := delegate.GetPrimvarDescriptors(m.id, interp)
		descs = append(descs, delegate.GetExtComputationPrimvarDescriptors(m.id, interp)...)
		for _, desc := range descs {
			if desc.Name == scenegraph.TokenPoints || desc.Name == scenegraph.TokenWidths {
				continue
			}
			if !newMesh && !scenegraph.IsPrimvarDirty(bits, desc.Name) {
				continue
			}

			value, ok := computed[desc.Name]
			if !ok {
				value = delegate.Get(m.id, desc.Name)
			}
			if value.IsEmpty() {
				continue
			}

			var err error
			switch {
			case desc.Interpolation == scenegraph.InterpolationConstant && isObjectParam(desc.Name):
				err = m.applyObjectParam(desc, value)
			case desc.Name == scenegraph.TokenNormals || desc.Role == scenegraph.RoleNormal:
				err = m.addNormals(desc, value)
			case desc.Name == scenegraph.TokenVelocities:
				err = m.addVelocities(desc, value)
			case desc.Role == scenegraph.RoleTextureCoordinate:
				err = m.addUVSet(desc, value, scene)
			case desc.Name == scenegraph.TokenDisplayColor || desc.Role == scenegraph.RoleColor:
				err = m.addColors(desc, value)
			default:
				err = m.addGenericAttribute(desc, value)
			}
			if err != nil {
				core.LogWarn("%s: skipping primvar %q: %s", m.id, desc.Name, err.Error())
			}
		}
	}
}

// addNormals consumes authored normals. Vertex and varying normals map to the
// renderer's vertex-normal attribute directly; anything the renderer cannot
// store in that domain falls back to derived normals.
func (m *MeshPrim) addNormals(desc scenegraph.PrimvarDescriptor, value scenegraph.Value) error {
	mesh := m.cyclesMesh
	attrs := mesh.ActiveAttributes()

	switch desc.Interpolation {
	case scenegraph.InterpolationVertex, scenegraph.InterpolationVarying:
		refined, err := m.refiner.RefineData(value, desc.Interpolation)
		if err != nil {
			return err
		}
		attr := attrs.Add("std_vertex_normal", render.AttrStdVertexNormal, render.ElementVertex, 3)
		if err := PopulateAttribute(desc.Name, scenegraph.InterpolationVertex, refined, attr, m.context()); err != nil {
			attrs.RemoveStandard(render.AttrStdVertexNormal)
			return err
		}
		return nil
	case scenegraph.InterpolationUniform:
		attr := attrs.Add("std_face_normal", render.AttrStdFaceNormal, render.ElementFace, 3)
		if err := PopulateAttribute(desc.Name, desc.Interpolation, value, attr, m.context()); err != nil {
			attrs.RemoveStandard(render.AttrStdFaceNormal)
			return err
		}
		return nil
	}

	// Face-varying and constant normals have no renderer-side domain; derive
	// smooth normals from the geometry instead.
	if len(mesh.SubdFaces) == 0 {
		mesh.AddFaceNormals()
		mesh.AddVertexNormals()
	}
	return nil
}

// addVelocities synthesizes deformation blur from a velocity field when no
// sampled positions provided one: one step before and one after the centre,
// displaced by half the scaled velocity.
func (m *MeshPrim) addVelocities(desc scenegraph.PrimvarDescriptor, value scenegraph.Value) error {
	mesh := m.cyclesMesh
	if mesh.UseMotionBlur || !m.cfg.EnableMotionBlur || !m.cfg.DeformMotionBlur {
		return nil
	}

	velocities, ok := value.AsVec3f()
	if !ok {
		return fmt.Errorf("%w: velocities must be 3-component float", core.ErrUnsupportedType)
	}
	numVerts := mesh.NumVerts()
	if len(velocities) != numVerts {
		return fmt.Errorf("%w: %d velocities for %d vertices", core.ErrRefineShortfall, len(velocities), numVerts)
	}

	attr := mesh.ActiveAttributes().Add("std_motion_vertex_position",
		render.AttrStdMotionVertexPosition, render.ElementVertex, 3)
	attr.Resize(2 * numVerts)

	half := 0.5 * m.cfg.VelocityScale
	for v, vel := range velocities {
		p := mesh.Verts[v]
		attr.Data[v*3+0] = p.X - vel[0]*half
		attr.Data[v*3+1] = p.Y - vel[1]*half
		attr.Data[v*3+2] = p.Z - vel[2]*half
		next := (numVerts + v) * 3
		attr.Data[next+0] = p.X + vel[0]*half
		attr.Data[next+1] = p.Y + vel[1]*half
		attr.Data[next+2] = p.Z + vel[2]*half
	}

	mesh.UseMotionBlur = true
	mesh.MotionSteps = 3
	return nil
}

// addUVSet stores a texture coordinate layer per corner, lifting vertex data
// to corners first, and generates tangents when a shader asked for them.
func (m *MeshPrim) addUVSet(desc scenegraph.PrimvarDescriptor, value scenegraph.Value, scene *render.Scene) error {
	mesh := m.cyclesMesh
	attrs := mesh.ActiveAttributes()

	std := render.AttrStdNone
	if attrs.FindStandard(render.AttrStdUV) == nil {
		std = render.AttrStdUV
	}
	attr := attrs.Add(desc.Name, std, render.ElementCorner, value.Width())

	corner := value
	interp := desc.Interpolation
	switch desc.Interpolation {
	case scenegraph.InterpolationVertex, scenegraph.InterpolationVarying:
		lifted, err := m.vertexToCorner(value)
		if err != nil {
			attrs.Remove(desc.Name)
			return err
		}
		corner = lifted
		interp = scenegraph.InterpolationFaceVarying
	case scenegraph.InterpolationFaceVarying:
	default:
		attrs.Remove(desc.Name)
		return fmt.Errorf("%w: uv interpolation %s", core.ErrUnsupportedType, desc.Interpolation)
	}

	if err := PopulateAttribute(desc.Name, interp, corner, attr, m.context()); err != nil {
		attrs.Remove(desc.Name)
		return err
	}

	if scene.NeedAttribute(render.AttrStdUVTangent) {
		needSign := scene.NeedAttribute(render.AttrStdUVTangentSign)
		if err := ComputeMikkTangents(desc.Name, mesh, needSign); err != nil {
			return err
		}
	}
	return nil
}

// vertexToCorner expands per-vertex data to the face-corner domain through
// the unrefined index buffer.
func (m *MeshPrim) vertexToCorner(value scenegraph.Value) (scenegraph.Value, error) {
	lanes, err := value.Flatten()
	if err != nil {
		return scenegraph.Value{}, err
	}
	width := value.Width()
	topology := m.refiner.Topology()
	if value.Len() < topology.NumVertices() {
		return scenegraph.Value{}, fmt.Errorf("%w: %d vertex elements, need %d",
			core.ErrRefineShortfall, value.Len(), topology.NumVertices())
	}

	out := make([]float32, 0, topology.NumCorners()*width)
	for _, idx := range topology.FaceVertexIndices {
		out = append(out, lanes[idx*width:(idx+1)*width]...)
	}
	return scenegraph.FromFlat(out, width), nil
}

// addColors consumes display colours. A single constant colour paints the
// object; array data becomes a vertex-colour attribute. Any authored display
// colour flips the default shader to its vertex-colour variant.
func (m *MeshPrim) addColors(desc scenegraph.PrimvarDescriptor, value scenegraph.Value) error {
	mesh := m.cyclesMesh
	attrs := mesh.ActiveAttributes()

	if desc.Interpolation == scenegraph.InterpolationConstant {
		lanes, err := value.Flatten()
		if err != nil {
			return err
		}
		if len(lanes) != value.Width() {
			return fmt.Errorf("%w: %q has %d elements", core.ErrConstantSize, desc.Name, value.Len())
		}
		var color render.Float3
		switch len(lanes) {
		case 1:
			f := math.Float1ToFloat4(lanes[0])
			color = render.Float3{X: f.X, Y: f.Y, Z: f.Z}
		case 2:
			f := math.Vec2ToFloat4(math.NewVec2(lanes[0], lanes[1]), 0, 1)
			color = render.Float3{X: f.X, Y: f.Y, Z: f.Z}
		case 3:
			color = math.Vec3ToFloat3(math.NewVec3(lanes[0], lanes[1], lanes[2]))
		default:
			color = math.Vec4ToFloat3(math.NewVec4(lanes[0], lanes[1], lanes[2], lanes[3]))
		}
		m.cyclesObject.Color = color
		m.hasVertexColors = true
		return nil
	}

	std := render.AttrStdNone
	if attrs.FindStandard(render.AttrStdVertexColor) == nil {
		std = render.AttrStdVertexColor
	}
	attr := attrs.Add(desc.Name, std, elementForInterpolation(desc.Interpolation), value.Width())
	if err := PopulateAttribute(desc.Name, desc.Interpolation, value, attr, m.context()); err != nil {
		attrs.Remove(desc.Name)
		return err
	}
	m.hasVertexColors = true
	return nil
}

func (m *MeshPrim) addGenericAttribute(desc scenegraph.PrimvarDescriptor, value scenegraph.Value) error {
	attrs := m.cyclesMesh.ActiveAttributes()
	refined, err := m.refiner.RefineData(value, desc.Interpolation)
	if err != nil {
		return err
	}
	attr := attrs.Add(desc.Name, render.AttrStdNone, elementForInterpolation(desc.Interpolation), value.Width())
	if err := PopulateAttribute(desc.Name, desc.Interpolation, refined, attr, m.context()); err != nil {
		attrs.Remove(desc.Name)
		return err
	}
	return nil
}

func (m *MeshPrim) context() MeshContext {
	ctx := contextForTopology(m.refiner.Topology())
	ctx.BaseFaces = len(m.cyclesMesh.SubdFaces) > 0
	return ctx
}

// isObjectParam reports whether a primvar carries per-object renderer state
// rather than surface data.
func isObjectParam(name string) bool {
	switch name {
	case scenegraph.TokenShadowCatcher, scenegraph.TokenUseHoldout:
		return true
	}
	return false
}

// applyObjectParam forwards an object-level render setting to the renderer
// object. The settings ride in as constant primvars.
func (m *MeshPrim) applyObjectParam(desc scenegraph.PrimvarDescriptor, value scenegraph.Value) error {
	lanes, err := value.Flatten()
	if err != nil {
		return err
	}
	if len(lanes) != value.Width() {
		return fmt.Errorf("%w: %q has %d elements", core.ErrConstantSize, desc.Name, value.Len())
	}
	on := lanes[0] != 0
	switch desc.Name {
	case scenegraph.TokenShadowCatcher:
		m.cyclesObject.IsShadowCatcher = on
	case scenegraph.TokenUseHoldout:
		m.cyclesObject.UseHoldout = on
	}
	return nil
}

// bindMaterial resolves the primitive-level material binding into used-shader
// slot zero, falling back to the scene defaults when unbound or unresolved.
func (m *MeshPrim) bindMaterial(delegate scenegraph.Delegate, scene *render.Scene) {
	mesh := m.cyclesMesh

	var shader *render.Shader
	if path := delegate.GetMaterialID(m.id); path != "" {
		shader = delegate.GetMaterial(path)
		if shader == nil {
			core.LogWarn("%s: material %q not found, using the default surface", m.id, path)
		}
	}
	if shader == nil {
		if m.hasVertexColors {
			shader = scene.DefaultVColSurface
		} else {
			shader = scene.DefaultSurface
		}
	}

	if len(mesh.UsedShaders) == 0 {
		mesh.UsedShaders = []*render.Shader{shader}
	} else {
		mesh.UsedShaders[0] = shader
	}
	shader.TagUpdate(scene)
}

// syncInstances rebuilds the instance objects from the bound point instancer.
// Old instances always come down before new ones go up; the prototype object
// is hidden whenever instances exist.
func (m *MeshPrim) syncInstances(delegate scenegraph.Delegate, scene *render.Scene) {
	m.clearInstances(scene)

	instancer := delegate.GetInstancer(m.id)
	if instancer == nil {
		return
	}

	samples := instancer.SampleInstanceTransforms(m.id)
	if samples.Count() == 0 || samples.NumInstances() == 0 {
		return
	}
	protoSamples := delegate.SampleTransform(m.id)

	for i := 0; i < samples.NumInstances(); i++ {
		ts := scenegraph.TransformSamples{Times: samples.Times}
		for s := 0; s < samples.Count(); s++ {
			proto := protoSamples.Resample(samples.Times[s])
			ts.Values = append(ts.Values, samples.Values[s][i].Mul(proto))
		}

		obj := render.NewObject()
		obj.Name = fmt.Sprintf("%s.instance_%03d", m.id, i)
		obj.Geometry = m.cyclesMesh
		obj.PassID = m.cyclesObject.PassID
		obj.Color = m.cyclesObject.Color
		obj.DoubleSided = m.cyclesObject.DoubleSided
		SyncObjectTransform(obj, ts, m.cfg.EnableMotionBlur)

		scene.AddObject(obj)
		m.instances = append(m.instances, obj)
	}
}

func (m *MeshPrim) clearInstances(scene *render.Scene) {
	for _, obj := range m.instances {
		scene.RemoveObject(obj)
	}
	m.instances = nil
}

// finish settles derived state after all stages ran: bounds, requested
// generated coordinates and the final visibility flags.
func (m *MeshPrim) finish(scene *render.Scene) {
	mesh := m.cyclesMesh
	mesh.ComputeBounds()

	if scene.NeedAttribute(render.AttrStdGenerated) {
		m.populateGenerated()
	}

	visibility := uint32(0)
	if m.visible && len(m.instances) == 0 {
		visibility = render.PathRayAllVisibility
	}
	m.cyclesObject.Visibility = visibility

	instanceVisibility := uint32(0)
	if m.visible {
		instanceVisibility = render.PathRayAllVisibility
	}
	for _, obj := range m.instances {
		obj.Visibility = instanceVisibility
	}
}

// populateGenerated writes undeformed texture coordinates derived from the
// object-space bounds, normalized so the bounding box maps to the unit cube.
func (m *MeshPrim) populateGenerated() {
	mesh := m.cyclesMesh
	if !mesh.Bounds.Valid() || mesh.NumVerts() == 0 {
		return
	}

	loc, size := meshTextureSpace(mesh.Bounds)
	attr := mesh.ActiveAttributes().Add("std_generated", render.AttrStdGenerated, render.ElementVertex, 3)
	attr.Resize(mesh.NumVerts())
	for i, v := range mesh.Verts {
		attr.Data[i*3+0] = v.X*size.X - loc.X
		attr.Data[i*3+1] = v.Y*size.Y - loc.Y
		attr.Data[i*3+2] = v.Z*size.Z - loc.Z
	}
}

func meshTextureSpace(b render.BoundBox) (loc, size render.Float3) {
	loc = render.Float3{
		X: (b.Max.X + b.Min.X) * 0.5,
		Y: (b.Max.Y + b.Min.Y) * 0.5,
		Z: (b.Max.Z + b.Min.Z) * 0.5,
	}
	size = render.Float3{
		X: (b.Max.X - b.Min.X) * 0.5,
		Y: (b.Max.Y - b.Min.Y) * 0.5,
		Z: (b.Max.Z - b.Min.Z) * 0.5,
	}
	if size.X != 0 {
		size.X = 0.5 / size.X
	}
	if size.Y != 0 {
		size.Y = 0.5 / size.Y
	}
	if size.Z != 0 {
		size.Z = 0.5 / size.Z
	}
	loc = render.Float3{
		X: loc.X*size.X - 0.5,
		Y: loc.Y*size.Y - 0.5,
		Z: loc.Z*size.Z - 0.5,
	}
	return loc, size
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
