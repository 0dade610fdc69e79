package main

import (
	"github.com/hickb/hdcycles/engine/config"
	"github.com/hickb/hdcycles/engine/core"
	"github.com/hickb/hdcycles/engine/math"
	"github.com/hickb/hdcycles/engine/render"
	"github.com/hickb/hdcycles/engine/scenegraph"
	"github.com/hickb/hdcycles/engine/sync"
	"github.com/hickb/hdcycles/testbed"
)

const configPath = "hdcycles.toml"

func translation(x, y, z float64) math.Mat4 {
	m := math.NewMat4Identity()
	m.Data[12] = x
	m.Data[13] = y
	m.Data[14] = z
	return m
}

func buildQuad(stage *testbed.Stage) {
	quad := testbed.NewPrimData()
	quad.Topology = scenegraph.Topology{
		FaceVertexCounts:  []int{4},
		FaceVertexIndices: []int{0, 1, 2, 3},
	}
	quad.Points = [][3]float32{
		{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0},
	}
	quad.SetPrimvar(scenegraph.PrimvarDescriptor{
		Name:          "st",
		Interpolation: scenegraph.InterpolationFaceVarying,
		Role:          scenegraph.RoleTextureCoordinate,
	}, scenegraph.FromVec2([][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}))
	quad.SetPrimvar(scenegraph.PrimvarDescriptor{
		Name:          scenegraph.TokenDisplayColor,
		Interpolation: scenegraph.InterpolationVertex,
		Role:          scenegraph.RoleColor,
	}, scenegraph.FromVec3([][3]float32{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1},
	}))
	quad.MaterialID = "/materials/checker"
	quad.PrimID = 1
	stage.AddMaterial("/materials/checker", render.NewShader("checker"))
	stage.AddPrim("/world/quad", quad)
}

func buildInstancedTriangle(stage *testbed.Stage) {
	tri := testbed.NewPrimData()
	tri.Topology = scenegraph.Topology{
		FaceVertexCounts:  []int{3},
		FaceVertexIndices: []int{0, 1, 2},
	}
	tri.Points = [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	tri.PrimID = 2
	tri.InstancerID = "/world/scatter"

	instancer := &testbed.PointInstancer{
		Samples: scenegraph.InstanceTransformSamples{
			Times: []float32{0},
			Values: [][]math.Mat4{{
				translation(-3, 0, 0),
				translation(0, 0, 0),
				translation(3, 0, 0),
			}},
		},
	}
	stage.AddInstancer("/world/scatter", instancer)
	stage.AddPrim("/world/triangle", tri)
}

func syncRound(tracker *scenegraph.ChangeTracker, prims map[string]sync.Prim, stage *testbed.Stage, scene *render.Scene) {
	clock := core.NewClock()
	clock.Start()

	synced := 0
	for {
		id, bits, ok := tracker.Next()
		if !ok {
			break
		}
		prim, exists := prims[id]
		if !exists {
			continue
		}
		prim.Sync(stage, scene, &bits)
		synced++
	}

	clock.Update()
	core.MetricsUpdate(clock.Elapsed(), synced)
	core.LogInfo("sync round %d: %d prims in %.3fms", core.MetricsRounds(), synced, clock.Elapsed()*1000.0)
}

func main() {
	core.LogInfo("starting mesh sync demo")

	cfg, err := config.Load(configPath)
	if err != nil {
		core.LogWarn("using default render settings")
	}
	if err := core.MetricsInitialize(); err != nil {
		core.LogFatal(err.Error())
		return
	}

	watcher, err := config.Watch(configPath, func(c config.Config) {
		core.LogInfo("render settings changed, applying on the next scene rebuild")
	})
	if err != nil {
		core.LogWarn("config watching disabled: %s", err.Error())
	} else {
		defer watcher.Close()
	}

	tracker := scenegraph.NewChangeTracker()
	stage := testbed.NewStage(tracker)

	scene := render.NewScene()
	scene.RequestAttribute(render.AttrStdUVTangent)
	scene.RequestAttribute(render.AttrStdUVTangentSign)
	scene.RequestAttribute(render.AttrStdGenerated)

	buildQuad(stage)
	buildInstancedTriangle(stage)

	prims := map[string]sync.Prim{
		"/world/quad":     sync.NewMesh("/world/quad", cfg, scene),
		"/world/triangle": sync.NewMesh("/world/triangle", cfg, scene),
	}

	// Initial round pulls everything.
	syncRound(tracker, prims, stage, scene)

	// Deform the quad and resync; only the point path should run.
	quad := stage.Prim("/world/quad")
	for i := range quad.Points {
		quad.Points[i][2] += 0.5
	}
	stage.MarkDirty("/world/quad", scenegraph.DirtyPoints)
	syncRound(tracker, prims, stage, scene)

	// A clean round has nothing to do.
	syncRound(tracker, prims, stage, scene)

	core.LogInfo("scene holds %d geometries, %d objects, %d shaders",
		len(scene.Geometries), len(scene.Objects), len(scene.Shaders))
	core.LogInfo("render restarts requested: %d", scene.InterruptCount())

	for _, prim := range prims {
		prim.Finalize(scene)
	}
	core.LogInfo("synced %d prim updates over %d rounds", core.MetricsPrimsSynced(), core.MetricsRounds())
}
