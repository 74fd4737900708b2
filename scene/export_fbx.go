package scene

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/fbx"
	"github.com/mogaika/fbx/builders/bfbx73"

	"github.com/mogaika/teardown_browser/utils"
	"github.com/mogaika/teardown_browser/utils/fbxbuilder"
)

// FBXHost accumulates the imported scene into a binary FBX 7.4 file.
// Voxel meshes become point geometries (one single-vertex polygon per
// voxel); lights and empties become null models since FBX carries no
// equivalent of the punctual light parameters we map.
type FBXHost struct {
	b         *fbxbuilder.FBXBuilder
	models    []*fbx.Node
	modelIds  []int64
	hasParent []bool
}

func NewFBXHost(filename string) *FBXHost {
	return &FBXHost{b: fbxbuilder.NewFBXBuilder(filename)}
}

func (f *FBXHost) newModel(name, class string) (Handle, int64) {
	modelId := f.b.GenerateId()
	model := bfbx73.Model(modelId, name+"\x00\x01Model", class).AddNodes(
		bfbx73.Version(232),
		bfbx73.Properties70(),
		bfbx73.Shading(true),
		bfbx73.Culling("CullingOff"),
	)
	f.b.AddObjects(model)
	f.models = append(f.models, model)
	f.modelIds = append(f.modelIds, modelId)
	f.hasParent = append(f.hasParent, false)
	return Handle(len(f.modelIds) - 1), modelId
}

func (f *FBXHost) CreateMesh(name string, mesh *Mesh) (Handle, error) {
	vertices := make([]float64, 0, len(mesh.Vertices)*3)
	indexes := make([]int32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		vertices = append(vertices, float64(v[0]), float64(v[1]), float64(v[2]))
		// Single-vertex polygons: the closing index is stored negated.
		indexes[i] = int32(^i)
	}

	geometryId := f.b.GenerateId()
	geometry := bfbx73.Geometry(geometryId, "\x00\x01Geometry", "Mesh").AddNodes(
		bfbx73.Properties70().AddNodes(
			bfbx73.P("Color", "ColorRGB", "Color", "", float64(1), float64(1), float64(1)),
		),
		bfbx73.GeometryVersion(124),
		bfbx73.Vertices(vertices),
		bfbx73.PolygonVertexIndex(indexes),
		bfbx73.Layer(0).AddNodes(
			bfbx73.Version(100),
		),
	)
	f.b.AddObjects(geometry)

	handle, modelId := f.newModel(name, "Mesh")
	f.b.AddConnections(bfbx73.C("OO", geometryId, modelId))
	return handle, nil
}

func (f *FBXHost) CreateLight(name string, kind LightKind, params LightParams) (Handle, error) {
	handle, _ := f.newModel(name, "Null")
	return handle, nil
}

func (f *FBXHost) CreateEmpty(name string) (Handle, error) {
	handle, _ := f.newModel(name, "Null")
	return handle, nil
}

func (f *FBXHost) SetTransform(h Handle, position mgl32.Vec3, rotation mgl32.Quat) error {
	euler := utils.RadiansToDegreeV3(utils.QuatToEuler(rotation))
	return f.setModelTransform(h, position, euler)
}

func (f *FBXHost) setModelTransform(h Handle, position, eulerDegrees mgl32.Vec3) error {
	f.models[h].GetNode("Properties70").AddNodes(
		bfbx73.P("Lcl Translation", "Lcl Translation", "", "A",
			float64(position[0]), float64(position[1]), float64(position[2])),
		bfbx73.P("Lcl Rotation", "Lcl Rotation", "", "A",
			float64(eulerDegrees[0]), float64(eulerDegrees[1]), float64(eulerDegrees[2])),
	)
	return nil
}

func (f *FBXHost) LinkParent(child, parent Handle) error {
	f.b.AddConnections(bfbx73.C("OO", f.modelIds[child], f.modelIds[parent]))
	f.hasParent[child] = true
	return nil
}

func (f *FBXHost) AddToCollection(h Handle) error { return nil }

// Save connects parentless models to the scene root and writes the
// binary file.
func (f *FBXHost) Save(w io.Writer) error {
	for h, modelId := range f.modelIds {
		if !f.hasParent[h] {
			f.b.AddConnections(bfbx73.C("OO", modelId, 0))
		}
	}
	return f.b.Write(w)
}
