package scene

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

const khrLightsPunctual = "KHR_lights_punctual"

// skinRadiusAttribute carries the per-vertex thickening radius.
// Prefixed with underscore as glTF requires of application-specific
// attributes.
const skinRadiusAttribute = "_SKIN_RADIUS"

// GLTFHost accumulates the imported scene into a glTF document. Voxel
// meshes become point-mode primitives, lights use KHR_lights_punctual.
type GLTFHost struct {
	doc       *gltf.Document
	lights    []interface{}
	hasParent []bool
}

func NewGLTFHost() *GLTFHost {
	return &GLTFHost{doc: gltf.NewDocument()}
}

func (g *GLTFHost) Doc() *gltf.Document { return g.doc }

func (g *GLTFHost) addNode(node *gltf.Node) Handle {
	g.doc.Nodes = append(g.doc.Nodes, node)
	g.hasParent = append(g.hasParent, false)
	return Handle(len(g.doc.Nodes) - 1)
}

func (g *GLTFHost) CreateMesh(name string, mesh *Mesh) (Handle, error) {
	positionAccessor := modeler.WritePosition(g.doc, mesh.Vertices)
	radiusAccessor := modeler.WriteTextureCoord(g.doc, mesh.Radii)

	g.doc.Meshes = append(g.doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{
			{
				Mode: gltf.PrimitivePoints,
				Attributes: map[string]uint32{
					"POSITION":          positionAccessor,
					skinRadiusAttribute: radiusAccessor,
				},
			},
		},
	})
	return g.addNode(&gltf.Node{
		Name: name,
		Mesh: gltf.Index(uint32(len(g.doc.Meshes) - 1)),
	}), nil
}

func (g *GLTFHost) CreateLight(name string, kind LightKind, params LightParams) (Handle, error) {
	light := map[string]interface{}{
		"name":      name,
		"intensity": params.Intensity,
	}
	if params.Color != nil {
		light["color"] = []float32{params.Color[0], params.Color[1], params.Color[2]}
	}
	switch kind {
	case LightSpot:
		light["type"] = "spot"
		light["spot"] = map[string]interface{}{
			"outerConeAngle": params.SpotAngle / 2,
			"innerConeAngle": params.SpotAngle / 2 * (1 - params.SpotBlend),
		}
	default:
		// The extension has no area light type; area degrades to point.
		light["type"] = "point"
	}
	g.lights = append(g.lights, light)

	return g.addNode(&gltf.Node{
		Name: name,
		Extensions: gltf.Extensions{
			khrLightsPunctual: map[string]interface{}{
				"light": len(g.lights) - 1,
			},
		},
	}), nil
}

func (g *GLTFHost) CreateEmpty(name string) (Handle, error) {
	return g.addNode(&gltf.Node{Name: name}), nil
}

func (g *GLTFHost) SetTransform(h Handle, position mgl32.Vec3, rotation mgl32.Quat) error {
	node := g.doc.Nodes[h]
	node.Translation = position
	node.Rotation = [4]float32{rotation.V[0], rotation.V[1], rotation.V[2], rotation.W}
	return nil
}

func (g *GLTFHost) LinkParent(child, parent Handle) error {
	g.doc.Nodes[parent].Children = append(g.doc.Nodes[parent].Children, uint32(child))
	g.hasParent[child] = true
	return nil
}

func (g *GLTFHost) AddToCollection(h Handle) error { return nil }

// Save finalizes the document and writes a binary .glb.
func (g *GLTFHost) Save(w io.Writer) error {
	if len(g.lights) != 0 {
		if g.doc.Extensions == nil {
			g.doc.Extensions = gltf.Extensions{}
		}
		g.doc.Extensions[khrLightsPunctual] = map[string]interface{}{
			"lights": g.lights,
		}
		g.doc.ExtensionsUsed = append(g.doc.ExtensionsUsed, khrLightsPunctual)
	}

	// Only parentless nodes enter the scene list; the rest are reached
	// through Children.
	g.doc.Scenes[0].Nodes = g.doc.Scenes[0].Nodes[:0]
	for iNode := range g.doc.Nodes {
		if !g.hasParent[iNode] {
			g.doc.Scenes[0].Nodes = append(g.doc.Scenes[0].Nodes, uint32(iNode))
		}
	}

	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(g.doc)
}
