package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/teardown_browser/tdbin"
)

// ErrDegenerateLightAngle marks a cone light whose angle is zero. The
// spot blend would divide by it, so the light degrades to an empty
// placeholder instead.
var ErrDegenerateLightAngle = errors.New("cone light with zero cone angle")

type buildFrame struct {
	entity *tdbin.Entity
	parent *Object
}

type builder struct {
	opts  Options
	rep   *Report
	total int
}

// Build rebuilds the scene graph of an already decoded save. The walk
// is depth-first in entity order, with an explicit frame stack so tree
// depth stays off the call stack.
func Build(s *tdbin.Scene, opts Options) (*Object, *Report, error) {
	opts.fillDefaults()
	b := &builder{
		opts:  opts,
		rep:   &Report{},
		total: s.CountEntities(),
	}

	rootName := s.Level
	if rootName == "" {
		rootName = "scene"
	}
	root, err := b.createEmpty(rootName)
	if err != nil {
		return nil, b.rep, err
	}
	// Single basis correction on the root: the save is y-up, hosts
	// expect z-up.
	root.Rotation = mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{1, 0, 0})
	if err := opts.Host.SetTransform(root.Host, root.Position, root.Rotation); err != nil {
		return nil, b.rep, err
	}

	stack := make([]buildFrame, 0, len(s.Entities))
	for i := len(s.Entities) - 1; i >= 0; i-- {
		stack = append(stack, buildFrame{entity: s.Entities[i], parent: root})
	}
	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := opts.Context.Err(); err != nil {
			return nil, b.rep, errors.Wrapf(err, "after %d of %d entities", b.rep.Processed, b.total)
		}

		obj, err := b.buildObject(frame.entity)
		if err != nil {
			return nil, b.rep, errors.Wrapf(err, "entity %d", frame.entity.Handle)
		}
		b.link(obj, frame.parent)
		if err := b.place(obj, frame.entity); err != nil {
			return nil, b.rep, errors.Wrapf(err, "entity %d", frame.entity.Handle)
		}

		b.rep.Processed++
		if opts.Progress != nil {
			opts.Progress(b.rep.Processed, b.total)
		}

		for i := len(frame.entity.Children) - 1; i >= 0; i-- {
			stack = append(stack, buildFrame{entity: frame.entity.Children[i], parent: obj})
		}
	}
	return root, b.rep, nil
}

func entityName(e *tdbin.Entity) string {
	name := fmt.Sprintf("%d %s", e.Handle, e.Kind)
	if e.Desc != "" {
		name = e.Desc + " " + name
	}
	return name
}

// buildObject maps one entity to its scene object. Entity-local
// failures degrade to an empty placeholder here; only Host errors
// propagate.
func (b *builder) buildObject(e *tdbin.Entity) (*Object, error) {
	name := entityName(e)
	switch payload := e.Payload.(type) {
	case *tdbin.Shape:
		return b.buildShape(name, payload)
	case *tdbin.Light:
		return b.buildLight(name, payload)
	}
	// Bodies and every remaining kind carry no renderable content.
	return b.createEmpty(name)
}

func (b *builder) buildShape(name string, shape *tdbin.Shape) (*Object, error) {
	positions, palette, err := shape.Voxels.Decode()
	if err != nil {
		b.rep.warnf("%s: %v", name, err)
		b.rep.Errored++
		return b.createEmpty(name)
	}
	count := len(positions)
	if count == 0 || count > maxMeshVoxels || count > b.opts.MaxVoxels {
		b.rep.Skipped++
		return b.createEmpty(name + " weird mesh")
	}
	b.rep.Voxels += count

	mesh := AssembleMesh(positions, palette, b.opts.VoxelScale)
	obj := &Object{Name: name, Payload: MeshPayload{Mesh: mesh}, Rotation: mgl32.QuatIdent()}
	if obj.Host, err = b.opts.Host.CreateMesh(name, mesh); err != nil {
		return nil, err
	}
	b.rep.Meshes++
	return obj, nil
}

func (b *builder) buildLight(name string, light *tdbin.Light) (*Object, error) {
	kind, params, err := mapLight(light)
	if err != nil {
		b.rep.warnf("%s: %v", name, err)
		b.rep.Errored++
		return b.createEmpty(name)
	}
	obj := &Object{
		Name:     name,
		Payload:  LightPayload{Kind: kind, Params: params},
		Rotation: mgl32.QuatIdent(),
	}
	if obj.Host, err = b.opts.Host.CreateLight(name, kind, params); err != nil {
		return nil, err
	}
	b.rep.Lights++
	return obj, nil
}

// mapLight translates a decoded light record into host parameters.
// Area lights intentionally receive no color, preserving observed
// output of the format's own tooling.
func mapLight(light *tdbin.Light) (LightKind, LightParams, error) {
	params := LightParams{
		Intensity: lightIntensity,
		SoftSize:  light.Size,
	}
	color := [3]float32{light.Rgba.R, light.Rgba.G, light.Rgba.B}
	switch light.Kind {
	case tdbin.LightSphere:
		params.Color = &color
		return LightPoint, params, nil
	case tdbin.LightCone:
		if light.ConeAngle == 0 {
			return 0, params, errors.Wrapf(ErrDegenerateLightAngle, "penumbra %v", light.ConePenumbra)
		}
		params.Color = &color
		params.SpotAngle = light.ConeAngle
		params.SpotBlend = light.ConePenumbra / light.ConeAngle
		return LightSpot, params, nil
	case tdbin.LightArea:
		return LightArea, params, nil
	}
	return 0, params, errors.Errorf("unknown light kind %d", light.Kind)
}

func (b *builder) createEmpty(name string) (*Object, error) {
	obj := &Object{Name: name, Payload: EmptyPayload{}, Rotation: mgl32.QuatIdent()}
	var err error
	if obj.Host, err = b.opts.Host.CreateEmpty(name); err != nil {
		return nil, err
	}
	b.rep.Empties++
	return obj, nil
}

// link attaches obj under parent. ParentLargeRootBodies is accepted
// but inactive: parenting is always applied.
func (b *builder) link(obj *Object, parent *Object) {
	obj.Parent = parent
	parent.Children = append(parent.Children, obj)
}

// place pushes the entity transform and the parent link to the host.
func (b *builder) place(obj *Object, e *tdbin.Entity) error {
	if tr := e.Transform(); tr != nil {
		obj.Position = tr.Pos
		obj.Rotation = tr.Quat()
		if err := b.opts.Host.SetTransform(obj.Host, obj.Position, obj.Rotation); err != nil {
			return err
		}
	}
	if obj.Parent != nil {
		if err := b.opts.Host.LinkParent(obj.Host, obj.Parent.Host); err != nil {
			return err
		}
	}
	return b.opts.Host.AddToCollection(obj.Host)
}
