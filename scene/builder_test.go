package scene

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/teardown_browser/tdbin"
)

func bodyEntity(handle uint32, desc string, children ...*tdbin.Entity) *tdbin.Entity {
	return &tdbin.Entity{
		Handle:   handle,
		Desc:     desc,
		Kind:     tdbin.KindBody,
		Payload:  &tdbin.Body{Transform: tdbin.Transform{Rot: [4]float32{0, 0, 0, 1}}},
		Children: children,
	}
}

func shapeEntity(handle uint32, size [3]int32, runs []byte) *tdbin.Entity {
	return &tdbin.Entity{
		Handle: handle,
		Kind:   tdbin.KindShape,
		Payload: &tdbin.Shape{
			Transform: tdbin.Transform{Rot: [4]float32{0, 0, 0, 1}},
			Voxels:    tdbin.Voxels{Size: size, PaletteIndexRuns: runs},
		},
	}
}

func lightEntity(handle uint32, light *tdbin.Light) *tdbin.Entity {
	return &tdbin.Entity{Handle: handle, Kind: tdbin.KindLight, Payload: light}
}

func buildOne(t *testing.T, entities ...*tdbin.Entity) (*Object, *Report, *CollectHost) {
	t.Helper()
	host := NewCollectHost()
	root, rep, err := Build(&tdbin.Scene{Level: "test", Entities: entities}, Options{Host: host})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return root, rep, host
}

func TestBuildParentLinkage(t *testing.T) {
	a := bodyEntity(1, "a", bodyEntity(2, "b"), bodyEntity(3, "c"))
	root, rep, host := buildOne(t, a)

	if len(root.Children) != 1 {
		t.Fatalf("root has %d children, want 1", len(root.Children))
	}
	objA := root.Children[0]
	if len(objA.Children) != 2 {
		t.Fatalf("a has %d children, want 2", len(objA.Children))
	}
	for _, child := range objA.Children {
		if child.Parent != objA {
			t.Errorf("%q parent = %v, want a", child.Name, child.Parent)
		}
		if host.Objects[child.Host].Parent != objA.Host {
			t.Errorf("%q host parent = %v, want %v",
				child.Name, host.Objects[child.Host].Parent, objA.Host)
		}
	}
	if rep.Processed != 3 {
		t.Errorf("Processed = %d, want 3", rep.Processed)
	}
}

func TestBuildNaming(t *testing.T) {
	root, _, _ := buildOne(t,
		bodyEntity(7, "crane"),
		bodyEntity(8, ""),
	)
	if got := root.Children[0].Name; got != "crane 7 Body" {
		t.Errorf("name = %q, want %q", got, "crane 7 Body")
	}
	if got := root.Children[1].Name; got != "8 Body" {
		t.Errorf("name = %q, want %q", got, "8 Body")
	}
}

func TestBuildRootBasisRotation(t *testing.T) {
	root, _, host := buildOne(t)
	want := mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{1, 0, 0})
	if root.Rotation != want {
		t.Errorf("root rotation = %v, want %v", root.Rotation, want)
	}
	if host.Objects[root.Host].Rotation != want {
		t.Errorf("host root rotation = %v, want %v", host.Objects[root.Host].Rotation, want)
	}
	if root.Name != "test" {
		t.Errorf("root name = %q, want level name", root.Name)
	}
}

func TestBuildRotationReorder(t *testing.T) {
	e := bodyEntity(1, "")
	e.Payload.(*tdbin.Body).Transform = tdbin.Transform{
		Pos: mgl32.Vec3{1, 2, 3},
		Rot: [4]float32{0.1, 0.2, 0.3, 0.9},
	}
	root, _, host := buildOne(t, e)

	obj := host.Objects[root.Children[0].Host]
	if obj.Position != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("position = %v", obj.Position)
	}
	want := mgl32.Quat{W: 0.9, V: mgl32.Vec3{0.1, 0.2, 0.3}}
	if obj.Rotation != want {
		t.Errorf("rotation = %v, want %v", obj.Rotation, want)
	}
}

func TestBuildShapeMesh(t *testing.T) {
	// One Body with one Shape child of a single voxel.
	root, rep, host := buildOne(t,
		bodyEntity(1, "", shapeEntity(2, [3]int32{1, 1, 1}, []byte{0, 5})),
	)

	objShape := root.Children[0].Children[0]
	mesh, ok := objShape.Payload.(MeshPayload)
	if !ok {
		t.Fatalf("payload is %T, want MeshPayload", objShape.Payload)
	}
	if len(mesh.Mesh.Vertices) != 1 {
		t.Fatalf("got %d vertices, want 1", len(mesh.Mesh.Vertices))
	}
	if mesh.Mesh.Vertices[0] != ([3]float32{0, 0, 0}) {
		t.Errorf("vertex = %v, want origin", mesh.Mesh.Vertices[0])
	}
	if host.Objects[objShape.Host].Mesh == nil {
		t.Error("host did not receive the mesh")
	}
	if rep.Meshes != 1 || rep.Voxels != 1 {
		t.Errorf("report meshes=%d voxels=%d, want 1/1", rep.Meshes, rep.Voxels)
	}
}

func TestBuildShapeThresholds(t *testing.T) {
	tests := []struct {
		name      string
		size      [3]int32
		runs      []byte
		maxVoxels int
		skip      bool
	}{
		{name: "zero voxels", size: [3]int32{1, 1, 1}, runs: []byte{0, 0}, skip: true},
		{name: "one voxel kept", size: [3]int32{1, 1, 1}, runs: []byte{0, 1}, skip: false},
		{name: "over max voxels", size: [3]int32{4, 1, 1}, runs: []byte{3, 1}, maxVoxels: 3, skip: true},
		{name: "at max voxels", size: [3]int32{3, 1, 1}, runs: []byte{2, 1}, maxVoxels: 3, skip: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			host := NewCollectHost()
			opts := Options{Host: host, MaxVoxels: test.maxVoxels}
			scene := &tdbin.Scene{Entities: []*tdbin.Entity{
				shapeEntity(1, test.size, test.runs),
			}}
			root, rep, err := Build(scene, opts)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			obj := root.Children[0]
			if test.skip {
				if _, ok := obj.Payload.(EmptyPayload); !ok {
					t.Errorf("payload is %T, want EmptyPayload", obj.Payload)
				}
				if !strings.HasSuffix(obj.Name, " weird mesh") {
					t.Errorf("name %q lacks weird mesh suffix", obj.Name)
				}
				if rep.Skipped != 1 {
					t.Errorf("Skipped = %d, want 1", rep.Skipped)
				}
			} else {
				if _, ok := obj.Payload.(MeshPayload); !ok {
					t.Errorf("payload is %T, want MeshPayload", obj.Payload)
				}
			}
		})
	}
}

func TestBuildMalformedShapeIsolated(t *testing.T) {
	// First shape overflows its volume, the sibling stays intact.
	root, rep, _ := buildOne(t,
		shapeEntity(1, [3]int32{1, 1, 1}, []byte{5, 1}),
		shapeEntity(2, [3]int32{1, 1, 1}, []byte{0, 1}),
	)
	if _, ok := root.Children[0].Payload.(EmptyPayload); !ok {
		t.Errorf("malformed shape payload is %T, want EmptyPayload", root.Children[0].Payload)
	}
	if _, ok := root.Children[1].Payload.(MeshPayload); !ok {
		t.Errorf("sibling payload is %T, want MeshPayload", root.Children[1].Payload)
	}
	if rep.Errored != 1 {
		t.Errorf("Errored = %d, want 1", rep.Errored)
	}
	if len(rep.Warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(rep.Warnings))
	}
}

func TestBuildLights(t *testing.T) {
	sphere := &tdbin.Light{
		Kind: tdbin.LightSphere,
		Rgba: tdbin.Rgba{R: 1, G: 0.5, B: 0.25, A: 1},
		Size: 0.3,
	}
	cone := &tdbin.Light{
		Kind:         tdbin.LightCone,
		Rgba:         tdbin.Rgba{R: 1, G: 1, B: 1, A: 1},
		ConeAngle:    1.2,
		ConePenumbra: 0.6,
	}
	area := &tdbin.Light{Kind: tdbin.LightArea, Rgba: tdbin.Rgba{R: 1, G: 1, B: 1, A: 1}}

	root, rep, _ := buildOne(t,
		lightEntity(1, sphere),
		lightEntity(2, cone),
		lightEntity(3, area),
	)
	if rep.Lights != 3 {
		t.Fatalf("Lights = %d, want 3", rep.Lights)
	}

	point := root.Children[0].Payload.(LightPayload)
	if point.Kind != LightPoint {
		t.Errorf("sphere mapped to %v, want point", point.Kind)
	}
	if point.Params.Color == nil || *point.Params.Color != [3]float32{1, 0.5, 0.25} {
		t.Errorf("point color = %v", point.Params.Color)
	}
	if point.Params.Intensity != 100 {
		t.Errorf("intensity = %v, want 100", point.Params.Intensity)
	}
	if point.Params.SoftSize != 0.3 {
		t.Errorf("soft size = %v, want light size", point.Params.SoftSize)
	}

	spot := root.Children[1].Payload.(LightPayload)
	if spot.Kind != LightSpot {
		t.Errorf("cone mapped to %v, want spot", spot.Kind)
	}
	if spot.Params.SpotAngle != 1.2 {
		t.Errorf("spot angle = %v, want 1.2", spot.Params.SpotAngle)
	}
	if spot.Params.SpotBlend != 0.5 {
		t.Errorf("spot blend = %v, want 0.5", spot.Params.SpotBlend)
	}

	areaLight := root.Children[2].Payload.(LightPayload)
	if areaLight.Kind != LightArea {
		t.Errorf("area mapped to %v", areaLight.Kind)
	}
	if areaLight.Params.Color != nil {
		t.Errorf("area light got a color: %v", *areaLight.Params.Color)
	}
}

func TestBuildDegenerateConeLight(t *testing.T) {
	cone := &tdbin.Light{Kind: tdbin.LightCone, ConeAngle: 0, ConePenumbra: 0.4}
	root, rep, _ := buildOne(t, lightEntity(1, cone))

	if _, ok := root.Children[0].Payload.(EmptyPayload); !ok {
		t.Errorf("payload is %T, want EmptyPayload", root.Children[0].Payload)
	}
	if rep.Errored != 1 || len(rep.Warnings) != 1 {
		t.Errorf("errored=%d warnings=%d, want 1/1", rep.Errored, len(rep.Warnings))
	}
	if rep.Lights != 0 {
		t.Errorf("Lights = %d, want 0", rep.Lights)
	}
}

func TestBuildOtherKindsBecomeEmpties(t *testing.T) {
	location := &tdbin.Entity{
		Handle:  4,
		Kind:    tdbin.KindLocation,
		Payload: &tdbin.Location{Transform: tdbin.Transform{Pos: mgl32.Vec3{5, 0, 0}, Rot: [4]float32{0, 0, 0, 1}}},
	}
	wheel := &tdbin.Entity{Handle: 5, Kind: tdbin.KindWheel, Payload: &tdbin.Other{}}

	root, _, host := buildOne(t, location, wheel)
	for _, obj := range root.Children {
		if _, ok := obj.Payload.(EmptyPayload); !ok {
			t.Errorf("%q payload is %T, want EmptyPayload", obj.Name, obj.Payload)
		}
	}
	// Location carries its transform, the opaque wheel does not.
	if host.Objects[root.Children[0].Host].Position != (mgl32.Vec3{5, 0, 0}) {
		t.Errorf("location position not applied")
	}
	if host.Objects[root.Children[1].Host].Position != (mgl32.Vec3{}) {
		t.Errorf("wheel should keep identity transform")
	}
}

func TestBuildCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Build(
		&tdbin.Scene{Entities: []*tdbin.Entity{bodyEntity(1, "")}},
		Options{Context: ctx},
	)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestBuildProgress(t *testing.T) {
	var calls []int
	_, _, err := Build(
		&tdbin.Scene{Entities: []*tdbin.Entity{bodyEntity(1, "", bodyEntity(2, ""))}},
		Options{Progress: func(processed, total int) {
			if total != 2 {
				t.Errorf("total = %d, want 2", total)
			}
			calls = append(calls, processed)
		}},
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Errorf("progress calls = %v, want [1 2]", calls)
	}
}
