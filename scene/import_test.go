package scene

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

// savebuf builds little-endian TDBIN test files.
type savebuf struct {
	bytes.Buffer
}

func (s *savebuf) u8(v uint8)  { s.WriteByte(v) }
func (s *savebuf) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	s.Write(b[:])
}
func (s *savebuf) f32(v float32) { s.u32(math.Float32bits(v)) }
func (s *savebuf) f32n(n int) {
	for i := 0; i < n; i++ {
		s.f32(0)
	}
}
func (s *savebuf) str(v string) {
	s.u32(uint32(len(v)))
	s.WriteString(v)
}

func (s *savebuf) header(level string) {
	s.WriteString("TDBIN")
	s.u8(0)
	s.u8(7)
	s.u8(1)
	s.str(level)
	s.Write(make([]byte, 4))
	s.f32n(3)  // shadow volume
	s.f32n(7)  // spawnpoint
	s.u32(0)   // player int block
	s.u32(0)
	s.u32(0)
	s.f32n(22) // player floats, transform, yaw/pitch, velocity, health, tail
	s.str("")  // skybox texture
	s.f32n(20) // skybox colors and sun
	s.u8(0)
	s.f32n(6)  // constant + ambient
	s.f32n(15) // exposure, fog, water
	s.u8(0)    // nightlight
	s.str("")  // ambience
	s.f32n(3)  // ambience volume, slippery, lights fog scale
	s.f32n(8)
	s.u8(0)
	s.u32(0) // boundary
	s.u32(0) // fires
	s.u32(0) // palettes
	s.u32(0) // registry
}

func (s *savebuf) bodyEntity(handle uint32, children uint32) {
	s.u32(handle)
	s.u8(0)  // tags
	s.str("")
	s.u8(1)  // Body
	s.u8(0)
	s.f32(0)
	s.f32(0)
	s.f32(0)
	s.f32(0)
	s.f32(0)
	s.f32(0)
	s.f32(1) // identity rotation
	s.f32n(6)
	s.u8(0)
	s.u8(0)
	s.u8(0)
	s.u32(children)
}

func (s *savebuf) shapeEntity(handle uint32, size [3]uint32, runs []byte) {
	s.u32(handle)
	s.u8(0)
	s.str("")
	s.u8(2) // Shape
	s.u8(0)
	s.f32n(3)
	s.f32(0)
	s.f32(0)
	s.f32(0)
	s.f32(1)               // rotation
	s.Write(make([]byte, 4)) // unknown block
	s.f32(1)               // density
	s.f32(1)               // strength
	s.u32(0)               // texture tile
	s.f32n(3)              // starting world position
	s.f32(0)               // texture weight
	s.f32(0)
	s.u8(0)
	s.u8(0)
	for _, dim := range size {
		s.u32(dim)
	}
	if size[0]*size[1]*size[2] > 0 {
		s.u32(uint32(len(runs)))
		s.Write(runs)
	}
	s.u32(0)   // palette index
	s.f32(0.1) // voxel scaling
	voxels := 0
	for i := 0; i+1 < len(runs); i += 2 {
		if runs[i+1] != 0 {
			voxels += int(runs[i]) + 1
		}
	}
	s.u32(uint32(voxels))
	s.Write(make([]byte, voxels)) // materials
	s.u32(0)
	s.u32(0)
	s.u8(0)
	s.u32(0) // children
}

// One Body with one single-voxel Shape child decodes to one mesh with
// one vertex at the origin.
func TestImportEndToEnd(t *testing.T) {
	var save savebuf
	save.header("end-to-end")
	save.bodyEntity(1, 1)
	save.shapeEntity(2, [3]uint32{1, 1, 1}, []byte{0, 5})

	host := NewCollectHost()
	root, rep, err := Import(save.Bytes(), Options{Host: host})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if root.Name != "end-to-end" {
		t.Errorf("root name = %q", root.Name)
	}
	if rep.Processed != 2 || rep.Meshes != 1 {
		t.Errorf("report processed=%d meshes=%d, want 2/1", rep.Processed, rep.Meshes)
	}

	objShape := root.Children[0].Children[0]
	mesh, ok := objShape.Payload.(MeshPayload)
	if !ok {
		t.Fatalf("payload is %T, want MeshPayload", objShape.Payload)
	}
	if len(mesh.Mesh.Vertices) != 1 || mesh.Mesh.Vertices[0] != ([3]float32{0, 0, 0}) {
		t.Errorf("mesh vertices = %v, want one origin vertex", mesh.Mesh.Vertices)
	}
	if mesh.Mesh.Palette[0] != 5 {
		t.Errorf("palette = %v, want [5]", mesh.Mesh.Palette)
	}
}

func TestImportTruncated(t *testing.T) {
	var save savebuf
	save.header("cut")
	save.bodyEntity(1, 0)
	full := save.Bytes()

	if _, _, err := Import(full[:len(full)-2], Options{}); err == nil {
		t.Error("expected truncation error")
	}
}
