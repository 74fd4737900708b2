package scene

// DefaultSkinRadius is the fixed two-component thickening radius
// assigned to every vertex for the host-side skin step. The core only
// emits the attribute; it never performs the thickening.
var DefaultSkinRadius = [2]float32{0.05, 0.05}

// Mesh is the point representation of a voxel volume: one vertex per
// accepted voxel, already scaled, plus per-vertex attributes.
type Mesh struct {
	Vertices [][3]float32
	Radii    [][2]float32
	Palette  []uint8
}

// AssembleMesh converts chunk-local voxel coordinates into mesh
// vertices. The uniform scale is applied once here so hosts receive
// geometry in output units.
func AssembleMesh(positions [][3]int32, palette []uint8, scale float32) *Mesh {
	m := &Mesh{
		Vertices: make([][3]float32, len(positions)),
		Radii:    make([][2]float32, len(positions)),
		Palette:  palette,
	}
	for i, p := range positions {
		m.Vertices[i] = [3]float32{
			float32(p[0]) * scale,
			float32(p[1]) * scale,
			float32(p[2]) * scale,
		}
		m.Radii[i] = DefaultSkinRadius
	}
	return m
}
