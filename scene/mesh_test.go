package scene

import (
	"testing"
)

func TestAssembleMesh(t *testing.T) {
	positions := [][3]int32{{0, 0, 0}, {1, 0, 0}, {0, 2, 3}}
	palette := []uint8{5, 5, 7}

	m := AssembleMesh(positions, palette, 0.1)
	if len(m.Vertices) != 3 {
		t.Fatalf("got %d vertices, want 3", len(m.Vertices))
	}
	wantVertices := [][3]float32{{0, 0, 0}, {0.1, 0, 0}, {0, 0.2, 0.3}}
	for i, want := range wantVertices {
		if m.Vertices[i] != want {
			t.Errorf("vertex %d = %v, want %v", i, m.Vertices[i], want)
		}
	}
	for i, r := range m.Radii {
		if r != DefaultSkinRadius {
			t.Errorf("radius %d = %v, want %v", i, r, DefaultSkinRadius)
		}
	}
	if m.Palette[2] != 7 {
		t.Errorf("palette[2] = %d, want 7", m.Palette[2])
	}
}

func TestAssembleMeshEmpty(t *testing.T) {
	m := AssembleMesh(nil, nil, 0.1)
	if len(m.Vertices) != 0 || len(m.Radii) != 0 {
		t.Errorf("empty input produced %d vertices", len(m.Vertices))
	}
}
