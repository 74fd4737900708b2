package tdbin

import (
	"github.com/pkg/errors"

	"github.com/mogaika/teardown_browser/binstream"
)

type MaterialKind uint8

const (
	MaterialNone        MaterialKind = 0
	MaterialGlass       MaterialKind = 1
	MaterialWood        MaterialKind = 2
	MaterialMasonry     MaterialKind = 3
	MaterialPlaster     MaterialKind = 4
	MaterialMetal       MaterialKind = 5
	MaterialHeavyMetal  MaterialKind = 6
	MaterialRock        MaterialKind = 7
	MaterialDirt        MaterialKind = 8
	MaterialFoliage     MaterialKind = 9
	MaterialPlastic     MaterialKind = 10
	MaterialHardMetal   MaterialKind = 11
	MaterialHardMasonry MaterialKind = 12
	MaterialIce         MaterialKind = 13
	MaterialUnphysical  MaterialKind = 14
)

func (mk MaterialKind) String() string {
	switch mk {
	case MaterialNone:
		return "none"
	case MaterialGlass:
		return "glass"
	case MaterialWood:
		return "wood"
	case MaterialMasonry:
		return "masonry"
	case MaterialPlaster:
		return "plaster"
	case MaterialMetal:
		return "metal"
	case MaterialHeavyMetal:
		return "heavymetal"
	case MaterialRock:
		return "rock"
	case MaterialDirt:
		return "dirt"
	case MaterialFoliage:
		return "foliage"
	case MaterialPlastic:
		return "plastic"
	case MaterialHardMetal:
		return "hardmetal"
	case MaterialHardMasonry:
		return "hardmasonry"
	case MaterialIce:
		return "ice"
	case MaterialUnphysical:
		return "unphysical"
	default:
		return "unknown"
	}
}

type Material struct {
	Kind         MaterialKind
	Rgba         Rgba
	Reflectivity float32
	Shinyness    float32
	Metalness    float32
	Emission     float32
	Replacable   bool
}

// Palette maps the 256 voxel palette indexes of one scene slot to
// materials. TintTables holds the precomputed spray/blood tint lookup.
type Palette struct {
	Materials  [256]Material
	TintTables [2 * 1024]byte
}

func decodeMaterial(r *binstream.Reader) (Material, error) {
	var m Material
	kind, err := r.ReadU8()
	if err != nil {
		return m, err
	}
	m.Kind = MaterialKind(kind)
	if m.Rgba, err = readRgba(r); err != nil {
		return m, err
	}
	for _, f := range []*float32{&m.Reflectivity, &m.Shinyness, &m.Metalness, &m.Emission} {
		if *f, err = r.ReadF32(); err != nil {
			return m, err
		}
	}
	replacable, err := r.ReadU8()
	if err != nil {
		return m, err
	}
	m.Replacable = replacable != 0
	return m, nil
}

func decodePalette(r *binstream.Reader) (*Palette, error) {
	p := &Palette{}
	for i := range p.Materials {
		m, err := decodeMaterial(r)
		if err != nil {
			return nil, errors.Wrapf(err, "material %d", i)
		}
		p.Materials[i] = m
	}
	tint, err := r.ReadBytes(len(p.TintTables))
	if err != nil {
		return nil, errors.Wrapf(err, "tint tables")
	}
	copy(p.TintTables[:], tint)
	// One reserved byte trails every palette record.
	if _, err := r.ReadU8(); err != nil {
		return nil, err
	}
	return p, nil
}
