package tdbin

import (
	"github.com/pkg/errors"

	"github.com/mogaika/teardown_browser/binstream"
)

type LightKind uint8

const (
	LightSphere LightKind = 1
	LightCone   LightKind = 2
	LightArea   LightKind = 3
)

func (k LightKind) String() string {
	switch k {
	case LightSphere:
		return "sphere"
	case LightCone:
		return "cone"
	case LightArea:
		return "area"
	}
	return "unknown"
}

// Light keeps every field of the record, including the reserved block,
// so a future format bump can be diffed against real saves. Only a
// subset is mapped by the scene builder.
type Light struct {
	Unk00          uint8
	Kind           LightKind
	Transform      Transform
	Rgba           Rgba
	Scale          float32
	Reach          float32
	Size           float32
	Unshadowed     float32
	ConeAngle      float32 // radians
	ConePenumbra   float32 // radians
	FogIter        float32
	FogScale       float32
	AreaLightExtra float32
	Reserved       [17]uint8
	ExtraFloat     float32
	Sound          Sound
	Glare          float32
}

func decodeLight(r *binstream.Reader) (*Light, error) {
	l := &Light{}
	var err error
	if l.Unk00, err = r.ReadU8(); err != nil {
		return nil, err
	}
	kind, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	l.Kind = LightKind(kind)
	if l.Transform, err = readTransform(r); err != nil {
		return nil, errors.Wrapf(err, "transform")
	}
	if l.Rgba, err = readRgba(r); err != nil {
		return nil, errors.Wrapf(err, "rgba")
	}
	floats := []*float32{
		&l.Scale, &l.Reach, &l.Size, &l.Unshadowed,
		&l.ConeAngle, &l.ConePenumbra, &l.FogIter, &l.FogScale,
		&l.AreaLightExtra,
	}
	for _, f := range floats {
		if *f, err = r.ReadF32(); err != nil {
			return nil, err
		}
	}
	reserved, err := r.ReadBytes(len(l.Reserved))
	if err != nil {
		return nil, err
	}
	copy(l.Reserved[:], reserved)
	if l.ExtraFloat, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if l.Sound, err = readSound(r); err != nil {
		return nil, errors.Wrapf(err, "sound")
	}
	if l.Glare, err = r.ReadF32(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Light) EntityTransform() *Transform { return &l.Transform }
