package tdbin

import (
	"github.com/pkg/errors"

	"github.com/mogaika/teardown_browser/binstream"
)

type Location struct {
	Unk00     uint8
	Transform Transform
}

func decodeLocation(r *binstream.Reader) (*Location, error) {
	l := &Location{}
	var err error
	if l.Unk00, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if l.Transform, err = readTransform(r); err != nil {
		return nil, errors.Wrapf(err, "transform")
	}
	return l, nil
}

func (l *Location) EntityTransform() *Transform { return &l.Transform }

type Water struct {
	Unk00            uint8
	Transform        Transform
	Depth            float32
	Wave             float32
	Ripple           float32
	Motion           float32
	Foam             float32
	BoundaryVertices []BoundaryVertex
}

func decodeWater(r *binstream.Reader) (*Water, error) {
	w := &Water{}
	var err error
	if w.Unk00, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if w.Transform, err = readTransform(r); err != nil {
		return nil, errors.Wrapf(err, "transform")
	}
	floats := []*float32{&w.Depth, &w.Wave, &w.Ripple, &w.Motion, &w.Foam}
	for _, f := range floats {
		if *f, err = r.ReadF32(); err != nil {
			return nil, err
		}
	}
	if w.BoundaryVertices, err = readBoundaryVertices(r); err != nil {
		return nil, errors.Wrapf(err, "boundary")
	}
	return w, nil
}

func (w *Water) EntityTransform() *Transform { return &w.Transform }

type TriggerGeometryKind uint32

const (
	TriggerSphere  TriggerGeometryKind = 1
	TriggerBox     TriggerGeometryKind = 2
	TriggerPolygon TriggerGeometryKind = 3
)

type Trigger struct {
	Unk00            uint8
	Transform        Transform
	GeometryKind     TriggerGeometryKind
	SphereRadius     float32
	HalfCuboid       [3]float32
	PolygonExtrusion float32
	PolygonVertices  []BoundaryVertex
	SoundPath        string
	SoundRamp        float32
	SoundByte        uint8
	SoundVolume      float32
}

func decodeTrigger(r *binstream.Reader) (*Trigger, error) {
	t := &Trigger{}
	var err error
	if t.Unk00, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if t.Transform, err = readTransform(r); err != nil {
		return nil, errors.Wrapf(err, "transform")
	}
	kind, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	t.GeometryKind = TriggerGeometryKind(kind)
	if t.SphereRadius, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if err = readF32Slice(r, t.HalfCuboid[:]); err != nil {
		return nil, err
	}
	if t.PolygonExtrusion, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if t.PolygonVertices, err = readBoundaryVertices(r); err != nil {
		return nil, errors.Wrapf(err, "polygon")
	}
	if t.SoundPath, err = r.ReadString(); err != nil {
		return nil, errors.Wrapf(err, "sound path")
	}
	if t.SoundRamp, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if t.SoundByte, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if t.SoundVolume, err = r.ReadF32(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Trigger) EntityTransform() *Transform { return &t.Transform }

type Screen struct {
	Unk00                 uint8
	Transform             Transform
	Size                  [2]float32
	Bulge                 float32
	Resolution            [2]uint32
	Script                string
	Enabled               uint8
	Interactive           uint8
	Emissive              float32
	FxChromaticAberration float32
	FxNoise               float32
	FxGlitch              float32
	UnkEnd                [4]uint8
}

func decodeScreen(r *binstream.Reader) (*Screen, error) {
	s := &Screen{}
	var err error
	if s.Unk00, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if s.Transform, err = readTransform(r); err != nil {
		return nil, errors.Wrapf(err, "transform")
	}
	if err = readF32Slice(r, s.Size[:]); err != nil {
		return nil, err
	}
	if s.Bulge, err = r.ReadF32(); err != nil {
		return nil, err
	}
	for i := range s.Resolution {
		if s.Resolution[i], err = r.ReadU32(); err != nil {
			return nil, err
		}
	}
	if s.Script, err = r.ReadString(); err != nil {
		return nil, errors.Wrapf(err, "script")
	}
	if s.Enabled, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if s.Interactive, err = r.ReadU8(); err != nil {
		return nil, err
	}
	floats := []*float32{&s.Emissive, &s.FxChromaticAberration, &s.FxNoise, &s.FxGlitch}
	for _, f := range floats {
		if *f, err = r.ReadF32(); err != nil {
			return nil, err
		}
	}
	unk, err := r.ReadBytes(len(s.UnkEnd))
	if err != nil {
		return nil, err
	}
	copy(s.UnkEnd[:], unk)
	return s, nil
}

func (s *Screen) EntityTransform() *Transform { return &s.Transform }
