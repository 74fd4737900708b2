package tdbin

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/teardown_browser/binstream"
)

type JointKind uint32

const (
	JointBall      JointKind = 1
	JointHinge     JointKind = 2
	JointPrismatic JointKind = 3
	JointRope      JointKind = 4
)

type Knot struct {
	From mgl32.Vec3
	To   mgl32.Vec3
}

type Rope struct {
	Rgba       Rgba
	Unk10      float32
	Strength   float32
	MaxStretch float32
	Unk1c      [2]float32
	Unk24      uint8
	Knots      []Knot
}

// Joint payloads have no transform of their own; they reference two
// shapes by handle instead.
type Joint struct {
	Kind           JointKind
	ShapeHandles   [2]uint32
	ShapePositions [2]mgl32.Vec3
	ShapeRotations [2]mgl32.Vec3
	Connected      bool
	Collisions     bool
	RotStrength    float32
	RotSpring      float32
	BallRot        [4]float32
	HingeMinMax    [2]float32
	Unk54          [2]float32
	Size           float32
	Rope           *Rope // only for JointRope
}

func decodeJoint(r *binstream.Reader) (*Joint, error) {
	j := &Joint{}
	kind, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	j.Kind = JointKind(kind)
	for i := range j.ShapeHandles {
		if j.ShapeHandles[i], err = r.ReadU32(); err != nil {
			return nil, err
		}
	}
	for i := range j.ShapePositions {
		if j.ShapePositions[i], err = readVec3(r); err != nil {
			return nil, err
		}
	}
	for i := range j.ShapeRotations {
		if j.ShapeRotations[i], err = readVec3(r); err != nil {
			return nil, err
		}
	}
	connected, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	j.Connected = connected != 0
	collisions, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	j.Collisions = collisions != 0
	if j.RotStrength, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if j.RotSpring, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if err = readF32Slice(r, j.BallRot[:]); err != nil {
		return nil, err
	}
	if err = readF32Slice(r, j.HingeMinMax[:]); err != nil {
		return nil, err
	}
	if err = readF32Slice(r, j.Unk54[:]); err != nil {
		return nil, err
	}
	if j.Size, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if j.Kind == JointRope {
		if j.Rope, err = decodeRope(r); err != nil {
			return nil, errors.Wrapf(err, "rope")
		}
	}
	return j, nil
}

func decodeRope(r *binstream.Reader) (*Rope, error) {
	rope := &Rope{}
	var err error
	if rope.Rgba, err = readRgba(r); err != nil {
		return nil, err
	}
	floats := []*float32{&rope.Unk10, &rope.Strength, &rope.MaxStretch}
	for _, f := range floats {
		if *f, err = r.ReadF32(); err != nil {
			return nil, err
		}
	}
	if err = readF32Slice(r, rope.Unk1c[:]); err != nil {
		return nil, err
	}
	if rope.Unk24, err = r.ReadU8(); err != nil {
		return nil, err
	}
	// Two points per knot.
	count, err := r.ReadCount(24)
	if err != nil {
		return nil, err
	}
	rope.Knots = make([]Knot, count)
	for i := range rope.Knots {
		if rope.Knots[i].From, err = readVec3(r); err != nil {
			return nil, err
		}
		if rope.Knots[i].To, err = readVec3(r); err != nil {
			return nil, err
		}
	}
	return rope, nil
}

func (j *Joint) EntityTransform() *Transform { return nil }
