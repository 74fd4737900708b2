package tdbin

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/teardown_browser/binstream"
)

type VehicleProperties struct {
	MaxSpeed     float32 // m/s
	Unk04        float32
	Spring       float32
	Damping      float32
	Acceleration float32
	Strength     float32
	Friction     float32
	Unk1c        float32
	Unk20        uint8
	Antispin     float32
	Steerassist  float32
	Unk29        float32
	Antiroll     float32
	SoundName    string
	SoundPitch   float32
}

type Exhaust struct {
	Transform Transform
	Unk1c     float32
}

type Vital struct {
	BodyHandle uint32
	Unk04      float32
	Pos        mgl32.Vec3
	ShapeIndex uint32
}

type Vehicle struct {
	Unk00           uint8
	BodyHandle      uint32
	Transform       Transform
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3
	Unk21           float32
	WheelHandles    []uint32
	Properties      VehicleProperties
	Unk3f           [3]float32
	PlayerPos       mgl32.Vec3
	Unk57           [6]float32
	Difflock        float32
	Unk73           float32
	Unk77           uint32
	Unk7b           uint8
	Unk7c           float32
	Refs            []uint32
	Exhausts        []Exhaust
	Vitals          []Vital
	ArmRot          *float32
}

func decodeVehicle(r *binstream.Reader) (*Vehicle, error) {
	v := &Vehicle{}
	var err error
	if v.Unk00, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if v.BodyHandle, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if v.Transform, err = readTransform(r); err != nil {
		return nil, errors.Wrapf(err, "transform")
	}
	if v.Velocity, err = readVec3(r); err != nil {
		return nil, err
	}
	if v.AngularVelocity, err = readVec3(r); err != nil {
		return nil, err
	}
	if v.Unk21, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if v.WheelHandles, err = readU32Slice(r); err != nil {
		return nil, errors.Wrapf(err, "wheel handles")
	}
	if err = decodeVehicleProperties(r, &v.Properties); err != nil {
		return nil, errors.Wrapf(err, "properties")
	}
	if err = readF32Slice(r, v.Unk3f[:]); err != nil {
		return nil, err
	}
	if v.PlayerPos, err = readVec3(r); err != nil {
		return nil, err
	}
	if err = readF32Slice(r, v.Unk57[:]); err != nil {
		return nil, err
	}
	if v.Difflock, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if v.Unk73, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if v.Unk77, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if v.Unk7b, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if v.Unk7c, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if v.Refs, err = readU32Slice(r); err != nil {
		return nil, errors.Wrapf(err, "refs")
	}
	// Transform plus one float per exhaust.
	count, err := r.ReadCount(32)
	if err != nil {
		return nil, errors.Wrapf(err, "exhaust count")
	}
	v.Exhausts = make([]Exhaust, count)
	for i := range v.Exhausts {
		if v.Exhausts[i].Transform, err = readTransform(r); err != nil {
			return nil, errors.Wrapf(err, "exhaust %d", i)
		}
		if v.Exhausts[i].Unk1c, err = r.ReadF32(); err != nil {
			return nil, err
		}
	}
	// Body handle, one float, position and shape index per vital.
	count, err = r.ReadCount(24)
	if err != nil {
		return nil, errors.Wrapf(err, "vital count")
	}
	v.Vitals = make([]Vital, count)
	for i := range v.Vitals {
		vital := &v.Vitals[i]
		if vital.BodyHandle, err = r.ReadU32(); err != nil {
			return nil, err
		}
		if vital.Unk04, err = r.ReadF32(); err != nil {
			return nil, err
		}
		if vital.Pos, err = readVec3(r); err != nil {
			return nil, err
		}
		if vital.ShapeIndex, err = r.ReadU32(); err != nil {
			return nil, err
		}
	}
	// Some saves append one more float here. Whether it is present can
	// only be guessed: a small value read as u32 would be the length
	// prefix of the next record instead.
	pos := r.Pos()
	if guess, err := r.ReadU32(); err == nil {
		if guess > 0 && guess < 16 {
			if err := r.Seek(pos); err != nil {
				return nil, err
			}
		} else {
			armRot := math.Float32frombits(guess)
			v.ArmRot = &armRot
		}
	} else if err := r.Seek(pos); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeVehicleProperties(r *binstream.Reader, p *VehicleProperties) error {
	var err error
	floats := []*float32{
		&p.MaxSpeed, &p.Unk04, &p.Spring, &p.Damping,
		&p.Acceleration, &p.Strength, &p.Friction, &p.Unk1c,
	}
	for _, f := range floats {
		if *f, err = r.ReadF32(); err != nil {
			return err
		}
	}
	if p.Unk20, err = r.ReadU8(); err != nil {
		return err
	}
	floats = []*float32{&p.Antispin, &p.Steerassist, &p.Unk29, &p.Antiroll}
	for _, f := range floats {
		if *f, err = r.ReadF32(); err != nil {
			return err
		}
	}
	if p.SoundName, err = r.ReadString(); err != nil {
		return errors.Wrapf(err, "sound name")
	}
	if p.SoundPitch, err = r.ReadF32(); err != nil {
		return err
	}
	return nil
}

func readU32Slice(r *binstream.Reader) ([]uint32, error) {
	count, err := r.ReadCount(4)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	for i := range out {
		if out[i], err = r.ReadU32(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (v *Vehicle) EntityTransform() *Transform { return &v.Transform }
