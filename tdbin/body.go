package tdbin

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/teardown_browser/binstream"
)

type Body struct {
	Unk00           uint8
	Transform       Transform
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3
	Dynamic         bool
	Active          bool
	Unk3b           uint8
}

func decodeBody(r *binstream.Reader) (*Body, error) {
	b := &Body{}
	var err error
	if b.Unk00, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if b.Transform, err = readTransform(r); err != nil {
		return nil, errors.Wrapf(err, "transform")
	}
	if b.Velocity, err = readVec3(r); err != nil {
		return nil, errors.Wrapf(err, "velocity")
	}
	if b.AngularVelocity, err = readVec3(r); err != nil {
		return nil, errors.Wrapf(err, "angular velocity")
	}
	dynamic, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	b.Dynamic = dynamic != 0
	active, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	b.Active = active != 0
	if b.Unk3b, err = r.ReadU8(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Body) EntityTransform() *Transform { return &b.Transform }
