package tdbin

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/teardown_browser/binstream"
)

type Sun struct {
	TintBrightness  mgl32.Vec3
	Tint            Rgba
	Direction       mgl32.Vec3
	Brightness      float32
	Spread          float32
	MaxShadowLength float32
	FogScale        float32
	Glare           float32
}

type Skybox struct {
	Texture         string
	ColorIntensity  Rgba
	Rotation        float32
	Sun             Sun
	Unk             uint8
	Constant        Rgba
	AmbientLight    float32
	AmbientExposure float32
}

type Exposure struct {
	Min            float32
	Max            float32
	BrightnessGoal float32
}

type Fog struct {
	Color    Rgba
	Start    float32
	Distance float32
	Amount   float32
	Exponent float32
}

type EnvironmentWater struct {
	Wetness        float32
	PuddleCoverage float32
	PuddleSize     float32
	Rain           float32
}

type Environment struct {
	Skybox        Skybox
	Exposure      Exposure
	Fog           Fog
	Water         EnvironmentWater
	Nightlight    bool
	Ambience      Sound
	Slippery      float32
	LightsFogScale float32
}

func decodeEnvironment(r *binstream.Reader) (*Environment, error) {
	e := &Environment{}
	var err error

	if e.Skybox.Texture, err = r.ReadString(); err != nil {
		return nil, errors.Wrapf(err, "skybox texture")
	}
	if e.Skybox.ColorIntensity, err = readRgba(r); err != nil {
		return nil, err
	}
	if e.Skybox.Rotation, err = r.ReadF32(); err != nil {
		return nil, err
	}

	sun := &e.Skybox.Sun
	if sun.TintBrightness, err = readVec3(r); err != nil {
		return nil, err
	}
	if sun.Tint, err = readRgba(r); err != nil {
		return nil, err
	}
	if sun.Direction, err = readVec3(r); err != nil {
		return nil, err
	}
	for _, f := range []*float32{&sun.Brightness, &sun.Spread, &sun.MaxShadowLength, &sun.FogScale, &sun.Glare} {
		if *f, err = r.ReadF32(); err != nil {
			return nil, err
		}
	}

	if e.Skybox.Unk, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if e.Skybox.Constant, err = readRgba(r); err != nil {
		return nil, err
	}
	if e.Skybox.AmbientLight, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if e.Skybox.AmbientExposure, err = r.ReadF32(); err != nil {
		return nil, err
	}

	for _, f := range []*float32{&e.Exposure.Min, &e.Exposure.Max, &e.Exposure.BrightnessGoal} {
		if *f, err = r.ReadF32(); err != nil {
			return nil, err
		}
	}

	if e.Fog.Color, err = readRgba(r); err != nil {
		return nil, err
	}
	for _, f := range []*float32{&e.Fog.Start, &e.Fog.Distance, &e.Fog.Amount, &e.Fog.Exponent} {
		if *f, err = r.ReadF32(); err != nil {
			return nil, err
		}
	}

	for _, f := range []*float32{&e.Water.Wetness, &e.Water.PuddleCoverage, &e.Water.PuddleSize, &e.Water.Rain} {
		if *f, err = r.ReadF32(); err != nil {
			return nil, err
		}
	}

	nightlight, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	e.Nightlight = nightlight != 0
	if e.Ambience, err = readSound(r); err != nil {
		return nil, errors.Wrapf(err, "ambience")
	}
	if e.Slippery, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if e.LightsFogScale, err = r.ReadF32(); err != nil {
		return nil, err
	}
	return e, nil
}

type Player struct {
	Unk00     [3]int32
	Unk0c     [7]float32
	Transform Transform
	Yaw       float32
	Pitch     float32
	Velocity  mgl32.Vec3
	Health    float32
	Unk50     [2]float32
}

func decodePlayer(r *binstream.Reader) (*Player, error) {
	p := &Player{}
	var err error
	for i := range p.Unk00 {
		if p.Unk00[i], err = r.ReadI32(); err != nil {
			return nil, err
		}
	}
	for i := range p.Unk0c {
		if p.Unk0c[i], err = r.ReadF32(); err != nil {
			return nil, err
		}
	}
	if p.Transform, err = readTransform(r); err != nil {
		return nil, err
	}
	if p.Yaw, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if p.Pitch, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if p.Velocity, err = readVec3(r); err != nil {
		return nil, err
	}
	if p.Health, err = r.ReadF32(); err != nil {
		return nil, err
	}
	for i := range p.Unk50 {
		if p.Unk50[i], err = r.ReadF32(); err != nil {
			return nil, err
		}
	}
	return p, nil
}
