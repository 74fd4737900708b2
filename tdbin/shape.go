package tdbin

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/teardown_browser/binstream"
)

type Shape struct {
	Unk00                 uint8
	Transform             Transform
	Unk1d                 [4]uint8
	Density               float32
	Strength              float32
	TextureTile           uint32
	StartingWorldPosition mgl32.Vec3
	TextureWeight         float32
	Unk3d                 float32
	Unk41                 uint8
	Unk42                 uint8
	Voxels                Voxels
	PaletteIndex          uint32
	VoxelScaling          float32
	VoxelMaterials        []byte
	Unk2i32               [2]int32
	UnkEnd                uint8
}

func decodeShape(r *binstream.Reader) (*Shape, error) {
	s := &Shape{}
	var err error
	if s.Unk00, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if s.Transform, err = readTransform(r); err != nil {
		return nil, errors.Wrapf(err, "transform")
	}
	unk, err := r.ReadBytes(len(s.Unk1d))
	if err != nil {
		return nil, err
	}
	copy(s.Unk1d[:], unk)
	if s.Density, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if s.Strength, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if s.TextureTile, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if s.StartingWorldPosition, err = readVec3(r); err != nil {
		return nil, errors.Wrapf(err, "starting world position")
	}
	if s.TextureWeight, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if s.Unk3d, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if s.Unk41, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if s.Unk42, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if s.Voxels, err = decodeVoxels(r); err != nil {
		return nil, errors.Wrapf(err, "voxels")
	}
	if s.PaletteIndex, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if s.VoxelScaling, err = r.ReadF32(); err != nil {
		return nil, err
	}
	materialCount, err := r.ReadU32()
	if err != nil {
		return nil, errors.Wrapf(err, "material count")
	}
	if s.VoxelMaterials, err = r.ReadBytes(int(materialCount)); err != nil {
		return nil, errors.Wrapf(err, "materials")
	}
	for i := range s.Unk2i32 {
		if s.Unk2i32[i], err = r.ReadI32(); err != nil {
			return nil, err
		}
	}
	if s.UnkEnd, err = r.ReadU8(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Shape) EntityTransform() *Transform { return &s.Transform }
