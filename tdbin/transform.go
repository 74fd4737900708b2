package tdbin

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/teardown_browser/binstream"
)

// Transform holds a decoded position + rotation as stored in the save:
// the quaternion keeps the on-disk x, y, z, w component order.
type Transform struct {
	Pos mgl32.Vec3
	Rot [4]float32 // x, y, z, w
}

// Quat reorders the stored x,y,z,w components into a w-first quaternion.
func (t *Transform) Quat() mgl32.Quat {
	return mgl32.Quat{
		W: t.Rot[3],
		V: mgl32.Vec3{t.Rot[0], t.Rot[1], t.Rot[2]},
	}
}

type Rgba struct {
	R, G, B, A float32
}

type Sound struct {
	Path   string
	Volume float32
}

type BoundaryVertex struct {
	X, Z float32
}

func readF32Slice(r *binstream.Reader, out []float32) error {
	for i := range out {
		v, err := r.ReadF32()
		if err != nil {
			return err
		}
		out[i] = v
	}
	return nil
}

func readVec3(r *binstream.Reader) (v mgl32.Vec3, err error) {
	err = readF32Slice(r, v[:])
	return v, err
}

func readRgba(r *binstream.Reader) (c Rgba, err error) {
	var f [4]float32
	if err := readF32Slice(r, f[:]); err != nil {
		return c, err
	}
	return Rgba{R: f[0], G: f[1], B: f[2], A: f[3]}, nil
}

func readTransform(r *binstream.Reader) (t Transform, err error) {
	if t.Pos, err = readVec3(r); err != nil {
		return t, errors.Wrapf(err, "position")
	}
	if err := readF32Slice(r, t.Rot[:]); err != nil {
		return t, errors.Wrapf(err, "rotation")
	}
	return t, nil
}

func readSound(r *binstream.Reader) (s Sound, err error) {
	if s.Path, err = r.ReadString(); err != nil {
		return s, errors.Wrapf(err, "path")
	}
	if s.Volume, err = r.ReadF32(); err != nil {
		return s, errors.Wrapf(err, "volume")
	}
	return s, nil
}

func readBoundaryVertices(r *binstream.Reader) ([]BoundaryVertex, error) {
	count, err := r.ReadCount(8)
	if err != nil {
		return nil, err
	}
	vertices := make([]BoundaryVertex, count)
	for i := range vertices {
		if vertices[i].X, err = r.ReadF32(); err != nil {
			return nil, err
		}
		if vertices[i].Z, err = r.ReadF32(); err != nil {
			return nil, err
		}
	}
	return vertices, nil
}

// readStringMap reads count key/value string pairs. Tags use a u8
// count, the registry a u32 count.
func readStringMap(r *binstream.Reader, count int) (map[string]string, error) {
	m := make(map[string]string, count)
	for i := 0; i < count; i++ {
		key, err := r.ReadString()
		if err != nil {
			return nil, errors.Wrapf(err, "key %d", i)
		}
		value, err := r.ReadString()
		if err != nil {
			return nil, errors.Wrapf(err, "value for %q", key)
		}
		m[key] = value
	}
	return m, nil
}
