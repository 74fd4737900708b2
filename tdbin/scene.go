package tdbin

import (
	"bytes"
	"compress/zlib"
	"io/ioutil"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/teardown_browser/binstream"
)

var SCENE_MAGIC = [5]byte{'T', 'D', 'B', 'I', 'N'}

// SUPPORTED_VERSION is the game build the field layout was mapped
// against. Other versions still decode, with a warning.
var SUPPORTED_VERSION = [3]uint8{0, 7, 1}

type Fire struct {
	EntityHandle uint32
	Position     mgl32.Vec3
	MaxTime      float32
	Time         float32
	Unk18        [6]uint8
}

type Scene struct {
	Version          [3]uint8
	Level            string
	ShadowVolume     mgl32.Vec3
	Spawnpoint       Transform
	Player           *Player
	Environment      *Environment
	Unk30            [8]float32
	Unk50            uint8
	BoundaryVertices []BoundaryVertex
	Fires            []Fire
	Palettes         []*Palette
	Registry         map[string]string
	Entities         []*Entity
}

// Uncompress returns the raw scene bytes. Saves are zlib streams
// unless they already begin with the scene magic.
func Uncompress(b []byte) ([]byte, error) {
	if bytes.HasPrefix(b, SCENE_MAGIC[:]) {
		return b, nil
	}
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrapf(err, "zlib header")
	}
	defer zr.Close()
	raw, err := ioutil.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrapf(err, "zlib stream")
	}
	return raw, nil
}

func DecodeScene(b []byte) (*Scene, error) {
	raw, err := Uncompress(b)
	if err != nil {
		return nil, err
	}

	r := binstream.NewReader(raw)
	magic, err := r.ReadBytes(len(SCENE_MAGIC))
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(magic, SCENE_MAGIC[:]) {
		return nil, errors.Errorf("invalid magic %q", magic)
	}

	s := &Scene{}
	version, err := r.ReadBytes(len(s.Version))
	if err != nil {
		return nil, err
	}
	copy(s.Version[:], version)
	if s.Version != SUPPORTED_VERSION {
		log.Printf("[tdbin] unsupported save version %d.%d.%d (expected %d.%d.%d), trying anyway",
			s.Version[0], s.Version[1], s.Version[2],
			SUPPORTED_VERSION[0], SUPPORTED_VERSION[1], SUPPORTED_VERSION[2])
	}

	if s.Level, err = r.ReadString(); err != nil {
		return nil, errors.Wrapf(err, "level")
	}
	if _, err := r.ReadBytes(4); err != nil {
		return nil, err
	}
	if s.ShadowVolume, err = readVec3(r); err != nil {
		return nil, errors.Wrapf(err, "shadow volume")
	}
	if s.Spawnpoint, err = readTransform(r); err != nil {
		return nil, errors.Wrapf(err, "spawnpoint")
	}
	if s.Player, err = decodePlayer(r); err != nil {
		return nil, errors.Wrapf(err, "player")
	}
	if s.Environment, err = decodeEnvironment(r); err != nil {
		return nil, errors.Wrapf(err, "environment")
	}
	for i := range s.Unk30 {
		if s.Unk30[i], err = r.ReadF32(); err != nil {
			return nil, err
		}
	}
	if s.Unk50, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if s.BoundaryVertices, err = readBoundaryVertices(r); err != nil {
		return nil, errors.Wrapf(err, "boundary")
	}

	// Handle, position, two timers and six trailing bytes per fire.
	fireCount, err := r.ReadCount(30)
	if err != nil {
		return nil, errors.Wrapf(err, "fire count")
	}
	s.Fires = make([]Fire, fireCount)
	for i := range s.Fires {
		f := &s.Fires[i]
		if f.EntityHandle, err = r.ReadU32(); err != nil {
			return nil, err
		}
		if f.Position, err = readVec3(r); err != nil {
			return nil, err
		}
		if f.MaxTime, err = r.ReadF32(); err != nil {
			return nil, err
		}
		if f.Time, err = r.ReadF32(); err != nil {
			return nil, err
		}
		unk, err := r.ReadBytes(len(f.Unk18))
		if err != nil {
			return nil, err
		}
		copy(f.Unk18[:], unk)
	}

	// 256 materials of 34 bytes, two tint tables and a reserved byte
	// per palette record.
	paletteCount, err := r.ReadCount(256*34 + 2048 + 1)
	if err != nil {
		return nil, errors.Wrapf(err, "palette count")
	}
	s.Palettes = make([]*Palette, paletteCount)
	for i := range s.Palettes {
		if s.Palettes[i], err = decodePalette(r); err != nil {
			return nil, errors.Wrapf(err, "palette %d", i)
		}
	}

	// Two length-prefixed strings per pair, at least 8 bytes.
	registryCount, err := r.ReadCount(8)
	if err != nil {
		return nil, errors.Wrapf(err, "registry count")
	}
	if s.Registry, err = readStringMap(r, int(registryCount)); err != nil {
		return nil, errors.Wrapf(err, "registry")
	}

	for r.Remaining() > 0 {
		entity, err := DecodeEntity(r)
		if err != nil {
			return nil, errors.Wrapf(err, "entity %d", len(s.Entities))
		}
		s.Entities = append(s.Entities, entity)
	}
	return s, nil
}

func (s *Scene) CountEntities() int {
	total := 0
	for _, e := range s.Entities {
		total += e.CountEntities()
	}
	return total
}

// FindEntity walks the full tree looking for an entity handle.
func (s *Scene) FindEntity(handle uint32) *Entity {
	stack := make([]*Entity, len(s.Entities))
	copy(stack, s.Entities)
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e.Handle == handle {
			return e
		}
		stack = append(stack, e.Children...)
	}
	return nil
}
