package tdbin

import (
	"github.com/pkg/errors"

	"github.com/mogaika/teardown_browser/binstream"
)

// ErrMalformedShape is returned when a voxel run stream encodes more
// cells than the declared chunk volume. The error is isolated to the
// shape it occurred in; the rest of the tree stays valid.
var ErrMalformedShape = errors.New("voxel run stream exceeds chunk volume")

// Voxels is the compressed voxel volume of a Shape: chunk dimensions
// plus a stream of (count-1, paletteIndex) byte pairs. Palette index
// zero encodes empty cells.
type Voxels struct {
	Size             [3]int32
	PaletteIndexRuns []byte
}

func decodeVoxels(r *binstream.Reader) (Voxels, error) {
	var v Voxels
	for i := range v.Size {
		dim, err := r.ReadI32()
		if err != nil {
			return v, errors.Wrapf(err, "size[%d]", i)
		}
		v.Size[i] = dim
	}
	if v.Volume() == 0 {
		return v, nil
	}
	n, err := r.ReadU32()
	if err != nil {
		return v, errors.Wrapf(err, "run stream length")
	}
	if v.PaletteIndexRuns, err = r.ReadBytes(int(n)); err != nil {
		return v, errors.Wrapf(err, "run stream")
	}
	return v, nil
}

func (v *Voxels) Volume() int {
	return int(v.Size[0]) * int(v.Size[1]) * int(v.Size[2])
}

// chunkCoords enumerates chunk-local coordinates in row-major order
// (x fastest, then y, then z), followed by a single sentinel coordinate
// at the origin as safety margin against off-by-one run streams.
type chunkCoords struct {
	size     [3]int32
	cur      [3]int32
	sentinel bool
	done     bool
}

func newChunkCoords(size [3]int32) *chunkCoords {
	c := &chunkCoords{size: size}
	if size[0] <= 0 || size[1] <= 0 || size[2] <= 0 {
		c.sentinel = true
	}
	return c
}

func (c *chunkCoords) Next() ([3]int32, bool) {
	if c.done {
		return [3]int32{}, false
	}
	if c.sentinel {
		c.done = true
		return [3]int32{}, true
	}
	cur := c.cur
	for dim := 0; dim < 3; dim++ {
		c.cur[dim]++
		if c.cur[dim] < c.size[dim] {
			return cur, true
		}
		c.cur[dim] = 0
	}
	c.sentinel = true
	return cur, true
}

// Decode expands the run stream into the accepted voxel coordinates and
// their palette indices. A trailing unpaired byte in the stream is
// ignored, matching the reference reader.
func (v *Voxels) Decode() (positions [][3]int32, palette []uint8, err error) {
	coords := newChunkCoords(v.Size)
	runs := v.PaletteIndexRuns
	for len(runs) >= 2 {
		n, index := int(runs[0])+1, runs[1]
		runs = runs[2:]
		for i := 0; i < n; i++ {
			coord, ok := coords.Next()
			if !ok {
				return nil, nil, errors.Wrapf(ErrMalformedShape,
					"size %v with %d run bytes left", v.Size, len(runs)+2)
			}
			if index != 0 {
				positions = append(positions, coord)
				palette = append(palette, index)
			}
		}
	}
	return positions, palette, nil
}
