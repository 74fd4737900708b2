package binstream

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// ErrTruncated is returned when a read requires more bytes than remain
// in the buffer. The cursor is not advanced on failure.
var ErrTruncated = errors.New("unexpected end of stream")

// Reader is a bounds-checked cursor over an immutable byte buffer.
// All multi-byte reads are little-endian. A read either consumes the
// whole value or fails with ErrTruncated; partial data is never returned.
type Reader struct {
	data []byte
	pos  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) Pos() int { return r.pos }

func (r *Reader) Remaining() int { return len(r.data) - r.pos }

func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return errors.Wrapf(ErrTruncated, "seek to 0x%x outside of buffer size 0x%x", pos, len(r.data))
	}
	r.pos = pos
	return nil
}

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, errors.Wrapf(ErrTruncated, "at 0x%x: need 0x%x bytes, have 0x%x", r.pos, n, r.Remaining())
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadF64() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// ReadCount reads a u32 element count and validates it against the
// bytes left in the buffer, where elemSize is the minimal wire size of
// one element. Counts that cannot fit fail as ErrTruncated before any
// allocation happens; the cursor is not advanced on failure.
func (r *Reader) ReadCount(elemSize int) (int, error) {
	pos := r.pos
	n, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	if int64(n)*int64(elemSize) > int64(r.Remaining()) {
		r.pos = pos
		return 0, errors.Wrapf(ErrTruncated,
			"at 0x%x: count 0x%x of 0x%x-byte elements exceeds remaining 0x%x",
			pos, n, elemSize, r.Remaining())
	}
	return int(n), nil
}

// ReadBytes returns a copy so decoded records do not alias the source
// buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadString reads a u32 length-prefixed string.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return "", err
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
