package binstream

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
)

func TestReaderScalars(t *testing.T) {
	r := NewReader([]byte{
		0x2a,                   // u8
		0x34, 0x12,             // u16
		0x78, 0x56, 0x34, 0x12, // u32
		0xff, 0xff, 0xff, 0xff, // i32 -1
		0x00, 0x00, 0x80, 0x3f, // f32 1.0
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0, 0x3f, // f64 1.0
	})

	if v, err := r.ReadU8(); err != nil || v != 0x2a {
		t.Errorf("ReadU8() = %v, %v", v, err)
	}
	if v, err := r.ReadU16(); err != nil || v != 0x1234 {
		t.Errorf("ReadU16() = %#x, %v", v, err)
	}
	if v, err := r.ReadU32(); err != nil || v != 0x12345678 {
		t.Errorf("ReadU32() = %#x, %v", v, err)
	}
	if v, err := r.ReadI32(); err != nil || v != -1 {
		t.Errorf("ReadI32() = %v, %v", v, err)
	}
	if v, err := r.ReadF32(); err != nil || v != 1.0 {
		t.Errorf("ReadF32() = %v, %v", v, err)
	}
	if v, err := r.ReadF64(); err != nil || v != 1.0 {
		t.Errorf("ReadF64() = %v, %v", v, err)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", r.Remaining())
	}
}

func TestReaderString(t *testing.T) {
	r := NewReader([]byte{5, 0, 0, 0, 'h', 'e', 'l', 'l', 'o', 0, 0, 0, 0})
	if s, err := r.ReadString(); err != nil || s != "hello" {
		t.Errorf("ReadString() = %q, %v", s, err)
	}
	if s, err := r.ReadString(); err != nil || s != "" {
		t.Errorf("ReadString() = %q, %v, want empty", s, err)
	}
}

func TestReaderStringTruncated(t *testing.T) {
	// Declared length runs past the buffer.
	r := NewReader([]byte{10, 0, 0, 0, 'a', 'b'})
	if _, err := r.ReadString(); errors.Cause(err) != ErrTruncated {
		t.Errorf("got %v, want ErrTruncated", err)
	}
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	if _, err := r.ReadU32(); errors.Cause(err) != ErrTruncated {
		t.Errorf("ReadU32 on 3 bytes: got %v, want ErrTruncated", err)
	}
	// Failed read must not move the cursor.
	if r.Pos() != 0 {
		t.Errorf("Pos() = %d after failed read, want 0", r.Pos())
	}
	if v, err := r.ReadU16(); err != nil || v != 0x0201 {
		t.Errorf("ReadU16() = %#x, %v", v, err)
	}
}

func TestReaderBytesCopies(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	r := NewReader(src)
	b, err := r.ReadBytes(4)
	if err != nil {
		t.Fatal(err)
	}
	src[0] = 0xff
	if !bytes.Equal(b, []byte{1, 2, 3, 4}) {
		t.Errorf("ReadBytes aliased the source buffer: %v", b)
	}
}

func TestReaderSeek(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	if err := r.Seek(2); err != nil {
		t.Fatal(err)
	}
	if v, _ := r.ReadU8(); v != 3 {
		t.Errorf("after Seek(2) ReadU8() = %d, want 3", v)
	}
	if err := r.Seek(5); errors.Cause(err) != ErrTruncated {
		t.Errorf("Seek(5) = %v, want ErrTruncated", err)
	}
	if err := r.Seek(-1); errors.Cause(err) != ErrTruncated {
		t.Errorf("Seek(-1) = %v, want ErrTruncated", err)
	}
	// Seek to exactly the end is allowed.
	if err := r.Seek(4); err != nil {
		t.Errorf("Seek(4) = %v", err)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", r.Remaining())
	}
}

func TestReaderCount(t *testing.T) {
	// Two 4-byte elements after the count.
	r := NewReader([]byte{
		0x02, 0x00, 0x00, 0x00,
		1, 0, 0, 0,
		2, 0, 0, 0,
	})
	if n, err := r.ReadCount(4); err != nil || n != 2 {
		t.Errorf("ReadCount(4) = %d, %v, want 2", n, err)
	}
	if r.Pos() != 4 {
		t.Errorf("Pos() = %d, want 4", r.Pos())
	}
}

func TestReaderCountOverflow(t *testing.T) {
	for _, count := range []uint32{3, 0x10000, 0xffffffff} {
		r := NewReader([]byte{
			byte(count), byte(count >> 8), byte(count >> 16), byte(count >> 24),
			1, 0, 0, 0,
			2, 0, 0, 0,
		})
		n, err := r.ReadCount(4)
		if errors.Cause(err) != ErrTruncated {
			t.Errorf("ReadCount(4) with count %#x = %d, %v, want ErrTruncated", count, n, err)
		}
		if r.Pos() != 0 {
			t.Errorf("Pos() after failed ReadCount = %d, want 0", r.Pos())
		}
	}
}
