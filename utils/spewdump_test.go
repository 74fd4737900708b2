package utils

import "testing"

func TestBytesToOneLineString(t *testing.T) {
	for _, test := range []struct {
		in   []byte
		want string
	}{
		{[]byte("abc"), "abc"},
		{[]byte{0x00, 'A', 0xff}, `\x00A\xff`},
		{nil, ""},
	} {
		if got := BytesToOneLineString(test.in); got != test.want {
			t.Errorf("BytesToOneLineString(%v) = %q, want %q", test.in, got, test.want)
		}
	}
}
