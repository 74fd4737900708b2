package tdbin

import (
	"testing"

	"github.com/mogaika/teardown_browser/binstream"
)

func TestLuaTableDecode(t *testing.T) {
	f := &fixture{}
	f.u32(luaTypeString).str("count") // key "count"
	f.u32(luaTypeNumber).raw([]byte{0, 0, 0, 0, 0, 0, 0x08, 0x40}) // value 3.0
	f.u32(luaTypeNumber).f64bits(0x3ff0000000000000)               // key 1.0
	f.u32(luaTypeTable)                                            // value is a nested table
	f.u32(luaTypeString).str("on")
	f.u32(luaTypeBoolean).u8(1)
	f.u32(luaTypeEnd) // nested end
	f.u32(luaTypeEnd)

	table, err := decodeLuaTable(binstream.NewReader(f.Bytes()), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != 2 {
		t.Fatalf("len(table) = %d, want 2", len(table))
	}
	if k, ok := table[0].Key.(string); !ok || k != "count" {
		t.Errorf("table[0].Key = %v, want \"count\"", table[0].Key)
	}
	if v, ok := table[0].Value.(float64); !ok || v != 3.0 {
		t.Errorf("table[0].Value = %v, want 3.0", table[0].Value)
	}
	nested, ok := table[1].Value.(LuaTable)
	if !ok || len(nested) != 1 {
		t.Fatalf("table[1].Value = %v, want one-entry table", table[1].Value)
	}
	if v, ok := nested[0].Value.(bool); !ok || !v {
		t.Errorf("nested[0].Value = %v, want true", nested[0].Value)
	}
}

func (f *fixture) f64bits(v uint64) *fixture {
	return f.u32(uint32(v)).u32(uint32(v >> 32))
}

func TestLuaTableDepthLimited(t *testing.T) {
	// A run of table key tags nests one level per tag. Decoding must
	// fail with an error well before the goroutine stack runs out.
	f := &fixture{}
	for i := 0; i < maxLuaTableDepth+64; i++ {
		f.u32(luaTypeTable)
	}
	if _, err := decodeLuaTable(binstream.NewReader(f.Bytes()), 0); err == nil {
		t.Fatal("decodeLuaTable() = nil error, want nesting error")
	}
}
