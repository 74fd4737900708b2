package tdbin

import (
	"github.com/pkg/errors"

	"github.com/mogaika/teardown_browser/binstream"
)

type ScriptSoundKind uint32

const (
	ScriptSoundNormal ScriptSoundKind = 1
	ScriptSoundLoop   ScriptSoundKind = 2
)

type ScriptSound struct {
	Kind ScriptSoundKind
	Name string
}

type Script struct {
	Unk00         uint8
	Path          string
	Params        map[string]string
	LastUpdate    float32
	Time          float32
	Unk0c         [4]uint8
	Table         LuaTable
	EntityHandles []uint32
	Sounds        []ScriptSound
}

func decodeScript(r *binstream.Reader) (*Script, error) {
	s := &Script{}
	var err error
	if s.Unk00, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if s.Path, err = r.ReadString(); err != nil {
		return nil, errors.Wrapf(err, "path")
	}
	paramCount, err := r.ReadCount(8)
	if err != nil {
		return nil, errors.Wrapf(err, "param count")
	}
	if s.Params, err = readStringMap(r, paramCount); err != nil {
		return nil, errors.Wrapf(err, "params")
	}
	if s.LastUpdate, err = r.ReadF32(); err != nil {
		return nil, err
	}
	if s.Time, err = r.ReadF32(); err != nil {
		return nil, err
	}
	unk, err := r.ReadBytes(len(s.Unk0c))
	if err != nil {
		return nil, err
	}
	copy(s.Unk0c[:], unk)
	if s.Table, err = decodeLuaTable(r, 0); err != nil {
		return nil, errors.Wrapf(err, "lua table")
	}
	if s.EntityHandles, err = readU32Slice(r); err != nil {
		return nil, errors.Wrapf(err, "entity handles")
	}
	soundCount, err := r.ReadCount(8)
	if err != nil {
		return nil, errors.Wrapf(err, "sound count")
	}
	s.Sounds = make([]ScriptSound, soundCount)
	for i := range s.Sounds {
		kind, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		s.Sounds[i].Kind = ScriptSoundKind(kind)
		if s.Sounds[i].Name, err = r.ReadString(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Script) EntityTransform() *Transform { return nil }

// LuaValue is one serialized Lua value: bool, float64, string or a
// nested LuaTable.
type LuaValue interface{}

type LuaTableEntry struct {
	Key   LuaValue
	Value LuaValue
}

// LuaTable keeps entries in stream order. Lua allows non-string keys,
// so a Go map would lose both ordering and key typing.
type LuaTable []LuaTableEntry

const (
	luaTypeEnd     = 0
	luaTypeBoolean = 1
	luaTypeNumber  = 3
	luaTypeString  = 4
	luaTypeTable   = 5
)

// Table nesting depth is file controlled. Recursing past this limit
// fails the decode instead of exhausting the goroutine stack.
const maxLuaTableDepth = 256

func decodeLuaValue(r *binstream.Reader, luaType uint32, depth int) (LuaValue, error) {
	switch luaType {
	case luaTypeBoolean:
		b, err := r.ReadU8()
		return b != 0, err
	case luaTypeNumber:
		return r.ReadF64()
	case luaTypeString:
		return r.ReadString()
	case luaTypeTable:
		return decodeLuaTable(r, depth+1)
	}
	return nil, errors.Errorf("unknown lua value type %d at 0x%x", luaType, r.Pos())
}

func decodeLuaTable(r *binstream.Reader, depth int) (LuaTable, error) {
	if depth > maxLuaTableDepth {
		return nil, errors.Errorf("lua table nested deeper than %d at 0x%x", maxLuaTableDepth, r.Pos())
	}
	var table LuaTable
	for {
		keyType, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		if keyType == luaTypeEnd {
			return table, nil
		}
		key, err := decodeLuaValue(r, keyType, depth)
		if err != nil {
			return nil, errors.Wrapf(err, "key %d", len(table))
		}
		valueType, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		value, err := decodeLuaValue(r, valueType, depth)
		if err != nil {
			return nil, errors.Wrapf(err, "value %d", len(table))
		}
		table = append(table, LuaTableEntry{Key: key, Value: value})
	}
}
