package tdbin

import (
	"github.com/pkg/errors"

	"github.com/mogaika/teardown_browser/binstream"
)

// ErrUnsupportedEntityKind aborts the whole decode: without knowing the
// payload shape of an unknown kind the stream alignment cannot be
// recovered.
var ErrUnsupportedEntityKind = errors.New("unsupported entity kind")

type Kind uint8

const (
	KindBody     Kind = 1
	KindShape    Kind = 2
	KindLight    Kind = 3
	KindLocation Kind = 4
	KindWater    Kind = 5
	KindJoint    Kind = 7
	KindVehicle  Kind = 8
	KindWheel    Kind = 9
	KindScreen   Kind = 10
	KindTrigger  Kind = 11
	KindScript   Kind = 12
)

func (k Kind) String() string {
	switch k {
	case KindBody:
		return "Body"
	case KindShape:
		return "Shape"
	case KindLight:
		return "Light"
	case KindLocation:
		return "Location"
	case KindWater:
		return "Water"
	case KindJoint:
		return "Joint"
	case KindVehicle:
		return "Vehicle"
	case KindWheel:
		return "Wheel"
	case KindScreen:
		return "Screen"
	case KindTrigger:
		return "Trigger"
	case KindScript:
		return "Script"
	}
	return "Other"
}

// Payload is the kind-specific part of an entity record. Payloads that
// carry a transform expose it; the rest return nil.
type Payload interface {
	EntityTransform() *Transform
}

// Other preserves the raw payload of a kind the decoder recognizes by
// size only. Payload bytes are kept so nothing is lost for debugging.
type Other struct {
	Raw []byte
}

func (o *Other) EntityTransform() *Transform { return nil }

// opaquePayloadSizes lists kind tags whose payload has a known fixed
// size but no field-level decoding. Tags absent from this table and
// from the kind dispatch abort the import.
var opaquePayloadSizes = map[Kind]int{
	KindWheel: 1 + 108,
}

type Entity struct {
	Handle   uint32
	Tags     map[string]string
	Desc     string
	Kind     Kind
	Payload  Payload
	Children []*Entity
}

// Transform returns the payload transform, or nil for kinds without one.
func (e *Entity) Transform() *Transform {
	if e.Payload == nil {
		return nil
	}
	return e.Payload.EntityTransform()
}

// CountEntities walks the subtree iteratively and returns the number of
// entities including the receiver.
func (e *Entity) CountEntities() int {
	n := 0
	stack := []*Entity{e}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		stack = append(stack, cur.Children...)
	}
	return n
}

type decodeFrame struct {
	entity    *Entity
	remaining uint32
}

// DecodeEntity decodes one entity record and all of its children.
// Children are decoded with an explicit frame stack so the depth of the
// (file-supplied) tree never translates into Go stack growth.
func DecodeEntity(r *binstream.Reader) (*Entity, error) {
	root, children, err := decodeEntityHeader(r)
	if err != nil {
		return nil, err
	}
	stack := []decodeFrame{{entity: root, remaining: children}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.remaining == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		top.remaining--
		child, grandchildren, err := decodeEntityHeader(r)
		if err != nil {
			return nil, errors.Wrapf(err, "child of entity %d", top.entity.Handle)
		}
		top.entity.Children = append(top.entity.Children, child)
		stack = append(stack, decodeFrame{entity: child, remaining: grandchildren})
	}
	return root, nil
}

// decodeEntityHeader reads everything of one record except its children
// and returns the declared child count.
func decodeEntityHeader(r *binstream.Reader) (*Entity, uint32, error) {
	e := &Entity{}
	var err error
	if e.Handle, err = r.ReadU32(); err != nil {
		return nil, 0, errors.Wrapf(err, "handle")
	}
	tagCount, err := r.ReadU8()
	if err != nil {
		return nil, 0, errors.Wrapf(err, "entity %d: tag count", e.Handle)
	}
	if e.Tags, err = readStringMap(r, int(tagCount)); err != nil {
		return nil, 0, errors.Wrapf(err, "entity %d: tags", e.Handle)
	}
	if e.Desc, err = r.ReadString(); err != nil {
		return nil, 0, errors.Wrapf(err, "entity %d: desc", e.Handle)
	}
	kindTag, err := r.ReadU8()
	if err != nil {
		return nil, 0, errors.Wrapf(err, "entity %d: kind tag", e.Handle)
	}
	e.Kind = Kind(kindTag)
	if e.Payload, err = decodePayload(r, e.Kind); err != nil {
		return nil, 0, errors.Wrapf(err, "entity %d: %s payload", e.Handle, e.Kind)
	}
	childCount, err := r.ReadU32()
	if err != nil {
		return nil, 0, errors.Wrapf(err, "entity %d: child count", e.Handle)
	}
	return e, childCount, nil
}

func decodePayload(r *binstream.Reader, kind Kind) (Payload, error) {
	switch kind {
	case KindBody:
		return decodeBody(r)
	case KindShape:
		return decodeShape(r)
	case KindLight:
		return decodeLight(r)
	case KindLocation:
		return decodeLocation(r)
	case KindWater:
		return decodeWater(r)
	case KindJoint:
		return decodeJoint(r)
	case KindVehicle:
		return decodeVehicle(r)
	case KindScreen:
		return decodeScreen(r)
	case KindTrigger:
		return decodeTrigger(r)
	case KindScript:
		return decodeScript(r)
	}
	if size, ok := opaquePayloadSizes[kind]; ok {
		raw, err := r.ReadBytes(size)
		if err != nil {
			return nil, err
		}
		return &Other{Raw: raw}, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedEntityKind, "kind tag 0x%x at 0x%x", uint8(kind), r.Pos())
}
