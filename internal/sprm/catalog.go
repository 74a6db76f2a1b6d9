package sprm

import (
	"fmt"
	"reflect"

	"github.com/hanpama/msdoc/internal/props"
)

// handler applies one operation to dst. base is the property set the whole
// grpprl is being applied against; dst starts as a clone of it.
type handler[P any] func(dst, base *P, op Operation) error

// encoder compares cur against old and, when the field it owns changed,
// returns the operand (fixed-width sprms) or payload (variable sprms) to
// emit.
type encoder[P any] func(cur, old *P) (operand int32, payload []byte, ok bool)

// entry binds one sprm to its decode handler and, for compressible fields,
// its encoder. want is the operand width the handler was written for; 0
// means the handler checks the payload itself.
type entry[P any] struct {
	sprm   uint16
	name   string
	want   int
	apply  handler[P]
	encode encoder[P]
}

// catalog is the opcode table of one property kind. Entry order is the
// order compressors emit operations in.
type catalog[P any] struct {
	kind    Kind
	entries []entry[P]
	byOp    [opMask + 1]*entry[P]
	clone   func(*P) *P
}

// newCatalog indexes entries by operation code. Tables that disagree with
// the shared width table, or that register an operation twice, are
// programming errors and panic.
func newCatalog[P any](kind Kind, clone func(*P) *P, entries []entry[P]) *catalog[P] {
	c := &catalog[P]{kind: kind, entries: entries, clone: clone}
	for i := range c.entries {
		e := &c.entries[i]
		k := Kind((e.sprm & kindMask) >> kindShift)
		if k != kind {
			panic(fmt.Sprintf("sprm: %s (0x%04X) is a %s sprm in the %s table", e.name, e.sprm, k, kind))
		}
		if e.want != 0 && e.want != OperandWidth(e.sprm) {
			panic(fmt.Sprintf("sprm: %s (0x%04X) handler expects a %d-byte operand, width class gives %d",
				e.name, e.sprm, e.want, OperandWidth(e.sprm)))
		}
		if e.encode != nil && e.apply == nil {
			panic(fmt.Sprintf("sprm: %s (0x%04X) can be encoded but not decoded", e.name, e.sprm))
		}
		op := e.sprm & opMask
		if prev := c.byOp[op]; prev != nil {
			panic(fmt.Sprintf("sprm: %s (0x%04X) and %s (0x%04X) share operation 0x%02X",
				prev.name, prev.sprm, e.name, e.sprm, op))
		}
		c.byOp[op] = e
	}
	return c
}

// lookup returns the entry for op, or nil when the operation is not one of
// this kind's. A token whose width class differs from the catalogued sprm
// is a different, unknown operation.
func (c *catalog[P]) lookup(op Operation) *entry[P] {
	if op.Kind() != c.kind {
		return nil
	}
	e := c.byOp[op.Op()]
	if e == nil || OperandWidth(op.Sprm()) != OperandWidth(e.sprm) {
		return nil
	}
	return e
}

// uncompress applies grpprl[offset:] to a clone of base. Any decode error
// aborts the whole grpprl; unknown operations are skipped.
func (c *catalog[P]) uncompress(base *P, grpprl []byte, offset int) (*P, error) {
	dst := c.clone(base)
	it := NewIterator(grpprl, offset)
	for it.HasNext() {
		op, err := it.Next()
		if err != nil {
			return nil, err
		}
		e := c.lookup(op)
		if e == nil || e.apply == nil {
			continue
		}
		if err := e.apply(dst, base, op); err != nil {
			return nil, fmt.Errorf("%s: %w", e.name, err)
		}
	}
	return dst, nil
}

// compress emits, in catalogue order, one operation per encodable field
// that differs between cur and old. Fields whose operand cannot be
// represented are left out.
func (c *catalog[P]) compress(cur, old *P) []byte {
	var b Builder
	for i := range c.entries {
		e := &c.entries[i]
		if e.encode == nil {
			continue
		}
		operand, payload, ok := e.encode(cur, old)
		if !ok {
			continue
		}
		if _, err := b.Add(e.sprm, operand, payload); err != nil {
			continue
		}
	}
	return b.Bytes()
}

// name returns the catalogue name of sprm, if this kind knows it.
func (c *catalog[P]) name(sprm uint16) (string, bool) {
	if Kind((sprm&kindMask)>>kindShift) != c.kind {
		return "", false
	}
	if e := c.byOp[sprm&opMask]; e != nil {
		return e.name, true
	}
	return "", false
}

// compressible lists the sprms this kind can encode, in emission order.
func (c *catalog[P]) compressible() []uint16 {
	var out []uint16
	for _, e := range c.entries {
		if e.encode != nil {
			out = append(out, e.sprm)
		}
	}
	return out
}

type integer interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32
}

func widthOf[T integer]() int {
	return int(reflect.TypeOf((*T)(nil)).Elem().Size())
}

// ignore registers an operation that is recognized and deliberately
// skipped.
func ignore[P any](sprm uint16, name string) entry[P] {
	return entry[P]{sprm: sprm, name: name}
}

// flag sets a boolean from a nonzero operand.
func flag[P any](sprm uint16, name string, f func(*P) *bool) entry[P] {
	return entry[P]{
		sprm: sprm, name: name, want: 1,
		apply: func(dst, _ *P, op Operation) error {
			*f(dst) = op.Operand() != 0
			return nil
		},
		encode: func(cur, old *P) (int32, []byte, bool) {
			if *f(cur) == *f(old) {
				return 0, nil, false
			}
			return boolOperand(*f(cur)), nil, true
		},
	}
}

// toggle sets a boolean with the tri-state convention of ToggleFlag,
// resolved against the base value.
func toggle[P any](sprm uint16, name string, f func(*P) *bool) entry[P] {
	e := flag(sprm, name, f)
	e.apply = func(dst, base *P, op Operation) error {
		*f(dst) = ToggleFlag(byte(op.Operand()), *f(base))
		return nil
	}
	return e
}

// value replaces an integer field with the operand narrowed to the field's
// width.
func value[P any, T integer](sprm uint16, name string, f func(*P) *T) entry[P] {
	return entry[P]{
		sprm: sprm, name: name, want: widthOf[T](),
		apply: func(dst, _ *P, op Operation) error {
			*f(dst) = T(op.Operand())
			return nil
		},
		encode: func(cur, old *P) (int32, []byte, bool) {
			if *f(cur) == *f(old) {
				return 0, nil, false
			}
			return int32(*f(cur)), nil, true
		},
	}
}

// decodeOnly drops the encoder of e, for sprms that share a field with a
// preferred encoding.
func decodeOnly[P any](e entry[P]) entry[P] {
	e.encode = nil
	return e
}

// brc80 replaces a border from a 4-byte Brc80 operand.
func brc80[P any](sprm uint16, name string, f func(*P) *props.BorderCode) entry[P] {
	return entry[P]{
		sprm: sprm, name: name, want: props.Brc80Size,
		apply: func(dst, _ *P, op Operation) error {
			*f(dst) = props.ReadBorderCode(op.Data())
			return nil
		},
		encode: func(cur, old *P) (int32, []byte, bool) {
			if *f(cur) == *f(old) {
				return 0, nil, false
			}
			return f(cur).Int32(), nil, true
		},
	}
}

// brc replaces a border from an 8-byte BRC payload.
func brc[P any](sprm uint16, name string, f func(*P) *props.BorderCode) entry[P] {
	return entry[P]{
		sprm: sprm, name: name,
		apply: func(dst, _ *P, op Operation) error {
			if err := op.need(props.BrcSize); err != nil {
				return err
			}
			*f(dst) = props.ReadBorderCodeBrc(op.Data())
			return nil
		},
	}
}

// dttm replaces a revision timestamp from a 4-byte DTTM operand.
func dttm[P any](sprm uint16, name string, f func(*P) *props.DateAndTime) entry[P] {
	return entry[P]{
		sprm: sprm, name: name, want: props.DttmSize,
		apply: func(dst, _ *P, op Operation) error {
			*f(dst) = props.ReadDateAndTime(uint32(op.Operand()))
			return nil
		},
		encode: func(cur, old *P) (int32, []byte, bool) {
			if *f(cur) == *f(old) {
				return 0, nil, false
			}
			return int32(f(cur).Uint32()), nil, true
		},
	}
}

// shd80 replaces shading from a 2-byte Shd80 operand.
func shd80[P any](sprm uint16, name string, f func(*P) *props.ShadingDescriptor) entry[P] {
	return entry[P]{
		sprm: sprm, name: name, want: props.Shd80Size,
		apply: func(dst, _ *P, op Operation) error {
			*f(dst) = props.ReadShd80(uint16(op.Operand()))
			return nil
		},
	}
}

// shd replaces shading from a 10-byte SHD payload.
func shd[P any](sprm uint16, name string, f func(*P) *props.ShadingDescriptor) entry[P] {
	return entry[P]{
		sprm: sprm, name: name,
		apply: func(dst, _ *P, op Operation) error {
			if err := op.need(props.ShdSize); err != nil {
				return err
			}
			*f(dst) = props.ReadShadingDescriptor(op.Data())
			return nil
		},
		encode: func(cur, old *P) (int32, []byte, bool) {
			if *f(cur) == *f(old) {
				return 0, nil, false
			}
			return 0, f(cur).Bytes(), true
		},
	}
}

// ToggleFlag resolves the operand of a toggle sprm: 0 clears, 1 sets,
// 0x80 keeps the base value and 0x81 inverts it. Any other operand clears.
func ToggleFlag(operand byte, base bool) bool {
	switch operand {
	case 0:
		return false
	case 1:
		return true
	case 0x80:
		return base
	case 0x81:
		return !base
	}
	return false
}

// Name returns the conventional name of sprm, such as "sprmCFBold", when
// the token belongs to a known operation.
func Name(sprm uint16) (string, bool) {
	switch Kind((sprm & kindMask) >> kindShift) {
	case KindCHP:
		return chpCatalog.name(sprm)
	case KindPAP:
		return papCatalog.name(sprm)
	case KindSEP:
		return sepCatalog.name(sprm)
	case KindTAP:
		return tapCatalog.name(sprm)
	}
	return "", false
}

// Compressible lists, in emission order, the sprms the compressor of kind
// can produce.
func Compressible(kind Kind) []uint16 {
	switch kind {
	case KindCHP:
		return chpCatalog.compressible()
	case KindPAP:
		return papCatalog.compressible()
	case KindSEP:
		return sepCatalog.compressible()
	case KindTAP:
		return tapCatalog.compressible()
	}
	return nil
}
