// Package sprm decodes and encodes grpprls: the packed lists of property
// modifiers (sprms) the Word binary format uses to describe character,
// paragraph, section and table formatting as changes against a base
// property set.
//
// Every sprm starts with a 16-bit little-endian token:
//
//	bits 0-8   ispmd  operation within the property kind
//	bit  9     fSpec  special handling
//	bits 10-12 sgc    property kind (1 PAP, 2 CHP, 3 PIC, 4 SEP, 5 TAP)
//	bits 13-15 spra   operand width class
//
// The operand follows the token. Its width comes from spra alone, through
// operandWidths, which is the only width table in the package: the
// decoder, the encoder and the catalogues all consult it.
package sprm

import (
	"encoding/binary"
	"fmt"
)

// Kind is the sgc field of a sprm token.
type Kind uint8

const (
	KindPAP Kind = 1
	KindCHP Kind = 2
	KindPIC Kind = 3
	KindSEP Kind = 4
	KindTAP Kind = 5
)

func (k Kind) String() string {
	switch k {
	case KindPAP:
		return "PAP"
	case KindCHP:
		return "CHP"
	case KindPIC:
		return "PIC"
	case KindSEP:
		return "SEP"
	case KindTAP:
		return "TAP"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

const (
	opMask    = 0x01ff
	specBit   = 0x0200
	kindMask  = 0x1c00
	kindShift = 10
	spraShift = 13
)

// Variable marks a width class whose operand is a length-prefixed payload.
const Variable = -1

// operandWidths maps spra to the operand width in bytes.
var operandWidths = [8]int{
	0: 1, // toggle
	1: 1,
	2: 2,
	3: 4,
	4: 2, // signed, distance
	5: 2, // signed, distance
	6: Variable,
	7: 3,
}

// Sprms whose variable operand does not use the plain 1-byte length.
const (
	sprmPChgTabs  uint16 = 0xC615
	sprmTDefTable uint16 = 0xD608
)

// OperandWidth returns the operand width of sprm: 1, 2, 3 or 4 bytes, or
// Variable.
func OperandWidth(sprm uint16) int {
	return operandWidths[sprm>>spraShift]
}

// Operation is one decoded sprm.
type Operation struct {
	sprm    uint16
	operand int32
	data    []byte
	size    int
}

// ParseOperation decodes the sprm starting at grpprl[offset]. It fails with
// ErrTruncated when the buffer ends before the operation does.
func ParseOperation(grpprl []byte, offset int) (Operation, error) {
	if offset < 0 || len(grpprl)-offset < 2 {
		return Operation{}, fmt.Errorf("token at offset %d: %w", offset, ErrTruncated)
	}
	sprm := binary.LittleEndian.Uint16(grpprl[offset:])
	rest := grpprl[offset+2:]

	width := OperandWidth(sprm)
	if width != Variable {
		if len(rest) < width {
			return Operation{}, fmt.Errorf("sprm 0x%04X at offset %d needs %d operand bytes, %d left: %w",
				sprm, offset, width, len(rest), ErrTruncated)
		}
		data := rest[:width:width]
		var operand int32
		switch width {
		case 1:
			operand = int32(data[0])
		case 2:
			operand = int32(binary.LittleEndian.Uint16(data))
		case 3:
			operand = int32(data[0]) | int32(data[1])<<8 | int32(data[2])<<16
		case 4:
			operand = int32(binary.LittleEndian.Uint32(data))
		}
		return Operation{sprm: sprm, operand: operand, data: data, size: 2 + width}, nil
	}

	hdr, n, err := payloadLength(sprm, rest)
	if err != nil {
		return Operation{}, fmt.Errorf("sprm 0x%04X at offset %d: %w", sprm, offset, err)
	}
	if len(rest) < hdr+n {
		return Operation{}, fmt.Errorf("sprm 0x%04X at offset %d needs %d payload bytes, %d left: %w",
			sprm, offset, n, len(rest)-hdr, ErrTruncated)
	}
	end := hdr + n
	return Operation{sprm: sprm, data: rest[hdr:end:end], size: 2 + end}, nil
}

// payloadLength returns the size of the length prefix and of the payload
// that follows it.
func payloadLength(sprm uint16, rest []byte) (hdr, n int, err error) {
	switch sprm {
	case sprmTDefTable:
		if len(rest) < 2 {
			return 0, 0, ErrTruncated
		}
		cb := int(binary.LittleEndian.Uint16(rest))
		if cb == 0 {
			return 0, 0, fmt.Errorf("zero table definition size: %w", ErrMalformed)
		}
		return 2, cb - 1, nil
	case sprmPChgTabs:
		if len(rest) < 1 {
			return 0, 0, ErrTruncated
		}
		if rest[0] != 255 {
			return 1, int(rest[0]), nil
		}
		// Oversized operand: the size follows from the tab counts.
		if len(rest) < 2 {
			return 0, 0, ErrTruncated
		}
		del := int(rest[1])
		addAt := 2 + 4*del
		if len(rest) <= addAt {
			return 0, 0, ErrTruncated
		}
		add := int(rest[addAt])
		return 1, 1 + 4*del + 1 + 3*add, nil
	}
	if len(rest) < 1 {
		return 0, 0, ErrTruncated
	}
	return 1, int(rest[0]), nil
}

// Sprm returns the full 16-bit token.
func (o Operation) Sprm() uint16 { return o.sprm }

// Op returns the 9-bit operation code.
func (o Operation) Op() uint16 { return o.sprm & opMask }

func (o Operation) Kind() Kind { return Kind((o.sprm & kindMask) >> kindShift) }

// SizeCode returns the spra width class.
func (o Operation) SizeCode() uint8 { return uint8(o.sprm >> spraShift) }

func (o Operation) Special() bool { return o.sprm&specBit != 0 }

// Operand returns the fixed-width operand, zero-extended. Variable sprms
// report 0; their data is in Data.
func (o Operation) Operand() int32 { return o.operand }

// Data returns the operand bytes, or the payload without its length
// prefix for variable sprms. The slice aliases the grpprl.
func (o Operation) Data() []byte { return o.data }

// Size is the encoded length of the operation including the token.
func (o Operation) Size() int { return o.size }

func (o Operation) String() string {
	if OperandWidth(o.sprm) == Variable {
		return fmt.Sprintf("sprm 0x%04X (%s op 0x%02X) payload % X", o.sprm, o.Kind(), o.Op(), o.data)
	}
	return fmt.Sprintf("sprm 0x%04X (%s op 0x%02X) operand 0x%X", o.sprm, o.Kind(), o.Op(), uint32(o.operand))
}

// need checks that a variable payload carries at least n bytes.
func (o Operation) need(n int) error {
	if len(o.data) < n {
		return fmt.Errorf("payload of sprm 0x%04X has %d bytes, need %d: %w", o.sprm, len(o.data), n, ErrMalformed)
	}
	return nil
}
