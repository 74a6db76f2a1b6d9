package sprm

import (
	"encoding/binary"
	"fmt"
)

type encoded struct {
	sprm    uint16
	operand int32
	payload []byte
}

// Builder accumulates operations and serializes them into a grpprl. Size
// tracks the encoded length as operations are added.
type Builder struct {
	ops  []encoded
	size int
}

// EncodedSize returns the number of bytes sprm occupies when encoded with
// payload (ignored for fixed-width sprms).
func EncodedSize(sprm uint16, payload []byte) int {
	width := OperandWidth(sprm)
	if width != Variable {
		return 2 + width
	}
	if sprm == sprmTDefTable {
		return 2 + 2 + len(payload)
	}
	return 2 + 1 + len(payload)
}

// Add appends one operation. Fixed-width sprms take operand, narrowed to
// their width; variable sprms take payload. It returns the encoded size of
// the operation.
func (b *Builder) Add(sprm uint16, operand int32, payload []byte) (int, error) {
	width := OperandWidth(sprm)
	switch {
	case width != Variable && payload != nil:
		return 0, fmt.Errorf("sprm 0x%04X takes a %d-byte operand, not a payload: %w", sprm, width, ErrMalformed)
	case width == Variable && !payloadFits(sprm, len(payload)):
		return 0, fmt.Errorf("sprm 0x%04X payload of %d bytes: %w", sprm, len(payload), ErrOperandTooLarge)
	}
	n := EncodedSize(sprm, payload)
	b.ops = append(b.ops, encoded{sprm: sprm, operand: operand, payload: payload})
	b.size += n
	return n, nil
}

func payloadFits(sprm uint16, n int) bool {
	switch sprm {
	case sprmTDefTable:
		return n < 0xffff
	case sprmPChgTabs:
		// Lengths from 255 up are written as 255 and recomputed from the
		// tab counts by the decoder.
		return true
	}
	return n <= 0xff
}

// AddFlag appends a sprm with a boolean 0/1 operand.
func (b *Builder) AddFlag(sprm uint16, v bool) (int, error) {
	return b.Add(sprm, boolOperand(v), nil)
}

// Size is the total encoded length of the operations added so far.
func (b *Builder) Size() int { return b.size }

// Len is the number of operations added so far.
func (b *Builder) Len() int { return len(b.ops) }

// Bytes serializes the operations, in the order they were added, into a
// single grpprl of exactly Size bytes.
func (b *Builder) Bytes() []byte {
	grpprl := make([]byte, b.size)
	i := 0
	for _, e := range b.ops {
		binary.LittleEndian.PutUint16(grpprl[i:], e.sprm)
		i += 2
		switch OperandWidth(e.sprm) {
		case 1:
			grpprl[i] = byte(e.operand)
			i++
		case 2:
			binary.LittleEndian.PutUint16(grpprl[i:], uint16(e.operand))
			i += 2
		case 3:
			grpprl[i] = byte(e.operand)
			grpprl[i+1] = byte(e.operand >> 8)
			grpprl[i+2] = byte(e.operand >> 16)
			i += 3
		case 4:
			binary.LittleEndian.PutUint32(grpprl[i:], uint32(e.operand))
			i += 4
		case Variable:
			switch {
			case e.sprm == sprmTDefTable:
				binary.LittleEndian.PutUint16(grpprl[i:], uint16(len(e.payload)+1))
				i += 2
			case len(e.payload) >= 0xff:
				grpprl[i] = 0xff
				i++
			default:
				grpprl[i] = byte(len(e.payload))
				i++
			}
			i += copy(grpprl[i:], e.payload)
		}
	}
	return grpprl
}

// Reset discards every operation.
func (b *Builder) Reset() {
	b.ops = b.ops[:0]
	b.size = 0
}

func boolOperand(v bool) int32 {
	if v {
		return 1
	}
	return 0
}
