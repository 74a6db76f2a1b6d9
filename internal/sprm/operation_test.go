package sprm

import (
	"bytes"
	"errors"
	"testing"
)

func TestOperandWidth(t *testing.T) {
	tests := []struct {
		sprm uint16
		want int
	}{
		{0x0835, 1},
		{0x2A42, 1},
		{0x4A43, 2},
		{0x6870, 4},
		{0x8840, 2},
		{0xA413, 2},
		{0xCA71, Variable},
		{0xEA3F, 3},
	}
	for _, tt := range tests {
		if got := OperandWidth(tt.sprm); got != tt.want {
			t.Errorf("OperandWidth(0x%04X) = %d, want %d", tt.sprm, got, tt.want)
		}
	}
}

func TestParseOperationFixed(t *testing.T) {
	tests := []struct {
		name    string
		grpprl  []byte
		sprm    uint16
		operand int32
		size    int
	}{
		{"toggle", []byte{0x35, 0x08, 0x81}, 0x0835, 0x81, 3},
		{"word", []byte{0x43, 0x4A, 0x18, 0x00}, 0x4A43, 24, 4},
		{"signed word stays zero-extended", []byte{0x40, 0x88, 0xFE, 0xFF}, 0x8840, 0xFFFE, 4},
		{"dword", []byte{0x70, 0x68, 0x11, 0x22, 0x33, 0x00}, 0x6870, 0x00332211, 6},
		{"three bytes", []byte{0x3F, 0xEA, 0x18, 0x02, 0x80}, 0xEA3F, 0x800218, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := ParseOperation(tt.grpprl, 0)
			if err != nil {
				t.Fatalf("ParseOperation: %v", err)
			}
			if op.Sprm() != tt.sprm {
				t.Errorf("Sprm = 0x%04X, want 0x%04X", op.Sprm(), tt.sprm)
			}
			if op.Operand() != tt.operand {
				t.Errorf("Operand = 0x%X, want 0x%X", op.Operand(), tt.operand)
			}
			if op.Size() != tt.size {
				t.Errorf("Size = %d, want %d", op.Size(), tt.size)
			}
		})
	}
}

func TestOperationFields(t *testing.T) {
	op, err := ParseOperation([]byte{0x55, 0x08, 0x01}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if op.Op() != 0x55 {
		t.Errorf("Op = 0x%X, want 0x55", op.Op())
	}
	if op.Kind() != KindCHP {
		t.Errorf("Kind = %s, want CHP", op.Kind())
	}
	if op.SizeCode() != 0 {
		t.Errorf("SizeCode = %d, want 0", op.SizeCode())
	}
	if op.Special() {
		t.Error("Special = true for 0x0855")
	}

	op, err = ParseOperation([]byte{0x00, 0x02, 0x00}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !op.Special() {
		t.Error("Special = false for 0x0200")
	}
}

func TestParseOperationVariable(t *testing.T) {
	grpprl := []byte{0x71, 0xCA, 0x03, 0xAA, 0xBB, 0xCC, 0x35, 0x08, 0x01}
	op, err := ParseOperation(grpprl, 0)
	if err != nil {
		t.Fatal(err)
	}
	if op.Size() != 6 {
		t.Errorf("Size = %d, want 6", op.Size())
	}
	if !bytes.Equal(op.Data(), []byte{0xAA, 0xBB, 0xCC}) {
		t.Errorf("Data = % X", op.Data())
	}
	if op.Operand() != 0 {
		t.Errorf("Operand = %d for a variable sprm", op.Operand())
	}

	next, err := ParseOperation(grpprl, op.Size())
	if err != nil {
		t.Fatal(err)
	}
	if next.Sprm() != 0x0835 {
		t.Errorf("second sprm = 0x%04X", next.Sprm())
	}
}

func TestParseOperationTableDefinition(t *testing.T) {
	// cb counts itself minus one: 4 means a 3-byte payload.
	grpprl := []byte{0x08, 0xD6, 0x04, 0x00, 0x01, 0x02, 0x03}
	op, err := ParseOperation(grpprl, 0)
	if err != nil {
		t.Fatal(err)
	}
	if op.Size() != 7 {
		t.Errorf("Size = %d, want 7", op.Size())
	}
	if !bytes.Equal(op.Data(), []byte{0x01, 0x02, 0x03}) {
		t.Errorf("Data = % X", op.Data())
	}

	_, err = ParseOperation([]byte{0x08, 0xD6, 0x00, 0x00}, 0)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("zero cb: err = %v, want ErrMalformed", err)
	}
}

func TestParseOperationOversizedTabs(t *testing.T) {
	// Length byte 255: 1 deletion (position + tolerance) and 2 additions.
	payload := []byte{
		0x01,
		0x10, 0x00,
		0x05, 0x00,
		0x02,
		0x20, 0x00, 0x30, 0x00,
		0x01, 0x02,
	}
	grpprl := append([]byte{0x15, 0xC6, 0xFF}, payload...)
	op, err := ParseOperation(grpprl, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := 1 + 4*1 + 1 + 3*2
	if len(op.Data()) != want {
		t.Errorf("payload length = %d, want %d", len(op.Data()), want)
	}
	if op.Size() != 3+want {
		t.Errorf("Size = %d, want %d", op.Size(), 3+want)
	}
}

func TestParseOperationTruncated(t *testing.T) {
	tests := []struct {
		name   string
		grpprl []byte
	}{
		{"one byte", []byte{0x35}},
		{"missing operand", []byte{0x43, 0x4A, 0x18}},
		{"missing length", []byte{0x71, 0xCA}},
		{"short payload", []byte{0x71, 0xCA, 0x0A, 0x00}},
		{"short table size", []byte{0x08, 0xD6, 0x04}},
		{"short tab counts", []byte{0x15, 0xC6, 0xFF, 0x02, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOperation(tt.grpprl, 0)
			if !errors.Is(err, ErrTruncated) {
				t.Errorf("err = %v, want ErrTruncated", err)
			}
		})
	}
}

func TestIteratorStopsAfterError(t *testing.T) {
	it := NewIterator([]byte{0x00, 0x00}, 0)
	if !it.HasNext() {
		t.Fatal("HasNext = false with two bytes left")
	}
	if _, err := it.Next(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("Next err = %v, want ErrTruncated", err)
	}
	if it.HasNext() {
		t.Error("HasNext = true after a decode error")
	}
	if !errors.Is(it.Err(), ErrTruncated) {
		t.Errorf("Err = %v", it.Err())
	}
	if _, err := it.Next(); err == nil {
		t.Error("Next succeeded after a decode error")
	}
}

func TestIteratorWalk(t *testing.T) {
	grpprl := []byte{
		0xFF, 0xFF, // skipped prefix
		0x35, 0x08, 0x01,
		0x43, 0x4A, 0x18, 0x00,
		0x71, 0xCA, 0x00,
		0x99, // trailing byte, too short for a token
	}
	it := NewIterator(grpprl, 2)
	var sprms []uint16
	for it.HasNext() {
		op, err := it.Next()
		if err != nil {
			t.Fatal(err)
		}
		sprms = append(sprms, op.Sprm())
	}
	want := []uint16{0x0835, 0x4A43, 0xCA71}
	if len(sprms) != len(want) {
		t.Fatalf("got %d operations, want %d", len(sprms), len(want))
	}
	for i := range want {
		if sprms[i] != want[i] {
			t.Errorf("op %d = 0x%04X, want 0x%04X", i, sprms[i], want[i])
		}
	}
	if it.Offset() != len(grpprl)-1 {
		t.Errorf("Offset = %d, want %d", it.Offset(), len(grpprl)-1)
	}
}

func TestIteratorEmpty(t *testing.T) {
	for _, grpprl := range [][]byte{nil, {}, {0x35}} {
		if NewIterator(grpprl, 0).HasNext() {
			t.Errorf("HasNext = true for % X", grpprl)
		}
	}
	if NewIterator([]byte{0x35, 0x08, 0x01}, 3).HasNext() {
		t.Error("HasNext = true at the end")
	}
}

func TestOperationsTotality(t *testing.T) {
	// Every prefix of a valid grpprl either decodes or fails with
	// ErrTruncated; none panics.
	grpprl := []byte{
		0x35, 0x08, 0x01,
		0x70, 0x68, 0x11, 0x22, 0x33, 0x00,
		0x08, 0xD6, 0x04, 0x00, 0x01, 0x02, 0x03,
		0x3F, 0xEA, 0x18, 0x02, 0x80,
	}
	for n := 0; n <= len(grpprl); n++ {
		_, err := Operations(grpprl[:n], 0)
		if err != nil && !errors.Is(err, ErrTruncated) {
			t.Errorf("prefix %d: err = %v", n, err)
		}
	}
	ops, err := Operations(grpprl, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 4 {
		t.Errorf("got %d operations, want 4", len(ops))
	}
}
