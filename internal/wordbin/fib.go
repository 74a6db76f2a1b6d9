package wordbin

import (
	"encoding/binary"
	"fmt"
	"io"
)

const wIdentWord = 0xA5EC

// FibFlags holds the flag word at offset 0x0A of the FIB.
type FibFlags struct {
	Raw uint16
}

func (f FibFlags) Template() bool   { return f.Raw&0x0001 != 0 }
func (f FibFlags) Glossary() bool   { return f.Raw&0x0002 != 0 }
func (f FibFlags) Complex() bool    { return f.Raw&0x0004 != 0 }
func (f FibFlags) HasPicture() bool { return f.Raw&0x0008 != 0 }
func (f FibFlags) Encrypted() bool  { return f.Raw&0x0100 != 0 }
func (f FibFlags) Table1() bool     { return f.Raw&0x0200 != 0 }
func (f FibFlags) ExtChar() bool    { return f.Raw&0x1000 != 0 }
func (f FibFlags) FarEast() bool    { return f.Raw&0x4000 != 0 }
func (f FibFlags) Obfuscated() bool { return f.Raw&0x8000 != 0 }

// FcLcb locates a structure in the table stream.
type FcLcb struct {
	Fc  uint32
	Lcb uint32
}

func (p FcLcb) Empty() bool { return p.Lcb == 0 }

// fibBase mirrors the fixed 32-byte head of the FIB.
type fibBase struct {
	WIdent    uint16
	NFib      uint16
	Unused    uint16
	Lid       uint16
	PnNext    uint16
	Flags     uint16
	NFibBack  uint16
	LKey      uint32
	Envr      uint8
	Flags2    uint8
	Reserved3 uint16
	Reserved4 uint16
	Reserved5 uint32
	Reserved6 uint32
}

// Indexes into FibRgFcLcb97.
const (
	fcLcbStshf       = 1
	fcLcbPlcfSed     = 6
	fcLcbPlcfBteChpx = 12
	fcLcbPlcfBtePapx = 13
	fcLcbClx         = 33
)

// Index of ccpText in FibRgLw97.
const lwCcpText = 3

// Fib is the part of the File Information Block this package uses.
type Fib struct {
	NFib    uint16
	Lid     uint16
	Flags   FibFlags
	CcpText int32

	Stshf       FcLcb
	PlcfSed     FcLcb
	PlcfBteChpx FcLcb
	PlcfBtePapx FcLcb
	Clx         FcLcb
}

// TableStream returns the name of the table stream the FIB selects.
func (f Fib) TableStream() string {
	if f.Flags.Table1() {
		return "1Table"
	}
	return "0Table"
}

func readFib(r io.Reader) (Fib, error) {
	var fib Fib

	var base fibBase
	if err := binary.Read(r, binary.LittleEndian, &base); err != nil {
		return fib, fmt.Errorf("read FibBase: %w", err)
	}
	if base.WIdent != wIdentWord {
		return fib, fmt.Errorf("unexpected wIdent 0x%04X: %w", base.WIdent, ErrNotWordDocument)
	}
	fib.NFib = base.NFib
	fib.Lid = base.Lid
	fib.Flags = FibFlags{Raw: base.Flags}

	var csw uint16
	if err := binary.Read(r, binary.LittleEndian, &csw); err != nil {
		return fib, fmt.Errorf("read csw: %w", err)
	}
	if _, err := io.CopyN(io.Discard, r, int64(csw)*2); err != nil {
		return fib, fmt.Errorf("read FibRgW97: %w", err)
	}

	var cslw uint16
	if err := binary.Read(r, binary.LittleEndian, &cslw); err != nil {
		return fib, fmt.Errorf("read cslw: %w", err)
	}
	rgLw := make([]int32, cslw)
	if err := binary.Read(r, binary.LittleEndian, rgLw); err != nil {
		return fib, fmt.Errorf("read FibRgLw97: %w", err)
	}
	if len(rgLw) > lwCcpText {
		fib.CcpText = rgLw[lwCcpText]
	}

	var cbRgFcLcb uint16
	if err := binary.Read(r, binary.LittleEndian, &cbRgFcLcb); err != nil {
		return fib, fmt.Errorf("read cbRgFcLcb: %w", err)
	}
	rgFcLcb := make([]FcLcb, cbRgFcLcb)
	if err := binary.Read(r, binary.LittleEndian, rgFcLcb); err != nil {
		return fib, fmt.Errorf("read FibRgFcLcb: %w", err)
	}
	if len(rgFcLcb) <= fcLcbPlcfBtePapx {
		return fib, fmt.Errorf("FibRgFcLcb has %d entries: %w", len(rgFcLcb), ErrCorrupt)
	}
	fib.Stshf = rgFcLcb[fcLcbStshf]
	fib.PlcfSed = rgFcLcb[fcLcbPlcfSed]
	fib.PlcfBteChpx = rgFcLcb[fcLcbPlcfBteChpx]
	fib.PlcfBtePapx = rgFcLcb[fcLcbPlcfBtePapx]
	if len(rgFcLcb) > fcLcbClx {
		fib.Clx = rgFcLcb[fcLcbClx]
	}
	return fib, nil
}
