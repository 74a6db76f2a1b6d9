package props

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Encoded sizes of the fixed-layout substructures.
const (
	Brc80Size = 4
	BrcSize   = 8
	Shd80Size = 2
	ShdSize   = 10
	DttmSize  = 4
	LspdSize  = 4
	DcsSize   = 2
	TlpSize   = 4
	TcSize    = 20
)

// BorderCode is a Brc80 border: line width in eighths of a point, border
// type, ico color, spacing in points and the shadow/frame flags.
type BorderCode struct {
	LineWidth uint8
	Type      uint8
	Ico       uint8
	Space     uint8
	Shadow    bool
	Frame     bool
}

// ReadBorderCode decodes a 4-byte Brc80.
func ReadBorderCode(b []byte) BorderCode {
	return BorderCode{
		LineWidth: b[0],
		Type:      b[1],
		Ico:       b[2],
		Space:     b[3] & 0x1f,
		Shadow:    b[3]&0x20 != 0,
		Frame:     b[3]&0x40 != 0,
	}
}

// ReadBorderCodeBrc decodes an 8-byte BRC. The COLORREF is folded onto the
// ico palette; colors without an exact palette entry become automatic.
func ReadBorderCodeBrc(b []byte) BorderCode {
	cv := Colorref(binary.LittleEndian.Uint32(b[0:4]))
	return BorderCode{
		LineWidth: b[4],
		Type:      b[5],
		Ico:       cv.Ico(),
		Space:     b[6] & 0x1f,
		Shadow:    b[6]&0x20 != 0,
		Frame:     b[6]&0x40 != 0,
	}
}

// Put writes the Brc80 form of c into b[0:4].
func (c BorderCode) Put(b []byte) {
	b[0] = c.LineWidth
	b[1] = c.Type
	b[2] = c.Ico
	b[3] = c.Space & 0x1f
	if c.Shadow {
		b[3] |= 0x20
	}
	if c.Frame {
		b[3] |= 0x40
	}
}

// Int32 returns the Brc80 as the little-endian integer operand used by
// 4-byte border sprms.
func (c BorderCode) Int32() int32 {
	var b [Brc80Size]byte
	c.Put(b[:])
	return int32(binary.LittleEndian.Uint32(b[:]))
}

func (c BorderCode) IsEmpty() bool { return c == BorderCode{} }

func (c BorderCode) String() string {
	if c.IsEmpty() {
		return "none"
	}
	return fmt.Sprintf("brc(type=%d w=%d ico=%d sp=%d)", c.Type, c.LineWidth, c.Ico, c.Space)
}

// ShadingDescriptor is an SHD: foreground and background colors and the
// shading pattern.
type ShadingDescriptor struct {
	CvFore Colorref
	CvBack Colorref
	Ipat   uint16
}

// ReadShd80 decodes a 2-byte Shd80 (icoFore:5, icoBack:5, ipat:6).
func ReadShd80(v uint16) ShadingDescriptor {
	return ShadingDescriptor{
		CvFore: ColorrefFromIco(uint8(v & 0x1f)),
		CvBack: ColorrefFromIco(uint8((v >> 5) & 0x1f)),
		Ipat:   v >> 10,
	}
}

// ReadShadingDescriptor decodes a 10-byte SHD.
func ReadShadingDescriptor(b []byte) ShadingDescriptor {
	return ShadingDescriptor{
		CvFore: Colorref(binary.LittleEndian.Uint32(b[0:4])),
		CvBack: Colorref(binary.LittleEndian.Uint32(b[4:8])),
		Ipat:   binary.LittleEndian.Uint16(b[8:10]),
	}
}

func (s ShadingDescriptor) Bytes() []byte {
	b := make([]byte, ShdSize)
	binary.LittleEndian.PutUint32(b[0:4], uint32(s.CvFore))
	binary.LittleEndian.PutUint32(b[4:8], uint32(s.CvBack))
	binary.LittleEndian.PutUint16(b[8:10], s.Ipat)
	return b
}

func (s ShadingDescriptor) IsEmpty() bool { return s == ShadingDescriptor{} }

// DateAndTime is a DTTM revision timestamp. Year counts from 1900, Month
// is 1-based and Weekday is 0 for Sunday.
type DateAndTime struct {
	Minute  uint8
	Hour    uint8
	Day     uint8
	Month   uint8
	Year    uint16
	Weekday uint8
}

// ReadDateAndTime decodes a DTTM from its 32-bit little-endian form.
func ReadDateAndTime(v uint32) DateAndTime {
	return DateAndTime{
		Minute:  uint8(v & 0x3f),
		Hour:    uint8((v >> 6) & 0x1f),
		Day:     uint8((v >> 11) & 0x1f),
		Month:   uint8((v >> 16) & 0x0f),
		Year:    uint16((v >> 20) & 0x1ff),
		Weekday: uint8((v >> 29) & 0x07),
	}
}

// DateAndTimeOf converts t (at minute precision) to a DTTM.
func DateAndTimeOf(t time.Time) DateAndTime {
	return DateAndTime{
		Minute:  uint8(t.Minute()),
		Hour:    uint8(t.Hour()),
		Day:     uint8(t.Day()),
		Month:   uint8(t.Month()),
		Year:    uint16(t.Year() - 1900),
		Weekday: uint8(t.Weekday()),
	}
}

func (d DateAndTime) Uint32() uint32 {
	return uint32(d.Minute&0x3f) |
		uint32(d.Hour&0x1f)<<6 |
		uint32(d.Day&0x1f)<<11 |
		uint32(d.Month&0x0f)<<16 |
		uint32(d.Year&0x1ff)<<20 |
		uint32(d.Weekday&0x07)<<29
}

func (d DateAndTime) IsEmpty() bool { return d == DateAndTime{} }

// Time returns the timestamp in UTC. An empty DTTM yields the zero time.
func (d DateAndTime) Time() time.Time {
	if d.IsEmpty() {
		return time.Time{}
	}
	return time.Date(int(d.Year)+1900, time.Month(d.Month), int(d.Day), int(d.Hour), int(d.Minute), 0, 0, time.UTC)
}

// LineSpacingDescriptor is an LSPD. With Multiple set, Line is in 240ths
// of a line; otherwise it is in twips (negative means exact).
type LineSpacingDescriptor struct {
	Line     int16
	Multiple bool
}

// DefaultLineSpacing is single spacing.
var DefaultLineSpacing = LineSpacingDescriptor{Line: 240, Multiple: true}

func ReadLineSpacingDescriptor(v uint32) LineSpacingDescriptor {
	return LineSpacingDescriptor{
		Line:     int16(v),
		Multiple: uint16(v>>16) != 0,
	}
}

func (l LineSpacingDescriptor) Uint32() uint32 {
	v := uint32(uint16(l.Line))
	if l.Multiple {
		v |= 1 << 16
	}
	return v
}

// DropCapSpecifier is a DCS: drop cap type and height in lines.
type DropCapSpecifier struct {
	Type  uint8
	Lines uint8
}

func ReadDropCapSpecifier(v uint16) DropCapSpecifier {
	return DropCapSpecifier{Type: uint8(v & 0x07), Lines: uint8((v >> 3) & 0x1f)}
}

func (d DropCapSpecifier) Uint16() uint16 {
	return uint16(d.Type&0x07) | uint16(d.Lines&0x1f)<<3
}

// TabDescriptor is a TBD: alignment (jc) and leader (tlc).
type TabDescriptor struct {
	Jc     uint8
	Leader uint8
}

func ReadTabDescriptor(b byte) TabDescriptor {
	return TabDescriptor{Jc: b & 0x07, Leader: (b >> 3) & 0x07}
}

func (t TabDescriptor) Byte() byte { return t.Jc&0x07 | (t.Leader&0x07)<<3 }

// TableAutoformatLookSpecifier is a TLP: the autoformat index and the
// flags selecting which parts of the format apply.
type TableAutoformatLookSpecifier struct {
	Itl    int16
	Grfatl uint16
}

func ReadTableAutoformatLookSpecifier(v uint32) TableAutoformatLookSpecifier {
	return TableAutoformatLookSpecifier{Itl: int16(v), Grfatl: uint16(v >> 16)}
}

func (t TableAutoformatLookSpecifier) Uint32() uint32 {
	return uint32(uint16(t.Itl)) | uint32(t.Grfatl)<<16
}

func (t TableAutoformatLookSpecifier) IsEmpty() bool { return t == TableAutoformatLookSpecifier{} }

// Cell padding sides, as the bits of a grfbrc mask.
const (
	SideTop    = 0x01
	SideLeft   = 0x02
	SideBottom = 0x04
	SideRight  = 0x08
)

// TableCellDescriptor is a TC80: cell flags, preferred width and the four
// cell borders. Padding is not part of the on-disk TC80; it is carried by
// cell padding sprms.
type TableCellDescriptor struct {
	Flags     uint16
	Width     uint16
	BrcTop    BorderCode
	BrcLeft   BorderCode
	BrcBottom BorderCode
	BrcRight  BorderCode

	PaddingTop    uint16
	PaddingLeft   uint16
	PaddingBottom uint16
	PaddingRight  uint16
}

// TC80 flag bits.
const (
	TcFirstMerged = 0x0001
	TcMerged      = 0x0002
	TcVertical    = 0x0004
	TcBackward    = 0x0008
	TcRotateFont  = 0x0010
	TcVertMerge   = 0x0020
	TcVertRestart = 0x0040
	TcFitText     = 0x1000
	TcNoWrap      = 0x2000
)

func ReadTableCellDescriptor(b []byte) TableCellDescriptor {
	return TableCellDescriptor{
		Flags:     binary.LittleEndian.Uint16(b[0:2]),
		Width:     binary.LittleEndian.Uint16(b[2:4]),
		BrcTop:    ReadBorderCode(b[4:8]),
		BrcLeft:   ReadBorderCode(b[8:12]),
		BrcBottom: ReadBorderCode(b[12:16]),
		BrcRight:  ReadBorderCode(b[16:20]),
	}
}

// Put writes the TC80 form of c into b[0:20].
func (c TableCellDescriptor) Put(b []byte) {
	binary.LittleEndian.PutUint16(b[0:2], c.Flags)
	binary.LittleEndian.PutUint16(b[2:4], c.Width)
	c.BrcTop.Put(b[4:8])
	c.BrcLeft.Put(b[8:12])
	c.BrcBottom.Put(b[12:16])
	c.BrcRight.Put(b[16:20])
}

// VertAlign returns the vertical alignment (0 top, 1 center, 2 bottom).
func (c TableCellDescriptor) VertAlign() uint8 { return uint8((c.Flags >> 7) & 0x03) }

// WidthUnit returns the ftsWidth unit code of Width.
func (c TableCellDescriptor) WidthUnit() uint8 { return uint8((c.Flags >> 9) & 0x07) }

// SetPadding sets the padding of every side named in sides.
func (c *TableCellDescriptor) SetPadding(sides uint8, v uint16) {
	if sides&SideTop != 0 {
		c.PaddingTop = v
	}
	if sides&SideLeft != 0 {
		c.PaddingLeft = v
	}
	if sides&SideBottom != 0 {
		c.PaddingBottom = v
	}
	if sides&SideRight != 0 {
		c.PaddingRight = v
	}
}
