package props

import "fmt"

// ColorAuto marks a color field as "automatic". It is never written to a
// grpprl because no color sprm can express it.
const ColorAuto int32 = -1

// cvAuto is the on-disk COLORREF for automatic color (fAuto set).
const cvAuto uint32 = 0xFF000000

// icoPalette maps the legacy 4-bit ico index to a COLORREF (0x00BBGGRR).
// Index 0 is automatic.
var icoPalette = [...]uint32{
	cvAuto,
	0x000000, // black
	0xFF0000, // blue
	0xFFFF00, // cyan
	0x00FF00, // green
	0xFF00FF, // magenta
	0x0000FF, // red
	0x00FFFF, // yellow
	0xFFFFFF, // white
	0x800000, // dark blue
	0x808000, // dark cyan
	0x008000, // dark green
	0x800080, // dark magenta
	0x000080, // dark red
	0x008080, // dark yellow
	0x808080, // dark gray
	0xC0C0C0, // light gray
}

// Colorref is a 32-bit COLORREF as stored in the file: red in the low byte,
// then green, then blue; the high byte flags automatic color.
type Colorref uint32

// ColorrefFromRGB builds a COLORREF from 8-bit channels.
func ColorrefFromRGB(r, g, b uint8) Colorref {
	return Colorref(uint32(r) | uint32(g)<<8 | uint32(b)<<16)
}

// ColorrefFromIco converts a legacy ico palette index. Out of range indexes
// map to automatic.
func ColorrefFromIco(ico uint8) Colorref {
	if int(ico) >= len(icoPalette) {
		return Colorref(cvAuto)
	}
	return Colorref(icoPalette[ico])
}

func (c Colorref) IsAuto() bool { return uint32(c)&0xFF000000 == cvAuto }

func (c Colorref) RGB() (r, g, b uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16)
}

// Ico returns the palette index matching c exactly, or 0 when the color
// has no palette entry.
func (c Colorref) Ico() uint8 {
	if c.IsAuto() {
		return 0
	}
	for i := 1; i < len(icoPalette); i++ {
		if icoPalette[i] == uint32(c) {
			return uint8(i)
		}
	}
	return 0
}

func (c Colorref) String() string {
	if c.IsAuto() {
		return "auto"
	}
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
