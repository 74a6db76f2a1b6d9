package sprm

import (
	"encoding/binary"
	"slices"

	"github.com/hanpama/msdoc/internal/props"
)

type tap = props.TableProperties

const (
	sprmTDxaLeft        uint16 = 0x9601
	sprmTDxaGapHalf     uint16 = 0x9602
	sprmTTableBorders80 uint16 = 0xD605
	sprmTDefTableShd80  uint16 = 0xD609
	sprmTTlp            uint16 = 0x740A
	sprmTFBiDi          uint16 = 0x560B
	sprmTTableBorders   uint16 = 0xD613
	sprmTSetBrc80       uint16 = 0xD620
	sprmTInsert         uint16 = 0x7621
	sprmTDelete         uint16 = 0x5622
	sprmTDxaCol         uint16 = 0x7623
	sprmTMerge          uint16 = 0x5624
	sprmTSplit          uint16 = 0x5625
	sprmTVertMerge      uint16 = 0xD62B
	sprmTVertAlign      uint16 = 0xD62C
	sprmTCellPadding    uint16 = 0xD632
	sprmTFCantSplit     uint16 = 0x3644
	sprmTFCantSplit90   uint16 = 0x3403
	sprmTTableHeader    uint16 = 0x3404
	sprmTDyaRowHeight   uint16 = 0x9407
	sprmTJc90           uint16 = 0x5400
	sprmTDefTable10     uint16 = 0xD606
	sprmTHTMLProps      uint16 = 0x740C
)

// Number of borders in sprmTTableBorders and sprmTTableBorders80.
const tableBordersCount = 6

var tapCatalog = newCatalog(KindTAP, (*tap).Clone, []entry[tap]{
	value(sprmTJc90, "sprmTJc90", func(t *tap) *int16 { return &t.Jc }),
	{sprm: sprmTDxaLeft, name: "sprmTDxaLeft", want: 2, apply: applyTDxaLeft},
	{
		sprm: sprmTDxaGapHalf, name: "sprmTDxaGapHalf", want: 2,
		apply: func(dst, _ *tap, op Operation) error {
			gap := int16(op.Operand())
			if len(dst.RgdxaCenter) > 0 {
				dst.RgdxaCenter[0] += dst.DxaGapHalf - gap
			}
			dst.DxaGapHalf = gap
			return nil
		},
		encode: func(cur, old *tap) (int32, []byte, bool) {
			return int32(cur.DxaGapHalf), nil, cur.DxaGapHalf != old.DxaGapHalf
		},
	},
	flag(sprmTFCantSplit90, "sprmTFCantSplit90", func(t *tap) *bool { return &t.CantSplit }),
	flag(sprmTTableHeader, "sprmTTableHeader", func(t *tap) *bool { return &t.TableHeader }),
	{
		sprm: sprmTTableBorders80, name: "sprmTTableBorders80",
		apply: func(dst, _ *tap, op Operation) error {
			if err := op.need(tableBordersCount * props.Brc80Size); err != nil {
				return err
			}
			d := op.Data()
			for i, b := range dst.Borders() {
				*b = props.ReadBorderCode(d[i*props.Brc80Size:])
			}
			return nil
		},
		encode: func(cur, old *tap) (int32, []byte, bool) {
			now, was := cur.Borders(), old.Borders()
			changed := false
			for i := range now {
				changed = changed || *now[i] != *was[i]
			}
			if !changed {
				return 0, nil, false
			}
			b := make([]byte, tableBordersCount*props.Brc80Size)
			for i, border := range now {
				border.Put(b[i*props.Brc80Size:])
			}
			return 0, b, true
		},
	},
	ignore[tap](sprmTDefTable10, "sprmTDefTable10"),
	value(sprmTDyaRowHeight, "sprmTDyaRowHeight", func(t *tap) *int16 { return &t.DyaRowHeight }),
	{sprm: sprmTDefTable, name: "sprmTDefTable", apply: applyTDefTable, encode: encodeTDefTable},
	{
		sprm: sprmTDefTableShd80, name: "sprmTDefTableShd80",
		apply: func(dst, _ *tap, op Operation) error {
			d := op.Data()
			shd := make([]props.ShadingDescriptor, len(d)/props.Shd80Size)
			for i := range shd {
				shd[i] = props.ReadShd80(binary.LittleEndian.Uint16(d[i*props.Shd80Size:]))
			}
			dst.CellShading = shd
			return nil
		},
	},
	{
		sprm: sprmTTlp, name: "sprmTTlp", want: props.TlpSize,
		apply: func(dst, _ *tap, op Operation) error {
			dst.Tlp = props.ReadTableAutoformatLookSpecifier(uint32(op.Operand()))
			return nil
		},
		encode: func(cur, old *tap) (int32, []byte, bool) {
			return int32(cur.Tlp.Uint32()), nil, cur.Tlp != old.Tlp
		},
	},
	{
		sprm: sprmTFBiDi, name: "sprmTFBiDi", want: 2,
		apply: func(dst, _ *tap, op Operation) error {
			dst.BiDi = op.Operand() != 0
			return nil
		},
		encode: func(cur, old *tap) (int32, []byte, bool) {
			return boolOperand(cur.BiDi), nil, cur.BiDi != old.BiDi
		},
	},
	ignore[tap](sprmTHTMLProps, "sprmTHTMLProps"),
	{
		sprm: sprmTTableBorders, name: "sprmTTableBorders",
		apply: func(dst, _ *tap, op Operation) error {
			if err := op.need(tableBordersCount * props.BrcSize); err != nil {
				return err
			}
			d := op.Data()
			for i, b := range dst.Borders() {
				*b = props.ReadBorderCodeBrc(d[i*props.BrcSize:])
			}
			return nil
		},
	},
	{sprm: sprmTSetBrc80, name: "sprmTSetBrc80", apply: applyTSetBrc80},
	{sprm: sprmTInsert, name: "sprmTInsert", want: 4, apply: applyTInsert},
	{sprm: sprmTDelete, name: "sprmTDelete", want: 2, apply: applyTDelete},
	{sprm: sprmTDxaCol, name: "sprmTDxaCol", want: 4, apply: applyTDxaCol},
	{
		sprm: sprmTMerge, name: "sprmTMerge", want: 2,
		apply: func(dst, _ *tap, op Operation) error {
			d := op.Data()
			first, lim := dst.CellRange(int(d[0]), int(d[1]))
			for i := first; i < lim; i++ {
				if i == first {
					dst.Rgtc[i].Flags |= props.TcFirstMerged
				} else {
					dst.Rgtc[i].Flags |= props.TcMerged
				}
			}
			return nil
		},
	},
	{
		sprm: sprmTSplit, name: "sprmTSplit", want: 2,
		apply: func(dst, _ *tap, op Operation) error {
			d := op.Data()
			first, lim := dst.CellRange(int(d[0]), int(d[1]))
			for i := first; i < lim; i++ {
				dst.Rgtc[i].Flags &^= props.TcFirstMerged | props.TcMerged
			}
			return nil
		},
	},
	{
		sprm: sprmTVertMerge, name: "sprmTVertMerge",
		apply: func(dst, _ *tap, op Operation) error {
			if err := op.need(2); err != nil {
				return err
			}
			d := op.Data()
			first, lim := dst.CellRange(int(d[0]), int(d[0])+1)
			for i := first; i < lim; i++ {
				tc := &dst.Rgtc[i]
				tc.Flags &^= props.TcVertMerge | props.TcVertRestart
				switch d[1] {
				case 1:
					tc.Flags |= props.TcVertMerge
				case 3:
					tc.Flags |= props.TcVertMerge | props.TcVertRestart
				}
			}
			return nil
		},
	},
	{
		sprm: sprmTVertAlign, name: "sprmTVertAlign",
		apply: func(dst, _ *tap, op Operation) error {
			if err := op.need(3); err != nil {
				return err
			}
			d := op.Data()
			first, lim := dst.CellRange(int(d[0]), int(d[1]))
			for i := first; i < lim; i++ {
				tc := &dst.Rgtc[i]
				tc.Flags = tc.Flags&^0x0180 | uint16(d[2]&0x03)<<7
			}
			return nil
		},
	},
	{
		sprm: sprmTCellPadding, name: "sprmTCellPadding",
		apply: func(dst, _ *tap, op Operation) error {
			if err := op.need(6); err != nil {
				return err
			}
			d := op.Data()
			first, lim := dst.CellRange(int(d[0]), int(d[1]))
			v := binary.LittleEndian.Uint16(d[4:6])
			for i := first; i < lim; i++ {
				dst.Rgtc[i].SetPadding(d[2], v)
			}
			return nil
		},
	},
	decodeOnly(flag(sprmTFCantSplit, "sprmTFCantSplit", func(t *tap) *bool { return &t.CantSplit })),
})

// centers returns the cell boundaries of t, with at least the left edge.
func centers(t *tap) []int16 {
	if len(t.RgdxaCenter) == 0 {
		return []int16{0}
	}
	return t.RgdxaCenter
}

// applyTDxaLeft moves the whole row so the left edge of the first cell's
// text sits at the operand.
func applyTDxaLeft(dst, _ *tap, op Operation) error {
	c := centers(dst)
	adjust := int16(op.Operand()) - (c[0] + dst.DxaGapHalf)
	for i := range c {
		c[i] += adjust
	}
	dst.RgdxaCenter = c
	return nil
}

// applyTDefTable replaces the row geometry: itcMac, itcMac+1 boundaries and
// up to itcMac TC80s. Cells without a TC80 get an empty descriptor.
func applyTDefTable(dst, _ *tap, op Operation) error {
	if err := op.need(1); err != nil {
		return err
	}
	d := op.Data()
	n := int(d[0])
	tcAt := 1 + 2*(n+1)
	if err := op.need(tcAt); err != nil {
		return err
	}
	dst.ItcMac = int16(n)
	dst.RgdxaCenter = make([]int16, n+1)
	for i := range dst.RgdxaCenter {
		dst.RgdxaCenter[i] = int16(binary.LittleEndian.Uint16(d[1+2*i:]))
	}
	dst.Rgtc = make([]props.TableCellDescriptor, n)
	for i := range dst.Rgtc {
		at := tcAt + i*props.TcSize
		if at+props.TcSize > len(d) {
			break
		}
		dst.Rgtc[i] = props.ReadTableCellDescriptor(d[at:])
	}
	return nil
}

// encodeTDefTable emits the row geometry when it changed. A changed gap
// also shifts the first boundary on decode, so the geometry follows it.
func encodeTDefTable(cur, old *tap) (int32, []byte, bool) {
	n := int(cur.ItcMac)
	if n <= 0 || n > 0xff || len(cur.RgdxaCenter) != n+1 || len(cur.Rgtc) != n {
		return 0, nil, false
	}
	if cur.ItcMac == old.ItcMac && cur.DxaGapHalf == old.DxaGapHalf &&
		slices.Equal(cur.RgdxaCenter, old.RgdxaCenter) && slices.Equal(cur.Rgtc, old.Rgtc) {
		return 0, nil, false
	}
	tcAt := 1 + 2*(n+1)
	b := make([]byte, tcAt+n*props.TcSize)
	b[0] = byte(n)
	for i, c := range cur.RgdxaCenter {
		binary.LittleEndian.PutUint16(b[1+2*i:], uint16(c))
	}
	for i, tc := range cur.Rgtc {
		tc.Put(b[tcAt+i*props.TcSize:])
	}
	return 0, b, true
}

// applyTSetBrc80 sets the borders named by a side mask on a cell range:
// itcFirst, itcLim, sides, Brc80.
func applyTSetBrc80(dst, _ *tap, op Operation) error {
	if err := op.need(3 + props.Brc80Size); err != nil {
		return err
	}
	d := op.Data()
	first, lim := dst.CellRange(int(d[0]), int(d[1]))
	sides := d[2]
	border := props.ReadBorderCode(d[3:])
	for i := first; i < lim; i++ {
		tc := &dst.Rgtc[i]
		if sides&props.SideTop != 0 {
			tc.BrcTop = border
		}
		if sides&props.SideLeft != 0 {
			tc.BrcLeft = border
		}
		if sides&props.SideBottom != 0 {
			tc.BrcBottom = border
		}
		if sides&props.SideRight != 0 {
			tc.BrcRight = border
		}
	}
	return nil
}

// applyTInsert inserts ctc cells of width dxaCol before cell itcInsert;
// cells after it move right.
func applyTInsert(dst, _ *tap, op Operation) error {
	d := op.Data()
	n := len(dst.Rgtc)
	at := min(int(d[0]), n)
	ctc := int(d[1])
	width := int16(binary.LittleEndian.Uint16(d[2:4]))
	if ctc == 0 {
		return nil
	}
	old := centers(dst)
	if len(old) < n+1 {
		old = append(old, make([]int16, n+1-len(old))...)
	}
	c := make([]int16, n+ctc+1)
	copy(c, old[:at+1])
	for i := 1; i <= ctc; i++ {
		c[at+i] = c[at+i-1] + width
	}
	shift := int16(ctc) * width
	for i := at + 1; i <= n; i++ {
		c[i+ctc] = old[i] + shift
	}
	dst.RgdxaCenter = c
	dst.Rgtc = slices.Insert(dst.Rgtc, at, make([]props.TableCellDescriptor, ctc)...)
	if len(dst.CellShading) > 0 && len(dst.CellShading) >= at {
		dst.CellShading = slices.Insert(dst.CellShading, at, make([]props.ShadingDescriptor, ctc)...)
	}
	dst.ItcMac = int16(len(dst.Rgtc))
	return nil
}

// applyTDelete removes cells [itcFirst, itcLim); cells after them move left.
func applyTDelete(dst, _ *tap, op Operation) error {
	d := op.Data()
	first, lim := dst.CellRange(int(d[0]), int(d[1]))
	if first == lim {
		return nil
	}
	if len(dst.RgdxaCenter) == len(dst.Rgtc)+1 {
		c := dst.RgdxaCenter
		removed := c[lim] - c[first]
		for i := lim + 1; i < len(c); i++ {
			c[i] -= removed
		}
		dst.RgdxaCenter = slices.Delete(c, first+1, lim+1)
	}
	dst.Rgtc = slices.Delete(dst.Rgtc, first, lim)
	if len(dst.CellShading) >= lim {
		dst.CellShading = slices.Delete(dst.CellShading, first, lim)
	}
	dst.ItcMac = int16(len(dst.Rgtc))
	return nil
}

// applyTDxaCol sets the width of cells [itcFirst, itcLim) to dxaCol,
// moving the cells after each one.
func applyTDxaCol(dst, _ *tap, op Operation) error {
	d := op.Data()
	first, lim := dst.CellRange(int(d[0]), int(d[1]))
	width := int16(binary.LittleEndian.Uint16(d[2:4]))
	c := dst.RgdxaCenter
	if len(c) != len(dst.Rgtc)+1 {
		return nil
	}
	for i := first; i < lim; i++ {
		delta := c[i] + width - c[i+1]
		for j := i + 1; j < len(c); j++ {
			c[j] += delta
		}
	}
	return nil
}

// UncompressTAP applies grpprl[offset:] to a copy of base.
func UncompressTAP(base *props.TableProperties, grpprl []byte, offset int) (*props.TableProperties, error) {
	return tapCatalog.uncompress(base, grpprl, offset)
}

// CompressTAP returns the grpprl that turns old into cur.
func CompressTAP(cur, old *props.TableProperties) []byte {
	return tapCatalog.compress(cur, old)
}
