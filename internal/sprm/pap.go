package sprm

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hanpama/msdoc/internal/props"
)

type pap = props.ParagraphProperties

const (
	sprmPIstd        uint16 = 0x4600
	sprmPIstdPermute uint16 = 0xC601
	sprmPIncLvl      uint16 = 0x2602
	sprmPChgTabsPapx uint16 = 0xC60D
	sprmPNest80      uint16 = 0x4610
	sprmPLspd        uint16 = 0x6412
	sprmPPc          uint16 = 0x261B
	sprmPDcs         uint16 = 0x442C
	sprmPDtap        uint16 = 0x664A
	sprmPShd         uint16 = 0xC64D
)

// Position code meaning "leave unchanged" in sprmPPc.
const pcUnchanged = 3

var papCatalog = newCatalog(KindPAP, (*pap).Clone, []entry[pap]{
	value(sprmPIstd, "sprmPIstd", func(p *pap) *uint16 { return &p.Istd }),
	{
		sprm: sprmPIstdPermute, name: "sprmPIstdPermute",
		apply: func(dst, _ *pap, op Operation) error {
			istd, err := permuteIstd(dst.Istd, op)
			dst.Istd = istd
			return err
		},
	},
	{
		sprm: sprmPIncLvl, name: "sprmPIncLvl", want: 1,
		apply: func(dst, _ *pap, op Operation) error {
			if dst.Istd < 1 || dst.Istd > 9 {
				return nil
			}
			inc := int(int8(op.Operand()))
			dst.Istd = uint16(min(max(int(dst.Istd)+inc, 1), 9))
			dst.Lvl = uint8(min(max(int(dst.Lvl)+inc, 0), 9))
			return nil
		},
	},
	value(0x2403, "sprmPJc80", func(p *pap) *uint8 { return &p.Jc }),
	flag(0x2404, "sprmPFSideBySide", func(p *pap) *bool { return &p.SideBySide }),
	flag(0x2405, "sprmPFKeep", func(p *pap) *bool { return &p.Keep }),
	flag(0x2406, "sprmPFKeepFollow", func(p *pap) *bool { return &p.KeepFollow }),
	flag(0x2407, "sprmPFPageBreakBefore", func(p *pap) *bool { return &p.PageBreakBefore }),
	value(0x2408, "sprmPBrcl", func(p *pap) *uint8 { return &p.Brcl }),
	value(0x2409, "sprmPBrcp", func(p *pap) *uint8 { return &p.Brcp }),
	value(0x260A, "sprmPIlvl", func(p *pap) *uint8 { return &p.Ilvl }),
	value(0x460B, "sprmPIlfo", func(p *pap) *int16 { return &p.Ilfo }),
	flag(0x240C, "sprmPFNoLineNumb", func(p *pap) *bool { return &p.NoLnn }),
	{
		sprm: sprmPChgTabsPapx, name: "sprmPChgTabsPapx",
		apply:  applyPChgTabsPapx,
		encode: encodePChgTabsPapx,
	},
	value(0x840E, "sprmPDxaRight80", func(p *pap) *int16 { return &p.DxaRight }),
	value(0x840F, "sprmPDxaLeft80", func(p *pap) *int16 { return &p.DxaLeft }),
	{
		sprm: sprmPNest80, name: "sprmPNest80", want: 2,
		apply: func(dst, _ *pap, op Operation) error {
			dst.DxaLeft = int16(min(max(0, int(dst.DxaLeft)+int(int16(op.Operand()))), math.MaxInt16))
			return nil
		},
	},
	value(0x8411, "sprmPDxaLeft180", func(p *pap) *int16 { return &p.DxaLeft1 }),
	{
		sprm: sprmPLspd, name: "sprmPDyaLine", want: props.LspdSize,
		apply: func(dst, _ *pap, op Operation) error {
			dst.Lspd = props.ReadLineSpacingDescriptor(uint32(op.Operand()))
			return nil
		},
		encode: func(cur, old *pap) (int32, []byte, bool) {
			return int32(cur.Lspd.Uint32()), nil, cur.Lspd != old.Lspd
		},
	},
	value(0xA413, "sprmPDyaBefore", func(p *pap) *uint16 { return &p.DyaBefore }),
	value(0xA414, "sprmPDyaAfter", func(p *pap) *uint16 { return &p.DyaAfter }),
	{sprm: sprmPChgTabs, name: "sprmPChgTabs", apply: applyPChgTabs},
	flag(0x2416, "sprmPFInTable", func(p *pap) *bool { return &p.InTable }),
	flag(0x2417, "sprmPFTtp", func(p *pap) *bool { return &p.Ttp }),
	value(0x8418, "sprmPDxaAbs", func(p *pap) *int16 { return &p.DxaAbs }),
	value(0x8419, "sprmPDyaAbs", func(p *pap) *int16 { return &p.DyaAbs }),
	value(0x841A, "sprmPDxaWidth", func(p *pap) *int16 { return &p.DxaWidth }),
	{
		sprm: sprmPPc, name: "sprmPPc", want: 1,
		apply: func(dst, _ *pap, op Operation) error {
			b := byte(op.Operand())
			if v := (b >> 4) & 0x03; v != pcUnchanged {
				dst.PcVert = v
			}
			if h := (b >> 6) & 0x03; h != pcUnchanged {
				dst.PcHorz = h
			}
			return nil
		},
		encode: func(cur, old *pap) (int32, []byte, bool) {
			changed := cur.PcVert != old.PcVert || cur.PcHorz != old.PcHorz
			return int32(cur.PcVert&0x03)<<4 | int32(cur.PcHorz&0x03)<<6, nil, changed
		},
	},
	value(0x2423, "sprmPWr", func(p *pap) *uint8 { return &p.Wr }),
	brc80(0x6424, "sprmPBrcTop80", func(p *pap) *props.BorderCode { return &p.BrcTop }),
	brc80(0x6425, "sprmPBrcLeft80", func(p *pap) *props.BorderCode { return &p.BrcLeft }),
	brc80(0x6426, "sprmPBrcBottom80", func(p *pap) *props.BorderCode { return &p.BrcBottom }),
	brc80(0x6427, "sprmPBrcRight80", func(p *pap) *props.BorderCode { return &p.BrcRight }),
	brc80(0x6428, "sprmPBrcBetween80", func(p *pap) *props.BorderCode { return &p.BrcBetween }),
	brc80(0x6629, "sprmPBrcBar80", func(p *pap) *props.BorderCode { return &p.BrcBar }),
	flag(0x242A, "sprmPFNoAutoHyph", func(p *pap) *bool { return &p.NoAutoHyph }),
	value(0x442B, "sprmPWHeightAbs", func(p *pap) *uint16 { return &p.DyaHeight }),
	{
		sprm: sprmPDcs, name: "sprmPDcs", want: props.DcsSize,
		apply: func(dst, _ *pap, op Operation) error {
			dst.Dcs = props.ReadDropCapSpecifier(uint16(op.Operand()))
			return nil
		},
		encode: func(cur, old *pap) (int32, []byte, bool) {
			return int32(cur.Dcs.Uint16()), nil, cur.Dcs != old.Dcs
		},
	},
	shd80(0x442D, "sprmPShd80", func(p *pap) *props.ShadingDescriptor { return &p.Shd }),
	value(0x842E, "sprmPDyaFromText", func(p *pap) *int16 { return &p.DyaFromText }),
	value(0x842F, "sprmPDxaFromText", func(p *pap) *int16 { return &p.DxaFromText }),
	flag(0x2430, "sprmPFLocked", func(p *pap) *bool { return &p.Locked }),
	flag(0x2431, "sprmPFWidowControl", func(p *pap) *bool { return &p.WidowControl }),
	ignore[pap](0xC632, "sprmPRuler"),
	flag(0x2433, "sprmPFKinsoku", func(p *pap) *bool { return &p.Kinsoku }),
	flag(0x2434, "sprmPFWordWrap", func(p *pap) *bool { return &p.WordWrap }),
	flag(0x2435, "sprmPFOverflowPunct", func(p *pap) *bool { return &p.OverflowPunct }),
	flag(0x2436, "sprmPFTopLinePunct", func(p *pap) *bool { return &p.TopLinePunct }),
	flag(0x2437, "sprmPFAutoSpaceDE", func(p *pap) *bool { return &p.AutoSpaceDE }),
	flag(0x2438, "sprmPFAutoSpaceDN", func(p *pap) *bool { return &p.AutoSpaceDN }),
	value(0x4439, "sprmPWAlignFont", func(p *pap) *uint16 { return &p.WAlignFnt }),
	value(0x443A, "sprmPFrameTextFlow", func(p *pap) *uint16 { return &p.TextFlow }),
	ignore[pap](0xC63E, "sprmPAnld80"),
	ignore[pap](0xC63F, "sprmPPropRMark90"),
	value(0x2640, "sprmPOutLvl", func(p *pap) *uint8 { return &p.Lvl }),
	flag(0x2441, "sprmPFBiDi", func(p *pap) *bool { return &p.BiDi }),
	flag(0x2443, "sprmPFNumRMIns", func(p *pap) *bool { return &p.NumRMIns }),
	ignore[pap](0x2444, "sprmPCrLf"),
	ignore[pap](0xC645, "sprmPNumRM"),
	ignore[pap](0x6646, "sprmPHugePapx"),
	flag(0x2447, "sprmPFUsePgsuSettings", func(p *pap) *bool { return &p.UsePgsuSettings }),
	flag(0x2448, "sprmPFAdjustRight", func(p *pap) *bool { return &p.AdjustRight }),
	value(0x6649, "sprmPItap", func(p *pap) *int32 { return &p.Itap }),
	{
		sprm: sprmPDtap, name: "sprmPDtap", want: 4,
		apply: func(dst, _ *pap, op Operation) error {
			dst.Itap += op.Operand()
			return nil
		},
	},
	flag(0x244B, "sprmPFInnerTableCell", func(p *pap) *bool { return &p.InnerTableCell }),
	flag(0x244C, "sprmPFInnerTtp", func(p *pap) *bool { return &p.InnerTtp }),
	shd(sprmPShd, "sprmPShd", func(p *pap) *props.ShadingDescriptor { return &p.Shd }),
	brc(0xC64E, "sprmPBrcTop", func(p *pap) *props.BorderCode { return &p.BrcTop }),
	brc(0xC64F, "sprmPBrcLeft", func(p *pap) *props.BorderCode { return &p.BrcLeft }),
	brc(0xC650, "sprmPBrcBottom", func(p *pap) *props.BorderCode { return &p.BrcBottom }),
	brc(0xC651, "sprmPBrcRight", func(p *pap) *props.BorderCode { return &p.BrcRight }),
	brc(0xC652, "sprmPBrcBetween", func(p *pap) *props.BorderCode { return &p.BrcBetween }),
	brc(0xC653, "sprmPBrcBar", func(p *pap) *props.BorderCode { return &p.BrcBar }),
	decodeOnly(value(0x845D, "sprmPDxaRight", func(p *pap) *int16 { return &p.DxaRight })),
	decodeOnly(value(0x845E, "sprmPDxaLeft", func(p *pap) *int16 { return &p.DxaLeft })),
	decodeOnly(value(0x8460, "sprmPDxaLeft1", func(p *pap) *int16 { return &p.DxaLeft1 })),
	value(0x2461, "sprmPJc", func(p *pap) *uint8 { return &p.JcLog }),
	value(0x6467, "sprmPRsid", func(p *pap) *int32 { return &p.Rsid }),
})

// tabStops is the working form of a tab list while sprms edit it.
type tabStops map[int16]props.TabDescriptor

func tabStopsOf(p *pap) tabStops {
	m := make(tabStops, len(p.TabPositions))
	for i, pos := range p.TabPositions {
		if i < len(p.Tabs) {
			m[pos] = p.Tabs[i]
		} else {
			m[pos] = props.TabDescriptor{}
		}
	}
	return m
}

func (m tabStops) store(p *pap) {
	positions := make([]int16, 0, len(m))
	tabs := make([]props.TabDescriptor, 0, len(m))
	for pos, tbd := range m {
		positions = append(positions, pos)
		tabs = append(tabs, tbd)
	}
	p.SetTabs(positions, tabs)
}

// applyPChgTabsPapx deletes and adds tab stops: cDel, rgdxaDel, cAdd,
// rgdxaAdd, rgtbdAdd.
func applyPChgTabsPapx(dst, _ *pap, op Operation) error {
	d := op.Data()
	if err := op.need(1); err != nil {
		return err
	}
	del := int(d[0])
	addAt := 1 + 2*del
	if err := op.need(addAt + 1); err != nil {
		return err
	}
	add := int(d[addAt])
	if err := op.need(addAt + 1 + 3*add); err != nil {
		return err
	}
	m := tabStopsOf(dst)
	for i := 0; i < del; i++ {
		delete(m, int16(binary.LittleEndian.Uint16(d[1+2*i:])))
	}
	pos := d[addAt+1:]
	tbd := pos[2*add:]
	for i := 0; i < add; i++ {
		m[int16(binary.LittleEndian.Uint16(pos[2*i:]))] = props.ReadTabDescriptor(tbd[i])
	}
	m.store(dst)
	return nil
}

// applyPChgTabs is the piece-table form of the tab edit: every deleted
// position carries a tolerance, and any tab within it is removed.
func applyPChgTabs(dst, _ *pap, op Operation) error {
	d := op.Data()
	if err := op.need(1); err != nil {
		return err
	}
	del := int(d[0])
	addAt := 1 + 4*del
	if err := op.need(addAt + 1); err != nil {
		return err
	}
	add := int(d[addAt])
	if err := op.need(addAt + 1 + 3*add); err != nil {
		return err
	}
	m := tabStopsOf(dst)
	for i := 0; i < del; i++ {
		at := int16(binary.LittleEndian.Uint16(d[1+2*i:]))
		closeTo := int16(binary.LittleEndian.Uint16(d[1+2*del+2*i:]))
		for pos := range m {
			if int(pos) >= int(at)-int(closeTo) && int(pos) <= int(at)+int(closeTo) {
				delete(m, pos)
			}
		}
	}
	pos := d[addAt+1:]
	tbd := pos[2*add:]
	for i := 0; i < add; i++ {
		m[int16(binary.LittleEndian.Uint16(pos[2*i:]))] = props.ReadTabDescriptor(tbd[i])
	}
	m.store(dst)
	return nil
}

func encodePChgTabsPapx(cur, old *pap) (int32, []byte, bool) {
	was, now := tabStopsOf(old), tabStopsOf(cur)
	var del, add []int16
	for _, pos := range old.TabPositions {
		if _, ok := now[pos]; !ok {
			del = append(del, pos)
		}
	}
	for _, pos := range cur.TabPositions {
		if tbd, ok := was[pos]; !ok || tbd != now[pos] {
			add = append(add, pos)
		}
	}
	if len(del) == 0 && len(add) == 0 || len(del) > 0xff || len(add) > 0xff {
		return 0, nil, false
	}
	b := make([]byte, 0, 2+2*len(del)+3*len(add))
	b = append(b, byte(len(del)))
	for _, pos := range del {
		b = binary.LittleEndian.AppendUint16(b, uint16(pos))
	}
	b = append(b, byte(len(add)))
	for _, pos := range add {
		b = binary.LittleEndian.AppendUint16(b, uint16(pos))
	}
	for _, pos := range add {
		b = append(b, now[pos].Byte())
	}
	return 0, b, true
}

// UncompressPAP applies grpprl[offset:] to a copy of base.
func UncompressPAP(base *props.ParagraphProperties, grpprl []byte, offset int) (*props.ParagraphProperties, error) {
	return papCatalog.uncompress(base, grpprl, offset)
}

// CompressPAP returns the grpprl that turns old into cur.
func CompressPAP(cur, old *props.ParagraphProperties) []byte {
	return papCatalog.compress(cur, old)
}

// UncompressPAPX decodes a PAPX body: the 2-byte istd followed by the
// paragraph grpprl.
func UncompressPAPX(base *props.ParagraphProperties, papx []byte) (*props.ParagraphProperties, error) {
	if len(papx) < 2 {
		return nil, fmt.Errorf("papx of %d bytes: %w", len(papx), ErrTruncated)
	}
	p, err := papCatalog.uncompress(base, papx, 2)
	if err != nil {
		return nil, err
	}
	p.Istd = binary.LittleEndian.Uint16(papx)
	return p, nil
}
