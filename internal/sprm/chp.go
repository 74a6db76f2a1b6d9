package sprm

import (
	"bytes"
	"encoding/binary"

	"github.com/hanpama/msdoc/internal/props"
)

type chp = props.CharacterProperties

// Character sprms with behavior beyond a plain field store.
const (
	sprmCPicLocation  uint16 = 0x6A03
	sprmCSymbol       uint16 = 0x6A09
	sprmCHighlight    uint16 = 0x2A0C
	sprmCIstdPermute  uint16 = 0xCA31
	sprmCDefault      uint16 = 0x2A32
	sprmCPlain        uint16 = 0x2A33
	sprmCFBold        uint16 = 0x0835
	sprmCSizePos      uint16 = 0xEA3F
	sprmCHps          uint16 = 0x4A43
	sprmCHpsInc       uint16 = 0x2A44
	sprmCHpsPosAdj    uint16 = 0x2A46
	sprmCHpsNew50     uint16 = 0xCA49
	sprmCHpsInc1      uint16 = 0xCA4A
	sprmCHpsMul       uint16 = 0x4A4D
	sprmCFSpec        uint16 = 0x0855
	sprmCPropRMark90  uint16 = 0xCA57
	sprmCDispFldRMark uint16 = 0xCA62
	sprmCCv           uint16 = 0x6870
	sprmCShd          uint16 = 0xCA71
	sprmCCvUl         uint16 = 0x6877
	sprmCPropRMark    uint16 = 0xCA89
)

// Lower bounds of the font size, in half-points, for the size-stepping
// sprms.
const (
	minHps     = 2
	minHpsInc1 = 8
)

var chpCatalog = newCatalog(KindCHP, (*chp).Clone, []entry[chp]{
	flag(0x0800, "sprmCFRMarkDel", func(p *chp) *bool { return &p.RMarkDel }),
	flag(0x0801, "sprmCFRMarkIns", func(p *chp) *bool { return &p.RMark }),
	flag(0x0802, "sprmCFFldVanish", func(p *chp) *bool { return &p.FldVanish }),
	{
		sprm: sprmCPicLocation, name: "sprmCPicLocation", want: 4,
		apply: func(dst, _ *chp, op Operation) error {
			dst.FcPic = op.Operand()
			dst.Spec = true
			return nil
		},
		encode: func(cur, old *chp) (int32, []byte, bool) {
			return cur.FcPic, nil, cur.FcPic != old.FcPic
		},
	},
	value(0x4804, "sprmCIbstRMark", func(p *chp) *int16 { return &p.IbstRMark }),
	dttm(0x6805, "sprmCDttmRMark", func(p *chp) *props.DateAndTime { return &p.DttmRMark }),
	flag(0x0806, "sprmCFData", func(p *chp) *bool { return &p.Data }),
	value(0x4807, "sprmCIdslRMark", func(p *chp) *int16 { return &p.IdslRMReason }),
	{
		sprm: sprmCSymbol, name: "sprmCSymbol", want: 4,
		apply: func(dst, _ *chp, op Operation) error {
			dst.FtcSym = int16(op.Operand())
			dst.XchSym = uint16(op.Operand() >> 16)
			dst.Spec = true
			return nil
		},
		encode: func(cur, old *chp) (int32, []byte, bool) {
			return int32(uint16(cur.FtcSym)) | int32(cur.XchSym)<<16, nil, symbolChanged(cur, old)
		},
	},
	flag(0x080A, "sprmCFOle2", func(p *chp) *bool { return &p.Ole2 }),
	ignore[chp](0x480B, "sprmCIdCharType"),
	value(sprmCHighlight, "sprmCHighlight", func(p *chp) *uint8 { return &p.IcoHighlight }),
	value(0x680E, "sprmCObjLocation", func(p *chp) *int32 { return &p.FcObj }),
	flag(0x0811, "sprmCFWebHidden", func(p *chp) *bool { return &p.WebHidden }),
	value(0x6815, "sprmCRsidProp", func(p *chp) *int32 { return &p.RsidProp }),
	value(0x6816, "sprmCRsidText", func(p *chp) *int32 { return &p.RsidText }),
	value(0x6817, "sprmCRsidRMDel", func(p *chp) *int32 { return &p.RsidRMDel }),
	flag(0x0818, "sprmCFSpecVanish", func(p *chp) *bool { return &p.SpecVanish }),
	value(0x4A30, "sprmCIstd", func(p *chp) *uint16 { return &p.Istd }),
	{
		sprm: sprmCIstdPermute, name: "sprmCIstdPermute",
		apply: func(dst, _ *chp, op Operation) error {
			istd, err := permuteIstd(dst.Istd, op)
			dst.Istd = istd
			return err
		},
	},
	{sprm: sprmCDefault, name: "sprmCDefault", want: 1, apply: applyCDefault},
	{sprm: sprmCPlain, name: "sprmCPlain", want: 1, apply: applyCPlain},
	value(0x2A34, "sprmCKcd", func(p *chp) *uint8 { return &p.Kcd }),
	toggle(sprmCFBold, "sprmCFBold", func(p *chp) *bool { return &p.Bold }),
	toggle(0x0836, "sprmCFItalic", func(p *chp) *bool { return &p.Italic }),
	toggle(0x0837, "sprmCFStrike", func(p *chp) *bool { return &p.Strike }),
	toggle(0x0838, "sprmCFOutline", func(p *chp) *bool { return &p.Outline }),
	toggle(0x0839, "sprmCFShadow", func(p *chp) *bool { return &p.Shadow }),
	toggle(0x083A, "sprmCFSmallCaps", func(p *chp) *bool { return &p.SmallCaps }),
	toggle(0x083B, "sprmCFCaps", func(p *chp) *bool { return &p.Caps }),
	toggle(0x083C, "sprmCFVanish", func(p *chp) *bool { return &p.Vanish }),
	ignore[chp](0x4A3D, "sprmCFtcDefault"),
	value(0x2A3E, "sprmCKul", func(p *chp) *uint8 { return &p.Kul }),
	{sprm: sprmCSizePos, name: "sprmCSizePos", want: 3, apply: applyCSizePos},
	value(0x8840, "sprmCDxaSpace", func(p *chp) *int16 { return &p.DxaSpace }),
	decodeOnly(value(0x4A41, "sprmCLid", func(p *chp) *uint16 { return &p.LidDefault })),
	value(0x2A42, "sprmCIco", func(p *chp) *uint8 { return &p.Ico }),
	value(sprmCHps, "sprmCHps", func(p *chp) *uint16 { return &p.Hps }),
	{
		sprm: sprmCHpsInc, name: "sprmCHpsInc", want: 1,
		apply: func(dst, _ *chp, op Operation) error {
			dst.Hps = stepHps(dst.Hps, int(int8(op.Operand()))*2, minHps)
			return nil
		},
	},
	value(0x4845, "sprmCHpsPos", func(p *chp) *int16 { return &p.HpsPos }),
	{
		sprm: sprmCHpsPosAdj, name: "sprmCHpsPosAdj", want: 1,
		apply: func(dst, base *chp, op Operation) error {
			if op.Operand() != 0 {
				if base.HpsPos == 0 {
					dst.Hps = stepHps(dst.Hps, -2, minHps)
				}
			} else if base.HpsPos != 0 {
				dst.Hps = stepHps(dst.Hps, 2, minHps)
			}
			return nil
		},
	},
	ignore[chp](0xCA47, "sprmCMajority"),
	value(0x2A48, "sprmCIss", func(p *chp) *uint8 { return &p.Iss }),
	{
		sprm: sprmCHpsNew50, name: "sprmCHpsNew50",
		apply: func(dst, _ *chp, op Operation) error {
			if err := op.need(2); err != nil {
				return err
			}
			dst.Hps = binary.LittleEndian.Uint16(op.Data())
			return nil
		},
	},
	{
		sprm: sprmCHpsInc1, name: "sprmCHpsInc1",
		apply: func(dst, _ *chp, op Operation) error {
			if err := op.need(2); err != nil {
				return err
			}
			inc := int16(binary.LittleEndian.Uint16(op.Data()))
			dst.Hps = stepHps(dst.Hps, int(inc), minHpsInc1)
			return nil
		},
	},
	value(0x484B, "sprmCHpsKern", func(p *chp) *uint16 { return &p.HpsKern }),
	ignore[chp](0xCA4C, "sprmCMajority50"),
	{
		sprm: sprmCHpsMul, name: "sprmCHpsMul", want: 2,
		apply: func(dst, _ *chp, op Operation) error {
			pct := int(int16(op.Operand()))
			dst.Hps = stepHps(dst.Hps, int(dst.Hps)*pct/100, 0)
			return nil
		},
	},
	value(0x484E, "sprmCHresi", func(p *chp) *uint16 { return &p.Hresi }),
	value(0x4A4F, "sprmCRgFtc0", func(p *chp) *uint16 { return &p.FtcAscii }),
	value(0x4A50, "sprmCRgFtc1", func(p *chp) *uint16 { return &p.FtcFE }),
	value(0x4A51, "sprmCRgFtc2", func(p *chp) *uint16 { return &p.FtcOther }),
	value(0x4852, "sprmCCharScale", func(p *chp) *uint16 { return &p.CharScale }),
	flag(0x2A53, "sprmCFDStrike", func(p *chp) *bool { return &p.DStrike }),
	flag(0x0854, "sprmCFImprint", func(p *chp) *bool { return &p.Imprint }),
	{
		sprm: sprmCFSpec, name: "sprmCFSpec", want: 1,
		apply: func(dst, base *chp, op Operation) error {
			dst.Spec = ToggleFlag(byte(op.Operand()), base.Spec)
			return nil
		},
		encode: func(cur, old *chp) (int32, []byte, bool) {
			// sprmCPicLocation and sprmCSymbol, emitted earlier, set fSpec
			// as a side effect.
			after := old.Spec || cur.FcPic != old.FcPic || symbolChanged(cur, old)
			return boolOperand(cur.Spec), nil, cur.Spec != after
		},
	},
	flag(0x0856, "sprmCFObj", func(p *chp) *bool { return &p.Obj }),
	{sprm: sprmCPropRMark90, name: "sprmCPropRMark90", apply: applyCPropRMark},
	flag(0x0858, "sprmCFEmboss", func(p *chp) *bool { return &p.Emboss }),
	value(0x2859, "sprmCSfxText", func(p *chp) *uint8 { return &p.SfxText }),
	flag(0x085A, "sprmCFBiDi", func(p *chp) *bool { return &p.BiDi }),
	toggle(0x085C, "sprmCFBoldBi", func(p *chp) *bool { return &p.BoldBi }),
	toggle(0x085D, "sprmCFItalicBi", func(p *chp) *bool { return &p.ItalicBi }),
	value(0x4A5E, "sprmCFtcBi", func(p *chp) *uint16 { return &p.FtcBi }),
	value(0x485F, "sprmCLidBi", func(p *chp) *uint16 { return &p.LidBi }),
	value(0x4A60, "sprmCIcoBi", func(p *chp) *uint16 { return &p.IcoBi }),
	value(0x4A61, "sprmCHpsBi", func(p *chp) *uint16 { return &p.HpsBi }),
	{
		sprm: sprmCDispFldRMark, name: "sprmCDispFldRMark",
		apply: func(dst, _ *chp, op Operation) error {
			if err := op.need(7); err != nil {
				return err
			}
			d := op.Data()
			dst.DispFldRMark = d[0] != 0
			dst.IbstDispFldRM = int16(binary.LittleEndian.Uint16(d[1:3]))
			dst.DttmDispFldRM = props.ReadDateAndTime(binary.LittleEndian.Uint32(d[3:7]))
			dst.XstDispFldRM = bytes.Clone(d[7:])
			return nil
		},
		encode: func(cur, old *chp) (int32, []byte, bool) {
			if cur.DispFldRMark == old.DispFldRMark &&
				cur.IbstDispFldRM == old.IbstDispFldRM &&
				cur.DttmDispFldRM == old.DttmDispFldRM &&
				bytes.Equal(cur.XstDispFldRM, old.XstDispFldRM) {
				return 0, nil, false
			}
			b := revisionPayload(cur.DispFldRMark, cur.IbstDispFldRM, cur.DttmDispFldRM)
			return 0, append(b, cur.XstDispFldRM...), true
		},
	},
	value(0x4863, "sprmCIbstRMarkDel", func(p *chp) *int16 { return &p.IbstRMarkDel }),
	dttm(0x6864, "sprmCDttmRMarkDel", func(p *chp) *props.DateAndTime { return &p.DttmRMarkDel }),
	brc80(0x6865, "sprmCBrc80", func(p *chp) *props.BorderCode { return &p.Brc }),
	shd80(0x4866, "sprmCShd80", func(p *chp) *props.ShadingDescriptor { return &p.Shd }),
	ignore[chp](0x4867, "sprmCIdslRMarkDel"),
	flag(0x0868, "sprmCFUsePgsuSettings", func(p *chp) *bool { return &p.UsePgsuSettings }),
	value(0x486D, "sprmCRgLid0_80", func(p *chp) *uint16 { return &p.LidDefault }),
	value(0x486E, "sprmCRgLid1_80", func(p *chp) *uint16 { return &p.LidFE }),
	value(0x286F, "sprmCIdctHint", func(p *chp) *uint8 { return &p.IdctHint }),
	color(sprmCCv, "sprmCCv", func(p *chp) *int32 { return &p.Cv }),
	shd(sprmCShd, "sprmCShd", func(p *chp) *props.ShadingDescriptor { return &p.Shd }),
	brc(0xCA72, "sprmCBrc", func(p *chp) *props.BorderCode { return &p.Brc }),
	decodeOnly(value(0x4873, "sprmCRgLid0", func(p *chp) *uint16 { return &p.LidDefault })),
	decodeOnly(value(0x4874, "sprmCRgLid1", func(p *chp) *uint16 { return &p.LidFE })),
	flag(0x0875, "sprmCFNoProof", func(p *chp) *bool { return &p.NoProof }),
	ignore[chp](0xCA76, "sprmCFitText"),
	color(sprmCCvUl, "sprmCCvUl", func(p *chp) *int32 { return &p.CvUl }),
	ignore[chp](0xCA78, "sprmCFELayout"),
	ignore[chp](0x2879, "sprmCLbcCRJ"),
	flag(0x0882, "sprmCFComplexScripts", func(p *chp) *bool { return &p.ComplexScripts }),
	ignore[chp](0x2A83, "sprmCWall"),
	ignore[chp](0xCA85, "sprmCCnf"),
	ignore[chp](0x2A86, "sprmCNeedFontFixup"),
	ignore[chp](0x6887, "sprmCPbiIBullet"),
	ignore[chp](0x4888, "sprmCPbiGrf"),
	{
		sprm: sprmCPropRMark, name: "sprmCPropRMark",
		apply: applyCPropRMark,
		encode: func(cur, old *chp) (int32, []byte, bool) {
			if cur.PropRMark == old.PropRMark &&
				cur.IbstPropRMark == old.IbstPropRMark &&
				cur.DttmPropRMark == old.DttmPropRMark {
				return 0, nil, false
			}
			return 0, revisionPayload(cur.PropRMark, cur.IbstPropRMark, cur.DttmPropRMark), true
		},
	},
	flag(0x2A90, "sprmCFSdtVanish", func(p *chp) *bool { return &p.SdtVanish }),
})

// applyCDefault clears the toggle properties, the underline and the color
// index.
func applyCDefault(dst, _ *chp, _ Operation) error {
	dst.Bold = false
	dst.Italic = false
	dst.Outline = false
	dst.Strike = false
	dst.Shadow = false
	dst.SmallCaps = false
	dst.Caps = false
	dst.Vanish = false
	dst.Kul = 0
	dst.Ico = 0
	return nil
}

// applyCPlain discards everything applied so far and restarts from the
// base properties. fSpec is the one field that survives: a special
// character stays special.
func applyCPlain(dst, base *chp, _ Operation) error {
	spec := dst.Spec
	dst.CopyFrom(base)
	dst.Spec = spec
	return nil
}

// applyCSizePos decodes the 3-byte size/position operand: hpsSize, then
// fAdjust in bit 0 and a signed 7-bit cInc, then hpsPos (0x80 = unchanged).
func applyCSizePos(dst, base *chp, op Operation) error {
	v := op.Operand()
	if hps := uint16(v & 0xff); hps != 0 {
		dst.Hps = hps
	}
	if cInc := int8(byte(v>>8)) >> 1; cInc != 0 {
		dst.Hps = stepHps(dst.Hps, int(cInc)*2, minHps)
	}
	hpsPos := byte(v >> 16)
	if hpsPos != 0x80 {
		dst.HpsPos = int16(int8(hpsPos))
	}
	fAdjust := v&0x0100 != 0
	if fAdjust && hpsPos != 0x80 && hpsPos != 0 && base.HpsPos == 0 {
		dst.Hps = stepHps(dst.Hps, -2, minHps)
	}
	if fAdjust && hpsPos == 0 && base.HpsPos != 0 {
		dst.Hps = stepHps(dst.Hps, 2, minHps)
	}
	return nil
}

func applyCPropRMark(dst, _ *chp, op Operation) error {
	if err := op.need(7); err != nil {
		return err
	}
	d := op.Data()
	dst.PropRMark = d[0] != 0
	dst.IbstPropRMark = int16(binary.LittleEndian.Uint16(d[1:3]))
	dst.DttmPropRMark = props.ReadDateAndTime(binary.LittleEndian.Uint32(d[3:7]))
	return nil
}

// revisionPayload encodes the flag, author index and timestamp shared by
// the revision-mark payloads.
func revisionPayload(set bool, ibst int16, dttm props.DateAndTime) []byte {
	b := make([]byte, 7)
	if set {
		b[0] = 1
	}
	binary.LittleEndian.PutUint16(b[1:3], uint16(ibst))
	binary.LittleEndian.PutUint32(b[3:7], dttm.Uint32())
	return b
}

func symbolChanged(cur, old *chp) bool {
	return cur.FtcSym != old.FtcSym || cur.XchSym != old.XchSym
}

// stepHps adds delta half-points to hps without going below floor.
func stepHps(hps uint16, delta, floor int) uint16 {
	return uint16(max(int(hps)+delta, floor))
}

// color stores a COLORREF operand. An automatic COLORREF decodes to
// props.ColorAuto, which is never encoded.
func color[P any](sprm uint16, name string, f func(*P) *int32) entry[P] {
	return entry[P]{
		sprm: sprm, name: name, want: 4,
		apply: func(dst, _ *P, op Operation) error {
			if props.Colorref(uint32(op.Operand())).IsAuto() {
				*f(dst) = props.ColorAuto
			} else {
				*f(dst) = op.Operand()
			}
			return nil
		},
		encode: func(cur, old *P) (int32, []byte, bool) {
			v := *f(cur)
			return v, nil, v != *f(old) && v != props.ColorAuto
		},
	}
}

// permuteIstd maps istd through the permutation payload shared by
// sprmCIstdPermute and sprmPIstdPermute: fLongg, a spare byte, istdFirst,
// istdLast and then one replacement istd per index in the range.
func permuteIstd(istd uint16, op Operation) (uint16, error) {
	if err := op.need(6); err != nil {
		return istd, err
	}
	d := op.Data()
	first := binary.LittleEndian.Uint16(d[2:4])
	last := binary.LittleEndian.Uint16(d[4:6])
	if istd < first || istd > last {
		return istd, nil
	}
	at := 6 + 2*int(istd-first)
	if at+2 > len(d) {
		return istd, nil
	}
	return binary.LittleEndian.Uint16(d[at:]), nil
}

// UncompressCHP applies grpprl[offset:] to a copy of base. base is not
// modified. Operations of other property kinds are skipped.
func UncompressCHP(base *props.CharacterProperties, grpprl []byte, offset int) (*props.CharacterProperties, error) {
	return chpCatalog.uncompress(base, grpprl, offset)
}

// CompressCHP returns the grpprl that turns old into cur.
func CompressCHP(cur, old *props.CharacterProperties) []byte {
	return chpCatalog.compress(cur, old)
}
