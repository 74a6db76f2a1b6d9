package sprm

import (
	"bytes"
	"encoding/binary"

	"github.com/hanpama/msdoc/internal/props"
)

type sep = props.SectionProperties

const (
	sprmSOlstAnm80    uint16 = 0xD202
	sprmSBOrientation uint16 = 0x301D
	sprmSPropRMark    uint16 = 0xD227
)

// Orientation operands of sprmSBOrientation.
const (
	orientPortrait  = 1
	orientLandscape = 2
)

var sepCatalog = newCatalog(KindSEP, (*sep).Clone, []entry[sep]{
	value(0x3000, "sprmScnsPgn", func(s *sep) *uint8 { return &s.CnsPgn }),
	value(0x3001, "sprmSiHeadingPgn", func(s *sep) *uint8 { return &s.IHeadingPgn }),
	{
		sprm: sprmSOlstAnm80, name: "sprmSOlstAnm80",
		apply: func(dst, _ *sep, op Operation) error {
			dst.OlstAnm = bytes.Clone(op.Data())
			return nil
		},
		encode: func(cur, old *sep) (int32, []byte, bool) {
			if bytes.Equal(cur.OlstAnm, old.OlstAnm) || cur.OlstAnm == nil {
				return 0, nil, false
			}
			return 0, cur.OlstAnm, true
		},
	},
	ignore[sep](0xF203, "sprmSDxaColWidth"),
	ignore[sep](0xF204, "sprmSDxaColSpacing"),
	flag(0x3005, "sprmSFEvenlySpaced", func(s *sep) *bool { return &s.EvenlySpaced }),
	flag(0x3006, "sprmSFProtected", func(s *sep) *bool { return &s.Unlocked }),
	value(0x5007, "sprmSDmBinFirst", func(s *sep) *uint16 { return &s.DmBinFirst }),
	value(0x5008, "sprmSDmBinOther", func(s *sep) *uint16 { return &s.DmBinOther }),
	value(0x3009, "sprmSBkc", func(s *sep) *uint8 { return &s.Bkc }),
	flag(0x300A, "sprmSFTitlePage", func(s *sep) *bool { return &s.TitlePage }),
	value(0x500B, "sprmSCcolumns", func(s *sep) *uint16 { return &s.CcolM1 }),
	value(0x900C, "sprmSDxaColumns", func(s *sep) *int16 { return &s.DxaColumns }),
	flag(0x300D, "sprmSFAutoPgn", func(s *sep) *bool { return &s.AutoPgn }),
	value(0x300E, "sprmSNfcPgn", func(s *sep) *uint8 { return &s.NfcPgn }),
	value(0xB00F, "sprmSDyaPgn", func(s *sep) *uint16 { return &s.DyaPgn }),
	value(0xB010, "sprmSDxaPgn", func(s *sep) *uint16 { return &s.DxaPgn }),
	flag(0x3011, "sprmSFPgnRestart", func(s *sep) *bool { return &s.PgnRestart }),
	flag(0x3012, "sprmSFEndnote", func(s *sep) *bool { return &s.EndNote }),
	value(0x3013, "sprmSLnc", func(s *sep) *uint8 { return &s.Lnc }),
	value(0x3014, "sprmSGprfIhdt", func(s *sep) *uint8 { return &s.GrpfIhdt }),
	value(0x5015, "sprmSNLnnMod", func(s *sep) *uint16 { return &s.NLnnMod }),
	value(0x9016, "sprmSDxaLnn", func(s *sep) *int16 { return &s.DxaLnn }),
	value(0xB017, "sprmSDyaHdrTop", func(s *sep) *uint16 { return &s.DyaHdrTop }),
	value(0xB018, "sprmSDyaHdrBottom", func(s *sep) *uint16 { return &s.DyaHdrBottom }),
	flag(0x3019, "sprmSLBetween", func(s *sep) *bool { return &s.LBetween }),
	value(0x301A, "sprmSVjc", func(s *sep) *uint8 { return &s.Vjc }),
	value(0x501B, "sprmSLnnMin", func(s *sep) *int16 { return &s.LnnMin }),
	value(0x501C, "sprmSPgnStart97", func(s *sep) *uint16 { return &s.PgnStart }),
	{
		sprm: sprmSBOrientation, name: "sprmSBOrientation", want: 1,
		apply: func(dst, _ *sep, op Operation) error {
			dst.Landscape = op.Operand() == orientLandscape
			return nil
		},
		encode: func(cur, old *sep) (int32, []byte, bool) {
			if cur.Landscape == old.Landscape {
				return 0, nil, false
			}
			if cur.Landscape {
				return orientLandscape, nil, true
			}
			return orientPortrait, nil, true
		},
	},
	ignore[sep](0x301E, "sprmSBCustomize"),
	value(0xB01F, "sprmSXaPage", func(s *sep) *uint16 { return &s.XaPage }),
	value(0xB020, "sprmSYaPage", func(s *sep) *uint16 { return &s.YaPage }),
	value(0xB021, "sprmSDxaLeft", func(s *sep) *uint16 { return &s.DxaLeft }),
	value(0xB022, "sprmSDxaRight", func(s *sep) *uint16 { return &s.DxaRight }),
	value(0x9023, "sprmSDyaTop", func(s *sep) *int16 { return &s.DyaTop }),
	value(0x9024, "sprmSDyaBottom", func(s *sep) *int16 { return &s.DyaBottom }),
	value(0xB025, "sprmSDzaGutter", func(s *sep) *uint16 { return &s.DzaGutter }),
	value(0x5026, "sprmSDmPaperReq", func(s *sep) *uint16 { return &s.DmPaperReq }),
	{
		sprm: sprmSPropRMark, name: "sprmSPropRMark",
		apply: func(dst, _ *sep, op Operation) error {
			if err := op.need(7); err != nil {
				return err
			}
			d := op.Data()
			dst.PropRMark = d[0] != 0
			dst.IbstPropRMark = int16(binary.LittleEndian.Uint16(d[1:3]))
			dst.DttmPropRMark = props.ReadDateAndTime(binary.LittleEndian.Uint32(d[3:7]))
			return nil
		},
		encode: func(cur, old *sep) (int32, []byte, bool) {
			if cur.PropRMark == old.PropRMark && cur.IbstPropRMark == old.IbstPropRMark &&
				cur.DttmPropRMark == old.DttmPropRMark {
				return 0, nil, false
			}
			return 0, revisionPayload(cur.PropRMark, cur.IbstPropRMark, cur.DttmPropRMark), true
		},
	},
	flag(0x3228, "sprmSFBiDi", func(s *sep) *bool { return &s.BiDi }),
	flag(0x3229, "sprmSFFacingCol", func(s *sep) *bool { return &s.FacingCol }),
	flag(0x322A, "sprmSFRTLGutter", func(s *sep) *bool { return &s.RTLGutter }),
	brc80(0x702B, "sprmSBrcTop80", func(s *sep) *props.BorderCode { return &s.BrcTop }),
	brc80(0x702C, "sprmSBrcLeft80", func(s *sep) *props.BorderCode { return &s.BrcLeft }),
	brc80(0x702D, "sprmSBrcBottom80", func(s *sep) *props.BorderCode { return &s.BrcBottom }),
	brc80(0x702E, "sprmSBrcRight80", func(s *sep) *props.BorderCode { return &s.BrcRight }),
	value(0x522F, "sprmSPgbProp", func(s *sep) *uint16 { return &s.PgbProp }),
	value(0x7030, "sprmSDxtCharSpace", func(s *sep) *int32 { return &s.DxtCharSpace }),
	value(0x9031, "sprmSDyaLinePitch", func(s *sep) *int16 { return &s.DyaLinePitch }),
	value(0x5032, "sprmSClm", func(s *sep) *uint16 { return &s.Clm }),
	value(0x5033, "sprmSTextFlow", func(s *sep) *uint16 { return &s.TextFlow }),
	brc(0xD234, "sprmSBrcTop", func(s *sep) *props.BorderCode { return &s.BrcTop }),
	brc(0xD235, "sprmSBrcLeft", func(s *sep) *props.BorderCode { return &s.BrcLeft }),
	brc(0xD236, "sprmSBrcBottom", func(s *sep) *props.BorderCode { return &s.BrcBottom }),
	brc(0xD237, "sprmSBrcRight", func(s *sep) *props.BorderCode { return &s.BrcRight }),
	value(0x303C, "sprmSRncFtn", func(s *sep) *uint8 { return &s.RncFtn }),
	value(0x303E, "sprmSRncEdn", func(s *sep) *uint8 { return &s.RncEdn }),
	value(0x503F, "sprmSNFtn", func(s *sep) *uint16 { return &s.NFtn }),
	value(0x5040, "sprmSNfcFtnRef", func(s *sep) *uint16 { return &s.NfcFtnRef }),
	value(0x5041, "sprmSNEdn", func(s *sep) *uint16 { return &s.NEdn }),
	value(0x5042, "sprmSNfcEdnRef", func(s *sep) *uint16 { return &s.NfcEdnRef }),
})

// UncompressSEP applies grpprl[offset:] to a copy of base.
func UncompressSEP(base *props.SectionProperties, grpprl []byte, offset int) (*props.SectionProperties, error) {
	return sepCatalog.uncompress(base, grpprl, offset)
}

// CompressSEP returns the grpprl that turns old into cur.
func CompressSEP(cur, old *props.SectionProperties) []byte {
	return sepCatalog.compress(cur, old)
}
