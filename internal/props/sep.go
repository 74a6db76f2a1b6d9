package props

import (
	"bytes"
	"reflect"
)

// SectionProperties is the SEP: page setup and layout of a section.
type SectionProperties struct {
	Bkc         uint8
	TitlePage   bool
	AutoPgn     bool
	NfcPgn      uint8
	PgnRestart  bool
	EndNote     bool
	Lnc         uint8
	GrpfIhdt    uint8
	NLnnMod     uint16
	DxaLnn      int16
	LnnMin      int16
	PgnStart    uint16
	CnsPgn      uint8
	IHeadingPgn uint8
	DyaPgn      uint16
	DxaPgn      uint16
	Vjc         uint8
	LBetween    bool
	Unlocked    bool
	DmBinFirst  uint16
	DmBinOther  uint16
	DmPaperReq  uint16
	Landscape   bool
	BiDi        bool
	FacingCol   bool
	RTLGutter   bool

	CcolM1       uint16
	EvenlySpaced bool
	DxaColumns   int16

	XaPage       uint16
	YaPage       uint16
	DxaLeft      uint16
	DxaRight     uint16
	DyaTop       int16
	DyaBottom    int16
	DzaGutter    uint16
	DyaHdrTop    uint16
	DyaHdrBottom uint16

	BrcTop    BorderCode
	BrcLeft   BorderCode
	BrcBottom BorderCode
	BrcRight  BorderCode
	PgbProp   uint16

	DxtCharSpace  int32
	DyaLinePitch  int16
	Clm           uint16
	TextFlow      uint16
	RncFtn        uint8
	NFtn          uint16
	NfcFtnRef     uint16
	RncEdn        uint8
	NEdn          uint16
	NfcEdnRef     uint16
	PropRMark     bool
	IbstPropRMark int16
	DttmPropRMark DateAndTime

	// OlstAnm keeps the raw outline list (OLST) of sprmSOlstAnm80.
	OlstAnm []byte
}

// NewSectionProperties returns a US Letter portrait section with one inch
// top and bottom margins and 1.25 inch side margins.
func NewSectionProperties() *SectionProperties {
	return &SectionProperties{
		Bkc:          2,
		EndNote:      true,
		EvenlySpaced: true,
		PgnStart:     1,
		DyaPgn:       720,
		DxaPgn:       720,
		DxaColumns:   720,
		XaPage:       12240,
		YaPage:       15840,
		DxaLeft:      1800,
		DxaRight:     1800,
		DyaTop:       1440,
		DyaBottom:    1440,
		DyaHdrTop:    720,
		DyaHdrBottom: 720,
	}
}

func (s *SectionProperties) Clone() *SectionProperties {
	n := *s
	n.OlstAnm = bytes.Clone(s.OlstAnm)
	return &n
}

func (s *SectionProperties) Equal(o *SectionProperties) bool {
	a, b := *s, *o
	if !bytes.Equal(a.OlstAnm, b.OlstAnm) {
		return false
	}
	a.OlstAnm, b.OlstAnm = nil, nil
	return reflect.DeepEqual(a, b)
}
