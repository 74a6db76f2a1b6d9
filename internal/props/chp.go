// Package props holds the four property sets of the Word binary format
// (character, paragraph, section and table properties) and the
// fixed-layout substructures they embed.
//
// Property sets are plain values. Clone returns a copy that shares no
// slices with the original, so a decoder can mutate the clone while other
// readers keep using the base.
package props

import (
	"bytes"
	"reflect"
)

// CharacterProperties is the CHP: formatting of a run of characters.
type CharacterProperties struct {
	// Revision marking
	RMarkDel       bool
	RMark          bool
	IbstRMark      int16
	DttmRMark      DateAndTime
	IbstRMarkDel   int16
	DttmRMarkDel   DateAndTime
	PropRMark      bool
	IbstPropRMark  int16
	DttmPropRMark  DateAndTime
	DispFldRMark   bool
	IbstDispFldRM  int16
	DttmDispFldRM  DateAndTime
	XstDispFldRM   []byte
	IdslRMReason   int16
	RsidProp       int32
	RsidText       int32
	RsidRMDel      int32

	// Special characters and embedded objects
	FldVanish bool
	Spec      bool
	Data      bool
	Ole2      bool
	Obj       bool
	FcPic     int32
	FcObj     int32
	FtcSym    int16
	XchSym    uint16

	// Toggle properties
	Bold      bool
	Italic    bool
	Strike    bool
	Outline   bool
	Shadow    bool
	SmallCaps bool
	Caps      bool
	Vanish    bool
	BoldBi    bool
	ItalicBi  bool

	DStrike         bool
	Imprint         bool
	Emboss          bool
	BiDi            bool
	WebHidden       bool
	SpecVanish      bool
	NoProof         bool
	ComplexScripts  bool
	UsePgsuSettings bool
	SdtVanish       bool

	Istd         uint16
	Kul          uint8
	Kcd          uint8
	Ico          uint8
	Cv           int32
	CvUl         int32
	IcoHighlight uint8
	Hps          uint16
	HpsPos       int16
	HpsKern      uint16
	Hresi        uint16
	Iss          uint8
	DxaSpace     int16
	CharScale    uint16
	SfxText      uint8
	IdctHint     uint8

	FtcAscii   uint16
	FtcFE      uint16
	FtcOther   uint16
	FtcBi      uint16
	LidDefault uint16
	LidFE      uint16
	LidBi      uint16
	IcoBi      uint16
	HpsBi      uint16

	Brc BorderCode
	Shd ShadingDescriptor
}

// NewCharacterProperties returns the CHP a run has when no style or sprm
// applies: 10pt, default paragraph font, automatic colors.
func NewCharacterProperties() *CharacterProperties {
	return &CharacterProperties{
		Istd:            10,
		Hps:             20,
		Cv:              ColorAuto,
		CvUl:            ColorAuto,
		CharScale:       100,
		LidDefault:      0x0400,
		LidFE:           0x0400,
		UsePgsuSettings: true,
	}
}

func (c *CharacterProperties) Clone() *CharacterProperties {
	n := *c
	n.XstDispFldRM = bytes.Clone(c.XstDispFldRM)
	return &n
}

// Highlight reports whether the run has a highlight color. ico 0 means
// no highlight.
func (c *CharacterProperties) Highlight() bool { return c.IcoHighlight != 0 }

// CopyFrom replaces every field of c with a deep copy of src.
func (c *CharacterProperties) CopyFrom(src *CharacterProperties) {
	*c = *src.Clone()
}

func (c *CharacterProperties) Equal(o *CharacterProperties) bool {
	a, b := *c, *o
	if !bytes.Equal(a.XstDispFldRM, b.XstDispFldRM) {
		return false
	}
	a.XstDispFldRM, b.XstDispFldRM = nil, nil
	return reflect.DeepEqual(a, b)
}
