package props

import (
	"reflect"
	"slices"
)

// ParagraphProperties is the PAP: formatting of a paragraph.
type ParagraphProperties struct {
	Istd  uint16
	Lvl   uint8
	Ilvl  uint8
	Ilfo  int16
	Jc    uint8
	JcLog uint8

	SideBySide      bool
	Keep            bool
	KeepFollow      bool
	PageBreakBefore bool
	NoLnn           bool
	InTable         bool
	Ttp             bool
	InnerTableCell  bool
	InnerTtp        bool
	NoAutoHyph      bool
	Locked          bool
	WidowControl    bool
	Kinsoku         bool
	WordWrap        bool
	OverflowPunct   bool
	TopLinePunct    bool
	AutoSpaceDE     bool
	AutoSpaceDN     bool
	BiDi            bool
	NumRMIns        bool
	UsePgsuSettings bool
	AdjustRight     bool

	Brcl uint8
	Brcp uint8

	DxaRight    int16
	DxaLeft     int16
	DxaLeft1    int16
	DyaBefore   uint16
	DyaAfter    uint16
	DxaAbs      int16
	DyaAbs      int16
	DxaWidth    int16
	DyaHeight   uint16
	DyaFromText int16
	DxaFromText int16
	Lspd        LineSpacingDescriptor
	Dcs         DropCapSpecifier

	PcVert    uint8
	PcHorz    uint8
	Wr        uint8
	WAlignFnt uint16
	TextFlow  uint16
	Itap      int32
	Rsid      int32

	BrcTop     BorderCode
	BrcLeft    BorderCode
	BrcBottom  BorderCode
	BrcRight   BorderCode
	BrcBetween BorderCode
	BrcBar     BorderCode
	Shd        ShadingDescriptor

	// Tab stops, sorted by position. Tabs[i] describes TabPositions[i].
	TabPositions []int16
	Tabs         []TabDescriptor
}

// NewParagraphProperties returns the PAP of a paragraph in the Normal
// style with nothing applied.
func NewParagraphProperties() *ParagraphProperties {
	return &ParagraphProperties{
		Lspd:         DefaultLineSpacing,
		WidowControl: true,
		WordWrap:     true,
		AutoSpaceDE:  true,
		AutoSpaceDN:  true,
		WAlignFnt:    4,
	}
}

func (p *ParagraphProperties) Clone() *ParagraphProperties {
	n := *p
	n.TabPositions = slices.Clone(p.TabPositions)
	n.Tabs = slices.Clone(p.Tabs)
	return &n
}

func (p *ParagraphProperties) Equal(o *ParagraphProperties) bool {
	a, b := *p, *o
	if !slices.Equal(a.TabPositions, b.TabPositions) || !slices.Equal(a.Tabs, b.Tabs) {
		return false
	}
	a.TabPositions, a.Tabs = nil, nil
	b.TabPositions, b.Tabs = nil, nil
	return reflect.DeepEqual(a, b)
}

// SetTabs replaces the tab stops. The positions are sorted; descriptors
// follow their positions.
func (p *ParagraphProperties) SetTabs(positions []int16, tabs []TabDescriptor) {
	idx := make([]int, len(positions))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int { return int(positions[a]) - int(positions[b]) })
	p.TabPositions = make([]int16, len(idx))
	p.Tabs = make([]TabDescriptor, len(idx))
	for i, j := range idx {
		p.TabPositions[i] = positions[j]
		if j < len(tabs) {
			p.Tabs[i] = tabs[j]
		}
	}
}
