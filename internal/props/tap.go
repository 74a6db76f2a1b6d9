package props

import (
	"reflect"
	"slices"
)

// TableProperties is the TAP: layout of one table row.
type TableProperties struct {
	Jc           int16
	DxaGapHalf   int16
	DyaRowHeight int16
	CantSplit    bool
	TableHeader  bool
	BiDi         bool
	Tlp          TableAutoformatLookSpecifier

	BrcTop        BorderCode
	BrcLeft       BorderCode
	BrcBottom     BorderCode
	BrcRight      BorderCode
	BrcHorizontal BorderCode
	BrcVertical   BorderCode

	// ItcMac is the number of cells. RgdxaCenter holds ItcMac+1 cell
	// boundaries and Rgtc one descriptor per cell.
	ItcMac      int16
	RgdxaCenter []int16
	Rgtc        []TableCellDescriptor
	CellShading []ShadingDescriptor
}

func NewTableProperties() *TableProperties {
	return &TableProperties{}
}

// NewTablePropertiesCells returns a TAP sized for itcMac cells.
func NewTablePropertiesCells(itcMac int16) *TableProperties {
	return &TableProperties{
		ItcMac:      itcMac,
		RgdxaCenter: make([]int16, itcMac+1),
		Rgtc:        make([]TableCellDescriptor, itcMac),
	}
}

func (t *TableProperties) Clone() *TableProperties {
	n := *t
	n.RgdxaCenter = slices.Clone(t.RgdxaCenter)
	n.Rgtc = slices.Clone(t.Rgtc)
	n.CellShading = slices.Clone(t.CellShading)
	return &n
}

func (t *TableProperties) Equal(o *TableProperties) bool {
	a, b := *t, *o
	if !slices.Equal(a.RgdxaCenter, b.RgdxaCenter) ||
		!slices.Equal(a.Rgtc, b.Rgtc) ||
		!slices.Equal(a.CellShading, b.CellShading) {
		return false
	}
	a.RgdxaCenter, a.Rgtc, a.CellShading = nil, nil, nil
	b.RgdxaCenter, b.Rgtc, b.CellShading = nil, nil, nil
	return reflect.DeepEqual(a, b)
}

// Borders returns the six table borders in sprmTTableBorders order: top,
// left, bottom, right, inside horizontal, inside vertical.
func (t *TableProperties) Borders() [6]*BorderCode {
	return [6]*BorderCode{&t.BrcTop, &t.BrcLeft, &t.BrcBottom, &t.BrcRight, &t.BrcHorizontal, &t.BrcVertical}
}

// CellRange clamps [first, lim) to the existing cells.
func (t *TableProperties) CellRange(first, lim int) (int, int) {
	n := len(t.Rgtc)
	first = max(0, min(first, n))
	lim = max(first, min(lim, n))
	return first, lim
}
