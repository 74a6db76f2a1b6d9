package sprm

import (
	"encoding/binary"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/hanpama/msdoc/internal/props"
)

func TestUncompressPAPChgTabsPapx(t *testing.T) {
	base := props.NewParagraphProperties()
	base.SetTabs([]int16{720, 1440}, []props.TabDescriptor{{}, {}})
	grpprl := []byte{
		0x0D, 0xC6, 0x0A,
		0x01, 0xD0, 0x02,             // delete 720
		0x02, 0xA0, 0x05, 0x70, 0x08, // add 1440, 2160
		0x02, 0x11,
	}
	got, err := UncompressPAP(base, grpprl, 0)
	if err != nil {
		t.Fatal(err)
	}
	wantPos := []int16{1440, 2160}
	wantTbd := []props.TabDescriptor{{Jc: 2}, {Jc: 1, Leader: 2}}
	if !slices.Equal(got.TabPositions, wantPos) {
		t.Errorf("TabPositions = %v, want %v", got.TabPositions, wantPos)
	}
	if !slices.Equal(got.Tabs, wantTbd) {
		t.Errorf("Tabs = %v, want %v", got.Tabs, wantTbd)
	}
	if len(base.TabPositions) != 2 || base.TabPositions[0] != 720 {
		t.Error("base tabs were modified")
	}
}

func TestUncompressPAPChgTabsTolerance(t *testing.T) {
	base := props.NewParagraphProperties()
	base.SetTabs([]int16{700, 1440}, nil)
	grpprl := []byte{
		0x15, 0xC6, 0x06,
		0x01, 0xD0, 0x02, 0x1E, 0x00, // delete 720 +/- 30
		0x00,
	}
	got, err := UncompressPAP(base, grpprl, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got.TabPositions, []int16{1440}) {
		t.Errorf("TabPositions = %v, want [1440]", got.TabPositions)
	}
}

func TestUncompressPAPChgTabsShortPayload(t *testing.T) {
	_, err := UncompressPAP(props.NewParagraphProperties(), []byte{0x0D, 0xC6, 0x02, 0x03, 0x00}, 0)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestUncompressPAPPositionCode(t *testing.T) {
	base := props.NewParagraphProperties()
	base.PcHorz = 2
	// pcVert 1, pcHorz 3 (unchanged).
	got, err := UncompressPAP(base, []byte{0x1B, 0x26, 0xD0}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got.PcVert != 1 || got.PcHorz != 2 {
		t.Errorf("PcVert = %d, PcHorz = %d, want 1, 2", got.PcVert, got.PcHorz)
	}
}

func TestUncompressPAPIncLvl(t *testing.T) {
	tests := []struct {
		name    string
		istd    uint16
		lvl     uint8
		operand byte
		istdOut uint16
		lvlOut  uint8
	}{
		{"raise", 3, 2, 0x02, 5, 4},
		{"clamp low", 3, 2, 0xF6, 1, 0},
		{"clamp high", 8, 7, 0x05, 9, 9},
		{"not a heading", 0, 0, 0x02, 0, 0},
		{"beyond headings", 12, 0, 0x01, 12, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := props.NewParagraphProperties()
			base.Istd = tt.istd
			base.Lvl = tt.lvl
			got, err := UncompressPAP(base, []byte{0x02, 0x26, tt.operand}, 0)
			if err != nil {
				t.Fatal(err)
			}
			if got.Istd != tt.istdOut || got.Lvl != tt.lvlOut {
				t.Errorf("istd, lvl = %d, %d, want %d, %d", got.Istd, got.Lvl, tt.istdOut, tt.lvlOut)
			}
		})
	}
}

func TestUncompressPAPNestAndDtap(t *testing.T) {
	base := props.NewParagraphProperties()
	base.DxaLeft = 100
	base.Itap = 1
	grpprl := []byte{
		0x10, 0x46, 0xD4, 0xFE,             // nest -300
		0x4A, 0x66, 0x01, 0x00, 0x00, 0x00, // dtap +1
	}
	got, err := UncompressPAP(base, grpprl, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got.DxaLeft != 0 {
		t.Errorf("DxaLeft = %d, want 0", got.DxaLeft)
	}
	if got.Itap != 2 {
		t.Errorf("Itap = %d, want 2", got.Itap)
	}
}

func TestUncompressPAPNestOverflow(t *testing.T) {
	tests := []struct {
		left int16
		nest int16
		want int16
	}{
		{30000, 10000, math.MaxInt16},
		{-100, -32000, 0},
		{500, -200, 300},
	}
	for _, tt := range tests {
		base := props.NewParagraphProperties()
		base.DxaLeft = tt.left
		grpprl := binary.LittleEndian.AppendUint16([]byte{0x10, 0x46}, uint16(tt.nest))
		got, err := UncompressPAP(base, grpprl, 0)
		if err != nil {
			t.Fatal(err)
		}
		if got.DxaLeft != tt.want {
			t.Errorf("DxaLeft %d nest %d = %d, want %d", tt.left, tt.nest, got.DxaLeft, tt.want)
		}
	}
}

func TestUncompressPAPX(t *testing.T) {
	got, err := UncompressPAPX(props.NewParagraphProperties(), []byte{0x05, 0x00, 0x05, 0x24, 0x01})
	if err != nil {
		t.Fatal(err)
	}
	if got.Istd != 5 || !got.Keep {
		t.Errorf("Istd = %d, Keep = %v", got.Istd, got.Keep)
	}
	if _, err := UncompressPAPX(props.NewParagraphProperties(), []byte{0x05}); !errors.Is(err, ErrTruncated) {
		t.Errorf("err = %v, want ErrTruncated", err)
	}
}

func TestCompressPAPRoundTrip(t *testing.T) {
	old := props.NewParagraphProperties()
	old.SetTabs([]int16{720}, []props.TabDescriptor{{}})

	cur := old.Clone()
	cur.Istd = 2
	cur.Jc = 1
	cur.JcLog = 2
	cur.Keep = true
	cur.KeepFollow = true
	cur.WidowControl = false
	cur.InTable = true
	cur.Ilvl = 3
	cur.Ilfo = 4
	cur.Lvl = 1
	cur.DxaLeft = 720
	cur.DxaRight = 360
	cur.DxaLeft1 = -360
	cur.DyaBefore = 120
	cur.DyaAfter = 240
	cur.Lspd = props.LineSpacingDescriptor{Line: -360}
	cur.Dcs = props.DropCapSpecifier{Type: 1, Lines: 3}
	cur.PcVert = 2
	cur.PcHorz = 1
	cur.DxaAbs = -4
	cur.DyaAbs = 200
	cur.DxaWidth = 3000
	cur.Wr = 2
	cur.BrcTop = props.BorderCode{LineWidth: 8, Type: 1}
	cur.BrcBar = props.BorderCode{LineWidth: 2, Type: 3, Ico: 6, Frame: true}
	cur.Shd = props.ShadingDescriptor{CvFore: props.ColorrefFromRGB(9, 8, 7), Ipat: 2}
	cur.SetTabs([]int16{2880, 1440}, []props.TabDescriptor{{Jc: 3, Leader: 1}, {Jc: 1}})
	cur.Itap = 2
	cur.InnerTableCell = true
	cur.Rsid = 0x00AB12CD
	cur.TextFlow = 1
	cur.WAlignFnt = 2

	grpprl := CompressPAP(cur, old)
	got, err := UncompressPAP(old, grpprl, 0)
	if err != nil {
		t.Fatalf("UncompressPAP: %v", err)
	}
	if !got.Equal(cur) {
		t.Errorf("round trip mismatch\n got %+v\nwant %+v", got, cur)
	}
}

func TestCompressPAPEqual(t *testing.T) {
	p := props.NewParagraphProperties()
	p.SetTabs([]int16{720}, nil)
	if grpprl := CompressPAP(p, p.Clone()); len(grpprl) != 0 {
		t.Errorf("CompressPAP of equal properties = % X", grpprl)
	}
}
