package sprm

import (
	"testing"

	"github.com/hanpama/msdoc/internal/props"
)

func TestUncompressSEPOrientation(t *testing.T) {
	base := props.NewSectionProperties()
	got, err := UncompressSEP(base, []byte{0x1D, 0x30, 0x02}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Landscape {
		t.Error("Landscape = false after orientation 2")
	}
	got, err = UncompressSEP(got, []byte{0x1D, 0x30, 0x01}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got.Landscape {
		t.Error("Landscape = true after orientation 1")
	}
}

func TestUncompressSEPPage(t *testing.T) {
	grpprl := []byte{
		0x1F, 0xB0, 0xE0, 0x3D, // xaPage 15840
		0x20, 0xB0, 0xD0, 0x2F, // yaPage 12240
		0x09, 0x30, 0x00,       // bkc continuous
		0x0B, 0x50, 0x01, 0x00, // two columns
		0x35, 0x08, 0x01,       // character sprm, skipped
	}
	got, err := UncompressSEP(props.NewSectionProperties(), grpprl, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got.XaPage != 15840 || got.YaPage != 12240 {
		t.Errorf("page = %dx%d", got.XaPage, got.YaPage)
	}
	if got.Bkc != 0 || got.CcolM1 != 1 {
		t.Errorf("Bkc = %d, CcolM1 = %d", got.Bkc, got.CcolM1)
	}
}

func TestCompressSEPRoundTrip(t *testing.T) {
	old := props.NewSectionProperties()
	cur := old.Clone()
	cur.Bkc = 0
	cur.TitlePage = true
	cur.Landscape = true
	cur.XaPage = 15840
	cur.YaPage = 12240
	cur.DxaLeft = 1440
	cur.DxaRight = 1440
	cur.DyaTop = -1440
	cur.DyaBottom = 720
	cur.DzaGutter = 360
	cur.CcolM1 = 2
	cur.EvenlySpaced = false
	cur.DxaColumns = 360
	cur.NfcPgn = 2
	cur.PgnStart = 5
	cur.PgnRestart = true
	cur.Lnc = 1
	cur.NLnnMod = 5
	cur.DxaLnn = 240
	cur.LnnMin = 1
	cur.Vjc = 1
	cur.BrcTop = props.BorderCode{LineWidth: 6, Type: 1}
	cur.PgbProp = 0x20
	cur.DxtCharSpace = 4096
	cur.DyaLinePitch = 360
	cur.Clm = 1
	cur.TextFlow = 1
	cur.RncFtn = 1
	cur.NFtn = 3
	cur.NfcFtnRef = 4
	cur.RncEdn = 2
	cur.NEdn = 7
	cur.NfcEdnRef = 2
	cur.PropRMark = true
	cur.IbstPropRMark = 1
	cur.DttmPropRMark = props.DateAndTime{Minute: 5, Hour: 9, Day: 1, Month: 1, Year: 110, Weekday: 5}
	cur.OlstAnm = []byte{1, 2, 3, 4}
	cur.BiDi = true
	cur.RTLGutter = true

	grpprl := CompressSEP(cur, old)
	got, err := UncompressSEP(old, grpprl, 0)
	if err != nil {
		t.Fatalf("UncompressSEP: %v", err)
	}
	if !got.Equal(cur) {
		t.Errorf("round trip mismatch\n got %+v\nwant %+v", got, cur)
	}
}

func TestCompressSEPEqual(t *testing.T) {
	s := props.NewSectionProperties()
	if grpprl := CompressSEP(s, s.Clone()); len(grpprl) != 0 {
		t.Errorf("CompressSEP of equal properties = % X", grpprl)
	}
}
