package render

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/hanpama/msdoc/internal/document"
	"github.com/hanpama/msdoc/internal/props"
	"github.com/hanpama/msdoc/internal/sprm"
)

func TestOperations(t *testing.T) {
	grpprl := []byte{
		0x35, 0x08, 0x01,             // sprmCFBold
		0x43, 0x4A, 0x30, 0x00,       // sprmCHps
		0x0D, 0xC6, 0x02, 0x00, 0x00, // sprmPChgTabsPapx, empty
	}
	g, err := Operations("test", grpprl, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"0", "0x0835", "sprmCFBold", "CHP", "0x1"},
		{"3", "0x4A43", "sprmCHps", "CHP", "0x30"},
		{"7", "0xC60D", "sprmPChgTabsPapx", "PAP", "[2] 00 00"},
	}
	if len(g.Rows) != len(want) {
		t.Fatalf("rows = %v", g.Rows)
	}
	for i := range want {
		if strings.Join(g.Rows[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("row %d = %v, want %v", i, g.Rows[i], want[i])
		}
	}
}

func TestOperationsWrapsLongOperands(t *testing.T) {
	grpprl := append([]byte{0x0D, 0xC6, 20}, make([]byte, 20)...)
	g, err := Operations("", grpprl, 0)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(g.Rows[0][4], "\n")
	if len(lines) != 3 || lines[0] != "[20]" || lines[2] != "00 00 00 00" {
		t.Errorf("operand = %q", g.Rows[0][4])
	}
}

func TestOperationsTruncated(t *testing.T) {
	g, err := Operations("", []byte{0x35, 0x08, 0x01, 0x43, 0x4A}, 0)
	if !errors.Is(err, sprm.ErrTruncated) {
		t.Errorf("err = %v, want ErrTruncated", err)
	}
	if len(g.Rows) != 1 {
		t.Errorf("rows before the error = %d, want 1", len(g.Rows))
	}
}

func TestChanges(t *testing.T) {
	base := props.NewCharacterProperties()
	cur := base.Clone()
	cur.Bold = true
	cur.Hps = 48
	g := Changes("", base, cur)
	got := map[string]string{}
	for _, row := range g.Rows {
		got[row[0]] = row[2]
	}
	if len(got) != 2 || got["Bold"] != "true" || got["Hps"] != "48" {
		t.Errorf("changes = %v", g.Rows)
	}
	if g := Changes("", base, props.NewSectionProperties()); len(g.Rows) != 0 {
		t.Errorf("different types produced rows: %v", g.Rows)
	}
}

func TestGridWrite(t *testing.T) {
	g := &Grid{
		Title:  "CHPX fc 0x400-0x410",
		Header: []string{"sprm", "name"},
		Rows:   [][]string{{"0x0835", "sprmCFBold"}, {"0x4A43", "sprmCHps"}},
	}
	tests := []struct {
		format Format
		want   string
	}{
		{FormatText, "| sprmCFBold |"},
		{FormatCompact, "sprmCFBold"},
		{FormatMarkdown, "| 0x0835 | sprmCFBold |"},
		{FormatCSV, "0x0835,sprmCFBold"},
		{FormatHTML, "<td>sprmCFBold</td>"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := g.Write(&buf, tt.format); err != nil {
				t.Fatal(err)
			}
			t.Logf("\n%s", buf.String())
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output does not contain %q", tt.want)
			}
		})
	}
}

func TestGridWriteTextWidths(t *testing.T) {
	g := &Grid{
		Title:  "文書の表題",
		Header: []string{"field", "value"},
		Rows:   [][]string{{"Title", "報告書"}, {"Author", "J. Smith"}},
	}
	var buf bytes.Buffer
	if err := g.Write(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	checkAllLinesEqualWidth(t, buf.String())
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "Markdown", "csv", "html", "compact", ""} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("ParseFormat(yaml) succeeded")
	}
}

type runList struct {
	runs []document.Run
	err  error
}

func (l *runList) Next() (document.Run, error) {
	if len(l.runs) == 0 {
		if l.err != nil {
			return nil, l.err
		}
		return nil, io.EOF
	}
	run := l.runs[0]
	l.runs = l.runs[1:]
	return run, nil
}

func TestRenderRuns(t *testing.T) {
	scanner := &runList{runs: []document.Run{
		&document.SectionRun{CpStart: 0, CpEnd: 10, Grpprl: []byte{0x09, 0x30, 0x00}},
		&document.ParagraphRun{FcStart: 0x400, FcEnd: 0x410, Istd: 1},
		&document.CharacterRun{FcStart: 0x400, FcEnd: 0x408, Grpprl: []byte{0x35, 0x08, 0x01}},
	}}
	var buf bytes.Buffer
	if err := RenderRuns(scanner, &buf, FormatText, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"SEPX cp 0-10", "sprmSBkc", "CHPX fc 0x400-0x408", "sprmCFBold"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "PAPX") {
		t.Error("run without operations was rendered")
	}
}

func TestRenderRunsErrors(t *testing.T) {
	boom := errors.New("boom")
	if err := RenderRuns(&runList{err: boom}, io.Discard, FormatText, false); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestRenderRunsContinuesAfterBadGrpprl(t *testing.T) {
	for _, properties := range []bool{false, true} {
		scanner := &runList{runs: []document.Run{
			&document.CharacterRun{FcStart: 0x400, FcEnd: 0x408, Grpprl: []byte{0x43, 0x4A, 0x01}},
			&document.CharacterRun{FcStart: 0x408, FcEnd: 0x410, Grpprl: []byte{0x35, 0x08, 0x01}},
		}}
		var buf bytes.Buffer
		if err := RenderRuns(scanner, &buf, FormatText, properties); err != nil {
			t.Fatalf("properties %v: %v", properties, err)
		}
		out := buf.String()
		for _, want := range []string{"CHPX fc 0x400-0x408", unrecoverable, "truncated", "CHPX fc 0x408-0x410", "sprmCFBold"} {
			if !strings.Contains(out, want) {
				t.Errorf("properties %v: output does not contain %q\n%s", properties, want, out)
			}
		}
	}
}

func TestRenderRunsProperties(t *testing.T) {
	scanner := &runList{runs: []document.Run{
		&document.ParagraphRun{FcStart: 0x400, FcEnd: 0x410, Istd: 3, Grpprl: []byte{0x05, 0x24, 0x01}},
		&document.CharacterRun{FcStart: 0x400, FcEnd: 0x408, Grpprl: []byte{0x43, 0x4A, 0x30, 0x00}},
	}}
	var buf bytes.Buffer
	if err := RenderRuns(scanner, &buf, FormatCSV, true); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Istd,0,3", "Keep,false,true", "Hps,20,48"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q\n%s", want, out)
		}
	}
}
