package msdoc

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"chp", KindCHP},
		{"PAP", KindPAP},
		{"Sep", KindSEP},
		{"tap", KindTAP},
		{"pic", KindPIC},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseKind(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseKind("row"); err == nil {
		t.Error("ParseKind(row) succeeded")
	}
}

func TestCompressThenUncompress(t *testing.T) {
	base := NewCharacterProperties()
	cur := base.Clone()
	cur.Bold = true
	cur.Hps = 32

	grpprl := CompressCHP(cur, base)
	ops, err := Operations(grpprl, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 2 {
		t.Errorf("operations = %v", ops)
	}
	got, err := UncompressCHP(base, grpprl, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(cur) {
		t.Errorf("got %+v", got)
	}
}

func TestDumpGrpprl(t *testing.T) {
	var buf bytes.Buffer
	err := DumpGrpprl(KindCHP, []byte{0x35, 0x08, 0x01}, &buf, WithFormat(FormatMarkdown), WithProperties(true))
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	t.Logf("\n%s", out)
	for _, want := range []string{"sprmCFBold", "| Bold", "true"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
}

func TestDumpGrpprlKinds(t *testing.T) {
	tests := []struct {
		kind   Kind
		grpprl []byte
		field  string
	}{
		{KindPAP, []byte{0x03, 0x24, 0x01}, "Jc"},
		{KindSEP, []byte{0x1D, 0x30, 0x02}, "Landscape"},
		{KindTAP, []byte{0x00, 0x54, 0x02, 0x00}, "Jc"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := DumpGrpprl(tt.kind, tt.grpprl, &buf, WithFormat(FormatCSV), WithProperties(true)); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(buf.String(), "\n"+tt.field+",") {
				t.Errorf("output does not list %s\n%s", tt.field, buf.String())
			}
		})
	}
}

func TestDumpGrpprlErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := DumpGrpprl(KindCHP, []byte{0x43, 0x4A, 0x01}, &buf); !errors.Is(err, ErrTruncated) {
		t.Errorf("err = %v, want ErrTruncated", err)
	}
	if err := DumpGrpprl(KindPIC, nil, &buf, WithProperties(true)); err == nil {
		t.Error("PIC property set was dumped")
	}
}

func TestDumpDocumentRejectsNonWordInput(t *testing.T) {
	var buf bytes.Buffer
	if err := DumpDocument(strings.NewReader("not a compound file"), &buf); err == nil {
		t.Error("DumpDocument accepted plain text")
	}
}
