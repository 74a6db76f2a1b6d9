package render

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/alexeyco/simpletable"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/hanpama/msdoc/internal/document"
	"github.com/hanpama/msdoc/internal/props"
	"github.com/hanpama/msdoc/internal/sprm"
)

// Format selects how a Grid is written.
type Format string

const (
	FormatText     Format = "text"
	FormatCompact  Format = "compact"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
)

// ParseFormat accepts the names of the Format constants.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatCompact, FormatMarkdown, FormatCSV, FormatHTML:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Grid is a titled table of strings: one header row and any number of
// body rows.
type Grid struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Write renders the grid in the given format. FormatText uses the ASCII
// renderer, FormatCompact uses simpletable and the document formats
// go through go-pretty.
func (g *Grid) Write(w io.Writer, format Format) error {
	switch format {
	case FormatText, "":
		_, err := fmt.Fprint(w, newTextLayout(g).render())
		return err
	case FormatCompact:
		_, err := fmt.Fprintln(w, g.compact())
		return err
	}

	tw := table.NewWriter()
	if g.Title != "" {
		tw.SetTitle("%s", g.Title)
	}
	tw.AppendHeader(toRow(g.Header))
	for _, row := range g.Rows {
		tw.AppendRow(toRow(row))
	}

	var out string
	switch format {
	case FormatMarkdown:
		out = tw.RenderMarkdown()
	case FormatCSV:
		out = tw.RenderCSV()
	case FormatHTML:
		out = tw.RenderHTML()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

func (g *Grid) compact() string {
	st := simpletable.New()
	st.Header = &simpletable.Header{}
	for _, h := range g.Header {
		st.Header.Cells = append(st.Header.Cells, &simpletable.Cell{Align: simpletable.AlignCenter, Text: h})
	}
	for _, row := range g.Rows {
		cells := make([]*simpletable.Cell, len(g.Header))
		for i := range cells {
			cells[i] = &simpletable.Cell{Align: simpletable.AlignLeft}
			if i < len(row) {
				cells[i].Text = row[i]
			}
		}
		st.Body.Cells = append(st.Body.Cells, cells)
	}
	st.SetStyle(simpletable.StyleCompactLite)
	if g.Title == "" {
		return st.String()
	}
	return g.Title + "\n" + st.String()
}

// Operations lists the sprms of grpprl from offset onwards. When decoding
// stops early the grid holds the operations read so far and the error is
// returned alongside it.
func Operations(title string, grpprl []byte, offset int) (*Grid, error) {
	g := &Grid{
		Title:  title,
		Header: []string{"offset", "sprm", "name", "kind", "operand"},
	}
	it := sprm.NewIterator(grpprl, offset)
	for it.HasNext() {
		at := it.Offset()
		op, err := it.Next()
		if err != nil {
			return g, err
		}
		name, ok := sprm.Name(op.Sprm())
		if !ok {
			name = "?"
		}
		g.Rows = append(g.Rows, []string{
			fmt.Sprintf("%d", at),
			fmt.Sprintf("0x%04X", op.Sprm()),
			name,
			op.Kind().String(),
			operandText(op),
		})
	}
	return g, nil
}

// hexLine is the number of payload bytes per line of a variable operand.
const hexLine = 16

func operandText(op sprm.Operation) string {
	if sprm.OperandWidth(op.Sprm()) != sprm.Variable {
		return fmt.Sprintf("0x%X", uint32(op.Operand()))
	}
	data := op.Data()
	lines := []string{fmt.Sprintf("[%d]", len(data))}
	for len(data) > 0 {
		n := min(len(data), hexLine)
		lines = append(lines, fmt.Sprintf("% X", data[:n]))
		data = data[n:]
	}
	if len(lines) == 2 {
		return lines[0] + " " + lines[1]
	}
	return strings.Join(lines, "\n")
}

// Changes lists the exported fields that differ between two values of the
// same struct type.
func Changes(title string, base, cur any) *Grid {
	g := &Grid{
		Title:  title,
		Header: []string{"field", "base", "value"},
	}
	bv := reflect.Indirect(reflect.ValueOf(base))
	cv := reflect.Indirect(reflect.ValueOf(cur))
	if bv.Kind() != reflect.Struct || bv.Type() != cv.Type() {
		return g
	}
	for i := 0; i < bv.NumField(); i++ {
		field := bv.Type().Field(i)
		if !field.IsExported() {
			continue
		}
		a, b := bv.Field(i).Interface(), cv.Field(i).Interface()
		if reflect.DeepEqual(a, b) {
			continue
		}
		g.Rows = append(g.Rows, []string{field.Name, fmt.Sprintf("%v", a), fmt.Sprintf("%v", b)})
	}
	return g
}

// unrecoverable marks a grid row standing for a grpprl that could not be
// decoded. The run keeps the defaults of its kind.
const unrecoverable = "unrecoverable formatting"

// RenderRuns writes one operations grid per formatting run of scanner.
// With properties set, each grid is followed by the fields the run
// changes against the default property set of its kind. A run whose
// grpprl cannot be decoded is reported in its grid and does not stop the
// rest; only scanner and writer errors are returned.
func RenderRuns(scanner document.RunScanner, w io.Writer, format Format, properties bool) error {
	for {
		run, err := scanner.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("error reading runs: %w", err)
		}

		var g *Grid
		switch r := run.(type) {
		case *document.SectionRun:
			g, err = Operations(fmt.Sprintf("SEPX cp %d-%d", r.CpStart, r.CpEnd), r.Grpprl, 0)
		case *document.ParagraphRun:
			g, err = Operations(fmt.Sprintf("PAPX fc 0x%X-0x%X istd %d", r.FcStart, r.FcEnd, r.Istd), r.Grpprl, 0)
		case *document.CharacterRun:
			g, err = Operations(fmt.Sprintf("CHPX fc 0x%X-0x%X", r.FcStart, r.FcEnd), r.Grpprl, 0)
		default:
			continue
		}
		if err != nil {
			g.Rows = append(g.Rows, []string{"", "", unrecoverable, "", err.Error()})
		}
		if len(g.Rows) == 0 {
			continue
		}
		if err := g.Write(w, format); err != nil {
			return err
		}

		if properties {
			changes, err := runChanges(run)
			if err != nil {
				changes = &Grid{
					Header: []string{"field", "base", "value"},
					Rows:   [][]string{{unrecoverable, "", err.Error()}},
				}
			}
			if err := changes.Write(w, format); err != nil {
				return err
			}
		}
		fmt.Fprintln(w)
	}
}

// runChanges decodes a run against the defaults of its property kind.
func runChanges(run document.Run) (*Grid, error) {
	switch r := run.(type) {
	case *document.SectionRun:
		base := props.NewSectionProperties()
		cur, err := sprm.UncompressSEP(base, r.Grpprl, 0)
		if err != nil {
			return nil, err
		}
		return Changes("", base, cur), nil
	case *document.ParagraphRun:
		base := props.NewParagraphProperties()
		base.Istd = r.Istd
		cur, err := sprm.UncompressPAP(base, r.Grpprl, 0)
		if err != nil {
			return nil, err
		}
		return Changes("", props.NewParagraphProperties(), cur), nil
	case *document.CharacterRun:
		base := props.NewCharacterProperties()
		cur, err := sprm.UncompressCHP(base, r.Grpprl, 0)
		if err != nil {
			return nil, err
		}
		return Changes("", base, cur), nil
	}
	return &Grid{}, nil
}
