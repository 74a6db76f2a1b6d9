package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// textLayout is a Grid measured for the ASCII renderer. Every cell is
// split into display lines; the title, when present, spans all columns.
type textLayout struct {
	title  []string
	rows   [][][]string // rows[0] is the header
	widths []int        // content width of each column
}

func newTextLayout(g *Grid) *textLayout {
	cols := len(g.Header)
	for _, row := range g.Rows {
		cols = max(cols, len(row))
	}
	cols = max(cols, 1)

	l := &textLayout{widths: make([]int, cols)}
	if g.Title != "" {
		l.title = strings.Split(g.Title, "\n")
	}
	for _, row := range append([][]string{g.Header}, g.Rows...) {
		cells := make([][]string, cols)
		for col := range cells {
			text := ""
			if col < len(row) {
				text = row[col]
			}
			cells[col] = strings.Split(text, "\n")
		}
		l.rows = append(l.rows, cells)
	}
	l.computeWidths()
	return l
}

func (l *textLayout) computeWidths() {
	for i := range l.widths {
		l.widths[i] = 1
	}
	for _, row := range l.rows {
		for col, lines := range row {
			l.widths[col] = max(l.widths[col], linesWidth(lines))
		}
	}

	// Widen the columns evenly when the title does not fit
	need := linesWidth(l.title)
	have := l.totalWidth()
	if need > have {
		extra := need - have
		for col := range l.widths {
			l.widths[col] += extra / len(l.widths)
			if col < extra%len(l.widths) {
				l.widths[col]++
			}
		}
	}
}

// totalWidth is the content width of a cell spanning every column.
func (l *textLayout) totalWidth() int {
	total := 3 * (len(l.widths) - 1)
	for _, w := range l.widths {
		total += w
	}
	return total
}

func (l *textLayout) render() string {
	var sb strings.Builder

	sb.WriteString(l.rule('-', l.title != nil))
	if l.title != nil {
		for _, line := range l.title {
			sb.WriteString("| " + pad(line, l.totalWidth()) + " |\n")
		}
		sb.WriteString(l.rule('-', false))
	}
	for i, row := range l.rows {
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for n := 0; n < height; n++ {
			sb.WriteString("|")
			for col, lines := range row {
				text := ""
				if n < len(lines) {
					text = lines[n]
				}
				sb.WriteString(" " + pad(text, l.widths[col]) + " |")
			}
			sb.WriteString("\n")
		}
		if i == 0 {
			sb.WriteString(l.rule('=', false))
		} else {
			sb.WriteString(l.rule('-', false))
		}
	}
	return sb.String()
}

// rule draws a horizontal border. With spanned set the column joints are
// omitted, for the line above the title.
func (l *textLayout) rule(fill byte, spanned bool) string {
	var sb strings.Builder
	sb.WriteByte('+')
	for col, w := range l.widths {
		sb.WriteString(strings.Repeat(string(fill), w+2))
		if col < len(l.widths)-1 {
			if spanned {
				sb.WriteByte(fill)
			} else {
				sb.WriteByte('+')
			}
		}
	}
	sb.WriteString("+\n")
	return sb.String()
}

func pad(text string, width int) string {
	return text + strings.Repeat(" ", max(width-displayWidth(text), 0))
}

func linesWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, displayWidth(line))
	}
	return w
}

// displayWidth counts terminal cells: CJK characters take two, combining
// marks none.
func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}
