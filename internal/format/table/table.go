// Package table lays out aligned plain-text summaries.
package table

import (
	"strings"

	"github.com/muesli/reflow/ansi"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Field is one labelled line of a summary.
type Field struct {
	Label string
	Value string
}

// Format returns the rows padded according to the widest entry in each column.
// Trailing padding is trimmed from every line.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if width := ansi.PrintableRuneWidth(cell); width > widths[c] {
				widths[c] = width
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			pad := widths[c] - ansi.PrintableRuneWidth(cell)
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(strings.Repeat(" ", max(pad, 0)))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				b.WriteString(strings.Repeat(" ", max(pad, 0)))
			}
		}
		out[i] = strings.TrimRight(b.String(), " ")
	}
	return out
}

// Summary renders "Label:  value" lines with the values aligned. Fields with
// an empty value are skipped.
func Summary(fields []Field) []string {
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			continue
		}
		rows = append(rows, []string{f.Label + ":", f.Value})
	}
	return Format(rows, []Alignment{AlignRight, AlignLeft})
}
