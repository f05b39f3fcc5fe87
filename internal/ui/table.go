package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Table renders rows as aligned columns. Hangul and other wide runes take two
// terminal cells, so padding is computed on display width, not bytes.
type Table struct {
	Headers []string
	Rows    [][]string
}

// DisplayWidth returns the number of terminal cells s occupies.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r == 0, unicode.Is(unicode.Mn, r), unicode.IsControl(r):
		default:
			switch width.LookupRune(r).Kind() {
			case width.EastAsianWide, width.EastAsianFullwidth:
				n += 2
			default:
				n++
			}
		}
	}
	return n
}

// Pad right-pads s with spaces to w display cells.
func Pad(s string, w int) string {
	if gap := w - DisplayWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// Render writes the table to w. Short rows are padded with empty cells.
func (t Table) Render(w io.Writer) error {
	cols := len(t.Headers)
	for _, row := range t.Rows {
		cols = max(cols, len(row))
	}
	if cols == 0 {
		return nil
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			widths[i] = max(widths[i], DisplayWidth(cell))
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}

	line := func(row []string) string {
		cells := make([]string, cols)
		for i := range cells {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = Pad(cell, widths[i])
		}
		return strings.TrimRight(strings.Join(cells, "  "), " ")
	}

	if len(t.Headers) > 0 {
		if _, err := fmt.Fprintln(w, line(t.Headers)); err != nil {
			return err
		}
		rules := make([]string, cols)
		for i, wd := range widths {
			rules[i] = strings.Repeat("-", wd)
		}
		if _, err := fmt.Fprintln(w, strings.Join(rules, "  ")); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(w, line(row)); err != nil {
			return err
		}
	}
	return nil
}
