package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// BorderStyle controls table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
}

func writeTable[T any](w io.Writer, opts Options, items []T) error {
	if len(items) == 0 {
		return nil
	}
	body, err := rows(Table, items)
	if err != nil {
		return err
	}
	head := header(items)

	numCols := colCount(head, body)
	widths := computeWidths(numCols, head, body)
	for i, limit := range opts.MaxWidths {
		if i < numCols && limit > 0 && widths[i] > limit {
			widths[i] = limit
		}
	}

	if opts.Border == BorderNone {
		return renderPlainTable(w, head, body, widths)
	}
	bc, ok := borderSets[opts.Border]
	if !ok {
		bc = borderSets[BorderRounded]
	}
	return renderBorderedTable(w, head, body, widths, bc)
}

func colCount(head []string, body [][]string) int {
	n := len(head)
	for _, row := range body {
		n = max(n, len(row))
	}
	return n
}

func computeWidths(numCols int, head []string, body [][]string) []int {
	widths := make([]int, numCols)
	measure := func(cells []string) {
		for i, cell := range cells {
			if i < numCols {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}
	measure(head)
	for _, row := range body {
		measure(row)
	}
	return widths
}

// wrapCell splits s into lines of at most width display columns.
func wrapCell(s string, width int) []string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return []string{s}
	}
	var lines []string
	for len(s) > 0 {
		line := runewidth.Truncate(s, width, "")
		if line == "" {
			// A single rune wider than the column still has to advance.
			r := []rune(s)
			line = string(r[0])
		}
		lines = append(lines, line)
		s = s[len(line):]
	}
	return lines
}

// wrapRow returns, per column, the visual lines of a row.
func wrapRow(cells []string, widths []int) ([][]string, int) {
	wrapped := make([][]string, len(widths))
	n := 1
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		wrapped[i] = wrapCell(cell, width)
		n = max(n, len(wrapped[i]))
	}
	return wrapped, n
}

func lineAt(wrapped [][]string, col, line int) string {
	if line < len(wrapped[col]) {
		return wrapped[col][line]
	}
	return ""
}

func alignCell(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}

// --- Plain table (BorderNone) ---

func renderPlainTable(w io.Writer, head []string, body [][]string, widths []int) error {
	if len(head) > 0 {
		if err := writePlainRow(w, head, widths); err != nil {
			return err
		}
		sep := make([]string, len(widths))
		for i, width := range widths {
			sep[i] = strings.Repeat("-", width)
		}
		if _, err := fmt.Fprintln(w, strings.Join(sep, "  ")); err != nil {
			return err
		}
	}
	for _, row := range body {
		if err := writePlainRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func writePlainRow(w io.Writer, cells []string, widths []int) error {
	wrapped, n := wrapRow(cells, widths)
	for line := range n {
		parts := make([]string, len(widths))
		for i, width := range widths {
			parts[i] = alignCell(lineAt(wrapped, i, line), width)
		}
		text := strings.TrimRight(strings.Join(parts, "  "), " ")
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}

// --- Bordered table ---

func renderBorderedTable(w io.Writer, head []string, body [][]string, widths []int, bc borderChars) error {
	if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
		return err
	}
	if len(head) > 0 {
		if err := drawBorderedRow(w, head, widths, bc.vertical); err != nil {
			return err
		}
		if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
			return err
		}
	}
	for _, row := range body {
		if err := drawBorderedRow(w, row, widths, bc.vertical); err != nil {
			return err
		}
	}
	return drawHLine(w, widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedRow(w io.Writer, cells []string, widths []int, vert string) error {
	wrapped, n := wrapRow(cells, widths)
	for line := range n {
		var sb strings.Builder
		sb.WriteString(vert)
		for i, width := range widths {
			sb.WriteString(" ")
			sb.WriteString(alignCell(lineAt(wrapped, i, line), width))
			sb.WriteString(" ")
			sb.WriteString(vert)
		}
		if _, err := fmt.Fprintln(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}
