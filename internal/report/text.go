package report

import (
	"fmt"
	"io"
	"strings"
)

// writeText prints one line per item: the first column is the location, the
// second the kind, the third the message, and any further columns follow in
// brackets.
func writeText[T any](w io.Writer, opts Options, items []T) error {
	rs, err := rows(Text, items)
	if err != nil {
		return err
	}
	p := NewPalette(opts.Color)
	for _, r := range rs {
		if _, err := fmt.Fprintln(w, textLine(p, r)); err != nil {
			return err
		}
	}
	return nil
}

func textLine(p Palette, row []string) string {
	var sb strings.Builder
	for i, cell := range row {
		switch i {
		case 0:
			sb.WriteString(p.Location.Sprint(cell))
			sb.WriteString(": ")
		case 1:
			sb.WriteString(p.Kind.Sprint(cell))
			sb.WriteString(": ")
		case 2:
			sb.WriteString(cell)
		default:
			if cell == "" {
				continue
			}
			sb.WriteString(" [")
			sb.WriteString(p.Detail.Sprint(cell))
			sb.WriteString("]")
		}
	}
	return strings.TrimSuffix(sb.String(), ": ")
}
