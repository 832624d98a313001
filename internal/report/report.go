// Package report renders lint findings in the output formats fmtcheck
// supports.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMissingInterface  = errors.New("missing required interface")
	ErrInvalidTemplate   = errors.New("invalid template")
)

// Format identifies an output format.
type Format string

const (
	Text     Format = "text"
	Table    Format = "table"
	JSON     Format = "json"
	JSONL    Format = "jsonl"
	YAML     Format = "yaml"
	CSV      Format = "csv"
	Markdown Format = "markdown"
)

// Formats returns every named format in display order. GoTemplate formats
// are accepted in addition.
func Formats() []Format {
	return []Format{Text, Table, JSON, JSONL, YAML, CSV, Markdown}
}

// ParseFormat resolves a case-insensitive format name or a
// go-template=<tmpl> string.
func ParseFormat(s string) (Format, error) {
	if _, ok := templateText(Format(s)); ok {
		return Format(s), nil
	}
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Rower provides row data. Required for Text, Table, CSV and Markdown.
type Rower interface {
	Row() []string
}

// Headed provides column headers for Table and CSV. Markdown requires it.
type Headed interface {
	Header() []string
}

// Options tunes rendering. The zero value is plain, uncoloured output.
type Options struct {
	// Color enables ANSI styling in the Text format.
	Color bool
	// Indent is used by JSON and YAML. Empty means compact JSON and the
	// default YAML indent.
	Indent string
	// Border selects the Table frame.
	Border BorderStyle
	// MaxWidths caps Table column widths; longer cells wrap.
	MaxWidths []int
	// Comma overrides the CSV delimiter.
	Comma rune
}

// Palette styles the parts of a Text line.
type Palette struct {
	Location *color.Color
	Kind     *color.Color
	Detail   *color.Color
}

// NewPalette returns the palette used by Text, with colour switched on or
// off regardless of the global color.NoColor setting.
func NewPalette(enabled bool) Palette {
	p := Palette{
		Location: color.New(color.Bold),
		Kind:     color.New(color.FgRed, color.Bold),
		Detail:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.Location, p.Kind, p.Detail} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Write renders items to w in format f.
func Write[T any](w io.Writer, f Format, opts Options, items ...T) error {
	switch f {
	case Text:
		return writeText(w, opts, items)
	case Table:
		return writeTable(w, opts, items)
	case JSON:
		return writeJSON(w, opts, items)
	case JSONL:
		return writeJSONL(w, items)
	case YAML:
		return writeYAML(w, opts, items)
	case CSV:
		return writeCSV(w, opts, items)
	case Markdown:
		return writeMarkdown(w, items)
	default:
		if text, ok := templateText(f); ok {
			return writeGoTemplate(w, text, items)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

func rows[T any](f Format, items []T) ([][]string, error) {
	out := make([][]string, len(items))
	for i, item := range items {
		r, ok := any(item).(Rower)
		if !ok {
			return nil, fmt.Errorf("%w: format %q requires Rower, not implemented by %T", ErrMissingInterface, f, item)
		}
		out[i] = r.Row()
	}
	return out, nil
}

func header[T any](items []T) []string {
	if len(items) == 0 {
		return nil
	}
	if h, ok := any(items[0]).(Headed); ok {
		return h.Header()
	}
	return nil
}
