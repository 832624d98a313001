package report

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

const goTemplatePrefix = "go-template="

// GoTemplate returns a Format that executes tmpl once per item, each
// followed by a newline.
func GoTemplate(tmpl string) Format {
	return Format(goTemplatePrefix + tmpl)
}

func templateText(f Format) (string, bool) {
	return strings.CutPrefix(string(f), goTemplatePrefix)
}

func writeGoTemplate[T any](w io.Writer, text string, items []T) error {
	tmpl, err := template.New("report").Parse(text)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	for _, item := range items {
		if err := tmpl.Execute(w, item); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
