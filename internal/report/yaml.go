package report

import (
	"io"

	"gopkg.in/yaml.v3"
)

func writeYAML[T any](w io.Writer, opts Options, items []T) error {
	enc := yaml.NewEncoder(w)
	if opts.Indent != "" {
		enc.SetIndent(len(opts.Indent))
	}
	if items == nil {
		items = []T{}
	}
	if err := enc.Encode(items); err != nil {
		return err
	}
	return enc.Close()
}
