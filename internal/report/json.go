package report

import (
	"encoding/json"
	"io"
)

func writeJSON[T any](w io.Writer, opts Options, items []T) error {
	enc := json.NewEncoder(w)
	if opts.Indent != "" {
		enc.SetIndent("", opts.Indent)
	}
	if items == nil {
		items = []T{}
	}
	return enc.Encode(items)
}

func writeJSONL[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}
