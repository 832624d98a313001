package report

import (
	"encoding/csv"
	"io"
)

func writeCSV[T any](w io.Writer, opts Options, items []T) error {
	rs, err := rows(CSV, items)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if opts.Comma != 0 {
		cw.Comma = opts.Comma
	}
	if h := header(items); h != nil {
		if err := cw.Write(h); err != nil {
			return err
		}
	}
	for _, r := range rs {
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
