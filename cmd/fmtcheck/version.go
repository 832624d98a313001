package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/stdfmt"
	"github.com/bjaus/stdfmt/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd(root *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show fmtcheck build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch strings.ToLower(format) {
			case "pretty":
				useColor, err := colorEnabled(root.color, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				return renderVersionPretty(cmd.OutOrStdout(), useColor)
			case "json":
				return renderVersionJSON(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}

func renderVersionPretty(out io.Writer, useColor bool) error {
	if _, err := stdfmt.FormatTo(out, "fmtcheck {}\n", version.Pretty(useColor)); err != nil {
		return err
	}
	if c := strings.TrimSpace(version.GitCommit); c != "" {
		if _, err := stdfmt.FormatTo(out, "commit: {}\n", c); err != nil {
			return err
		}
	}
	if d := strings.TrimSpace(version.BuildDate); d != "" {
		if _, err := stdfmt.FormatTo(out, "built:  {}\n", d); err != nil {
			return err
		}
	}
	return nil
}

func renderVersionJSON(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(versionPayload{
		Tool:      "fmtcheck",
		Version:   version.Version,
		GitCommit: strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
	})
}
