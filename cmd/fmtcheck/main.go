// Command fmtcheck validates stdfmt format strings in Go sources before they
// run, and offers an interactive playground for the format language.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bjaus/stdfmt"
	"github.com/bjaus/stdfmt/internal/version"
)

// errFindings makes the process exit with status 1 without printing anything
// beyond the report.
var errFindings = errors.New("format strings failed validation")

type rootOptions struct {
	color   string
	verbose bool
	config  string
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: slog.Default()}
	cmd := &cobra.Command{
		Use:   "fmtcheck",
		Short: "Validate stdfmt format strings ahead of time",
		Long: `fmtcheck scans Go sources for stdfmt calls whose format string is a constant
and reports the syntax, index and type errors they would raise at run time.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.color, "color", "auto", "colorize output (auto|on|off)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.config, "config", "", "path to fmtcheck.toml (default: search upward from the working directory)")

	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newTryCmd(opts))
	cmd.AddCommand(newVersionCmd(opts))
	return cmd
}

// main runs the root command. Findings and errors both exit with status 1.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFindings) {
			_, _ = stdfmt.FormatTo(os.Stderr, "fmtcheck: {}\n", err)
		}
		os.Exit(1)
	}
}

// colorEnabled resolves the --color mode for out. In auto mode colour is used
// only on a terminal and never when NO_COLOR is set.
func colorEnabled(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "auto", "":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := out.(*os.File)
		return ok && isTerminal(f), nil
	default:
		return false, fmt.Errorf("unsupported color mode %q (must be auto, on or off)", mode)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
