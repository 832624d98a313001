package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/bjaus/stdfmt"
	"github.com/bjaus/stdfmt/internal/lint"
)

const tryHelp = `Enter a format, optionally quoted and followed by arguments:
  {:*^9}
  "{:>8.2f}|{:#x}", 3.14159, 255
  "{:L}", 1234567.5
Commands: :locale <tag>   switch the locale (empty for classic)
          :quit           leave`

type tryOptions struct {
	locale string
	eval   []string
}

type session struct {
	out     io.Writer
	printer *stdfmt.Printer
	errc    *color.Color
	okc     *color.Color
}

func newTryCmd(root *rootOptions) *cobra.Command {
	opts := &tryOptions{}
	cmd := &cobra.Command{
		Use:   "try",
		Short: "Interactively render format strings",
		Long:  "Render format strings line by line.\n\n" + tryHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			useColor, err := colorEnabled(root.color, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			s := newSession(cmd.OutOrStdout(), useColor)
			if err := s.setLocale(opts.locale); err != nil {
				return err
			}
			if len(opts.eval) > 0 {
				for _, line := range opts.eval {
					s.run(line)
				}
				return nil
			}
			return s.repl(root)
		},
	}
	cmd.Flags().StringVar(&opts.locale, "locale", "", "BCP 47 locale tag used by the L option")
	cmd.Flags().StringArrayVarP(&opts.eval, "eval", "e", nil, "render the line and exit (repeatable)")
	return cmd
}

func newSession(out io.Writer, useColor bool) *session {
	s := &session{
		out:     out,
		printer: stdfmt.NewPrinter(stdfmt.Classic),
		errc:    color.New(color.FgRed, color.Bold),
		okc:     color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{s.errc, s.okc} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func (s *session) setLocale(tag string) error {
	if strings.TrimSpace(tag) == "" {
		s.printer = stdfmt.NewPrinter(stdfmt.Classic)
		return nil
	}
	t, err := language.Parse(tag)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", tag, err)
	}
	s.printer = stdfmt.NewPrinter(stdfmt.NewLocale(t))
	return nil
}

// run handles one input line. It reports false when the session should end.
func (s *session) run(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return true
	case trimmed == ":quit" || trimmed == ":q":
		return false
	case trimmed == ":help":
		fmt.Fprintln(s.out, tryHelp)
		return true
	case strings.HasPrefix(trimmed, ":locale"):
		if err := s.setLocale(strings.TrimSpace(strings.TrimPrefix(trimmed, ":locale"))); err != nil {
			s.fail("locale", err.Error())
			return true
		}
		_, _ = stdfmt.FormatTo(s.out, "locale {}\n", s.printer.Locale().Tag().String())
		return true
	}

	format, args, err := lint.ParseLine(line)
	if err != nil {
		s.fail("input", err.Error())
		return true
	}
	out, err := s.printer.Format(format, args...)
	if err != nil {
		var fe *stdfmt.FormatError
		if errors.As(err, &fe) {
			s.fail(lint.KindOf(err), s.describe(format, fe))
		} else {
			s.fail(lint.KindOf(err), err.Error())
		}
		return true
	}
	_, _ = stdfmt.FormatTo(s.out, "{} {:?}\n", s.okc.Sprint("=>"), out)
	return true
}

// describe points at the failing offset under the format.
func (s *session) describe(format string, fe *stdfmt.FormatError) string {
	if fe.Pos < 0 || fe.Pos > len(format) {
		return fe.Msg
	}
	return stdfmt.MustFormat("{}\n    {}\n    {:>{}}", fe.Msg, format, "^", fe.Pos+1)
}

func (s *session) fail(kind, msg string) {
	_, _ = stdfmt.FormatTo(s.out, "{}: {}\n", s.errc.Sprint("error["+kind+"]"), msg)
}

func (s *session) repl(root *rootOptions) error {
	cfg := &readline.Config{
		Prompt:          "fmt> ",
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
	}
	if dir, err := os.UserCacheDir(); err == nil {
		cfg.HistoryFile = filepath.Join(dir, "fmtcheck", "history")
		if err := os.MkdirAll(filepath.Dir(cfg.HistoryFile), 0o755); err != nil {
			root.logger.Debug("history disabled", "error", err)
			cfg.HistoryFile = ""
		}
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	s.out = rl.Stdout()

	fmt.Fprintln(s.out, tryHelp)
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}
		if !s.run(line) {
			return nil
		}
	}
}
