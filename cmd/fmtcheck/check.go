package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/stdfmt/internal/lint"
	"github.com/bjaus/stdfmt/internal/report"
)

type checkOptions struct {
	format     string
	jobs       int
	noCache    bool
	clearCache bool
	exclude    []string
	tests      bool
	indent     string
	border     string
}

var borders = map[string]report.BorderStyle{
	"rounded": report.BorderRounded,
	"ascii":   report.BorderASCII,
	"none":    report.BorderNone,
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check [flags] [dir|dir/...|file.go]...",
		Short: "Check constant format strings in Go sources",
		Long: `Check every recognised call with a constant format string. Without arguments
the include list of fmtcheck.toml is used, or ./... when there is none.
The command exits with status 1 when any format string is invalid.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, root, opts, args)
		},
	}
	formats := make([]string, 0, len(report.Formats()))
	for _, f := range report.Formats() {
		formats = append(formats, string(f))
	}
	cmd.Flags().StringVar(&opts.format, "format", string(report.Text), "output format ("+strings.Join(formats, "|")+"|go-template=...)")
	cmd.Flags().IntVar(&opts.jobs, "jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the result cache")
	cmd.Flags().BoolVar(&opts.clearCache, "clear-cache", false, "drop cached results before checking")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude", nil, "additional exclude patterns")
	cmd.Flags().BoolVar(&opts.tests, "tests", true, "include _test.go files")
	cmd.Flags().StringVar(&opts.indent, "indent", "", "indentation for json and yaml output")
	cmd.Flags().StringVar(&opts.border, "border", "rounded", "table border (rounded|ascii|none)")
	return cmd
}

func runCheck(cmd *cobra.Command, root *rootOptions, opts *checkOptions, args []string) error {
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	border, ok := borders[strings.ToLower(opts.border)]
	if !ok {
		return fmt.Errorf("unsupported border %q (must be rounded, ascii or none)", opts.border)
	}
	useColor, err := colorEnabled(root.color, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	cfg, dir, err := loadConfig(root)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Include = args
		if dir, err = os.Getwd(); err != nil {
			return err
		}
	}
	cfg.Exclude = append(cfg.Exclude, opts.exclude...)
	if cmd.Flags().Changed("tests") {
		cfg.Tests = opts.tests
	}

	var cache *lint.Cache
	if cfg.Cache && !opts.noCache {
		if cache, err = lint.OpenCache("fmtcheck"); err != nil {
			root.logger.Warn("result cache disabled", "error", err)
			cache = nil
		}
	}
	if opts.clearCache {
		if err := cache.Clear(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
	}

	res, err := lint.Run(cmd.Context(), dir, cfg, lint.Options{
		Jobs:   opts.jobs,
		Cache:  cache,
		Logger: root.logger,
	})
	if err != nil {
		return err
	}
	root.logger.Debug("check finished",
		"files", res.Files, "calls", res.Calls, "dynamic", res.Dynamic,
		"cached", res.Cached, "findings", len(res.Findings))

	err = report.Write(cmd.OutOrStdout(), format, report.Options{
		Color:  useColor,
		Indent: opts.indent,
		Border: border,
	}, res.Findings...)
	if err != nil {
		return err
	}
	if len(res.Findings) > 0 {
		return errFindings
	}
	return nil
}

// loadConfig reads --config, or the nearest fmtcheck.toml, or falls back to
// the defaults. It also returns the directory include patterns are relative
// to.
func loadConfig(root *rootOptions) (lint.Config, string, error) {
	path := root.config
	if path == "" {
		found, ok, err := lint.FindConfig(".")
		if err != nil {
			return lint.Config{}, "", err
		}
		if !ok {
			wd, err := os.Getwd()
			if err != nil {
				return lint.Config{}, "", err
			}
			root.logger.Debug("no config file, using defaults", "dir", wd)
			return lint.DefaultConfig(), wd, nil
		}
		path = found
	}
	cfg, err := lint.LoadConfig(path)
	if err != nil {
		return lint.Config{}, "", err
	}
	root.logger.Debug("loaded config", "path", path)
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return lint.Config{}, "", err
	}
	return cfg, dir, nil
}
