package lint_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/stdfmt"
	"github.com/bjaus/stdfmt/internal/lint"
)

const demoSource = `package demo

import (
	"os"

	fmtx "github.com/bjaus/stdfmt"
)

func f(name string, p *fmtx.Printer, args []any) {
	_, _ = fmtx.Format("{} {}", 1)
	_, _ = fmtx.Format("{:d}", "x")
	_, _ = fmtx.Format("{:>{}}", name, 5)
	_, _ = fmtx.FormatTo(os.Stdout, "{", 1)
	_ = fmtx.MustFormat("{0} "+"{}", 1, 2)
	_, _ = fmtx.Format(name, 1)
	_, _ = fmtx.Format("{} {}", args...)
	_ = fmtx.Check("{:d}", fmtx.TypeOf[string]())
	_, _ = p.Format("{} {}", "a")
	_, _ = fmtx.NewPrinter(nil).Format("{2}", 1.5)
	logger.Infof("{} {} {}", 1)
}
`

func demoConfig() lint.Config {
	cfg := lint.DefaultConfig()
	cfg.Printers = []string{"p"}
	cfg.Functions = map[string]lint.FuncSpec{"logger.Infof": {Format: 0}}
	return cfg
}

func TestCheckSource(t *testing.T) {
	t.Parallel()
	res, err := lint.CheckSource("demo.go", []byte(demoSource), demoConfig())
	require.NoError(t, err)

	type want struct {
		line int
		call string
		kind string
	}
	var got []want
	for _, f := range res.Findings {
		got = append(got, want{f.Line, f.Call, f.Kind})
	}
	assert.Equal(t, []want{
		{10, "fmtx.Format", "index"},
		{11, "fmtx.Format", "type"},
		{13, "fmtx.FormatTo", "syntax"},
		{14, "fmtx.MustFormat", "syntax"},
		{17, "fmtx.Check", "type"},
		{18, "p.Format", "index"},
		{19, "Printer.Format", "index"},
		{20, "logger.Infof", "index"},
	}, got)
	assert.Equal(t, 9, res.Calls)
	assert.Equal(t, 1, res.Dynamic)

	first := res.Findings[0]
	assert.Equal(t, 21, first.Column)
	assert.Equal(t, "{} {}", first.Format)
	assert.GreaterOrEqual(t, first.Offset, 0)
	assert.Equal(t, "{0} {}", res.Findings[3].Format)
}

func TestCheckSourceWithoutImport(t *testing.T) {
	t.Parallel()
	src := `package demo

func f() { _, _ = stdfmt.Format("{", 1) }
`
	res, err := lint.CheckSource("x.go", []byte(src), lint.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, res.Findings)
	assert.Zero(t, res.Calls)
}

func TestCheckSourceDotImport(t *testing.T) {
	t.Parallel()
	src := `package demo

import . "github.com/bjaus/stdfmt"

func f() {
	_, _ = Format("{:c}", Char('x'))
	_, _ = Format("{:d}", "s")
}
`
	res, err := lint.CheckSource("x.go", []byte(src), lint.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Calls)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, 7, res.Findings[0].Line)
	assert.Equal(t, "type", res.Findings[0].Kind)
}

func TestCheckSourceConversions(t *testing.T) {
	t.Parallel()
	src := `package demo

import "github.com/bjaus/stdfmt"

func f(v any) {
	_, _ = stdfmt.Format("{:x}", uint8(v))
	_, _ = stdfmt.Format("{:f}", float32(v))
	_, _ = stdfmt.Format("{:d}", string(v))
	_, _ = stdfmt.Format("{:s}", []byte(v))
	_, _ = stdfmt.Format("{:d}", -3)
	_, _ = stdfmt.Format("{:s}", !true)
}
`
	res, err := lint.CheckSource("x.go", []byte(src), lint.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 6, res.Calls)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, 8, res.Findings[0].Line)
}

func TestCheckSourceParseError(t *testing.T) {
	t.Parallel()
	_, err := lint.CheckSource("bad.go", []byte("package"), lint.DefaultConfig())
	assert.ErrorIs(t, err, lint.ErrParse)
}

func TestKindOf(t *testing.T) {
	t.Parallel()
	_, err := stdfmt.Format("{")
	assert.Equal(t, "syntax", lint.KindOf(err))
	_, err = stdfmt.Format("{}")
	assert.Equal(t, "index", lint.KindOf(err))
	assert.Equal(t, "error", lint.KindOf(os.ErrNotExist))
}

func TestFindingRow(t *testing.T) {
	t.Parallel()
	f := lint.Finding{File: "a.go", Line: 3, Column: 9, Call: "stdfmt.Format", Format: "{", Kind: "syntax", Offset: 1, Message: "unexpected end"}
	assert.Equal(t, "a.go:3:9", f.Location())
	assert.Equal(t, []string{"a.go:3:9", "syntax", `unexpected end (offset 1 in "{")`, "stdfmt.Format"}, f.Row())
	assert.Len(t, f.Header(), len(f.Row()))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const badFile = `package demo

import "github.com/bjaus/stdfmt"

var _ = stdfmt.MustFormat("{} {}", 1)
`

func newTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), badFile)
	writeFile(t, filepath.Join(root, "sub", "b.go"), badFile+"\n// b\n")
	writeFile(t, filepath.Join(root, "sub", "b_test.go"), "package demo\n")
	writeFile(t, filepath.Join(root, "vendor", "v.go"), badFile)
	writeFile(t, filepath.Join(root, "_skip", "s.go"), badFile)
	writeFile(t, filepath.Join(root, "sub", "testdata", "t.go"), badFile)
	writeFile(t, filepath.Join(root, "notes.txt"), "{")
	return root
}

func TestListFiles(t *testing.T) {
	t.Parallel()
	root := newTree(t)

	files, err := lint.ListFiles(root, lint.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.go"),
		filepath.Join(root, "sub", "b.go"),
		filepath.Join(root, "sub", "b_test.go"),
	}, files)

	cfg := lint.DefaultConfig()
	cfg.Include = []string{"."}
	cfg.Tests = false
	files, err = lint.ListFiles(root, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.go")}, files)

	cfg.Include = []string{"missing/..."}
	_, err = lint.ListFiles(root, cfg)
	assert.Error(t, err)
}

func TestRunUsesCache(t *testing.T) {
	t.Parallel()
	root := newTree(t)
	cache, err := lint.NewCache(t.TempDir())
	require.NoError(t, err)
	opts := lint.Options{Jobs: 2, Cache: cache}

	res, err := lint.Run(context.Background(), root, lint.DefaultConfig(), opts)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Files)
	assert.Zero(t, res.Cached)
	require.Len(t, res.Findings, 2)
	assert.Equal(t, "a.go", res.Findings[0].File)
	assert.Equal(t, "sub/b.go", res.Findings[1].File)
	assert.Equal(t, 5, res.Findings[1].Line)

	again, err := lint.Run(context.Background(), root, lint.DefaultConfig(), opts)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Cached)
	assert.Equal(t, res.Findings, again.Findings)
}

func TestRunSharesCacheAcrossIdenticalFiles(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "x.go"), badFile)
	writeFile(t, filepath.Join(root, "y.go"), badFile)
	cache, err := lint.NewCache(t.TempDir())
	require.NoError(t, err)

	res, err := lint.Run(context.Background(), root, lint.DefaultConfig(), lint.Options{Jobs: 1, Cache: cache})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Cached)
	require.Len(t, res.Findings, 2)
	assert.Equal(t, "x.go", res.Findings[0].File)
	assert.Equal(t, "y.go", res.Findings[1].File)
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()
	root := newTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := lint.Run(ctx, root, lint.DefaultConfig(), lint.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunReportsParseErrors(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bad.go"), "package")
	_, err := lint.Run(context.Background(), root, lint.DefaultConfig(), lint.Options{})
	assert.ErrorIs(t, err, lint.ErrParse)
}

func TestCache(t *testing.T) {
	t.Parallel()
	cache, err := lint.NewCache(t.TempDir())
	require.NoError(t, err)
	key := lint.Key([]byte("package x"), lint.DefaultConfig())

	_, ok, err := cache.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)

	want := lint.FileResult{
		Findings: []lint.Finding{{Line: 1, Column: 2, Kind: "index", Offset: 0, Message: "m", Format: "{}", Call: "stdfmt.Format"}},
		Calls:    3,
	}
	require.NoError(t, cache.Put(key, want))
	got, ok, err := cache.Get(key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, cache.Clear())
	_, ok, err = cache.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNilCache(t *testing.T) {
	t.Parallel()
	var cache *lint.Cache
	require.NoError(t, cache.Put(lint.Digest{}, lint.FileResult{}))
	_, ok, err := cache.Get(lint.Digest{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKeyDependsOnConfig(t *testing.T) {
	t.Parallel()
	src := []byte("package x")
	cfg := lint.DefaultConfig()
	other := lint.DefaultConfig()
	other.Printers = []string{"p"}
	assert.Equal(t, lint.Key(src, cfg), lint.Key(src, lint.DefaultConfig()))
	assert.NotEqual(t, lint.Key(src, cfg), lint.Key(src, other))
	assert.NotEqual(t, lint.Key(src, cfg), lint.Key([]byte("package y"), cfg))
}
