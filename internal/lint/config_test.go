package lint_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/stdfmt/internal/lint"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), lint.ConfigName)
	writeFile(t, path, `
include = ["./pkg/..."]
printers = ["p"]
jobs = 4
cache = false

[functions."logger.Infof"]
format = 1
`)
	cfg, err := lint.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"./pkg/..."}, cfg.Include)
	assert.Equal(t, []string{"vendor", "testdata"}, cfg.Exclude)
	assert.Equal(t, lint.DefaultPackage, cfg.Package)
	assert.Equal(t, []string{"p"}, cfg.Printers)
	assert.Equal(t, map[string]lint.FuncSpec{"logger.Infof": {Format: 1}}, cfg.Functions)
	assert.Equal(t, 4, cfg.Jobs)
	assert.False(t, cfg.Cache)
	assert.True(t, cfg.Tests)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	unknown := filepath.Join(dir, "unknown.toml")
	writeFile(t, unknown, "bogus = 1\n")
	_, err := lint.LoadConfig(unknown)
	assert.ErrorIs(t, err, lint.ErrUnknownKey)

	broken := filepath.Join(dir, "broken.toml")
	writeFile(t, broken, "include = [\n")
	_, err = lint.LoadConfig(broken)
	assert.Error(t, err)

	_, err = lint.LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestFindConfig(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	want := filepath.Join(root, lint.ConfigName)
	writeFile(t, want, "jobs = 1\n")
	writeFile(t, filepath.Join(root, "a", "b", "x.go"), "package b\n")

	got, ok, err := lint.FindConfig(filepath.Join(root, "a", "b"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}
