package lint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigName is the file FindConfig looks for.
const ConfigName = "fmtcheck.toml"

// DefaultPackage is the import path whose calls are checked by default.
const DefaultPackage = "github.com/bjaus/stdfmt"

// ErrUnknownKey reports a configuration key fmtcheck does not understand.
var ErrUnknownKey = errors.New("unknown configuration key")

// FuncSpec locates the format string of a checked call. Format is the index
// of the format argument; the arguments after it are the values, or, when
// Types is set, ArgType expressions as passed to Check.
type FuncSpec struct {
	Format int  `toml:"format"`
	Types  bool `toml:"types"`
}

// Config is the content of fmtcheck.toml.
type Config struct {
	// Include lists directories to scan. A trailing "/..." recurses.
	Include []string `toml:"include"`
	// Exclude lists glob patterns matched against base names and
	// slash-separated paths relative to the root.
	Exclude []string `toml:"exclude"`
	// Package is the import path of the formatting package.
	Package string `toml:"package"`
	// Printers names variables holding a *Printer whose methods are checked.
	Printers []string `toml:"printers"`
	// Functions adds wrappers, keyed by "pkg.Func" or a bare function name.
	Functions map[string]FuncSpec `toml:"functions"`
	Jobs      int                 `toml:"jobs"`
	Cache     bool                `toml:"cache"`
	Tests     bool                `toml:"tests"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Include: []string{"./..."},
		Exclude: []string{"vendor", "testdata"},
		Package: DefaultPackage,
		Cache:   true,
		Tests:   true,
	}
}

// LoadConfig reads path over DefaultConfig. Keys the file does not set keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, undecoded[0])
	}
	if !meta.IsDefined("package") || strings.TrimSpace(cfg.Package) == "" {
		cfg.Package = DefaultPackage
	}
	return cfg, nil
}

// FindConfig walks up from startDir to locate fmtcheck.toml.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// fingerprint covers every setting that changes the findings of a single
// file, so cached results are keyed on it.
func (c Config) fingerprint() string {
	var sb strings.Builder
	sb.WriteString(c.Package)
	sb.WriteByte('\n')
	printers := slices.Clone(c.Printers)
	slices.Sort(printers)
	sb.WriteString(strings.Join(printers, ","))
	sb.WriteByte('\n')
	keys := make([]string, 0, len(c.Functions))
	for k := range c.Functions {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		spec := c.Functions[k]
		fmt.Fprintf(&sb, "%s=%d,%t;", k, spec.Format, spec.Types)
	}
	return sb.String()
}
