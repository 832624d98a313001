// Package lint finds calls with constant format strings in Go sources and
// validates them ahead of time with stdfmt.Check.
package lint

import (
	"cmp"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Options tunes a Run.
type Options struct {
	// Jobs caps parallel workers. Zero falls back to Config.Jobs, then to
	// GOMAXPROCS.
	Jobs   int
	Cache  *Cache
	Logger *slog.Logger
}

// Result aggregates a Run.
type Result struct {
	Findings []Finding
	Files    int
	Calls    int
	Dynamic  int
	Cached   int
}

// Run checks every Go file cfg selects under root.
func Run(ctx context.Context, root string, cfg Config, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	files, err := ListFiles(root, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("collected files", "root", root, "count", len(files))
	if len(files) == 0 {
		return &Result{}, nil
	}

	jobs := cmp.Or(opts.Jobs, cfg.Jobs, runtime.GOMAXPROCS(0))

	// indices are unique per goroutine, no lock needed
	results := make([]FileResult, len(files))
	var cached atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, hit, err := checkFile(logger, path, cfg, opts.Cache)
			if err != nil {
				return err
			}
			if hit {
				cached.Add(1)
			}
			logger.Debug("checked file", "path", path, "calls", res.Calls, "findings", len(res.Findings), "cached", hit)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Result{Files: len(files), Cached: int(cached.Load())}
	for i, res := range results {
		rel, err := filepath.Rel(root, files[i])
		if err != nil {
			rel = files[i]
		}
		for _, f := range res.Findings {
			f.File = filepath.ToSlash(rel)
			out.Findings = append(out.Findings, f)
		}
		out.Calls += res.Calls
		out.Dynamic += res.Dynamic
	}
	slices.SortStableFunc(out.Findings, func(a, b Finding) int {
		return cmp.Or(
			cmp.Compare(a.File, b.File),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
		)
	})
	return out, nil
}

func checkFile(logger *slog.Logger, path string, cfg Config, cache *Cache) (FileResult, bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, false, err
	}
	key := Key(src, cfg)
	if res, ok, err := cache.Get(key); err != nil {
		logger.Warn("ignoring unreadable cache entry", "path", path, "error", err)
	} else if ok {
		return res, true, nil
	}
	res, err := CheckSource(path, src, cfg)
	if err != nil {
		return FileResult{}, false, err
	}
	if err := cache.Put(key, res); err != nil {
		logger.Warn("failed to write cache entry", "path", path, "error", err)
	}
	return res, false, nil
}

// ListFiles returns the sorted Go files cfg selects under root.
func ListFiles(root string, cfg Config) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}
	for _, pattern := range cfg.Include {
		dir, recursive := strings.CutSuffix(filepath.ToSlash(pattern), "/...")
		if dir == "..." {
			dir, recursive = ".", true
		}
		start := filepath.FromSlash(dir)
		if !filepath.IsAbs(start) {
			start = filepath.Join(root, start)
		}
		info, err := os.Stat(start)
		if err != nil {
			return nil, fmt.Errorf("include %q: %w", pattern, err)
		}
		if !info.IsDir() {
			if strings.HasSuffix(start, ".go") {
				add(start)
			}
			continue
		}
		err = filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == start {
					return nil
				}
				if !recursive || skipDir(d.Name()) || excluded(root, path, cfg.Exclude) {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(path, ".go") {
				return nil
			}
			if !cfg.Tests && strings.HasSuffix(path, "_test.go") {
				return nil
			}
			if excluded(root, path, cfg.Exclude) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(files)
	return files, nil
}

// skipDir follows the go tool: directories starting with "." or "_" are
// ignored.
func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func excluded(root, path string, patterns []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
		if ok, _ := filepath.Match(p, rel); ok {
			return true
		}
	}
	return false
}
