package linter

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/midbel/roblint/internal/rules"
)

// Run analyzes every input file found under the given paths, possibly
// in parallel. Cancelling the context stops launching new per-file
// analyses; the ones already in flight complete so that the output
// stays deterministic for the files that were analyzed.
func (l *Linter) Run(ctx context.Context, paths []string) ([]rules.Finding, error) {
	files, err := l.collect(paths)
	if err != nil {
		return nil, err
	}
	jobs := l.cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	var (
		grp, _  = errgroup.WithContext(ctx)
		results = make([][]rules.Finding, len(files))
	)
	grp.SetLimit(jobs)
	for i, file := range files {
		if ctx.Err() != nil {
			break
		}
		i, file := i, file
		grp.Go(func() error {
			results[i] = l.LintFile(file)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	var all []rules.Finding
	for _, list := range results {
		all = append(all, list...)
	}
	return all, nil
}

// collect expands files and directories into the sorted list of input
// files: directories are walked recursively, extensions are filtered
// by the configured file types and ignore globs are skipped.
func (l *Linter) collect(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	keep := func(file string) {
		if _, ok := seen[file]; ok {
			return
		}
		seen[file] = struct{}{}
		files = append(files, file)
	}
	for _, p := range paths {
		fi, err := filepath.Glob(p)
		if err != nil || len(fi) == 0 {
			fi = []string{p}
		}
		for _, path := range fi {
			if err := l.collectPath(path, keep); err != nil {
				return nil, err
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func (l *Linter) collectPath(path string, keep func(string)) error {
	return filepath.WalkDir(path, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "walk %s", path)
		}
		if d.IsDir() {
			return nil
		}
		if !l.cfg.Accepts(file) || l.ignored(file) {
			return nil
		}
		keep(file)
		return nil
	})
}

func (l *Linter) ignored(file string) bool {
	for _, pattern := range l.cfg.Ignore {
		ok, err := doublestar.Match(pattern, filepath.ToSlash(file))
		if err == nil && ok {
			return true
		}
	}
	return false
}
