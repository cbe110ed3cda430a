// Package preview estimates which files a spec selects, for dry runs.
//
// Only include globs and custom ignore patterns are applied. The packer's
// own gitignore and default ignore handling is not reproduced, so counts are
// an upper bound.
package preview

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/modpack/cli/internal/packspec"
)

// PatternCount is the number of files one include glob selects after ignores.
type PatternCount struct {
	Pattern string `json:"pattern"`
	Files   int    `json:"files"`
}

// Result summarizes the files a spec selects.
type Result struct {
	Patterns []PatternCount `json:"patterns"`

	// Files is the de-duplicated, sorted set of selected files.
	Files []string `json:"files"`
}

// Empty reports whether no include matched any file.
func (r *Result) Empty() bool {
	return len(r.Files) == 0
}

// Spec evaluates s against the tree rooted at root.
func Spec(ctx context.Context, root string, s packspec.Spec) (*Result, error) {
	return Evaluate(ctx, os.DirFS(root), s)
}

// Evaluate evaluates s against fsys.
func Evaluate(ctx context.Context, fsys fs.FS, s packspec.Spec) (*Result, error) {
	for _, pat := range s.Ignore.CustomPatterns {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pat, doublestar.ErrBadPattern)
		}
	}

	res := &Result{Patterns: make([]PatternCount, 0, len(s.Include))}
	seen := make(map[string]bool)

	for _, pat := range s.Include {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		matches, err := doublestar.Glob(fsys, pat, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("matching %q: %w", pat, err)
		}

		count := 0
		for _, m := range matches {
			if ignored(m, s.Ignore.CustomPatterns) {
				continue
			}
			count++
			if !seen[m] {
				seen[m] = true
				res.Files = append(res.Files, m)
			}
		}
		res.Patterns = append(res.Patterns, PatternCount{Pattern: pat, Files: count})
	}

	sort.Strings(res.Files)
	return res, nil
}

func ignored(name string, patterns []string) bool {
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, name); err == nil && matched {
			return true
		}
	}
	return false
}
