// Package finder locates files by name glob, reusing the scan
// pipeline's walker and filter policy instead of matching content.
package finder

import (
	"fmt"
	"path/filepath"

	"github.com/rkern/grin/internal/models"
	"github.com/rkern/grin/internal/walker"
)

// Finder yields path-only FileResults for every candidate whose base
// name matches the glob. The walker's directory, extension, and binary
// filtering applies exactly as it does for content search.
type Finder struct {
	walk *walker.Walker
	glob string
}

// New validates the glob pattern and creates a Finder. Glob syntax is
// the standard *, ?, and [...] of filepath.Match. An invalid pattern
// is fatal to the invocation, like an invalid regex in search mode.
func New(walk *walker.Walker, glob string) (*Finder, error) {
	if _, err := filepath.Match(glob, ""); err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", glob, err)
	}
	return &Finder{walk: walk, glob: glob}, nil
}

// Next returns the next matching file, or false when the traversal is
// exhausted.
func (f *Finder) Next() (*models.FileResult, bool) {
	for {
		cand, ok := f.walk.Next()
		if !ok {
			return nil, false
		}
		matched, err := filepath.Match(f.glob, filepath.Base(cand.Path))
		if err != nil || !matched {
			continue
		}
		return &models.FileResult{Path: cand.Path}, true
	}
}
