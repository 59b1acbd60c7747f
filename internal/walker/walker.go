// Package walker implements depth-first filesystem traversal for the
// scan pipeline. It is a pull-based producer: each call to Next does
// just enough work to find the next eligible file, so no more than one
// directory listing is materialized per stack level.
package walker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rkern/grin/internal/config"
	"github.com/rkern/grin/internal/fileutil"
	"github.com/rkern/grin/internal/models"
)

// frame is one level of the traversal stack: a directory, its entry
// names, and the cursor into them.
type frame struct {
	path    string
	entries []string
	idx     int
}

// Walker yields Candidates from a set of roots, depth first. Explicit
// file roots are yielded first in the order given, before any
// directory recursion. A path is never yielded twice in the same
// traversal, and directory symlinks that cycle back to an ancestor of
// the current stack are not followed.
type Walker struct {
	cfg  *config.Config
	rec  *fileutil.Recognizer
	diag models.DiagnosticFunc

	roots     []string
	started   bool
	fileRoots []string
	dirRoots  []string
	fileIdx   int
	dirIdx    int

	stack     []*frame
	ancestors []string // canonical paths of the dirs on the stack
	yielded   map[string]bool
}

// New creates a Walker over the given configuration. Diagnostics for
// unreadable or missing paths are delivered through diag; traversal
// always continues past them.
func New(cfg *config.Config, rec *fileutil.Recognizer, diag models.DiagnosticFunc) *Walker {
	return &Walker{
		cfg:     cfg,
		rec:     rec,
		diag:    diag,
		yielded: make(map[string]bool),
	}
}

// AddRoots appends starting paths, keeping caller order.
func (w *Walker) AddRoots(paths ...string) {
	w.roots = append(w.roots, paths...)
}

// Start resolves the roots, partitioning them into explicit files and
// directories. It reports a diagnostic for each unusable root and
// returns an error only when roots were given and none survived.
// Calling Start is optional; Next starts the walk on first use.
func (w *Walker) Start() error {
	if w.started {
		return nil
	}
	w.started = true

	for _, root := range w.roots {
		info, err := os.Stat(root)
		if err != nil {
			kind := models.DiagPermissionDenied
			if os.IsNotExist(err) {
				kind = models.DiagPathNotFound
			}
			w.diag.Report(models.Diagnostic{Path: root, Kind: kind, Err: err})
			continue
		}
		if info.IsDir() {
			w.dirRoots = append(w.dirRoots, root)
		} else {
			w.fileRoots = append(w.fileRoots, root)
		}
	}

	if len(w.roots) > 0 && len(w.fileRoots) == 0 && len(w.dirRoots) == 0 {
		return fmt.Errorf("no usable roots among %d given", len(w.roots))
	}
	return nil
}

// Next returns the next Candidate, or false when the traversal is
// exhausted.
func (w *Walker) Next() (models.Candidate, bool) {
	if !w.started {
		// Root errors were already reported as diagnostics; an
		// all-bad root set just produces an empty traversal here.
		_ = w.Start()
	}

	for w.fileIdx < len(w.fileRoots) {
		path := w.fileRoots[w.fileIdx]
		w.fileIdx++
		if c, ok := w.candidateFor(path, true); ok {
			return c, true
		}
	}

	for {
		if len(w.stack) == 0 {
			if w.dirIdx >= len(w.dirRoots) {
				return models.Candidate{}, false
			}
			root := w.dirRoots[w.dirIdx]
			w.dirIdx++
			kind, _ := w.rec.RecognizeDirectory(root, true)
			if kind == models.KindDirectory {
				w.pushDir(root)
			}
			continue
		}

		f := w.stack[len(w.stack)-1]
		if f.idx >= len(f.entries) {
			w.stack = w.stack[:len(w.stack)-1]
			w.ancestors = w.ancestors[:len(w.ancestors)-1]
			continue
		}

		name := f.entries[f.idx]
		f.idx++
		path := filepath.Join(f.path, name)

		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				// Dangling symlink; nothing to report.
				continue
			}
			w.diag.Report(models.Diagnostic{Path: path, Kind: models.DiagPermissionDenied, Err: err})
			continue
		}

		if info.IsDir() {
			kind, _ := w.rec.RecognizeDirectory(path, false)
			if kind == models.KindDirectory {
				w.pushDir(path)
			}
			continue
		}

		if c, ok := w.candidateFor(path, false); ok {
			return c, true
		}
	}
}

// candidateFor classifies one file path and decides whether to yield
// it. Explicit paths bypass name-based skip rules but not the binary
// check.
func (w *Walker) candidateFor(path string, explicit bool) (models.Candidate, bool) {
	canon := canonicalPath(path)
	if w.yielded[canon] {
		return models.Candidate{}, false
	}

	kind, err := w.rec.RecognizeFile(path, explicit)
	switch kind {
	case models.KindUnreadable:
		diagKind := models.DiagPermissionDenied
		if os.IsNotExist(err) {
			diagKind = models.DiagPathNotFound
		}
		w.diag.Report(models.Diagnostic{Path: path, Kind: diagKind, Err: err})
		return models.Candidate{}, false
	case models.KindSkip, models.KindLink:
		return models.Candidate{}, false
	case models.KindBinary:
		if w.cfg.SkipBinaryFiles {
			return models.Candidate{}, false
		}
	}

	w.yielded[canon] = true
	return models.Candidate{Path: path, Kind: kind, Explicit: explicit}, true
}

// pushDir lists a directory and pushes it onto the traversal stack,
// unless its canonical path is already an ancestor (a symlink cycle).
func (w *Walker) pushDir(path string) {
	canon := canonicalPath(path)
	for _, a := range w.ancestors {
		if a == canon {
			return
		}
	}

	entries, err := w.listDir(path)
	if err != nil {
		w.diag.Report(models.Diagnostic{Path: path, Kind: models.DiagPermissionDenied, Err: err})
		return
	}

	w.stack = append(w.stack, &frame{path: path, entries: entries})
	w.ancestors = append(w.ancestors, canon)
}

// listDir returns the entry names of a directory, name-sorted unless
// the configuration asks for platform order.
func (w *Walker) listDir(path string) ([]string, error) {
	var names []string
	if w.cfg.Unsorted {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		entries, err := f.ReadDir(-1)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			names = append(names, e.Name())
		}
		return names, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// canonicalPath resolves symlinks and relative segments so revisit and
// cycle checks compare real filesystem identities. Falls back to the
// cleaned absolute path when resolution fails.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
