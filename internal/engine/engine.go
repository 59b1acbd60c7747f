// Package engine wires the walker, reader, and matcher into a lazy
// stream of FileResults. It owns no traversal or matching logic of its
// own; it only sequences the stages and routes per-file failures into
// the diagnostic stream.
package engine

import (
	"errors"
	"os"

	"github.com/rkern/grin/internal/config"
	"github.com/rkern/grin/internal/matcher"
	"github.com/rkern/grin/internal/models"
	"github.com/rkern/grin/internal/reader"
	"github.com/rkern/grin/internal/walker"
)

// Engine produces FileResults one at a time. Each call to Next pulls
// candidates from the walker and scans until a reportable file is
// found, so peak memory is one open file's context state. The consumer
// may simply stop calling Next to terminate the scan early.
type Engine struct {
	cfg     *config.Config
	walk    *walker.Walker
	scanner *matcher.Scanner
	diag    models.DiagnosticFunc
}

// New assembles an Engine from already-constructed stages.
func New(cfg *config.Config, walk *walker.Walker, scanner *matcher.Scanner, diag models.DiagnosticFunc) *Engine {
	return &Engine{cfg: cfg, walk: walk, scanner: scanner, diag: diag}
}

// Next returns the next FileResult. In the default mode that is the
// next searched file containing at least one match, with its resolved
// ContextGroups. In names-only mode the groups are suppressed; in
// files-without-matches mode the stream instead carries the searched
// files that had no match. The second return value is false when the
// traversal is exhausted.
func (e *Engine) Next() (*models.FileResult, bool) {
	for {
		cand, ok := e.walk.Next()
		if !ok {
			return nil, false
		}

		groups, err := e.scanFile(cand)
		if err != nil {
			e.diag.Report(diagnose(cand.Path, err))
			continue
		}

		matched := len(groups) > 0
		if e.cfg.InvertFiles {
			if matched {
				continue
			}
			return &models.FileResult{Path: cand.Path}, true
		}
		if !matched {
			continue
		}
		if e.cfg.NamesOnly {
			return &models.FileResult{Path: cand.Path}, true
		}
		return &models.FileResult{Path: cand.Path, Groups: groups}, true
	}
}

// scanFile opens and scans a single candidate.
func (e *Engine) scanFile(cand models.Candidate) ([]models.ContextGroup, error) {
	lr, err := reader.Open(cand.Path, cand.Kind)
	if err != nil {
		return nil, err
	}
	defer lr.Close()
	return e.scanner.Scan(lr)
}

// diagnose maps a per-file error to its diagnostic kind.
func diagnose(path string, err error) models.Diagnostic {
	kind := models.DiagReadFailure
	switch {
	case errors.Is(err, reader.ErrDecompress):
		kind = models.DiagDecompressFailure
	case os.IsPermission(err):
		kind = models.DiagPermissionDenied
	case os.IsNotExist(err):
		kind = models.DiagPathNotFound
	}
	return models.Diagnostic{Path: path, Kind: kind, Err: err}
}
