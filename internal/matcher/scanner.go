package matcher

import (
	"fmt"

	"github.com/rkern/grin/internal/models"
	"github.com/rkern/grin/internal/reader"
)

// Scanner walks a file's lines once, top to bottom, collecting matched
// lines and their context windows into ContextGroups. Two match
// regions merge into one group whenever their windows touch: matches
// on lines i < j share a group iff j-i <= after+before+1. No line is
// ever emitted twice.
type Scanner struct {
	eval   Evaluator
	before int
	after  int
}

// NewScanner creates a Scanner with the given context window sizes.
func NewScanner(eval Evaluator, before, after int) (*Scanner, error) {
	if eval == nil {
		return nil, fmt.Errorf("nil evaluator")
	}
	if before < 0 || after < 0 {
		return nil, fmt.Errorf("context sizes must be >= 0, got before=%d after=%d", before, after)
	}
	return &Scanner{eval: eval, before: before, after: after}, nil
}

// Scan consumes the line source and returns the file's ContextGroups
// in order. Memory stays bounded by the context windows: only the
// before-buffer and the undecided trailing lines of the open group are
// held, never the whole file.
func (s *Scanner) Scan(lines reader.LineSource) ([]models.ContextGroup, error) {
	var (
		groups    []models.ContextGroup
		open      *models.ContextGroup
		beforeBuf []models.ContextLine
		// pending holds non-match lines seen since the last match
		// while a group is open. They become after-context, or
		// before-context of the next match if one arrives in time.
		pending []models.ContextLine
	)

	pushBefore := func(ln models.ContextLine) {
		if s.before == 0 {
			return
		}
		ln.Kind = models.LineBefore
		ln.Spans = nil
		beforeBuf = append(beforeBuf, ln)
		if len(beforeBuf) > s.before {
			beforeBuf = beforeBuf[1:]
		}
	}

	closeOpen := func() {
		take := s.after
		if take > len(pending) {
			take = len(pending)
		}
		for _, ln := range pending[:take] {
			ln.Kind = models.LineAfter
			open.Lines = append(open.Lines, ln)
		}
		rest := pending[take:]
		groups = append(groups, *open)
		open = nil
		pending = nil
		for _, ln := range rest {
			pushBefore(ln)
		}
	}

	for {
		line, ok := lines.Next()
		if !ok {
			break
		}

		spans := s.eval.FindAll(line.Text)
		cl := models.ContextLine{Number: line.Number, Text: line.Text}

		if spans == nil {
			if open == nil {
				pushBefore(cl)
				continue
			}
			pending = append(pending, cl)
			// Once the gap exceeds after+before no future match can
			// merge back into this group, so it can be sealed.
			if len(pending) > s.after+s.before {
				closeOpen()
			}
			continue
		}

		cl.Kind = models.LineMatch
		cl.Spans = spans

		if open == nil {
			open = &models.ContextGroup{}
			open.Lines = append(open.Lines, beforeBuf...)
			beforeBuf = beforeBuf[:0]
			open.Lines = append(open.Lines, cl)
			continue
		}

		// Merge: the gap lines split into after-context of the
		// previous match and before-context of this one.
		take := s.after
		if take > len(pending) {
			take = len(pending)
		}
		for i, ln := range pending {
			if i < take {
				ln.Kind = models.LineAfter
			} else {
				ln.Kind = models.LineBefore
			}
			open.Lines = append(open.Lines, ln)
		}
		pending = nil
		open.Lines = append(open.Lines, cl)
	}

	if open != nil {
		closeOpen()
	}

	if err := lines.Err(); err != nil {
		return groups, err
	}
	return groups, nil
}
