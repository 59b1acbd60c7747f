// Package matcher scans file lines against a pattern evaluator and
// assembles matched lines with their surrounding context into merged
// ContextGroups.
package matcher

import (
	"fmt"
	"regexp"

	"github.com/rkern/grin/internal/models"
)

// Evaluator is the injected pattern backend. The scanner only needs
// "find all non-overlapping matches in a line"; pattern syntax is not
// this package's concern.
type Evaluator interface {
	// FindAll returns every non-overlapping match on the line, left
	// to right. Nil means no match.
	FindAll(line string) []models.MatchSpan
}

// RegexpEvaluator implements Evaluator on the standard regexp engine.
type RegexpEvaluator struct {
	re *regexp.Regexp
}

// NewRegexpEvaluator compiles pattern, prepending case-insensitivity
// when requested. A compile failure is fatal to the whole invocation,
// since no file can usefully be scanned without a pattern.
func NewRegexpEvaluator(pattern string, ignoreCase bool) (*RegexpEvaluator, error) {
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return &RegexpEvaluator{re: re}, nil
}

// FindAll returns all non-overlapping match spans on the line.
func (e *RegexpEvaluator) FindAll(line string) []models.MatchSpan {
	idx := e.re.FindAllStringIndex(line, -1)
	if idx == nil {
		return nil
	}
	spans := make([]models.MatchSpan, len(idx))
	for i, pair := range idx {
		spans[i] = models.MatchSpan{Start: pair[0], End: pair[1]}
	}
	return spans
}

// String returns the compiled pattern text.
func (e *RegexpEvaluator) String() string {
	return e.re.String()
}
