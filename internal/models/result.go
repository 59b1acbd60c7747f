package models

// LineKind distinguishes the role of a line within a ContextGroup.
// The ordering of the constants matters: before-context sorts ahead of
// the match, which sorts ahead of after-context.
type LineKind int

const (
	// LineBefore is a context line preceding a match.
	LineBefore LineKind = -1

	// LineMatch is a line that matched the pattern.
	LineMatch LineKind = 0

	// LineAfter is a context line following a match.
	LineAfter LineKind = 1
)

// MatchSpan is a half-open [Start, End) byte offset pair identifying
// one match occurrence within a line. Spans on a line are
// non-overlapping and ordered left to right.
type MatchSpan struct {
	Start int
	End   int
}

// ContextLine is one line of a ContextGroup: a 1-based line number, the
// newline-stripped text, and, for matched lines, the spans of every
// non-overlapping match on the line.
type ContextLine struct {
	Number int
	Kind   LineKind
	Text   string
	Spans  []MatchSpan
}

// ContextGroup is one merged, contiguous block of before-context,
// match, and after-context lines for a file. Adjacent match regions
// whose context windows touch are merged into a single group, so no
// line ever appears twice.
type ContextGroup struct {
	Lines []ContextLine
}

// FirstLine returns the number of the first line in the group, or 0
// for an empty group.
func (g ContextGroup) FirstLine() int {
	if len(g.Lines) == 0 {
		return 0
	}
	return g.Lines[0].Number
}

// LastLine returns the number of the last line in the group, or 0 for
// an empty group.
func (g ContextGroup) LastLine() int {
	if len(g.Lines) == 0 {
		return 0
	}
	return g.Lines[len(g.Lines)-1].Number
}

// FileResult pairs a file path with its ordered ContextGroups. Groups
// is empty in names-only mode and for files-without-matches listings;
// files with no match are otherwise omitted from the stream entirely.
type FileResult struct {
	Path   string
	Groups []ContextGroup
}
