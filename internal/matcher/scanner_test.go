package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkern/grin/internal/models"
	"github.com/rkern/grin/internal/reader"
)

// sliceSource feeds the scanner from a string slice.
type sliceSource struct {
	lines []string
	idx   int
}

func (s *sliceSource) Next() (reader.Line, bool) {
	if s.idx >= len(s.lines) {
		return reader.Line{}, false
	}
	s.idx++
	return reader.Line{Number: s.idx, Text: s.lines[s.idx-1]}, true
}

func (s *sliceSource) Err() error { return nil }

func scanLines(t *testing.T, pattern string, before, after int, lines ...string) []models.ContextGroup {
	t.Helper()
	eval, err := NewRegexpEvaluator(pattern, false)
	require.NoError(t, err)
	sc, err := NewScanner(eval, before, after)
	require.NoError(t, err)
	groups, err := sc.Scan(&sliceSource{lines: lines})
	require.NoError(t, err)
	return groups
}

// lineNumbers flattens a group into its line numbers.
func lineNumbers(g models.ContextGroup) []int {
	nums := make([]int, len(g.Lines))
	for i, ln := range g.Lines {
		nums[i] = ln.Number
	}
	return nums
}

func TestScanNoContext(t *testing.T) {
	t.Run("separate one-line groups", func(t *testing.T) {
		groups := scanLines(t, "foo", 0, 0, "foo", "bar", "foo")
		require.Len(t, groups, 2)
		assert.Equal(t, []int{1}, lineNumbers(groups[0]))
		assert.Equal(t, []int{3}, lineNumbers(groups[1]))
	})

	t.Run("consecutive matches share a group", func(t *testing.T) {
		groups := scanLines(t, "foo", 0, 0, "foo", "foo", "foo")
		require.Len(t, groups, 1)
		assert.Equal(t, []int{1, 2, 3}, lineNumbers(groups[0]))
		for _, ln := range groups[0].Lines {
			assert.Equal(t, models.LineMatch, ln.Kind)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		groups := scanLines(t, "zzz", 0, 0, "foo", "bar")
		assert.Empty(t, groups)
	})

	t.Run("match mid-line records the offset", func(t *testing.T) {
		groups := scanLines(t, "foo", 0, 0, "bar", "barfoobar", "bar")
		require.Len(t, groups, 1)
		require.Len(t, groups[0].Lines, 1)
		assert.Equal(t, 2, groups[0].Lines[0].Number)
		assert.Equal(t, []models.MatchSpan{{Start: 3, End: 6}}, groups[0].Lines[0].Spans)
	})
}

func TestScanRoundTrip(t *testing.T) {
	// foo on line 5, before=2 after=1: one group spanning lines 3-6
	// with the span at the right offset.
	lines := []string{"l1", "l2", "l3", "l4", "xxfooyy", "l6", "l7", "l8"}
	groups := scanLines(t, "foo", 2, 1, lines...)

	require.Len(t, groups, 1)
	assert.Equal(t, []int{3, 4, 5, 6}, lineNumbers(groups[0]))
	assert.Equal(t, 3, groups[0].FirstLine())
	assert.Equal(t, 6, groups[0].LastLine())

	kinds := []models.LineKind{models.LineBefore, models.LineBefore, models.LineMatch, models.LineAfter}
	for i, ln := range groups[0].Lines {
		assert.Equal(t, kinds[i], ln.Kind, "line %d", ln.Number)
	}
	assert.Equal(t, []models.MatchSpan{{Start: 2, End: 5}}, groups[0].Lines[2].Spans)
}

func TestScanMergeLaw(t *testing.T) {
	t.Run("gap covered by windows merges", func(t *testing.T) {
		// matches at 1 and 3, before=1 after=0: 3-1 <= 0+1+1
		groups := scanLines(t, "foo", 1, 0, "foo", "gap", "foo")
		require.Len(t, groups, 1)
		assert.Equal(t, []int{1, 2, 3}, lineNumbers(groups[0]))
	})

	t.Run("after context bridges the gap", func(t *testing.T) {
		groups := scanLines(t, "foo", 0, 1, "foo", "gap", "foo", "tail")
		require.Len(t, groups, 1)
		assert.Equal(t, []int{1, 2, 3, 4}, lineNumbers(groups[0]))
		assert.Equal(t, models.LineAfter, groups[0].Lines[1].Kind)
		assert.Equal(t, models.LineAfter, groups[0].Lines[3].Kind)
	})

	t.Run("boundary distance still merges", func(t *testing.T) {
		// matches at 1 and 6, before=2 after=2: 6-1 == 2+2+1
		groups := scanLines(t, "foo", 2, 2, "foo", "a", "b", "c", "d", "foo")
		require.Len(t, groups, 1)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, lineNumbers(groups[0]))
	})

	t.Run("one past the boundary splits", func(t *testing.T) {
		// matches at 1 and 7, before=2 after=2: 7-1 > 2+2+1
		groups := scanLines(t, "foo", 2, 2, "foo", "a", "b", "c", "d", "e", "foo")
		require.Len(t, groups, 2)
		assert.Equal(t, []int{1, 2, 3}, lineNumbers(groups[0]))
		assert.Equal(t, []int{5, 6, 7}, lineNumbers(groups[1]))
		// Line 4 belongs to neither window and appears nowhere.
	})

	t.Run("no line emitted twice", func(t *testing.T) {
		groups := scanLines(t, "foo", 2, 2, "foo", "a", "foo", "b", "foo")
		seen := map[int]bool{}
		for _, g := range groups {
			for _, ln := range g.Lines {
				assert.False(t, seen[ln.Number], "line %d duplicated", ln.Number)
				seen[ln.Number] = true
			}
		}
	})
}

func TestScanAfterContext(t *testing.T) {
	t.Run("window closes after countdown", func(t *testing.T) {
		groups := scanLines(t, "foo", 0, 2, "foo", "a", "b", "c", "d")
		require.Len(t, groups, 1)
		assert.Equal(t, []int{1, 2, 3}, lineNumbers(groups[0]))
	})

	t.Run("flush at end of input", func(t *testing.T) {
		groups := scanLines(t, "foo", 0, 3, "a", "foo", "b")
		require.Len(t, groups, 1)
		assert.Equal(t, []int{2, 3}, lineNumbers(groups[0]))
	})

	t.Run("match at last line", func(t *testing.T) {
		groups := scanLines(t, "foo", 1, 1, "a", "b", "foo")
		require.Len(t, groups, 1)
		assert.Equal(t, []int{2, 3}, lineNumbers(groups[0]))
	})
}

func TestScanBeforeBuffer(t *testing.T) {
	t.Run("buffer holds only the window", func(t *testing.T) {
		groups := scanLines(t, "foo", 2, 0, "a", "b", "c", "d", "foo")
		require.Len(t, groups, 1)
		assert.Equal(t, []int{3, 4, 5}, lineNumbers(groups[0]))
	})

	t.Run("match at first line has no before context", func(t *testing.T) {
		groups := scanLines(t, "foo", 3, 0, "foo", "a")
		require.Len(t, groups, 1)
		assert.Equal(t, []int{1}, lineNumbers(groups[0]))
	})
}

func TestScanMultipleSpans(t *testing.T) {
	groups := scanLines(t, "foo", 0, 0, "foo then foo again")
	require.Len(t, groups, 1)
	spans := groups[0].Lines[0].Spans
	require.Len(t, spans, 2)
	assert.Equal(t, models.MatchSpan{Start: 0, End: 3}, spans[0])
	assert.Equal(t, models.MatchSpan{Start: 9, End: 12}, spans[1])
	// Non-overlapping, left-to-right ordered.
	assert.Less(t, spans[0].End, spans[1].Start+1)
}

func TestNewScannerValidation(t *testing.T) {
	eval, err := NewRegexpEvaluator("x", false)
	require.NoError(t, err)

	_, err = NewScanner(eval, -1, 0)
	assert.Error(t, err)
	_, err = NewScanner(eval, 0, -1)
	assert.Error(t, err)
	_, err = NewScanner(nil, 0, 0)
	assert.Error(t, err)
}
