// Package display renders FileResults as text. It is the consumer end
// of the scan pipeline and owns no traversal or matching logic.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/rkern/grin/internal/config"
	"github.com/rkern/grin/internal/models"
)

// Emitter writes results in grin's output format:
//
//	path:
//	    3 - before context
//	    5 : matched line
//	    6 + after context
//
// Names-only results are bare paths, newline- or NUL-terminated.
type Emitter struct {
	out             io.Writer
	showLineNumbers bool
	showFilename    bool
	namesOnly       bool
	nulSeparated    bool
	useColor        bool

	filenameColor *color.Color
	matchColor    *color.Color
}

// NewEmitter creates an Emitter for the given configuration. Color is
// resolved here once: "always" and "never" are absolute, "auto" turns
// color on only when out is a terminal.
func NewEmitter(out io.Writer, cfg *config.Config) *Emitter {
	return &Emitter{
		out:             out,
		showLineNumbers: cfg.ShowLineNumbers,
		showFilename:    cfg.ShowFilename,
		namesOnly:       cfg.NamesOnly || cfg.InvertFiles,
		nulSeparated:    cfg.NullSeparated,
		useColor:        resolveColor(cfg.Color, out),
		filenameColor:   color.New(color.Bold, color.FgMagenta),
		matchColor:      color.New(color.Bold, color.FgRed),
	}
}

// resolveColor decides whether escape sequences should be written.
func resolveColor(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if f, ok := out.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// EmitFile writes one FileResult.
func (e *Emitter) EmitFile(res *models.FileResult) error {
	if e.namesOnly {
		return e.emitName(res.Path)
	}

	var b strings.Builder
	if e.showFilename {
		if e.useColor {
			b.WriteString(e.filenameColor.Sprint(res.Path))
		} else {
			b.WriteString(res.Path)
		}
		b.WriteString(":\n")
	}

	for _, group := range res.Groups {
		for _, line := range group.Lines {
			e.writeLine(&b, line)
		}
	}

	_, err := io.WriteString(e.out, b.String())
	return err
}

// emitName writes a bare path for names-only and find modes. NUL
// separation follows the "find -print0" convention, including the
// trailing NUL on the final name.
func (e *Emitter) emitName(path string) error {
	sep := "\n"
	if e.nulSeparated {
		sep = "\x00"
	}
	_, err := io.WriteString(e.out, path+sep)
	return err
}

// writeLine renders a single context line with its separator:
// "-" before, ":" match, "+" after.
func (e *Emitter) writeLine(b *strings.Builder, line models.ContextLine) {
	text := line.Text
	if e.useColor && len(line.Spans) > 0 {
		text = e.highlight(line.Text, line.Spans)
	}

	if !e.showLineNumbers {
		b.WriteString(text)
		b.WriteString("\n")
		return
	}

	sep := ":"
	switch line.Kind {
	case models.LineBefore:
		sep = "-"
	case models.LineAfter:
		sep = "+"
	}
	fmt.Fprintf(b, "%5d %s %s\n", line.Number, sep, text)
}

// highlight wraps each match span in the match color. Spans are
// non-overlapping and ordered, so a single left-to-right pass works.
func (e *Emitter) highlight(text string, spans []models.MatchSpan) string {
	var b strings.Builder
	last := 0
	for _, span := range spans {
		if span.Start < last || span.End > len(text) {
			continue
		}
		b.WriteString(text[last:span.Start])
		b.WriteString(e.matchColor.Sprint(text[span.Start:span.End]))
		last = span.End
	}
	b.WriteString(text[last:])
	return b.String()
}
