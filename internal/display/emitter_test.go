package display

import (
	"bytes"
	"testing"

	"github.com/rkern/grin/internal/config"
	"github.com/rkern/grin/internal/models"
)

func sampleResult() *models.FileResult {
	return &models.FileResult{
		Path: "dir/file.txt",
		Groups: []models.ContextGroup{
			{
				Lines: []models.ContextLine{
					{Number: 4, Kind: models.LineBefore, Text: "setup"},
					{Number: 5, Kind: models.LineMatch, Text: "the needle line",
						Spans: []models.MatchSpan{{Start: 4, End: 10}}},
					{Number: 6, Kind: models.LineAfter, Text: "teardown"},
				},
			},
		},
	}
}

func TestEmitFileFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.Color = "never"
	emit := NewEmitter(&buf, cfg)

	if err := emit.EmitFile(sampleResult()); err != nil {
		t.Fatal(err)
	}

	want := "dir/file.txt:\n" +
		"    4 - setup\n" +
		"    5 : the needle line\n" +
		"    6 + teardown\n"
	if buf.String() != want {
		t.Errorf("output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestEmitFileWithoutFilename(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.Color = "never"
	cfg.ShowFilename = false
	emit := NewEmitter(&buf, cfg)

	if err := emit.EmitFile(sampleResult()); err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(buf.Bytes(), []byte("file.txt")) {
		t.Errorf("path leaked into output: %q", buf.String())
	}
}

func TestEmitFileWithoutLineNumbers(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.Color = "never"
	cfg.ShowLineNumbers = false
	emit := NewEmitter(&buf, cfg)

	if err := emit.EmitFile(sampleResult()); err != nil {
		t.Fatal(err)
	}
	want := "dir/file.txt:\n" +
		"setup\n" +
		"the needle line\n" +
		"teardown\n"
	if buf.String() != want {
		t.Errorf("output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestEmitNamesOnly(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.Color = "never"
	cfg.NamesOnly = true
	emit := NewEmitter(&buf, cfg)

	if err := emit.EmitFile(&models.FileResult{Path: "a.txt"}); err != nil {
		t.Fatal(err)
	}
	if err := emit.EmitFile(&models.FileResult{Path: "b.txt"}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "a.txt\nb.txt\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestEmitNamesNulSeparated(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.Color = "never"
	cfg.NamesOnly = true
	cfg.NullSeparated = true
	emit := NewEmitter(&buf, cfg)

	if err := emit.EmitFile(&models.FileResult{Path: "with space.txt"}); err != nil {
		t.Fatal(err)
	}
	if err := emit.EmitFile(&models.FileResult{Path: "plain.txt"}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "with space.txt\x00plain.txt\x00" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestInvertFilesEmitsNamesOnly(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.Color = "never"
	cfg.InvertFiles = true
	emit := NewEmitter(&buf, cfg)

	if err := emit.EmitFile(&models.FileResult{Path: "clean.txt"}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "clean.txt\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestResolveColor(t *testing.T) {
	var buf bytes.Buffer
	if resolveColor("always", &buf) != true {
		t.Error("always should force color on")
	}
	if resolveColor("never", &buf) != false {
		t.Error("never should force color off")
	}
	if resolveColor("auto", &buf) != false {
		t.Error("auto should disable color for a plain buffer")
	}
}

func TestHighlightSpans(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.Color = "always"
	emit := NewEmitter(&buf, cfg)

	out := emit.highlight("the needle line", []models.MatchSpan{{Start: 4, End: 10}})
	// Whatever escapes wrap the span, the visible text survives intact
	// and in order.
	if !bytes.Contains([]byte(out), []byte("needle")) {
		t.Errorf("highlighted text lost the match: %q", out)
	}
	if len(out) < len("the needle line") {
		t.Errorf("highlight shortened the line: %q", out)
	}
}
