// Package reader exposes a file as a lazy sequence of numbered,
// newline-stripped text lines, decompressing recognized compressed
// containers transparently.
package reader

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rkern/grin/internal/models"
)

// maxLineBytes bounds a single line. Lines beyond this are a sign of
// generated or binary-ish content; the file's scan stops with an error
// rather than buffering without limit.
const maxLineBytes = 4 * 1024 * 1024

// ErrDecompress marks failures to decompress a compressed-container
// file. Callers distinguish it from plain read errors with errors.Is.
var ErrDecompress = errors.New("decompression failed")

// Line is one line of a file: a 1-based number and the text without
// its trailing newline.
type Line struct {
	Number int
	Text   string
}

// LineSource is a pull-based producer of lines. Next returns the next
// line until the input is exhausted; Err reports what, if anything,
// terminated the sequence early.
type LineSource interface {
	Next() (Line, bool)
	Err() error
}

// LineReader reads a file line by line. The file is never fully
// resident in memory: a single forward pass, no rewinding.
type LineReader struct {
	file    *os.File
	closer  io.Closer // decompressor, when present
	scanner *bufio.Scanner
	num     int
	err     error
	decomp  bool
}

// Open opens path for line reading, keying the decompression choice
// off the candidate kind. KindText reads the file as-is.
func Open(path string, kind models.FileKind) (*LineReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var src io.Reader = f
	var closer io.Closer
	decomp := false

	switch kind {
	case models.KindGzip:
		zr, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: %s: %v", ErrDecompress, path, err)
		}
		src = zr
		closer = zr
		decomp = true
	case models.KindBzip2:
		src = bzip2.NewReader(bufio.NewReader(f))
		decomp = true
	}

	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	return &LineReader{file: f, closer: closer, scanner: sc, decomp: decomp}, nil
}

// OpenPath opens path, inferring the container from the file name
// alone. Convenience for callers without a recognized Candidate.
func OpenPath(path string) (*LineReader, error) {
	kind := models.KindText
	switch {
	case strings.HasSuffix(path, ".gz"):
		kind = models.KindGzip
	case strings.HasSuffix(path, ".bz2"):
		kind = models.KindBzip2
	}
	return Open(path, kind)
}

// Next returns the next line of the file. The second return value is
// false at end of input or on error; check Err after the loop.
func (r *LineReader) Next() (Line, bool) {
	if r.err != nil {
		return Line{}, false
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			if r.decomp {
				r.err = fmt.Errorf("%w: %v", ErrDecompress, err)
			} else {
				r.err = err
			}
		}
		return Line{}, false
	}
	r.num++
	return Line{Number: r.num, Text: r.scanner.Text()}, true
}

// Err reports the error, if any, that terminated the line sequence.
func (r *LineReader) Err() error {
	return r.err
}

// Close releases the underlying file and any decompressor.
func (r *LineReader) Close() error {
	var first error
	if r.closer != nil {
		if err := r.closer.Close(); err != nil && r.err == nil {
			first = err
		}
	}
	if err := r.file.Close(); err != nil && first == nil {
		first = err
	}
	return first
}
