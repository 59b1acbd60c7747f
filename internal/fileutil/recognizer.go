package fileutil

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rkern/grin/internal/config"
	"github.com/rkern/grin/internal/models"
)

// Magic bytes identifying compressed containers.
var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
)

// IsBinary reports whether a byte sample from the start of a file
// looks binary rather than text. A NUL byte anywhere in the sample
// classifies the file as binary.
func IsBinary(sample []byte) bool {
	return bytes.IndexByte(sample, 0) >= 0
}

// Recognizer applies the configured skip policy to filesystem entries
// and classifies file contents. It holds no mutable state and is safe
// to share across a traversal.
type Recognizer struct {
	cfg      *config.Config
	skipDirs map[string]bool
}

// NewRecognizer creates a Recognizer for the given configuration.
func NewRecognizer(cfg *config.Config) *Recognizer {
	skipDirs := make(map[string]bool, len(cfg.SkipDirs))
	for _, d := range cfg.SkipDirs {
		skipDirs[d] = true
	}
	return &Recognizer{cfg: cfg, skipDirs: skipDirs}
}

// ShouldDescend reports whether a directory passes the name-based skip
// rules. The skip-dir set is an exact-name, case-sensitive set, not a
// pattern list.
func (r *Recognizer) ShouldDescend(dirName string) bool {
	if r.skipDirs[dirName] {
		return false
	}
	if r.cfg.SkipHiddenDirs && strings.HasPrefix(dirName, ".") && dirName != "." && dirName != ".." {
		return false
	}
	return true
}

// ShouldSearch reports whether a file passes the name-based skip rules
// (hidden, backup, skip-ext). Content checks happen separately.
func (r *Recognizer) ShouldSearch(fileName string) bool {
	if r.cfg.SkipHiddenFiles && strings.HasPrefix(fileName, ".") {
		return false
	}
	if r.cfg.SkipBackupFiles && r.isBackup(fileName) {
		return false
	}
	for _, suffix := range r.cfg.SkipExts {
		if suffix != "" && strings.HasSuffix(fileName, suffix) {
			return false
		}
	}
	return true
}

// isBackup reports whether a file name matches the configured backup
// conventions (trailing "~", leading "#", per configuration).
func (r *Recognizer) isBackup(fileName string) bool {
	for _, suffix := range r.cfg.BackupSuffixes {
		if suffix != "" && strings.HasSuffix(fileName, suffix) {
			return true
		}
	}
	for _, prefix := range r.cfg.BackupPrefixes {
		if prefix != "" && strings.HasPrefix(fileName, prefix) {
			return true
		}
	}
	return false
}

// Recognize classifies an arbitrary path. Explicit marks paths named
// directly by the caller, which bypass the name-based skip rules.
func (r *Recognizer) Recognize(path string, explicit bool) (models.FileKind, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.KindUnreadable, err
	}
	if info.IsDir() {
		return r.RecognizeDirectory(path, explicit)
	}
	return r.RecognizeFile(path, explicit)
}

// RecognizeDirectory classifies a directory path. Readability is not
// probed here; the walker discovers permission failures when it lists
// the directory.
func (r *Recognizer) RecognizeDirectory(path string, explicit bool) (models.FileKind, error) {
	name := filepath.Base(path)
	if !explicit && !r.ShouldDescend(name) {
		return models.KindSkip, nil
	}
	if r.cfg.SkipSymlinkDirs && isSymlink(path) {
		return models.KindLink, nil
	}
	return models.KindDirectory, nil
}

// RecognizeFile classifies a file path, applying the name-based rules
// (unless explicit), the symlink rule, and the content classification.
// Explicit files bypass hidden/backup/extension rules but are still
// subject to the symlink and binary checks.
func (r *Recognizer) RecognizeFile(path string, explicit bool) (models.FileKind, error) {
	name := filepath.Base(path)
	if !explicit && !r.ShouldSearch(name) {
		return models.KindSkip, nil
	}
	if r.cfg.SkipSymlinkFiles && isSymlink(path) {
		return models.KindLink, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return models.KindUnreadable, err
	}
	if !info.Mode().IsRegular() {
		// Sockets, devices, pipes.
		return models.KindSkip, nil
	}

	return r.classifyContent(path)
}

// classifyContent samples the leading BinaryBytes of a file and
// classifies it as text, a compressed text container, or binary.
func (r *Recognizer) classifyContent(path string) (models.FileKind, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.KindUnreadable, err
	}
	defer f.Close()

	sample := make([]byte, r.cfg.BinaryBytes)
	n, err := io.ReadFull(f, sample)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return models.KindUnreadable, err
	}
	sample = sample[:n]

	switch {
	case strings.HasSuffix(path, ".gz") && bytes.HasPrefix(sample, gzipMagic):
		if r.compressedSampleIsText(f, func(rd io.Reader) (io.Reader, error) {
			zr, err := gzip.NewReader(rd)
			if err != nil {
				return nil, err
			}
			return zr, nil
		}) {
			return models.KindGzip, nil
		}
		return models.KindBinary, nil
	case strings.HasSuffix(path, ".bz2") && bytes.HasPrefix(sample, bzip2Magic):
		if r.compressedSampleIsText(f, func(rd io.Reader) (io.Reader, error) {
			return bzip2.NewReader(rd), nil
		}) {
			return models.KindBzip2, nil
		}
		return models.KindBinary, nil
	}

	if IsBinary(sample) {
		return models.KindBinary, nil
	}
	return models.KindText, nil
}

// compressedSampleIsText rewinds the file, decompresses up to
// BinaryBytes of output with the provided decoder, and applies the
// text heuristic to what came out. Any decode failure before output is
// produced classifies the file as binary (covers fake containers that
// carry the right magic over a broken stream).
func (r *Recognizer) compressedSampleIsText(f *os.File, decode func(io.Reader) (io.Reader, error)) bool {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return false
	}
	zr, err := decode(bufio.NewReader(f))
	if err != nil {
		return false
	}
	if c, ok := zr.(io.Closer); ok {
		defer c.Close()
	}

	inner := make([]byte, r.cfg.BinaryBytes)
	m, err := io.ReadFull(zr, inner)
	if m == 0 {
		// An empty container is text; a broken one is binary.
		return err == io.EOF
	}
	return !IsBinary(inner[:m])
}

// isSymlink reports whether the path itself is a symbolic link.
func isSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}
