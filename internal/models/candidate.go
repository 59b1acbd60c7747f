package models

// FileKind classifies a filesystem entry for the scan pipeline.
// The vocabulary determines what the walker does with the entry:
// text-like kinds are yielded for matching, "directory" is recursed
// into, and the rest are passed over.
type FileKind string

const (
	// KindText is a plain text file that should be searched.
	KindText FileKind = "text"

	// KindGzip is a gzip-compressed text file. It is searched after
	// transparent decompression.
	KindGzip FileKind = "gzip"

	// KindBzip2 is a bzip2-compressed text file. It is searched after
	// transparent decompression.
	KindBzip2 FileKind = "bzip2"

	// KindBinary is a file whose leading bytes look binary. It is
	// skipped unless binary skipping is disabled.
	KindBinary FileKind = "binary"

	// KindDirectory is a readable, executable directory eligible for
	// recursion.
	KindDirectory FileKind = "directory"

	// KindLink is a symlink that the configuration says to skip.
	KindLink FileKind = "link"

	// KindSkip is an entry excluded by name-based policy (skip-dir,
	// skip-ext, hidden, backup).
	KindSkip FileKind = "skip"

	// KindUnreadable is an entry that exists but cannot be opened.
	KindUnreadable FileKind = "unreadable"
)

// Searchable reports whether the kind is one the matcher can consume.
func (k FileKind) Searchable() bool {
	return k == KindText || k == KindGzip || k == KindBzip2
}

// Candidate is a file the walker has decided is eligible for matching.
// It is created by the walker and consumed exactly once, either by the
// line matcher or by the glob filter.
type Candidate struct {
	// Path is the file path as the walker built it (root-relative when
	// the root was relative).
	Path string

	// Kind is the content classification resolved at yield time.
	Kind FileKind

	// Explicit marks candidates named directly by the caller rather
	// than discovered by recursion. Explicit candidates bypass
	// name-based skip rules.
	Explicit bool
}
