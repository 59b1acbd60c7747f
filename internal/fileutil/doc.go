// Package fileutil provides the file recognition policy for the scan
// pipeline: name-based filtering and content-based classification.
//
// This package is the single source of truth for deciding what to do
// with a filesystem entry. The walker consults it for every entry it
// encounters; no other package implements skip logic.
//
// # Main Components
//
// Recognizer - Applies the configured policy to paths:
//   - ShouldDescend: whether a directory should be recursed into
//   - ShouldSearch: whether a file passes the name-based skip rules
//   - Recognize / RecognizeFile / RecognizeDirectory: full kind
//     classification (text, gzip, bzip2, binary, directory, link,
//     skip, unreadable)
//
// IsBinary - The binary/text heuristic applied to a file's leading
// bytes: a NUL byte in the sample classifies the file as binary. This
// is an approximation; false positives and negatives on exotic
// encodings are a known, accepted limitation.
//
// # Skip Categories
//
// Five independently toggleable categories: skip-dir names, skip-ext
// suffixes, hidden entries, backup files, and symlinks, plus the
// binary check. Disabling all of them makes the walker visit every
// entry reachable from the roots.
//
// Skip-ext entries are literal name suffixes rather than extensions in
// the filepath.Ext sense, so "#" and ".tar.gz" are both valid entries.
//
// # Compressed Containers
//
// A file whose name ends in ".gz" is only classified as a gzip text
// container when the gzip magic bytes are present and the decompressed
// sample passes the text heuristic; otherwise it is binary. ".bz2"
// files are classified by their magic bytes alone, since bzip2
// decompression is not seekable enough to sample cheaply.
package fileutil
