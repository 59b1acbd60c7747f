package models

import "fmt"

// DiagKind names the category of a non-fatal per-path failure.
type DiagKind string

const (
	// DiagPathNotFound is reported when a root path does not exist.
	// The walk continues with the remaining roots.
	DiagPathNotFound DiagKind = "path-not-found"

	// DiagPermissionDenied is reported when a directory or file cannot
	// be read. The entry is skipped and traversal continues.
	DiagPermissionDenied DiagKind = "permission-denied"

	// DiagDecompressFailure is reported when a compressed-container
	// file cannot be decompressed. The file is skipped.
	DiagDecompressFailure DiagKind = "decompress-failure"

	// DiagReadFailure is reported for any other mid-scan read error.
	DiagReadFailure DiagKind = "read-failure"
)

// Diagnostic records a non-fatal error encountered for one path during
// a scan. Diagnostics ride alongside the result stream instead of
// aborting it, so one bad file never stops the scan of its siblings.
type Diagnostic struct {
	Path string
	Kind DiagKind
	Err  error
}

// String formats the diagnostic for logging.
func (d Diagnostic) String() string {
	if d.Err == nil {
		return fmt.Sprintf("%s: %s", d.Path, d.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", d.Path, d.Kind, d.Err)
}

// DiagnosticFunc receives diagnostics as they occur. A nil
// DiagnosticFunc discards them.
type DiagnosticFunc func(Diagnostic)

// Report invokes the function if it is non-nil.
func (f DiagnosticFunc) Report(d Diagnostic) {
	if f != nil {
		f(d)
	}
}
