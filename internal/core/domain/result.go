package domain

// Snapshot captures a lock file's textual content at one point in time.
// Absence is a valid state, not an error.
type Snapshot struct {
	Path    string
	Content string
	Present bool
}

// Differs reports whether after represents different content than s.
// A file that appeared (absent before, present after) counts as different;
// a file that is still absent, or that disappeared, does not produce new
// content and counts as unchanged.
func (s Snapshot) Differs(after Snapshot) bool {
	if !after.Present {
		return false
	}
	return !s.Present || s.Content != after.Content
}

// Change records a lock file whose post-run content differs from its
// pre-run snapshot.
type Change struct {
	Path    string
	Content string
}

// Failure records a lock file the run intended to write but could not.
// Every failure from the same run carries the same diagnostic message.
type Failure struct {
	Path    string
	Message string
}

// Result is the outcome of one reconciliation run. A nil *Result means
// there was nothing to reconcile. Changes and Failures are mutually
// exclusive: a failed run never reports partial success.
type Result struct {
	Changes  []Change
	Failures []Failure
}

// Failed reports whether the run ended with per-file failures.
func (r *Result) Failed() bool {
	return r != nil && len(r.Failures) > 0
}
