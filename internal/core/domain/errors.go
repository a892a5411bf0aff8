package domain

import "go.trai.ch/zerr"

var (
	// ErrTransient marks infrastructure-level execution faults (the process
	// runner could not run the toolchain at all). Callers may retry; it is
	// never converted into per-file failures.
	ErrTransient = zerr.New("transient infrastructure failure")

	// ErrManifestNotFound is returned when the project manifest is missing.
	ErrManifestNotFound = zerr.New("manifest not found")

	// ErrNoMatchingDependency is returned when a requested package name is
	// not declared anywhere in the manifest.
	ErrNoMatchingDependency = zerr.New("dependency not declared in manifest")

	// ErrUpdateFailed is returned by the application layer when a
	// reconciliation run reports per-file failures.
	ErrUpdateFailed = zerr.New("lock file update failed")
)
