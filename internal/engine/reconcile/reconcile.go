// Package reconcile implements the lock-file reconciliation orchestrator.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/relock/internal/core/ports"
	"go.trai.ch/relock/internal/engine/classify"
	"go.trai.ch/zerr"
)

const (
	// PrimaryLockFile is resolved as a sibling of the manifest.
	PrimaryLockFile = "pdm.lock"
	// DevLockFile holds the dev-group resolution and lives next to the
	// primary lock file.
	DevLockFile = "pdm.dev.lock"
)

// Reconciler owns the end-to-end lock-file update flow for one manifest:
// snapshot, mode decision, execution, re-read, diff.
type Reconciler struct {
	classifier *classify.Classifier
	executor   ports.Executor
	files      ports.FileReader
	tools      ports.ToolResolver
	logger     ports.Logger
}

// New creates a new Reconciler.
func New(
	classifier *classify.Classifier,
	executor ports.Executor,
	files ports.FileReader,
	tools ports.ToolResolver,
	logger ports.Logger,
) *Reconciler {
	return &Reconciler{
		classifier: classifier,
		executor:   executor,
		files:      files,
		tools:      tools,
		logger:     logger,
	}
}

// Reconcile runs the update commands for the given upgrade set and reports
// which lock files changed.
//
// A nil result with a nil error means there was nothing to reconcile:
// either no lock file exists, or the run produced no content change.
// Transient infrastructure faults from the process runner propagate
// unchanged (matchable via errors.Is against domain.ErrTransient) so the
// caller can apply its retry policy. Every other execution failure ends the
// run with one Failure per intended lock file, all carrying the failure's
// message verbatim; partial success is never inferred.
func (r *Reconciler) Reconcile(
	ctx context.Context,
	manifestPath string,
	upgrades []domain.Dependency,
	mode domain.UpdateMode,
	opts domain.ExecOptions,
) (*domain.Result, error) {
	paths := []string{
		r.files.SiblingPath(manifestPath, PrimaryLockFile),
		r.files.SiblingPath(manifestPath, DevLockFile),
	}

	before := make([]domain.Snapshot, 0, len(paths))
	for _, path := range paths {
		snap, err := r.snapshot(path)
		if err != nil {
			return nil, err
		}
		before = append(before, snap)
	}

	if !anyPresent(before) {
		r.logger.Info("no lock files found, nothing to reconcile")
		return nil, nil
	}

	if err := r.resolveTools(ctx, opts.Tools); err != nil {
		return nil, err
	}

	var commands []string
	if mode == domain.ModeMaintenance {
		commands = []string{classify.MaintenanceCommand()}
	} else {
		commands = r.classifier.Commands(upgrades)
	}

	if err := r.executor.Execute(ctx, commands, opts); err != nil {
		if errors.Is(err, domain.ErrTransient) {
			return nil, err
		}
		r.logger.Error(zerr.Wrap(err, "lock file update run failed"))
		return failedResult(paths, err), nil
	}

	result := &domain.Result{}
	for _, snap := range before {
		change, changed, err := r.diff(snap)
		if err != nil {
			return nil, err
		}
		if changed {
			result.Changes = append(result.Changes, change)
		}
	}

	if len(result.Changes) == 0 {
		return nil, nil
	}
	return result, nil
}

// snapshot reads one lock file's current content. Absence is logged and
// reported through the Present flag, never as an error.
func (r *Reconciler) snapshot(path string) (domain.Snapshot, error) {
	content, present, err := r.files.ReadText(path)
	if err != nil {
		return domain.Snapshot{}, zerr.With(zerr.Wrap(err, "failed to read lock file"), "path", path)
	}
	if !present {
		r.logger.Info("lock file not found: " + path)
	}
	return domain.Snapshot{Path: path, Content: content, Present: present}, nil
}

// diff re-reads the file behind a pre-run snapshot and decides whether its
// content changed. Both lock files go through this same routine so the two
// pipelines cannot diverge. Content identity is the only change signal.
func (r *Reconciler) diff(before domain.Snapshot) (domain.Change, bool, error) {
	after, err := r.snapshot(before.Path)
	if err != nil {
		return domain.Change{}, false, err
	}

	if !before.Differs(after) {
		r.logger.Info("lock file unchanged: " + before.Path)
		return domain.Change{}, false, nil
	}

	r.logger.Info(fmt.Sprintf("lock file changed: %s (fingerprint %s)",
		after.Path, domain.Fingerprint(after.Content)))
	return domain.Change{Path: after.Path, Content: after.Content}, true, nil
}

// resolveTools logs the installed versions behind the run's toolchain
// constraints. The constraints themselves pass through to the executor
// unmodified.
func (r *Reconciler) resolveTools(ctx context.Context, constraints []domain.ToolConstraint) error {
	if r.tools == nil || len(constraints) == 0 {
		return nil
	}
	tools, err := r.tools.Resolve(ctx, constraints)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve toolchain constraints")
	}
	for _, tool := range tools {
		if tool.Installed == "" {
			continue
		}
		r.logger.Info(fmt.Sprintf("using %s %s (constraint %q)", tool.Name, tool.Installed, tool.Constraint))
	}
	return nil
}

// failedResult builds one failure record per intended lock file, each
// carrying the same diagnostic message.
func failedResult(paths []string, err error) *domain.Result {
	result := &domain.Result{}
	for _, path := range paths {
		result.Failures = append(result.Failures, domain.Failure{
			Path:    path,
			Message: err.Error(),
		})
	}
	return result
}

func anyPresent(snaps []domain.Snapshot) bool {
	for _, snap := range snaps {
		if snap.Present {
			return true
		}
	}
	return false
}
