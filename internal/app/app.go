// Package app implements the application layer for relock.
package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/relock/internal/adapters/config"
	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/relock/internal/core/ports"
	"go.trai.ch/relock/internal/engine/reconcile"
	"go.trai.ch/zerr"
)

// ManifestFile is the project manifest relock operates on.
const ManifestFile = "pyproject.toml"

// App represents the main application logic.
type App struct {
	config     *config.Loader
	manifest   ports.ManifestReader
	reconciler *reconcile.Reconciler
	logger     ports.Logger
}

// Options select the project a command operates on.
type Options struct {
	// Project is the directory containing pyproject.toml. Defaults to the
	// current directory.
	Project string
}

// New creates a new App instance.
func New(
	loader *config.Loader,
	manifest ports.ManifestReader,
	reconciler *reconcile.Reconciler,
	logger ports.Logger,
) *App {
	return &App{
		config:     loader,
		manifest:   manifest,
		reconciler: reconciler,
		logger:     logger,
	}
}

// Update runs targeted upgrades for the named packages and stages the
// resulting lock-file changes to disk.
func (a *App) Update(ctx context.Context, names []string, opts Options) error {
	return a.run(ctx, names, domain.ModeTargeted, opts)
}

// Lock regenerates the lock files wholesale (maintenance mode).
func (a *App) Lock(ctx context.Context, opts Options) error {
	return a.run(ctx, nil, domain.ModeMaintenance, opts)
}

func (a *App) run(ctx context.Context, names []string, mode domain.UpdateMode, opts Options) error {
	project := opts.Project
	if project == "" {
		project = "."
	}

	cfg, err := a.config.Load(project)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	manifestPath := filepath.Join(project, ManifestFile)
	manifest, err := a.manifest.Load(manifestPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	var upgrades []domain.Dependency
	if mode == domain.ModeTargeted {
		upgrades = manifest.Select(names)
		if len(upgrades) == 0 {
			return zerr.With(domain.ErrNoMatchingDependency, "requested", strings.Join(names, ", "))
		}
	}

	execOpts := domain.ExecOptions{
		WorkDir:   project,
		Container: cfg.Container,
		Tools: []domain.ToolConstraint{
			{Name: "python", Constraint: manifest.RequiresPython},
			{Name: "pdm", Constraint: cfg.UpdaterConstraint},
		},
	}

	result, err := a.reconciler.Reconcile(ctx, manifestPath, upgrades, mode, execOpts)
	if err != nil {
		return err
	}

	if result == nil {
		a.logger.Info("lock files already up to date")
		return nil
	}

	if result.Failed() {
		for _, failure := range result.Failures {
			a.logger.Error(zerr.With(zerr.New(failure.Message), "path", failure.Path))
		}
		return domain.ErrUpdateFailed
	}

	for _, change := range result.Changes {
		if err := os.WriteFile(change.Path, []byte(change.Content), 0o644); err != nil { //nolint:gosec // lock files are world-readable
			return zerr.With(zerr.Wrap(err, "failed to write lock file"), "path", change.Path)
		}
		a.logger.Info("updated " + change.Path)
	}
	return nil
}
