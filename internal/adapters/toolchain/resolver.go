// Package toolchain implements the installed-tool resolver.
package toolchain

import (
	"context"
	"os/exec"
	"regexp"
	"strings"

	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/relock/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

var _ ports.ToolResolver = (*Resolver)(nil)

var versionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// Resolver probes the installed versions of external toolchains. Constraint
// strings pass through unmodified; only the Installed field is filled in.
type Resolver struct {
	logger ports.Logger

	// probe is swappable for tests.
	probe func(ctx context.Context, name string) (string, error)
}

// NewResolver creates a new Resolver.
func NewResolver(logger ports.Logger) *Resolver {
	return &Resolver{
		logger: logger,
		probe:  probeVersion,
	}
}

// Resolve probes each tool concurrently. A failed probe leaves Installed
// empty and is logged, not returned as an error.
func (r *Resolver) Resolve(ctx context.Context, constraints []domain.ToolConstraint) ([]domain.Tool, error) {
	tools := make([]domain.Tool, len(constraints))

	g, groupCtx := errgroup.WithContext(ctx)
	for i, constraint := range constraints {
		g.Go(func() error {
			tools[i] = domain.Tool{Name: constraint.Name, Constraint: constraint.Constraint}
			version, err := r.probe(groupCtx, constraint.Name)
			if err != nil {
				r.logger.Warn("could not determine installed version of " + constraint.Name)
				return nil
			}
			tools[i].Installed = version
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tools, nil
}

// probeVersion asks the tool itself for its version and extracts the first
// dotted number from the answer.
func probeVersion(ctx context.Context, name string) (string, error) {
	out, err := exec.CommandContext(ctx, name, "--version").CombinedOutput()
	if err != nil {
		return "", err
	}
	version := versionPattern.FindString(strings.TrimSpace(string(out)))
	if version == "" {
		return "", exec.ErrNotFound
	}
	return version, nil
}
