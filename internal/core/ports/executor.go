// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/relock/internal/core/domain"
)

// Executor defines the interface for the external process runner.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the given shell commands in order, stopping at the first
	// failure. The call blocks until every command has run or one has
	// failed.
	//
	// Infrastructure-level faults (the toolchain could not be started at
	// all) are reported wrapping domain.ErrTransient so callers can retry.
	// Any other error means the external tool ran and reported a
	// substantive failure.
	Execute(ctx context.Context, commands []string, opts domain.ExecOptions) error
}
