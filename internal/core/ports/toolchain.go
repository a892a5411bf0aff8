package ports

import (
	"context"

	"go.trai.ch/relock/internal/core/domain"
)

// ToolResolver reports the installed versions of the external toolchains
// named by a constraint set. Constraint strings are passed through
// unmodified; this engine never resolves version numbers.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type ToolResolver interface {
	// Resolve returns one Tool per constraint, in the same order. A tool
	// whose installed version cannot be determined is returned with an
	// empty Installed field, not an error.
	Resolve(ctx context.Context, constraints []domain.ToolConstraint) ([]domain.Tool, error)
}
