package ports

import "go.trai.ch/relock/internal/core/domain"

// ManifestReader loads the project manifest and extracts the declared
// dependencies and constraint hints.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestReader interface {
	// Load reads and parses the manifest at path.
	Load(path string) (*domain.Manifest, error)
}
