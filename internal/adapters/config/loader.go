// Package config provides the runtime configuration loader for relock.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up next to the manifest.
const DefaultFilename = "relock.yaml"

// Config holds the runtime settings for a reconciliation run.
type Config struct {
	// UpdaterConstraint is the version range required of the update tool,
	// passed through as a toolchain constraint.
	UpdaterConstraint string

	// Container routes update commands through the containerized toolchain.
	Container bool
}

// fileSchema is the on-disk shape of relock.yaml.
type fileSchema struct {
	Updater struct {
		Constraint string `yaml:"constraint"`
	} `yaml:"updater"`
	Container bool `yaml:"container"`
}

// Loader reads relock.yaml from a project directory.
type Loader struct {
	Filename string
}

// NewLoader creates a Loader using the default file name.
func NewLoader() *Loader {
	return &Loader{Filename: DefaultFilename}
}

// Load reads the configuration from the given project directory. A missing
// file yields the zero-value defaults, not an error.
func (l *Loader) Load(dir string) (*Config, error) {
	path := filepath.Join(dir, l.Filename)

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var schema fileSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	return &Config{
		UpdaterConstraint: schema.Updater.Constraint,
		Container:         schema.Container,
	}, nil
}
