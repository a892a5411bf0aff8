// Package pyproject implements the manifest accessor for PEP 621 projects.
package pyproject

import (
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/relock/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestReader = (*Reader)(nil)

// Reader loads pyproject.toml manifests.
type Reader struct {
	files ports.FileReader
}

// NewReader creates a new Reader.
func NewReader(files ports.FileReader) *Reader {
	return &Reader{files: files}
}

// document mirrors the pyproject.toml sections relock reads. Everything
// else in the file is ignored.
type document struct {
	Project struct {
		RequiresPython       string              `toml:"requires-python"`
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	Tool struct {
		Pdm struct {
			DevDependencies map[string][]string `toml:"dev-dependencies"`
		} `toml:"pdm"`
	} `toml:"tool"`
}

// Load reads and parses the manifest at path. Declared dependencies are
// emitted in manifest order: direct first, then optional groups, then dev
// groups, with groups in name order so the descriptor list is stable.
func (r *Reader) Load(path string) (*domain.Manifest, error) {
	content, present, err := r.files.ReadText(path)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, zerr.With(domain.ErrManifestNotFound, "path", path)
	}

	var doc document
	if err := toml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse manifest"), "path", path)
	}

	manifest := &domain.Manifest{
		Path:           path,
		RequiresPython: doc.Project.RequiresPython,
	}

	for _, spec := range doc.Project.Dependencies {
		manifest.Dependencies = append(manifest.Dependencies, domain.Dependency{
			Name:     requirementName(spec),
			Category: domain.CategoryDirect,
		})
	}

	for _, group := range sortedKeys(doc.Project.OptionalDependencies) {
		for _, spec := range doc.Project.OptionalDependencies[group] {
			manifest.Dependencies = append(manifest.Dependencies, domain.Dependency{
				Name:     requirementName(spec),
				Group:    group,
				Category: domain.CategoryOptional,
			})
		}
	}

	for _, group := range sortedKeys(doc.Tool.Pdm.DevDependencies) {
		for _, spec := range doc.Tool.Pdm.DevDependencies[group] {
			// Dev entries carry the composite "<group>/<name>" token the
			// classifier splits back apart.
			manifest.Dependencies = append(manifest.Dependencies, domain.Dependency{
				Name:     group + "/" + requirementName(spec),
				Group:    group,
				Category: domain.CategoryDev,
			})
		}
	}

	return manifest, nil
}

// requirementName extracts the distribution name from a PEP 508 requirement
// string ("requests[socks]>=2.31; python_version>'3.8'" yields "requests").
func requirementName(spec string) string {
	s := strings.TrimSpace(spec)
	for i, r := range s {
		if !isNameRune(r) {
			return s[:i]
		}
	}
	return s
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_' || r == '.':
		return true
	}
	return false
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
