// Package domain contains the core types for lock-file reconciliation.
package domain

import "strings"

// Category classifies where a dependency is declared in the manifest.
type Category int

const (
	// CategoryDirect is a runtime dependency from project.dependencies.
	CategoryDirect Category = iota
	// CategoryOptional is a member of a named extras group under
	// project.optional-dependencies.
	CategoryOptional
	// CategoryDev is a member of a named group under
	// tool.pdm.dev-dependencies.
	CategoryDev
)

// String returns the manifest section name for the category.
func (c Category) String() string {
	switch c {
	case CategoryDirect:
		return "dependencies"
	case CategoryOptional:
		return "optional-dependencies"
	case CategoryDev:
		return "dev-dependencies"
	default:
		return "unknown"
	}
}

// Dependency is one entry in the upgrade set.
type Dependency struct {
	// Name identifies the dependency. For CategoryDev entries this is the
	// composite "<group>/<package>" token produced by the upstream
	// classifier; for all other categories it is the bare package name.
	Name string

	// Group names the manifest sub-section the dependency belongs to. Empty
	// for CategoryDirect.
	Group string

	Category Category
}

// PackageName returns the bare package name passed to the update tool. Dev
// entries split their composite token on the first separator; all other
// categories use Name as-is.
func (d Dependency) PackageName() string {
	if d.Category == CategoryDev {
		if _, name, ok := strings.Cut(d.Name, "/"); ok {
			return name
		}
	}
	return d.Name
}
