package domain

// Manifest is the read-only view of a project manifest this engine needs:
// the declared dependencies as upgrade descriptors plus the interpreter
// constraint hint. It is fully resolved before reconciliation runs.
type Manifest struct {
	// Path is the manifest file location; lock files are resolved as its
	// siblings.
	Path string

	// RequiresPython is the interpreter version range declared by the
	// project, passed through as a toolchain constraint.
	RequiresPython string

	// Dependencies lists every declared dependency in manifest order.
	Dependencies []Dependency
}

// Select returns the declared dependencies whose bare package name matches
// one of the requested names, preserving manifest order. A name declared in
// several groups matches each of its declarations.
func (m *Manifest) Select(names []string) []Dependency {
	if len(names) == 0 {
		return nil
	}
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}
	var out []Dependency
	for _, dep := range m.Dependencies {
		if wanted[dep.PackageName()] {
			out = append(out, dep)
		}
	}
	return out
}
