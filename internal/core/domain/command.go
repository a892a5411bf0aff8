package domain

// CommandKey identifies one update-tool invocation: a dependency category
// plus the manifest group it targets (empty for direct dependencies).
type CommandKey struct {
	Category Category
	Group    string
}

// CommandGroups accumulates package names per invocation key, preserving the
// order in which keys were first seen. Built fresh per reconciliation run
// and discarded once command strings are emitted.
type CommandGroups struct {
	order    []CommandKey
	packages map[CommandKey][]string
}

// NewCommandGroups returns an empty accumulator.
func NewCommandGroups() *CommandGroups {
	return &CommandGroups{
		packages: make(map[CommandKey][]string),
	}
}

// Add appends pkg to the list for key, creating the key lazily on first use.
func (g *CommandGroups) Add(key CommandKey, pkg string) {
	if _, ok := g.packages[key]; !ok {
		g.order = append(g.order, key)
	}
	g.packages[key] = append(g.packages[key], pkg)
}

// Keys returns the keys in first-seen order. Downstream consumers assert
// this ordering, so it must not be sorted.
func (g *CommandGroups) Keys() []CommandKey {
	return g.order
}

// Packages returns the package names accumulated for key, in insertion order.
func (g *CommandGroups) Packages(key CommandKey) []string {
	return g.packages[key]
}

// Len returns the number of distinct keys.
func (g *CommandGroups) Len() int {
	return len(g.order)
}
