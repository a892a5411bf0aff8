package domain

// UpdateMode selects between targeted package updates and full lock
// regeneration. The two modes are mutually exclusive within one run.
type UpdateMode int

const (
	// ModeTargeted updates only the packages in the upgrade set.
	ModeTargeted UpdateMode = iota
	// ModeMaintenance regenerates the lock files wholesale, ignoring the
	// upgrade set.
	ModeMaintenance
)

// ToolConstraint pairs a toolchain name with a version-range string. The
// constraint text is passed through to the process runner unmodified; this
// engine never interprets it.
type ToolConstraint struct {
	Name       string
	Constraint string
}

// Tool is a resolved toolchain entry: the original constraint plus whatever
// version was found installed. Installed is empty when probing failed or
// was skipped.
type Tool struct {
	Name       string
	Constraint string
	Installed  string
}

// ExecOptions carries execution parameters for the process runner.
type ExecOptions struct {
	// WorkDir is the directory commands run in.
	WorkDir string

	// Container routes execution through the containerized toolchain
	// instead of the host shell.
	Container bool

	// Tools lists the toolchain version constraints for this run, in order.
	Tools []ToolConstraint
}
