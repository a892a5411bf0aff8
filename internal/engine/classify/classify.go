// Package classify groups upgraded dependencies into update-tool invocations.
package classify

import (
	"fmt"
	"strings"

	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/relock/internal/core/ports"
)

const (
	updateVerb   = "pdm update --no-sync --update-eager"
	groupFlag    = "-G"
	devGroupFlag = "-dG"
)

// Classifier converts an ordered upgrade set into the minimal list of
// update commands, one per distinct (category, group) pair.
type Classifier struct {
	logger ports.Logger
}

// New creates a new Classifier.
func New(logger ports.Logger) *Classifier {
	return &Classifier{logger: logger}
}

// Commands returns one command string per distinct (category, group) pair,
// in first-seen order. Package names within a command keep upgrade-set
// order. An empty upgrade set yields no commands; the maintenance-mode
// decision belongs to the orchestrator, never here.
func (c *Classifier) Commands(deps []domain.Dependency) []string {
	groups := domain.NewCommandGroups()
	for _, dep := range deps {
		groups.Add(c.keyFor(dep), dep.PackageName())
	}

	commands := make([]string, 0, groups.Len())
	for _, key := range groups.Keys() {
		commands = append(commands, prefixFor(key)+" "+strings.Join(groups.Packages(key), " "))
	}
	return commands
}

func (c *Classifier) keyFor(dep domain.Dependency) domain.CommandKey {
	switch dep.Category {
	case domain.CategoryOptional, domain.CategoryDev:
		return domain.CommandKey{Category: dep.Category, Group: dep.Group}
	case domain.CategoryDirect:
		return domain.CommandKey{Category: domain.CategoryDirect}
	default:
		c.logger.Warn(fmt.Sprintf("unknown category for %q, treating as direct dependency", dep.Name))
		return domain.CommandKey{Category: domain.CategoryDirect}
	}
}

func prefixFor(key domain.CommandKey) string {
	switch key.Category {
	case domain.CategoryOptional:
		return updateVerb + " " + groupFlag + " " + key.Group
	case domain.CategoryDev:
		return updateVerb + " " + devGroupFlag + " " + key.Group
	default:
		return updateVerb
	}
}

// MaintenanceCommand is the single full-regeneration invocation issued when
// the run performs lock-file maintenance instead of targeted updates.
func MaintenanceCommand() string {
	return updateVerb
}
