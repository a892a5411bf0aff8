package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	progrockadapter "go.trai.ch/relock/internal/adapters/telemetry/progrock"
	"go.trai.ch/relock/internal/core/ports"
	"golang.org/x/term"
)

// NodeID is the unique identifier for the telemetry adapter node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			// Progress rendering only makes sense on an interactive terminal.
			if term.IsTerminal(int(os.Stdout.Fd())) {
				return progrockadapter.New(), nil
			}
			return NewNoOp(), nil
		},
	})
}
