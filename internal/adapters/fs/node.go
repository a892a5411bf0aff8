package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/relock/internal/core/ports"
)

// NodeID is the unique identifier for the file reader adapter node.
const NodeID graft.ID = "adapter.files"

func init() {
	graft.Register(graft.Node[ports.FileReader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileReader, error) {
			return NewReader(), nil
		},
	})
}
