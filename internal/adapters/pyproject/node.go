package pyproject

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/relock/internal/adapters/fs"
	"go.trai.ch/relock/internal/core/ports"
)

// NodeID is the unique identifier for the manifest reader adapter node.
const NodeID graft.ID = "adapter.manifest"

func init() {
	graft.Register(graft.Node[ports.ManifestReader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID},
		Run: func(ctx context.Context) (ports.ManifestReader, error) {
			files, err := graft.Dep[ports.FileReader](ctx)
			if err != nil {
				return nil, err
			}
			return NewReader(files), nil
		},
	})
}
