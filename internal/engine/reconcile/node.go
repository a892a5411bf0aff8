package reconcile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/relock/internal/adapters/fs"
	"go.trai.ch/relock/internal/adapters/logger"
	"go.trai.ch/relock/internal/adapters/shell"
	"go.trai.ch/relock/internal/adapters/toolchain"
	"go.trai.ch/relock/internal/core/ports"
	"go.trai.ch/relock/internal/engine/classify"
)

// NodeID is the unique identifier for the reconciler Graft node.
const NodeID graft.ID = "engine.reconciler"

func init() {
	graft.Register(graft.Node[*Reconciler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			classify.NodeID,
			shell.NodeID,
			fs.NodeID,
			toolchain.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Reconciler, error) {
			classifier, err := graft.Dep[*classify.Classifier](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			files, err := graft.Dep[ports.FileReader](ctx)
			if err != nil {
				return nil, err
			}
			tools, err := graft.Dep[ports.ToolResolver](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(classifier, executor, files, tools, log), nil
		},
	})
}
