package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/relock/cmd/relock/commands"
	"go.trai.ch/relock/internal/adapters/config"
	"go.trai.ch/relock/internal/adapters/fs"
	"go.trai.ch/relock/internal/adapters/pyproject"
	"go.trai.ch/relock/internal/app"
	"go.trai.ch/relock/internal/core/ports/mocks"
	"go.trai.ch/relock/internal/engine/classify"
	"go.trai.ch/relock/internal/engine/reconcile"
	"go.uber.org/mock/gomock"
)

const testManifest = `[project]
name = "sample"
dependencies = ["requests"]
`

func newCLI(t *testing.T) (*commands.CLI, *mocks.MockExecutor, string) {
	t.Helper()
	ctrl := gomock.NewController(t)

	project := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(project, "pyproject.toml"), []byte(testManifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(project, "pdm.lock"), []byte("v1"), 0o644))

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	tools := mocks.NewMockToolResolver(ctrl)
	tools.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	exec := mocks.NewMockExecutor(ctrl)
	reader := fs.NewReader()
	reconciler := reconcile.New(classify.New(log), exec, reader, tools, log)
	a := app.New(config.NewLoader(), pyproject.NewReader(reader), reconciler, log)

	return commands.New(a), exec, project
}

func TestUpdate_RunsDeclaredPackage(t *testing.T) {
	cli, exec, project := newCLI(t)

	exec.EXPECT().
		Execute(gomock.Any(), []string{"pdm update --no-sync --update-eager requests"}, gomock.Any()).
		Return(nil)

	cli.SetArgs([]string{"update", "requests", "--project", project})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestUpdate_NoArgsShowsHelp(t *testing.T) {
	cli, _, _ := newCLI(t)

	cli.SetArgs([]string{"update"})
	// No packages means help output, not an error.
	require.NoError(t, cli.Execute(context.Background()))
}

func TestLock_RunsMaintenance(t *testing.T) {
	cli, exec, project := newCLI(t)

	exec.EXPECT().
		Execute(gomock.Any(), []string{"pdm update --no-sync --update-eager"}, gomock.Any()).
		Return(nil)

	cli.SetArgs([]string{"lock", "--project", project})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestRoot_Help(t *testing.T) {
	cli, _, _ := newCLI(t)

	cli.SetArgs([]string{"--help"})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestVersion(t *testing.T) {
	cli, _, _ := newCLI(t)

	cli.SetArgs([]string{"version"})
	require.NoError(t, cli.Execute(context.Background()))
}
