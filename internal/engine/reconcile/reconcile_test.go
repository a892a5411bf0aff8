package reconcile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/relock/internal/core/ports/mocks"
	"go.trai.ch/relock/internal/engine/classify"
	"go.trai.ch/relock/internal/engine/reconcile"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const (
	manifestPath = "/repo/pyproject.toml"
	primaryPath  = "/repo/pdm.lock"
	devPath      = "/repo/pdm.dev.lock"
)

type fixture struct {
	exec  *mocks.MockExecutor
	files *mocks.MockFileReader
	tools *mocks.MockToolResolver
	rec   *reconcile.Reconciler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	f := &fixture{
		exec:  mocks.NewMockExecutor(ctrl),
		files: mocks.NewMockFileReader(ctrl),
		tools: mocks.NewMockToolResolver(ctrl),
	}
	f.rec = reconcile.New(classify.New(log), f.exec, f.files, f.tools, log)
	return f
}

func (f *fixture) expectSiblings() {
	f.files.EXPECT().SiblingPath(manifestPath, "pdm.lock").Return(primaryPath)
	f.files.EXPECT().SiblingPath(manifestPath, "pdm.dev.lock").Return(devPath)
}

// expectRead queues one ReadText expectation; queued expectations for the
// same path are consumed in order, so pre- and post-run reads can differ.
func (f *fixture) expectRead(path, content string, present bool) {
	f.files.EXPECT().ReadText(path).Return(content, present, nil)
}

func TestReconcile_TargetedChangesPrimaryOnly(t *testing.T) {
	f := newFixture(t)
	f.expectSiblings()

	// Pre-run snapshots.
	f.expectRead(primaryPath, "primary v1", true)
	f.expectRead(devPath, "dev v1", true)

	f.exec.EXPECT().
		Execute(gomock.Any(), []string{"pdm update --no-sync --update-eager dep1"}, gomock.Any()).
		Return(nil)

	// Post-run re-reads: only the primary file changed.
	f.expectRead(primaryPath, "primary v2", true)
	f.expectRead(devPath, "dev v1", true)

	result, err := f.rec.Reconcile(context.Background(), manifestPath,
		[]domain.Dependency{{Name: "dep1", Category: domain.CategoryDirect}},
		domain.ModeTargeted, domain.ExecOptions{})

	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, primaryPath, result.Changes[0].Path)
	assert.Equal(t, "primary v2", result.Changes[0].Content)
	assert.Empty(t, result.Failures)
}

func TestReconcile_BothLockFilesAbsent(t *testing.T) {
	f := newFixture(t)
	f.expectSiblings()

	f.expectRead(primaryPath, "", false)
	f.expectRead(devPath, "", false)
	// No Execute expectation: the process runner must never be invoked.

	result, err := f.rec.Reconcile(context.Background(), manifestPath,
		[]domain.Dependency{{Name: "dep1", Category: domain.CategoryDirect}},
		domain.ModeTargeted, domain.ExecOptions{})

	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestReconcile_MaintenanceIssuesSingleCommand(t *testing.T) {
	f := newFixture(t)
	f.expectSiblings()

	f.expectRead(primaryPath, "v1", true)
	f.expectRead(devPath, "v1", true)

	// Regardless of the upgrade set, maintenance mode runs one bare command.
	f.exec.EXPECT().
		Execute(gomock.Any(), []string{"pdm update --no-sync --update-eager"}, gomock.Any()).
		Return(nil)

	f.expectRead(primaryPath, "v2", true)
	f.expectRead(devPath, "v2", true)

	result, err := f.rec.Reconcile(context.Background(), manifestPath,
		[]domain.Dependency{
			{Name: "dep1", Category: domain.CategoryDirect},
			{Name: "dep2", Category: domain.CategoryDirect},
		},
		domain.ModeMaintenance, domain.ExecOptions{})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.Changes, 2)
}

func TestReconcile_ExecutionFailureRecordsBothFiles(t *testing.T) {
	f := newFixture(t)
	f.expectSiblings()

	f.expectRead(primaryPath, "v1", true)
	f.expectRead(devPath, "v1", true)

	f.exec.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("disk full"))

	result, err := f.rec.Reconcile(context.Background(), manifestPath,
		[]domain.Dependency{{Name: "dep1", Category: domain.CategoryDirect}},
		domain.ModeTargeted, domain.ExecOptions{})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Failed())
	require.Len(t, result.Failures, 2)
	assert.Equal(t, primaryPath, result.Failures[0].Path)
	assert.Equal(t, devPath, result.Failures[1].Path)
	for _, failure := range result.Failures {
		assert.Equal(t, "disk full", failure.Message)
	}
	assert.Empty(t, result.Changes)
}

func TestReconcile_TransientErrorPropagatesUnchanged(t *testing.T) {
	f := newFixture(t)
	f.expectSiblings()

	f.expectRead(primaryPath, "v1", true)
	f.expectRead(devPath, "v1", true)

	f.exec.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(zerr.Wrap(domain.ErrTransient, "toolchain unavailable"))

	result, err := f.rec.Reconcile(context.Background(), manifestPath,
		[]domain.Dependency{{Name: "dep1", Category: domain.CategoryDirect}},
		domain.ModeTargeted, domain.ExecOptions{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTransient))
	assert.Nil(t, result)
}

func TestReconcile_NoContentChangeYieldsNilResult(t *testing.T) {
	f := newFixture(t)
	f.expectSiblings()

	f.expectRead(primaryPath, "v1", true)
	f.expectRead(devPath, "v1", true)

	f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	f.expectRead(primaryPath, "v1", true)
	f.expectRead(devPath, "v1", true)

	result, err := f.rec.Reconcile(context.Background(), manifestPath,
		[]domain.Dependency{{Name: "dep1", Category: domain.CategoryDirect}},
		domain.ModeTargeted, domain.ExecOptions{})

	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestReconcile_SecondRunIsIdempotent(t *testing.T) {
	f := newFixture(t)

	// First run: content drifts.
	f.expectSiblings()
	f.expectRead(primaryPath, "v1", true)
	f.expectRead(devPath, "v1", true)
	f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.expectRead(primaryPath, "v2", true)
	f.expectRead(devPath, "v1", true)

	// Second run: no tool-caused drift.
	f.expectSiblings()
	f.expectRead(primaryPath, "v2", true)
	f.expectRead(devPath, "v1", true)
	f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.expectRead(primaryPath, "v2", true)
	f.expectRead(devPath, "v1", true)

	upgrades := []domain.Dependency{{Name: "dep1", Category: domain.CategoryDirect}}

	first, err := f.rec.Reconcile(context.Background(), manifestPath, upgrades, domain.ModeTargeted, domain.ExecOptions{})
	require.NoError(t, err)
	require.NotNil(t, first)
	require.Len(t, first.Changes, 1)

	second, err := f.rec.Reconcile(context.Background(), manifestPath, upgrades, domain.ModeTargeted, domain.ExecOptions{})
	require.NoError(t, err)
	assert.Nil(t, second)
}

func TestReconcile_AbsentLockFileAppearing(t *testing.T) {
	f := newFixture(t)
	f.expectSiblings()

	// Only the dev lock exists before the run.
	f.expectRead(primaryPath, "", false)
	f.expectRead(devPath, "dev v1", true)

	f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	// The tool wrote the primary lock as a side effect.
	f.expectRead(primaryPath, "primary v1", true)
	f.expectRead(devPath, "dev v1", true)

	result, err := f.rec.Reconcile(context.Background(), manifestPath,
		[]domain.Dependency{{Name: "dep1", Category: domain.CategoryDirect}},
		domain.ModeTargeted, domain.ExecOptions{})

	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, primaryPath, result.Changes[0].Path)
	assert.Equal(t, "primary v1", result.Changes[0].Content)
}

func TestReconcile_ToolConstraintsPassThrough(t *testing.T) {
	f := newFixture(t)
	f.expectSiblings()

	f.expectRead(primaryPath, "v1", true)
	f.expectRead(devPath, "v1", true)

	constraints := []domain.ToolConstraint{
		{Name: "python", Constraint: ">=3.11"},
		{Name: "pdm", Constraint: ">=2.12"},
	}
	f.tools.EXPECT().Resolve(gomock.Any(), constraints).Return([]domain.Tool{
		{Name: "python", Constraint: ">=3.11", Installed: "3.12.1"},
		{Name: "pdm", Constraint: ">=2.12"},
	}, nil)

	opts := domain.ExecOptions{WorkDir: "/repo", Tools: constraints}
	f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), opts).Return(nil)

	f.expectRead(primaryPath, "v1", true)
	f.expectRead(devPath, "v1", true)

	result, err := f.rec.Reconcile(context.Background(), manifestPath,
		[]domain.Dependency{{Name: "dep1", Category: domain.CategoryDirect}},
		domain.ModeTargeted, opts)

	require.NoError(t, err)
	assert.Nil(t, result)
}
