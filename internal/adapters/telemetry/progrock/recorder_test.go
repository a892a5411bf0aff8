package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	progrockadapter "go.trai.ch/relock/internal/adapters/telemetry/progrock"
)

func TestRecorder_RecordAndComplete(t *testing.T) {
	rec := progrockadapter.New()

	_, vertex := rec.Record(context.Background(), "pdm update --no-sync --update-eager requests")
	require.NotNil(t, vertex)

	_, err := vertex.Stdout().Write([]byte("resolving...\n"))
	require.NoError(t, err)
	_, err = vertex.Stderr().Write([]byte("warning: pinned\n"))
	require.NoError(t, err)

	vertex.Complete(nil)
	assert.NoError(t, rec.Close())
}

func TestRecorder_CompleteWithError(t *testing.T) {
	rec := progrockadapter.New()

	_, vertex := rec.Record(context.Background(), "pdm update")
	vertex.Complete(errors.New("resolution conflict"))

	assert.NoError(t, rec.Close())
}
