package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		setup        func(t *testing.T, tmpDir string)
		args         func(tmpDir string) []string
		expectedExit int
	}{
		{
			name:  "Update without packages prints help",
			setup: func(t *testing.T, tmpDir string) {},
			args: func(tmpDir string) []string {
				return []string{"relock", "update"}
			},
			expectedExit: 0,
		},
		{
			name:  "Version",
			setup: func(t *testing.T, tmpDir string) {},
			args: func(tmpDir string) []string {
				return []string{"relock", "version"}
			},
			expectedExit: 0,
		},
		{
			name:  "Update fails without a manifest",
			setup: func(t *testing.T, tmpDir string) {},
			args: func(tmpDir string) []string {
				return []string{"relock", "update", "requests", "-C", tmpDir}
			},
			expectedExit: 1,
		},
		{
			name: "Update fails for an unknown package",
			setup: func(t *testing.T, tmpDir string) {
				manifest := `[project]
name = "demo"
dependencies = ["requests>=2.31"]
`
				err := os.WriteFile(tmpDir+"/pyproject.toml", []byte(manifest), 0o600)
				if err != nil {
					t.Fatalf("failed to write manifest: %v", err)
				}
			},
			args: func(tmpDir string) []string {
				return []string{"relock", "update", "no-such-package", "-C", tmpDir}
			},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			tt.setup(t, tmpDir)

			os.Args = tt.args(tmpDir)

			exitCode := run()
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}
