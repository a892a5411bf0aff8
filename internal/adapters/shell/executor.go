// Package shell provides the process-runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/relock/internal/core/ports"
	"go.trai.ch/zerr"
)

// sidecarImage is the containerized toolchain used when ExecOptions.Container
// is set. It carries the python/pdm toolchains the update commands need.
const sidecarImage = "ghcr.io/containerbase/sidecar"

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec. Commands run strictly in
// order; the first failure aborts the rest of the set.
type Executor struct {
	logger    ports.Logger
	telemetry ports.Telemetry
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger, telemetry ports.Telemetry) *Executor {
	return &Executor{
		logger:    logger,
		telemetry: telemetry,
	}
}

// Execute runs each command through the shell (or the sidecar container) in
// opts.WorkDir, streaming output to the logger and telemetry. Failures that
// happen before the toolchain produced any verdict wrap domain.ErrTransient.
func (e *Executor) Execute(ctx context.Context, commands []string, opts domain.ExecOptions) error {
	for _, command := range commands {
		if err := e.run(ctx, command, opts); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) run(ctx context.Context, command string, opts domain.ExecOptions) error {
	_, vertex := e.telemetry.Record(ctx, command)

	argv := argv(command, opts)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // command assembled by the classifier
	cmd.Dir = opts.WorkDir
	cmd.Env = append(os.Environ(), constraintEnv(opts.Tools)...)

	var stderr bytes.Buffer
	cmd.Stdout = io.MultiWriter(vertex.Stdout(), &logWriter{logger: e.logger})
	cmd.Stderr = io.MultiWriter(vertex.Stderr(), &stderr, &logWriter{logger: e.logger, warn: true})

	err := cmd.Run()
	vertex.Complete(err)
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return zerr.With(zerr.Wrap(domain.ErrTransient, "command interrupted"), "command", command)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// The tool ran and reported a substantive failure. Its stderr is the
		// diagnostic the caller surfaces, verbatim.
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return zerr.With(zerr.With(zerr.New(msg), "command", command), "exit_code", exitErr.ExitCode())
	}

	// The command never started: missing shell, missing container runtime,
	// bad working directory. Retryable at a higher level.
	return zerr.With(zerr.Wrap(domain.ErrTransient, err.Error()), "command", command)
}

// argv builds the process invocation for one command string. In container
// mode the command runs inside the sidecar image with the working directory
// bind-mounted at the same path.
func argv(command string, opts domain.ExecOptions) []string {
	if !opts.Container {
		return []string{"sh", "-c", command}
	}

	args := []string{"docker", "run", "--rm"}
	if opts.WorkDir != "" {
		args = append(args, "-v", opts.WorkDir+":"+opts.WorkDir, "-w", opts.WorkDir)
	}
	for _, env := range constraintEnv(opts.Tools) {
		args = append(args, "-e", env)
	}
	return append(args, sidecarImage, "sh", "-c", command)
}

// constraintEnv exports the toolchain constraints to the process, in order.
func constraintEnv(tools []domain.ToolConstraint) []string {
	env := make([]string, 0, len(tools))
	for _, tool := range tools {
		if tool.Constraint == "" {
			continue
		}
		key := strings.ToUpper(strings.ReplaceAll(tool.Name, "-", "_")) + "_CONSTRAINT"
		env = append(env, key+"="+tool.Constraint)
	}
	return env
}

// logWriter forwards process output to the logger line by line.
type logWriter struct {
	logger ports.Logger
	warn   bool
}

func (w *logWriter) Write(p []byte) (int, error) {
	msg := strings.TrimSuffix(string(p), "\n")
	if msg == "" {
		return len(p), nil
	}
	for _, line := range strings.Split(msg, "\n") {
		if w.warn {
			w.logger.Warn(line)
		} else {
			w.logger.Info(line)
		}
	}
	return len(p), nil
}
