// Package shell runs compiler, linker, archiver and script processes.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
// Child processes inherit the environment and are never killed on context
// cancellation; a started process always runs to completion.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor logging child output through logger.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

type process struct {
	cmd  *exec.Cmd
	text string
	logs []*logWriter
}

func (p *process) Command() string {
	return p.text
}

func (p *process) Wait() error {
	err := p.cmd.Wait()
	for _, w := range p.logs {
		_ = w.Close()
	}
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	failure := zerr.With(zerr.Wrap(err, domain.ErrProcessFailed.Error()), "command", p.text)
	return zerr.With(failure, "exit_code", exitCode)
}

// Start spawns cmd without waiting for it. Output is logged line by line and,
// when ctx carries a telemetry vertex, copied to it.
func (e *Executor) Start(ctx context.Context, cmd domain.Command) (ports.Job, error) {
	if cmd.Empty() {
		return nil, zerr.With(domain.ErrProcessSpawnFailed, "reason", "empty command")
	}

	stdoutLog := &logWriter{logger: e.logger, level: levelInfo}
	stderrLog := &logWriter{logger: e.logger, level: levelWarn}

	var stdout, stderr io.Writer = stdoutLog, stderrLog
	if v, ok := ports.VertexFromContext(ctx); ok {
		stdout = io.MultiWriter(stdoutLog, v.Stdout())
		stderr = io.MultiWriter(stderrLog, v.Stderr())
	}

	c := exec.Command(cmd.Args[0], cmd.Args[1:]...) //nolint:gosec // commands come from the project description
	c.Dir = cmd.Dir
	c.Env = os.Environ()
	c.Stdout = stdout
	c.Stderr = stderr

	if err := c.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrProcessSpawnFailed.Error()), "command", cmd.String())
	}

	return &process{
		cmd:  c,
		text: cmd.String(),
		logs: []*logWriter{stdoutLog, stderrLog},
	}, nil
}

// Run spawns cmd and waits for it to exit.
func (e *Executor) Run(ctx context.Context, cmd domain.Command) error {
	job, err := e.Start(ctx, cmd)
	if err != nil {
		return err
	}
	return job.Wait()
}

// RunScript runs script through the platform shell in dir.
func (e *Executor) RunScript(ctx context.Context, script, dir string) error {
	if strings.TrimSpace(script) == "" {
		return nil
	}
	return e.Run(ctx, ScriptCommand(script, dir, runtime.GOOS))
}

// ScriptCommand returns the shell invocation running script on goos.
func ScriptCommand(script, dir, goos string) domain.Command {
	if goos == "windows" {
		return domain.Command{Args: []string{"cmd", "/C", script}, Dir: dir}
	}
	return domain.Command{Args: []string{"sh", "-c", script}, Dir: dir}
}

type logLevel int

const (
	levelInfo logLevel = iota
	levelWarn
)

// logWriter forwards complete lines to the logger, buffering partial ones.
type logWriter struct {
	logger ports.Logger
	level  logLevel
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if w.level == levelWarn {
		w.logger.Warn(msg)
		return
	}
	w.logger.Info(msg)
}
