// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
)

// Job is a spawned child process.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Job interface {
	// Command returns the command line the job is running.
	Command() string
	// Wait blocks until the process exits. It fails on a nonzero exit status
	// or when waiting itself fails.
	Wait() error
}

// Executor starts processes and shell scripts.
type Executor interface {
	// Start spawns cmd and returns without waiting for it.
	Start(ctx context.Context, cmd domain.Command) (Job, error)
	// Run spawns cmd and waits for it to exit.
	Run(ctx context.Context, cmd domain.Command) error
	// RunScript runs a shell script in dir and waits for it. An empty script is a no-op.
	RunScript(ctx context.Context, script, dir string) error
}
