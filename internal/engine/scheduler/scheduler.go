// Package scheduler compiles queued targets with bounded parallelism.
package scheduler

import (
	"context"
	"slices"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Scheduler runs compile commands in batches of at most W processes.
//
// Commands are spawned from the tail of the queue until W are in flight; the
// whole batch is then waited out before the next one starts. A failure stops
// further batches, but every job already started is still awaited.
type Scheduler struct {
	executor  ports.Executor
	logger    ports.Logger
	telemetry ports.Telemetry
}

// NewScheduler creates a new Scheduler.
func NewScheduler(executor ports.Executor, logger ports.Logger, telemetry ports.Telemetry) *Scheduler {
	return &Scheduler{
		executor:  executor,
		logger:    logger,
		telemetry: telemetry,
	}
}

type running struct {
	job    ports.Job
	vertex ports.Vertex
}

// Run executes cmds with at most workers processes in flight and returns the
// first failure. cmds is expected in ascending target order.
func (s *Scheduler) Run(ctx context.Context, cmds []domain.Command, workers int) error {
	if workers < 1 {
		return zerr.With(domain.ErrInvalidJobCount, "jobs", workers)
	}

	queue := slices.Clone(cmds)
	batch := make([]running, 0, min(workers, len(queue)))

	for len(queue) > 0 {
		if len(batch) == workers {
			if err := s.drain(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}

		if err := ctx.Err(); err != nil {
			if drainErr := s.drain(batch); drainErr != nil {
				return drainErr
			}
			return zerr.Wrap(err, "build interrupted")
		}

		cmd := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		r, err := s.spawn(ctx, cmd)
		if err != nil {
			if drainErr := s.drain(batch); drainErr != nil {
				s.logger.Error(drainErr)
			}
			return err
		}
		batch = append(batch, r)
	}

	return s.drain(batch)
}

func (s *Scheduler) spawn(ctx context.Context, cmd domain.Command) (running, error) {
	line := cmd.String()
	s.logger.Info(line)

	jobCtx, vertex := s.telemetry.Record(ctx, line)
	job, err := s.executor.Start(jobCtx, cmd)
	if err != nil {
		vertex.Complete(err)
		return running{}, err
	}
	return running{job: job, vertex: vertex}, nil
}

// drain waits for every job in batch. The first failure observed is
// returned; later failures in the same batch are logged.
func (s *Scheduler) drain(batch []running) error {
	if len(batch) == 0 {
		return nil
	}

	errs := make([]error, len(batch))
	var g errgroup.Group
	for i, r := range batch {
		g.Go(func() error {
			err := r.job.Wait()
			r.vertex.Complete(err)
			errs[i] = err
			return err
		})
	}

	first := g.Wait()
	for _, err := range errs {
		if err != nil && err != first { //nolint:errorlint // identity of the returned failure
			s.logger.Error(err)
		}
	}
	return first
}
