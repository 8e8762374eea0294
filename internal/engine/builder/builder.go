// Package builder drives a build: staleness detection, scheduled compilation,
// linking and archiving, plus clean and status reporting.
package builder

import (
	"context"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// Builder builds the outputs declared by a description.
// Outputs are processed one at a time; only compile jobs run in parallel.
type Builder struct {
	scheduler *scheduler.Scheduler
	executor  ports.Executor
	logger    ports.Logger
	telemetry ports.Telemetry
	store     ports.BuildRecordStore
	now       func() time.Time
}

// NewBuilder creates a new Builder.
func NewBuilder(
	sched *scheduler.Scheduler,
	executor ports.Executor,
	logger ports.Logger,
	telemetry ports.Telemetry,
	store ports.BuildRecordStore,
) *Builder {
	return &Builder{
		scheduler: sched,
		executor:  executor,
		logger:    logger,
		telemetry: telemetry,
		store:     store,
		now:       time.Now,
	}
}

// Build runs the pre-script, every binary in declaration order, every library
// in declaration order, then the post-script. The first failure stops the build.
func (b *Builder) Build(ctx context.Context, desc *domain.Description, workers int) error {
	if err := b.runScript(ctx, desc, desc.Project.BeforeScript); err != nil {
		return err
	}
	for _, bin := range desc.Binaries {
		if err := b.buildBinary(ctx, desc, bin, workers); err != nil {
			return err
		}
	}
	for _, lib := range desc.Libraries {
		if err := b.buildLibrary(ctx, desc, lib, workers); err != nil {
			return err
		}
	}
	return b.runScript(ctx, desc, desc.Project.AfterScript)
}

// BuildBinary builds the binary called name without running scripts.
func (b *Builder) BuildBinary(ctx context.Context, desc *domain.Description, name string, workers int) error {
	bin, err := desc.Binary(name)
	if err != nil {
		return err
	}
	return b.buildBinary(ctx, desc, bin, workers)
}

// BuildLibrary builds the library called name without running scripts.
func (b *Builder) BuildLibrary(ctx context.Context, desc *domain.Description, name string, workers int) error {
	lib, err := desc.Library(name)
	if err != nil {
		return err
	}
	return b.buildLibrary(ctx, desc, lib, workers)
}

func (b *Builder) buildBinary(ctx context.Context, desc *domain.Description, bin domain.Binary, workers int) error {
	if err := b.compile(ctx, desc, bin.Output(), workers); err != nil {
		return err
	}
	cmd := desc.LinkCommand(bin)
	return b.produce(ctx, desc, bin.Output(), domain.ArtifactBinary, cmd, len(desc.BinaryObjects(bin)))
}

func (b *Builder) buildLibrary(ctx context.Context, desc *domain.Description, lib domain.Library, workers int) error {
	if err := b.compile(ctx, desc, lib.Output(), workers); err != nil {
		return err
	}

	objects := len(desc.LibraryObjects())
	if lib.Static {
		cmd := desc.StaticCommand(lib)
		if err := b.produce(ctx, desc, lib.StaticFile(), domain.ArtifactStatic, cmd, objects); err != nil {
			return err
		}
	}
	if lib.Dynamic {
		cmd := desc.DynamicCommand(lib)
		if err := b.produce(ctx, desc, lib.DynamicFile(), domain.ArtifactDynamic, cmd, objects); err != nil {
			return err
		}
	}
	return nil
}

// compile brings every object output depends on up to date.
func (b *Builder) compile(ctx context.Context, desc *domain.Description, output string, workers int) error {
	queue, err := StalenessQueue(desc, output)
	if err != nil {
		return err
	}

	cmds := make([]domain.Command, 0, len(queue))
	for _, t := range queue {
		cmds = append(cmds, desc.CompileCommand(t))
	}
	return b.scheduler.Run(ctx, cmds, workers)
}

// produce runs a link or archive command to completion and records it.
func (b *Builder) produce(
	ctx context.Context,
	desc *domain.Description,
	output string,
	kind domain.ArtifactKind,
	cmd domain.Command,
	objects int,
) error {
	line := cmd.String()
	b.logger.Info(line)

	runCtx, vertex := b.telemetry.Record(ctx, line)
	err := b.executor.Run(runCtx, cmd)
	vertex.Complete(err)
	if err != nil {
		return err
	}

	rec := domain.NewBuildRecord(output, kind, cmd, objects, b.now())
	if err := b.store.Put(desc.Root, rec); err != nil {
		b.logger.Warn("build record not saved: " + err.Error())
	}
	return nil
}

func (b *Builder) runScript(ctx context.Context, desc *domain.Description, script string) error {
	if script == "" {
		return nil
	}
	b.logger.Info(script)

	runCtx, vertex := b.telemetry.Record(ctx, script)
	err := b.executor.RunScript(runCtx, script, desc.Root)
	vertex.Complete(err)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrScriptFailed.Error()), "script", script)
	}
	return nil
}
