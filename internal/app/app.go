// Package app implements the application layer for kiln.
package app

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/builder"
	"go.trai.ch/kiln/internal/ui/style"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader    ports.DescriptionLoader
	builder   *builder.Builder
	watcher   ports.Watcher
	logger    ports.Logger
	telemetry ports.Telemetry
}

// New creates a new App instance.
func New(
	loader ports.DescriptionLoader,
	b *builder.Builder,
	watcher ports.Watcher,
	log ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		loader:    loader,
		builder:   b,
		watcher:   watcher,
		logger:    log,
		telemetry: telemetry,
	}
}

// ProjectOptions selects the project description.
type ProjectOptions struct {
	// Dir is where upward discovery starts. Defaults to the working directory.
	Dir string
	// File names the description explicitly and skips discovery.
	File string
}

// BuildOptions configuration for the Build and Watch methods.
type BuildOptions struct {
	ProjectOptions
	// Jobs is the number of parallel compile processes. Zero selects the CPU count.
	Jobs int
	// Binary restricts the build to one declared binary.
	Binary string
	// Library restricts the build to one declared library.
	Library string
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ProjectOptions
	// All also removes the .kiln state directory.
	All bool
}

// SourcesOptions configuration for the Sources method.
type SourcesOptions struct {
	ProjectOptions
	// Objects prints each target's object path next to its source.
	Objects bool
}

// SetJSON switches the logger to structured JSON output when it supports it.
func (a *App) SetJSON(enabled bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enabled)
	}
}

// Close flushes telemetry.
func (a *App) Close() error {
	return a.telemetry.Close()
}

func (a *App) load(opts ProjectOptions) (*domain.Description, error) {
	if opts.File != "" {
		return a.loader.Load(opts.File)
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	return a.loader.Discover(dir)
}

// Build builds the whole project, or the single binary or library named in opts.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	desc, err := a.load(opts.ProjectOptions)
	if err != nil {
		return err
	}
	if err := a.build(ctx, desc, opts); err != nil {
		return zerr.Wrap(err, domain.ErrBuildFailed.Error())
	}
	return nil
}

func (a *App) build(ctx context.Context, desc *domain.Description, opts BuildOptions) error {
	jobs := opts.Jobs
	if jobs == 0 {
		jobs = runtime.NumCPU()
	}

	switch {
	case opts.Binary != "":
		return a.builder.BuildBinary(ctx, desc, opts.Binary, jobs)
	case opts.Library != "":
		return a.builder.BuildLibrary(ctx, desc, opts.Library, jobs)
	default:
		return a.builder.Build(ctx, desc, jobs)
	}
}

// Clean removes objects and declared artifacts.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	desc, err := a.load(opts.ProjectOptions)
	if err != nil {
		return err
	}
	if err := a.builder.Clean(desc, opts.All); err != nil {
		return zerr.Wrap(err, domain.ErrCleanFailed.Error())
	}
	return nil
}

// Sources writes every discovered source to w, one per line, in target order.
func (a *App) Sources(w io.Writer, opts SourcesOptions) error {
	desc, err := a.load(opts.ProjectOptions)
	if err != nil {
		return err
	}
	for _, t := range desc.Sources.Targets() {
		if opts.Objects {
			_, _ = fmt.Fprintf(w, "%s\t%s\n", t.Source, t.Object)
			continue
		}
		_, _ = fmt.Fprintln(w, t.Source)
	}
	return nil
}

// Status writes one line per declared artifact describing whether a build
// would change it.
func (a *App) Status(w io.Writer, opts ProjectOptions) error {
	desc, err := a.load(opts)
	if err != nil {
		return err
	}
	statuses, err := a.builder.Status(desc)
	if err != nil {
		return err
	}
	for _, s := range statuses {
		_, _ = fmt.Fprintln(w, formatStatus(s))
	}
	return nil
}

func formatStatus(s builder.ArtifactStatus) string {
	var icon, detail string
	switch {
	case !s.Exists:
		icon, detail = style.Status(style.Cross, style.Red), "missing"
	case s.Stale > 0:
		icon, detail = style.Status(style.Dot, style.Yellow), fmt.Sprintf("%d stale", s.Stale)
	case s.Changed:
		icon, detail = style.Status(style.Warning, style.Yellow), "command changed"
	default:
		icon, detail = style.Status(style.Check, style.Green), "up to date"
	}
	if !s.Recorded {
		detail += ", no record"
	}
	return fmt.Sprintf("%s %s (%s) %s", icon, s.Path, s.Kind, detail)
}
