package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"go.trai.ch/kiln/internal/adapters/watcher" //nolint:depguard // debouncing is part of the watch use case
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Watch builds once, then rebuilds whenever a source or the description
// changes. Build failures are logged and watching continues until ctx ends.
func (a *App) Watch(ctx context.Context, opts BuildOptions) error {
	desc, err := a.load(opts.ProjectOptions)
	if err != nil {
		return err
	}
	a.rebuild(ctx, desc, opts)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.watcher.Start(ctx, desc.Root); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to watch project"), "root", desc.Root)
	}
	defer func() { _ = a.watcher.Stop() }()
	a.logger.Info("watching " + desc.Root)

	trigger := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		a.logger.Info(fmt.Sprintf("%d file(s) changed", len(paths)))
		select {
		case trigger <- struct{}{}:
		default:
		}
	})

	var current atomic.Pointer[domain.Description]
	current.Store(desc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		for ev := range a.watcher.Events() {
			if relevant(current.Load(), ev.Path) {
				debouncer.Add(ev.Path)
			}
		}
		return nil
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-trigger:
				next, err := a.load(opts.ProjectOptions)
				if err != nil {
					a.logger.Error(err)
					continue
				}
				current.Store(next)
				a.rebuild(gctx, next, opts)
			}
		}
	})
	return g.Wait()
}

// rebuild builds desc and logs the outcome instead of returning it.
func (a *App) rebuild(ctx context.Context, desc *domain.Description, opts BuildOptions) {
	if err := a.build(ctx, desc, opts); err != nil {
		a.logger.Error(zerr.Wrap(err, domain.ErrBuildFailed.Error()))
		return
	}
	a.logger.Info("build finished")
}

// relevant reports whether a change to path can affect the build.
func relevant(desc *domain.Description, path string) bool {
	if filepath.Clean(path) == desc.File {
		return true
	}
	return domain.IsSource(path, desc.Project.Lang)
}
