package app_test

import (
	"context"
	"errors"
	"iter"
	"path/filepath"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/watcher"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.uber.org/mock/gomock"
)

// feed returns an event sequence fed from ch that ends when ctx is done.
func feed(ctx context.Context, ch <-chan ports.WatchEvent) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-ch:
				if !yield(ev) {
					return
				}
			}
		}
	}
}

type watchHarness struct {
	*fixture
	desc   *domain.Description
	events chan ports.WatchEvent
	builds atomic.Int32
	errors atomic.Int32
}

func newWatchHarness(t *testing.T, failOn int32) *watchHarness {
	t.Helper()
	h := &watchHarness{
		fixture: newFixture(t),
		events:  make(chan ports.WatchEvent),
	}
	h.desc = h.description()
	h.desc.Binaries = nil
	h.desc.Libraries = nil
	h.desc.Project.BeforeScript = "./gen.sh"

	h.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	h.logger.EXPECT().Error(gomock.Any()).Do(func(error) { h.errors.Add(1) }).AnyTimes()
	h.loader.EXPECT().Discover(".").Return(h.desc, nil).AnyTimes()
	h.executor.EXPECT().RunScript(gomock.Any(), "./gen.sh", h.root).DoAndReturn(
		func(context.Context, string, string) error {
			if h.builds.Add(1) == failOn {
				return errors.New("exit status 2")
			}
			return nil
		},
	).AnyTimes()

	var watchCtx context.Context
	h.watcher.EXPECT().Start(gomock.Any(), h.root).DoAndReturn(func(ctx context.Context, _ string) error {
		watchCtx = ctx
		return nil
	})
	h.watcher.EXPECT().Events().DoAndReturn(func() iter.Seq[ports.WatchEvent] {
		return feed(watchCtx, h.events)
	})
	h.watcher.EXPECT().Stop().Return(nil)
	return h
}

func (h *watchHarness) change(rel string) {
	h.events <- ports.WatchEvent{Path: filepath.Join(h.root, rel), Operation: ports.OpWrite}
	time.Sleep(2 * watcher.DefaultDebounceWindow)
	synctest.Wait()
}

func TestApp_Watch_RebuildsOnRelevantChanges(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newWatchHarness(t, 0)
		ctx, cancel := context.WithCancel(t.Context())

		done := make(chan error, 1)
		go func() { done <- h.app.Watch(ctx, app.BuildOptions{Jobs: 1}) }()

		synctest.Wait()
		assert.Equal(t, int32(1), h.builds.Load(), "initial build")

		h.change("src/main.c")
		assert.Equal(t, int32(2), h.builds.Load())

		h.change("README.md")
		assert.Equal(t, int32(2), h.builds.Load(), "non-source change ignored")

		h.change("kiln.yml")
		assert.Equal(t, int32(3), h.builds.Load(), "description change rebuilds")

		cancel()
		require.NoError(t, <-done)
	})
}

func TestApp_Watch_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newWatchHarness(t, 0)
		ctx, cancel := context.WithCancel(t.Context())

		done := make(chan error, 1)
		go func() { done <- h.app.Watch(ctx, app.BuildOptions{Jobs: 1}) }()
		synctest.Wait()

		for _, rel := range []string{"src/a.c", "src/b.c", "src/a.c"} {
			h.events <- ports.WatchEvent{Path: filepath.Join(h.root, rel), Operation: ports.OpWrite}
		}
		time.Sleep(2 * watcher.DefaultDebounceWindow)
		synctest.Wait()
		assert.Equal(t, int32(2), h.builds.Load())

		cancel()
		require.NoError(t, <-done)
	})
}

func TestApp_Watch_BuildFailureKeepsWatching(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newWatchHarness(t, 2)
		ctx, cancel := context.WithCancel(t.Context())

		done := make(chan error, 1)
		go func() { done <- h.app.Watch(ctx, app.BuildOptions{Jobs: 1}) }()
		synctest.Wait()

		h.change("src/main.c")
		assert.Equal(t, int32(2), h.builds.Load())
		assert.Equal(t, int32(1), h.errors.Load())

		h.change("src/main.c")
		assert.Equal(t, int32(3), h.builds.Load())
		assert.Equal(t, int32(1), h.errors.Load())

		cancel()
		require.NoError(t, <-done)
	})
}

func TestApp_Watch_StartFailure(t *testing.T) {
	f := newFixture(t)
	f.quiet()
	desc := f.description()
	desc.Binaries = nil
	desc.Libraries = nil

	f.loader.EXPECT().Discover(".").Return(desc, nil)
	f.watcher.EXPECT().Start(gomock.Any(), f.root).Return(errors.New("too many open files"))

	err := f.app.Watch(t.Context(), app.BuildOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to watch project")
}
