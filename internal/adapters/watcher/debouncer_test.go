package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/watcher"
)

type calls struct {
	mu    sync.Mutex
	count int
	last  []string
}

func (c *calls) record(paths []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	c.last = paths
}

func (c *calls) snapshot() (int, []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count, c.last
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var c calls
		d := watcher.NewDebouncer(watcher.DefaultDebounceWindow, c.record)

		d.Add("/proj/src/b.c")
		d.Add("/proj/src/a.c")
		d.Add("/proj/src/b.c")

		time.Sleep(2 * watcher.DefaultDebounceWindow)
		synctest.Wait()

		count, paths := c.snapshot()
		require.Equal(t, 1, count)
		assert.Equal(t, []string{"/proj/src/a.c", "/proj/src/b.c"}, paths)
	})
}

func TestDebouncer_TimerResetsOnAdd(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var c calls
		d := watcher.NewDebouncer(100*time.Millisecond, c.record)

		d.Add("main.c")
		time.Sleep(60 * time.Millisecond)
		d.Add("util.c")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		count, _ := c.snapshot()
		assert.Equal(t, 0, count)

		time.Sleep(50 * time.Millisecond)
		synctest.Wait()

		count, paths := c.snapshot()
		require.Equal(t, 1, count)
		assert.Equal(t, []string{"main.c", "util.c"}, paths)
	})
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var c calls
		d := watcher.NewDebouncer(50*time.Millisecond, c.record)

		d.Add("a.c")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Add("b.c")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		count, paths := c.snapshot()
		require.Equal(t, 2, count)
		assert.Equal(t, []string{"b.c"}, paths)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var c calls
		d := watcher.NewDebouncer(100*time.Millisecond, c.record)

		d.Add("a.c")
		d.Flush()

		count, paths := c.snapshot()
		require.Equal(t, 1, count)
		assert.Equal(t, []string{"a.c"}, paths)

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		count, _ = c.snapshot()
		assert.Equal(t, 1, count)
	})
}

func TestDebouncer_FlushAfterFire(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var c calls
		d := watcher.NewDebouncer(50*time.Millisecond, c.record)

		d.Add("a.c")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Flush()
		count, _ := c.snapshot()
		assert.Equal(t, 1, count)
	})
}

func TestDebouncer_FlushEmpty(t *testing.T) {
	var c calls
	d := watcher.NewDebouncer(50*time.Millisecond, c.record)

	d.Flush()
	count, _ := c.snapshot()
	assert.Equal(t, 0, count)
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)
		d.Add("a.c")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		d.Add("b.c")
		d.Flush()
	})
}
