// Package telemetry records build commands as OpenTelemetry spans and fans
// vertices out to every configured recorder.
package telemetry

import (
	"bytes"
	"sync"
)

// DefaultChunkSize is the buffered output size that forces a flush.
const DefaultChunkSize = 4096

// lineBuffer collects process output and hands it on in whole lines.
// Partial lines are held until a newline arrives, the buffer exceeds its
// limit, or Close is called. It is safe for concurrent use.
type lineBuffer struct {
	limit   int
	onFlush func([]byte)

	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

func newLineBuffer(limit int, onFlush func([]byte)) *lineBuffer {
	if limit <= 0 {
		limit = DefaultChunkSize
	}
	return &lineBuffer{limit: limit, onFlush: onFlush}
}

// Write buffers p and flushes every complete line.
// Writes after Close are dropped.
func (b *lineBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return len(p), nil
	}
	b.buf.Write(p)

	if b.buf.Len() >= b.limit {
		b.flushLocked(b.buf.Len())
		return len(p), nil
	}
	if i := bytes.LastIndexByte(b.buf.Bytes(), '\n'); i >= 0 {
		b.flushLocked(i + 1)
	}
	return len(p), nil
}

// Close flushes whatever remains.
func (b *lineBuffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.flushLocked(b.buf.Len())
	return nil
}

// flushLocked must be called with mu held.
func (b *lineBuffer) flushLocked(n int) {
	if n == 0 {
		return
	}
	data := bytes.Clone(b.buf.Next(n))
	if b.onFlush != nil {
		b.onFlush(data)
	}
}
