package telemetry

import (
	"context"
	"errors"
	"io"

	"go.trai.ch/kiln/internal/core/ports"
)

var _ ports.Telemetry = (*Fanout)(nil)

// Fanout records every vertex with each of its recorders.
type Fanout struct {
	recorders []ports.Telemetry
}

// NewFanout creates a Fanout over recorders.
func NewFanout(recorders ...ports.Telemetry) *Fanout {
	return &Fanout{recorders: recorders}
}

// Record starts a vertex on every recorder, passing each the context returned
// by the one before. The returned context carries what every recorder added,
// such as the current span, plus the combined vertex.
func (f *Fanout) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	vertices := make(fanoutVertex, 0, len(f.recorders))
	for _, r := range f.recorders {
		var v ports.Vertex
		ctx, v = r.Record(ctx, name)
		vertices = append(vertices, v)
	}
	return ports.ContextWithVertex(ctx, vertices), vertices
}

// Close closes every recorder and joins their errors.
func (f *Fanout) Close() error {
	var errs []error
	for _, r := range f.recorders {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type fanoutVertex []ports.Vertex

func (f fanoutVertex) Stdout() io.Writer {
	writers := make([]io.Writer, 0, len(f))
	for _, v := range f {
		writers = append(writers, v.Stdout())
	}
	return io.MultiWriter(writers...)
}

func (f fanoutVertex) Stderr() io.Writer {
	writers := make([]io.Writer, 0, len(f))
	for _, v := range f {
		writers = append(writers, v.Stderr())
	}
	return io.MultiWriter(writers...)
}

func (f fanoutVertex) Complete(err error) {
	for _, v := range f {
		v.Complete(err)
	}
}

func (f fanoutVertex) Cached() {
	for _, v := range f {
		v.Cached()
	}
}
