package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/kiln/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*Summary)(nil)

// Summary is a span processor counting finished commands. On shutdown it logs
// how many commands ran and how many of them failed.
type Summary struct {
	logger ports.Logger

	mu       sync.Mutex
	commands int
	failed   int
}

// NewSummary creates a Summary reporting to logger.
func NewSummary(logger ports.Logger) *Summary {
	return &Summary{logger: logger}
}

// OnStart implements sdktrace.SpanProcessor.
func (s *Summary) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd counts the finished span.
func (s *Summary) OnEnd(span sdktrace.ReadOnlySpan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands++
	if span.Status().Code == codes.Error {
		s.failed++
	}
}

// Shutdown logs the totals. Nothing is logged when no command ran.
func (s *Summary) Shutdown(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.commands == 0 {
		return nil
	}
	s.logger.Info(fmt.Sprintf("ran %d commands, %d failed", s.commands, s.failed))
	s.commands, s.failed = 0, 0
	return nil
}

// ForceFlush implements sdktrace.SpanProcessor.
func (s *Summary) ForceFlush(context.Context) error {
	return nil
}
