package telemetry

// NewLineBufferForTest exposes lineBuffer to the external test package.
func NewLineBufferForTest(limit int, onFlush func([]byte)) interface {
	Write([]byte) (int, error)
	Close() error
} {
	return newLineBuffer(limit, onFlush)
}
