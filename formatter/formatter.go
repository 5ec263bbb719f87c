package formatter

import (
	"io"
	"slices"

	"go.uber.org/zap/buffer"

	"github.com/philipp01105/jsonlayout/core"
)

// Formatter defines the interface for event layouts
type Formatter interface {
	// Format formats an event into bytes
	Format(event *core.Event) ([]byte, error)

	// IgnoresThrowable reports whether the layout leaves stack trace
	// rendering to the caller.
	IgnoresThrowable() bool
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo formats an event and writes it directly to the writer
	FormatTo(event *core.Event, w io.Writer) error
}

// Config holds common layout configuration
type Config struct {
	// MDCKeys lists the mapped context keys to render, in order.
	MDCKeys []string
	// FlattenMDC renders the keys as top-level fields instead of
	// nesting them under "MDC". JSONLayout only.
	FlattenMDC bool
	// TimestampFormat specifies the time format (empty for RFC3339).
	// TextLayout only.
	TimestampFormat string
}

// NestMDC reports whether mapped context keys are nested under "MDC"
func (c Config) NestMDC() bool {
	return !c.FlattenMDC
}

func (c Config) clone() Config {
	c.MDCKeys = slices.Clone(c.MDCKeys)
	return c
}

// bufferPool is a pool of zap buffers to reduce allocations
var bufferPool = buffer.NewPool()

func getBuffer() *buffer.Buffer {
	return bufferPool.Get()
}

func putBuffer(buf *buffer.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	buf.Free()
}
