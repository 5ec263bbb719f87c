// Package formatter defines how events are serialized into bytes.
//
// It exposes two interfaces: Formatter, which returns a []byte, and
// WriterFormatter, which writes directly to an io.Writer. Both built-in
// layouts implement both.
//
// JSONLayout renders one newline-terminated JSON object per event with
// a fixed field order: logger, level, timestamp, threadName, message,
// the configured mapped context keys (nested under "MDC" or flattened),
// throwable and NDC. Its configuration is held as an immutable snapshot
// that is swapped atomically, so the setters may be called while other
// goroutines are formatting.
//
// TextLayout renders a single human readable line and leaves stack
// traces to the host.
//
// Both layouts use pooled zap buffers internally. Buffers larger than
// 64 KiB are not returned to the pool to prevent a single large event
// from permanently inflating memory usage.
package formatter
