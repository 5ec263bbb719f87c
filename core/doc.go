// Package core defines the event model consumed by the layouts.
//
// An Event is a read-only snapshot of one log call as captured by the
// hosting framework: logger name, Level, millisecond timestamp, thread
// name and rendered message, plus the optional diagnostic data (nested
// context string, mapped context lookup and stack trace lines).
//
// Mapped context values are looked up through the ContextLookup
// interface. Fields is the allocation-friendly implementation used by
// the bridges; MapContext adapts a plain map.
//
// Event objects are pooled via sync.Pool. Bridges get an Event with
// GetEvent and return it with PutEvent once the layout has rendered it.
package core
