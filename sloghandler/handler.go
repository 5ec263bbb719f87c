package sloghandler

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/philipp01105/jsonlayout/core"
	"github.com/philipp01105/jsonlayout/formatter"
)

// Options configures a Handler. The zero value is usable.
type Options struct {
	// Level is the minimum enabled level (default slog.LevelInfo).
	Level slog.Leveler
	// LoggerName is reported as the event's logger.
	LoggerName string
	// ThreadName is reported as the event's thread (default "main").
	ThreadName string
	// NDCKey names the attribute holding the nested context (default "ndc").
	NDCKey string
	// StackKey names the attribute holding a newline separated stack
	// trace (default "stack").
	StackKey string
}

// Handler implements slog.Handler on top of a formatter.Formatter
type Handler struct {
	mu       *sync.Mutex
	w        io.Writer
	f        formatter.Formatter
	writerFn formatter.WriterFormatter
	opts     Options
	attrs    []core.Field
	group    string
}

// New creates a Handler writing formatted records to w
func New(w io.Writer, f formatter.Formatter, opts *Options) *Handler {
	h := &Handler{
		mu: &sync.Mutex{},
		w:  w,
		f:  f,
	}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.ThreadName == "" {
		h.opts.ThreadName = "main"
	}
	if h.opts.NDCKey == "" {
		h.opts.NDCKey = "ndc"
	}
	if h.opts.StackKey == "" {
		h.opts.StackKey = "stack"
	}
	// Prefer writing straight to w when the formatter supports it
	h.writerFn, _ = f.(formatter.WriterFormatter)
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle converts a slog.Record to a core.Event and writes its rendering.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	fields := make(core.Fields, 0, len(h.attrs)+record.NumAttrs())
	fields = append(fields, h.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		fields = appendAttr(fields, h.group, a)
		return true
	})

	event := core.GetEvent()
	defer core.PutEvent(event)

	event.LoggerName = h.opts.LoggerName
	event.Level = levelFromSlog(record.Level)
	if !record.Time.IsZero() {
		event.SetTime(record.Time)
	}
	event.ThreadName = h.opts.ThreadName
	event.Message = record.Message
	event.MDC = fields

	if ndc, ok := fields.Lookup(h.opts.NDCKey); ok {
		event.SetNDC(ndc)
	}
	if stack, ok := fields.Lookup(h.opts.StackKey); ok && stack != "" {
		event.Throwable = strings.Split(strings.TrimSuffix(stack, "\n"), "\n")
	}

	var out []byte
	if h.writerFn == nil {
		var err error
		if out, err = h.f.Format(event); err != nil {
			return err
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.writerFn != nil {
		if err := h.writerFn.FormatTo(event, h.w); err != nil {
			return err
		}
	} else if _, err := h.w.Write(out); err != nil {
		return err
	}

	if h.f.IgnoresThrowable() {
		for _, line := range event.Throwable {
			if _, err := io.WriteString(h.w, line+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// WithAttrs returns a new Handler with additional attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	for _, a := range attrs {
		h2.attrs = appendAttr(h2.attrs, h.group, a)
	}
	return h2
}

// WithGroup returns a new Handler with the given group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	if h.group != "" {
		h2.group = h.group + "." + name
	} else {
		h2.group = name
	}
	return h2
}

func (h *Handler) clone() *Handler {
	h2 := *h
	h2.attrs = make([]core.Field, len(h.attrs), len(h.attrs)+4)
	copy(h2.attrs, h.attrs)
	return &h2
}

// levelFromSlog converts a slog.Level to a core.Level.
func levelFromSlog(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// appendAttr converts a slog.Attr to fields, prepending the group prefix
// if present. Groups are flattened into dotted keys.
func appendAttr(fields []core.Field, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Key == "" && a.Value.Kind() != slog.KindGroup {
		return fields
	}

	key := a.Key
	if group != "" && key != "" {
		key = group + "." + a.Key
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return append(fields, core.String(key, a.Value.String()))
	case slog.KindInt64:
		return append(fields, core.Int64(key, a.Value.Int64()))
	case slog.KindFloat64:
		return append(fields, core.Float64(key, a.Value.Float64()))
	case slog.KindBool:
		return append(fields, core.Bool(key, a.Value.Bool()))
	case slog.KindTime:
		return append(fields, core.Time(key, a.Value.Time()))
	case slog.KindDuration:
		return append(fields, core.Duration(key, a.Value.Duration()))
	case slog.KindGroup:
		// An empty key inlines the group's attrs
		prefix := key
		if prefix == "" {
			prefix = group
		}
		for _, ga := range a.Value.Group() {
			fields = appendAttr(fields, prefix, ga)
		}
		return fields
	default:
		if err, ok := a.Value.Any().(error); ok {
			return append(fields, core.Err(key, err))
		}
		return append(fields, core.Any(key, a.Value.Any()))
	}
}
