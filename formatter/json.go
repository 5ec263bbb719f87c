package formatter

import (
	"io"
	"strings"
	"sync/atomic"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap/buffer"

	"github.com/philipp01105/jsonlayout/core"
)

// jsonAPI writes compact JSON without HTML escaping
var jsonAPI = jsoniter.Config{EscapeHTML: false}.Froze()

// JSONLayout formats events as single-line JSON. The zero value is
// ready to use and renders only the basic fields.
type JSONLayout struct {
	cfg atomic.Pointer[Config]
}

// NewJSONLayout creates a new JSON layout
func NewJSONLayout(cfg Config) *JSONLayout {
	l := &JSONLayout{}
	l.SetConfig(cfg)
	return l
}

// FormatJSON formats event with an explicit configuration and returns
// the newline-terminated JSON text.
func FormatJSON(event *core.Event, cfg Config) (string, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := encodeJSON(event, &cfg, buf); err != nil {
		return "", wrapFormatError(err)
	}
	return buf.String(), nil
}

// Format formats an event as JSON
func (l *JSONLayout) Format(event *core.Event) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := encodeJSON(event, l.snapshot(), buf); err != nil {
		return nil, wrapFormatError(err)
	}

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo renders the whole event first and then writes it with a
// single call, so w never sees a partial object from a failed render.
func (l *JSONLayout) FormatTo(event *core.Event, w io.Writer) error {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := encodeJSON(event, l.snapshot(), buf); err != nil {
		return wrapFormatError(err)
	}

	n, err := w.Write(buf.Bytes())
	if err == nil && n < buf.Len() {
		err = io.ErrShortWrite
	}
	return wrapFormatError(err)
}

// AppendTo formats an event into a caller-owned buffer. Nothing is
// appended when rendering fails.
func (l *JSONLayout) AppendTo(event *core.Event, buf *buffer.Buffer) error {
	return wrapFormatError(encodeJSON(event, l.snapshot(), buf))
}

// IgnoresThrowable returns false: stack traces are rendered into the
// "throwable" field and must not be stripped by the caller.
func (l *JSONLayout) IgnoresThrowable() bool {
	return false
}

// Config returns a copy of the current configuration
func (l *JSONLayout) Config() Config {
	return l.snapshot().clone()
}

// SetConfig atomically replaces the configuration
func (l *JSONLayout) SetConfig(cfg Config) {
	c := cfg.clone()
	l.cfg.Store(&c)
}

// MDCKeys returns a copy of the configured mapped context keys
func (l *JSONLayout) MDCKeys() []string {
	return l.Config().MDCKeys
}

// SetMDCKeysToUse sets the mapped context keys from a comma separated
// list. Keys are used verbatim, surrounding spaces included. A blank
// list leaves the configuration unchanged.
func (l *JSONLayout) SetMDCKeysToUse(keys string) {
	parsed := ParseMDCKeys(keys)
	if parsed == nil {
		return
	}
	l.update(func(c *Config) { c.MDCKeys = parsed })
}

// SetCreateMDCField controls nesting of the mapped context keys under
// "MDC". Only a case-insensitive "true" enables it.
func (l *JSONLayout) SetCreateMDCField(create string) {
	nest := ParseBool(create)
	l.update(func(c *Config) { c.FlattenMDC = !nest })
}

var emptyConfig = Config{}

func (l *JSONLayout) snapshot() *Config {
	if c := l.cfg.Load(); c != nil {
		return c
	}
	return &emptyConfig
}

// update swaps in a modified copy of the current configuration
func (l *JSONLayout) update(fn func(*Config)) {
	for {
		old := l.cfg.Load()
		var next Config
		if old != nil {
			next = old.clone()
		}
		fn(&next)
		if l.cfg.CompareAndSwap(old, &next) {
			return
		}
	}
}

// encodeJSON writes the event as one JSON object plus a newline to w.
// The stream is returned to the pool on every path.
func encodeJSON(event *core.Event, cfg *Config, w io.Writer) error {
	stream := jsonAPI.BorrowStream(w)
	defer jsonAPI.ReturnStream(stream)

	stream.WriteObjectStart()
	writeBasicFields(stream, event)

	if len(cfg.MDCKeys) > 0 {
		if cfg.FlattenMDC {
			writeMDCValues(stream, event, cfg.MDCKeys, true)
		} else {
			stream.WriteMore()
			stream.WriteObjectField("MDC")
			stream.WriteObjectStart()
			writeMDCValues(stream, event, cfg.MDCKeys, false)
			stream.WriteObjectEnd()
		}
	}

	writeThrowable(stream, event)
	writeNDC(stream, event)

	stream.WriteObjectEnd()
	stream.WriteRaw("\n")
	return stream.Flush()
}

func writeBasicFields(stream *jsoniter.Stream, event *core.Event) {
	stream.WriteObjectField("logger")
	stream.WriteString(event.LoggerName)
	writeStringField(stream, "level", event.Level.String())
	stream.WriteMore()
	stream.WriteObjectField("timestamp")
	stream.WriteInt64(event.Timestamp)
	writeStringField(stream, "threadName", event.ThreadName)
	writeStringField(stream, "message", event.Message)
}

// writeMDCValues writes each configured key that resolves to a value.
// leadingComma is false only for the first field of a fresh object.
func writeMDCValues(stream *jsoniter.Stream, event *core.Event, keys []string, leadingComma bool) {
	if event.MDC == nil {
		return
	}
	for _, key := range keys {
		v, ok := event.MDC.Lookup(key)
		if !ok {
			continue
		}
		if leadingComma {
			stream.WriteMore()
		}
		stream.WriteObjectField(key)
		stream.WriteString(v)
		leadingComma = true
	}
}

func writeThrowable(stream *jsoniter.Stream, event *core.Event) {
	if len(event.Throwable) == 0 {
		return
	}
	var sb strings.Builder
	for _, line := range event.Throwable {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	writeStringField(stream, "throwable", sb.String())
}

func writeNDC(stream *jsoniter.Stream, event *core.Event) {
	if event.NDCDefined {
		writeStringField(stream, "NDC", event.NDC)
	}
}

// writeStringField writes a non-leading string field
func writeStringField(stream *jsoniter.Stream, name, value string) {
	stream.WriteMore()
	stream.WriteObjectField(name)
	stream.WriteString(value)
}
