package formatter

import (
	"io"
	"time"

	"go.uber.org/zap/buffer"

	"github.com/philipp01105/jsonlayout/core"
)

// TextLayout formats events as human-readable text
type TextLayout struct {
	Config
}

// NewTextLayout creates a new text layout
func NewTextLayout(cfg Config) *TextLayout {
	cfg = cfg.clone()
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &TextLayout{Config: cfg}
}

// Format formats an event as text
func (f *TextLayout) Format(event *core.Event) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(event, buf)

	// Copy buffer content to return
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats an event and writes it directly to the writer
func (f *TextLayout) FormatTo(event *core.Event, w io.Writer) error {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(event, buf)

	_, err := w.Write(buf.Bytes())
	return wrapFormatError(err)
}

// IgnoresThrowable returns true: the host appends stack traces itself.
func (f *TextLayout) IgnoresThrowable() bool {
	return true
}

// pre-formatted level strings, indexed from TraceLevel
var levelBrackets = [...]string{
	" [TRACE] ",
	" [DEBUG] ",
	" [INFO] ",
	" [WARN] ",
	" [ERROR] ",
	" [FATAL] ",
	" [PANIC] ",
}

// formatToBuffer writes the formatted event into the given buffer
func (f *TextLayout) formatToBuffer(event *core.Event, buf *buffer.Buffer) {
	buf.AppendTime(time.UnixMilli(event.Timestamp).UTC(), f.TimestampFormat)

	if i := int(event.Level) - int(core.TraceLevel); i >= 0 && i < len(levelBrackets) {
		buf.AppendString(levelBrackets[i])
	} else {
		buf.AppendString(" [UNKNOWN] ")
	}

	buf.AppendByte('[')
	buf.AppendString(event.ThreadName)
	buf.AppendString("] ")
	buf.AppendString(event.LoggerName)
	buf.AppendString(" - ")
	buf.AppendString(event.Message)

	if event.NDCDefined {
		buf.AppendString(" NDC=")
		buf.AppendString(event.NDC)
	}

	if event.MDC != nil {
		for _, key := range f.MDCKeys {
			v, ok := event.MDC.Lookup(key)
			if !ok {
				continue
			}
			buf.AppendByte(' ')
			buf.AppendString(key)
			buf.AppendByte('=')
			buf.AppendString(v)
		}
	}

	buf.AppendByte('\n')
}
