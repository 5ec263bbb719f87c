package zapencoder

import (
	"maps"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/jsonlayout/core"
	"github.com/philipp01105/jsonlayout/formatter"
)

// Default reserved field keys
const (
	DefaultThreadKey  = "thread"
	DefaultNDCKey     = "ndc"
	DefaultThreadName = "main"
)

// EncoderConfig configures the encoder. Empty fields take defaults.
type EncoderConfig struct {
	// Layout renders the events. Defaults to a layout without MDC keys.
	Layout *formatter.JSONLayout
	// ThreadKey names the field holding the thread name.
	ThreadKey string
	// NDCKey names the field holding the nested context.
	NDCKey string
	// DefaultThread is used when no ThreadKey field is present.
	DefaultThread string
}

var bufferPool = buffer.NewPool()

type encoder struct {
	*zapcore.MapObjectEncoder
	cfg EncoderConfig
}

// New creates a zapcore.Encoder backed by a JSONLayout
func New(cfg EncoderConfig) zapcore.Encoder {
	if cfg.Layout == nil {
		cfg.Layout = formatter.NewJSONLayout(formatter.Config{})
	}
	if cfg.ThreadKey == "" {
		cfg.ThreadKey = DefaultThreadKey
	}
	if cfg.NDCKey == "" {
		cfg.NDCKey = DefaultNDCKey
	}
	if cfg.DefaultThread == "" {
		cfg.DefaultThread = DefaultThreadName
	}
	return &encoder{MapObjectEncoder: zapcore.NewMapObjectEncoder(), cfg: cfg}
}

func (enc *encoder) Clone() zapcore.Encoder {
	return enc.clone()
}

// clone copies the top-level context fields. Nested values are shared
// and never mutated after being added.
func (enc *encoder) clone() *encoder {
	m := zapcore.NewMapObjectEncoder()
	maps.Copy(m.Fields, enc.Fields)
	return &encoder{MapObjectEncoder: m, cfg: enc.cfg}
}

func (enc *encoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := enc.clone()
	for i := range fields {
		fields[i].AddTo(final)
	}
	mdc := core.MapContext(final.Fields)

	event := core.GetEvent()
	defer core.PutEvent(event)

	event.LoggerName = ent.LoggerName
	event.Level = levelFromZap(ent.Level)
	event.SetTime(ent.Time)
	event.Message = ent.Message
	event.MDC = mdc

	event.ThreadName = enc.cfg.DefaultThread
	if thread, ok := mdc.Lookup(enc.cfg.ThreadKey); ok {
		event.ThreadName = thread
	}
	if ndc, ok := mdc.Lookup(enc.cfg.NDCKey); ok {
		event.SetNDC(ndc)
	}
	if ent.Stack != "" {
		event.Throwable = strings.Split(ent.Stack, "\n")
	}

	buf := bufferPool.Get()
	if err := enc.cfg.Layout.AppendTo(event, buf); err != nil {
		buf.Free()
		return nil, err
	}
	return buf, nil
}

// levelFromZap converts a zapcore.Level to a core.Level
func levelFromZap(l zapcore.Level) core.Level {
	switch {
	case l < zapcore.DebugLevel:
		return core.TraceLevel
	case l == zapcore.DebugLevel:
		return core.DebugLevel
	case l == zapcore.InfoLevel:
		return core.InfoLevel
	case l == zapcore.WarnLevel:
		return core.WarnLevel
	case l == zapcore.ErrorLevel, l == zapcore.DPanicLevel:
		return core.ErrorLevel
	case l == zapcore.PanicLevel:
		return core.PanicLevel
	default:
		return core.FatalLevel
	}
}
