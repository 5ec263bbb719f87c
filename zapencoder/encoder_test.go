package zapencoder

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/jsonlayout/core"
	"github.com/philipp01105/jsonlayout/formatter"
)

func newLogger(buf *bytes.Buffer, cfg formatter.Config, opts ...zap.Option) *zap.Logger {
	enc := New(EncoderConfig{Layout: formatter.NewJSONLayout(cfg)})
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(buf), zapcore.DebugLevel), opts...)
}

func TestEncodeEntry_Exact(t *testing.T) {
	enc := New(EncoderConfig{
		Layout: formatter.NewJSONLayout(formatter.Config{MDCKeys: []string{"user", "req"}}),
	})
	enc.AddString("user", "bob")

	ent := zapcore.Entry{
		LoggerName: "app",
		Level:      zapcore.InfoLevel,
		Time:       time.UnixMilli(1000),
		Message:    "hi",
		Stack:      "a\nb",
	}

	buf, err := enc.EncodeEntry(ent, []zapcore.Field{zap.String("ndc", "txn-42")})
	if err != nil {
		t.Fatalf("EncodeEntry() error = %v", err)
	}
	defer buf.Free()

	want := `{"logger":"app","level":"INFO","timestamp":1000,"threadName":"main","message":"hi","MDC":{"user":"bob"},"throwable":"a\nb\n","NDC":"txn-42"}` + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("EncodeEntry() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncoder_CloneIsolation(t *testing.T) {
	enc := New(EncoderConfig{})
	enc.AddString("user", "bob")

	clone := enc.Clone()
	clone.AddString("user", "alice")

	orig := enc.(*encoder)
	if orig.Fields["user"] != "bob" {
		t.Errorf("Clone() shares fields with original, got %v", orig.Fields["user"])
	}
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, formatter.Config{MDCKeys: []string{"user", "req"}, FlattenMDC: true}).Named("app")

	logger.With(zap.String("user", "bob")).Info("hi", zap.Int("req", 7), zap.String("thread", "worker-3"))

	var data map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("Invalid JSON: %v (%s)", err, buf.String())
	}

	want := map[string]interface{}{
		"logger":     "app",
		"level":      "INFO",
		"threadName": "worker-3",
		"message":    "hi",
		"user":       "bob",
		"req":        "7",
	}
	delete(data, "timestamp")
	if diff := cmp.Diff(want, data); diff != "" {
		t.Errorf("logged event mismatch (-want +got):\n%s", diff)
	}
}

func TestLogger_Stacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, formatter.Config{}, zap.AddStacktrace(zapcore.ErrorLevel))

	logger.Error("failed")

	var data map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if data["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", data["level"])
	}
	if s, _ := data["throwable"].(string); s == "" {
		t.Error("expected throwable with stack trace")
	}
	if _, ok := data["NDC"]; ok {
		t.Error("NDC should be absent without an ndc field")
	}
}

func TestLevelFromZap(t *testing.T) {
	tests := []struct {
		in   zapcore.Level
		want core.Level
	}{
		{zapcore.DebugLevel - 1, core.TraceLevel},
		{zapcore.DebugLevel, core.DebugLevel},
		{zapcore.InfoLevel, core.InfoLevel},
		{zapcore.WarnLevel, core.WarnLevel},
		{zapcore.ErrorLevel, core.ErrorLevel},
		{zapcore.DPanicLevel, core.ErrorLevel},
		{zapcore.PanicLevel, core.PanicLevel},
		{zapcore.FatalLevel, core.FatalLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			if got := levelFromZap(tt.in); got != tt.want {
				t.Errorf("levelFromZap(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func BenchmarkEncoder(b *testing.B) {
	enc := New(EncoderConfig{
		Layout: formatter.NewJSONLayout(formatter.Config{MDCKeys: []string{"user"}}),
	})
	ent := zapcore.Entry{LoggerName: "app", Level: zapcore.InfoLevel, Time: time.Now(), Message: "test message"}
	fields := []zapcore.Field{zap.String("user", "bob")}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf, _ := enc.EncodeEntry(ent, fields)
		buf.Free()
	}
}

func BenchmarkZapJSONEncoder(b *testing.B) {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	ent := zapcore.Entry{LoggerName: "app", Level: zapcore.InfoLevel, Time: time.Now(), Message: "test message"}
	fields := []zapcore.Field{zap.String("user", "bob")}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf, _ := enc.EncodeEntry(ent, fields)
		buf.Free()
	}
}
