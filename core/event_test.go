package core

import (
	"errors"
	"testing"
	"time"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{TraceLevel, "TRACE"},
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{FatalLevel, "FATAL"},
		{PanicLevel, "PANIC"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvent_Setters(t *testing.T) {
	var e Event

	e.SetTime(time.UnixMilli(1000))
	if e.Timestamp != 1000 {
		t.Errorf("Timestamp = %d, want 1000", e.Timestamp)
	}

	e.SetMessage(errors.New("boom"))
	if e.Message != "boom" {
		t.Errorf("Message = %q, want %q", e.Message, "boom")
	}
	e.SetMessage(nil)
	if e.Message != "null" {
		t.Errorf("Message = %q, want %q", e.Message, "null")
	}

	if e.NDCDefined {
		t.Fatal("NDC should start undefined")
	}
	e.SetNDC("")
	if !e.NDCDefined || e.NDC != "" {
		t.Error("SetNDC(\"\") should define an empty NDC")
	}
}

func TestEventPool(t *testing.T) {
	e1 := GetEvent()
	if e1 == nil {
		t.Fatal("GetEvent() returned nil")
	}

	e1.Message = "test"
	e1.SetNDC("txn")
	e1.Throwable = []string{"a"}
	e1.MDC = Fields{String("k", "v")}
	PutEvent(e1)

	e2 := GetEvent()
	if e2 == nil {
		t.Fatal("GetEvent() returned nil after PutEvent()")
	}
	if e2.Message != "" || e2.NDCDefined || e2.Throwable != nil || e2.MDC != nil {
		t.Errorf("Expected clean event after pool reset, got %+v", e2)
	}

	PutEvent(nil)
}

func BenchmarkGetEvent(b *testing.B) {
	for i := 0; i < b.N; i++ {
		e := GetEvent()
		PutEvent(e)
	}
}
