package core

import (
	"fmt"
	"sync"
	"time"
)

// Event represents one log call with all its metadata
type Event struct {
	LoggerName string
	Level      Level
	// Timestamp is milliseconds since the Unix epoch.
	Timestamp  int64
	ThreadName string
	Message    string

	// NDC is only rendered when NDCDefined is set; an empty string is
	// a legitimate value.
	NDC        string
	NDCDefined bool

	// Throwable holds stack trace lines. Nil means no stack trace.
	Throwable []string

	// MDC is the mapped context lookup. Nil means empty.
	MDC ContextLookup
}

// SetTime sets Timestamp from t
func (e *Event) SetTime(t time.Time) {
	e.Timestamp = t.UnixMilli()
}

// SetNDC sets the nested context value
func (e *Event) SetNDC(ndc string) {
	e.NDC = ndc
	e.NDCDefined = true
}

// SetMessage renders an arbitrary logged object into Message
func (e *Event) SetMessage(v any) {
	e.Message = Render(v)
}

// Render returns the string form of v. nil renders as "null".
func Render(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	default:
		return fmt.Sprint(v)
	}
}

// eventPool is a pool of Event objects to reduce allocations
var eventPool = sync.Pool{
	New: func() interface{} {
		return &Event{}
	},
}

// GetEvent retrieves a zeroed Event from the pool
func GetEvent() *Event {
	return eventPool.Get().(*Event)
}

// PutEvent returns an Event to the pool
func PutEvent(e *Event) {
	if e == nil {
		return
	}
	*e = Event{}
	eventPool.Put(e)
}
