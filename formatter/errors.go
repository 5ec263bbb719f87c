package formatter

import "errors"

// ErrFormat matches every FormatError via errors.Is.
var ErrFormat = errors.New("formatter: formatting I/O failure")

// FormatError reports that rendered output could not be written. No
// partial output accompanies it.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return ErrFormat.Error() + ": " + e.Err.Error()
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFormat
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func wrapFormatError(err error) error {
	if err == nil {
		return nil
	}
	return &FormatError{Err: err}
}
