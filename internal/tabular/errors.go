package tabular

import "fmt"

// DecodeError wraps a failure to parse file content.
type DecodeError struct {
	Format string
	Cause  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Format, e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Cause }
