package fetch

import (
	"errors"
	"fmt"
	"net/textproto"
	"strings"
)

// ResourceNotFoundError reports that no attempted path exists or is
// readable. Paths lists every path tried, in order.
type ResourceNotFoundError struct {
	Paths []string
	Cause error
}

func (e *ResourceNotFoundError) Error() string {
	msg := "remote resource not found: tried " + strings.Join(e.Paths, ", ")
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ResourceNotFoundError) Unwrap() error { return e.Cause }

// TransportError reports a connection level failure.
type TransportError struct {
	Op    string // dial, login, retrieve
	Path  string
	Cause error
}

func (e *TransportError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("ftp %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("ftp %s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// FTP replies meaning the file is missing or not accessible.
var notFoundCodes = map[int]bool{
	450: true,
	550: true,
	553: true,
}

func isNotFound(err error) bool {
	var perr *textproto.Error
	return errors.As(err, &perr) && notFoundCodes[perr.Code]
}
