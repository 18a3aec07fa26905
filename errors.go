package procgraph

import (
	"errors"
	"fmt"
)

var (
	ErrNodeNotFound     = errors.New("procgraph: node not found")
	ErrDocumentNotFound = errors.New("procgraph: document not found")
	ErrInvalidKey       = errors.New("procgraph: invalid document key")
	ErrMissingField     = errors.New("procgraph: required field missing")
)

// ErrorKind says which boundary step failed.
type ErrorKind string

const (
	ReadError  ErrorKind = "read"
	ParseError ErrorKind = "parse"
	WriteError ErrorKind = "write"
)

// DocumentError is a failed load or save. Path is the file involved, if any;
// Field is the element path of a parse failure, if known.
type DocumentError struct {
	Kind  ErrorKind
	Path  string
	Field string
	Err   error
}

func (e *DocumentError) Error() string {
	msg := "procgraph: " + string(e.Kind) + " document"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" at %s", e.Field)
	}
	return msg + ": " + e.Err.Error()
}

func (e *DocumentError) Unwrap() error { return e.Err }

// IsKind reports whether err holds a DocumentError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *DocumentError
	return errors.As(err, &de) && de.Kind == kind
}
