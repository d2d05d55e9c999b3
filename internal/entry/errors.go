package entry

import "fmt"

// ParseError reports an unusable command line: unknown or malformed flags,
// or missing required options. Callers print usage alongside it.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Msg == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrorKind classifies the error for exit handling.
func (e *ParseError) ErrorKind() string { return "parse" }

// IOError reports a body, stdin, or attachment that could not be read.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ErrorKind classifies the error for exit handling.
func (e *IOError) ErrorKind() string { return "io" }
