package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax marks malformed input.
	ErrSyntax = errors.New("expr: syntax error")

	// ErrUnknownName marks an identifier that is neither a unit, a
	// constant, a variable nor a function.
	ErrUnknownName = errors.New("expr: unknown name")

	// ErrArity marks a function called with the wrong number of arguments.
	ErrArity = errors.New("expr: wrong number of arguments")
)

// Error locates a failure in the source. Unit errors from evaluation are
// wrapped unchanged, so errors.Is still matches the units sentinels.
type Error struct {
	Offset int
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("offset %d: %s", e.Offset, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func syntaxError(offset int, format string, args ...any) error {
	return &Error{Offset: offset, Msg: fmt.Sprintf(format, args...), Err: ErrSyntax}
}

func evalError(offset int, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Offset: offset, Err: err}
}
