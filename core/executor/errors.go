package executor

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
)

// ErrorKind classifies executor failures. Kinds are errors themselves so they
// can be matched with errors.Is.
type ErrorKind int

const (
	// KindSpawn means a process couldn't be started.
	KindSpawn ErrorKind = iota + 1
	// KindArity means a builtin got the wrong number of arguments.
	KindArity
	// KindBuiltin means a builtin was used incorrectly or failed.
	KindBuiltin
	// KindDirectoryChangeAsValue means cd was used somewhere other than the
	// outermost call.
	KindDirectoryChangeAsValue
	// KindWait means a started process couldn't be waited on.
	KindWait
)

func (k ErrorKind) Error() string {
	switch k {
	case KindSpawn:
		return "spawn failure"
	case KindArity:
		return "wrong number of arguments"
	case KindBuiltin:
		return "builtin failure"
	case KindDirectoryChangeAsValue:
		return "directory change used as a value"
	case KindWait:
		return "wait failure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a failure while evaluating or executing a call.
type Error struct {
	Kind ErrorKind
	// Binary is the program or builtin the error is attributed to, if any.
	Binary string
	// Message is the human readable description, if empty the message of Err
	// is used.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements error, it follows the conventional "name: message" shell
// diagnostic format.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = e.Kind.Error()
	}

	if e.Binary != "" {
		return e.Binary + ": " + msg
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the ErrorKind of e.
func (e *Error) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == e.Kind
}

// With attributes the error to the given binary.
func (e *Error) With(binary string) *Error {
	e.Binary = binary
	return e
}

func builtinError(b Builtin, format string, a ...interface{}) *Error {
	return (&Error{Kind: KindBuiltin, Message: fmt.Sprintf(format, a...)}).With(b.String())
}

func spawnError(binary string, err error) *Error {
	var execErr *exec.Error
	var pathErr *fs.PathError

	msg := err.Error()
	switch {
	case errors.As(err, &execErr):
		msg = execErr.Err.Error()
	case errors.As(err, &pathErr) && pathErr.Op != "chdir":
		msg = pathErr.Err.Error()
	}

	return (&Error{Kind: KindSpawn, Message: msg, Err: err}).With(binary)
}

func waitError(binary string, err error) *Error {
	return (&Error{Kind: KindWait, Message: fmt.Sprintf("error waiting for process: %v", err), Err: err}).With(binary)
}
