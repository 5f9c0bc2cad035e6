// Package executor evaluates call trees by starting processes, running
// built-ins and substituting command output.
package executor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/josephlewis42/lishp/core/parser"
	"github.com/josephlewis42/lishp/core/vos"
	"github.com/spf13/afero"
)

// DefaultPipeSource is the program a leading text stage of a pipe is run
// through.
var DefaultPipeSource = []string{"echo"}

// Executor holds the collaborators evaluation needs. It carries no per-line
// state so it may be reused for every line of a session.
type Executor struct {
	// Env is the environment store processes inherit and get-env/set-env
	// operate on.
	Env vos.VEnv
	// Fs is used to search PATH and resolve cd targets.
	Fs afero.Fs

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// PipeSource is the command line a leading Text stage of a pipe is
	// appended to.
	PipeSource []string

	Log *log.Logger
}

// New creates an Executor attached to the process's standard streams. Its
// environment starts as a copy of the process's.
func New() *Executor {
	return &Executor{
		Env:        vos.NewMapEnvFrom(vos.OSEnv{}),
		Fs:         afero.NewOsFs(),
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		PipeSource: DefaultPipeSource,
		Log:        log.New(ioutil.Discard, "", 0),
	}
}

func (e *Executor) logf(format string, v ...interface{}) {
	if e.Log != nil {
		e.Log.Printf(format, v...)
	}
}

// Evaluate resolves an expression to a Value. Nested calls in argument
// positions are substituted as text before the enclosing call is built.
// Pipeline stages started while evaluating read from the null device.
func (e *Executor) Evaluate(expr parser.Expression, ctx *Context) (Value, error) {
	return e.evaluate(expr, ctx, false)
}

// evaluate is Evaluate, foreground is set when the value will be run
// attached to the executor's Stdin rather than substituted.
func (e *Executor) evaluate(expr parser.Expression, ctx *Context, foreground bool) (Value, error) {
	switch expr := expr.(type) {
	case parser.Literal:
		return Text(expr), nil
	case *parser.Func:
		return e.evaluateFunc(expr, ctx, foreground)
	default:
		return nil, fmt.Errorf("unknown expression type %T", expr)
	}
}

// EvaluateToText resolves an expression to a string. Commands are run with
// their output captured and trailing whitespace trimmed.
func (e *Executor) EvaluateToText(expr parser.Expression, ctx *Context) (string, error) {
	val, err := e.Evaluate(expr, ctx)
	if err != nil {
		return "", err
	}

	switch val := val.(type) {
	case Text:
		return string(val), nil
	case DirectoryChange:
		return "", (&Error{
			Kind:    KindDirectoryChangeAsValue,
			Message: "a directory change can't be used as a value",
		}).With(BuiltinCd.String())
	case *PendingCommand:
		return e.capture(val)
	default:
		return "", fmt.Errorf("unknown value type %T", val)
	}
}

func (e *Executor) capture(cmd *PendingCommand) (string, error) {
	out := &bytes.Buffer{}
	cmd.Cmd.Stdout = out
	if cmd.Cmd.Stderr == nil {
		cmd.Cmd.Stderr = e.Stderr
	}

	e.logf("substituting %q", cmd)
	if err := cmd.start(); err != nil {
		return "", err
	}
	if err := cmd.wait(); err != nil && !isExitError(err) {
		return "", waitError(cmd.Name(), err)
	}

	return strings.TrimRightFunc(out.String(), unicode.IsSpace), nil
}

func (e *Executor) evaluateFunc(f *parser.Func, ctx *Context, foreground bool) (Value, error) {
	if f.IsEmpty() {
		return Text(""), nil
	}

	name, err := e.EvaluateToText(f.Name, ctx)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return Text(""), nil
	}

	if b := LookupBuiltin(name); b != NotBuiltin {
		return e.evaluateBuiltin(b, f.Arguments, ctx, foreground)
	}

	args := make([]string, 0, len(f.Arguments))
	for _, arg := range f.Arguments {
		text, err := e.EvaluateToText(arg, ctx)
		if err != nil {
			return nil, err
		}
		args = append(args, text)
	}

	return e.command(name, args, ctx), nil
}

// command builds an unstarted process. Lookup failures are deferred until the
// process is started so they're reported the same way as exec failures.
func (e *Executor) command(name string, args []string, ctx *Context) *PendingCommand {
	cmd := &exec.Cmd{
		Args: append([]string{name}, args...),
		Dir:  ctx.WorkingDir,
		Env:  e.Env.Environ(),
	}

	path, err := e.lookPath(name, ctx)
	cmd.Path = path
	if cmd.Path == "" {
		cmd.Path = name
	}

	return &PendingCommand{Cmd: cmd, lookupErr: err}
}

func (e *Executor) lookPath(name string, ctx *Context) (string, error) {
	if strings.Contains(name, "/") {
		// Relative paths are relative to the session's directory, not the
		// shell process's.
		candidate := name
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(ctx.WorkingDir, candidate)
		}
		if _, err := vos.LookPath(e.Fs, "", candidate); err != nil {
			return "", err
		}
		return candidate, nil
	}

	path, err := vos.LookPath(e.Fs, e.Env.Getenv(vos.EnvPath), name)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(ctx.WorkingDir, path)
	}
	return path, nil
}

// IsNotFound reports whether err is a spawn failure for a program that isn't
// on PATH.
func IsNotFound(err error) bool {
	var execErr *Error
	return errors.As(err, &execErr) && execErr.Kind == KindSpawn && errors.Is(execErr.Err, vos.ErrNotFound)
}
