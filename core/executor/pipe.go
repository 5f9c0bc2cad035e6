package executor

import (
	"os"

	"github.com/josephlewis42/lishp/core/parser"
)

// evaluatePipe starts every stage but the last. The head stage reads the
// executor's Stdin only in the foreground.
func (e *Executor) evaluatePipe(args []parser.Expression, ctx *Context, foreground bool) (Value, error) {
	if err := checkArity(BuiltinPipe, args, 1, -1); err != nil {
		return nil, err
	}

	first, err := e.evaluate(args[0], ctx, foreground)
	if err != nil {
		return nil, err
	}

	var prev *PendingCommand
	switch first := first.(type) {
	case *PendingCommand:
		prev = first
	case Text:
		prev = e.pipeSource(string(first), ctx)
	case DirectoryChange:
		return nil, builtinError(BuiltinPipe, "cannot pipe from a directory change")
	}

	for _, arg := range args[1:] {
		val, err := e.Evaluate(arg, ctx)
		if err != nil {
			prev.abandon()
			return nil, err
		}

		next, ok := val.(*PendingCommand)
		if !ok {
			prev.abandon()
			return nil, builtinError(BuiltinPipe, "expected a command to pipe into")
		}
		if len(next.upstream) > 0 {
			prev.abandon()
			next.abandon()
			return nil, builtinError(BuiltinPipe, "cannot pipe into a pipe")
		}

		if err := e.connect(prev, next, foreground); err != nil {
			return nil, err
		}
		prev = next
	}

	return prev, nil
}

// pipeSource builds the command that writes text to the start of a pipe.
func (e *Executor) pipeSource(text string, ctx *Context) *PendingCommand {
	source := e.PipeSource
	if len(source) == 0 {
		source = DefaultPipeSource
	}

	args := make([]string, 0, len(source))
	args = append(args, source[1:]...)
	args = append(args, text)
	return e.command(source[0], args, ctx)
}

// connect starts prev with its output attached to the input of next, then
// hands ownership of the running stages to next.
func (e *Executor) connect(prev, next *PendingCommand, foreground bool) error {
	r, w, err := os.Pipe()
	if err != nil {
		prev.abandon()
		next.abandon()
		return spawnError(prev.Name(), err)
	}

	if prev.Cmd.Stdin == nil && foreground {
		prev.Cmd.Stdin = e.Stdin
	}
	if prev.Cmd.Stderr == nil {
		prev.Cmd.Stderr = e.Stderr
	}
	prev.Cmd.Stdout = w
	prev.closeAfterStart = append(prev.closeAfterStart, w)

	e.logf("starting pipeline stage %q", prev)
	if err := prev.start(); err != nil {
		r.Close()
		next.abandon()
		return err
	}

	next.Cmd.Stdin = r
	next.closeAfterStart = append(next.closeAfterStart, r)
	next.upstream = append(prev.upstream, prev.Cmd)
	prev.upstream = nil
	return nil
}
