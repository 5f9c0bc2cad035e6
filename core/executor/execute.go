package executor

import (
	"fmt"

	"github.com/josephlewis42/lishp/core/lexer"
	"github.com/josephlewis42/lishp/core/parser"
)

// OutcomeKind is the kind of value a line produced.
type OutcomeKind int

const (
	// OutcomeNothing is the result of a blank line.
	OutcomeNothing OutcomeKind = iota
	OutcomeCommand
	OutcomeText
	OutcomeDirectoryChange
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNothing:
		return "nothing"
	case OutcomeCommand:
		return "command"
	case OutcomeText:
		return "text"
	case OutcomeDirectoryChange:
		return "directory-change"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome describes what a successfully executed line did.
type Outcome struct {
	Kind OutcomeKind
	// Program is the name of the last command of the line, if one ran.
	Program string
	// Stages is the number of processes in the pipeline that ran.
	Stages int
	// ExitCode is the exit status of the last command.
	ExitCode int
	// Dir is the new working directory after a directory change.
	Dir string
}

// Execute evaluates a whole line and performs its effect: running the
// resulting command in the foreground, printing text, or changing ctx's
// working directory. The empty call does nothing.
func (e *Executor) Execute(f *parser.Func, ctx *Context) (Outcome, error) {
	if f.IsEmpty() {
		return Outcome{}, nil
	}

	val, err := e.evaluate(f, ctx, true)
	if err != nil {
		return Outcome{}, err
	}

	switch val := val.(type) {
	case *PendingCommand:
		return e.runForeground(val)

	case Text:
		if val != "" {
			fmt.Fprintln(e.Stdout, string(val))
		}
		return Outcome{Kind: OutcomeText}, nil

	case DirectoryChange:
		dir, err := e.resolveDir(ctx.WorkingDir, string(val))
		if err != nil {
			return Outcome{}, err
		}
		e.logf("changing directory from %q to %q", ctx.WorkingDir, dir)
		ctx.WorkingDir = dir
		return Outcome{Kind: OutcomeDirectoryChange, Dir: dir}, nil

	default:
		return Outcome{}, fmt.Errorf("unknown value type %T", val)
	}
}

func (e *Executor) runForeground(cmd *PendingCommand) (Outcome, error) {
	if cmd.Cmd.Stdin == nil {
		cmd.Cmd.Stdin = e.Stdin
	}
	if cmd.Cmd.Stdout == nil {
		cmd.Cmd.Stdout = e.Stdout
	}
	if cmd.Cmd.Stderr == nil {
		cmd.Cmd.Stderr = e.Stderr
	}

	out := Outcome{Kind: OutcomeCommand, Program: cmd.Name(), Stages: cmd.Stages()}

	e.logf("running %q", cmd)
	if err := cmd.start(); err != nil {
		return out, err
	}
	if err := cmd.wait(); err != nil {
		if !isExitError(err) {
			return out, waitError(cmd.Name(), err)
		}
		out.ExitCode = exitCode(err)
	}
	return out, nil
}

// RunLine lexes, parses and executes a single line.
func (e *Executor) RunLine(line string, ctx *Context) (Outcome, error) {
	tokens, err := lexer.Lex(line)
	if err != nil {
		return Outcome{}, err
	}

	f, err := parser.Parse(tokens)
	if err != nil {
		return Outcome{}, err
	}

	return e.Execute(f, ctx)
}
