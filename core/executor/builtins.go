package executor

import (
	"fmt"

	"github.com/josephlewis42/lishp/core/parser"
)

// Builtin is one of the operations handled by the evaluator itself. Builtins
// can't be shadowed by programs with the same name.
type Builtin int

const (
	// NotBuiltin is returned by LookupBuiltin for external programs.
	NotBuiltin Builtin = iota
	BuiltinIf
	BuiltinPipe
	BuiltinCd
	BuiltinGetEnv
	BuiltinSetEnv
)

// Keywords holds every reserved name.
var Keywords = []string{"if", "pipe", "|", "cd", "get-env", "set-env"}

var builtinsByName = map[string]Builtin{
	"if":      BuiltinIf,
	"pipe":    BuiltinPipe,
	"|":       BuiltinPipe,
	"cd":      BuiltinCd,
	"get-env": BuiltinGetEnv,
	"set-env": BuiltinSetEnv,
}

// LookupBuiltin resolves a call name to a Builtin.
func LookupBuiltin(name string) Builtin {
	return builtinsByName[name]
}

// AllBuiltins lists each builtin once.
func AllBuiltins() []Builtin {
	return []Builtin{BuiltinIf, BuiltinPipe, BuiltinCd, BuiltinGetEnv, BuiltinSetEnv}
}

func (b Builtin) String() string {
	switch b {
	case BuiltinIf:
		return "if"
	case BuiltinPipe:
		return "pipe"
	case BuiltinCd:
		return "cd"
	case BuiltinGetEnv:
		return "get-env"
	case BuiltinSetEnv:
		return "set-env"
	default:
		return fmt.Sprintf("Builtin(%d)", int(b))
	}
}

// Usage returns a one line usage string.
func (b Builtin) Usage() string {
	switch b {
	case BuiltinIf:
		return "if PREDICATE THEN ELSE"
	case BuiltinPipe:
		return "pipe SOURCE [COMMAND...]"
	case BuiltinCd:
		return "cd [DIR]"
	case BuiltinGetEnv:
		return "get-env NAME"
	case BuiltinSetEnv:
		return "set-env NAME VALUE"
	default:
		return ""
	}
}

// Short returns a one line description.
func (b Builtin) Short() string {
	switch b {
	case BuiltinIf:
		return "Evaluate THEN if PREDICATE is \"true\" or ELSE if it's \"false\"."
	case BuiltinPipe:
		return "Connect the output of each command to the input of the next. Also: |"
	case BuiltinCd:
		return "Change the working directory, defaults to the home directory."
	case BuiltinGetEnv:
		return "Print the value of an environment variable."
	case BuiltinSetEnv:
		return "Set an environment variable."
	default:
		return ""
	}
}

// checkArity validates the argument count, max < 0 means unbounded.
func checkArity(b Builtin, args []parser.Expression, min, max int) error {
	n := len(args)
	if n >= min && (max < 0 || n <= max) {
		return nil
	}

	var expected string
	switch {
	case min == max:
		expected = fmt.Sprintf("%d", min)
	case max < 0:
		expected = fmt.Sprintf("at least %d", min)
	default:
		expected = fmt.Sprintf("%d to %d", min, max)
	}

	return (&Error{
		Kind:    KindArity,
		Message: fmt.Sprintf("wrong number of arguments: expected %s, got %d", expected, n),
	}).With(b.String())
}

func (e *Executor) evaluateBuiltin(b Builtin, args []parser.Expression, ctx *Context, foreground bool) (Value, error) {
	switch b {
	case BuiltinIf:
		return e.evaluateIf(args, ctx, foreground)
	case BuiltinPipe:
		return e.evaluatePipe(args, ctx, foreground)
	case BuiltinCd:
		return e.evaluateCd(args, ctx)
	case BuiltinGetEnv:
		return e.evaluateGetEnv(args, ctx)
	case BuiltinSetEnv:
		return e.evaluateSetEnv(args, ctx)
	default:
		return nil, fmt.Errorf("unhandled builtin %v", b)
	}
}

func (e *Executor) evaluateIf(args []parser.Expression, ctx *Context, foreground bool) (Value, error) {
	if err := checkArity(BuiltinIf, args, 3, 3); err != nil {
		return nil, err
	}

	predicate, err := e.EvaluateToText(args[0], ctx)
	if err != nil {
		return nil, err
	}

	switch predicate {
	case "true":
		return e.evaluate(args[1], ctx, foreground)
	case "false":
		return e.evaluate(args[2], ctx, foreground)
	default:
		return nil, builtinError(BuiltinIf, "first argument must be true or false but was %q", predicate)
	}
}
