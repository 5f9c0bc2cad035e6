package executor

import (
	"unicode/utf8"

	"github.com/josephlewis42/lishp/core/parser"
)

func (e *Executor) evaluateGetEnv(args []parser.Expression, ctx *Context) (Value, error) {
	if err := checkArity(BuiltinGetEnv, args, 1, 1); err != nil {
		return nil, err
	}

	name, err := e.EvaluateToText(args[0], ctx)
	if err != nil {
		return nil, err
	}

	val, ok := e.Env.LookupEnv(name)
	switch {
	case !ok:
		return nil, builtinError(BuiltinGetEnv, "variable not present: %s", name)
	case !utf8.ValidString(val):
		return nil, builtinError(BuiltinGetEnv, "variable not valid unicode: %s", name)
	}
	return Text(val), nil
}

func (e *Executor) evaluateSetEnv(args []parser.Expression, ctx *Context) (Value, error) {
	if err := checkArity(BuiltinSetEnv, args, 2, 2); err != nil {
		return nil, err
	}

	name, err := e.EvaluateToText(args[0], ctx)
	if err != nil {
		return nil, err
	}
	val, err := e.EvaluateToText(args[1], ctx)
	if err != nil {
		return nil, err
	}

	if err := e.Env.Setenv(name, val); err != nil {
		out := builtinError(BuiltinSetEnv, "%v", err)
		out.Err = err
		return nil, out
	}
	return Text(val), nil
}
