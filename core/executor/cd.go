package executor

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/josephlewis42/lishp/core/parser"
	"github.com/spf13/afero"
)

func (e *Executor) evaluateCd(args []parser.Expression, ctx *Context) (Value, error) {
	if err := checkArity(BuiltinCd, args, 0, 1); err != nil {
		return nil, err
	}

	var target string
	if len(args) == 0 {
		home, err := e.Env.UserHomeDir()
		if err != nil {
			return nil, builtinError(BuiltinCd, "%v", err)
		}
		target = home
	} else {
		text, err := e.EvaluateToText(args[0], ctx)
		if err != nil {
			return nil, err
		}
		if target, err = e.expandHome(text); err != nil {
			return nil, err
		}
	}

	dir, err := e.resolveDir(ctx.WorkingDir, target)
	if err != nil {
		return nil, err
	}
	return DirectoryChange(dir), nil
}

func (e *Executor) expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := e.Env.UserHomeDir()
	if err != nil {
		return "", builtinError(BuiltinCd, "%v", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// resolveDir makes target absolute relative to wd, resolves symlinks and
// checks that the result is a directory.
func (e *Executor) resolveDir(wd, target string) (string, error) {
	path := target
	if !filepath.IsAbs(path) {
		path = filepath.Join(wd, path)
	}
	path = filepath.Clean(path)

	if _, ok := e.Fs.(*afero.OsFs); ok {
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return "", cdPathError(target, err)
		}
		path = resolved
	}

	info, err := e.Fs.Stat(path)
	if err != nil {
		return "", cdPathError(target, err)
	}
	if !info.IsDir() {
		return "", builtinError(BuiltinCd, "%s: not a directory", target)
	}
	return path, nil
}

func cdPathError(target string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return builtinError(BuiltinCd, "%s: no such file or directory", target)
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	out := builtinError(BuiltinCd, "%s: %v", target, err)
	out.Err = err
	return out
}
