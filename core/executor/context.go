package executor

import (
	"os"
)

// Context is the state that survives between lines of a session.
type Context struct {
	// WorkingDir is the absolute directory processes are started in. Only the
	// top level of Execute changes it, front ends may read it for the prompt.
	WorkingDir string
}

// NewContext creates a context rooted in the process's current directory.
func NewContext() (*Context, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return &Context{WorkingDir: wd}, nil
}
