package executor

import (
	"errors"
	"io"
	"os/exec"
	"strings"
)

// Value is the result of evaluating an expression. It's one of
// *PendingCommand, Text or DirectoryChange.
type Value interface {
	isValue()
}

// Text is a plain string value.
type Text string

func (Text) isValue() {}

// DirectoryChange is a request from cd to move the session to a new absolute
// directory. It's only valid as the outermost result of a line.
type DirectoryChange string

func (DirectoryChange) isValue() {}

// PendingCommand is a fully configured process that hasn't been started yet.
// When it's the tail of a pipeline, the earlier stages are already running.
type PendingCommand struct {
	Cmd *exec.Cmd

	// lookupErr is reported when the command is started.
	lookupErr error
	// upstream holds started pipeline stages that feed this command.
	upstream []*exec.Cmd
	// closeAfterStart holds the parent's copies of pipe ends.
	closeAfterStart []io.Closer
}

func (*PendingCommand) isValue() {}

// Name is the program name as it was written.
func (p *PendingCommand) Name() string {
	if len(p.Cmd.Args) > 0 {
		return p.Cmd.Args[0]
	}
	return p.Cmd.Path
}

// String returns the command line.
func (p *PendingCommand) String() string {
	return strings.Join(p.Cmd.Args, " ")
}

// Stages is the number of processes in the pipeline ending with p.
func (p *PendingCommand) Stages() int {
	return len(p.upstream) + 1
}

func (p *PendingCommand) closeFiles() {
	for _, c := range p.closeAfterStart {
		c.Close()
	}
	p.closeAfterStart = nil
}

func (p *PendingCommand) start() error {
	if p.lookupErr != nil {
		p.abandon()
		return spawnError(p.Name(), p.lookupErr)
	}

	err := p.Cmd.Start()
	p.closeFiles()
	if err != nil {
		p.abandon()
		return spawnError(p.Name(), err)
	}
	return nil
}

// wait blocks until p and every upstream stage exit. Non-zero exit statuses
// are returned as *exec.ExitError.
func (p *PendingCommand) wait() error {
	err := p.Cmd.Wait()
	p.reap()
	return err
}

func (p *PendingCommand) reap() {
	for _, up := range p.upstream {
		_ = up.Wait()
	}
	p.upstream = nil
}

// abandon releases a command that will never be started. Upstream stages may
// still be blocked on input, so they're reaped in the background.
func (p *PendingCommand) abandon() {
	p.closeFiles()
	for _, up := range p.upstream {
		go up.Wait()
	}
	p.upstream = nil
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 0
}
