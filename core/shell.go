package core

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/josephlewis42/lishp/core/config"
	"github.com/josephlewis42/lishp/core/executor"
	"github.com/josephlewis42/lishp/core/lexer"
	"github.com/josephlewis42/lishp/core/logger"
	"github.com/josephlewis42/lishp/core/parser"
	"github.com/josephlewis42/lishp/core/vos"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mattn/go-isatty"
)

// ExitMessage is printed when the interactive shell ends.
const ExitMessage = "Exiting, have a nice day :)"

var (
	ColorBoldRed = color.New(color.FgRed, color.Bold)
	ColorYellow  = color.New(color.FgYellow)
)

// Shell reads lines, runs them and reports failures. It's the only owner of
// its Context.
type Shell struct {
	Config   *config.Configuration
	Executor *executor.Executor
	Context  *executor.Context
	Events   *logger.SessionLogger
	Commands *CommandIndex
	Log      *log.Logger

	colorize bool
}

// NewShell creates a shell. Events may be nil to disable the event log.
func NewShell(cfg *config.Configuration, ex *executor.Executor, ctx *executor.Context, events *logger.SessionLogger) *Shell {
	if events == nil {
		events = logger.Discard().Sessionless()
	}
	diag := ex.Log
	if diag == nil {
		diag = log.New(ioutil.Discard, "", 0)
	}

	return &Shell{
		Config:   cfg,
		Executor: ex,
		Context:  ctx,
		Events:   events,
		Commands: NewCommandIndex(ex.Fs, ex.Env.Getenv(vos.EnvPath), diag),
		Log:      diag,
		colorize: ShouldColor(cfg.Color, ex.Stderr),
	}
}

// ShouldColor decides whether output to w is colorized for the given mode.
func ShouldColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorNever:
		return false
	case config.ColorAlways:
		return true
	default:
		f, ok := w.(*os.File)
		if !ok {
			return false
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
}

func (s *Shell) sprintf(c *color.Color, format string, a ...interface{}) string {
	if !s.colorize {
		return fmt.Sprintf(format, a...)
	}
	c.EnableColor()
	return c.Sprintf(format, a...)
}

// Prompt renders the prompt for the current working directory.
func (s *Shell) Prompt() string {
	home, _ := s.Executor.Env.UserHomeDir()
	return FormatPrompt(s.Context.WorkingDir, home, s.Config.PromptIndicator)
}

// RunLine runs one line, reports any error to stderr and records the result
// in the event log.
func (s *Shell) RunLine(line string) (executor.Outcome, error) {
	wd := s.Context.WorkingDir

	outcome, err := s.Executor.RunLine(line, s.Context)
	if err != nil {
		s.reportError(err)
		s.record(lineError(line, wd, err))
		return outcome, err
	}

	s.record(&logger.RunLine{
		Line:       line,
		WorkingDir: wd,
		Outcome:    outcome.Kind.String(),
		Program:    outcome.Program,
		Stages:     outcome.Stages,
		ExitCode:   outcome.ExitCode,
	})
	if outcome.Kind == executor.OutcomeDirectoryChange {
		s.record(&logger.DirectoryChange{From: wd, To: outcome.Dir})
	}

	// set-env may have changed PATH.
	s.Commands.SetPath(s.Executor.Env.Getenv(vos.EnvPath))
	return outcome, nil
}

func (s *Shell) record(event logger.LogType) {
	if err := s.Events.Record(event); err != nil {
		s.Log.Printf("recording event: %v", err)
	}
}

func (s *Shell) reportError(err error) {
	stderr := s.Executor.Stderr

	if errors.Is(err, executor.KindWait) {
		fmt.Fprintln(stderr, s.sprintf(ColorBoldRed, "internal error: %v", err))
		return
	}
	fmt.Fprintln(stderr, s.sprintf(ColorBoldRed, "%v", err))

	var execErr *executor.Error
	if executor.IsNotFound(err) && errors.As(err, &execErr) {
		if suggestions := s.Suggest(execErr.Binary); len(suggestions) > 0 {
			fmt.Fprintln(stderr, s.sprintf(ColorYellow, "did you mean: %s?", strings.Join(suggestions, ", ")))
		}
	}
}

// Suggest returns the known command names closest to name, best first.
func (s *Shell) Suggest(name string) []string {
	limit := s.Config.Suggestions
	if limit <= 0 || name == "" {
		return nil
	}

	type candidate struct {
		name     string
		distance int
	}
	var candidates []candidate
	seen := make(map[string]bool)
	commands := s.Commands.Commands()

	for _, rank := range fuzzy.RankFindFold(name, commands) {
		seen[rank.Target] = true
		candidates = append(candidates, candidate{rank.Target, rank.Distance})
	}

	// Catch typos that aren't subsequences, like transposed letters. Short
	// names are within a couple of edits of nearly everything.
	if len(name) >= 3 {
		maxEdits := len(name) / 3
		if maxEdits < 2 {
			maxEdits = 2
		}
		for _, cmd := range commands {
			if seen[cmd] {
				continue
			}
			if d := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(cmd)); d <= maxEdits {
				candidates = append(candidates, candidate{cmd, d})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].distance == candidates[j].distance {
			return candidates[i].name < candidates[j].name
		}
		return candidates[i].distance < candidates[j].distance
	})

	var out []string
	for _, c := range candidates {
		if len(out) == limit {
			break
		}
		out = append(out, c.name)
	}
	return out
}

// lineError builds the event for a failed line.
func lineError(line, wd string, err error) *logger.LineError {
	out := &logger.LineError{Line: line, WorkingDir: wd, Error: err.Error()}

	var (
		lexErr   lexer.Error
		parseErr parser.Error
		execErr  *executor.Error
	)
	switch {
	case errors.As(err, &lexErr):
		out.Stage = "lexer"
		out.Kind = lexErr.Name()
	case errors.As(err, &parseErr):
		out.Stage = "parser"
		out.Kind = parseErr.Name()
	case errors.As(err, &execErr):
		out.Stage = "executor"
		out.Kind = execErr.Kind.Error()
		out.Binary = execErr.Binary
	default:
		out.Stage = "executor"
		out.Kind = "unknown"
	}
	return out
}

// Run reads and runs lines until the input ends or is interrupted. A nil
// stdin reads from the terminal.
func (s *Shell) Run(stdin io.Reader) error {
	cfg := &readline.Config{
		Prompt:          s.Prompt(),
		HistoryFile:     s.Config.HistoryPath(),
		HistoryLimit:    s.Config.HistoryLimit,
		AutoComplete:    &Completer{Commands: s.Commands.Commands},
		InterruptPrompt: "^C",
		Stdout:          s.Executor.Stdout,
		Stderr:          s.Executor.Stderr,
	}
	if stdin != nil {
		cfg.Stdin = readline.NewCancelableStdin(stdin)
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return err
	}
	defer rl.Close()

	if err := s.Commands.Watch(); err != nil {
		s.Log.Printf("not watching PATH for changes: %v", err)
	}
	defer s.Commands.Close()

	for {
		rl.SetPrompt(s.Prompt())
		line, err := rl.Readline()

		switch {
		case err == io.EOF, err == readline.ErrInterrupt:
			fmt.Fprintln(s.Executor.Stdout, ExitMessage)
			return nil

		case err != nil:
			fmt.Fprintf(s.Executor.Stderr, "Error reading line: %v\n", err)
			continue

		default:
			s.RunLine(line)
		}
	}
}
