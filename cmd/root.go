package cmd

import (
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/josephlewis42/lishp/core"
	"github.com/josephlewis42/lishp/core/config"
	"github.com/josephlewis42/lishp/core/executor"
	"github.com/josephlewis42/lishp/core/lexer"
	"github.com/josephlewis42/lishp/core/logger"
	"github.com/josephlewis42/lishp/core/parser"
	"github.com/spf13/cobra"
)

var (
	cfgPath   string
	verbose   bool
	runLine   string
	dumpLines bool
)

// exitStatus is returned by a command that needs the process to exit with a
// specific code after its own output is written.
type exitStatus int

func (e exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lishp"
	}
	return filepath.Join(home, ".lishp")
}

func loadConfig() (*config.Configuration, error) {
	return config.Load(cfgPath)
}

func diagnosticLogger(cmd *cobra.Command) *log.Logger {
	if !verbose {
		return log.New(ioutil.Discard, "", 0)
	}
	return log.New(cmd.ErrOrStderr(), "lishp: ", 0)
}

// openEvents opens the event log if it's enabled. A log that can't be opened
// only disables recording.
func openEvents(cfg *config.Configuration, warn *log.Logger) (*logger.SessionLogger, func()) {
	if !cfg.EventLog {
		return nil, func() {}
	}

	fd, err := cfg.OpenAppLog()
	if err != nil {
		warn.Printf("Event log disabled: %v", err)
		return nil, func() {}
	}

	return logger.NewJsonLinesLogRecorder(fd).NewSession(), func() { fd.Close() }
}

func newShell(cmd *cobra.Command, cfg *config.Configuration) (*core.Shell, func(), error) {
	pipeSource, err := cfg.PipeSourceArgs()
	if err != nil {
		return nil, nil, err
	}

	ex := executor.New()
	ex.Stdin = cmd.InOrStdin()
	ex.Stdout = cmd.OutOrStdout()
	ex.Stderr = cmd.ErrOrStderr()
	ex.PipeSource = pipeSource
	ex.Log = diagnosticLogger(cmd)

	ctx, err := executor.NewContext()
	if err != nil {
		return nil, nil, err
	}

	events, closeEvents := openEvents(cfg, log.New(cmd.ErrOrStderr(), "", 0))
	return core.NewShell(cfg, ex, ctx, events), closeEvents, nil
}

func dumpLine(cmd *cobra.Command, line string) error {
	tokens, err := lexer.Lex(line)
	if err != nil {
		return err
	}
	tree, err := parser.Parse(tokens)
	if err != nil {
		return err
	}
	return parser.Dump(cmd.OutOrStdout(), tree)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lishp",
	Short: "A shell with a parenthesized call syntax",
	Long: `An interactive shell where every line is a call like (ls -l) and
calls nest to substitute command output, e.g. (cd (get-env HOME)).`,
	Args: cobra.ExactArgs(0),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return startProfile(profileMode, profilePath)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		if dumpLines {
			if !cmd.Flags().Changed("command") {
				return errors.New("--dump requires --command")
			}
			return dumpLine(cmd, runLine)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		shell, closeEvents, err := newShell(cmd, cfg)
		if err != nil {
			return err
		}
		defer closeEvents()

		if !cmd.Flags().Changed("command") {
			return shell.Run(nil)
		}

		// The shell already reported any error.
		cmd.SilenceErrors = true
		outcome, err := shell.RunLine(runLine)
		switch {
		case err != nil:
			return exitStatus(1)
		case outcome.ExitCode != 0:
			return exitStatus(outcome.ExitCode)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	stopProfile()

	var status exitStatus
	if errors.As(err, &status) {
		os.Exit(int(status))
	}
	cobra.CheckErr(err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "config directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
	rootCmd.Flags().StringVarP(&runLine, "command", "c", "", "run a single line and exit with its status")
	rootCmd.Flags().BoolVar(&dumpLines, "dump", false, "print the call tree of --command instead of running it")
}
