package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/josephlewis42/lishp/core/config"
	"github.com/josephlewis42/lishp/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the shell event log.",
}

func writeReport(cfg *config.Configuration, w io.Writer) error {
	fd, err := cfg.ReadAppLog()
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("no events recorded yet, is event_log enabled? %w", err)
	}
	if err != nil {
		return err
	}
	defer fd.Close()

	report := logger.NewReport()
	if err := logger.ReadJSONLinesLog(fd, report.Update); err != nil {
		return err
	}

	out, err := yaml.Marshal(report)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, string(out))
	return nil
}

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Show a report of events.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		return writeReport(cfg, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(reportCommand)
}
