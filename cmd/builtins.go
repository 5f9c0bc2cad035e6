package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/josephlewis42/lishp/core/executor"
	"github.com/spf13/cobra"
)

func writeBuiltins(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, b := range executor.AllBuiltins() {
		fmt.Fprintf(tw, "%s\t%s\n", b.Usage(), b.Short())
	}
	return tw.Flush()
}

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the commands handled by the shell itself.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeBuiltins(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
