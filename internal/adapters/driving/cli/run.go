package cli

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [recipe...]",
	Short: "Produce models from recipes",
	Long: `Produces the named recipes in order and writes one artifact per recipe.
With no names the default run from the config (run.default) is used.
The run stops at the first failing recipe; artifacts written before it are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return produce(cmd, args...)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
