package cli

import (
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X ...cli.version=<v>".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Prints the nmlcell version.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("nmlcell version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
