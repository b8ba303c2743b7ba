package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tsv2sql/version"
)

// versionCmd prints the current version of tsv2sql.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tsv2sql",
	Long:  `All software has versions. This is tsv2sql's.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tsv2sql %v\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
