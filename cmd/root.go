package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// rootCmd converts the survey TSV files when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "tsv2sql",
	Short: "Convert the Comunidades and Perfis TSV exports into SQLite scripts",
	Long: `tsv2sql reads Comunidades.tsv and Perfis.tsv from the current directory
and writes schema.sql and insert.sql, ready to be fed to sqlite3:

    sqlite3 quilombolas.db < schema.sql
    sqlite3 quilombolas.db < insert.sql

Running it without a subcommand is the same as 'tsv2sql generate'.`,
	Args: cobra.NoArgs,
	Run:  generate,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		_, _ = errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceErrors = true
	addConfigFlags(rootCmd)
	// Subcommands (generate, load, columns, version) are added from their own files.
}
