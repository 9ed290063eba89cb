// Package cmd implements the sqlast command-line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sqlast",
	Short: "SQL front end: tokenize and parse SQL into an AST",
	Long: `sqlast parses a SQL statement sequence into an abstract syntax tree.
It is a front end only: statements are recognized and structured, never
executed or validated against a schema.

Commands:
  parse    - print the AST of a SQL file
  tokens   - print the token stream of a SQL file
  render   - re-serialize a SQL file from its AST
  analyze  - run lint checks over a SQL file`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// readSource loads the single file argument every subcommand takes.
func readSource(args []string) (string, error) {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(b), nil
}
