package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	sqlast "github.com/oarkflow/sqlast"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a SQL file and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(args)
		if err != nil {
			return err
		}
		script, err := sqlast.Parse(src)
		if err != nil {
			return err
		}
		fmt.Print(sqlast.Dump(script))
		return nil
	},
}

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream of a SQL file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(args)
		if err != nil {
			return err
		}
		toks, err := sqlast.Tokenize([]byte(src), nil)
		for _, t := range toks {
			fmt.Printf("%6d  %-10s %q\n", t.Pos, t.Kind, t.Text)
		}
		return err
	},
}

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Re-serialize a SQL file from its parsed AST",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(args)
		if err != nil {
			return err
		}
		script, err := sqlast.Parse(src)
		if err != nil {
			return err
		}
		out, err := sqlast.Render(script)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Run lint checks over a SQL file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(args)
		if err != nil {
			return err
		}
		report := sqlast.Analyze(src)
		fmt.Println(report.String())
		for _, f := range report.Findings {
			fmt.Printf("  - [%s] %s: %s (stmt %d)\n", f.Severity, f.Code, f.Problem, f.StatementIndex)
		}
		if !report.Valid {
			return fmt.Errorf("parse failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd, tokensCmd, renderCmd, analyzeCmd)
}
